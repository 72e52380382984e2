package models

// Entry is one participant's team in the league. Identity key is TeamID.
type Entry struct {
	TeamID       int    `json:"team_id"`
	Manager      string `json:"manager"`
	Team         string `json:"team"`
	OverallRank  int    `json:"overall_rank"`
	OverallTotal int    `json:"overall_total"`
}

// GwRecord is one entry's result for one gameweek. A complete table holds
// exactly one record per (TeamID, Gw) pair; never-played gameweeks are
// zero-valued rows, not missing rows.
type GwRecord struct {
	TeamID       int    `json:"team_id"`
	Manager      string `json:"manager"`
	Team         string `json:"team"`
	Gw           int    `json:"gw"`
	Points       int    `json:"points"`
	TotalPoints  int    `json:"total_points"`
	Transfers    int    `json:"transfers"`
	TransferCost int    `json:"transfer_cost"`
	BenchPoints  int    `json:"bench_points"`
}

// NetPoints is the gameweek score net of the transfer-cost penalty.
func (r GwRecord) NetPoints() int {
	return r.Points - r.TransferCost
}

// Medal marks the podium positions of a ranked table.
type Medal string

const (
	MedalNone   Medal = ""
	MedalGold   Medal = "gold"
	MedalSilver Medal = "silver"
	MedalBronze Medal = "bronze"
)

// MedalForRank returns the medal for a competition rank.
func MedalForRank(rank int) Medal {
	switch rank {
	case 1:
		return MedalGold
	case 2:
		return MedalSilver
	case 3:
		return MedalBronze
	}
	return MedalNone
}

// RankingRow is one line of a weekly or monthly ranking table.
type RankingRow struct {
	Rank         int    `json:"rank"`
	Medal        Medal  `json:"medal"`
	TeamID       int    `json:"team_id"`
	Manager      string `json:"manager"`
	Team         string `json:"team"`
	Points       int    `json:"points"`
	Transfers    int    `json:"transfers"`
	TransferCost int    `json:"transfer_cost"`
	TransferInfo string `json:"transfer_info"`
	NetPoints    int    `json:"net_points"`
}

// MonthCell is one manager's aggregate for one month.
type MonthCell struct {
	Points       int    `json:"points"`
	Transfers    int    `json:"transfers"`
	TransferCost int    `json:"transfer_cost"`
	TransferInfo string `json:"transfer_info"`
}

// MonthSummaryRow is one manager's line in a month points table. Months maps
// 1-based month index to that month's totals; Total is points net of
// transfer costs across the included months.
type MonthSummaryRow struct {
	Rank    int               `json:"rank,omitempty"`
	Medal   Medal             `json:"medal,omitempty"`
	TeamID  int               `json:"team_id"`
	Manager string            `json:"manager"`
	Team    string            `json:"team"`
	Months  map[int]MonthCell `json:"months"`
	Total   int               `json:"total"`
}

// AwardRow is one manager's line in the awards leaderboard.
type AwardRow struct {
	Rank         int     `json:"rank"`
	Medal        Medal   `json:"medal"`
	TeamID       int     `json:"team_id"`
	Manager      string  `json:"manager"`
	Team         string  `json:"team"`
	WeeklyWins   int     `json:"weekly_wins"`
	MonthlyWins  int     `json:"monthly_wins"`
	TotalAwards  int     `json:"total_awards"`
	WeeklyPrize  float64 `json:"weekly_prize"`
	MonthlyPrize float64 `json:"monthly_prize"`
	TotalPrize   float64 `json:"total_prize"`
}

// AwardsSummaryRow names the winner(s) of one gameweek and of the month it
// belongs to. Tied winners are joined with " & ".
type AwardsSummaryRow struct {
	Gw            int    `json:"gw"`
	WeeklyWinner  string `json:"weekly_winner"`
	Month         int    `json:"month"`
	MonthlyWinner string `json:"monthly_winner"`
}

// PickRow is one player's line in the top-picks table.
type PickRow struct {
	Player           string  `json:"player"`
	TimesPicked      int     `json:"times_picked"`
	PercentOfEntries float64 `json:"percent_of_entries"`
}

// FunStatsRow holds the extremes for one gameweek. Each field is a
// pipe-joined set of all entries tied at the extreme; transfer extremes are
// "-" when no entry made a transfer that gameweek.
type FunStatsRow struct {
	Gw            int    `json:"gw"`
	BestCaptain   string `json:"best_captain"`
	WorstCaptain  string `json:"worst_captain"`
	BestBench     string `json:"best_bench"`
	BestTransfer  string `json:"best_transfer"`
	WorstTransfer string `json:"worst_transfer"`
}

// TransferRow is one transfer made by one entry, with the points each player
// scored in the gameweek the transfer applied to.
type TransferRow struct {
	TeamID          int    `json:"team_id"`
	Manager         string `json:"manager"`
	Team            string `json:"team"`
	Gw              int    `json:"gw"`
	PlayerIn        string `json:"player_in"`
	PlayerOut       string `json:"player_out"`
	PlayerInPoints  int    `json:"player_in_points"`
	PlayerOutPoints int    `json:"player_out_points"`
	Display         string `json:"display"`
}

// ChipRow records which chip (if any) an entry played in a gameweek; "-" for
// none.
type ChipRow struct {
	TeamID     int    `json:"team_id"`
	Manager    string `json:"manager"`
	Team       string `json:"team"`
	Gw         int    `json:"gw"`
	ActiveChip string `json:"active_chip"`
}
