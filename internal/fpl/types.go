package fpl

// Wire types for the Fantasy Premier League API. Field names follow the
// upstream JSON; only the fields the service reads are declared.

type Bootstrap struct {
	Elements []Element `json:"elements"`
	Events   []Event   `json:"events"`
}

type Element struct {
	ID         int    `json:"id"`
	WebName    string `json:"web_name"`
	FirstName  string `json:"first_name"`
	SecondName string `json:"second_name"`
}

// FullName returns "First Second" for display contexts.
func (e Element) FullName() string {
	return e.FirstName + " " + e.SecondName
}

type Event struct {
	ID        int  `json:"id"`
	Finished  bool `json:"finished"`
	IsCurrent bool `json:"is_current"`
	IsNext    bool `json:"is_next"`
}

type standingsResponse struct {
	Standings struct {
		HasNext bool             `json:"has_next"`
		Results []standingsEntry `json:"results"`
	} `json:"standings"`
}

type standingsEntry struct {
	Entry      int    `json:"entry"`
	PlayerName string `json:"player_name"`
	EntryName  string `json:"entry_name"`
	Rank       int    `json:"rank"`
	Total      int    `json:"total"`
}

// EntryHistory is one entry's season history: one GwEvent per played
// gameweek plus the chips the entry has burned.
type EntryHistory struct {
	Current []GwEvent  `json:"current"`
	Chips   []ChipPlay `json:"chips"`
}

type GwEvent struct {
	Event              int `json:"event"`
	Points             int `json:"points"`
	TotalPoints        int `json:"total_points"`
	EventTransfers     int `json:"event_transfers"`
	EventTransfersCost int `json:"event_transfers_cost"`
	PointsOnBench      int `json:"points_on_bench"`
}

type ChipPlay struct {
	Event int    `json:"event"`
	Name  string `json:"name"`
}

type Transfer struct {
	Event      int `json:"event"`
	ElementIn  int `json:"element_in"`
	ElementOut int `json:"element_out"`
}

// GwPicks is one entry's squad for one gameweek (15 picks, bench included).
type GwPicks struct {
	ActiveChip string `json:"active_chip"`
	Picks      []Pick `json:"picks"`
}

type Pick struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
}

type elementSummary struct {
	History []playerGwEvent `json:"history"`
}

type playerGwEvent struct {
	Round       int `json:"round"`
	TotalPoints int `json:"total_points"`
}
