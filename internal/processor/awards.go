package processor

import (
	"sort"
	"strings"

	"github.com/fplhub/fpl-league-hub/internal/models"
)

// PrizePools carries the per-period prize amounts. Each pool is split evenly
// among every manager tied for first in that period.
type PrizePools struct {
	Weekly  float64
	Monthly float64
}

// winnersAtRankOne collects the managers sharing rank 1.
func winnersAtRankOne(ranking []models.RankingRow) []models.RankingRow {
	var winners []models.RankingRow
	for _, row := range ranking {
		if row.Rank == 1 {
			winners = append(winners, row)
		}
	}
	return winners
}

func joinWinnerNames(winners []models.RankingRow) string {
	names := make([]string, 0, len(winners))
	for _, w := range winners {
		names = append(names, w.Manager)
	}
	return strings.Join(names, " & ")
}

// BuildAwardsSummary lists, per gameweek, the weekly winner(s) and the
// winner(s) of the month the gameweek belongs to. Monthly winners are only
// named for complete months (last mapped gameweek played); gameweeks without
// a played ranking show "-".
func BuildAwardsSummary(table []models.GwRecord, mapping MonthMapping, policy TiebreakPolicy) []models.AwardsSummaryRow {
	if len(table) == 0 {
		return nil
	}

	monthlyWinners := map[int]string{}
	complete := completeMonths(table, mapping)
	for _, month := range mapping.Months() {
		if !complete[month] {
			continue
		}
		if winners := winnersAtRankOne(BuildMonthlyRanking(table, mapping, month, policy)); len(winners) > 0 {
			monthlyWinners[month] = joinWinnerNames(winners)
		}
	}

	var rows []models.AwardsSummaryRow
	for _, gw := range DistinctGws(table) {
		weekly := "-"
		if winners := winnersAtRankOne(BuildWeeklyRanking(table, gw, policy)); len(winners) > 0 {
			weekly = joinWinnerNames(winners)
		}

		month := mapping.MonthFor(gw)
		if month == 0 {
			month = 1
		}
		rows = append(rows, models.AwardsSummaryRow{
			Gw:            gw,
			WeeklyWinner:  weekly,
			Month:         month,
			MonthlyWinner: monthlyWinners[month],
		})
	}
	return rows
}

// BuildAwardsLeaderboard tallies weekly and monthly wins and prize money for
// every manager in the table. Weekly wins count every played gameweek up to
// currentGw; a month counts once currentGw reaches its last mapped gameweek.
// The final order is total prize, then total awards, then weekly wins, then
// monthly wins; ranks here are strictly positional (1..N), unlike the
// tie-sharing period rankings.
func BuildAwardsLeaderboard(table []models.GwRecord, mapping MonthMapping, currentGw int, pools PrizePools, policy TiebreakPolicy) []models.AwardRow {
	if len(table) == 0 {
		return nil
	}

	// Fixed universe up front: managers with zero wins still get a row.
	managers := DistinctManagers(table)
	rows := make([]models.AwardRow, len(managers))
	index := map[int]*models.AwardRow{}
	for i, entry := range managers {
		rows[i] = models.AwardRow{
			TeamID:  entry.TeamID,
			Manager: entry.Manager,
			Team:    entry.Team,
		}
		index[entry.TeamID] = &rows[i]
	}

	for _, gw := range DistinctGws(table) {
		if gw > currentGw {
			continue
		}
		winners := winnersAtRankOne(BuildWeeklyRanking(table, gw, policy))
		if len(winners) == 0 {
			continue
		}
		prize := pools.Weekly / float64(len(winners))
		for _, w := range winners {
			if row, ok := index[w.TeamID]; ok {
				row.WeeklyWins++
				row.WeeklyPrize += prize
			}
		}
	}

	for _, month := range mapping.Months() {
		if currentGw < mapping.LastGw(month) {
			continue
		}
		winners := winnersAtRankOne(BuildMonthlyRanking(table, mapping, month, policy))
		if len(winners) == 0 {
			continue
		}
		prize := pools.Monthly / float64(len(winners))
		for _, w := range winners {
			if row, ok := index[w.TeamID]; ok {
				row.MonthlyWins++
				row.MonthlyPrize += prize
			}
		}
	}

	for i := range rows {
		rows[i].TotalAwards = rows[i].WeeklyWins + rows[i].MonthlyWins
		rows[i].TotalPrize = rows[i].WeeklyPrize + rows[i].MonthlyPrize
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.TotalPrize != b.TotalPrize {
			return a.TotalPrize > b.TotalPrize
		}
		if a.TotalAwards != b.TotalAwards {
			return a.TotalAwards > b.TotalAwards
		}
		if a.WeeklyWins != b.WeeklyWins {
			return a.WeeklyWins > b.WeeklyWins
		}
		return a.MonthlyWins > b.MonthlyWins
	})

	for i := range rows {
		rows[i].Rank = i + 1
		rows[i].Medal = models.MedalForRank(rows[i].Rank)
	}
	return rows
}
