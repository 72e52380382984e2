package processor

import (
	"github.com/fplhub/fpl-league-hub/internal/models"
)

// BuildWeeklyRanking ranks one gameweek. Rows with Points == 0 are unplayed
// and filtered out before ranking; an empty result means the gameweek has
// not been played at all.
func BuildWeeklyRanking(table []models.GwRecord, gw int, policy TiebreakPolicy) []models.RankingRow {
	var rows []models.RankingRow
	for _, rec := range table {
		if rec.Gw != gw || rec.Points == 0 {
			continue
		}
		rows = append(rows, models.RankingRow{
			TeamID:       rec.TeamID,
			Manager:      rec.Manager,
			Team:         rec.Team,
			Points:       rec.Points,
			Transfers:    rec.Transfers,
			TransferCost: rec.TransferCost,
			TransferInfo: FormatTransferInfo(rec.Transfers, rec.TransferCost),
			NetPoints:    rec.NetPoints(),
		})
	}
	if len(rows) == 0 {
		return nil
	}
	return RankRows(rows, policy)
}

// BuildMonthlyRanking ranks one month by summing its gameweeks per manager.
func BuildMonthlyRanking(table []models.GwRecord, mapping MonthMapping, month int, policy TiebreakPolicy) []models.RankingRow {
	monthGws := map[int]bool{}
	for _, gw := range mapping.GwsForMonth(month) {
		monthGws[gw] = true
	}
	if len(monthGws) == 0 {
		return nil
	}

	totals := map[int]*models.RankingRow{}
	var order []int
	for _, rec := range table {
		if !monthGws[rec.Gw] {
			continue
		}
		row, ok := totals[rec.TeamID]
		if !ok {
			row = &models.RankingRow{
				TeamID:  rec.TeamID,
				Manager: rec.Manager,
				Team:    rec.Team,
			}
			totals[rec.TeamID] = row
			order = append(order, rec.TeamID)
		}
		row.Points += rec.Points
		row.Transfers += rec.Transfers
		row.TransferCost += rec.TransferCost
	}
	if len(totals) == 0 {
		return nil
	}

	rows := make([]models.RankingRow, 0, len(totals))
	for _, teamID := range order {
		row := totals[teamID]
		row.TransferInfo = FormatTransferInfo(row.Transfers, row.TransferCost)
		row.NetPoints = row.Points - row.TransferCost
		rows = append(rows, *row)
	}
	return RankRows(rows, policy)
}
