package processor

import (
	"sort"

	"github.com/fplhub/fpl-league-hub/internal/models"
)

// completeMonths returns the months whose last mapped gameweek has been
// played: the record for that gameweek exists with points > 0 for at least
// one entry. This is a season-progress proxy, not per-manager completeness.
func completeMonths(table []models.GwRecord, mapping MonthMapping) map[int]bool {
	playedGws := map[int]bool{}
	for _, rec := range table {
		if rec.Points > 0 {
			playedGws[rec.Gw] = true
		}
	}

	complete := map[int]bool{}
	for _, month := range mapping.Months() {
		if playedGws[mapping.LastGw(month)] {
			complete[month] = true
		}
	}
	return complete
}

// aggregateMonths sums points/transfers/costs per (manager, month) for the
// given months, building rows in first-appearance order.
func aggregateMonths(table []models.GwRecord, mapping MonthMapping, include map[int]bool) []models.MonthSummaryRow {
	rows := map[int]*models.MonthSummaryRow{}
	var order []int

	for _, rec := range table {
		month := mapping.MonthFor(rec.Gw)
		if month == 0 || !include[month] {
			continue
		}
		row, ok := rows[rec.TeamID]
		if !ok {
			row = &models.MonthSummaryRow{
				TeamID:  rec.TeamID,
				Manager: rec.Manager,
				Team:    rec.Team,
				Months:  map[int]models.MonthCell{},
			}
			rows[rec.TeamID] = row
			order = append(order, rec.TeamID)
		}
		cell := row.Months[month]
		cell.Points += rec.Points
		cell.Transfers += rec.Transfers
		cell.TransferCost += rec.TransferCost
		row.Months[month] = cell
	}

	result := make([]models.MonthSummaryRow, 0, len(rows))
	for _, teamID := range order {
		row := rows[teamID]
		for month, cell := range row.Months {
			cell.TransferInfo = FormatTransferInfo(cell.Transfers, cell.TransferCost)
			row.Months[month] = cell
			row.Total += cell.Points - cell.TransferCost
		}
		result = append(result, *row)
	}
	return result
}

// BuildMonthTable aggregates only complete months (see completeMonths).
// Total = sum of points minus sum of transfer costs across included months.
// An empty mapping degrades to an empty table.
func BuildMonthTable(table []models.GwRecord, mapping MonthMapping) []models.MonthSummaryRow {
	if len(mapping) == 0 {
		return nil
	}
	include := completeMonths(table, mapping)
	if len(include) == 0 {
		return nil
	}
	rows := aggregateMonths(table, mapping, include)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Total > rows[j].Total })
	return rows
}

// BuildMonthTableFull aggregates every mapped month regardless of season
// progress, zero-filling months without data, and assigns a competition rank
// on Total descending (ties share a rank).
func BuildMonthTableFull(table []models.GwRecord, mapping MonthMapping) []models.MonthSummaryRow {
	if len(mapping) == 0 {
		return nil
	}
	include := map[int]bool{}
	for _, month := range mapping.Months() {
		include[month] = true
	}

	rows := aggregateMonths(table, mapping, include)

	// Zero-fill months a manager has no mapped rows for, so every row
	// carries every month column.
	for i := range rows {
		for _, month := range mapping.Months() {
			if _, ok := rows[i].Months[month]; !ok {
				rows[i].Months[month] = models.MonthCell{TransferInfo: FormatTransferInfo(0, 0)}
			}
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Total > rows[j].Total })

	totals := make([]int, len(rows))
	for i, row := range rows {
		totals[i] = row.Total
	}
	for i, rank := range competitionRanks(totals) {
		rows[i].Rank = rank
		rows[i].Medal = models.MedalForRank(rank)
	}
	return rows
}
