package processor

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fplhub/fpl-league-hub/internal/models"
)

func unknownPlayerName(elementID int) string {
	return fmt.Sprintf("Player_%d", elementID)
}

// TransferHistoryBuilder expands every entry's season transfer list into
// display rows with the points each side of the swap scored.
type TransferHistoryBuilder struct {
	transfers  TransfersFetcher
	points     PlayerPointsResolver
	logger     *logrus.Logger
	maxWorkers int
}

func NewTransferHistoryBuilder(transfers TransfersFetcher, points PlayerPointsResolver, logger *logrus.Logger, maxWorkers int) *TransferHistoryBuilder {
	return &TransferHistoryBuilder{transfers: transfers, points: points, logger: logger, maxWorkers: maxWorkers}
}

// Build returns one row per transfer per entry, restricted to gwRange,
// ordered by gameweek then manager. An entry whose transfer fetch fails
// contributes no rows.
func (t *TransferHistoryBuilder) Build(ctx context.Context, entries []models.Entry, gwRange []int, playerNames map[int]string) []models.TransferRow {
	if len(entries) == 0 || len(gwRange) == 0 {
		return nil
	}
	inRange := map[int]bool{}
	for _, gw := range gwRange {
		inRange[gw] = true
	}

	var mu sync.Mutex
	var rows []models.TransferRow

	forEachEntry(ctx, entries, t.maxWorkers, func(ctx context.Context, entry models.Entry) {
		transfers, err := t.transfers.GetEntryTransfers(ctx, entry.TeamID)
		if err != nil {
			t.logger.WithError(err).WithField("team_id", entry.TeamID).Warn("Failed to fetch transfers, skipping entry")
			return
		}
		var entryRows []models.TransferRow
		for _, tr := range transfers {
			if !inRange[tr.Event] {
				continue
			}
			inName, ok := playerNames[tr.ElementIn]
			if !ok {
				inName = unknownPlayerName(tr.ElementIn)
			}
			outName, ok := playerNames[tr.ElementOut]
			if !ok {
				outName = unknownPlayerName(tr.ElementOut)
			}
			inPoints := t.points.PlayerGwPoints(ctx, tr.ElementIn, tr.Event)
			outPoints := t.points.PlayerGwPoints(ctx, tr.ElementOut, tr.Event)
			entryRows = append(entryRows, models.TransferRow{
				TeamID:          entry.TeamID,
				Manager:         entry.Manager,
				Team:            entry.Team,
				Gw:              tr.Event,
				PlayerIn:        inName,
				PlayerOut:       outName,
				PlayerInPoints:  inPoints,
				PlayerOutPoints: outPoints,
				Display:         fmt.Sprintf("%s (%d) - %s (%d)", inName, inPoints, outName, outPoints),
			})
		}
		mu.Lock()
		rows = append(rows, entryRows...)
		mu.Unlock()
	})

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Gw != rows[j].Gw {
			return rows[i].Gw < rows[j].Gw
		}
		return rows[i].Manager < rows[j].Manager
	})
	return rows
}
