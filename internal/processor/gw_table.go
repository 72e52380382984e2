package processor

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fplhub/fpl-league-hub/internal/fpl"
	"github.com/fplhub/fpl-league-hub/internal/models"
)

// ErrEmptyResult means a build produced zero rows from an otherwise
// successful pass. Unlike per-entry fetch failures this is surfaced hard: it
// indicates a configuration mistake (wrong league id), not a data gap.
var ErrEmptyResult = errors.New("processor: no rows produced")

// HistoryFetcher fetches one entry's season history. The FPL client
// satisfies this; tests substitute fakes.
type HistoryFetcher interface {
	GetEntryHistory(ctx context.Context, teamID int) (*fpl.EntryHistory, error)
}

// GwTableBuilder assembles the flat per-entry per-gameweek points table with
// a bounded worker pool, one history fetch per entry.
type GwTableBuilder struct {
	fetcher      HistoryFetcher
	logger       *logrus.Logger
	maxWorkers   int
	requestDelay time.Duration
}

// NewGwTableBuilder creates a builder. requestDelay is advisory pacing,
// divided across workers.
func NewGwTableBuilder(fetcher HistoryFetcher, logger *logrus.Logger, maxWorkers int, requestDelay time.Duration) *GwTableBuilder {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	return &GwTableBuilder{
		fetcher:      fetcher,
		logger:       logger,
		maxWorkers:   maxWorkers,
		requestDelay: requestDelay,
	}
}

// entryResult is one worker's outcome: the fetched history, or the error
// that will be degraded to zero rows at the merge boundary.
type entryResult struct {
	entry   models.Entry
	history *fpl.EntryHistory
	err     error
}

// Build fetches each entry's history once and produces exactly
// |entries| x |gwRange| rows: gameweeks missing from an entry's history, or
// an entire failed entry, become zero-valued rows. Row order follows entry
// order then gameweek order; callers must not rely on it beyond that.
func (b *GwTableBuilder) Build(ctx context.Context, entries []models.Entry, gwRange []int) ([]models.GwRecord, error) {
	if len(entries) == 0 || len(gwRange) == 0 {
		return nil, ErrEmptyResult
	}

	results := make(chan entryResult, len(entries))
	sem := make(chan struct{}, b.maxWorkers)
	var wg sync.WaitGroup

	pacing := b.requestDelay / time.Duration(b.maxWorkers)

	for _, entry := range entries {
		wg.Add(1)
		go func(entry models.Entry) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			history, err := b.fetcher.GetEntryHistory(ctx, entry.TeamID)
			results <- entryResult{entry: entry, history: history, err: err}

			if pacing > 0 {
				select {
				case <-ctx.Done():
				case <-time.After(pacing):
				}
			}
		}(entry)
	}

	wg.Wait()
	close(results)

	byTeam := make(map[int]entryResult, len(entries))
	for res := range results {
		byTeam[res.entry.TeamID] = res
	}

	// Merge in submission order so the table is deterministic even though
	// fetch completion order is not.
	var records []models.GwRecord
	for _, entry := range entries {
		res := byTeam[entry.TeamID]
		if res.err != nil {
			b.logger.WithError(res.err).WithField("team_id", entry.TeamID).
				Warn("Entry history fetch failed, degrading to zero rows")
		}
		records = append(records, b.entryRows(entry, res.history, gwRange)...)
	}

	if len(records) == 0 {
		return nil, ErrEmptyResult
	}
	return records, nil
}

// entryRows expands one entry's history over gwRange, zero-filling every
// gameweek the history does not cover. A nil history yields all-zero rows;
// the entry never vanishes from the table.
func (b *GwTableBuilder) entryRows(entry models.Entry, history *fpl.EntryHistory, gwRange []int) []models.GwRecord {
	events := map[int]fpl.GwEvent{}
	if history != nil {
		for _, event := range history.Current {
			events[event.Event] = event
		}
	}

	rows := make([]models.GwRecord, 0, len(gwRange))
	for _, gw := range gwRange {
		row := models.GwRecord{
			TeamID:  entry.TeamID,
			Manager: entry.Manager,
			Team:    entry.Team,
			Gw:      gw,
		}
		if event, ok := events[gw]; ok {
			row.Points = event.Points
			row.TotalPoints = event.TotalPoints
			row.Transfers = event.EventTransfers
			row.TransferCost = event.EventTransfersCost
			row.BenchPoints = event.PointsOnBench
		}
		rows = append(rows, row)
	}
	return rows
}

// GwRange expands [start,end] into the inclusive list of gameweeks, clamped
// to the 1-38 season calendar.
func GwRange(start, end int) []int {
	if start < 1 {
		start = 1
	}
	if end > 38 {
		end = 38
	}
	var gws []int
	for gw := start; gw <= end; gw++ {
		gws = append(gws, gw)
	}
	return gws
}

// DistinctGws returns the sorted distinct gameweeks present in a table.
func DistinctGws(table []models.GwRecord) []int {
	seen := map[int]bool{}
	var gws []int
	for _, row := range table {
		if !seen[row.Gw] {
			seen[row.Gw] = true
			gws = append(gws, row.Gw)
		}
	}
	sort.Ints(gws)
	return gws
}

// DistinctManagers returns the fixed universe of managers in a table, in
// first-appearance order.
func DistinctManagers(table []models.GwRecord) []models.Entry {
	seen := map[int]bool{}
	var entries []models.Entry
	for _, row := range table {
		if !seen[row.TeamID] {
			seen[row.TeamID] = true
			entries = append(entries, models.Entry{
				TeamID:  row.TeamID,
				Manager: row.Manager,
				Team:    row.Team,
			})
		}
	}
	return entries
}
