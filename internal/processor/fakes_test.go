package processor

import (
	"context"
	"errors"
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/fplhub/fpl-league-hub/internal/fpl"
	"github.com/fplhub/fpl-league-hub/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

var errFetchFailed = errors.New("fetch failed")

// fakeHistoryFetcher serves canned histories keyed by team id and fails for
// ids listed in failing.
type fakeHistoryFetcher struct {
	histories map[int]*fpl.EntryHistory
	failing   map[int]bool
	calls     atomic.Int64
}

func (f *fakeHistoryFetcher) GetEntryHistory(_ context.Context, teamID int) (*fpl.EntryHistory, error) {
	f.calls.Add(1)
	if f.failing[teamID] {
		return nil, errFetchFailed
	}
	return f.histories[teamID], nil
}

type fakePicksFetcher struct {
	picks   map[int]map[int]*fpl.GwPicks // teamID -> gw -> picks
	failing map[int]bool
}

func (f *fakePicksFetcher) GetEntryPicks(_ context.Context, teamID, gw int) (*fpl.GwPicks, error) {
	if f.failing[teamID] {
		return nil, errFetchFailed
	}
	if p, ok := f.picks[teamID][gw]; ok {
		return p, nil
	}
	return &fpl.GwPicks{}, nil
}

type fakeTransfersFetcher struct {
	transfers map[int][]fpl.Transfer
	failing   map[int]bool
}

func (f *fakeTransfersFetcher) GetEntryTransfers(_ context.Context, teamID int) ([]fpl.Transfer, error) {
	if f.failing[teamID] {
		return nil, errFetchFailed
	}
	return f.transfers[teamID], nil
}

// fakePoints resolves player points from a (element, gw) map, zero otherwise.
type fakePoints struct {
	points map[[2]int]int
}

func (f *fakePoints) PlayerGwPoints(_ context.Context, elementID, gw int) int {
	return f.points[[2]int{elementID, gw}]
}

func history(events ...fpl.GwEvent) *fpl.EntryHistory {
	return &fpl.EntryHistory{Current: events}
}

func gwEvent(gw, points int) fpl.GwEvent {
	return fpl.GwEvent{Event: gw, Points: points, TotalPoints: points}
}

func testEntries(n int) []models.Entry {
	entries := make([]models.Entry, 0, n)
	for i := 1; i <= n; i++ {
		letter := string(rune('A' + i - 1))
		entries = append(entries, models.Entry{
			TeamID:  i,
			Manager: "Manager " + letter,
			Team:    "Team " + letter,
		})
	}
	return entries
}
