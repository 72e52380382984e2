package processor

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fplhub/fpl-league-hub/internal/fpl"
	"github.com/fplhub/fpl-league-hub/internal/models"
)

// PicksFetcher fetches one entry's squad for one gameweek.
type PicksFetcher interface {
	GetEntryPicks(ctx context.Context, teamID, gw int) (*fpl.GwPicks, error)
}

// DefaultTopPicks is the cutoff used when the caller does not ask for a
// specific N.
const DefaultTopPicks = 5

// PicksCounter tallies how often each player appears across every entry's
// 15-man squad over a gameweek range.
type PicksCounter struct {
	fetcher    PicksFetcher
	logger     *logrus.Logger
	maxWorkers int
}

func NewPicksCounter(fetcher PicksFetcher, logger *logrus.Logger, maxWorkers int) *PicksCounter {
	return &PicksCounter{fetcher: fetcher, logger: logger, maxWorkers: maxWorkers}
}

// TopPicks counts pick frequency per player, joins with player names, and
// returns the top n by times picked. percent_of_entries is count over
// (entries x gameweeks), rounded to one decimal. Ties at the cutoff are
// truncated strictly; equal counts order by element id so the result is
// deterministic.
func (p *PicksCounter) TopPicks(ctx context.Context, entries []models.Entry, gwRange []int, playerNames map[int]string, n int) []models.PickRow {
	if len(entries) == 0 || len(gwRange) == 0 {
		return nil
	}
	if n <= 0 {
		n = DefaultTopPicks
	}

	var mu sync.Mutex
	counts := map[int]int{}

	forEachEntry(ctx, entries, p.maxWorkers, func(ctx context.Context, entry models.Entry) {
		for _, gw := range gwRange {
			picks, err := p.fetcher.GetEntryPicks(ctx, entry.TeamID, gw)
			if err != nil {
				p.logger.WithError(err).WithFields(logrus.Fields{
					"team_id": entry.TeamID,
					"gw":      gw,
				}).Warn("Failed to fetch picks, skipping")
				continue
			}
			mu.Lock()
			for _, pick := range picks.Picks {
				counts[pick.Element]++
			}
			mu.Unlock()
		}
	})

	if len(counts) == 0 {
		return nil
	}

	type elementCount struct {
		element int
		count   int
	}
	ranked := make([]elementCount, 0, len(counts))
	for element, count := range counts {
		ranked = append(ranked, elementCount{element, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].element < ranked[j].element
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	denominator := float64(len(entries) * len(gwRange))
	rows := make([]models.PickRow, 0, len(ranked))
	for _, ec := range ranked {
		name, ok := playerNames[ec.element]
		if !ok {
			name = unknownPlayerName(ec.element)
		}
		percent := float64(ec.count) / denominator * 100
		rows = append(rows, models.PickRow{
			Player:           name,
			TimesPicked:      ec.count,
			PercentOfEntries: math.Round(percent*10) / 10,
		})
	}
	return rows
}
