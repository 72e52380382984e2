package processor

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fplhub/fpl-league-hub/internal/fpl"
	"github.com/fplhub/fpl-league-hub/internal/models"
)

// TransfersFetcher fetches one entry's season transfer list.
type TransfersFetcher interface {
	GetEntryTransfers(ctx context.Context, teamID int) ([]fpl.Transfer, error)
}

// PlayerPointsResolver resolves a player's points in one gameweek. Fetch
// failures resolve to 0.
type PlayerPointsResolver interface {
	PlayerGwPoints(ctx context.Context, elementID, gw int) int
}

// FunStatsCalculator finds the extremal captain picks, bench scores and
// transfer swings per gameweek across all entries.
type FunStatsCalculator struct {
	histories  HistoryFetcher
	picks      PicksFetcher
	transfers  TransfersFetcher
	points     PlayerPointsResolver
	logger     *logrus.Logger
	maxWorkers int
}

func NewFunStatsCalculator(histories HistoryFetcher, picks PicksFetcher, transfers TransfersFetcher, points PlayerPointsResolver, logger *logrus.Logger, maxWorkers int) *FunStatsCalculator {
	return &FunStatsCalculator{
		histories:  histories,
		picks:      picks,
		transfers:  transfers,
		points:     points,
		logger:     logger,
		maxWorkers: maxWorkers,
	}
}

// entryGwStat is one entry's raw material for one gameweek's extremes.
// transferNet is nil when the entry made no transfers that gameweek: a
// zero-transfer week is excluded from transfer extremes, which is different
// from a computed net of exactly 0.
type entryGwStat struct {
	manager       string
	captainName   string
	captainPoints int
	benchPoints   int
	transferNet   *int
}

// BuildFunStats computes per-gameweek extremes. Captain score is the
// captain's gameweek points times the pick's multiplier (3 under a triple
// captain chip). Bench score is the entry's reported points_on_bench.
// Extremes are sets of all entries tied at the max/min, pipe-joined.
func (f *FunStatsCalculator) BuildFunStats(ctx context.Context, entries []models.Entry, gwRange []int, playerNames map[int]string) []models.FunStatsRow {
	if len(entries) == 0 || len(gwRange) == 0 {
		return nil
	}

	var mu sync.Mutex
	histories := map[int]*fpl.EntryHistory{}
	transfers := map[int][]fpl.Transfer{}

	forEachEntry(ctx, entries, f.maxWorkers, func(ctx context.Context, entry models.Entry) {
		history, err := f.histories.GetEntryHistory(ctx, entry.TeamID)
		if err != nil {
			f.logger.WithError(err).WithField("team_id", entry.TeamID).Warn("Failed to fetch history for fun stats")
		}
		trs, err := f.transfers.GetEntryTransfers(ctx, entry.TeamID)
		if err != nil {
			f.logger.WithError(err).WithField("team_id", entry.TeamID).Warn("Failed to fetch transfers for fun stats")
		}
		mu.Lock()
		histories[entry.TeamID] = history
		transfers[entry.TeamID] = trs
		mu.Unlock()
	})

	var rows []models.FunStatsRow
	for _, gw := range gwRange {
		stats := f.gwStats(ctx, entries, gw, histories, transfers, playerNames)
		if len(stats) == 0 {
			continue
		}
		rows = append(rows, buildFunStatsRow(gw, stats))
	}
	return rows
}

func (f *FunStatsCalculator) gwStats(ctx context.Context, entries []models.Entry, gw int, histories map[int]*fpl.EntryHistory, transfers map[int][]fpl.Transfer, playerNames map[int]string) []entryGwStat {
	var mu sync.Mutex
	var stats []entryGwStat

	forEachEntry(ctx, entries, f.maxWorkers, func(ctx context.Context, entry models.Entry) {
		stat := entryGwStat{manager: entry.Manager, captainName: "Unknown"}

		if history := histories[entry.TeamID]; history != nil {
			for _, event := range history.Current {
				if event.Event == gw {
					stat.benchPoints = event.PointsOnBench
					break
				}
			}
		}

		picks, err := f.picks.GetEntryPicks(ctx, entry.TeamID, gw)
		if err != nil {
			f.logger.WithError(err).WithFields(logrus.Fields{
				"team_id": entry.TeamID,
				"gw":      gw,
			}).Warn("Failed to fetch picks for fun stats, using defaults")
		} else {
			for _, pick := range picks.Picks {
				if !pick.IsCaptain {
					continue
				}
				points := f.points.PlayerGwPoints(ctx, pick.Element, gw)
				multiplier := pick.Multiplier
				if multiplier == 0 {
					multiplier = 1
				}
				stat.captainPoints = points * multiplier
				if name, ok := playerNames[pick.Element]; ok {
					stat.captainName = name
				} else {
					stat.captainName = unknownPlayerName(pick.Element)
				}
				break
			}
		}

		var in, out, made int
		for _, tr := range transfers[entry.TeamID] {
			if tr.Event != gw {
				continue
			}
			made++
			in += f.points.PlayerGwPoints(ctx, tr.ElementIn, gw)
			out += f.points.PlayerGwPoints(ctx, tr.ElementOut, gw)
		}
		if made > 0 {
			net := in - out
			stat.transferNet = &net
		}

		mu.Lock()
		stats = append(stats, stat)
		mu.Unlock()
	})

	// Deterministic formatting order regardless of fetch completion.
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].manager < stats[j].manager })
	return stats
}

func buildFunStatsRow(gw int, stats []entryGwStat) models.FunStatsRow {
	maxCaptain, minCaptain := stats[0].captainPoints, stats[0].captainPoints
	maxBench := stats[0].benchPoints
	for _, s := range stats {
		if s.captainPoints > maxCaptain {
			maxCaptain = s.captainPoints
		}
		if s.captainPoints < minCaptain {
			minCaptain = s.captainPoints
		}
		if s.benchPoints > maxBench {
			maxBench = s.benchPoints
		}
	}

	var hasTransfers bool
	var maxTransfer, minTransfer int
	for _, s := range stats {
		if s.transferNet == nil {
			continue
		}
		if !hasTransfers {
			maxTransfer, minTransfer = *s.transferNet, *s.transferNet
			hasTransfers = true
			continue
		}
		if *s.transferNet > maxTransfer {
			maxTransfer = *s.transferNet
		}
		if *s.transferNet < minTransfer {
			minTransfer = *s.transferNet
		}
	}

	var bestCaptains, worstCaptains, bestBenches, bestTransfers, worstTransfers []string
	for _, s := range stats {
		if s.captainPoints == maxCaptain {
			bestCaptains = append(bestCaptains, fmt.Sprintf("%s - %s (%d)", s.manager, s.captainName, s.captainPoints))
		}
		if s.captainPoints == minCaptain {
			worstCaptains = append(worstCaptains, fmt.Sprintf("%s - %s (%d)", s.manager, s.captainName, s.captainPoints))
		}
		if s.benchPoints == maxBench {
			bestBenches = append(bestBenches, fmt.Sprintf("%s (%d)", s.manager, s.benchPoints))
		}
		if hasTransfers && s.transferNet != nil {
			if *s.transferNet == maxTransfer {
				bestTransfers = append(bestTransfers, fmt.Sprintf("%s (%s)", s.manager, formatTransferNet(*s.transferNet)))
			}
			if *s.transferNet == minTransfer {
				worstTransfers = append(worstTransfers, fmt.Sprintf("%s (%s)", s.manager, formatTransferNet(*s.transferNet)))
			}
		}
	}

	row := models.FunStatsRow{
		Gw:            gw,
		BestCaptain:   strings.Join(bestCaptains, " | "),
		WorstCaptain:  strings.Join(worstCaptains, " | "),
		BestBench:     strings.Join(bestBenches, " | "),
		BestTransfer:  "-",
		WorstTransfer: "-",
	}
	if len(bestTransfers) > 0 {
		row.BestTransfer = strings.Join(bestTransfers, " | ")
	}
	if len(worstTransfers) > 0 {
		row.WorstTransfer = strings.Join(worstTransfers, " | ")
	}
	return row
}

func formatTransferNet(net int) string {
	if net > 0 {
		return fmt.Sprintf("+%d", net)
	}
	return fmt.Sprintf("%d", net)
}
