package processor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fplhub/fpl-league-hub/internal/fpl"
)

func captainSquad(captain, multiplier int) *fpl.GwPicks {
	return &fpl.GwPicks{Picks: []fpl.Pick{
		{Element: captain, Multiplier: multiplier, IsCaptain: true},
		{Element: 99, Multiplier: 1},
	}}
}

func TestFunStatsCalculator(t *testing.T) {
	entries := testEntries(2)
	names := map[int]string{10: "Salah", 20: "Haaland"}

	histories := &fakeHistoryFetcher{histories: map[int]*fpl.EntryHistory{
		1: {Current: []fpl.GwEvent{{Event: 1, Points: 50, PointsOnBench: 12}}},
		2: {Current: []fpl.GwEvent{{Event: 1, Points: 60, PointsOnBench: 3}}},
	}}
	picks := &fakePicksFetcher{picks: map[int]map[int]*fpl.GwPicks{
		1: {1: captainSquad(10, 2)},
		2: {1: captainSquad(20, 2)},
	}}
	transfers := &fakeTransfersFetcher{transfers: map[int][]fpl.Transfer{
		1: {{Event: 1, ElementIn: 20, ElementOut: 30}},
	}}
	points := &fakePoints{points: map[[2]int]int{
		{10, 1}: 15,
		{20, 1}: 8,
		{30, 1}: 2,
	}}

	calc := NewFunStatsCalculator(histories, picks, transfers, points, testLogger(), 2)
	rows := calc.BuildFunStats(context.Background(), entries, []int{1}, names)
	require.Len(t, rows, 1)
	row := rows[0]

	t.Run("captain extremes use multiplied points", func(t *testing.T) {
		assert.Equal(t, "Manager A - Salah (30)", row.BestCaptain)
		assert.Equal(t, "Manager B - Haaland (16)", row.WorstCaptain)
	})

	t.Run("best bench from history", func(t *testing.T) {
		assert.Equal(t, "Manager A (12)", row.BestBench)
	})

	t.Run("zero transfer entries excluded from transfer extremes", func(t *testing.T) {
		// Only Manager A transferred: in 8, out 2, net +6 on both sides.
		assert.Equal(t, "Manager A (+6)", row.BestTransfer)
		assert.Equal(t, "Manager A (+6)", row.WorstTransfer)
	})
}

func TestFunStatsTiedExtremes(t *testing.T) {
	entries := testEntries(2)
	names := map[int]string{10: "Salah"}

	histories := &fakeHistoryFetcher{histories: map[int]*fpl.EntryHistory{
		1: {Current: []fpl.GwEvent{{Event: 1, PointsOnBench: 5}}},
		2: {Current: []fpl.GwEvent{{Event: 1, PointsOnBench: 5}}},
	}}
	picks := &fakePicksFetcher{picks: map[int]map[int]*fpl.GwPicks{
		1: {1: captainSquad(10, 2)},
		2: {1: captainSquad(10, 2)},
	}}
	points := &fakePoints{points: map[[2]int]int{{10, 1}: 9}}

	calc := NewFunStatsCalculator(histories, picks, &fakeTransfersFetcher{}, points, testLogger(), 2)
	rows := calc.BuildFunStats(context.Background(), entries, []int{1}, names)
	require.Len(t, rows, 1)

	assert.Equal(t, "Manager A - Salah (18) | Manager B - Salah (18)", rows[0].BestCaptain)
	assert.Equal(t, rows[0].BestCaptain, rows[0].WorstCaptain)
	assert.Equal(t, "Manager A (5) | Manager B (5)", rows[0].BestBench)
}

func TestFunStatsNoTransfers(t *testing.T) {
	entries := testEntries(1)
	histories := &fakeHistoryFetcher{histories: map[int]*fpl.EntryHistory{
		1: {Current: []fpl.GwEvent{{Event: 1, PointsOnBench: 2}}},
	}}
	picks := &fakePicksFetcher{picks: map[int]map[int]*fpl.GwPicks{
		1: {1: captainSquad(10, 2)},
	}}

	calc := NewFunStatsCalculator(histories, picks, &fakeTransfersFetcher{}, &fakePoints{}, testLogger(), 1)
	rows := calc.BuildFunStats(context.Background(), entries, []int{1}, nil)
	require.Len(t, rows, 1)

	assert.Equal(t, "-", rows[0].BestTransfer)
	assert.Equal(t, "-", rows[0].WorstTransfer)
}

func TestFunStatsFailedFetchesDegrade(t *testing.T) {
	entries := testEntries(2)
	histories := &fakeHistoryFetcher{
		histories: map[int]*fpl.EntryHistory{
			1: {Current: []fpl.GwEvent{{Event: 1, PointsOnBench: 7}}},
		},
		failing: map[int]bool{2: true},
	}
	picks := &fakePicksFetcher{
		picks:   map[int]map[int]*fpl.GwPicks{1: {1: captainSquad(10, 2)}},
		failing: map[int]bool{2: true},
	}
	points := &fakePoints{points: map[[2]int]int{{10, 1}: 4}}

	calc := NewFunStatsCalculator(histories, picks, &fakeTransfersFetcher{failing: map[int]bool{2: true}}, points, testLogger(), 2)
	rows := calc.BuildFunStats(context.Background(), entries, []int{1}, map[int]string{10: "Salah"})
	require.Len(t, rows, 1)

	// The failed entry still participates with zeroed stats.
	assert.Equal(t, "Manager A - Salah (8)", rows[0].BestCaptain)
	assert.Equal(t, "Manager B - Unknown (0)", rows[0].WorstCaptain)
	assert.Equal(t, "Manager A (7)", rows[0].BestBench)
}
