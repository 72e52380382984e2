package processor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fplhub/fpl-league-hub/internal/fpl"
	"github.com/fplhub/fpl-league-hub/internal/models"
)

func TestGwTableBuilderBuild(t *testing.T) {
	entries := testEntries(2)

	t.Run("rectangular table over the range", func(t *testing.T) {
		fetcher := &fakeHistoryFetcher{histories: map[int]*fpl.EntryHistory{
			1: history(gwEvent(1, 50), gwEvent(2, 60)),
			2: history(gwEvent(1, 55)),
		}}
		builder := NewGwTableBuilder(fetcher, testLogger(), 4, 0)

		table, err := builder.Build(context.Background(), entries, GwRange(1, 2))
		require.NoError(t, err)
		require.Len(t, table, 4)

		// Entry 2 has no gw2 event; its row exists and is zero.
		byKey := map[[2]int]models.GwRecord{}
		for _, rec := range table {
			byKey[[2]int{rec.TeamID, rec.Gw}] = rec
		}
		assert.Equal(t, 50, byKey[[2]int{1, 1}].Points)
		assert.Equal(t, 60, byKey[[2]int{1, 2}].Points)
		assert.Equal(t, 55, byKey[[2]int{2, 1}].Points)
		assert.Equal(t, 0, byKey[[2]int{2, 2}].Points)
	})

	t.Run("failed entry degrades to zero rows, not a missing entry", func(t *testing.T) {
		fetcher := &fakeHistoryFetcher{
			histories: map[int]*fpl.EntryHistory{1: history(gwEvent(1, 50))},
			failing:   map[int]bool{2: true},
		}
		builder := NewGwTableBuilder(fetcher, testLogger(), 4, 0)

		table, err := builder.Build(context.Background(), entries, GwRange(1, 3))
		require.NoError(t, err)
		assert.Len(t, table, 6)

		var entry2Rows int
		for _, rec := range table {
			if rec.TeamID == 2 {
				entry2Rows++
				assert.Zero(t, rec.Points)
				assert.Equal(t, "Manager B", rec.Manager)
			}
		}
		assert.Equal(t, 3, entry2Rows)
	})

	t.Run("merge order follows entry order", func(t *testing.T) {
		many := testEntries(8)
		histories := map[int]*fpl.EntryHistory{}
		for _, e := range many {
			histories[e.TeamID] = history(gwEvent(1, 40+e.TeamID))
		}
		builder := NewGwTableBuilder(&fakeHistoryFetcher{histories: histories}, testLogger(), 3, time.Millisecond)

		table, err := builder.Build(context.Background(), many, GwRange(1, 1))
		require.NoError(t, err)
		require.Len(t, table, 8)
		for i, rec := range table {
			assert.Equal(t, many[i].TeamID, rec.TeamID)
		}
	})

	t.Run("one history fetch per entry", func(t *testing.T) {
		fetcher := &fakeHistoryFetcher{histories: map[int]*fpl.EntryHistory{
			1: history(gwEvent(1, 50)),
			2: history(gwEvent(1, 55)),
		}}
		builder := NewGwTableBuilder(fetcher, testLogger(), 2, 0)

		_, err := builder.Build(context.Background(), entries, GwRange(1, 10))
		require.NoError(t, err)
		assert.Equal(t, int64(2), fetcher.calls.Load())
	})

	t.Run("no entries is a hard failure", func(t *testing.T) {
		builder := NewGwTableBuilder(&fakeHistoryFetcher{}, testLogger(), 2, 0)
		_, err := builder.Build(context.Background(), nil, GwRange(1, 5))
		assert.ErrorIs(t, err, ErrEmptyResult)
	})
}

func TestGwRange(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, GwRange(1, 3))
	assert.Equal(t, []int{1, 2}, GwRange(-5, 2))
	assert.Equal(t, 38, GwRange(37, 99)[1])
	assert.Nil(t, GwRange(5, 4))
}

func TestDistinctHelpers(t *testing.T) {
	table := []models.GwRecord{
		{TeamID: 2, Manager: "B", Gw: 2},
		{TeamID: 1, Manager: "A", Gw: 1},
		{TeamID: 2, Manager: "B", Gw: 1},
	}

	assert.Equal(t, []int{1, 2}, DistinctGws(table))

	managers := DistinctManagers(table)
	require.Len(t, managers, 2)
	assert.Equal(t, 2, managers[0].TeamID)
	assert.Equal(t, 1, managers[1].TeamID)
}
