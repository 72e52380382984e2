package processor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fplhub/fpl-league-hub/internal/fpl"
)

func squad(elements ...int) *fpl.GwPicks {
	picks := make([]fpl.Pick, 0, len(elements))
	for i, el := range elements {
		picks = append(picks, fpl.Pick{Element: el, Position: i + 1, Multiplier: 1})
	}
	return &fpl.GwPicks{Picks: picks}
}

func TestPicksCounterTopPicks(t *testing.T) {
	entries := testEntries(2)
	names := map[int]string{10: "Salah", 20: "Haaland", 30: "Saka"}

	fetcher := &fakePicksFetcher{picks: map[int]map[int]*fpl.GwPicks{
		1: {1: squad(10, 20), 2: squad(10, 30)},
		2: {1: squad(10, 20), 2: squad(20, 30)},
	}}
	counter := NewPicksCounter(fetcher, testLogger(), 2)

	t.Run("counts across entries and gameweeks", func(t *testing.T) {
		rows := counter.TopPicks(context.Background(), entries, []int{1, 2}, names, 5)
		require.Len(t, rows, 3)

		// Salah 3, Haaland 3, Saka 2. Equal counts order by element id.
		assert.Equal(t, "Salah", rows[0].Player)
		assert.Equal(t, 3, rows[0].TimesPicked)
		assert.Equal(t, "Haaland", rows[1].Player)
		assert.Equal(t, "Saka", rows[2].Player)

		// 3 picks over 2 entries x 2 gameweeks.
		assert.InDelta(t, 75.0, rows[0].PercentOfEntries, 0.001)
		assert.InDelta(t, 50.0, rows[2].PercentOfEntries, 0.001)
	})

	t.Run("strict truncation at the cutoff", func(t *testing.T) {
		rows := counter.TopPicks(context.Background(), entries, []int{1, 2}, names, 2)
		require.Len(t, rows, 2)
		assert.Equal(t, "Salah", rows[0].Player)
		assert.Equal(t, "Haaland", rows[1].Player)
	})

	t.Run("unknown players get a placeholder name", func(t *testing.T) {
		rows := counter.TopPicks(context.Background(), entries, []int{1, 2}, map[int]string{}, 1)
		require.Len(t, rows, 1)
		assert.Equal(t, "Player_10", rows[0].Player)
	})
}

func TestPicksCounterDegradesOnFailure(t *testing.T) {
	entries := testEntries(2)
	fetcher := &fakePicksFetcher{
		picks:   map[int]map[int]*fpl.GwPicks{1: {1: squad(10)}},
		failing: map[int]bool{2: true},
	}
	counter := NewPicksCounter(fetcher, testLogger(), 2)

	rows := counter.TopPicks(context.Background(), entries, []int{1}, nil, 5)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].TimesPicked)
	// Denominator stays entries x gameweeks even when a fetch fails.
	assert.InDelta(t, 50.0, rows[0].PercentOfEntries, 0.001)
}

func TestPicksCounterEmptyInputs(t *testing.T) {
	counter := NewPicksCounter(&fakePicksFetcher{}, testLogger(), 2)
	assert.Nil(t, counter.TopPicks(context.Background(), nil, []int{1}, nil, 5))
	assert.Nil(t, counter.TopPicks(context.Background(), testEntries(1), nil, nil, 5))
}
