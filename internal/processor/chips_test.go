package processor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fplhub/fpl-league-hub/internal/fpl"
)

func TestChipHistoryBuilder(t *testing.T) {
	entries := testEntries(2)
	histories := &fakeHistoryFetcher{histories: map[int]*fpl.EntryHistory{
		1: {Chips: []fpl.ChipPlay{{Event: 2, Name: "wildcard"}}},
		2: {Chips: []fpl.ChipPlay{{Event: 1, Name: "bboost"}, {Event: 3, Name: "3xc"}}},
	}}

	builder := NewChipHistoryBuilder(histories, testLogger(), 2)
	rows := builder.Build(context.Background(), entries, []int{1, 2, 3})
	require.Len(t, rows, 6)

	byKey := map[[2]int]string{}
	for _, row := range rows {
		byKey[[2]int{row.TeamID, row.Gw}] = row.ActiveChip
	}

	assert.Equal(t, "-", byKey[[2]int{1, 1}])
	assert.Equal(t, "wildcard", byKey[[2]int{1, 2}])
	assert.Equal(t, "bboost", byKey[[2]int{2, 1}])
	assert.Equal(t, "3xc", byKey[[2]int{2, 3}])
	assert.Equal(t, "-", byKey[[2]int{2, 2}])
}

func TestChipHistoryBuilderFailedEntryGetsBlanks(t *testing.T) {
	entries := testEntries(2)
	histories := &fakeHistoryFetcher{
		histories: map[int]*fpl.EntryHistory{1: {Chips: []fpl.ChipPlay{{Event: 1, Name: "wildcard"}}}},
		failing:   map[int]bool{2: true},
	}

	builder := NewChipHistoryBuilder(histories, testLogger(), 2)
	rows := builder.Build(context.Background(), entries, []int{1, 2})

	// Rectangular even when a fetch fails.
	require.Len(t, rows, 4)
	for _, row := range rows {
		if row.TeamID == 2 {
			assert.Equal(t, "-", row.ActiveChip)
		}
	}
}
