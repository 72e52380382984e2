package processor

import (
	"context"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fplhub/fpl-league-hub/internal/models"
)

// ChipHistoryBuilder builds a rectangular chip-usage grid from entry
// histories: one row per (entry, gameweek), "-" where no chip was played.
type ChipHistoryBuilder struct {
	histories  HistoryFetcher
	logger     *logrus.Logger
	maxWorkers int
}

func NewChipHistoryBuilder(histories HistoryFetcher, logger *logrus.Logger, maxWorkers int) *ChipHistoryBuilder {
	return &ChipHistoryBuilder{histories: histories, logger: logger, maxWorkers: maxWorkers}
}

func (c *ChipHistoryBuilder) Build(ctx context.Context, entries []models.Entry, gwRange []int) []models.ChipRow {
	if len(entries) == 0 || len(gwRange) == 0 {
		return nil
	}

	var mu sync.Mutex
	chips := map[int]map[int]string{}

	forEachEntry(ctx, entries, c.maxWorkers, func(ctx context.Context, entry models.Entry) {
		history, err := c.histories.GetEntryHistory(ctx, entry.TeamID)
		if err != nil {
			c.logger.WithError(err).WithField("team_id", entry.TeamID).Warn("Failed to fetch history for chips, using blanks")
			return
		}
		byGw := map[int]string{}
		for _, chip := range history.Chips {
			byGw[chip.Event] = chip.Name
		}
		mu.Lock()
		chips[entry.TeamID] = byGw
		mu.Unlock()
	})

	gws := append([]int(nil), gwRange...)
	sort.Ints(gws)

	rows := make([]models.ChipRow, 0, len(entries)*len(gws))
	for _, entry := range entries {
		for _, gw := range gws {
			chip := "-"
			if name, ok := chips[entry.TeamID][gw]; ok && name != "" {
				chip = name
			}
			rows = append(rows, models.ChipRow{
				TeamID:     entry.TeamID,
				Manager:    entry.Manager,
				Team:       entry.Team,
				Gw:         gw,
				ActiveChip: chip,
			})
		}
	}
	return rows
}
