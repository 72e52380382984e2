package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fplhub/fpl-league-hub/internal/fpl"
	"github.com/fplhub/fpl-league-hub/internal/models"
	"github.com/fplhub/fpl-league-hub/internal/processor"
	"github.com/fplhub/fpl-league-hub/pkg/config"
)

// LeagueService assembles every league view from upstream data: it fetches
// entries once, builds the flat gameweek table, and hands it to the
// processors. Handlers call this and nothing below it.
type LeagueService struct {
	client *fpl.Client
	points *fpl.PointsService
	logger *logrus.Logger

	leagueID   int
	phase      int
	maxEntries int
	mapping    processor.MonthMapping
	policy     processor.TiebreakPolicy
	pools      processor.PrizePools
	maxWorkers int

	tableBuilder    *processor.GwTableBuilder
	picksCounter    *processor.PicksCounter
	funStats        *processor.FunStatsCalculator
	transferHistory *processor.TransferHistoryBuilder
	chipHistory     *processor.ChipHistoryBuilder
}

func NewLeagueService(cfg *config.Config, client *fpl.Client, points *fpl.PointsService, logger *logrus.Logger) *LeagueService {
	mapping := processor.ParseMonthMapping(cfg.MonthMapping, logger)
	policy := processor.ParseTiebreakPolicy(cfg.TiebreakPolicy)

	return &LeagueService{
		client:     client,
		points:     points,
		logger:     logger,
		leagueID:   cfg.LeagueID,
		phase:      cfg.Phase,
		maxEntries: cfg.MaxEntries,
		mapping:    mapping,
		policy:     policy,
		pools: processor.PrizePools{
			Weekly:  cfg.WeeklyPrize,
			Monthly: cfg.MonthlyPrize,
		},
		maxWorkers:      cfg.MaxWorkers,
		tableBuilder:    processor.NewGwTableBuilder(client, logger, cfg.MaxWorkers, cfg.RequestDelay),
		picksCounter:    processor.NewPicksCounter(client, logger, cfg.MaxWorkers),
		funStats:        processor.NewFunStatsCalculator(client, client, client, points, logger, cfg.MaxWorkers),
		transferHistory: processor.NewTransferHistoryBuilder(client, points, logger, cfg.MaxWorkers),
		chipHistory:     processor.NewChipHistoryBuilder(client, logger, cfg.MaxWorkers),
	}
}

// Entries returns the league's entries, capped at maxEntries when configured.
func (s *LeagueService) Entries(ctx context.Context) ([]models.Entry, error) {
	entries, err := s.client.GetAllLeagueEntries(ctx, s.leagueID, s.phase)
	if err != nil {
		return nil, err
	}
	if s.maxEntries > 0 && len(entries) > s.maxEntries {
		s.logger.WithFields(logrus.Fields{
			"total": len(entries),
			"cap":   s.maxEntries,
		}).Info("Capping league entries")
		entries = entries[:s.maxEntries]
	}
	return entries, nil
}

// CurrentGw returns the current gameweek derived from bootstrap events.
func (s *LeagueService) CurrentGw(ctx context.Context) (int, error) {
	return s.client.GetCurrentGw(ctx)
}

// MonthMapping exposes the configured gameweek-to-month mapping.
func (s *LeagueService) MonthMapping() processor.MonthMapping {
	return s.mapping
}

// playerNames maps element id to display name from bootstrap.
func (s *LeagueService) playerNames(ctx context.Context) (map[int]string, error) {
	bootstrap, err := s.client.GetBootstrap(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(bootstrap.Elements))
	for _, el := range bootstrap.Elements {
		names[el.ID] = el.WebName
	}
	return names, nil
}

// GwTable builds the flat per-entry per-gameweek points table for [startGw,
// endGw].
func (s *LeagueService) GwTable(ctx context.Context, startGw, endGw int) ([]models.GwRecord, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	table, err := s.tableBuilder.Build(ctx, entries, processor.GwRange(startGw, endGw))
	if err != nil {
		return nil, fmt.Errorf("build gw table for league %d: %w", s.leagueID, err)
	}
	return table, nil
}

// WeeklyRanking ranks one gameweek.
func (s *LeagueService) WeeklyRanking(ctx context.Context, gw int) ([]models.RankingRow, error) {
	table, err := s.GwTable(ctx, gw, gw)
	if err != nil {
		return nil, err
	}
	return processor.BuildWeeklyRanking(table, gw, s.policy), nil
}

// MonthlyRanking ranks one month over its mapped gameweeks.
func (s *LeagueService) MonthlyRanking(ctx context.Context, month int) ([]models.RankingRow, error) {
	gws := s.mapping.GwsForMonth(month)
	if len(gws) == 0 {
		return nil, nil
	}
	table, err := s.GwTable(ctx, gws[0], gws[len(gws)-1])
	if err != nil {
		return nil, err
	}
	return processor.BuildMonthlyRanking(table, s.mapping, month, s.policy), nil
}

// MonthTable aggregates complete months only; MonthTableFull covers every
// mapped month with zero-filling and ranks.
func (s *LeagueService) MonthTable(ctx context.Context, startGw, endGw int) ([]models.MonthSummaryRow, error) {
	table, err := s.GwTable(ctx, startGw, endGw)
	if err != nil {
		return nil, err
	}
	return processor.BuildMonthTable(table, s.mapping), nil
}

func (s *LeagueService) MonthTableFull(ctx context.Context, startGw, endGw int) ([]models.MonthSummaryRow, error) {
	table, err := s.GwTable(ctx, startGw, endGw)
	if err != nil {
		return nil, err
	}
	return processor.BuildMonthTableFull(table, s.mapping), nil
}

// AwardsSummary lists per-gameweek weekly and monthly winners.
func (s *LeagueService) AwardsSummary(ctx context.Context, startGw, endGw int) ([]models.AwardsSummaryRow, error) {
	table, err := s.GwTable(ctx, startGw, endGw)
	if err != nil {
		return nil, err
	}
	return processor.BuildAwardsSummary(table, s.mapping, s.policy), nil
}

// AwardsLeaderboard tallies wins and prize money up to the current gameweek.
func (s *LeagueService) AwardsLeaderboard(ctx context.Context, startGw, endGw int) ([]models.AwardRow, error) {
	currentGw, err := s.CurrentGw(ctx)
	if err != nil {
		return nil, err
	}
	table, err := s.GwTable(ctx, startGw, endGw)
	if err != nil {
		return nil, err
	}
	return processor.BuildAwardsLeaderboard(table, s.mapping, currentGw, s.pools, s.policy), nil
}

// TopPicks counts squad picks across entries and gameweeks.
func (s *LeagueService) TopPicks(ctx context.Context, startGw, endGw, n int) ([]models.PickRow, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.playerNames(ctx)
	if err != nil {
		return nil, err
	}
	return s.picksCounter.TopPicks(ctx, entries, processor.GwRange(startGw, endGw), names, n), nil
}

// FunStats computes per-gameweek captain, bench and transfer extremes.
func (s *LeagueService) FunStats(ctx context.Context, startGw, endGw int) ([]models.FunStatsRow, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.playerNames(ctx)
	if err != nil {
		return nil, err
	}
	return s.funStats.BuildFunStats(ctx, entries, processor.GwRange(startGw, endGw), names), nil
}

// TransferHistory lists every transfer with both players' points.
func (s *LeagueService) TransferHistory(ctx context.Context, startGw, endGw int) ([]models.TransferRow, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.playerNames(ctx)
	if err != nil {
		return nil, err
	}
	return s.transferHistory.Build(ctx, entries, processor.GwRange(startGw, endGw), names), nil
}

// ChipHistory builds the chip usage grid.
func (s *LeagueService) ChipHistory(ctx context.Context, startGw, endGw int) ([]models.ChipRow, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return s.chipHistory.Build(ctx, entries, processor.GwRange(startGw, endGw)), nil
}
