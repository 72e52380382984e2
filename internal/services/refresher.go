package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// RefresherService keeps the hot cache entries warm on a schedule so the
// first request after a TTL expiry does not pay the full fan-out cost.
type RefresherService struct {
	league   *LeagueService
	logger   *logrus.Logger
	cron     *cron.Cron
	interval time.Duration

	mu        sync.Mutex
	isRunning bool
}

func NewRefresherService(league *LeagueService, logger *logrus.Logger, interval time.Duration) *RefresherService {
	return &RefresherService{
		league:   league,
		logger:   logger,
		cron:     cron.New(),
		interval: interval,
	}
}

// Start schedules the refresh loop and runs one warm-up immediately.
func (s *RefresherService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("refresher is already running")
	}

	schedule := fmt.Sprintf("@every %s", s.interval.String())
	_, err := s.cron.AddFunc(schedule, s.refresh)
	if err != nil {
		return fmt.Errorf("failed to schedule refresher: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	go s.refresh()

	s.logger.Info("Background refresher started")
	return nil
}

// Stop halts the refresh loop and waits for a running refresh to finish.
func (s *RefresherService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.logger.Info("Background refresher stopped")
}

// refresh repopulates the entries and gameweek table caches through the
// normal read path. Failures are logged and retried on the next tick.
func (s *RefresherService) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	s.logger.Info("Starting cache refresh")

	currentGw, err := s.league.CurrentGw(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Cache refresh failed to resolve current gameweek")
		return
	}

	if _, err := s.league.GwTable(ctx, 1, currentGw); err != nil {
		s.logger.WithError(err).Error("Cache refresh failed to build gw table")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"current_gw": currentGw,
		"duration":   time.Since(start).String(),
	}).Info("Cache refresh completed")
}
