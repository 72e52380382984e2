package fpl

import (
	"context"
	"fmt"
	"sync"
)

// PointsService resolves a player's points for a specific gameweek. Many
// league entries share players, so each player's season history is fetched
// at most once and memoized in a bounded in-process cache owned by the
// composition root.
type PointsService struct {
	client *Client

	mu      sync.Mutex
	maxSize int
	order   []int
	entries map[int][]playerGwEvent
}

// NewPointsService creates a points resolver with a bounded memo of at most
// maxSize player histories.
func NewPointsService(client *Client, maxSize int) *PointsService {
	if maxSize <= 0 {
		maxSize = 1024
	}
	return &PointsService{
		client:  client,
		maxSize: maxSize,
		entries: make(map[int][]playerGwEvent),
	}
}

// PlayerGwPoints returns the points elementID scored in gw. Fetch failure
// degrades to 0; callers treat missing history as a zero-point week.
func (s *PointsService) PlayerGwPoints(ctx context.Context, elementID, gw int) int {
	history, err := s.playerHistory(ctx, elementID)
	if err != nil {
		s.client.logger.WithError(err).WithField("element_id", elementID).
			Warn("Failed to fetch player history, treating as zero points")
		return 0
	}

	for _, event := range history {
		if event.Round == gw {
			return event.TotalPoints
		}
	}
	return 0
}

func (s *PointsService) playerHistory(ctx context.Context, elementID int) ([]playerGwEvent, error) {
	s.mu.Lock()
	if history, ok := s.entries[elementID]; ok {
		s.mu.Unlock()
		return history, nil
	}
	s.mu.Unlock()

	var summary elementSummary
	url := fmt.Sprintf("%s/element-summary/%d/", s.client.baseURL, elementID)
	if err := s.client.fetchJSON(ctx, url, &summary); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[elementID]; !ok {
		// Evict oldest insertions once full.
		for len(s.entries) >= s.maxSize && len(s.order) > 0 {
			delete(s.entries, s.order[0])
			s.order = s.order[1:]
		}
		s.entries[elementID] = summary.History
		s.order = append(s.order, elementID)
	}
	return summary.History, nil
}

// Size reports how many player histories are currently memoized.
func (s *PointsService) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
