package fpl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/fplhub/fpl-league-hub/internal/models"
)

// maxStandingsPages caps league pagination to prevent an infinite loop on a
// malformed has_next signal.
const maxStandingsPages = 100

// APIError is an upstream fetch that exhausted its retries.
type APIError struct {
	URL string
	Err error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fpl api: unable to fetch %s: %v", e.URL, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// ErrNoEntries means a league standings fetch produced zero entries; callers
// must treat this as a hard failure (wrong league id), not a data gap.
var ErrNoEntries = errors.New("fpl api: no league entries found")

// Cache is the TTL store the client reads through. A nil Cache disables
// caching; every fetch then goes upstream.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// ClientOptions carries the fetch tuning knobs from config.
type ClientOptions struct {
	BaseURL                 string
	RequestTimeout          time.Duration
	MaxRetries              int
	RateLimit               int // requests per second
	CircuitBreakerThreshold int
	BootstrapTTL            time.Duration
	LeagueTTL               time.Duration
	GwDataTTL               time.Duration
}

// Client talks to the Fantasy Premier League API with retries, pacing and a
// circuit breaker, reading through the TTL cache where one is configured.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      Cache
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Logger
	maxRetries int

	bootstrapTTL time.Duration
	leagueTTL    time.Duration
	gwDataTTL    time.Duration
}

// NewClient creates a new FPL API client.
func NewClient(opts ClientOptions, cache Cache, logger *logrus.Logger) *Client {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 10
	}

	settings := gobreaker.Settings{
		Name:        "fpl-api",
		MaxRequests: uint32(opts.CircuitBreakerThreshold),
		Timeout:     opts.RequestTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"service":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	return &Client{
		baseURL: opts.BaseURL,
		httpClient: &http.Client{
			Timeout: opts.RequestTimeout,
		},
		cache:        cache,
		limiter:      rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		breaker:      gobreaker.NewCircuitBreaker(settings),
		logger:       logger,
		maxRetries:   opts.MaxRetries,
		bootstrapTTL: opts.BootstrapTTL,
		leagueTTL:    opts.LeagueTTL,
		gwDataTTL:    opts.GwDataTTL,
	}
}

// fetchJSON gets a URL with rate pacing, circuit breaking and bounded retry
// with exponential backoff, decoding the body into dest.
func (c *Client) fetchJSON(ctx context.Context, url string, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		var lastErr error
		for attempt := 0; attempt < c.maxRetries; attempt++ {
			if attempt > 0 {
				backoff := time.Duration(1<<uint(attempt-1)) * time.Second
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(backoff):
				}
			}

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return nil, err
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				lastErr = err
				continue
			}

			data, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				lastErr = err
				continue
			}
			if resp.StatusCode != http.StatusOK {
				lastErr = fmt.Errorf("unexpected status %d", resp.StatusCode)
				continue
			}

			return data, nil
		}
		return nil, lastErr
	})
	if err != nil {
		return &APIError{URL: url, Err: err}
	}

	if err := json.Unmarshal(body.([]byte), dest); err != nil {
		return &APIError{URL: url, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// GetBootstrap returns the bootstrap-static payload (players + events).
func (c *Client) GetBootstrap(ctx context.Context) (*Bootstrap, error) {
	cacheKey := "fpl:bootstrap"

	var cached Bootstrap
	if c.cache != nil {
		if err := c.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var bootstrap Bootstrap
	url := fmt.Sprintf("%s/bootstrap-static/", c.baseURL)
	if err := c.fetchJSON(ctx, url, &bootstrap); err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, bootstrap, c.bootstrapTTL); err != nil {
			c.logger.WithError(err).Warn("Failed to cache bootstrap data")
		}
	}
	return &bootstrap, nil
}

// GetCurrentGw determines the current gameweek from bootstrap events: the
// latest finished gameweek, else the is_current one, else the gameweek
// before is_next, else 1.
func (c *Client) GetCurrentGw(ctx context.Context) (int, error) {
	bootstrap, err := c.GetBootstrap(ctx)
	if err != nil {
		return 0, err
	}

	finished := 0
	for _, event := range bootstrap.Events {
		if event.Finished && event.ID > finished {
			finished = event.ID
		}
	}
	if finished > 0 {
		return finished, nil
	}

	for _, event := range bootstrap.Events {
		if event.IsCurrent {
			return event.ID, nil
		}
	}
	for _, event := range bootstrap.Events {
		if event.IsNext {
			if event.ID > 1 {
				return event.ID - 1, nil
			}
			return 1, nil
		}
	}
	return 1, nil
}

// GetAllLeagueEntries pages through classic league standings until the
// no-next-page signal. Returns ErrNoEntries when the league yields nothing.
func (c *Client) GetAllLeagueEntries(ctx context.Context, leagueID, phase int) ([]models.Entry, error) {
	cacheKey := fmt.Sprintf("fpl:league:%d:%d", leagueID, phase)

	var cached []models.Entry
	if c.cache != nil {
		if err := c.cache.Get(ctx, cacheKey, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	var entries []models.Entry
	for page := 1; page <= maxStandingsPages; page++ {
		url := fmt.Sprintf("%s/leagues-classic/%d/standings/?page_standings=%d&phase=%d",
			c.baseURL, leagueID, page, phase)

		var resp standingsResponse
		if err := c.fetchJSON(ctx, url, &resp); err != nil {
			if len(entries) > 0 {
				// Partial standings beat none; later pages degrade.
				c.logger.WithError(err).WithField("page", page).Warn("Failed to fetch standings page")
				break
			}
			return nil, err
		}

		if len(resp.Standings.Results) == 0 {
			break
		}
		for _, r := range resp.Standings.Results {
			entries = append(entries, models.Entry{
				TeamID:       r.Entry,
				Manager:      r.PlayerName,
				Team:         r.EntryName,
				OverallRank:  r.Rank,
				OverallTotal: r.Total,
			})
		}
		if !resp.Standings.HasNext {
			break
		}
	}

	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, entries, c.leagueTTL); err != nil {
			c.logger.WithError(err).Warn("Failed to cache league entries")
		}
	}
	return entries, nil
}

// GetEntryHistory returns one entry's full season history in a single call.
func (c *Client) GetEntryHistory(ctx context.Context, teamID int) (*EntryHistory, error) {
	cacheKey := fmt.Sprintf("fpl:history:%d", teamID)

	var cached EntryHistory
	if c.cache != nil {
		if err := c.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var history EntryHistory
	url := fmt.Sprintf("%s/entry/%d/history/", c.baseURL, teamID)
	if err := c.fetchJSON(ctx, url, &history); err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, history, c.gwDataTTL); err != nil {
			c.logger.WithError(err).Warn("Failed to cache entry history")
		}
	}
	return &history, nil
}

// GetEntryTransfers returns every transfer an entry has made this season.
func (c *Client) GetEntryTransfers(ctx context.Context, teamID int) ([]Transfer, error) {
	cacheKey := fmt.Sprintf("fpl:transfers:%d", teamID)

	var cached []Transfer
	if c.cache != nil {
		if err := c.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	var transfers []Transfer
	url := fmt.Sprintf("%s/entry/%d/transfers/", c.baseURL, teamID)
	if err := c.fetchJSON(ctx, url, &transfers); err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, transfers, c.gwDataTTL); err != nil {
			c.logger.WithError(err).Warn("Failed to cache entry transfers")
		}
	}
	return transfers, nil
}

// GetEntryPicks returns one entry's 15-man squad for one gameweek.
func (c *Client) GetEntryPicks(ctx context.Context, teamID, gw int) (*GwPicks, error) {
	cacheKey := fmt.Sprintf("fpl:picks:%d:%d", teamID, gw)

	var cached GwPicks
	if c.cache != nil {
		if err := c.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var picks GwPicks
	url := fmt.Sprintf("%s/entry/%d/event/%d/picks/", c.baseURL, teamID, gw)
	if err := c.fetchJSON(ctx, url, &picks); err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, picks, c.gwDataTTL); err != nil {
			c.logger.WithError(err).Warn("Failed to cache entry picks")
		}
	}
	return &picks, nil
}
