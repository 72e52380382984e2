package fpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestClient(baseURL string, cache Cache) *Client {
	return NewClient(ClientOptions{
		BaseURL:        baseURL,
		RequestTimeout: 2 * time.Second,
		MaxRetries:     2,
		RateLimit:      1000,
		BootstrapTTL:   time.Minute,
		LeagueTTL:      time.Minute,
		GwDataTTL:      time.Minute,
	}, cache, testLogger())
}

// memoryCache is an in-process Cache for tests.
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[key]
	if !ok {
		return fmt.Errorf("key not found")
	}
	return json.Unmarshal(data, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	return nil
}

func TestGetCurrentGw(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   int
	}{
		{
			"latest finished wins",
			[]Event{{ID: 1, Finished: true}, {ID: 2, Finished: true}, {ID: 3, IsCurrent: true}},
			2,
		},
		{
			"is_current when nothing finished",
			[]Event{{ID: 1, IsCurrent: true}, {ID: 2, IsNext: true}},
			1,
		},
		{
			"gameweek before is_next",
			[]Event{{ID: 5, IsNext: true}},
			4,
		},
		{
			"preseason defaults to 1",
			[]Event{{ID: 1, IsNext: true}},
			1,
		},
		{
			"no events defaults to 1",
			nil,
			1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(Bootstrap{Events: tt.events})
			}))
			defer srv.Close()

			gw, err := newTestClient(srv.URL, nil).GetCurrentGw(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, gw)
		})
	}
}

func TestGetAllLeagueEntriesPaginates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page_standings")
		var resp standingsResponse
		switch page {
		case "1":
			resp.Standings.HasNext = true
			resp.Standings.Results = []standingsEntry{
				{Entry: 101, PlayerName: "Alice", EntryName: "Alice FC", Rank: 1, Total: 500},
			}
		case "2":
			resp.Standings.Results = []standingsEntry{
				{Entry: 102, PlayerName: "Bob", EntryName: "Bob FC", Rank: 2, Total: 480},
			}
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	entries, err := newTestClient(srv.URL, nil).GetAllLeagueEntries(context.Background(), 123, 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 101, entries[0].TeamID)
	assert.Equal(t, "Alice", entries[0].Manager)
	assert.Equal(t, "Bob FC", entries[1].Team)
	assert.Equal(t, 480, entries[1].OverallTotal)
}

func TestGetAllLeagueEntriesEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(standingsResponse{})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, nil).GetAllLeagueEntries(context.Background(), 999, 1)
	assert.ErrorIs(t, err, ErrNoEntries)
}

func TestFetchRetriesTransientFailure(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(EntryHistory{Current: []GwEvent{{Event: 1, Points: 50}}})
	}))
	defer srv.Close()

	history, err := newTestClient(srv.URL, nil).GetEntryHistory(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, history.Current, 1)
	assert.Equal(t, int64(2), calls.Load())
}

func TestFetchExhaustedRetriesReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, nil).GetEntryHistory(context.Background(), 7)
	require.Error(t, err)

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestEntryHistoryCacheAside(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(EntryHistory{Current: []GwEvent{{Event: 1, Points: 42}}})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, newMemoryCache())

	for i := 0; i < 3; i++ {
		history, err := client.GetEntryHistory(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, 42, history.Current[0].Points)
	}
	assert.Equal(t, int64(1), calls.Load())
}

func TestGetEntryPicks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/entry/7/event/3/picks/", r.URL.Path)
		json.NewEncoder(w).Encode(GwPicks{
			ActiveChip: "bboost",
			Picks:      []Pick{{Element: 10, IsCaptain: true, Multiplier: 2}},
		})
	}))
	defer srv.Close()

	picks, err := newTestClient(srv.URL, nil).GetEntryPicks(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, "bboost", picks.ActiveChip)
	require.Len(t, picks.Picks, 1)
	assert.True(t, picks.Picks[0].IsCaptain)
}
