package fpl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func elementSummaryServer(t *testing.T, calls *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var id int
		fmt.Sscanf(r.URL.Path, "/element-summary/%d/", &id)
		json.NewEncoder(w).Encode(elementSummary{History: []playerGwEvent{
			{Round: 1, TotalPoints: id},
			{Round: 2, TotalPoints: id * 2},
		}})
	}))
}

func TestPlayerGwPoints(t *testing.T) {
	var calls atomic.Int64
	srv := elementSummaryServer(t, &calls)
	defer srv.Close()

	points := NewPointsService(newTestClient(srv.URL, nil), 10)
	ctx := context.Background()

	assert.Equal(t, 5, points.PlayerGwPoints(ctx, 5, 1))
	assert.Equal(t, 10, points.PlayerGwPoints(ctx, 5, 2))
	assert.Equal(t, 0, points.PlayerGwPoints(ctx, 5, 30))

	// Three lookups, one upstream fetch.
	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, 1, points.Size())
}

func TestPlayerGwPointsDegradesToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	points := NewPointsService(newTestClient(srv.URL, nil), 10)
	assert.Equal(t, 0, points.PlayerGwPoints(context.Background(), 5, 1))
}

func TestPointsMemoEviction(t *testing.T) {
	var calls atomic.Int64
	srv := elementSummaryServer(t, &calls)
	defer srv.Close()

	points := NewPointsService(newTestClient(srv.URL, nil), 2)
	ctx := context.Background()

	points.PlayerGwPoints(ctx, 1, 1)
	points.PlayerGwPoints(ctx, 2, 1)
	points.PlayerGwPoints(ctx, 3, 1) // evicts element 1
	assert.Equal(t, 2, points.Size())

	// Element 1 must be refetched.
	points.PlayerGwPoints(ctx, 1, 1)
	assert.Equal(t, int64(4), calls.Load())
}
