package processor

import (
	"context"
	"sync"

	"github.com/fplhub/fpl-league-hub/internal/models"
)

// forEachEntry runs fn for every entry with at most maxWorkers in flight.
// Each invocation produces one complete result before it is merged by the
// caller; there is no shared mutable state beyond what fn synchronizes.
func forEachEntry(ctx context.Context, entries []models.Entry, maxWorkers int, fn func(ctx context.Context, entry models.Entry)) {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for _, entry := range entries {
		wg.Add(1)
		go func(entry models.Entry) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			fn(ctx, entry)
		}(entry)
	}
	wg.Wait()
}
