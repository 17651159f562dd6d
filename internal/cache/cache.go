package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/sync/singleflight"

	"btc-etf-flows/internal/interfaces"
	"btc-etf-flows/internal/logger"
	"btc-etf-flows/internal/types"
)

// Snapshot is one cached pipeline result plus the time it was produced.
// Snapshots are immutable and freely shareable across concurrent readers.
type Snapshot struct {
	Result    types.PipelineResult
	FetchedAt time.Time
}

// ResultCache keeps the latest snapshot for a staleness window and collapses
// concurrent refreshes into a single pipeline run. The pipeline itself never
// retries; this layer owns retry policy for the startup warm.
type ResultCache struct {
	provider interfaces.Provider
	ttl      time.Duration
	now      func() time.Time

	mu   sync.RWMutex
	snap *Snapshot

	group singleflight.Group
}

func New(p interfaces.Provider, ttl time.Duration) *ResultCache {
	return &ResultCache{
		provider: p,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the current snapshot, refreshing it first if the staleness
// window has passed. Concurrent callers behind an expired snapshot share one
// refresh.
func (c *ResultCache) Get(ctx context.Context) Snapshot {
	if snap, ok := c.fresh(); ok {
		return snap
	}

	v, _, _ := c.group.Do("flows", func() (interface{}, error) {
		// A finished flight may already have stored a fresh snapshot.
		if snap, ok := c.fresh(); ok {
			return snap, nil
		}
		return c.refresh(ctx), nil
	})
	return v.(Snapshot)
}

// Warm runs the pipeline until it yields live data or maxElapsed passes,
// backing off exponentially between attempts. The last snapshot, live or
// synthetic, stays cached either way.
func (c *ResultCache) Warm(ctx context.Context, maxElapsed time.Duration) Snapshot {
	op := func() (Snapshot, error) {
		snap := c.refresh(ctx)
		if !snap.Result.Live {
			return snap, errors.New("live source unavailable")
		}
		return snap, nil
	}

	snap, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(maxElapsed),
	)
	if err != nil {
		logger.Warn(ctx, "Cache warm ended without live data", "error", err)
		return c.Get(ctx)
	}
	return snap
}

func (c *ResultCache) fresh() (Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap == nil || c.now().Sub(c.snap.FetchedAt) >= c.ttl {
		return Snapshot{}, false
	}
	return *c.snap, true
}

func (c *ResultCache) refresh(ctx context.Context) Snapshot {
	snap := Snapshot{
		Result:    c.provider.Run(ctx),
		FetchedAt: c.now().UTC(),
	}
	c.mu.Lock()
	c.snap = &snap
	c.mu.Unlock()
	return snap
}
