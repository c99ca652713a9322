package source

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/schedboard/internal/model"
)

// CachedSource keeps the last successful table from an inner Source for a
// fixed TTL. Failed loads are never cached.
type CachedSource struct {
	inner Source
	ttl   time.Duration
	log   zerolog.Logger
	now   func() time.Time

	mu       sync.Mutex
	table    *model.Table
	loadedAt time.Time
}

// NewCachedSource wraps inner. A zero ttl disables caching.
func NewCachedSource(inner Source, ttl time.Duration, log zerolog.Logger) *CachedSource {
	return &CachedSource{inner: inner, ttl: ttl, log: log, now: time.Now}
}

// Load returns the cached table while it is fresh, reloading otherwise.
// Callers must not mutate the returned table.
func (c *CachedSource) Load(ctx context.Context) (*model.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table != nil && c.now().Sub(c.loadedAt) < c.ttl {
		c.log.Debug().Time("loaded_at", c.loadedAt).Msg("serving cached table")
		return c.table, nil
	}

	t, err := c.inner.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.table = t
	c.loadedAt = c.now()
	return t, nil
}

// Invalidate drops the cached table so the next Load hits the inner source.
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	c.table = nil
	c.mu.Unlock()
}
