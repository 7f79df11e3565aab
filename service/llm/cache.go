package llm

import (
	"context"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cached memoizes responses by prompt text
type Cached struct {
	generator Generator
	cache     *gocache.Cache
	hits      atomic.Int64
	misses    atomic.Int64
}

// Generate returns a cached response or delegates to the wrapped generator
func (c *Cached) Generate(ctx context.Context, prompt string) (string, error) {
	if value, found := c.cache.Get(prompt); found {
		if response, ok := value.(string); ok {
			c.hits.Add(1)
			return response, nil
		}
	}
	c.misses.Add(1)
	response, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	c.cache.Set(prompt, response, gocache.DefaultExpiration)
	return response, nil
}

// Stats returns cache hits and misses
func (c *Cached) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Flush drops all cached responses
func (c *Cached) Flush() {
	c.cache.Flush()
}

// NewCached wraps generator; ttl <= 0 keeps responses until Flush.
func NewCached(generator Generator, ttl time.Duration) *Cached {
	cleanup := time.Duration(0)
	if ttl > 0 {
		cleanup = 2 * ttl
	} else {
		ttl = gocache.NoExpiration
	}
	return &Cached{generator: generator, cache: gocache.New(ttl, cleanup)}
}
