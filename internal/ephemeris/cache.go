package ephemeris

import (
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the memo of (body, moment) lookups.
const DefaultCacheSize = 4096

type cacheKey struct {
	body Body
	unix int64 // nanoseconds since epoch, UTC
}

// Cached memoizes a Provider. The same moment is queried repeatedly during a
// chart calculation (personality, design solver, retrograde checks,
// comparisons), and positions are pure functions of (body, moment).
type Cached struct {
	inner Provider
	cache *lru.Cache[cacheKey, Position]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCached wraps p. A non-positive size selects DefaultCacheSize.
func NewCached(p Provider, size int) (*Cached, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[cacheKey, Position](size)
	if err != nil {
		return nil, fmt.Errorf("ephemeris cache: %w", err)
	}
	return &Cached{inner: p, cache: c}, nil
}

// Position implements Provider. Errors are not cached.
func (c *Cached) Position(b Body, t time.Time) (Position, error) {
	key := cacheKey{body: b, unix: t.UTC().UnixNano()}
	if pos, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return pos, nil
	}
	c.misses.Add(1)
	pos, err := c.inner.Position(b, t)
	if err != nil {
		return Position{}, err
	}
	c.cache.Add(key, pos)
	return pos, nil
}

// CacheStats reports memo effectiveness.
type CacheStats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Entries int    `json:"entries"`
}

// Stats returns a snapshot of hit/miss counters.
func (c *Cached) Stats() CacheStats {
	return CacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.cache.Len(),
	}
}

// Select builds the process provider: Remote when remoteURL is set,
// otherwise Orbital, memoized unless cacheSize is zero.
func Select(remoteURL string, cacheSize int) (Provider, error) {
	var p Provider = NewOrbital()
	if r := NewRemote(remoteURL); r != nil {
		p = r
	}
	if cacheSize == 0 {
		return p, nil
	}
	return NewCached(p, cacheSize)
}
