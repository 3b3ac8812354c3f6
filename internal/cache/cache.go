// Package cache holds rendered API responses in memory until they expire or
// an ingest invalidates them.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// TTLs for cached API responses. POST /api/v1/ingest flushes everything.
const (
	TTLPlayerStats  = 10 * time.Minute
	TTLLeaderboard  = 5 * time.Minute
	TTLMatchSummary = 5 * time.Minute
)

const evictInterval = 5 * time.Minute

type entry struct {
	body    []byte
	etag    string
	expires time.Time
}

func (e entry) live(now time.Time) bool { return now.Before(e.expires) }

// Stats is a point-in-time view of the cache, served by /health/cache.
type Stats struct {
	Enabled bool   `json:"enabled"`
	Keys    int    `json:"total_keys"`
	Active  int    `json:"active_keys"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Flushes uint64 `json:"flushes"`
}

// Cache is safe for concurrent use. A disabled Cache never stores anything
// but still computes ETags so handlers need no special casing.
type Cache struct {
	enabled bool

	mu      sync.RWMutex
	entries map[string]entry

	hits, misses, flushes atomic.Uint64

	stop     chan struct{}
	stopOnce sync.Once
}

// New returns a cache and, when enabled, starts its eviction loop. Call
// Close to stop the loop.
func New(enabled bool) *Cache {
	c := &Cache{
		enabled: enabled,
		entries: make(map[string]entry),
		stop:    make(chan struct{}),
	}
	if enabled {
		go c.evictLoop()
	}
	return c
}

// Key joins parts into a cache key. Parts are trimmed but keep their case:
// results echo the caller's query, so "Kohli" and "kohli" are cached apart.
func Key(parts ...string) string {
	norm := make([]string, len(parts))
	for i, p := range parts {
		norm[i] = strings.TrimSpace(p)
	}
	return strings.Join(norm, ":")
}

// Get returns the cached body and its ETag.
func (c *Cache) Get(key string) (body []byte, etag string, ok bool) {
	if !c.enabled {
		return nil, "", false
	}
	c.mu.RLock()
	e, found := c.entries[key]
	c.mu.RUnlock()

	if !found || !e.live(time.Now()) {
		c.misses.Add(1)
		return nil, "", false
	}
	c.hits.Add(1)
	return e.body, e.etag, true
}

// Set stores body under key for ttl and returns its ETag.
func (c *Cache) Set(key string, body []byte, ttl time.Duration) string {
	etag := ComputeETag(body)
	if !c.enabled {
		return etag
	}
	c.mu.Lock()
	c.entries[key] = entry{body: body, etag: etag, expires: time.Now().Add(ttl)}
	c.mu.Unlock()
	return etag
}

// Flush drops every entry and returns how many were removed.
func (c *Cache) Flush() int {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]entry)
	c.mu.Unlock()
	c.flushes.Add(1)
	return n
}

// Stats reports key counts and hit/miss totals.
func (c *Cache) Stats() Stats {
	s := Stats{
		Enabled: c.enabled,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Flushes: c.flushes.Load(),
	}
	now := time.Now()
	c.mu.RLock()
	defer c.mu.RUnlock()
	s.Keys = len(c.entries)
	for _, e := range c.entries {
		if e.live(now) {
			s.Active++
		}
	}
	return s
}

// Close stops the eviction loop. It is safe to call more than once.
func (c *Cache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Cache) evictLoop() {
	ticker := time.NewTicker(evictInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evict()
		}
	}
}

func (c *Cache) evict() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if !e.live(now) {
			delete(c.entries, key)
		}
	}
}

// ComputeETag returns a weak ETag over the first 8 bytes of the body's
// SHA-256.
func ComputeETag(body []byte) string {
	sum := sha256.Sum256(body)
	return `W/"` + hex.EncodeToString(sum[:8]) + `"`
}

// CheckETagMatch reports whether an If-None-Match header value matches etag.
// The header may list several tags; comparison is weak, so a W/ prefix on
// either side is ignored.
func CheckETagMatch(ifNoneMatch, etag string) bool {
	ifNoneMatch = strings.TrimSpace(ifNoneMatch)
	if ifNoneMatch == "" {
		return false
	}
	if ifNoneMatch == "*" {
		return true
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, tag := range strings.Split(ifNoneMatch, ",") {
		if strings.TrimPrefix(strings.TrimSpace(tag), "W/") == want {
			return true
		}
	}
	return false
}
