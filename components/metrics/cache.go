package metrics

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// RenderCache memoizes rendered chart HTML so repeated dashboard loads are
// cheap. The TTL is chosen per chart kind: historical series can be reused
// for minutes, a quota gauge moves with every send.
type RenderCache interface {
	GetOrRender(key string, ttl time.Duration, render func() (string, error)) (string, error)
}

// ChartCache is an in-memory render cache with per-entry expiry.
type ChartCache struct {
	mu      sync.Mutex
	entries map[string]renderedChart
}

type renderedChart struct {
	html      string
	expiresAt time.Time
}

// NewChartCache builds an empty cache.
func NewChartCache() *ChartCache {
	return &ChartCache{entries: make(map[string]renderedChart)}
}

// GetOrRender returns a live cached entry or renders and stores a new one
// under the given TTL. A non-positive TTL bypasses the cache entirely.
func (c *ChartCache) GetOrRender(key string, ttl time.Duration, render func() (string, error)) (string, error) {
	if c == nil || ttl <= 0 {
		return render()
	}
	now := time.Now()
	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && now.Before(entry.expiresAt) {
		c.mu.Unlock()
		return entry.html, nil
	}
	c.mu.Unlock()

	html, err := render()
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[key] = renderedChart{html: html, expiresAt: now.Add(ttl)}
	c.sweepLocked(now)
	c.mu.Unlock()
	return html, nil
}

// sweepLocked drops expired entries so stale tenants do not accumulate.
// Callers must hold c.mu.
func (c *ChartCache) sweepLocked(now time.Time) {
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// seriesHash returns a deterministic hash for the chart inputs.
func seriesHash(payload any) string {
	b, err := json.Marshal(payload)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
