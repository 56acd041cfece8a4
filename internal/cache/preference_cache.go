// Package cache holds the short-TTL preference cache that sits in front of
// the preference repository. It is purely a performance optimization:
// consumers must tolerate misses by falling through to the store.
package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/danaingraham/wanderplan-sub002/internal/models"
)

const (
	defaultMaxSize = 256
	defaultTTL     = 5 * time.Minute
)

type entry struct {
	prefs    *models.UserPreferences
	storedAt time.Time
}

type PreferenceCache struct {
	entries *lru.Cache[int64, entry]
	ttl     time.Duration
	now     func() time.Time
}

// NewPreferenceCache builds a cache with the given TTL; zero values fall
// back to the defaults (256 entries, 5 minutes).
func NewPreferenceCache(maxSize int, ttl time.Duration) (*PreferenceCache, error) {
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	entries, err := lru.New[int64, entry](maxSize)
	if err != nil {
		return nil, err
	}
	return &PreferenceCache{
		entries: entries,
		ttl:     ttl,
		now:     time.Now,
	}, nil
}

// Get returns the cached record for a user. A read past the TTL behaves as
// a miss and evicts the stale entry.
func (c *PreferenceCache) Get(userID int64) (*models.UserPreferences, bool) {
	cached, ok := c.entries.Get(userID)
	if !ok {
		return nil, false
	}
	if c.now().Sub(cached.storedAt) >= c.ttl {
		c.entries.Remove(userID)
		return nil, false
	}
	return cached.prefs, true
}

// Set stores the record, replacing any existing entry whole. Last write
// wins; there is no merge logic at this layer.
func (c *PreferenceCache) Set(userID int64, prefs *models.UserPreferences) {
	c.entries.Add(userID, entry{prefs: prefs, storedAt: c.now()})
}

func (c *PreferenceCache) Invalidate(userID int64) {
	c.entries.Remove(userID)
}

func (c *PreferenceCache) Clear() {
	c.entries.Purge()
}
