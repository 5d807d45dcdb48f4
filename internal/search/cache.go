package search

import (
	"strings"
	"sync"
)

const cacheKeySep = "\x1f"

// CacheKey encodes the query text and every filter into a deterministic
// string. Two queries share a key iff all components are equal once the
// query text is trimmed.
func CacheKey(query string, filters FilterSet) string {
	onlyMine := "0"
	if filters.OnlyMyLocation {
		onlyMine = "1"
	}
	return strings.Join([]string{
		strings.TrimSpace(query),
		string(filters.OfferType),
		onlyMine,
		filters.PriceMin,
		filters.PriceMax,
		filters.Country,
	}, cacheKeySep)
}

// SessionCache maps cache keys to result sets for the lifetime of the
// process. It never evicts; Clear is the only invalidation. It is safe for
// concurrent use.
type SessionCache struct {
	mu      sync.RWMutex
	entries map[string]ResultSet
}

// NewSessionCache creates an empty cache.
func NewSessionCache() *SessionCache {
	return &SessionCache{
		entries: make(map[string]ResultSet),
	}
}

// Get returns a private copy of the cached results for key.
func (c *SessionCache) Get(key string) (ResultSet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.entries[key]
	if !ok {
		return ResultSet{}, false
	}
	return value.Clone(), true
}

// Put stores a copy of results under key, replacing any previous value.
func (c *SessionCache) Put(key string, results ResultSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = results.Clone()
}

// Clear drops every entry.
func (c *SessionCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]ResultSet)
}

// Len reports the number of cached queries.
func (c *SessionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
