package profile

import (
	"context"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/mo"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTTL     = 5 * time.Minute
	DefaultCleanup = 10 * time.Minute
)

// Cache keeps recently fetched profiles for ttl and makes sure that at most
// one request per user id is in flight at any time.
type Cache struct {
	fetcher Fetcher
	store   *gocache.Cache
	group   singleflight.Group
}

// NewCache wraps fetcher. Non-positive durations fall back to the defaults.
func NewCache(fetcher Fetcher, ttl, cleanup time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if cleanup <= 0 {
		cleanup = DefaultCleanup
	}
	return &Cache{
		fetcher: fetcher,
		store:   gocache.New(ttl, cleanup),
	}
}

func cacheKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Peek returns the cached profile for id without doing any I/O.
func (c *Cache) Peek(id int64) mo.Option[Profile] {
	if value, ok := c.store.Get(cacheKey(id)); ok {
		if p, ok := value.(Profile); ok {
			return mo.Some(p)
		}
	}
	return mo.None[Profile]()
}

// Fetch always asks the fetcher (joining an identical request already in
// flight) and stores the answer. A failed fetch keeps any cached value.
func (c *Cache) Fetch(ctx context.Context, id int64) (Profile, error) {
	key := cacheKey(id)
	value, err, _ := c.group.Do(key, func() (interface{}, error) {
		p, err := c.fetcher.FetchProfile(ctx, id)
		if err != nil {
			return Profile{}, err
		}
		c.store.SetDefault(key, p)
		return p, nil
	})
	if err != nil {
		return Profile{}, err
	}
	return value.(Profile), nil
}

// Get answers from the cache when possible and fetches otherwise.
func (c *Cache) Get(ctx context.Context, id int64) (Profile, error) {
	if p, ok := c.Peek(id).Get(); ok {
		return p, nil
	}
	return c.Fetch(ctx, id)
}

// Put stores p as the freshest known profile of p.ID.
func (c *Cache) Put(p Profile) {
	if p.ID == 0 {
		return
	}
	c.store.SetDefault(cacheKey(p.ID), p)
}

// Forget drops the cached profile of id.
func (c *Cache) Forget(id int64) {
	c.store.Delete(cacheKey(id))
}

// Flush drops every cached profile.
func (c *Cache) Flush() {
	c.store.Flush()
}
