package sluggable

import (
	"context"

	"github.com/dmitrymomot/sluggable/pkg/cache"
)

// CachedStore remembers positive existence answers of the wrapped Store in a
// bounded LRU. Negative answers are never cached: a slug reported as free is
// always confirmed against the underlying store. A stale positive entry can
// only make the resolver pick a higher suffix, never a duplicate.
// cache.WithTTL bounds how long a positive answer is trusted.
type CachedStore struct {
	next  Store
	taken *cache.LRUCache[string, struct{}]
}

// NewCachedStore wraps next. The capacity must be positive, otherwise it panics.
func NewCachedStore(next Store, capacity int, opts ...cache.Option) *CachedStore {
	return &CachedStore{
		next:  next,
		taken: cache.NewLRUCache[string, struct{}](capacity, opts...),
	}
}

func (c *CachedStore) ExistsMatching(ctx context.Context, q Query) (bool, error) {
	key := q.String()
	if _, ok := c.taken.Get(key); ok {
		return true, nil
	}

	taken, err := c.next.ExistsMatching(ctx, q)
	if err != nil {
		return false, err
	}
	if taken {
		c.taken.Put(key, struct{}{})
	}
	return taken, nil
}

// Forget drops the cached answer for q, e.g. after the matching record was deleted.
func (c *CachedStore) Forget(q Query) {
	c.taken.Remove(q.String())
}

// Purge drops every cached answer.
func (c *CachedStore) Purge() {
	c.taken.Clear()
}

// Len returns the number of cached answers.
func (c *CachedStore) Len() int {
	return c.taken.Len()
}
