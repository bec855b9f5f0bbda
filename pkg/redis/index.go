package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/sluggable"
)

// HashClient is the subset of redis.UniversalClient the Index uses.
type HashClient interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HSetNX(ctx context.Context, key, field string, value any) *redis.BoolCmd
	HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd
	HScan(ctx context.Context, key string, cursor uint64, match string, count int64) *redis.ScanCmd
}

// Index keeps issued slugs in one hash per kind and scope. The hash field is
// the slug and its value the owner it was reserved for.
type Index struct {
	db            HashClient
	prefix        string
	scanBatchSize int64
}

var _ sluggable.Store = (*Index)(nil)

// NewIndex uses the "slugs:" prefix and a scan batch size of 1000.
func NewIndex(client HashClient) *Index {
	return &Index{
		db:            client,
		prefix:        "slugs:",
		scanBatchSize: 1000,
	}
}

// NewIndexWithConfig takes the prefix and scan batch size from cfg.
func NewIndexWithConfig(client HashClient, cfg Config) *Index {
	idx := NewIndex(client)
	if cfg.KeyPrefix != "" {
		idx.prefix = cfg.KeyPrefix
	}
	if cfg.ScanBatchSize > 0 {
		idx.scanBatchSize = int64(cfg.ScanBatchSize)
	}
	return idx
}

// Key returns the hash key holding the slugs of q's kind and scope,
// e.g. "slugs:Post:BlogID=1".
func (i *Index) Key(q sluggable.Query) string {
	return i.prefix + q.Kind + ":" + q.ScopeKey()
}

// ExistsMatching reports whether the slug of q is reserved. A reservation
// owned by q.Exclude does not count.
func (i *Index) ExistsMatching(ctx context.Context, q sluggable.Query) (bool, error) {
	slug, ok := q.Candidate()
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrInvalidQuery, q)
	}

	owner, err := i.db.HGet(ctx, i.Key(q), slug).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errors.Join(ErrQueryFailed, err)
	}
	if q.Exclude != nil && owner == fmt.Sprint(q.Exclude.Value) {
		return false, nil
	}
	return true, nil
}

// Reserve stores the slug of q for ownerID with HSETNX.
func (i *Index) Reserve(ctx context.Context, q sluggable.Query, ownerID string) error {
	slug, ok := q.Candidate()
	if !ok || slug == "" {
		return fmt.Errorf("%w: %s", ErrInvalidQuery, q)
	}

	set, err := i.db.HSetNX(ctx, i.Key(q), slug, ownerID).Result()
	if err != nil {
		return errors.Join(ErrQueryFailed, err)
	}
	if !set {
		return ErrSlugTaken
	}
	return nil
}

// Release removes the reservation of q.
func (i *Index) Release(ctx context.Context, q sluggable.Query) error {
	slug, ok := q.Candidate()
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidQuery, q)
	}

	n, err := i.db.HDel(ctx, i.Key(q), slug).Result()
	if err != nil {
		return errors.Join(ErrQueryFailed, err)
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// Slugs returns every slug reserved in q's kind and scope, sorted.
// Only q.Kind and the scope fields are used.
func (i *Index) Slugs(ctx context.Context, q sluggable.Query) ([]string, error) {
	key := i.Key(q)

	var (
		slugs  []string
		cursor uint64
	)
	for {
		batch, next, err := i.db.HScan(ctx, key, cursor, "*", i.scanBatchSize).Result()
		if err != nil {
			return nil, errors.Join(ErrQueryFailed, err)
		}
		// HSCAN replies with field, value pairs.
		for n := 0; n+1 < len(batch); n += 2 {
			slugs = append(slugs, batch[n])
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	sort.Strings(slugs)
	return slugs, nil
}
