package redis_test

import (
	"context"
	"errors"
	"os"
	"sort"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sluggable"
	"github.com/dmitrymomot/sluggable/pkg/redis"
)

// memHash is an in-memory HashClient.
type memHash struct {
	data  map[string]map[string]string
	err   error
	scans int
}

func newMemHash() *memHash {
	return &memHash{data: make(map[string]map[string]string)}
}

func (m *memHash) HGet(_ context.Context, key, field string) *goredis.StringCmd {
	if m.err != nil {
		return goredis.NewStringResult("", m.err)
	}
	v, ok := m.data[key][field]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (m *memHash) HSetNX(_ context.Context, key, field string, value any) *goredis.BoolCmd {
	if m.err != nil {
		return goredis.NewBoolResult(false, m.err)
	}
	h, ok := m.data[key]
	if !ok {
		h = make(map[string]string)
		m.data[key] = h
	}
	if _, taken := h[field]; taken {
		return goredis.NewBoolResult(false, nil)
	}
	h[field] = value.(string)
	return goredis.NewBoolResult(true, nil)
}

func (m *memHash) HDel(_ context.Context, key string, fields ...string) *goredis.IntCmd {
	var n int64
	for _, f := range fields {
		if _, ok := m.data[key][f]; ok {
			delete(m.data[key], f)
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

// HScan returns one field per page to exercise the cursor loop.
func (m *memHash) HScan(_ context.Context, key string, cursor uint64, _ string, _ int64) *goredis.ScanCmd {
	m.scans++
	fields := make([]string, 0, len(m.data[key]))
	for f := range m.data[key] {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	if int(cursor) >= len(fields) {
		return goredis.NewScanCmdResult(nil, 0, nil)
	}
	f := fields[cursor]
	next := cursor + 1
	if int(next) >= len(fields) {
		next = 0
	}
	return goredis.NewScanCmdResult([]string{f, m.data[key][f]}, next, nil)
}

func query(slug string, scope ...sluggable.Field) sluggable.Query {
	return sluggable.Query{
		Kind:   "Post",
		Fields: append([]sluggable.Field{{Name: "Slug", Value: slug}}, scope...),
	}
}

func TestIndex_Key(t *testing.T) {
	idx := redis.NewIndex(newMemHash())
	assert.Equal(t, "slugs:Post:", idx.Key(query("a")))
	assert.Equal(t, "slugs:Post:BlogID=1", idx.Key(query("a", sluggable.Field{Name: "BlogID", Value: 1})))

	custom := redis.NewIndexWithConfig(newMemHash(), redis.Config{KeyPrefix: "app:slug:"})
	assert.Equal(t, "app:slug:Post:", custom.Key(query("a")))
}

func TestIndex(t *testing.T) {
	ctx := context.Background()
	idx := redis.NewIndex(newMemHash())
	blog1 := sluggable.Field{Name: "BlogID", Value: 1}
	blog2 := sluggable.Field{Name: "BlogID", Value: 2}

	require.NoError(t, idx.Reserve(ctx, query("hello", blog1), "7"))

	exists, err := idx.ExistsMatching(ctx, query("hello", blog1))
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = idx.ExistsMatching(ctx, query("hello", blog2))
	require.NoError(t, err)
	assert.False(t, exists, "scopes are isolated")

	t.Run("owner excluded", func(t *testing.T) {
		q := query("hello", blog1)
		q.Exclude = &sluggable.Field{Name: "ID", Value: int64(7)}
		exists, err := idx.ExistsMatching(ctx, q)
		require.NoError(t, err)
		assert.False(t, exists)

		q.Exclude.Value = int64(8)
		exists, err = idx.ExistsMatching(ctx, q)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("reserve taken", func(t *testing.T) {
		assert.ErrorIs(t, idx.Reserve(ctx, query("hello", blog1), "8"), redis.ErrSlugTaken)
	})

	t.Run("invalid query", func(t *testing.T) {
		_, err := idx.ExistsMatching(ctx, sluggable.Query{Kind: "Post"})
		assert.ErrorIs(t, err, redis.ErrInvalidQuery)
		assert.ErrorIs(t, idx.Reserve(ctx, query(""), "1"), redis.ErrInvalidQuery)
	})

	t.Run("release", func(t *testing.T) {
		require.NoError(t, idx.Release(ctx, query("hello", blog1)))
		assert.ErrorIs(t, idx.Release(ctx, query("hello", blog1)), redis.ErrReservationNotFound)
	})
}

func TestIndex_Slugs(t *testing.T) {
	ctx := context.Background()
	client := newMemHash()
	idx := redis.NewIndex(client)

	for _, s := range []string{"c", "a", "b"} {
		require.NoError(t, idx.Reserve(ctx, query(s), "1"))
	}
	require.NoError(t, idx.Reserve(ctx, query("z", sluggable.Field{Name: "BlogID", Value: 1}), "1"))

	slugs, err := idx.Slugs(ctx, query(""))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, slugs)
	assert.Equal(t, 3, client.scans)
}

func TestIndex_QueryFailed(t *testing.T) {
	boom := errors.New("connection reset")
	client := newMemHash()
	client.err = boom
	idx := redis.NewIndex(client)

	_, err := idx.ExistsMatching(context.Background(), query("a"))
	assert.ErrorIs(t, err, redis.ErrQueryFailed)
	assert.ErrorIs(t, err, boom)

	err = idx.Reserve(context.Background(), query("a"), "1")
	assert.ErrorIs(t, err, redis.ErrQueryFailed)
}

func TestIndex_WithSlugger(t *testing.T) {
	type Post struct {
		BlogID int
		Title  string
		Slug   string
	}

	ctx := context.Background()
	idx := redis.NewIndex(newMemHash())
	s := sluggable.New(idx)
	cfg, err := s.Register(Post{}, sluggable.From("Title"), sluggable.Scope("BlogID"))
	require.NoError(t, err)

	for i, want := range []string{"hello-world", "hello-world-2", "hello-world-3"} {
		p := &Post{BlogID: 1, Title: "Hello World"}
		_, err := s.Assign(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, want, p.Slug)

		q, err := cfg.Query(p.Slug, p)
		require.NoError(t, err)
		require.NoError(t, idx.Reserve(ctx, q, string(rune('a'+i))))
	}

	other := &Post{BlogID: 2, Title: "Hello World"}
	_, err = s.Assign(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, "hello-world", other.Slug)
}

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) *goredis.StatusCmd {
	return goredis.NewStatusResult("PONG", f(ctx))
}

func TestHealthcheck(t *testing.T) {
	ok := redis.Healthcheck(pingFunc(func(context.Context) error { return nil }))
	assert.NoError(t, ok(context.Background()))

	down := redis.Healthcheck(pingFunc(func(context.Context) error { return errors.New("refused") }))
	assert.ErrorIs(t, down(context.Background()), redis.ErrHealthcheckFailed)
}

func TestConnect_EmptyURL(t *testing.T) {
	_, err := redis.Connect(context.Background(), redis.Config{})
	assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
}

func TestIndex_Integration(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := redis.Connect(ctx, redis.Config{ConnectionURL: url, RetryAttempts: 1, ConnectTimeout: 5 * time.Second})
	require.NoError(t, err)
	defer client.Close()

	idx := redis.NewIndexWithConfig(client, redis.Config{KeyPrefix: "sluggable-test:" + t.Name() + ":"})
	q := query("integration")
	t.Cleanup(func() { _ = client.Del(context.Background(), idx.Key(q)).Err() })

	require.NoError(t, idx.Reserve(ctx, q, "1"))
	assert.ErrorIs(t, idx.Reserve(ctx, q, "2"), redis.ErrSlugTaken)

	exists, err := idx.ExistsMatching(ctx, q)
	require.NoError(t, err)
	assert.True(t, exists)

	slugs, err := idx.Slugs(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"integration"}, slugs)
}
