package opensearch_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sluggable"
	"github.com/dmitrymomot/sluggable/pkg/opensearch"
)

// transportFunc answers requests without a cluster.
type transportFunc func(*http.Request) (*http.Response, error)

func (f transportFunc) Perform(r *http.Request) (*http.Response, error) { return f(r) }

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestStore_Body(t *testing.T) {
	store := opensearch.NewStore(nil, opensearch.WithField("Permalink", "url_path"))

	tests := []struct {
		name string
		q    sluggable.Query
		want string
	}{
		{
			name: "unscoped",
			q:    sluggable.Query{Kind: "BlogPost", Fields: []sluggable.Field{{Name: "Slug", Value: "hello"}}},
			want: `{"query":{"bool":{"filter":[{"term":{"slug":"hello"}}]}}}`,
		},
		{
			name: "scoped with nil",
			q: sluggable.Query{Kind: "BlogPost", Fields: []sluggable.Field{
				{Name: "Slug", Value: "hello"},
				{Name: "BlogID", Value: 1},
				{Name: "ParentID", Value: nil},
			}},
			want: `{"query":{"bool":{
				"filter":[{"term":{"slug":"hello"}},{"term":{"blog_id":1}}],
				"must_not":[{"exists":{"field":"parent_id"}}]}}}`,
		},
		{
			name: "exclude maps ID to _id",
			q: sluggable.Query{
				Kind:    "BlogPost",
				Fields:  []sluggable.Field{{Name: "Permalink", Value: "a"}},
				Exclude: &sluggable.Field{Name: "ID", Value: "42"},
			},
			want: `{"query":{"bool":{
				"filter":[{"term":{"url_path":"a"}}],
				"must_not":[{"term":{"_id":"42"}}]}}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := store.Body(tt.q)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(body))
		})
	}

	_, err := store.Body(sluggable.Query{Kind: "BlogPost"})
	assert.ErrorIs(t, err, opensearch.ErrInvalidQuery)
}

func TestStore_Index(t *testing.T) {
	store := opensearch.NewStore(nil,
		opensearch.WithIndexPrefix("app-"),
		opensearch.WithIndex("Page", "cms-pages"),
	)
	assert.Equal(t, "app-blog_post", store.Index("BlogPost"))
	assert.Equal(t, "cms-pages", store.Index("Page"))

	cfg := opensearch.Config{IndexPrefix: "x-"}
	assert.Equal(t, "x-post", opensearch.NewStore(nil, cfg.StoreOptions()...).Index("Post"))
	assert.Empty(t, opensearch.Config{}.StoreOptions())
}

func TestStore_ExistsMatching(t *testing.T) {
	ctx := context.Background()
	q := sluggable.Query{Kind: "Post", Fields: []sluggable.Field{{Name: "Slug", Value: "hello"}}}

	var got *http.Request
	store := opensearch.NewStore(transportFunc(func(r *http.Request) (*http.Response, error) {
		got = r
		return respond(http.StatusOK, `{"count":1,"terminated_early":true}`), nil
	}))

	exists, err := store.ExistsMatching(ctx, q)
	require.NoError(t, err)
	assert.True(t, exists)
	require.NotNil(t, got)
	assert.Equal(t, "/post/_count", got.URL.Path)
	assert.Equal(t, "1", got.URL.Query().Get("terminate_after"))

	t.Run("zero count", func(t *testing.T) {
		store := opensearch.NewStore(transportFunc(func(*http.Request) (*http.Response, error) {
			return respond(http.StatusOK, `{"count":0}`), nil
		}))
		exists, err := store.ExistsMatching(ctx, q)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("error response", func(t *testing.T) {
		store := opensearch.NewStore(transportFunc(func(*http.Request) (*http.Response, error) {
			return respond(http.StatusNotFound, `{"error":{"type":"index_not_found_exception"}}`), nil
		}))
		_, err := store.ExistsMatching(ctx, q)
		assert.ErrorIs(t, err, opensearch.ErrQueryFailed)
	})

	t.Run("transport error", func(t *testing.T) {
		boom := errors.New("dial tcp: refused")
		store := opensearch.NewStore(transportFunc(func(*http.Request) (*http.Response, error) {
			return nil, boom
		}))
		_, err := store.ExistsMatching(ctx, q)
		assert.ErrorIs(t, err, opensearch.ErrQueryFailed)
		assert.ErrorIs(t, err, boom)
	})
}

func TestStore_WithSlugger(t *testing.T) {
	type Article struct {
		Title string
		Slug  string
	}

	taken := map[string]bool{"launch-day": true}
	checks := 0
	store := opensearch.NewStore(transportFunc(func(r *http.Request) (*http.Response, error) {
		checks++
		body, _ := io.ReadAll(r.Body)
		for s := range taken {
			if strings.Contains(string(body), `"`+s+`"`) {
				return respond(http.StatusOK, `{"count":1}`), nil
			}
		}
		return respond(http.StatusOK, `{"count":0}`), nil
	}))

	s := sluggable.New(store)
	_, err := s.Register(Article{}, sluggable.From("Title"))
	require.NoError(t, err)

	a := &Article{Title: "Launch Day"}
	res, err := s.Assign(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, "launch-day-2", a.Slug)
	assert.Equal(t, 2, res.Checks)
	assert.Equal(t, 2, checks)
}

func TestHealthcheck(t *testing.T) {
	ok := opensearch.Healthcheck(transportFunc(func(*http.Request) (*http.Response, error) {
		return respond(http.StatusOK, `{"cluster_name":"test"}`), nil
	}))
	assert.NoError(t, ok(context.Background()))

	unauthorized := opensearch.Healthcheck(transportFunc(func(*http.Request) (*http.Response, error) {
		return respond(http.StatusUnauthorized, `{}`), nil
	}))
	assert.ErrorIs(t, unauthorized(context.Background()), opensearch.ErrHealthcheckFailed)

	down := opensearch.Healthcheck(transportFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("refused")
	}))
	assert.ErrorIs(t, down(context.Background()), opensearch.ErrHealthcheckFailed)
}

func TestNew_NoAddresses(t *testing.T) {
	_, err := opensearch.New(context.Background(), opensearch.Config{})
	assert.ErrorIs(t, err, opensearch.ErrNoAddresses)

	_, _, err = opensearch.Open(context.Background(), opensearch.Config{})
	assert.ErrorIs(t, err, opensearch.ErrNoAddresses)
}
