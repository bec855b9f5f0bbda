package slugs_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sluggable"
	"github.com/dmitrymomot/sluggable/modules/slugs"
	"github.com/dmitrymomot/sluggable/pkg/logger"
)

type body struct {
	Data  *slugs.Result `json:"data"`
	Error *struct {
		Code    string              `json:"code"`
		Details map[string][]string `json:"details"`
	} `json:"error"`
}

func do(t *testing.T, h http.Handler, method, target, payload string) (int, body) {
	t.Helper()
	var r *http.Request
	if payload == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(payload))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	var b body
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&b))
	}
	return rec.Code, b
}

func TestRouter_Generate(t *testing.T) {
	store := sluggable.NewMemoryStore()
	store.Insert("Post", map[string]any{"Slug": "hello", "BlogID": "1"})
	h := slugs.Router(slugs.RouterOptions{Service: slugs.NewService(store)})

	status, b := do(t, h, http.MethodGet, "/slugs?kind=Post&text=Hello&scope=BlogID%3D1", "")
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, b.Data)
	assert.Equal(t, "hello-2", b.Data.Slug)
	assert.Equal(t, 2, b.Data.Checks)
	assert.False(t, b.Data.Reserved)

	t.Run("invalid scope", func(t *testing.T) {
		status, b := do(t, h, http.MethodGet, "/slugs?text=Hello&scope=BlogID", "")
		assert.Equal(t, http.StatusBadRequest, status)
		require.NotNil(t, b.Error)
		assert.Equal(t, "bad_request", b.Error.Code)
	})

	t.Run("invalid kind", func(t *testing.T) {
		status, b := do(t, h, http.MethodGet, "/slugs?kind=1st&text=Hello", "")
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		require.NotNil(t, b.Error)
		assert.Contains(t, b.Error.Details, "kind")
	})

	t.Run("reserve unsupported", func(t *testing.T) {
		status, b := do(t, h, http.MethodPost, "/slugs", `{"text":"Hello"}`)
		assert.Equal(t, http.StatusNotImplemented, status)
		require.NotNil(t, b.Error)
	})
}

func TestRouter_Reserve(t *testing.T) {
	l := newLedger()
	h := slugs.Router(slugs.RouterOptions{
		Service: slugs.NewService(l),
		IsTaken: func(err error) bool { return errors.Is(err, errTaken) },
	})

	status, b := do(t, h, http.MethodPost, "/slugs", `{"kind":"Post","text":"Hello","scope":{"BlogID":"1"},"owner":"42"}`)
	require.Equal(t, http.StatusCreated, status)
	require.NotNil(t, b.Data)
	assert.Equal(t, "hello", b.Data.Slug)
	assert.True(t, b.Data.Reserved)
	assert.Equal(t, "42", b.Data.Owner)

	status, b = do(t, h, http.MethodPost, "/slugs", `{"kind":"Post","text":"Hello","scope":{"BlogID":"1"}}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "hello-2", b.Data.Slug)

	t.Run("conflict", func(t *testing.T) {
		h := slugs.Router(slugs.RouterOptions{
			Service: slugs.NewService(&racer{ledger: newLedger()}),
			IsTaken: func(err error) bool { return errors.Is(err, errTaken) },
		})
		status, b := do(t, h, http.MethodPost, "/slugs", `{"text":"Hello"}`)
		assert.Equal(t, http.StatusConflict, status)
		require.NotNil(t, b.Error)
		assert.Equal(t, "slug_taken", b.Error.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		status, _ := do(t, h, http.MethodPost, "/slugs", `{"text":`)
		assert.Equal(t, http.StatusBadRequest, status)

		status, _ = do(t, h, http.MethodPost, "/slugs", `{"title":"Hello"}`)
		assert.Equal(t, http.StatusBadRequest, status, "unknown fields are rejected")
	})
}

func TestRouter_Health(t *testing.T) {
	healthy := true
	h := slugs.Router(slugs.RouterOptions{
		Service: slugs.NewService(sluggable.NewMemoryStore()),
		Ready: map[string]func(context.Context) error{
			"store": func(context.Context) error {
				if healthy {
					return nil
				}
				return errors.New("down")
			},
		},
	})

	for _, tt := range []struct {
		path    string
		healthy bool
		want    int
	}{
		{"/healthz", false, http.StatusOK},
		{"/readyz", true, http.StatusOK},
		{"/readyz", false, http.StatusServiceUnavailable},
	} {
		healthy = tt.healthy
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.want, rec.Code, tt.path)
	}
}

func TestRouter_LogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithJSONFormatter(),
		logger.WithContextExtractors(slugs.RequestIDAttr),
	)
	broken := sluggable.StoreFunc(func(context.Context, sluggable.Query) (bool, error) {
		return false, errors.New("connection reset")
	})
	h := slugs.Router(slugs.RouterOptions{Service: slugs.NewService(broken), Logger: log})

	status, b := do(t, h, http.MethodGet, "/slugs?text=Hello", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	require.NotNil(t, b.Error)
	assert.Equal(t, "internal", b.Error.Code)
	assert.Contains(t, buf.String(), `"msg":"slug request failed"`)
	assert.Contains(t, buf.String(), `"request_id":"`)
}

func TestRequestIDAttr(t *testing.T) {
	_, ok := slugs.RequestIDAttr(context.Background())
	assert.False(t, ok)

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "host/abc-000001")
	attr, ok := slugs.RequestIDAttr(ctx)
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "host/abc-000001", attr.Value.String())
}
