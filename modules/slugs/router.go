package slugs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/sluggable"
	"github.com/dmitrymomot/sluggable/pkg/httpserver"
	"github.com/dmitrymomot/sluggable/pkg/logger"
	"github.com/dmitrymomot/sluggable/pkg/validator"
)

// RouterOptions configures the slug HTTP API.
type RouterOptions struct {
	Service *Service
	Logger  *slog.Logger
	// Ready holds named readiness checks, e.g. the store healthcheck.
	Ready map[string]func(context.Context) error
	// IsTaken classifies the store's "slug already reserved" error.
	IsTaken func(error) bool
}

// Router serves:
//
//	GET  /slugs?kind=Post&text=Hello&scope=BlogID=1  generate
//	POST /slugs                                      generate and reserve
//	GET  /healthz                                    liveness
//	GET  /readyz                                     readiness
func Router(opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	h := &api{svc: opts.Service, log: log, isTaken: opts.IsTaken}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Get("/healthz", httpserver.HealthCheckHandler(log, nil))
	r.Get("/readyz", httpserver.HealthCheckHandler(log, opts.Ready))
	r.Route("/slugs", func(r chi.Router) {
		r.Get("/", h.generate)
		r.Post("/", h.reserve)
	})
	return r
}

type api struct {
	svc     *Service
	log     *slog.Logger
	isTaken func(error) bool
}

type reserveRequest struct {
	Request
	Owner string `json:"owner,omitempty"`
}

// envelope is the response body: data on success, error otherwise.
type envelope struct {
	Data  any          `json:"data,omitempty"`
	Error *errorDetail `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

func (a *api) generate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	scope, err := ParseScope(q.Get("scope"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	res, err := a.svc.Generate(r.Context(), Request{Kind: q.Get("kind"), Text: q.Get("text"), Scope: scope})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.write(w, r, http.StatusOK, envelope{Data: res})
}

func (a *api) reserve(w http.ResponseWriter, r *http.Request) {
	var req reserveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		a.write(w, r, http.StatusBadRequest, envelope{Error: &errorDetail{Code: "bad_request", Message: err.Error()}})
		return
	}
	res, err := a.svc.Reserve(r.Context(), req.Request, req.Owner)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.write(w, r, http.StatusCreated, envelope{Data: res})
}

func (a *api) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := http.StatusInternalServerError, &errorDetail{Code: "internal", Message: "internal error"}

	switch {
	case validator.IsValidationError(err):
		status = http.StatusUnprocessableEntity
		detail = &errorDetail{Code: "validation_failed", Message: "validation failed", Details: map[string][]string{}}
		for _, ve := range validator.ExtractValidationErrors(err) {
			detail.Details[ve.Field] = append(detail.Details[ve.Field], ve.Message)
		}
	case errors.Is(err, ErrInvalidScope), errors.Is(err, sluggable.ErrConfiguration):
		status, detail = http.StatusBadRequest, &errorDetail{Code: "bad_request", Message: err.Error()}
	case errors.Is(err, ErrReserveUnsupported):
		status, detail = http.StatusNotImplemented, &errorDetail{Code: "not_implemented", Message: err.Error()}
	case a.isTaken != nil && a.isTaken(err):
		status, detail = http.StatusConflict, &errorDetail{Code: "slug_taken", Message: "slug already reserved"}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status, detail = http.StatusServiceUnavailable, &errorDetail{Code: "unavailable", Message: err.Error()}
	}

	if status >= http.StatusInternalServerError {
		a.log.ErrorContext(r.Context(), "slug request failed", logger.Error(err))
	}
	a.write(w, r, status, envelope{Error: detail})
}

func (a *api) write(w http.ResponseWriter, r *http.Request, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.log.ErrorContext(r.Context(), "failed to write response", logger.Error(err))
	}
}

// RequestIDAttr adds the request id set by the router to log records.
// Register it with logger.WithContextExtractors.
func RequestIDAttr(ctx context.Context) (slog.Attr, bool) {
	id := middleware.GetReqID(ctx)
	if id == "" {
		return slog.Attr{}, false
	}
	return slog.String("request_id", id), true
}
