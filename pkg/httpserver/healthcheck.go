package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"sort"

	"github.com/dmitrymomot/sluggable/pkg/logger"
)

// HealthCheckHandler serves liveness and readiness probes.
//
//   - Without checks it answers 200 "ALIVE".
//   - Otherwise every check runs with the request context, in name order.
//     All passing gives 200 "READY"; the first failure gives 503 "NOT_READY"
//     and is logged with the check name.
func HealthCheckHandler(log *slog.Logger, checks map[string]func(context.Context) error) http.HandlerFunc {
	if log == nil {
		log = logger.Nop()
	}
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if len(names) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		for _, name := range names {
			if err := checks[name](r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", slog.String("check", name), logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
