// Package httpserver runs the slug HTTP API with graceful shutdown.
//
// Server listens eagerly, so a bad address fails Run with ErrStart before
// anything is served, and shuts down with a bounded deadline once the
// context passed to Run is done. Addr reports the bound address, which makes
// ":0" usable in tests. NewFromConfig builds a Server from HTTP_* variables.
//
// HealthCheckHandler serves liveness (no checks) and readiness (named store
// checks such as pg.Healthcheck) probes.
//
// # Usage
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	r := slugs.Router(slugs.RouterOptions{Service: svc, Logger: log})
//	if err := srv.Run(ctx, r); err != nil {
//		return err
//	}
//
// # Errors
//
// Run wraps listen and serve errors with ErrStart, while Shutdown wraps
// underlying shutdown errors with ErrShutdown.
package httpserver
