// Package logger builds *slog.Logger instances with functional options and
// provides attribute helpers so the slug pipeline logs with consistent keys.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// handler in LogHandlerDecorator, which appends attributes extracted from the
// context on every *Context call.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "slugify"),
//	    logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.DebugContext(ctx, "slug collision",
//	    logger.Kind("Post"),
//	    logger.Candidate("hello-world"),
//	    logger.Attempt(2),
//	)
//
// Error returns an empty attribute for a nil error, so it can be passed
// without a nil check. Nop returns a logger that discards everything; it is
// the default for library components that were not given a logger.
package logger
