package logger

import (
	"log/slog"
	"strings"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Kind records the record type identifier under the key "kind".
func Kind(kind string) slog.Attr {
	return slog.String("kind", kind)
}

// Slug records the final slug under the key "slug".
func Slug(s string) slog.Attr {
	return slog.String("slug", s)
}

// Candidate records a not yet accepted slug under the key "candidate".
func Candidate(s string) slog.Attr {
	return slog.String("candidate", s)
}

// Attempt records the number of existence checks under the key "attempt".
func Attempt(n int) slog.Attr {
	return slog.Int("attempt", n)
}

// Scope records the uniqueness scope attribute names under the key "scope".
// If no names are given, it returns an empty Attr.
func Scope(names ...string) slog.Attr {
	if len(names) == 0 {
		return slog.Attr{}
	}
	return slog.String("scope", strings.Join(names, ","))
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
