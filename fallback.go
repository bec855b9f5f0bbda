package sluggable

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/sluggable/pkg/slug"
)

// FallbackFunc produces the candidate used when every source value is blank
// and blank generation is enabled.
type FallbackFunc func(record any, cfg *Config) (string, error)

// TypeNameFallback derives the candidate from the record's type name in
// lower kebab-case: SomeObject becomes "some-object". It is the default.
func TypeNameFallback(_ any, cfg *Config) (string, error) {
	return slug.Kebab(cfg.TypeName()), nil
}

// StaticFallback always returns the normalized value.
func StaticFallback(value string) FallbackFunc {
	return func(_ any, cfg *Config) (string, error) {
		return slug.Make(value, slug.Separator(cfg.Separator())), nil
	}
}

// UUIDFallback returns a random version 4 UUID in canonical form. It keeps
// blank records from piling up suffixes on one shared fallback slug.
func UUIDFallback(_ any, _ *Config) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
