package sluggable

import (
	"context"
	"strconv"
	"strings"

	"github.com/dmitrymomot/sluggable/pkg/slug"
)

// AssignOptions are passed to Assign and to both hooks.
type AssignOptions struct {
	// Force regenerates the slug even when the target field is already set.
	Force bool
}

// AssignOption configures a single Assign call.
type AssignOption func(*AssignOptions)

// Force controls overwriting of an already set slug.
func Force(force bool) AssignOption {
	return func(o *AssignOptions) {
		o.Force = force
	}
}

// Strategy holds the overridable steps of slug assignment. Embed
// DefaultStrategy and override only the methods you need:
//
//	type titleCase struct{ sluggable.DefaultStrategy }
//
//	func (titleCase) Normalize(value string, cfg *sluggable.Config) string {
//	    return slug.Make(value, slug.Separator(cfg.Separator()), slug.Lowercase(false))
//	}
type Strategy interface {
	// BeforeAssign runs first on every Assign call. An error aborts the call.
	BeforeAssign(ctx context.Context, record any, opts AssignOptions) error
	// AfterAssign runs last on every Assign call unless generation failed.
	AfterAssign(ctx context.Context, record any, opts AssignOptions) error
	// Normalize turns a single non-blank source value into slug characters.
	Normalize(value string, cfg *Config) string
	// Concat joins the normalized source parts in source order.
	Concat(parts []string, cfg *Config) string
	// Blank produces the candidate used when the joined parts are empty.
	Blank(record any, cfg *Config) (string, error)
	// Duplicate derives the n-th collision candidate (n starts at 2).
	Duplicate(candidate string, n int, cfg *Config) string
}

// DefaultStrategy implements Strategy with the standard behavior.
type DefaultStrategy struct{}

var _ Strategy = DefaultStrategy{}

func (DefaultStrategy) BeforeAssign(context.Context, any, AssignOptions) error { return nil }

func (DefaultStrategy) AfterAssign(context.Context, any, AssignOptions) error { return nil }

// Normalize strips punctuation and parameterizes value with the configured separator.
func (DefaultStrategy) Normalize(value string, cfg *Config) string {
	return slug.Make(value, slug.Separator(cfg.Separator()))
}

// Concat joins non-empty parts with the configured separator.
func (DefaultStrategy) Concat(parts []string, cfg *Config) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, cfg.Separator())
}

// Blank delegates to the configured fallback.
func (DefaultStrategy) Blank(record any, cfg *Config) (string, error) {
	return cfg.Fallback()(record, cfg)
}

// Duplicate appends separator and n to candidate.
func (DefaultStrategy) Duplicate(candidate string, n int, cfg *Config) string {
	return candidate + cfg.Separator() + strconv.Itoa(n)
}
