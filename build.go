package sluggable

import (
	"strings"

	"github.com/dmitrymomot/sluggable/pkg/slug"
)

// Build produces the base candidate for record: every source value is
// normalized, the parts are joined in source order, a blank result is
// replaced by the fallback when generation on blank is enabled, and the
// candidate is truncated to MaxLength runes.
func (c *Config) Build(record any) (string, error) {
	if err := c.check(record); err != nil {
		return "", err
	}

	parts := make([]string, 0, len(c.sources))
	for _, src := range c.sources {
		v, err := src.read(record)
		if err != nil {
			return "", attributeError(c.kind, src.name, err)
		}
		s := stringify(v)
		if strings.TrimSpace(s) == "" {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, c.strategy.Normalize(s, c))
	}

	candidate := c.strategy.Concat(parts, c)
	if candidate == "" {
		if !c.generateOnBlank {
			return "", nil
		}
		blank, err := c.strategy.Blank(record, c)
		if err != nil {
			return "", err
		}
		candidate = blank
	}

	return slug.Truncate(candidate, c.maxLength), nil
}
