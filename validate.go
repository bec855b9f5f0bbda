package sluggable

import "github.com/dmitrymomot/sluggable/pkg/validator"

// Validate checks the target field of record after assignment: presence when
// the slug is required and the configured format. The returned error is a
// validator.ValidationErrors. Assign never calls it; it belongs to the
// caller's validation layer.
func (c *Config) Validate(record any) error {
	value, err := c.Current(record)
	if err != nil {
		return err
	}

	var rules []validator.Rule
	if c.required {
		rules = append(rules, validator.Required(c.target, value))
	}
	if c.format != nil {
		rules = append(rules, validator.MatchesPattern(c.target, value, c.format, "slug"))
	}
	return validator.Apply(rules...)
}
