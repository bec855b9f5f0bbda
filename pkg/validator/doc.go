// Package validator provides small declarative validation rules.
//
// A Rule pairs a Check function with translation-friendly error metadata.
// Apply evaluates rules in order and aggregates failures into
// ValidationErrors, which implements error and matches ErrValidationFailed
// through errors.Is.
//
//	err := validator.Apply(
//	    validator.Required("Slug", post.Slug),
//	    validator.MatchesPattern("Slug", post.Slug, pattern, "slug"),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    // verrs.Get("Slug")
//	}
package validator
