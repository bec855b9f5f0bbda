// Package slug provides the character-level normalization used to turn
// arbitrary text into URL-safe identifiers.
//
// Make follows the familiar "parameterize" rules: punctuation is stripped,
// letters are folded to ASCII where possible, the result is lowercased and
// every run of other characters collapses into a single separator. Leading and
// trailing separators are removed. Hyphens and underscores already present in
// the input survive, so the output always matches ^[a-z0-9\-_]*$ with the
// default options.
//
// # Usage
//
//	import "github.com/dmitrymomot/sluggable/pkg/slug"
//
//	slug.Make("Test Schnecke")
//	// Result: "test-schnecke"
//
//	slug.Make("----!@@foo!!!!---bar %  baz------^&*")
//	// Result: "foo-bar-baz"
//
//	slug.Make("Fish & Chips", slug.CustomReplace(map[string]string{"&": "and"}))
//	// Result: "fish-and-chips"
//
// # Configuration Options
//
//   - MaxLength: cut the result to N runes (no word-boundary awareness)
//   - Separator: change the separator (default: "-")
//   - Lowercase: enable/disable lowercase conversion (default: true)
//   - StripPunctuation: drop Ps/Pe/Po punctuation before parameterizing (default: true)
//   - Transliterate: fold non-ASCII letters via NFD decomposition (default: true)
//   - StripChars: remove specific characters before processing
//   - CustomReplace: apply string replacements before processing
//
// # Unicode Support
//
// Transliteration decomposes letters with golang.org/x/text/unicode/norm and
// drops combining marks, so "café" becomes "cafe" and "Zażółć" becomes
// "zazolc". A handful of letters that do not decompose (ß, æ, ø, ł, þ) are
// mapped explicitly. Scripts without a Latin mapping are dropped.
//
// Kebab and Snake convert Go identifiers ("SomeObject") into "some-object" and
// "some_object"; they are used for fallback slugs and storage naming.
//
// All functions in this package are safe for concurrent use.
package slug
