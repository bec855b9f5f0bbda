package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/sluggable/pkg/slug"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		opts     []slug.Option
		expected string
	}{
		{
			name:     "simple text",
			input:    "Test Schnecke",
			expected: "test-schnecke",
		},
		{
			name:     "punctuation and symbol noise",
			input:    "----!@@foo!!!!---bar %  baz------^&*",
			expected: "foo-bar-baz",
		},
		{
			name:     "with punctuation",
			input:    "Hello, World!",
			expected: "hello-world",
		},
		{
			name:     "apostrophe does not split words",
			input:    "Don't Stop",
			expected: "dont-stop",
		},
		{
			name:     "with numbers",
			input:    "Product 123",
			expected: "product-123",
		},
		{
			name:     "multiple spaces",
			input:    "Too    Many     Spaces",
			expected: "too-many-spaces",
		},
		{
			name:     "leading and trailing spaces",
			input:    "  Trim Me  ",
			expected: "trim-me",
		},
		{
			name:     "currency symbol becomes separator",
			input:    "Price: $99.99",
			expected: "price-9999",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only special characters",
			input:    "!@#$%^&*()",
			expected: "",
		},
		{
			name:     "underscore is kept",
			input:    "snake_case value",
			expected: "snake_case-value",
		},
		{
			name:     "unicode diacritics",
			input:    "Café résumé naïve",
			expected: "cafe-resume-naive",
		},
		{
			name:     "german characters",
			input:    "Über Größe straße",
			expected: "uber-grosse-strasse",
		},
		{
			name:     "polish characters",
			input:    "Zażółć gęślą jaźń",
			expected: "zazolc-gesla-jazn",
		},
		{
			name:     "mixed unicode and ascii",
			input:    "Côte d'Ivoire 2024",
			expected: "cote-divoire-2024",
		},
		{
			name:     "mixed case with lowercase false",
			input:    "Hello World",
			opts:     []slug.Option{slug.Lowercase(false)},
			expected: "Hello-World",
		},
		{
			name:     "custom separator",
			input:    "Hello World",
			opts:     []slug.Option{slug.Separator("_")},
			expected: "hello_world",
		},
		{
			name:     "max length cuts without word boundary",
			input:    "This is a very long title that should be truncated",
			opts:     []slug.Option{slug.MaxLength(20)},
			expected: "this-is-a-very-long-",
		},
		{
			name:     "strip specific characters",
			input:    "Remove (these) [chars]",
			opts:     []slug.Option{slug.StripChars("()[]")},
			expected: "remove-these-chars",
		},
		{
			name:  "custom replacements",
			input: "Fish & Chips @ Home",
			opts: []slug.Option{
				slug.CustomReplace(map[string]string{
					"&": "and",
					"@": "at",
				}),
			},
			expected: "fish-and-chips-at-home",
		},
		{
			name:     "punctuation kept as separator when stripping is off",
			input:    "Don't Stop",
			opts:     []slug.Option{slug.StripPunctuation(false)},
			expected: "don-t-stop",
		},
		{
			name:     "no transliteration",
			input:    "café bar",
			opts:     []slug.Option{slug.Transliterate(false)},
			expected: "caf-bar",
		},
		{
			name:     "consecutive separators",
			input:    "Too---Many---Dashes",
			expected: "too-many-dashes",
		},
		{
			name:     "trailing separator should be removed",
			input:    "Ends with dash-",
			expected: "ends-with-dash",
		},
		{
			name:     "emoji should be stripped",
			input:    "Hello 😀 World 🌍",
			expected: "hello-world",
		},
		{
			name:     "tabs and newlines",
			input:    "Line1\nLine2\tTabbed",
			expected: "line1-line2-tabbed",
		},
		{
			name:     "empty separator",
			input:    "No Separator",
			opts:     []slug.Option{slug.Separator("")},
			expected: "noseparator",
		},
		{
			name:     "multi-character separator",
			input:    "Multi Sep Test",
			opts:     []slug.Option{slug.Separator("--")},
			expected: "multi--sep--test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.Make(tt.input, tt.opts...))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", slug.Truncate("abcdef", 3))
	assert.Equal(t, "abc", slug.Truncate("abc", 10))
	assert.Equal(t, "abc", slug.Truncate("abc", 0))
	assert.Equal(t, "żó", slug.Truncate("żółw", 2))
}

func TestKebab(t *testing.T) {
	tests := map[string]string{
		"SomeObject":  "some-object",
		"Post":        "post",
		"HTTPServer":  "http-server",
		"userProfile": "user-profile",
		"Post2Tag":    "post2-tag",
		"":            "",
	}
	for in, expected := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, expected, slug.Kebab(in))
		})
	}
}

func TestSnake(t *testing.T) {
	assert.Equal(t, "parent_id", slug.Snake("ParentID"))
	assert.Equal(t, "blog_post", slug.Snake("BlogPost"))
	assert.Equal(t, "slug", slug.Snake("Slug"))
}

func BenchmarkMake(b *testing.B) {
	testCases := []struct {
		name  string
		input string
		opts  []slug.Option
	}{
		{
			name:  "simple",
			input: "Hello World",
		},
		{
			name:  "with_diacritics",
			input: "Café résumé naïve",
		},
		{
			name:  "special_chars_heavy",
			input: "!@#$%^&*()_+{}|:\"<>?[]\\;',./",
		},
	}

	for _, tc := range testCases {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = slug.Make(tc.input, tc.opts...)
			}
		})
	}
}
