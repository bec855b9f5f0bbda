package slug

import (
	"strings"
	"unicode"
)

// Kebab converts a Go identifier such as a type name into lower kebab-case.
//
//	Kebab("SomeObject") // "some-object"
//	Kebab("HTTPServer") // "http-server"
func Kebab(name string) string {
	return splitWords(name, "-")
}

// Snake converts a Go identifier into lower snake_case.
// It is used to derive table, collection and column names from type and field names.
//
//	Snake("ParentID") // "parent_id"
func Snake(name string) string {
	return splitWords(name, "_")
}

func splitWords(name, sep string) string {
	rs := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)

	for i, r := range rs {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			if b.Len() > 0 && !strings.HasSuffix(b.String(), sep) {
				b.WriteString(sep)
			}
			continue
		}
		if unicode.IsUpper(r) && i > 0 && b.Len() > 0 && !strings.HasSuffix(b.String(), sep) {
			prev := rs[i-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteString(sep)
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return strings.TrimSuffix(b.String(), sep)
}
