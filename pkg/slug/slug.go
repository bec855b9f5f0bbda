package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Option configures the slug generation behavior.
type Option func(*config)

// config holds the configuration for slug generation.
type config struct {
	maxLength        int
	separator        string
	lowercase        bool
	stripPunctuation bool
	transliterate    bool
	stripChars       string
	customReplace    map[string]string
}

// defaultConfig returns the default configuration.
func defaultConfig() *config {
	return &config{
		maxLength:        0, // no limit
		separator:        "-",
		lowercase:        true,
		stripPunctuation: true,
		transliterate:    true,
	}
}

// MaxLength sets the maximum length of the generated slug in runes.
// The slug is cut without looking for word boundaries. Zero means no limit.
func MaxLength(n int) Option {
	return func(c *config) {
		c.maxLength = n
	}
}

// Separator sets the separator for the slug.
// Default is "-".
func Separator(s string) Option {
	return func(c *config) {
		c.separator = s
	}
}

// Lowercase controls whether the slug should be converted to lowercase.
// Default is true.
func Lowercase(enabled bool) Option {
	return func(c *config) {
		c.lowercase = enabled
	}
}

// StripPunctuation controls removal of opening, closing and other punctuation
// (Unicode classes Ps, Pe and Po) before the string is parameterized.
// Removed characters do not produce a separator: "don't" becomes "dont".
// Default is true.
func StripPunctuation(enabled bool) Option {
	return func(c *config) {
		c.stripPunctuation = enabled
	}
}

// Transliterate controls folding of non-ASCII letters into ASCII ("café" -> "cafe").
// Default is true.
func Transliterate(enabled bool) Option {
	return func(c *config) {
		c.transliterate = enabled
	}
}

// StripChars sets additional characters to strip from the slug.
func StripChars(chars string) Option {
	return func(c *config) {
		c.stripChars = chars
	}
}

// CustomReplace sets custom string replacements to apply before slugification.
// For example: {"&": "and", "@": "at"}
func CustomReplace(replacements map[string]string) Option {
	return func(c *config) {
		c.customReplace = replacements
	}
}

// Make creates a URL-safe slug from the input string.
//
// The pipeline is: custom replacements, stripped characters, punctuation removal,
// transliteration, lowercasing, then every run of characters outside
// [a-z0-9_-] is collapsed into the separator and leading/trailing separators
// are removed.
func Make(s string, opts ...Option) string {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	for old, repl := range cfg.customReplace {
		s = strings.ReplaceAll(s, old, repl)
	}

	if cfg.stripChars != "" {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(cfg.stripChars, r) {
				return -1
			}
			return r
		}, s)
	}

	if cfg.stripPunctuation {
		s = strings.Map(func(r rune) rune {
			if unicode.In(r, unicode.Ps, unicode.Pe, unicode.Po) {
				return -1
			}
			return r
		}, s)
	}

	if cfg.transliterate {
		s = fold(s)
	}

	if cfg.lowercase {
		s = strings.ToLower(s)
	}

	result := parameterize(s, cfg.separator, cfg.lowercase)

	if cfg.maxLength > 0 {
		result = Truncate(result, cfg.maxLength)
	}

	return result
}

// Truncate cuts s to at most n runes. It does not look for word boundaries,
// so the result may end with a separator.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// parameterize replaces every run of characters that are not ASCII letters,
// digits, '-' or '_' with sep, squeezes repeated separators and trims them
// from both ends.
func parameterize(s, sep string, lowercase bool) string {
	var b strings.Builder
	b.Grow(len(s))

	inRun := false
	for _, r := range s {
		if allowed(r, lowercase) {
			b.WriteRune(r)
			inRun = false
			continue
		}
		if !inRun {
			b.WriteString(sep)
			inRun = true
		}
	}

	result := b.String()
	if sep == "" {
		return result
	}

	double := sep + sep
	for strings.Contains(result, double) {
		result = strings.ReplaceAll(result, double, sep)
	}
	result = strings.TrimPrefix(result, sep)
	result = strings.TrimSuffix(result, sep)
	return result
}

func allowed(r rune, lowercase bool) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		return true
	case r >= 'A' && r <= 'Z':
		return !lowercase
	}
	return false
}

// ligatures lists letters that do not decompose into a base letter plus marks.
var ligatures = map[rune]string{
	'ß': "ss", 'ẞ': "SS",
	'æ': "ae", 'Æ': "AE",
	'œ': "oe", 'Œ': "OE",
	'ø': "o", 'Ø': "O",
	'ł': "l", 'Ł': "L",
	'đ': "d", 'Đ': "D",
	'ð': "d", 'Ð': "D",
	'þ': "th", 'Þ': "TH",
	'ı': "i",
}

// fold maps non-ASCII letters to ASCII where a sensible mapping exists.
// Letters without one are left in place and later become separators.
func fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if repl, ok := ligatures[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, b.String())
	if err != nil {
		return b.String()
	}
	return result
}
