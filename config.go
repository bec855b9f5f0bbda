package sluggable

import (
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied when an option is absent.
const (
	DefaultColumn        = "Slug"
	DefaultSeparator     = "-"
	DefaultLimitLength   = 32
	DefaultRequireFormat = `^[a-z0-9\-_]+$`
)

// Options is the static options structure for one record type, as found in
// configuration files. Nil pointers mean "not set" and select the default.
type Options struct {
	Kind            string             `yaml:"kind"`
	Sources         []string           `yaml:"sources"`
	Column          string             `yaml:"column"`
	Separator       *string            `yaml:"separator"`
	LimitLength     *int               `yaml:"limit_length"`
	Required        *bool              `yaml:"required"`
	GenerateOnBlank *bool              `yaml:"generate_on_blank"`
	RequireFormat   *string            `yaml:"require_format"`
	Uniqueness      *UniquenessOptions `yaml:"uniqueness"`
}

// UniquenessOptions scopes uniqueness checks. Conditions is not supported;
// setting it makes configuration fail. A conditions key read from YAML fails
// even when its value is null.
type UniquenessOptions struct {
	Scope      []string `yaml:"scope"`
	Conditions any      `yaml:"conditions"`

	conditionsKey bool
}

// UnmarshalYAML records whether the conditions key is present and rejects
// unknown keys.
func (u *UniquenessOptions) UnmarshalYAML(node *yaml.Node) error {
	var out UniquenessOptions
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			switch key.Value {
			case "scope":
				if err := value.Decode(&out.Scope); err != nil {
					return err
				}
			case "conditions":
				out.conditionsKey = true
				if err := value.Decode(&out.Conditions); err != nil {
					return err
				}
			default:
				return fmt.Errorf("line %d: field %s not found in uniqueness options", key.Line, key.Value)
			}
		}
	} else if node.Tag != "!!null" {
		return fmt.Errorf("line %d: uniqueness options must be a mapping", node.Line)
	}
	*u = out
	return nil
}

func (u *UniquenessOptions) hasConditions() bool {
	return u.Conditions != nil || u.conditionsKey
}

// Option configures a record type.
type Option func(*builder)

type builder struct {
	kind            string
	sources         []string
	funcs           map[string]SourceFunc
	column          string
	separator       string
	limitLength     int
	required        bool
	generateOnBlank bool
	requireFormat   string
	scope           []string
	conditions      bool
	fallback        FallbackFunc
	strategy        Strategy
}

// From sets the source attributes in order. The first one appears first in the slug.
func From(names ...string) Option {
	return func(b *builder) { b.sources = append([]string(nil), names...) }
}

// Source registers a computed source provider for name. The name still has
// to be listed with From (or in Options.Sources) to take part in the slug;
// it may also be used as a scope attribute.
func Source(name string, fn SourceFunc) Option {
	return func(b *builder) {
		if b.funcs == nil {
			b.funcs = make(map[string]SourceFunc)
		}
		b.funcs[name] = fn
	}
}

// Column sets the target field the slug is written to. Default "Slug".
func Column(name string) Option {
	return func(b *builder) { b.column = name }
}

// Separator sets the word separator. Default "-".
func Separator(sep string) Option {
	return func(b *builder) { b.separator = sep }
}

// LimitLength sets the maximum base slug length in runes. Zero or a negative
// value disables truncation. Default 32.
func LimitLength(n int) Option {
	return func(b *builder) { b.limitLength = max(n, 0) }
}

// Unbounded disables truncation.
func Unbounded() Option {
	return LimitLength(0)
}

// Required marks the slug as mandatory for Validate. Default true.
func Required(required bool) Option {
	return func(b *builder) { b.required = required }
}

// GenerateOnBlank enables the fallback candidate when all sources are blank. Default true.
func GenerateOnBlank(enabled bool) Option {
	return func(b *builder) { b.generateOnBlank = enabled }
}

// RequireFormat sets the pattern the final slug must match in Validate.
// An empty pattern disables the format check.
func RequireFormat(pattern string) Option {
	return func(b *builder) { b.requireFormat = pattern }
}

// Scope sets the attributes that partition uniqueness, in order.
func Scope(names ...string) Option {
	return func(b *builder) { b.scope = append([]string(nil), names...) }
}

// Kind overrides the record type identifier passed to the store.
// Default is the Go type name.
func Kind(kind string) Option {
	return func(b *builder) { b.kind = kind }
}

// Fallback sets the blank-candidate strategy. Default TypeNameFallback.
func Fallback(fn FallbackFunc) Option {
	return func(b *builder) {
		if fn != nil {
			b.fallback = fn
		}
	}
}

// WithStrategy replaces the hook and normalization strategy.
func WithStrategy(s Strategy) Option {
	return func(b *builder) {
		if s != nil {
			b.strategy = s
		}
	}
}

// WithOptions applies a static Options value. Unset fields keep their current value.
func WithOptions(o Options) Option {
	return func(b *builder) {
		if o.Kind != "" {
			b.kind = o.Kind
		}
		if len(o.Sources) > 0 {
			b.sources = append([]string(nil), o.Sources...)
		}
		if o.Column != "" {
			b.column = o.Column
		}
		if o.Separator != nil {
			b.separator = *o.Separator
		}
		if o.LimitLength != nil {
			LimitLength(*o.LimitLength)(b)
		}
		if o.Required != nil {
			b.required = *o.Required
		}
		if o.GenerateOnBlank != nil {
			b.generateOnBlank = *o.GenerateOnBlank
		}
		if o.RequireFormat != nil {
			b.requireFormat = *o.RequireFormat
		}
		if o.Uniqueness != nil {
			b.scope = append([]string(nil), o.Uniqueness.Scope...)
			b.conditions = o.Uniqueness.hasConditions()
		}
	}
}

type source struct {
	name string
	read readFunc
}

// Config is the validated, immutable slug configuration of one record type.
type Config struct {
	kind            string
	typ             reflect.Type
	sources         []source
	scope           []source
	target          string
	readTarget      readFunc
	writeTarget     writeFunc
	separator       string
	maxLength       int
	required        bool
	format          *regexp.Regexp
	generateOnBlank bool
	fallback        FallbackFunc
	strategy        Strategy
}

// NewConfig validates opts against the type of prototype and returns the
// configuration. prototype may be a value or a pointer; only its type is used.
// All failures are *ConfigurationError values.
func NewConfig(prototype any, opts ...Option) (*Config, error) {
	t := baseType(reflect.TypeOf(prototype))
	if t == nil {
		return nil, configError("<nil>", "", "prototype must not be nil")
	}

	b := &builder{
		column:          DefaultColumn,
		separator:       DefaultSeparator,
		limitLength:     DefaultLimitLength,
		required:        true,
		generateOnBlank: true,
		requireFormat:   DefaultRequireFormat,
		fallback:        TypeNameFallback,
		strategy:        DefaultStrategy{},
	}
	for _, opt := range opts {
		opt(b)
	}

	kind := b.kind
	if kind == "" {
		kind = t.Name()
	}
	if kind == "" {
		return nil, configError(t.String(), "", "anonymous types need an explicit kind")
	}

	if b.conditions {
		return nil, configError(kind, "uniqueness.conditions", "conditions are not supported")
	}
	if len(b.sources) == 0 {
		return nil, configError(kind, "", "at least one source attribute is required")
	}
	if b.column == "" {
		return nil, configError(kind, "", "target column must not be empty")
	}

	cfg := &Config{
		kind:            kind,
		typ:             t,
		target:          b.column,
		separator:       b.separator,
		maxLength:       b.limitLength,
		required:        b.required,
		generateOnBlank: b.generateOnBlank,
		fallback:        b.fallback,
		strategy:        b.strategy,
	}

	var err error
	if cfg.sources, err = resolveSources(kind, t, b.sources, b.funcs); err != nil {
		return nil, err
	}
	if cfg.scope, err = resolveSources(kind, t, b.scope, b.funcs); err != nil {
		return nil, err
	}

	read, ok := newReader(t, b.column)
	if !ok {
		return nil, configError(kind, b.column, "target field is not readable")
	}
	write, ok := newWriter(t, b.column)
	if !ok {
		return nil, configError(kind, b.column, "target field has no writable accessor")
	}
	cfg.readTarget, cfg.writeTarget = read, write

	if b.requireFormat != "" {
		re, err := regexp.Compile(b.requireFormat)
		if err != nil {
			return nil, configError(kind, "require_format", err.Error())
		}
		cfg.format = re
	}

	return cfg, nil
}

func resolveSources(kind string, t reflect.Type, names []string, funcs map[string]SourceFunc) ([]source, error) {
	out := make([]source, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, configError(kind, "", "attribute names must not be blank")
		}
		if fn, ok := funcs[name]; ok && fn != nil {
			out = append(out, source{name: name, read: readFunc(fn)})
			continue
		}
		read, ok := newReader(t, name)
		if !ok {
			return nil, configError(kind, name, "attribute is not readable")
		}
		out = append(out, source{name: name, read: read})
	}
	return out, nil
}

// Kind returns the record type identifier passed to the store.
func (c *Config) Kind() string { return c.kind }

// TypeName returns the Go type name of configured records.
func (c *Config) TypeName() string {
	if c.typ.Name() != "" {
		return c.typ.Name()
	}
	return c.kind
}

// Sources returns the source attribute names in order.
func (c *Config) Sources() []string { return names(c.sources) }

// Scope returns the uniqueness scope attribute names in order.
func (c *Config) Scope() []string { return names(c.scope) }

// Target returns the name of the field the slug is written to.
func (c *Config) Target() string { return c.target }

// Separator returns the string placed between words and before a duplicate suffix.
func (c *Config) Separator() string { return c.separator }

// MaxLength returns the base slug limit in runes; zero means unbounded.
func (c *Config) MaxLength() int { return c.maxLength }

// Required reports whether a blank slug fails Validate.
func (c *Config) Required() bool { return c.required }

// GenerateOnBlank reports whether a blank candidate is replaced by the fallback.
func (c *Config) GenerateOnBlank() bool { return c.generateOnBlank }

// Format returns the required format pattern, or nil when disabled.
func (c *Config) Format() *regexp.Regexp { return c.format }

// Fallback returns the function producing the candidate for blank sources.
func (c *Config) Fallback() FallbackFunc { return c.fallback }

// Strategy returns the hooks used by Build and Assign.
func (c *Config) Strategy() Strategy { return c.strategy }

// Current returns the trimmed value of the target field.
func (c *Config) Current(record any) (string, error) {
	if err := c.check(record); err != nil {
		return "", err
	}
	v, err := c.readTarget(record)
	if err != nil {
		return "", attributeError(c.kind, c.target, err)
	}
	return strings.TrimSpace(stringify(v)), nil
}

// Write stores value in the target field. record must be a pointer.
func (c *Config) Write(record any, value string) error {
	if err := c.check(record); err != nil {
		return err
	}
	if err := c.writeTarget(record, value); err != nil {
		return attributeError(c.kind, c.target, err)
	}
	return nil
}

// check rejects nil records and records of another type.
func (c *Config) check(record any) error {
	if isNilRecord(record) {
		return ErrNilRecord
	}
	if t := baseType(reflect.TypeOf(record)); t != c.typ {
		return fmt.Errorf("%w: %s configuration used with %s", ErrNotRegistered, c.kind, t)
	}
	return nil
}

func names(sources []source) []string {
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = s.name
	}
	return slices.Clip(out)
}
