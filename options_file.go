package sluggable

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// OptionsSet holds static options per record kind, as read from a YAML file:
//
//	Post:
//	  sources: [Title]
//	  limit_length: 64
//	  uniqueness:
//	    scope: [BlogID]
type OptionsSet map[string]Options

// ParseOptions decodes an OptionsSet from r. Unknown keys are rejected.
func ParseOptions(r io.Reader) (OptionsSet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var set OptionsSet
	if err := dec.Decode(&set); err != nil {
		if errors.Is(err, io.EOF) {
			return OptionsSet{}, nil
		}
		return nil, errors.Join(ErrOptionsFile, err)
	}
	for kind, o := range set {
		if o.Kind != "" && o.Kind != kind {
			return nil, errors.Join(ErrOptionsFile, fmt.Errorf("%s: kind %q does not match its key", kind, o.Kind))
		}
	}
	return set, nil
}

// LoadOptionsFile reads an OptionsSet from a YAML file.
func LoadOptionsFile(path string) (OptionsSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrOptionsFile, err)
	}
	defer f.Close()
	return ParseOptions(f)
}

// For returns the options registered under kind as an Option, with the kind
// applied. ok is false when the set has no entry for kind.
func (s OptionsSet) For(kind string) (Option, bool) {
	o, ok := s[kind]
	if !ok {
		return nil, false
	}
	o.Kind = kind
	return WithOptions(o), true
}

// RegisterAll registers each prototype with the options found under its key.
// A prototype without an entry is an error.
func (s OptionsSet) RegisterAll(r *Registry, prototypes map[string]any, opts ...Option) error {
	for kind, proto := range prototypes {
		o, ok := s.For(kind)
		if !ok {
			return fmt.Errorf("%w: no options for %s", ErrOptionsFile, kind)
		}
		if _, err := r.Register(proto, append(opts[:len(opts):len(opts)], o)...); err != nil {
			return err
		}
	}
	return nil
}
