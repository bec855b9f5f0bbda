package sluggable

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// Registry maps record types to their configuration. It is populated once at
// startup and safe for concurrent lookups.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]*Config
	byKind map[string]*Config
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]*Config),
		byKind: make(map[string]*Config),
	}
}

// Register builds the configuration for the type of prototype and adds it.
func (r *Registry) Register(prototype any, opts ...Option) (*Config, error) {
	cfg, err := NewConfig(prototype, opts...)
	if err != nil {
		return nil, err
	}
	if err := r.Add(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(prototype any, opts ...Option) *Config {
	cfg, err := r.Register(prototype, opts...)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Add registers an already built configuration. Types and kinds are unique.
func (r *Registry) Add(cfg *Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byType[cfg.typ]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, cfg.typ)
	}
	if _, ok := r.byKind[cfg.kind]; ok {
		return fmt.Errorf("%w: kind %q", ErrAlreadyRegistered, cfg.kind)
	}
	r.byType[cfg.typ] = cfg
	r.byKind[cfg.kind] = cfg
	return nil
}

// Lookup returns the configuration for the type of record.
func (r *Registry) Lookup(record any) (*Config, error) {
	if isNilRecord(record) {
		return nil, ErrNilRecord
	}
	t := baseType(reflect.TypeOf(record))

	r.mu.RLock()
	cfg, ok := r.byType[t]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, t)
	}
	return cfg, nil
}

// ByKind returns the configuration registered under kind.
func (r *Registry) ByKind(kind string) (*Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.byKind[kind]
	return cfg, ok
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.byKind))
	for k := range r.byKind {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}
