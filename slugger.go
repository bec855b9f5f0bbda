package sluggable

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/sluggable/pkg/logger"
)

// Result describes the outcome of one Assign call.
type Result struct {
	// Slug is the value of the target field after the call.
	Slug string
	// State is the last lifecycle state reached.
	State State
	// Checks is the number of existence checks issued.
	Checks int
	// Skipped is true when an existing slug was kept.
	Skipped bool
}

// Slugger assigns slugs to registered records.
type Slugger struct {
	store    Store
	registry *Registry
	log      *slog.Logger
}

// SluggerOption configures a Slugger.
type SluggerOption func(*Slugger)

// WithLogger sets the logger. Default is a no-op logger.
func WithLogger(l *slog.Logger) SluggerOption {
	return func(s *Slugger) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRegistry shares a registry between sluggers.
func WithRegistry(r *Registry) SluggerOption {
	return func(s *Slugger) {
		if r != nil {
			s.registry = r
		}
	}
}

// New creates a Slugger that checks uniqueness against store.
func New(store Store, opts ...SluggerOption) *Slugger {
	s := &Slugger{
		store:    store,
		registry: NewRegistry(),
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("sluggable"))
	return s
}

// Register adds the configuration of the prototype's type to the registry.
func (s *Slugger) Register(prototype any, opts ...Option) (*Config, error) {
	return s.registry.Register(prototype, opts...)
}

// Registry returns the underlying registry.
func (s *Slugger) Registry() *Registry {
	return s.registry
}

// Assign runs the before hook, generates and writes a slug unless the target
// field is already set (see Force), then runs the after hook. record must be
// a pointer to a registered type. When generation fails the after hook is
// skipped and the error is returned.
func (s *Slugger) Assign(ctx context.Context, record any, opts ...AssignOption) (Result, error) {
	var o AssignOptions
	for _, opt := range opts {
		opt(&o)
	}

	lc := newLifecycle()
	res := Result{State: StateNotStarted}
	finish := func(err error) (Result, error) {
		if err != nil {
			lc.fail()
		}
		res.State = lc.state
		return res, err
	}

	cfg, err := s.registry.Lookup(record)
	if err != nil {
		return finish(err)
	}
	strategy := cfg.Strategy()
	log := s.log.With(logger.Kind(cfg.Kind()))

	if err := strategy.BeforeAssign(ctx, record, o); err != nil {
		return finish(err)
	}
	if err := lc.to(StateBeforeHookRun); err != nil {
		return finish(err)
	}

	current, err := cfg.Current(record)
	if err != nil {
		return finish(err)
	}

	if current != "" && !o.Force {
		res.Slug, res.Skipped = current, true
		if err := lc.to(StateSkipped); err != nil {
			return finish(err)
		}
	} else {
		if err := lc.to(StateGenerating); err != nil {
			return finish(err)
		}
		slug, checks, err := s.generate(ctx, cfg, record, log)
		res.Checks = checks
		if err != nil {
			log.ErrorContext(ctx, "slug generation failed", logger.Attempt(checks), logger.Error(err))
			return finish(err)
		}
		if err := cfg.Write(record, slug); err != nil {
			return finish(err)
		}
		res.Slug = slug
		if err := lc.to(StateAssigned); err != nil {
			return finish(err)
		}
		log.InfoContext(ctx, "slug assigned", logger.Slug(slug), logger.Attempt(checks))
	}

	if err := strategy.AfterAssign(ctx, record, o); err != nil {
		return finish(err)
	}
	return finish(lc.to(StateAfterHookRun))
}

// Reassign is Assign with Force(true).
func (s *Slugger) Reassign(ctx context.Context, record any, opts ...AssignOption) (Result, error) {
	return s.Assign(ctx, record, append(opts[:len(opts):len(opts)], Force(true))...)
}

// Generate returns the slug Assign would write, without hooks and without
// modifying record.
func (s *Slugger) Generate(ctx context.Context, record any) (string, error) {
	cfg, err := s.registry.Lookup(record)
	if err != nil {
		return "", err
	}
	slug, _, err := s.generate(ctx, cfg, record, s.log.With(logger.Kind(cfg.Kind())))
	return slug, err
}

func (s *Slugger) generate(ctx context.Context, cfg *Config, record any, log *slog.Logger) (string, int, error) {
	start := time.Now()

	candidate, err := cfg.Build(record)
	if err != nil {
		return "", 0, err
	}

	slug, checks, err := cfg.Resolve(ctx, s.observed(log), candidate, record)
	if err != nil {
		return "", checks, err
	}

	log.DebugContext(ctx, "slug resolved",
		logger.Candidate(candidate),
		logger.Slug(slug),
		logger.Attempt(checks),
		logger.Scope(cfg.Scope()...),
		logger.Duration(time.Since(start)),
	)
	return slug, checks, nil
}

// observed wraps the store to log every collision.
func (s *Slugger) observed(log *slog.Logger) Store {
	if s.store == nil {
		return nil
	}
	attempt := 0
	return StoreFunc(func(ctx context.Context, q Query) (bool, error) {
		attempt++
		taken, err := s.store.ExistsMatching(ctx, q)
		if err == nil && taken {
			log.DebugContext(ctx, "slug taken", logger.Candidate(stringify(q.Fields[0].Value)), logger.Attempt(attempt))
		}
		return taken, err
	})
}
