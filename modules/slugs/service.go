package slugs

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sluggable"
	"github.com/dmitrymomot/sluggable/pkg/logger"
	"github.com/dmitrymomot/sluggable/pkg/validator"
)

const (
	textAttr = "Text"
	slugAttr = "Slug"

	// DefaultKind is used for requests without a kind.
	DefaultKind = "Entry"
)

var kindPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Reserver is implemented by stores that can hold a slug for an owner,
// such as pg.Ledger and redis.Index.
type Reserver interface {
	Reserve(ctx context.Context, q sluggable.Query, ownerID string) error
}

// Request describes one slug to generate.
type Request struct {
	Kind  string            `json:"kind"`
	Text  string            `json:"text"`
	Scope map[string]string `json:"scope,omitempty"`
}

// Result is the generated slug.
type Result struct {
	Kind     string `json:"kind"`
	Slug     string `json:"slug"`
	Checks   int    `json:"checks"`
	Reserved bool   `json:"reserved"`
	Owner    string `json:"owner,omitempty"`
}

// Service generates slugs for arbitrary kinds. Every kind and scope layout
// gets its own configuration, built on first use from the options set and
// the service defaults.
type Service struct {
	store    sluggable.Store
	reserver Reserver
	options  sluggable.OptionsSet
	defaults []sluggable.Option
	log      *slog.Logger

	mu       sync.Mutex
	sluggers map[string]*slugger
}

type slugger struct {
	s   *sluggable.Slugger
	cfg *sluggable.Config
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithOptionsSet supplies per-kind options, typically from LoadOptionsFile.
// Their sources and column are ignored: the text always feeds the slug.
func WithOptionsSet(set sluggable.OptionsSet) ServiceOption {
	return func(s *Service) { s.options = set }
}

// WithDefaults adds options applied to every kind after the options set.
func WithDefaults(opts ...sluggable.Option) ServiceOption {
	return func(s *Service) { s.defaults = append(s.defaults, opts...) }
}

// WithReserver enables Reserve. When store itself implements Reserver it is
// used without this option.
func WithReserver(r Reserver) ServiceOption {
	return func(s *Service) { s.reserver = r }
}

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(store sluggable.Store, opts ...ServiceOption) *Service {
	s := &Service{
		store:    store,
		log:      logger.Nop(),
		sluggers: make(map[string]*slugger),
	}
	if r, ok := store.(Reserver); ok {
		s.reserver = r
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CanReserve reports whether Reserve is available.
func (s *Service) CanReserve() bool {
	return s.reserver != nil
}

// Generate returns a slug that is free at the time of the call.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	res, _, _, err := s.generate(ctx, req)
	return res, err
}

// Reserve generates a slug and reserves it for owner. An empty owner gets a
// random UUID. A concurrent reservation of the same slug fails with the
// store's taken error.
func (s *Service) Reserve(ctx context.Context, req Request, owner string) (Result, error) {
	if s.reserver == nil {
		return Result{}, ErrReserveUnsupported
	}
	res, sl, rec, err := s.generate(ctx, req)
	if err != nil {
		return Result{}, err
	}

	q, err := sl.cfg.Query(res.Slug, rec)
	if err != nil {
		return Result{}, err
	}
	if owner == "" {
		owner = uuid.NewString()
	}
	if err := s.reserver.Reserve(ctx, q, owner); err != nil {
		return Result{}, err
	}

	res.Reserved, res.Owner = true, owner
	s.log.InfoContext(ctx, "slug reserved", logger.Kind(res.Kind), logger.Slug(res.Slug), slog.String("owner", owner))
	return res, nil
}

func (s *Service) generate(ctx context.Context, req Request) (Result, *slugger, *Entry, error) {
	if req.Kind == "" {
		req.Kind = DefaultKind
	}
	fields, err := scopeFields(req)
	if err != nil {
		return Result{}, nil, nil, err
	}

	sl, err := s.slugger(req.Kind, fields)
	if err != nil {
		return Result{}, nil, nil, err
	}

	rec := NewEntry(req.Text, fields)
	out, err := sl.s.Assign(ctx, rec)
	if err != nil {
		return Result{}, nil, nil, err
	}
	return Result{Kind: req.Kind, Slug: out.Slug, Checks: out.Checks}, sl, rec, nil
}

func (s *Service) slugger(kind string, scope []sluggable.Field) (*slugger, error) {
	names := make([]string, len(scope))
	for i, f := range scope {
		names[i] = f.Name
	}
	key := kind + "|" + strings.Join(names, ",")

	s.mu.Lock()
	defer s.mu.Unlock()
	if sl, ok := s.sluggers[key]; ok {
		return sl, nil
	}

	var opts []sluggable.Option
	if s.options != nil {
		if opt, ok := s.options.For(kind); ok {
			opts = append(opts, opt)
		}
	}
	opts = append(opts, s.defaults...)
	opts = append(opts,
		sluggable.Kind(kind),
		sluggable.From(textAttr),
		sluggable.Column(slugAttr),
		sluggable.Scope(names...),
	)

	sg := sluggable.New(s.store, sluggable.WithLogger(s.log))
	cfg, err := sg.Register(Entry{}, opts...)
	if err != nil {
		return nil, err
	}
	sl := &slugger{s: sg, cfg: cfg}
	s.sluggers[key] = sl
	return sl, nil
}

// scopeFields validates req and returns its scope sorted by name.
func scopeFields(req Request) ([]sluggable.Field, error) {
	rules := []validator.Rule{
		validator.MatchesPattern("kind", req.Kind, kindPattern, "identifier"),
		validator.MaxLen("kind", req.Kind, 64),
	}
	names := make([]string, 0, len(req.Scope))
	for name := range req.Scope {
		names = append(names, name)
		rules = append(rules, reservedName("scope."+name, name))
	}
	if err := validator.Apply(rules...); err != nil {
		return nil, err
	}

	sort.Strings(names)
	fields := make([]sluggable.Field, len(names))
	for i, name := range names {
		fields[i] = sluggable.Field{Name: name, Value: req.Scope[name]}
	}
	return fields, nil
}

func reservedName(field, name string) validator.Rule {
	return validator.Rule{
		Check: func() bool {
			return strings.TrimSpace(name) != "" && !slices.Contains([]string{textAttr, slugAttr}, name)
		},
		Error: validator.ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("%q cannot be used as a scope name", name),
			TranslationKey: "validation.reserved_name",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ParseScope reads "BlogID=1,Lang=en" into a scope map.
func ParseScope(s string) (map[string]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	scope := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidScope, pair)
		}
		scope[name] = strings.TrimSpace(value)
	}
	return scope, nil
}
