package sluggable_test

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrymomot/sluggable"
)

type Post struct {
	ID     int64
	BlogID int64
	Title  string
	Slug   string
}

func (p *Post) SlugIdentity() (sluggable.Field, bool) {
	return sluggable.Field{Name: "ID", Value: p.ID}, p.ID != 0
}

type Person struct {
	First string
	Last  string
	Slug  string
}

func (p Person) FullName() string {
	return p.First + " " + p.Last
}

type SomeObject struct {
	Name string
	Slug string
}

// Page stores its slug behind a setter.
type Page struct {
	Heading   string
	permalink string
}

func (p *Page) Permalink() string { return p.permalink }

func (p *Page) SetPermalink(v string) { p.permalink = v }

// Document exposes attributes by name only.
type Document struct {
	attrs map[string]string
}

func (d *Document) ReadAttribute(name string) (any, error) {
	v, ok := d.attrs[name]
	if !ok {
		return nil, errors.New("unknown attribute " + name)
	}
	return v, nil
}

func (d *Document) WriteAttribute(name, value string) error {
	d.attrs[name] = value
	return nil
}

// hooks records strategy calls.
type hooks struct {
	sluggable.DefaultStrategy

	mu        sync.Mutex
	calls     []string
	beforeErr error
	afterErr  error
}

func (h *hooks) BeforeAssign(_ context.Context, _ any, opts sluggable.AssignOptions) error {
	h.record("before", opts)
	return h.beforeErr
}

func (h *hooks) AfterAssign(_ context.Context, _ any, opts sluggable.AssignOptions) error {
	h.record("after", opts)
	return h.afterErr
}

func (h *hooks) record(name string, opts sluggable.AssignOptions) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if opts.Force {
		name += ":force"
	}
	h.calls = append(h.calls, name)
}

func (h *hooks) Calls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.calls...)
}

// upper keeps the standard choreography but does not lowercase.
type upper struct{ sluggable.DefaultStrategy }

func (upper) Normalize(value string, cfg *sluggable.Config) string {
	return strings.ToUpper(strings.Join(strings.Fields(value), cfg.Separator()))
}

// countingStore counts existence checks and can fail on demand.
type countingStore struct {
	next  sluggable.Store
	err   error
	calls int
}

func (s *countingStore) ExistsMatching(ctx context.Context, q sluggable.Query) (bool, error) {
	s.calls++
	if s.err != nil {
		return false, s.err
	}
	return s.next.ExistsMatching(ctx, q)
}

func persist(store *sluggable.MemoryStore, p *Post) {
	store.Insert("Post", map[string]any{"ID": p.ID, "BlogID": p.BlogID, "Slug": p.Slug})
}
