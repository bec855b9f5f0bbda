package sluggable

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"
)

// Field is a single attribute equality used in existence checks.
type Field struct {
	Name  string
	Value any
}

// Query asks whether a persisted record of Kind matches every field equality.
// Fields always start with the target field followed by the scope attributes
// in configured order. Exclude, when set, removes the record identified by
// that field from the match (the record being re-slugged).
type Query struct {
	Kind    string
	Fields  []Field
	Exclude *Field
}

// Value returns the value of the named field and whether it is present.
func (q Query) Value(name string) (any, bool) {
	for _, f := range q.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Candidate returns the slug value of the first field, the target.
// ok is false when the query has no fields or the value is not a string.
func (q Query) Candidate() (slug string, ok bool) {
	if len(q.Fields) == 0 {
		return "", false
	}
	slug, ok = q.Fields[0].Value.(string)
	return slug, ok
}

// ScopeKey encodes the scope fields (every field after the target) as an
// ordered query string, e.g. "BlogID=1&Lang=en". Nil values encode as empty.
// An unscoped query yields "".
func (q Query) ScopeKey() string {
	if len(q.Fields) < 2 {
		return ""
	}
	parts := make([]string, 0, len(q.Fields)-1)
	for _, f := range q.Fields[1:] {
		v := ""
		if f.Value != nil {
			v = fmt.Sprint(f.Value)
		}
		parts = append(parts, url.QueryEscape(f.Name)+"="+url.QueryEscape(v))
	}
	return strings.Join(parts, "&")
}

// String renders a stable representation of the query, used for cache keys and logs.
func (q Query) String() string {
	var b strings.Builder
	b.WriteString(q.Kind)
	for _, f := range q.Fields {
		fmt.Fprintf(&b, "|%s=%v", f.Name, f.Value)
	}
	if q.Exclude != nil {
		fmt.Fprintf(&b, "|!%s=%v", q.Exclude.Name, q.Exclude.Value)
	}
	return b.String()
}

// Store is the existence-check collaborator. ExistsMatching must only consider
// already persisted records of q.Kind; records of other kinds never match even
// when they share field names. Calls are issued sequentially, never concurrently,
// within one assignment.
type Store interface {
	ExistsMatching(ctx context.Context, q Query) (bool, error)
}

// StoreFunc adapts an ordinary function to the Store interface.
type StoreFunc func(ctx context.Context, q Query) (bool, error)

func (f StoreFunc) ExistsMatching(ctx context.Context, q Query) (bool, error) {
	return f(ctx, q)
}

// MemoryStore is a thread-safe in-memory Store. Rows are plain attribute maps
// grouped by kind. It suits tests and single-process tools.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string][]map[string]any
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string][]map[string]any)}
}

// Insert stores a row of attributes under kind.
func (s *MemoryStore) Insert(kind string, attrs map[string]any) {
	row := make(map[string]any, len(attrs))
	for k, v := range attrs {
		row[k] = deref(v)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[kind] = append(s.rows[kind], row)
}

// Delete removes every row of kind matching all given fields and returns how
// many rows were removed.
func (s *MemoryStore) Delete(kind string, fields ...Field) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.rows[kind][:0]
	removed := 0
	for _, row := range s.rows[kind] {
		if matches(row, fields) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	s.rows[kind] = kept
	return removed
}

// Len returns the number of rows stored under kind.
func (s *MemoryStore) Len(kind string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows[kind])
}

func (s *MemoryStore) ExistsMatching(ctx context.Context, q Query) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.rows[q.Kind] {
		if !matches(row, q.Fields) {
			continue
		}
		if q.Exclude != nil && equal(row[q.Exclude.Name], deref(q.Exclude.Value)) {
			continue
		}
		return true, nil
	}
	return false, nil
}

func matches(row map[string]any, fields []Field) bool {
	for _, f := range fields {
		if !equal(row[f.Name], deref(f.Value)) {
			return false
		}
	}
	return true
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta == tb && ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
