package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/dmitrymomot/sluggable"
	"github.com/dmitrymomot/sluggable/pkg/slug"
)

// Store checks slug existence with the _count API. Each kind maps to an
// index, by default its snake_case name with the configured prefix, and each
// attribute to a field of the same snake_case name. Slug and scope fields
// are matched with term queries and should be mapped as keyword.
type Store struct {
	transport opensearchapi.Transport
	prefix    string
	indices   map[string]string
	fields    map[string]string
}

var _ sluggable.Store = (*Store)(nil)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithIndex maps kind to index. The prefix is not applied to it.
func WithIndex(kind, index string) StoreOption {
	return func(s *Store) { s.indices[kind] = index }
}

// WithField maps an attribute name to a document field for every kind.
func WithField(attribute, field string) StoreOption {
	return func(s *Store) { s.fields[attribute] = field }
}

// WithIndexPrefix prepends prefix to derived index names.
func WithIndexPrefix(prefix string) StoreOption {
	return func(s *Store) { s.prefix = prefix }
}

// NewStore accepts *opensearch.Client or any other transport.
// The "ID" attribute maps to "_id".
func NewStore(transport opensearchapi.Transport, opts ...StoreOption) *Store {
	s := &Store{
		transport: transport,
		indices:   make(map[string]string),
		fields:    map[string]string{"ID": "_id"},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) ExistsMatching(ctx context.Context, q sluggable.Query) (bool, error) {
	body, err := s.Body(q)
	if err != nil {
		return false, err
	}

	one := 1
	req := opensearchapi.CountRequest{
		Index:          []string{s.Index(q.Kind)},
		Body:           bytes.NewReader(body),
		TerminateAfter: &one,
	}
	resp, err := req.Do(ctx, s.transport)
	if err != nil {
		return false, errors.Join(ErrQueryFailed, err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return false, fmt.Errorf("%w: %s", ErrQueryFailed, resp.String())
	}

	var out struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, errors.Join(ErrQueryFailed, err)
	}
	return out.Count > 0, nil
}

// Index returns the index queried for kind.
func (s *Store) Index(kind string) string {
	if idx, ok := s.indices[kind]; ok {
		return idx
	}
	return s.prefix + slug.Snake(kind)
}

// Body renders the _count request body for q. Nil values match documents
// without the field.
func (s *Store) Body(q sluggable.Query) ([]byte, error) {
	if len(q.Fields) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, q)
	}

	var (
		filter  []any
		mustNot []any
	)
	for _, f := range q.Fields {
		name := s.field(f.Name)
		if f.Value == nil {
			mustNot = append(mustNot, exists(name))
			continue
		}
		filter = append(filter, term(name, f.Value))
	}
	if q.Exclude != nil {
		mustNot = append(mustNot, term(s.field(q.Exclude.Name), q.Exclude.Value))
	}

	boolQuery := map[string]any{"filter": filter}
	if len(mustNot) > 0 {
		boolQuery["must_not"] = mustNot
	}
	body, err := json.Marshal(map[string]any{"query": map[string]any{"bool": boolQuery}})
	if err != nil {
		return nil, errors.Join(ErrInvalidQuery, err)
	}
	return body, nil
}

func (s *Store) field(attribute string) string {
	if f, ok := s.fields[attribute]; ok {
		return f
	}
	return slug.Snake(attribute)
}

func term(field string, value any) map[string]any {
	return map[string]any{"term": map[string]any{field: value}}
}

func exists(field string) map[string]any {
	return map[string]any{"exists": map[string]any{"field": field}}
}
