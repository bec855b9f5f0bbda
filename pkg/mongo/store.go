package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/sluggable"
	"github.com/dmitrymomot/sluggable/pkg/slug"
)

// Counter is the part of *mongo.Collection the store needs.
type Counter interface {
	CountDocuments(ctx context.Context, filter any, opts ...options.Lister[options.CountOptions]) (int64, error)
}

// Store checks slug existence in MongoDB collections. A kind maps to the
// snake_case collection of the same name, attributes map to snake_case
// fields, and the attribute "ID" maps to "_id".
type Store struct {
	collection  func(name string) Counter
	collections map[string]string
	fields      map[string]string
}

var _ sluggable.Store = (*Store)(nil)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCollection maps kind to a collection name.
func WithCollection(kind, collection string) StoreOption {
	return func(s *Store) { s.collections[kind] = collection }
}

// WithField maps an attribute name to a document field for every kind.
func WithField(attribute, field string) StoreOption {
	return func(s *Store) { s.fields[attribute] = field }
}

// NewStore creates a Store over the collections of db.
func NewStore(db *mongo.Database, opts ...StoreOption) *Store {
	return NewStoreFunc(func(name string) Counter { return db.Collection(name) }, opts...)
}

// NewStoreFunc creates a Store that resolves collections through fn.
func NewStoreFunc(fn func(name string) Counter, opts ...StoreOption) *Store {
	s := &Store{
		collection:  fn,
		collections: make(map[string]string),
		fields:      map[string]string{"ID": "_id"},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) ExistsMatching(ctx context.Context, q sluggable.Query) (bool, error) {
	name, filter, err := s.Filter(q)
	if err != nil {
		return false, err
	}

	n, err := s.collection(name).CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Join(ErrQueryFailed, err)
	}
	return n > 0, nil
}

// Filter returns the collection name and the count filter for q.
func (s *Store) Filter(q sluggable.Query) (string, bson.D, error) {
	if q.Kind == "" {
		return "", nil, fmt.Errorf("%w: empty kind", ErrInvalidQuery)
	}
	name, ok := s.collections[q.Kind]
	if !ok {
		name = slug.Snake(q.Kind)
	}

	filter := make(bson.D, 0, len(q.Fields)+1)
	for _, f := range q.Fields {
		filter = append(filter, bson.E{Key: s.field(f.Name), Value: f.Value})
	}
	if q.Exclude != nil {
		filter = append(filter, bson.E{Key: s.field(q.Exclude.Name), Value: bson.D{{Key: "$ne", Value: q.Exclude.Value}}})
	}
	return name, filter, nil
}

func (s *Store) field(attribute string) string {
	if f, ok := s.fields[attribute]; ok {
		return f
	}
	return slug.Snake(attribute)
}
