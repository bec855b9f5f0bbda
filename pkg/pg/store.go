package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/sluggable"
	"github.com/dmitrymomot/sluggable/pkg/slug"
)

// Querier is the read side of *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB adds statement execution to Querier.
type DB interface {
	Querier
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// TableStore checks slug existence directly in the application tables.
// By default a kind maps to the snake_case table of the same name ("BlogPost"
// becomes blog_post) and every attribute to its snake_case column.
type TableStore struct {
	db      Querier
	tables  map[string]string
	columns map[string]string
}

var _ sluggable.Store = (*TableStore)(nil)

// StoreOption configures a TableStore.
type StoreOption func(*TableStore)

// WithTable maps kind to table. The table may be schema-qualified ("app.posts").
func WithTable(kind, table string) StoreOption {
	return func(s *TableStore) { s.tables[kind] = table }
}

// WithColumn maps an attribute name to a column for every kind.
func WithColumn(attribute, column string) StoreOption {
	return func(s *TableStore) { s.columns[attribute] = column }
}

func NewTableStore(db Querier, opts ...StoreOption) *TableStore {
	s := &TableStore{
		db:      db,
		tables:  make(map[string]string),
		columns: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TableStore) ExistsMatching(ctx context.Context, q sluggable.Query) (bool, error) {
	sql, args, err := s.SQL(q)
	if err != nil {
		return false, err
	}

	var exists bool
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, errors.Join(ErrQueryFailed, err)
	}
	return exists, nil
}

// SQL renders the existence query for q. Identifiers are quoted, values are
// always bound as arguments. Nil values compare with IS NULL.
func (s *TableStore) SQL(q sluggable.Query) (string, []any, error) {
	table, err := s.table(q.Kind)
	if err != nil {
		return "", nil, err
	}

	var (
		where []string
		args  []any
	)
	for _, f := range q.Fields {
		col, err := s.column(f.Name)
		if err != nil {
			return "", nil, err
		}
		if f.Value == nil {
			where = append(where, col+" IS NULL")
			continue
		}
		args = append(args, f.Value)
		where = append(where, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if q.Exclude != nil {
		col, err := s.column(q.Exclude.Name)
		if err != nil {
			return "", nil, err
		}
		args = append(args, q.Exclude.Value)
		where = append(where, fmt.Sprintf("%s IS DISTINCT FROM $%d", col, len(args)))
	}

	sql := "SELECT EXISTS (SELECT 1 FROM " + table
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	return sql + ")", args, nil
}

func (s *TableStore) table(kind string) (string, error) {
	name, ok := s.tables[kind]
	if !ok {
		name = slug.Snake(kind)
	}
	parts := strings.Split(name, ".")
	for _, p := range parts {
		if p == "" {
			return "", fmt.Errorf("%w: table %q", ErrInvalidIdentifier, name)
		}
	}
	return pgx.Identifier(parts).Sanitize(), nil
}

func (s *TableStore) column(attribute string) (string, error) {
	name, ok := s.columns[attribute]
	if !ok {
		name = slug.Snake(attribute)
	}
	if name == "" {
		return "", fmt.Errorf("%w: column for %q", ErrInvalidIdentifier, attribute)
	}
	return pgx.Identifier{name}.Sanitize(), nil
}
