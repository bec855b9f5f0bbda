package sluggable

import (
	"context"
	"errors"
)

// Query builds the existence check for value within the record's scope.
// Scope values are read from record in configured order. When record
// implements Identifiable and is persisted, its own row is excluded.
func (c *Config) Query(value string, record any) (Query, error) {
	if err := c.check(record); err != nil {
		return Query{}, err
	}

	fields := make([]Field, 0, len(c.scope)+1)
	fields = append(fields, Field{Name: c.target, Value: value})
	for _, src := range c.scope {
		v, err := src.read(record)
		if err != nil {
			return Query{}, attributeError(c.kind, src.name, err)
		}
		fields = append(fields, Field{Name: src.name, Value: deref(v)})
	}

	q := Query{Kind: c.kind, Fields: fields}
	if id, ok := record.(Identifiable); ok {
		if field, persisted := id.SlugIdentity(); persisted {
			q.Exclude = &field
		}
	}
	return q, nil
}

// Resolve returns the first free variant of candidate: the candidate itself,
// then the Duplicate variants for n = 2, 3, ... The search is linear and ends
// only at a gap. checks is the number of existence checks issued.
// An empty candidate is returned as is without consulting the store.
func (c *Config) Resolve(ctx context.Context, store Store, candidate string, record any) (slug string, checks int, err error) {
	if candidate == "" {
		return "", 0, nil
	}
	if store == nil {
		return "", 0, ErrNilStore
	}

	q, err := c.Query(candidate, record)
	if err != nil {
		return "", 0, err
	}

	value := candidate
	for n := 2; ; n++ {
		if err := ctx.Err(); err != nil {
			return "", checks, errors.Join(ErrStore, err)
		}

		q.Fields[0].Value = value
		checks++
		taken, err := store.ExistsMatching(ctx, q)
		if err != nil {
			return "", checks, errors.Join(ErrStore, err)
		}
		if !taken {
			return value, checks, nil
		}
		value = c.strategy.Duplicate(candidate, n, c)
	}
}

// Generate runs Build and Resolve without touching the record.
func (c *Config) Generate(ctx context.Context, store Store, record any) (string, error) {
	candidate, err := c.Build(record)
	if err != nil {
		return "", err
	}
	slug, _, err := c.Resolve(ctx, store, candidate, record)
	return slug, err
}
