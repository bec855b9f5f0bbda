package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/sluggable"
	"github.com/dmitrymomot/sluggable/pkg/validator"
)

// MaxSlugLength is the longest slug the ledger accepts.
const MaxSlugLength = 255

// Ledger records issued slugs in the slug_ledger table created by Migrate.
// Its primary key on (kind, scope, slug) is the storage-level backstop for
// two writers that passed the existence check at the same time: the second
// Reserve fails with ErrSlugTaken.
type Ledger struct {
	db DB
}

var _ sluggable.Store = (*Ledger)(nil)

func NewLedger(db DB) *Ledger {
	return &Ledger{db: db}
}

// ExistsMatching reports whether the slug in q is reserved within q's scope.
// Exclude is compared against the reservation owner.
func (l *Ledger) ExistsMatching(ctx context.Context, q sluggable.Query) (bool, error) {
	slug, scope, err := split(q)
	if err != nil {
		return false, err
	}

	sql := `SELECT EXISTS (SELECT 1 FROM slug_ledger WHERE kind = $1 AND scope = $2 AND slug = $3`
	args := []any{q.Kind, scope, slug}
	if q.Exclude != nil {
		sql += ` AND owner <> $4`
		args = append(args, owner(q.Exclude.Value))
	}
	sql += `)`

	var exists bool
	if err := l.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, errors.Join(ErrQueryFailed, err)
	}
	return exists, nil
}

// Reserve stores the slug of q for ownerID. A concurrent or earlier
// reservation of the same slug in the same scope returns ErrSlugTaken.
func (l *Ledger) Reserve(ctx context.Context, q sluggable.Query, ownerID string) error {
	slug, scope, err := split(q)
	if err != nil {
		return err
	}
	if err := validator.Apply(
		validator.Required("kind", q.Kind),
		validator.Required("slug", slug),
		validator.MaxLen("slug", slug, MaxSlugLength),
	); err != nil {
		return err
	}

	_, err = l.db.Exec(ctx,
		`INSERT INTO slug_ledger (kind, scope, slug, owner) VALUES ($1, $2, $3, $4)`,
		q.Kind, scope, slug, ownerID,
	)
	if IsDuplicateKeyError(err) {
		return errors.Join(ErrSlugTaken, err)
	}
	if err != nil {
		return errors.Join(ErrQueryFailed, err)
	}
	return nil
}

// Release removes the reservation of q.
func (l *Ledger) Release(ctx context.Context, q sluggable.Query) error {
	slug, scope, err := split(q)
	if err != nil {
		return err
	}

	tag, err := l.db.Exec(ctx,
		`DELETE FROM slug_ledger WHERE kind = $1 AND scope = $2 AND slug = $3`,
		q.Kind, scope, slug,
	)
	if err != nil {
		return errors.Join(ErrQueryFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// Owner returns the owner the slug of q was reserved for.
func (l *Ledger) Owner(ctx context.Context, q sluggable.Query) (string, error) {
	slug, scope, err := split(q)
	if err != nil {
		return "", err
	}

	var id string
	err = l.db.QueryRow(ctx,
		`SELECT owner FROM slug_ledger WHERE kind = $1 AND scope = $2 AND slug = $3`,
		q.Kind, scope, slug,
	).Scan(&id)
	if IsNotFoundError(err) {
		return "", ErrReservationNotFound
	}
	if err != nil {
		return "", errors.Join(ErrQueryFailed, err)
	}
	return id, nil
}

// split takes the slug from the first field and the scope from the rest.
func split(q sluggable.Query) (string, string, error) {
	slug, ok := q.Candidate()
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidQuery, q)
	}
	return slug, q.ScopeKey(), nil
}

func owner(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
