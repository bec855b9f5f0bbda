// Package pg backs slug existence checks with PostgreSQL using the pgx/v5
// driver.
//
// Two stores are provided:
//
//   - TableStore queries the application tables directly. A query for kind
//     "BlogPost" with fields Slug and BlogID becomes
//     SELECT EXISTS (SELECT 1 FROM "blog_post" WHERE "slug" = $1 AND "blog_id" = $2).
//     Table and column names are derived in snake_case and can be overridden
//     with WithTable and WithColumn. The slugify command uses it for
//     -store pg-table.
//
//   - Ledger keeps issued slugs in its own slug_ledger table with a primary
//     key on (kind, scope, slug). Reserve turns the unique violation of a
//     concurrent writer into ErrSlugTaken.
//
// Connect opens a pool with retries, Migrate applies the embedded ledger
// schema with goose/v3, and Healthcheck wraps Ping for health endpoints.
//
// # Usage
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//
//	ledger := pg.NewLedger(pool)
//	s := sluggable.New(ledger)
//
// # Configuration
//
// Config is populated from PG_* environment variables; see the field tags for
// names and defaults.
//
// # Error Handling
//
// IsDuplicateKeyError and IsNotFoundError classify errors returned by pgx.
// Query failures are joined with ErrQueryFailed.
package pg
