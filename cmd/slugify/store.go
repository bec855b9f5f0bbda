package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/sluggable"
	"github.com/dmitrymomot/sluggable/modules/slugs"
	"github.com/dmitrymomot/sluggable/pkg/config"
	"github.com/dmitrymomot/sluggable/pkg/mongo"
	"github.com/dmitrymomot/sluggable/pkg/opensearch"
	"github.com/dmitrymomot/sluggable/pkg/pg"
	"github.com/dmitrymomot/sluggable/pkg/redis"
)

var (
	errUnknownStore = errors.New("unknown store")
	errInvalidTable = errors.New("invalid table mapping")
)

type backend struct {
	name   string
	store  sluggable.Store
	health func(context.Context) error
	close  func()
}

// openStore connects the named backend. "auto" picks the first backend whose
// connection variable is set and falls back to an empty in-memory store.
// tables maps kinds to tables for "pg-table", in the -table flag form.
func openStore(ctx context.Context, name, tables string, log *slog.Logger) (backend, error) {
	if name == "auto" {
		name = detectBackend()
	}
	b := backend{name: name, close: func() {}}

	switch name {
	case "memory":
		b.store = sluggable.NewMemoryStore()

	case "pg":
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return b, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return b, err
		}
		if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
			pool.Close()
			return b, err
		}
		b.store, b.health, b.close = pg.NewLedger(pool), pg.Healthcheck(pool), pool.Close

	case "pg-table":
		opts, err := tableOptions(tables)
		if err != nil {
			return b, err
		}
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return b, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return b, err
		}
		b.store, b.health, b.close = pg.NewTableStore(pool, opts...), pg.Healthcheck(pool), pool.Close

	case "redis":
		var cfg redis.Config
		if err := config.Load(&cfg); err != nil {
			return b, err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return b, err
		}
		b.store, b.health = redis.NewIndexWithConfig(client, cfg), redis.Healthcheck(client)
		b.close = func() { _ = client.Close() }

	case "mongo":
		var cfg mongo.Config
		if err := config.Load(&cfg); err != nil {
			return b, err
		}
		db, err := mongo.NewWithDatabase(ctx, cfg, "")
		if err != nil {
			return b, err
		}
		b.store, b.health = mongo.NewStore(db), mongo.Healthcheck(db.Client())
		b.close = func() { _ = db.Client().Disconnect(context.Background()) }

	case "opensearch":
		var cfg opensearch.Config
		if err := config.Load(&cfg); err != nil {
			return b, err
		}
		store, health, err := opensearch.Open(ctx, cfg)
		if err != nil {
			return b, err
		}
		b.store, b.health = store, health

	default:
		return b, fmt.Errorf("%w: %q", errUnknownStore, name)
	}
	return b, nil
}

func detectBackend() string {
	for _, c := range []struct{ env, backend string }{
		{"PG_CONN_URL", "pg"},
		{"REDIS_URL", "redis"},
		{"MONGODB_URL", "mongo"},
		{"OPENSEARCH_ADDRESSES", "opensearch"},
	} {
		if os.Getenv(c.env) != "" {
			return c.backend
		}
	}
	return "memory"
}

// isTaken reports a reservation conflict from any reserving store.
func isTaken(err error) bool {
	return errors.Is(err, pg.ErrSlugTaken) || errors.Is(err, redis.ErrSlugTaken)
}

// tableOptions reads "Post=app.posts,Page=pages" into table mappings.
func tableOptions(spec string) ([]pg.StoreOption, error) {
	tables, err := slugs.ParseScope(spec)
	if err != nil {
		return nil, err
	}
	opts := make([]pg.StoreOption, 0, len(tables))
	for kind, table := range tables {
		if table == "" {
			return nil, fmt.Errorf("%w: %q has no table", errInvalidTable, kind)
		}
		opts = append(opts, pg.WithTable(kind, table))
	}
	return opts, nil
}
