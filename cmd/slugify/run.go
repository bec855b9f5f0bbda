package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/sluggable"
	"github.com/dmitrymomot/sluggable/modules/slugs"
	"github.com/dmitrymomot/sluggable/pkg/config"
	"github.com/dmitrymomot/sluggable/pkg/httpserver"
	"github.com/dmitrymomot/sluggable/pkg/logger"
)

// settings are read from the environment.
type settings struct {
	Env         string     `env:"APP_ENV" envDefault:"development"`
	LogLevel    slog.Level `env:"SLUGIFY_LOG_LEVEL" envDefault:"WARN"`
	OptionsFile string     `env:"SLUGIFY_OPTIONS_FILE"` // OptionsFile is a YAML file of per-kind options.
	CacheSize   int        `env:"SLUGIFY_CACHE_SIZE" envDefault:"256"`
}

// common holds the flags shared by the one-shot and serve modes.
type common struct {
	separator string
	limit     int
	backend   string
	envFile   string
	tables    string
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.separator, "separator", "", "word separator")
	fs.IntVar(&c.limit, "limit", -1, "maximum base slug length, 0 for unbounded")
	fs.StringVar(&c.backend, "store", "auto", "existence store: auto, memory, pg, pg-table, redis, mongo or opensearch")
	fs.StringVar(&c.tables, "table", "", "kind to table mapping for -store pg-table, e.g. Post=app.posts")
	fs.StringVar(&c.envFile, "env-file", "", "load environment variables from this file first")
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 && args[0] == "serve" {
		return serve(ctx, args[1:], stderr)
	}

	fs := flag.NewFlagSet("slugify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c common
	c.register(fs)
	var (
		kind    = fs.String("kind", slugs.DefaultKind, "record kind the slug belongs to")
		scope   = fs.String("scope", "", "comma separated scope values, e.g. BlogID=1,Lang=en")
		reserve = fs.Bool("reserve", false, "reserve the resolved slug (pg and redis)")
		owner   = fs.String("owner", "", "owner recorded by -reserve, random when empty")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	scopeValues, err := slugs.ParseScope(*scope)
	if err != nil {
		return err
	}

	app, err := setup(ctx, c, stderr)
	if err != nil {
		return err
	}
	defer app.close()

	req := slugs.Request{Kind: *kind, Text: strings.Join(fs.Args(), " "), Scope: scopeValues}
	var res slugs.Result
	if *reserve {
		res, err = app.svc.Reserve(ctx, req, *owner)
	} else {
		res, err = app.svc.Generate(ctx, req)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(stdout, res.Slug)
	return err
}

func serve(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("slugify serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c common
	c.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	app, err := setup(ctx, c, stderr)
	if err != nil {
		return err
	}
	defer app.close()

	var httpCfg httpserver.Config
	if err := config.Load(&httpCfg); err != nil {
		return err
	}

	r := slugs.Router(slugs.RouterOptions{
		Service: app.svc,
		Logger:  app.log,
		Ready:   app.ready,
		IsTaken: isTaken,
	})
	return httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(app.log)).Run(ctx, r)
}

type app struct {
	svc   *slugs.Service
	log   *slog.Logger
	ready map[string]func(context.Context) error
	close func()
}

func setup(ctx context.Context, c common, stderr io.Writer) (*app, error) {
	var cfg settings
	if c.envFile != "" {
		if err := config.LoadEnv(c.envFile); err != nil {
			return nil, err
		}
		if err := config.ForceReloadConfig(&cfg); err != nil {
			return nil, err
		}
	} else if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, "slugify"),
		logger.WithLevel(cfg.LogLevel),
		logger.WithOutput(stderr),
		logger.WithContextExtractors(slugs.RequestIDAttr),
	)

	var defaults []sluggable.Option
	if c.separator != "" {
		defaults = append(defaults, sluggable.Separator(c.separator))
	}
	if c.limit >= 0 {
		defaults = append(defaults, sluggable.LimitLength(c.limit))
	}

	opts := []slugs.ServiceOption{slugs.WithLogger(log), slugs.WithDefaults(defaults...)}
	if cfg.OptionsFile != "" {
		set, err := sluggable.LoadOptionsFile(cfg.OptionsFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, slugs.WithOptionsSet(set))
	}

	b, err := openStore(ctx, c.backend, c.tables, log)
	if err != nil {
		return nil, err
	}

	store := b.store
	if r, ok := b.store.(slugs.Reserver); ok {
		opts = append(opts, slugs.WithReserver(r))
	} else if cfg.CacheSize > 0 {
		store = sluggable.NewCachedStore(b.store, cfg.CacheSize)
	}

	ready := map[string]func(context.Context) error{}
	if b.health != nil {
		ready[b.name] = b.health
	}

	return &app{
		svc:   slugs.NewService(store, opts...),
		log:   log,
		ready: ready,
		close: b.close,
	}, nil
}
