package httpserver

import "time"

// Config is the env-loaded form of the server options. Zero fields keep the
// defaults of New.
type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Options converts the non-zero fields of c.
func (c Config) Options() []Option {
	var opts []Option
	if c.Addr != "" {
		opts = append(opts, WithAddr(c.Addr))
	}
	for _, d := range []struct {
		v   time.Duration
		opt func(time.Duration) Option
	}{
		{c.ReadTimeout, WithReadTimeout},
		{c.WriteTimeout, WithWriteTimeout},
		{c.IdleTimeout, WithIdleTimeout},
		{c.ShutdownTimeout, WithShutdownTimeout},
	} {
		if d.v > 0 {
			opts = append(opts, d.opt(d.v))
		}
	}
	return opts
}

// NewFromConfig creates a Server from cfg. opts are applied after the config
// and win over it.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	return New(append(cfg.Options(), opts...)...)
}
