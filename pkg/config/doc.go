// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the process environment,
//     later files overriding earlier ones.
//   - Load parses the environment into any struct annotated with env tags.
//     The first successful parse of a type is cached for the life of the
//     process; a default .env is read once if present.
//   - MustLoad and MustLoadEnv panic instead of returning an error.
//   - ResetCache and ForceReloadConfig discard cached values, mostly for tests.
//
// # Usage
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// # Error Handling
//
// ErrParsingConfig wraps env parse failures, ErrLoadingEnvFile unreadable
// files, and ErrNilPointer a nil target.
package config
