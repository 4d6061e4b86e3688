// Package config provides a type-safe, generic and cached way to load
// configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
//
//   - LoadEnv / MustLoadEnv load one or more `.env` files into the process
//     environment, later files winning.
//   - Load / MustLoad parse the environment into any struct using field tags.
//     The default `.env` in the working directory is loaded on first use when
//     present.
//   - Each configuration type is parsed once and cached for the lifetime of
//     the process; ResetCache and ForceReloadConfig exist for tests and for
//     tools that load extra `.env` files at runtime.
//
// # Architecture
//
// A package-level cache stores parsed struct copies keyed by type name. Each
// key has its own mutex so concurrent first loads of the same type parse it
// exactly once. Failed parses are not cached.
//
// # Usage
//
//	type Settings struct {
//	    LogFormat string `env:"ENVCHECK_LOG_FORMAT" envDefault:"text"`
//	    LogLevel  string `env:"ENVCHECK_LOG_LEVEL" envDefault:"info"`
//	}
//
//	if err := config.LoadEnv("deploy/.env"); err != nil {
//	    log.Fatalf("loading env: %v", err)
//	}
//
//	var s Settings
//	if err := config.Load(&s); err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//
// # Error Handling
//
// The package defines sentinel errors that can be compared with `errors.Is`:
//
//   - ErrParsingConfig – env vars could not be parsed into the struct.
//   - ErrInvalidConfigType – the target is not a struct.
//   - ErrNilPointer – nil pointer passed to Load / ForceReloadConfig.
//   - ErrLoadingEnvFile – a `.env` file could not be read.
//
// # See Also
//
//   - https://github.com/joho/godotenv – .env file loader.
//   - https://github.com/caarlos0/env – environment parser.
package config
