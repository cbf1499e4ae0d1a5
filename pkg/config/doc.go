// Package config loads typed configuration structs from environment
// variables with optional .env file overlays.
//
// Configuration structs declare their bindings with `env` tags:
//
//	type APIConfig struct {
//		BaseURL string        `env:"CAMPUSCONNECT_API_URL,required"`
//		Timeout time.Duration `env:"CAMPUSCONNECT_API_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg APIConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
//
// Each unique struct type is parsed once per process and cached; subsequent
// Load calls for the same type return the cached copy. Use ResetCache to
// clear the cache between tests.
//
// LoadEnv loads one or more .env files before parsing; later files take
// precedence over earlier ones. The default .env in the working directory is
// loaded lazily on first Load and its absence is not an error.
package config
