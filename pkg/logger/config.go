package logger

import "log/slog"

// Config drives logger creation from the environment.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format Format `env:"LOG_FORMAT" envDefault:"json"`
}

// NewFromConfig creates a logger from environment-driven configuration.
// Unknown level strings fall back to INFO rather than failing, since a bad
// log level should never prevent the client from starting.
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	format := cfg.Format
	if format != FormatText && format != FormatJSON {
		format = FormatJSON
	}

	configOpts := []Option{
		WithLevel(level),
		WithFormat(format),
	}
	configOpts = append(configOpts, opts...)

	return New(configOpts...)
}
