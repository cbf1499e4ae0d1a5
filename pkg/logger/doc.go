// Package logger builds configured slog.Logger instances for clientkit
// components.
//
// Components in this module accept a *slog.Logger through functional options
// and default to a discard logger, so logging is always opt-in:
//
//	log := logger.New(logger.WithDevelopment("campusconnect"))
//	manager := session.New(client, store, session.WithLogger(log))
//
// The factory defaults to JSON output at INFO level. Use NewFromConfig to
// drive format and level from the environment (LOG_FORMAT, LOG_LEVEL).
package logger
