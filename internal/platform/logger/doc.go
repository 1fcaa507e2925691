// Package logger builds the JSON slog logger used across the service and
// carries request-scoped loggers through context.
package logger
