package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext extracts the logger from context
// If no logger is found, returns a disabled logger (no-op)
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent creates a child logger with a component field
func WithComponent(ctx context.Context, component string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("component", component).Logger()
	return WithContext(ctx, childLogger)
}

// WithPage creates a child logger with a page field (file path or URL)
func WithPage(ctx context.Context, page string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("page", page).Logger()
	return WithContext(ctx, childLogger)
}

// WithRun creates a child logger with a run field identifying one detection run
func WithRun(ctx context.Context, run int) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Int("run", run).Logger()
	return WithContext(ctx, childLogger)
}
