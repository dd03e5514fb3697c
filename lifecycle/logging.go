package lifecycle

import (
	"context"
	"log/slog"
)

// Logger provides logging hooks for action outcomes.
type Logger interface {
	TransitionApplied(ctx context.Context, lifecycle string, from, to Tag, action Action)
	ActionAcknowledged(ctx context.Context, lifecycle string, tag Tag, action Action, message string)
	ActionRejected(ctx context.Context, lifecycle string, tag Tag, action Action, message string)
}

// DefaultLogger implements Logger using slog.
type DefaultLogger struct {
	logger *slog.Logger
}

// NewDefaultLogger creates a logger backed by slog.Default.
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{
		logger: slog.Default(),
	}
}

// NewSlogLogger creates a logger backed by the given slog logger.
func NewSlogLogger(logger *slog.Logger) *DefaultLogger {
	return &DefaultLogger{
		logger: logger,
	}
}

func (l *DefaultLogger) TransitionApplied(ctx context.Context, lifecycle string, from, to Tag, action Action) {
	l.logger.InfoContext(ctx, "Transition applied",
		"lifecycle", lifecycle,
		"from", string(from),
		"to", string(to),
		"action", string(action),
	)
}

func (l *DefaultLogger) ActionAcknowledged(
	ctx context.Context, lifecycle string, tag Tag, action Action, message string,
) {
	l.logger.InfoContext(ctx, "Action acknowledged",
		"lifecycle", lifecycle,
		"tag", string(tag),
		"action", string(action),
		"message", message,
	)
}

func (l *DefaultLogger) ActionRejected(
	ctx context.Context, lifecycle string, tag Tag, action Action, message string,
) {
	l.logger.InfoContext(ctx, "Action rejected",
		"lifecycle", lifecycle,
		"tag", string(tag),
		"action", string(action),
		"message", message,
	)
}
