package lifecycle

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// startApplySpan creates a span for one action application.
// Uses the global tracer; initialize it via the telemetry package.
// The caller is responsible for calling span.End().
//
//nolint:spancheck // Span lifecycle managed by caller (factory pattern)
func startApplySpan(ctx context.Context, e *Entity, action Action) (context.Context, trace.Span) {
	tracer := otel.Tracer("lifecycle")
	ctx, span := tracer.Start(ctx, "lifecycle.apply")
	span.SetAttributes(
		attribute.String("lifecycle", e.def.Name),
		attribute.String("action", string(action)),
		attribute.String("from", string(e.current)),
		attribute.String("entity_id_hash", hashEntityID(e.id.String())),
	)

	return ctx, span
}
