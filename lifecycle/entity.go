package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Entity is a context entity: it owns exactly one current tag from its
// definition's closed set and delegates every action to Decide. The tag is
// replaced, never shared, on each transition, so after any Apply call the
// entity is either at the prior tag or at a single legal successor.
//
// An Entity is defined for single-threaded, synchronous use and is not
// safe for concurrent invocation. Embedders running in a concurrent host
// must serialize actions per entity themselves (see the runner package).
type Entity struct {
	id        uuid.UUID
	def       *Definition
	current   Tag
	history   []Change
	hooks     []Hook
	logger    Logger
	createdAt time.Time
	updatedAt time.Time
}

// Change records one applied action in the entity's history.
type Change struct {
	Action  Action
	Effect  Effect
	From    Tag
	To      Tag
	Message string
	At      time.Time
}

// New creates an entity at the definition's initial tag. The definition is
// validated so a malformed lifecycle is caught at construction, not at the
// first action.
func New(def *Definition) (*Entity, error) {
	if def == nil {
		return nil, ErrNilDefinition
	}

	err := def.Validate()
	if err != nil {
		return nil, WrapDefinitionError(def.Name, err)
	}

	now := time.Now()

	return &Entity{
		id:        uuid.New(),
		def:       def,
		current:   def.Initial,
		history:   []Change{},
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ID returns the entity's opaque identifier.
func (e *Entity) ID() uuid.UUID {
	return e.id
}

// Status returns the current tag. It has no side effects and always
// returns a value from the definition's closed tag set.
func (e *Entity) Status() Tag {
	return e.current
}

// Definition returns the entity's lifecycle definition.
func (e *Entity) Definition() *Definition {
	return e.def
}

// Done reports whether the entity has reached a terminal tag.
func (e *Entity) Done() bool {
	return e.def.IsTerminal(e.current)
}

// Can reports whether the action would cause a transition right now.
func (e *Entity) Can(action Action) bool {
	_, ok := e.def.RuleFor(e.current, action)

	return ok
}

// AvailableActions returns the actions that would transition the entity
// out of its current tag.
func (e *Entity) AvailableActions() []Action {
	return e.def.ActionsFrom(e.current)
}

// History returns a copy of the entity's applied-action history.
func (e *Entity) History() []Change {
	out := make([]Change, len(e.history))
	copy(out, e.history)

	return out
}

// CreatedAt returns the entity's creation time.
func (e *Entity) CreatedAt() time.Time {
	return e.createdAt
}

// UpdatedAt returns the time of the last applied action.
func (e *Entity) UpdatedAt() time.Time {
	return e.updatedAt
}

// AddHook registers a hook called after every Apply.
func (e *Entity) AddHook(hook Hook) {
	e.hooks = append(e.hooks, hook)
}

// SetLogger sets the logger for action outcomes.
func (e *Entity) SetLogger(logger Logger) {
	e.logger = logger
}

// Apply delegates the action to the definition and, on a transition,
// replaces the current tag with the successor. Inapplicable and redundant
// actions are reported as outcomes, not errors; the only error path is an
// action outside the definition's closed action set.
//
// Action data is transient: it may shape the outcome message (a "reason"
// entry is appended to it) but is never stored on the tag.
func (e *Entity) Apply(ctx context.Context, action Action, data map[string]any) (Outcome, error) {
	ctx, span := startApplySpan(ctx, e, action)
	defer span.End()

	if !e.def.HasAction(action) {
		err := WrapApplyError(e.current, action, ErrUnknownAction)

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return Outcome{}, err
	}

	start := time.Now()
	out := e.def.Decide(e.current, action)

	if reason, ok := data["reason"].(string); ok && reason != "" {
		out.Message += ": " + reason
	}

	if out.Effect == Transitioned {
		e.current = out.To
	}

	e.history = append(e.history, Change{
		Action:  action,
		Effect:  out.Effect,
		From:    out.From,
		To:      out.To,
		Message: out.Message,
		At:      time.Now(),
	})
	e.updatedAt = time.Now()

	e.observe(ctx, out, time.Since(start))

	span.SetAttributes(
		attribute.String("outcome", out.Effect.String()),
		attribute.String("to", string(out.To)),
	)
	span.SetStatus(codes.Ok, out.Effect.String())

	for _, hook := range e.hooks {
		hook(e, out)
	}

	return out, nil
}

// observe records metrics and logs for an outcome.
func (e *Entity) observe(ctx context.Context, out Outcome, elapsed time.Duration) {
	idHash := hashEntityID(e.id.String())

	switch out.Effect {
	case Transitioned:
		transitionsTotal.WithLabelValues(
			sanitizeLifecycle(e.def.Name),
			string(out.From),
			string(out.To),
			string(out.Action),
			idHash,
		).Inc()

		if e.logger != nil {
			e.logger.TransitionApplied(ctx, e.def.Name, out.From, out.To, out.Action)
		}
	case NoOp:
		acknowledgmentsTotal.WithLabelValues(
			sanitizeLifecycle(e.def.Name),
			string(out.From),
			string(out.Action),
			idHash,
		).Inc()

		if e.logger != nil {
			e.logger.ActionAcknowledged(ctx, e.def.Name, out.From, out.Action, out.Message)
		}
	case Rejected:
		rejectionsTotal.WithLabelValues(
			sanitizeLifecycle(e.def.Name),
			string(out.From),
			string(out.Action),
			idHash,
		).Inc()

		if e.logger != nil {
			e.logger.ActionRejected(ctx, e.def.Name, out.From, out.Action, out.Message)
		}
	}

	decisionDuration.WithLabelValues(
		sanitizeLifecycle(e.def.Name),
		string(out.Action),
		out.Effect.String(),
	).Observe(elapsed.Seconds())
}
