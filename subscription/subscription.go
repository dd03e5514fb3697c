// Package subscription implements the subscription lifecycle: a trial is
// activated into a paying subscription, falls past due when a payment is
// missed, recovers on a successful charge, and is suspended or cancelled
// when it never recovers.
package subscription

import (
	"context"

	"github.com/google/uuid"
	"github.com/stateline-labs/stateline/lifecycle"
)

// Subscription lifecycle tags.
const (
	Trial     = lifecycle.Tag("trial")
	Active    = lifecycle.Tag("active")
	PastDue   = lifecycle.Tag("past_due")
	Suspended = lifecycle.Tag("suspended")
	Cancelled = lifecycle.Tag("cancelled")
)

// Subscription lifecycle actions.
const (
	ActionActivate    = lifecycle.Action("activate")
	ActionCharge      = lifecycle.Action("charge")
	ActionMissPayment = lifecycle.Action("miss_payment")
	ActionSuspend     = lifecycle.Action("suspend")
	ActionCancel      = lifecycle.Action("cancel")
)

var definition = lifecycle.NewBuilder("subscription").
	WithInitial(Trial).
	WithTerminals(Cancelled).
	Permit(Trial, ActionActivate, Active, "subscription activated").
	Permit(Active, ActionMissPayment, PastDue, "payment missed").
	Permit(PastDue, ActionCharge, Active, "payment recovered").
	Permit(PastDue, ActionSuspend, Suspended, "subscription suspended").
	Permit(Suspended, ActionCharge, Active, "subscription reactivated").
	Permit(Trial, ActionCancel, Cancelled, "subscription cancelled").
	Permit(Active, ActionCancel, Cancelled, "subscription cancelled").
	Permit(PastDue, ActionCancel, Cancelled, "subscription cancelled").
	Permit(Suspended, ActionCancel, Cancelled, "subscription cancelled").
	Acknowledge(Active, ActionActivate, "already active").
	Acknowledge(Active, ActionCharge, "subscription is paid up").
	RejectWith(Trial, ActionCharge, "activate the subscription first").
	MustBuild()

// Definition returns the subscription lifecycle definition.
func Definition() *lifecycle.Definition {
	return definition
}

// Subscription is a subscription moving through its billing lifecycle.
type Subscription struct {
	entity *lifecycle.Entity
	Plan   string
}

// New creates a trial subscription on the given plan.
func New(plan string) (*Subscription, error) {
	entity, err := lifecycle.New(definition)
	if err != nil {
		return nil, err
	}

	return &Subscription{
		entity: entity,
		Plan:   plan,
	}, nil
}

// ID returns the subscription's identifier.
func (s *Subscription) ID() uuid.UUID {
	return s.entity.ID()
}

// Status returns the subscription's current lifecycle tag.
func (s *Subscription) Status() lifecycle.Tag {
	return s.entity.Status()
}

// Entity exposes the underlying lifecycle entity, e.g. for journal hooks.
func (s *Subscription) Entity() *lifecycle.Entity {
	return s.entity
}

// Activate converts the trial into a paying subscription.
func (s *Subscription) Activate(ctx context.Context) lifecycle.Outcome {
	return s.apply(ctx, ActionActivate, nil)
}

// Charge records a successful charge, recovering a past-due or suspended
// subscription.
func (s *Subscription) Charge(ctx context.Context) lifecycle.Outcome {
	return s.apply(ctx, ActionCharge, nil)
}

// MissPayment records a failed renewal charge.
func (s *Subscription) MissPayment(ctx context.Context) lifecycle.Outcome {
	return s.apply(ctx, ActionMissPayment, nil)
}

// Suspend suspends a past-due subscription.
func (s *Subscription) Suspend(ctx context.Context) lifecycle.Outcome {
	return s.apply(ctx, ActionSuspend, nil)
}

// Cancel cancels the subscription from any non-terminal stage.
func (s *Subscription) Cancel(ctx context.Context) lifecycle.Outcome {
	return s.apply(ctx, ActionCancel, nil)
}

func (s *Subscription) apply(ctx context.Context, action lifecycle.Action, data map[string]any) lifecycle.Outcome {
	out, err := s.entity.Apply(ctx, action, data)
	if err != nil {
		return lifecycle.Outcome{
			Effect:  lifecycle.Rejected,
			Action:  action,
			From:    s.entity.Status(),
			To:      s.entity.Status(),
			Message: err.Error(),
		}
	}

	return out
}
