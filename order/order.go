// Package order implements the order lifecycle: an order is created
// pending, becomes paid, is shipped, and ends delivered. Unpaid orders can
// be cancelled; paid ones can be refunded.
package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/stateline-labs/stateline/lifecycle"
)

// Order lifecycle tags.
const (
	Pending   = lifecycle.Tag("pending")
	Paid      = lifecycle.Tag("paid")
	Shipped   = lifecycle.Tag("shipped")
	Delivered = lifecycle.Tag("delivered")
	Cancelled = lifecycle.Tag("cancelled")
	Refunded  = lifecycle.Tag("refunded")
)

// Order lifecycle actions.
const (
	ActionPay     = lifecycle.Action("pay")
	ActionShip    = lifecycle.Action("ship")
	ActionDeliver = lifecycle.Action("deliver")
	ActionCancel  = lifecycle.Action("cancel")
	ActionRefund  = lifecycle.Action("refund")
)

// definition is fixed at package load; the tag and action sets are closed.
var definition = lifecycle.NewBuilder("order").
	WithInitial(Pending).
	WithTerminals(Delivered, Cancelled, Refunded).
	Permit(Pending, ActionPay, Paid, "payment received").
	Permit(Paid, ActionShip, Shipped, "order shipped").
	Permit(Shipped, ActionDeliver, Delivered, "order delivered").
	Permit(Pending, ActionCancel, Cancelled, "order cancelled").
	Permit(Paid, ActionRefund, Refunded, "payment refunded").
	Acknowledge(Paid, ActionPay, "already paid").
	Acknowledge(Shipped, ActionPay, "already paid").
	Acknowledge(Shipped, ActionShip, "already shipped").
	RejectWith(Pending, ActionShip, "payment required before shipping").
	RejectWith(Pending, ActionRefund, "nothing to refund before payment").
	MustBuild()

// Definition returns the order lifecycle definition.
func Definition() *lifecycle.Definition {
	return definition
}

// Order is an order moving through its lifecycle. AmountCents is intrinsic
// entity data; the current stage lives in the embedded entity.
type Order struct {
	entity      *lifecycle.Entity
	AmountCents int64
}

// New creates a pending order for the given amount.
func New(amountCents int64) (*Order, error) {
	entity, err := lifecycle.New(definition)
	if err != nil {
		return nil, err
	}

	return &Order{
		entity:      entity,
		AmountCents: amountCents,
	}, nil
}

// ID returns the order's identifier.
func (o *Order) ID() uuid.UUID {
	return o.entity.ID()
}

// Status returns the order's current lifecycle tag.
func (o *Order) Status() lifecycle.Tag {
	return o.entity.Status()
}

// Entity exposes the underlying lifecycle entity, e.g. for journal hooks.
func (o *Order) Entity() *lifecycle.Entity {
	return o.entity
}

// Pay records payment for the order.
func (o *Order) Pay(ctx context.Context) lifecycle.Outcome {
	return o.apply(ctx, ActionPay, nil)
}

// Ship hands the order to the carrier.
func (o *Order) Ship(ctx context.Context) lifecycle.Outcome {
	return o.apply(ctx, ActionShip, nil)
}

// Deliver marks the order as delivered.
func (o *Order) Deliver(ctx context.Context) lifecycle.Outcome {
	return o.apply(ctx, ActionDeliver, nil)
}

// Cancel cancels an unpaid order.
func (o *Order) Cancel(ctx context.Context) lifecycle.Outcome {
	return o.apply(ctx, ActionCancel, nil)
}

// Refund refunds a paid, unshipped order. The reason is carried
// transiently into the outcome message.
func (o *Order) Refund(ctx context.Context, reason string) lifecycle.Outcome {
	var data map[string]any
	if reason != "" {
		data = map[string]any{"reason": reason}
	}

	return o.apply(ctx, ActionRefund, data)
}

// apply forwards to the entity. The actions above are all members of the
// definition's closed set, so the error path of Apply cannot trigger; if
// the tables and constants ever drift apart, the caller sees a rejection
// rather than a silent success.
func (o *Order) apply(ctx context.Context, action lifecycle.Action, data map[string]any) lifecycle.Outcome {
	out, err := o.entity.Apply(ctx, action, data)
	if err != nil {
		return lifecycle.Outcome{
			Effect:  lifecycle.Rejected,
			Action:  action,
			From:    o.entity.Status(),
			To:      o.entity.Status(),
			Message: err.Error(),
		}
	}

	return out
}
