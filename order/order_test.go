package order

import (
	"context"
	"testing"

	"github.com/stateline-labs/stateline/lifecycle"
	lifecycletest "github.com/stateline-labs/stateline/lifecycle/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderHappyPath(t *testing.T) {
	t.Parallel()

	o, err := New(4999)
	require.NoError(t, err)

	ctx := context.Background()

	// Shipping before payment is declined with an explanation, not an error.
	out := o.Ship(ctx)
	assert.Equal(t, lifecycle.Rejected, out.Effect)
	assert.Equal(t, "payment required before shipping", out.Message)
	assert.Equal(t, Pending, o.Status())

	out = o.Pay(ctx)
	assert.Equal(t, lifecycle.Transitioned, out.Effect)
	assert.Equal(t, Paid, o.Status())

	// Paying twice is redundant but harmless.
	out = o.Pay(ctx)
	assert.Equal(t, lifecycle.NoOp, out.Effect)
	assert.Equal(t, "already paid", out.Message)
	assert.Equal(t, Paid, o.Status())

	out = o.Ship(ctx)
	assert.Equal(t, lifecycle.Transitioned, out.Effect)
	assert.Equal(t, Shipped, o.Status())

	// Paying after shipment stays a no-op acknowledgment.
	out = o.Pay(ctx)
	assert.Equal(t, lifecycle.NoOp, out.Effect)
	assert.Equal(t, Shipped, o.Status())

	out = o.Deliver(ctx)
	assert.Equal(t, lifecycle.Transitioned, out.Effect)
	assert.Equal(t, Delivered, o.Status())
	assert.True(t, o.Entity().Done())
}

func TestOrderCancelBeforePayment(t *testing.T) {
	t.Parallel()

	o, err := New(1500)
	require.NoError(t, err)

	out := o.Cancel(context.Background())
	assert.Equal(t, lifecycle.Transitioned, out.Effect)
	assert.Equal(t, Cancelled, o.Status())

	// Terminal: nothing transitions out of a cancelled order.
	out = o.Pay(context.Background())
	assert.Equal(t, lifecycle.Rejected, out.Effect)
	assert.Equal(t, Cancelled, o.Status())
}

func TestOrderRefundAfterPayment(t *testing.T) {
	t.Parallel()

	o, err := New(1500)
	require.NoError(t, err)

	ctx := context.Background()

	out := o.Refund(ctx, "")
	assert.Equal(t, lifecycle.Rejected, out.Effect)
	assert.Equal(t, "nothing to refund before payment", out.Message)

	out = o.Pay(ctx)
	require.True(t, out.Applied())

	out = o.Refund(ctx, "customer changed their mind")
	assert.Equal(t, lifecycle.Transitioned, out.Effect)
	assert.Equal(t, "payment refunded: customer changed their mind", out.Message)
	assert.Equal(t, Refunded, o.Status())
}

func TestOrderDefinition(t *testing.T) {
	t.Parallel()

	def := Definition()
	require.NoError(t, def.Validate())

	assert.Equal(t, Pending, def.Initial)
	assert.True(t, def.IsTerminal(Delivered))
	assert.True(t, def.IsTerminal(Cancelled))
	assert.True(t, def.IsTerminal(Refunded))
}

func TestOrderProperties(t *testing.T) {
	t.Parallel()

	def := Definition()
	lifecycletest.AssertClosedTagSet(t, def)
	lifecycletest.AssertNonRulePairsHold(t, def)
	lifecycletest.AssertTransitionsStick(t, def)
	lifecycletest.AssertTerminalsReachable(t, def)
}

func TestOrderHistory(t *testing.T) {
	t.Parallel()

	o, err := New(100)
	require.NoError(t, err)

	ctx := context.Background()
	o.Pay(ctx)
	o.Pay(ctx)
	o.Ship(ctx)

	history := o.Entity().History()
	require.Len(t, history, 3)
	assert.Equal(t, lifecycle.Transitioned, history[0].Effect)
	assert.Equal(t, lifecycle.NoOp, history[1].Effect)
	assert.Equal(t, lifecycle.Transitioned, history[2].Effect)
}
