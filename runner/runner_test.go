package runner

import (
	"context"
	"testing"

	"github.com/stateline-labs/stateline/document"
	"github.com/stateline-labs/stateline/lifecycle"
	"github.com/stateline-labs/stateline/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayManyOrders(t *testing.T) {
	t.Parallel()

	const count = 50

	scripts := make([]Script, count)

	for i := range count {
		o, err := order.New(int64(100 * (i + 1)))
		require.NoError(t, err)

		scripts[i] = Script{
			Entity: o.Entity(),
			Steps: []Step{
				{Action: order.ActionShip}, // rejected: not yet paid
				{Action: order.ActionPay},
				{Action: order.ActionPay}, // acknowledged
				{Action: order.ActionShip},
				{Action: order.ActionDeliver},
			},
		}
	}

	traces := New(4).Replay(context.Background(), scripts)
	require.Len(t, traces, count)

	for i, trace := range traces {
		require.NoError(t, trace.Err, "trace %d", i)
		assert.Equal(t, order.Delivered, trace.Final, "trace %d", i)
		assert.Equal(t, scripts[i].Entity.ID(), trace.EntityID)

		require.Len(t, trace.Outcomes, 5)
		assert.Equal(t, lifecycle.Rejected, trace.Outcomes[0].Effect)
		assert.Equal(t, lifecycle.Transitioned, trace.Outcomes[1].Effect)
		assert.Equal(t, lifecycle.NoOp, trace.Outcomes[2].Effect)
	}
}

func TestReplayMixedLifecycles(t *testing.T) {
	t.Parallel()

	o, err := order.New(900)
	require.NoError(t, err)

	d, err := document.New("Release notes")
	require.NoError(t, err)

	scripts := []Script{
		{
			Entity: o.Entity(),
			Steps:  []Step{{Action: order.ActionPay}},
		},
		{
			Entity: d.Entity(),
			Steps: []Step{
				{Action: document.ActionSubmit},
				{Action: document.ActionReject, Data: map[string]any{"reason": "typo"}},
			},
		},
	}

	traces := New(0).Replay(context.Background(), scripts)
	require.Len(t, traces, 2)

	assert.Equal(t, order.Paid, traces[0].Final)
	assert.Equal(t, document.Rejected, traces[1].Final)
	assert.Contains(t, traces[1].Outcomes[1].Message, "typo")
}

func TestReplayStopsOnUnknownAction(t *testing.T) {
	t.Parallel()

	o, err := order.New(900)
	require.NoError(t, err)

	scripts := []Script{
		{
			Entity: o.Entity(),
			Steps: []Step{
				{Action: order.ActionPay},
				{Action: "teleport"},
				{Action: order.ActionShip},
			},
		},
	}

	traces := New(1).Replay(context.Background(), scripts)
	require.Len(t, traces, 1)

	require.Error(t, traces[0].Err)
	assert.ErrorIs(t, traces[0].Err, lifecycle.ErrUnknownAction)
	assert.Len(t, traces[0].Outcomes, 1, "replay stops at the failing step")
	assert.Equal(t, order.Paid, traces[0].Final)
}

func TestReplayHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	o, err := order.New(900)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	traces := New(1).Replay(ctx, []Script{
		{Entity: o.Entity(), Steps: []Step{{Action: order.ActionPay}}},
	})

	require.Len(t, traces, 1)
	require.ErrorIs(t, traces[0].Err, context.Canceled)
	assert.Empty(t, traces[0].Outcomes)
	assert.Equal(t, order.Pending, traces[0].Final)
}
