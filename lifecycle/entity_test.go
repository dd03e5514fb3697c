package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLampEntity(t *testing.T) *Entity {
	t.Helper()

	e, err := New(lampDefinition())
	require.NoError(t, err)

	return e
}

func TestNewEntity(t *testing.T) {
	t.Parallel()

	e := newLampEntity(t)

	assert.Equal(t, Tag("off"), e.Status())
	assert.NotEqual(t, "", e.ID().String())
	assert.Empty(t, e.History())
	assert.False(t, e.Done())
}

func TestNewEntityInvalidDefinition(t *testing.T) {
	t.Parallel()

	_, err := New(nil)
	require.ErrorIs(t, err, ErrNilDefinition)

	def := lampDefinition()
	def.Initial = ""

	_, err = New(def)
	require.Error(t, err)

	var defErr *DefinitionError

	require.True(t, errors.As(err, &defErr))
	assert.Equal(t, "lamp", defErr.Lifecycle)
	assert.ErrorIs(t, err, ErrInitialRequired)
}

func TestEntityApplyTransition(t *testing.T) {
	t.Parallel()

	e := newLampEntity(t)
	ctx := context.Background()

	out, err := e.Apply(ctx, "switch_on", nil)
	require.NoError(t, err)

	assert.Equal(t, Transitioned, out.Effect)
	assert.Equal(t, Tag("off"), out.From)
	assert.Equal(t, Tag("on"), out.To)
	assert.Equal(t, Tag("on"), e.Status())
	assert.True(t, out.Applied())

	history := e.History()
	require.Len(t, history, 1)
	assert.Equal(t, Action("switch_on"), history[0].Action)
	assert.Equal(t, Transitioned, history[0].Effect)
}

func TestEntityApplyAcknowledgment(t *testing.T) {
	t.Parallel()

	e := newLampEntity(t)
	ctx := context.Background()

	_, err := e.Apply(ctx, "switch_on", nil)
	require.NoError(t, err)

	out, err := e.Apply(ctx, "switch_on", nil)
	require.NoError(t, err)

	assert.Equal(t, NoOp, out.Effect)
	assert.Equal(t, "already on", out.Message)
	assert.Equal(t, Tag("on"), e.Status())
}

func TestEntityApplyRejection(t *testing.T) {
	t.Parallel()

	e := newLampEntity(t)
	ctx := context.Background()

	out, err := e.Apply(ctx, "switch_off", nil)
	require.NoError(t, err)

	assert.Equal(t, Rejected, out.Effect)
	assert.Equal(t, Tag("off"), e.Status())

	// A rejection is a reported outcome, never a fault: it still lands in
	// the history.
	require.Len(t, e.History(), 1)
	assert.Equal(t, Rejected, e.History()[0].Effect)
}

func TestEntityApplyUnknownAction(t *testing.T) {
	t.Parallel()

	e := newLampEntity(t)

	_, err := e.Apply(context.Background(), "paint", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAction)

	var applyErr *ApplyError

	require.True(t, errors.As(err, &applyErr))
	assert.Equal(t, Tag("off"), applyErr.Tag)
	assert.Equal(t, Action("paint"), applyErr.Action)

	// An unknown action leaves no trace on the entity.
	assert.Empty(t, e.History())
	assert.Equal(t, Tag("off"), e.Status())
}

func TestEntityApplyReasonData(t *testing.T) {
	t.Parallel()

	e := newLampEntity(t)

	out, err := e.Apply(context.Background(), "smash", map[string]any{"reason": "dropped it"})
	require.NoError(t, err)

	assert.Equal(t, Transitioned, out.Effect)
	assert.Equal(t, "lamp is broken: dropped it", out.Message)
	assert.True(t, e.Done())
}

func TestEntityStatusAlwaysInSet(t *testing.T) {
	t.Parallel()

	e := newLampEntity(t)
	ctx := context.Background()

	actions := []Action{"switch_off", "switch_on", "switch_on", "smash", "switch_on", "smash"}
	for _, action := range actions {
		_, err := e.Apply(ctx, action, nil)
		require.NoError(t, err)
		assert.True(t, e.Definition().HasTag(e.Status()), "status %s must stay in the closed set", e.Status())
	}

	assert.Equal(t, Tag("broken"), e.Status())
}

func TestEntityCanAndAvailableActions(t *testing.T) {
	t.Parallel()

	e := newLampEntity(t)

	assert.True(t, e.Can("switch_on"))
	assert.False(t, e.Can("switch_off"))
	assert.Equal(t, []Action{"switch_on", "smash"}, e.AvailableActions())
}

func TestEntityHooks(t *testing.T) {
	t.Parallel()

	e := newLampEntity(t)

	var seen []Outcome

	e.AddHook(func(_ *Entity, out Outcome) {
		seen = append(seen, out)
	})

	ctx := context.Background()

	_, err := e.Apply(ctx, "switch_on", nil)
	require.NoError(t, err)

	_, err = e.Apply(ctx, "switch_on", nil)
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, Transitioned, seen[0].Effect)
	assert.Equal(t, NoOp, seen[1].Effect)
}

func TestEntityWithLogger(t *testing.T) {
	t.Parallel()

	e := newLampEntity(t)
	e.SetLogger(NewSlogLogger(slogt.New(t)))

	ctx := context.Background()

	_, err := e.Apply(ctx, "switch_on", nil)
	require.NoError(t, err)

	_, err = e.Apply(ctx, "switch_on", nil)
	require.NoError(t, err)

	_, err = e.Apply(ctx, "smash", nil)
	require.NoError(t, err)

	_, err = e.Apply(ctx, "switch_off", nil)
	require.NoError(t, err)

	assert.Equal(t, Tag("broken"), e.Status())
}

func TestEntityTimestamps(t *testing.T) {
	t.Parallel()

	e := newLampEntity(t)
	created := e.CreatedAt()

	_, err := e.Apply(context.Background(), "switch_on", nil)
	require.NoError(t, err)

	assert.False(t, e.UpdatedAt().Before(created))
}
