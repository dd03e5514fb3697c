// Package testing provides scenario-script helpers for exercising
// lifecycle definitions and entities in tests.
package testing

import (
	"context"
	"testing"

	"github.com/stateline-labs/stateline/lifecycle"
	"github.com/stretchr/testify/require"
)

// Step is one action in a scripted scenario, with the expected outcome.
type Step struct {
	Name       string
	Action     lifecycle.Action
	Data       map[string]any
	WantEffect lifecycle.Effect
	WantTag    lifecycle.Tag
}

// RunScript applies each step to the entity in order, asserting the effect
// and the resulting tag after every step.
func RunScript(t *testing.T, e *lifecycle.Entity, steps []Step) {
	t.Helper()

	ctx := context.Background()

	for i, step := range steps {
		name := step.Name
		if name == "" {
			name = string(step.Action)
		}

		out, err := e.Apply(ctx, step.Action, step.Data)
		require.NoError(t, err, "step %d (%s)", i, name)
		require.Equal(t, step.WantEffect, out.Effect,
			"step %d (%s): effect mismatch, message: %s", i, name, out.Message)
		require.Equal(t, step.WantTag, e.Status(),
			"step %d (%s): tag mismatch", i, name)
	}
}
