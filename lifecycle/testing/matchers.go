package testing

import (
	"context"
	"testing"

	"github.com/stateline-labs/stateline/lifecycle"
	"github.com/stretchr/testify/require"
)

// AssertClosedTagSet checks that every tag referenced by the definition's
// tables belongs to its declared tag set.
func AssertClosedTagSet(t *testing.T, def *lifecycle.Definition) {
	t.Helper()

	require.True(t, def.HasTag(def.Initial), "initial tag %s not in tag set", def.Initial)

	for _, terminal := range def.Terminals {
		require.True(t, def.HasTag(terminal), "terminal tag %s not in tag set", terminal)
	}

	for _, rule := range def.Rules {
		require.True(t, def.HasTag(rule.From), "rule source %s not in tag set", rule.From)
		require.True(t, def.HasTag(rule.To), "rule target %s not in tag set", rule.To)
	}
}

// AssertNonRulePairsHold checks that for every (tag, action) pair without
// a transition rule, deciding the action leaves the tag unchanged.
func AssertNonRulePairsHold(t *testing.T, def *lifecycle.Definition) {
	t.Helper()

	for _, tag := range def.Tags {
		for _, action := range def.Actions() {
			if _, ok := def.RuleFor(tag, action); ok {
				continue
			}

			out := def.Decide(tag, action)
			require.Equal(t, tag, out.To, "pair %s/%s must hold the tag", tag, action)
			require.NotEqual(t, lifecycle.Transitioned, out.Effect,
				"pair %s/%s must not transition", tag, action)
		}
	}
}

// AssertTransitionsStick checks that every rule transitions to exactly its
// declared successor and that re-invoking the action afterwards does not
// revert the entity.
func AssertTransitionsStick(t *testing.T, def *lifecycle.Definition) {
	t.Helper()

	ctx := context.Background()

	for _, rule := range def.Rules {
		out := def.Decide(rule.From, rule.Action)
		require.Equal(t, lifecycle.Transitioned, out.Effect)
		require.Equal(t, rule.To, out.To)

		// A second invocation at the successor must not move backwards.
		again := def.Decide(rule.To, rule.Action)
		require.NotEqual(t, rule.From, again.To,
			"re-invoking %s after %s -> %s must not revert", rule.Action, rule.From, rule.To)
	}

	// The same property through an entity, for the initial tag's rules.
	for _, action := range def.ActionsFrom(def.Initial) {
		e, err := lifecycle.New(def)
		require.NoError(t, err)

		out, err := e.Apply(ctx, action, nil)
		require.NoError(t, err)
		require.True(t, out.Applied())

		first := e.Status()

		_, err = e.Apply(ctx, action, nil)
		require.NoError(t, err)
		require.Equal(t, first, e.Status())
	}
}

// AssertTerminalsReachable checks that each terminal tag is reachable from
// the initial tag via some finite sequence of rules. Validate enforces the
// same property; this matcher states it directly in tests.
func AssertTerminalsReachable(t *testing.T, def *lifecycle.Definition) {
	t.Helper()

	require.NoError(t, def.Validate())
}
