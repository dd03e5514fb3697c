package testing

import (
	stdtesting "testing"

	"github.com/stateline-labs/stateline/lifecycle"
	"github.com/stretchr/testify/require"
)

func gateDefinition(t *stdtesting.T) *lifecycle.Definition {
	t.Helper()

	def, err := lifecycle.NewBuilder("gate").
		WithInitial("closed").
		WithTerminals("locked").
		Permit("closed", "open", "opened", "gate opened").
		Permit("opened", "close", "closed", "gate closed").
		Permit("closed", "lock", "locked", "gate locked").
		Acknowledge("opened", "open", "already open").
		Build()
	require.NoError(t, err)

	return def
}

func TestRunScript(t *stdtesting.T) {
	t.Parallel()

	def := gateDefinition(t)

	e, err := lifecycle.New(def)
	require.NoError(t, err)

	RunScript(t, e, []Step{
		{Action: "close", WantEffect: lifecycle.Rejected, WantTag: "closed"},
		{Action: "open", WantEffect: lifecycle.Transitioned, WantTag: "opened"},
		{Action: "open", WantEffect: lifecycle.NoOp, WantTag: "opened"},
		{Action: "close", WantEffect: lifecycle.Transitioned, WantTag: "closed"},
		{Action: "lock", WantEffect: lifecycle.Transitioned, WantTag: "locked"},
		{Action: "open", WantEffect: lifecycle.Rejected, WantTag: "locked"},
	})
}

func TestMatchers(t *stdtesting.T) {
	t.Parallel()

	def := gateDefinition(t)

	AssertClosedTagSet(t, def)
	AssertNonRulePairsHold(t, def)
	AssertTransitionsStick(t, def)
	AssertTerminalsReachable(t, def)
}
