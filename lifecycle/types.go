// Package lifecycle implements a closed-set finite-state workflow
// mechanism: a Definition fixes the tags, transition rules, and
// acknowledgment tables at design time, and an Entity owns exactly one
// current tag, delegating every action to a pure decision over those
// tables. Wrong-state actions are reported as outcomes, never raised as
// errors.
package lifecycle

// Tag identifies one variant in a lifecycle's closed set of states.
type Tag string

// Action identifies a domain action that may be invoked on an entity.
type Action string

// Effect classifies the outcome of applying an action to an entity.
type Effect int

const (
	// Transitioned means the entity moved to a new tag.
	Transitioned Effect = iota
	// NoOp means the action was redundant but harmless; the tag is unchanged.
	NoOp
	// Rejected means no transition is defined for the action at the current
	// tag; the tag is unchanged.
	Rejected
)

// String returns the string representation of an Effect.
func (e Effect) String() string {
	switch e {
	case Transitioned:
		return "transitioned"
	case NoOp:
		return "noop"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Outcome reports what applying an action did. It is a value, never a
// fault: inapplicable and redundant actions are expected results.
type Outcome struct {
	Effect  Effect
	Action  Action
	From    Tag
	To      Tag // equals From unless Effect is Transitioned
	Message string
}

// Applied returns true if the outcome changed the entity's tag.
func (o Outcome) Applied() bool {
	return o.Effect == Transitioned
}

// Rule is a single allowed edge in the lifecycle graph.
type Rule struct {
	From    Tag    `json:"from"    yaml:"from"`
	Action  Action `json:"action"  yaml:"action"`
	To      Tag    `json:"to"      yaml:"to"`
	Message string `json:"message" yaml:"message"`
}

// Ack marks an action as redundant but harmless at a given tag. The entity
// acknowledges the call without changing state, with wording distinct from
// a rejection.
type Ack struct {
	At      Tag    `json:"at"      yaml:"at"`
	Action  Action `json:"action"  yaml:"action"`
	Message string `json:"message" yaml:"message"`
}

// Rejection overrides the default rejection wording for a (tag, action)
// pair, typically to tell the caller which prerequisite step is missing.
type Rejection struct {
	At      Tag    `json:"at"      yaml:"at"`
	Action  Action `json:"action"  yaml:"action"`
	Message string `json:"message" yaml:"message"`
}

// Hook is called after every Apply with the resulting outcome.
type Hook func(e *Entity, out Outcome)
