package lifecycle

import (
	"fmt"
	"slices"
)

// Definition describes a complete lifecycle: the closed set of tags, the
// designated initial tag, terminal tags, and the transition/acknowledgment
// tables. The set of variants and transitions is fixed at design time;
// a validated Definition is never mutated at runtime.
type Definition struct {
	Name       string      `json:"name"       yaml:"name"`
	Initial    Tag         `json:"initial"    yaml:"initial"`
	Tags       []Tag       `json:"tags"       yaml:"tags"`
	Terminals  []Tag       `json:"terminals"  yaml:"terminals"`
	Rules      []Rule      `json:"rules"      yaml:"rules"`
	Acks       []Ack       `json:"acks"       yaml:"acks"`
	Rejections []Rejection `json:"rejections" yaml:"rejections"`
}

// Decide resolves an action against a tag. It is a pure function of
// (current tag, action): it never mutates anything and always returns a
// tagged Outcome, even when the action is inapplicable.
//
// Resolution order: transition rule, then acknowledgment, then rejection.
func (d *Definition) Decide(current Tag, action Action) Outcome {
	if rule, ok := d.RuleFor(current, action); ok {
		msg := rule.Message
		if msg == "" {
			msg = fmt.Sprintf("%s: %s -> %s", action, rule.From, rule.To)
		}

		return Outcome{
			Effect:  Transitioned,
			Action:  action,
			From:    current,
			To:      rule.To,
			Message: msg,
		}
	}

	for _, ack := range d.Acks {
		if ack.At == current && ack.Action == action {
			msg := ack.Message
			if msg == "" {
				msg = fmt.Sprintf("%s already satisfied at %s", action, current)
			}

			return Outcome{
				Effect:  NoOp,
				Action:  action,
				From:    current,
				To:      current,
				Message: msg,
			}
		}
	}

	msg := ""

	for _, rej := range d.Rejections {
		if rej.At == current && rej.Action == action {
			msg = rej.Message

			break
		}
	}

	if msg == "" {
		msg = fmt.Sprintf("cannot %s while %s", action, current)
	}

	return Outcome{
		Effect:  Rejected,
		Action:  action,
		From:    current,
		To:      current,
		Message: msg,
	}
}

// RuleFor returns the transition rule for a (tag, action) pair, if any.
func (d *Definition) RuleFor(from Tag, action Action) (Rule, bool) {
	for _, rule := range d.Rules {
		if rule.From == from && rule.Action == action {
			return rule, true
		}
	}

	return Rule{}, false
}

// HasTag reports whether the tag belongs to the definition's closed set.
func (d *Definition) HasTag(tag Tag) bool {
	return slices.Contains(d.Tags, tag)
}

// IsTerminal reports whether the tag is a terminal variant.
func (d *Definition) IsTerminal(tag Tag) bool {
	return slices.Contains(d.Terminals, tag)
}

// Actions returns the closed set of actions named anywhere in the
// definition, in first-appearance order.
func (d *Definition) Actions() []Action {
	var actions []Action

	appendAction := func(a Action) {
		if !slices.Contains(actions, a) {
			actions = append(actions, a)
		}
	}

	for _, rule := range d.Rules {
		appendAction(rule.Action)
	}

	for _, ack := range d.Acks {
		appendAction(ack.Action)
	}

	for _, rej := range d.Rejections {
		appendAction(rej.Action)
	}

	return actions
}

// HasAction reports whether the action belongs to the definition's closed
// action set.
func (d *Definition) HasAction(action Action) bool {
	return slices.Contains(d.Actions(), action)
}

// ActionsFrom returns the actions that cause a transition out of the given
// tag, in rule order.
func (d *Definition) ActionsFrom(tag Tag) []Action {
	var actions []Action

	for _, rule := range d.Rules {
		if rule.From == tag && !slices.Contains(actions, rule.Action) {
			actions = append(actions, rule.Action)
		}
	}

	return actions
}

// Validate checks the definition for internal consistency.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return ErrNameRequired
	}

	if d.Initial == "" {
		return ErrInitialRequired
	}

	if len(d.Tags) == 0 {
		return ErrTagRequired
	}

	seen := make(map[Tag]bool, len(d.Tags))

	for _, tag := range d.Tags {
		if tag == "" {
			return ErrTagNameRequired
		}

		if seen[tag] {
			return fmt.Errorf("%w: %s", ErrDuplicateTag, tag)
		}

		seen[tag] = true
	}

	if !d.HasTag(d.Initial) {
		return fmt.Errorf("%w: %s", ErrInitialNotFound, d.Initial)
	}

	for _, terminal := range d.Terminals {
		if !d.HasTag(terminal) {
			return fmt.Errorf("%w: %s", ErrTerminalNotFound, terminal)
		}
	}

	edges := make(map[string]bool, len(d.Rules))

	for i, rule := range d.Rules {
		if rule.Action == "" {
			return fmt.Errorf("rule %d: %w", i, ErrRuleActionRequired)
		}

		if !d.HasTag(rule.From) {
			return fmt.Errorf("rule %d: %w: %s", i, ErrRuleFromNotFound, rule.From)
		}

		if !d.HasTag(rule.To) {
			return fmt.Errorf("rule %d: %w: %s", i, ErrRuleToNotFound, rule.To)
		}

		if d.IsTerminal(rule.From) {
			return fmt.Errorf("rule %d: %w: %s", i, ErrTerminalOutbound, rule.From)
		}

		key := string(rule.From) + "\x00" + string(rule.Action)
		if edges[key] {
			return fmt.Errorf("rule %d: %w: %s/%s", i, ErrDuplicateRule, rule.From, rule.Action)
		}

		edges[key] = true
	}

	for i, ack := range d.Acks {
		if ack.Action == "" {
			return fmt.Errorf("ack %d: %w", i, ErrRuleActionRequired)
		}

		if !d.HasTag(ack.At) {
			return fmt.Errorf("ack %d: %w: %s", i, ErrRuleFromNotFound, ack.At)
		}
	}

	for i, rej := range d.Rejections {
		if rej.Action == "" {
			return fmt.Errorf("rejection %d: %w", i, ErrRuleActionRequired)
		}

		if !d.HasTag(rej.At) {
			return fmt.Errorf("rejection %d: %w: %s", i, ErrRuleFromNotFound, rej.At)
		}
	}

	// Every terminal must be reachable from the initial tag: no island
	// states that a caller could never arrive at.
	reachable := d.reachableTags()

	for _, terminal := range d.Terminals {
		if !reachable[terminal] {
			return fmt.Errorf("%w: %s", ErrTerminalUnreachable, terminal)
		}
	}

	return nil
}

// reachableTags finds all tags reachable from the initial tag via BFS over
// the rule table.
func (d *Definition) reachableTags() map[Tag]bool {
	reachable := make(map[Tag]bool)
	reachable[d.Initial] = true

	queue := []Tag{d.Initial}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, rule := range d.Rules {
			if rule.From == current && !reachable[rule.To] {
				reachable[rule.To] = true
				queue = append(queue, rule.To)
			}
		}
	}

	return reachable
}
