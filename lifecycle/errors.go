package lifecycle

import (
	"errors"
	"fmt"
)

// Predefined error types.
var (
	// ErrUnknownAction is returned when an action outside the definition's
	// closed action set is applied to an entity.
	ErrUnknownAction = errors.New("action not defined for this lifecycle")
	// ErrNilDefinition is returned when an entity is created without a definition.
	ErrNilDefinition = errors.New("definition is required")

	// ErrNameRequired indicates that a definition name is required.
	ErrNameRequired = errors.New("definition name is required")
	// ErrInitialRequired indicates that an initial tag is required.
	ErrInitialRequired = errors.New("initial tag is required")
	// ErrTagRequired indicates that at least one tag is required.
	ErrTagRequired = errors.New("at least one tag is required")
	// ErrTagNameRequired indicates that a tag name is required.
	ErrTagNameRequired = errors.New("tag name is required")
	// ErrDuplicateTag indicates that a duplicate tag was found.
	ErrDuplicateTag = errors.New("duplicate tag")
	// ErrInitialNotFound indicates that the initial tag is not in the tag set.
	ErrInitialNotFound = errors.New("initial tag does not exist")
	// ErrTerminalNotFound indicates that a terminal tag is not in the tag set.
	ErrTerminalNotFound = errors.New("terminal tag does not exist")
	// ErrRuleActionRequired indicates that a rule action name is required.
	ErrRuleActionRequired = errors.New("action name is required")
	// ErrRuleFromNotFound indicates that a rule references an unknown source tag.
	ErrRuleFromNotFound = errors.New("source tag does not exist")
	// ErrRuleToNotFound indicates that a rule references an unknown target tag.
	ErrRuleToNotFound = errors.New("target tag does not exist")
	// ErrTerminalOutbound indicates that a terminal tag has an outbound rule.
	ErrTerminalOutbound = errors.New("terminal tag cannot have outbound rules")
	// ErrDuplicateRule indicates that a (tag, action) pair has two rules.
	ErrDuplicateRule = errors.New("duplicate rule for tag/action pair")
	// ErrTerminalUnreachable indicates that a terminal tag cannot be reached
	// from the initial tag.
	ErrTerminalUnreachable = errors.New("terminal tag unreachable from initial tag")
)

// DefinitionError wraps an error with the lifecycle it belongs to.
type DefinitionError struct {
	Lifecycle string
	Err       error
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("lifecycle %s: %v", e.Lifecycle, e.Err)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// ApplyError wraps an error with the tag and action it occurred at.
type ApplyError struct {
	Tag    Tag
	Action Action
	Err    error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("apply %s at %s: %v", e.Action, e.Tag, e.Err)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}

// WrapDefinitionError wraps an error with lifecycle context.
func WrapDefinitionError(lifecycle string, err error) error {
	if err == nil {
		return nil
	}

	return &DefinitionError{
		Lifecycle: lifecycle,
		Err:       err,
	}
}

// WrapApplyError wraps an error with tag and action context.
func WrapApplyError(tag Tag, action Action, err error) error {
	if err == nil {
		return nil
	}

	return &ApplyError{
		Tag:    tag,
		Action: action,
		Err:    err,
	}
}
