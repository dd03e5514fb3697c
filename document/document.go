// Package document implements the document approval lifecycle: a draft is
// submitted for review, then approved and published, or rejected back to
// the author. Resubmitting a rejected document reopens the draft with an
// incremented revision.
package document

import (
	"context"

	"github.com/google/uuid"
	"github.com/stateline-labs/stateline/lifecycle"
)

// Document lifecycle tags.
const (
	Draft     = lifecycle.Tag("draft")
	InReview  = lifecycle.Tag("in_review")
	Approved  = lifecycle.Tag("approved")
	Rejected  = lifecycle.Tag("rejected")
	Published = lifecycle.Tag("published")
)

// Document lifecycle actions.
const (
	ActionSubmit  = lifecycle.Action("submit")
	ActionApprove = lifecycle.Action("approve")
	ActionReject  = lifecycle.Action("reject")
	ActionPublish = lifecycle.Action("publish")
)

var definition = lifecycle.NewBuilder("document").
	WithInitial(Draft).
	WithTerminals(Published).
	Permit(Draft, ActionSubmit, InReview, "submitted for review").
	Permit(InReview, ActionApprove, Approved, "document approved").
	Permit(InReview, ActionReject, Rejected, "document rejected").
	Permit(Rejected, ActionSubmit, Draft, "draft reopened for revision").
	Permit(Approved, ActionPublish, Published, "document published").
	Acknowledge(InReview, ActionSubmit, "already in review").
	RejectWith(Draft, ActionApprove, "submit the document for review first").
	RejectWith(Draft, ActionPublish, "only approved documents can be published").
	MustBuild()

// Definition returns the document lifecycle definition.
func Definition() *lifecycle.Definition {
	return definition
}

// Document is a document moving through review. Revision counts how many
// times the draft has been reopened after a rejection.
type Document struct {
	entity   *lifecycle.Entity
	Title    string
	Revision int
}

// New creates a draft document with the given title.
func New(title string) (*Document, error) {
	entity, err := lifecycle.New(definition)
	if err != nil {
		return nil, err
	}

	return &Document{
		entity: entity,
		Title:  title,
	}, nil
}

// ID returns the document's identifier.
func (d *Document) ID() uuid.UUID {
	return d.entity.ID()
}

// Status returns the document's current lifecycle tag.
func (d *Document) Status() lifecycle.Tag {
	return d.entity.Status()
}

// Entity exposes the underlying lifecycle entity, e.g. for journal hooks.
func (d *Document) Entity() *lifecycle.Entity {
	return d.entity
}

// Submit sends a draft for review, or reopens a rejected document as a new
// draft revision.
func (d *Document) Submit(ctx context.Context) lifecycle.Outcome {
	out := d.apply(ctx, ActionSubmit, nil)
	if out.Applied() && out.To == Draft {
		d.Revision++
	}

	return out
}

// Approve accepts the document under review.
func (d *Document) Approve(ctx context.Context) lifecycle.Outcome {
	return d.apply(ctx, ActionApprove, nil)
}

// Reject sends the document back to the author. The reason is a transient
// parameter carried into the outcome message, not stored on the state.
func (d *Document) Reject(ctx context.Context, reason string) lifecycle.Outcome {
	var data map[string]any
	if reason != "" {
		data = map[string]any{"reason": reason}
	}

	return d.apply(ctx, ActionReject, data)
}

// Publish publishes an approved document.
func (d *Document) Publish(ctx context.Context) lifecycle.Outcome {
	return d.apply(ctx, ActionPublish, nil)
}

func (d *Document) apply(ctx context.Context, action lifecycle.Action, data map[string]any) lifecycle.Outcome {
	out, err := d.entity.Apply(ctx, action, data)
	if err != nil {
		return lifecycle.Outcome{
			Effect:  lifecycle.Rejected,
			Action:  action,
			From:    d.entity.Status(),
			To:      d.entity.Status(),
			Message: err.Error(),
		}
	}

	return out
}
