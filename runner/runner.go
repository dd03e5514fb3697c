// Package runner replays scripted action sequences against many entities
// concurrently. An entity by itself is not safe for concurrent use, so the
// runner submits exactly one task per entity: actions on a given entity
// stay serialized while distinct entities progress in parallel.
package runner

import (
	"context"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"github.com/stateline-labs/stateline/lifecycle"
)

const defaultConcurrency = 8

// Step is one action in a replay script.
type Step struct {
	Action lifecycle.Action
	Data   map[string]any
}

// Script pairs an entity with the action sequence to replay on it.
type Script struct {
	Entity *lifecycle.Entity
	Steps  []Step
}

// Trace is the per-entity result of a replay.
type Trace struct {
	EntityID uuid.UUID
	Final    lifecycle.Tag
	Outcomes []lifecycle.Outcome
	Err      error
}

// Runner replays scripts over a worker pool.
type Runner struct {
	concurrency int
}

// New creates a runner with the given worker count. A non-positive count
// falls back to the default.
func New(concurrency int) *Runner {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &Runner{
		concurrency: concurrency,
	}
}

// Replay runs every script to completion and returns one trace per script,
// in script order. A script stops at its first Apply error (an action
// outside its lifecycle's closed set); rejections and no-ops are ordinary
// outcomes and do not stop the replay.
func (r *Runner) Replay(ctx context.Context, scripts []Script) []Trace {
	pool := pond.NewPool(r.concurrency)
	traces := make([]Trace, len(scripts))

	for i, script := range scripts {
		pool.Submit(func() {
			traces[i] = replayOne(ctx, script)
		})
	}

	pool.StopAndWait()

	return traces
}

// replayOne applies each step of a script in order.
func replayOne(ctx context.Context, script Script) Trace {
	trace := Trace{
		EntityID: script.Entity.ID(),
		Outcomes: make([]lifecycle.Outcome, 0, len(script.Steps)),
	}

	for _, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			trace.Err = err

			break
		}

		out, err := script.Entity.Apply(ctx, step.Action, step.Data)
		if err != nil {
			trace.Err = err

			break
		}

		trace.Outcomes = append(trace.Outcomes, out)
	}

	trace.Final = script.Entity.Status()

	return trace
}
