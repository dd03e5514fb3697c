// Package journal records lifecycle outcomes in memory, in arrival order,
// and exports them as NDJSON, optionally gzip-compressed. It deliberately
// offers no persistence beyond the explicit export.
package journal

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stateline-labs/stateline/lifecycle"
	"go.uber.org/atomic"
)

// Entry is one recorded outcome.
type Entry struct {
	Seq       int64     `json:"seq"`
	EntityID  string    `json:"entity_id"`
	Lifecycle string    `json:"lifecycle"`
	Action    string    `json:"action"`
	Effect    string    `json:"effect"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

// Recorder collects entries from one or more entities. Unlike an entity
// itself, a recorder may be shared: concurrent hooks from different
// entities are safe.
type Recorder struct {
	mu      sync.Mutex
	seq     atomic.Int64
	entries []Entry
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		entries: []Entry{},
	}
}

// Hook returns a lifecycle hook that appends every outcome to the recorder.
func (r *Recorder) Hook() lifecycle.Hook {
	return func(e *lifecycle.Entity, out lifecycle.Outcome) {
		entry := Entry{
			Seq:       r.seq.Inc(),
			EntityID:  e.ID().String(),
			Lifecycle: e.Definition().Name,
			Action:    string(out.Action),
			Effect:    out.Effect.String(),
			From:      string(out.From),
			To:        string(out.To),
			Message:   out.Message,
			At:        time.Now(),
		}

		r.mu.Lock()
		r.entries = append(r.entries, entry)
		r.mu.Unlock()
	}
}

// Entries returns a copy of the recorded entries.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)

	return out
}

// Len returns the number of recorded entries.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

// WriteNDJSON writes the entries to w, one JSON object per line.
func (r *Recorder) WriteNDJSON(w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, entry := range r.Entries() {
		err := enc.Encode(entry)
		if err != nil {
			return fmt.Errorf("failed to encode journal entry %d: %w", entry.Seq, err)
		}
	}

	return nil
}

// WriteNDJSONGzip writes the gzip-compressed NDJSON export to w.
func (r *Recorder) WriteNDJSONGzip(w io.Writer) error {
	zw := gzip.NewWriter(w)

	err := r.WriteNDJSON(zw)
	if err != nil {
		_ = zw.Close()

		return err
	}

	err = zw.Close()
	if err != nil {
		return fmt.Errorf("failed to flush gzip export: %w", err)
	}

	return nil
}
