package journal

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stateline-labs/stateline/document"
	"github.com/stateline-labs/stateline/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCapturesOutcomes(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()

	o, err := order.New(2500)
	require.NoError(t, err)
	o.Entity().AddHook(rec.Hook())

	ctx := context.Background()
	o.Ship(ctx) // rejected
	o.Pay(ctx)  // transitioned
	o.Pay(ctx)  // noop

	require.Equal(t, 3, rec.Len())

	entries := rec.Entries()
	assert.Equal(t, int64(1), entries[0].Seq)
	assert.Equal(t, "rejected", entries[0].Effect)
	assert.Equal(t, "transitioned", entries[1].Effect)
	assert.Equal(t, "noop", entries[2].Effect)
	assert.Equal(t, "order", entries[0].Lifecycle)
	assert.Equal(t, o.ID().String(), entries[0].EntityID)
}

func TestRecorderSharedAcrossEntities(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	ctx := context.Background()

	o, err := order.New(100)
	require.NoError(t, err)
	o.Entity().AddHook(rec.Hook())

	d, err := document.New("Note")
	require.NoError(t, err)
	d.Entity().AddHook(rec.Hook())

	o.Pay(ctx)
	d.Submit(ctx)

	entries := rec.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "order", entries[0].Lifecycle)
	assert.Equal(t, "document", entries[1].Lifecycle)

	// Sequence numbers are global across the recorder.
	assert.Equal(t, int64(1), entries[0].Seq)
	assert.Equal(t, int64(2), entries[1].Seq)
}

func TestWriteNDJSON(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()

	o, err := order.New(100)
	require.NoError(t, err)
	o.Entity().AddHook(rec.Hook())

	ctx := context.Background()
	o.Pay(ctx)
	o.Ship(ctx)

	var buf bytes.Buffer

	require.NoError(t, rec.WriteNDJSON(&buf))

	scanner := bufio.NewScanner(&buf)
	count := 0

	for scanner.Scan() {
		var entry Entry

		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		count++

		assert.Equal(t, int64(count), entry.Seq)
	}

	require.NoError(t, scanner.Err())
	assert.Equal(t, 2, count)
}

func TestWriteNDJSONGzip(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()

	o, err := order.New(100)
	require.NoError(t, err)
	o.Entity().AddHook(rec.Hook())

	o.Pay(context.Background())

	var buf bytes.Buffer

	require.NoError(t, rec.WriteNDJSONGzip(&buf))

	zr, err := gzip.NewReader(&buf)
	require.NoError(t, err)

	defer zr.Close()

	var entry Entry

	require.NoError(t, json.NewDecoder(zr).Decode(&entry))
	assert.Equal(t, "pay", entry.Action)
	assert.Equal(t, "transitioned", entry.Effect)
}
