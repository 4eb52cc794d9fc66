package store

import (
	"context"
	"time"
)

// KV is the flat key→string durable storage the progression engine writes
// to. Each key is independently durable; there is no grouping of writes.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every key.
	Clear(ctx context.Context) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int    // max results (0 = unlimited)
	Kind  string // exact kind match ("" = all kinds)
	After int64  // sequence > After
}

// ProgressEventData captures a single engine outcome worth remembering.
type ProgressEventData struct {
	EventID string // correlates events from one engine call
	Kind    string
	Subject string // question id, node index, achievement id or session id
	XP      int
	Detail  string
}

// ProgressEventRecord is a ProgressEventData read back from the log.
type ProgressEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	ProgressEventData
}

// EventRepo provides append and query access to the progress event log.
type EventRepo interface {
	// AppendProgressEvent records an engine outcome.
	AppendProgressEvent(ctx context.Context, data ProgressEventData) error

	// QueryProgressEvents returns events newest first.
	QueryProgressEvents(ctx context.Context, opts QueryOpts) ([]ProgressEventRecord, error)
}
