package conn

import "time"

// WriteContext is one logical record absorbed by Writer.Write: the typed
// values plus the bookkeeping fields every sink needs (commit time and
// diff sign), mirroring spec.md §4.9's "payloads, typed values,
// commit-time, sign".
type WriteContext struct {
	Values     map[string]Value
	Key        []byte // optional explicit row/message key
	CommitTime time.Time
	Sign       int64 // +1 for insertions/upserts, -1 for retractions
}

// Writer is the contract every sink backend implements (spec.md §4.9).
type Writer interface {
	// Write absorbs one logical record. Implementations may buffer;
	// Flush forces (or allows) a buffered batch to be persisted.
	Write(ctx WriteContext) error

	// Flush persists buffered records. When forced is false, a writer
	// may defer the flush until its own batching policy is satisfied
	// (max_batch_size, min_commit_frequency, ...).
	Flush(forced bool) error

	// Retriable reports whether the runtime may retry a failed Write.
	Retriable() bool

	// SingleThreaded reports whether this backend requires the runtime
	// to serialize all calls into it (spec.md §4.9).
	SingleThreaded() bool

	// Close releases any resources held by the writer. Backends that
	// require a final flush on drop (message-bus producer, column-store
	// table) perform it here.
	Close() error
}
