package conn

import (
	"time"

	"github.com/flowcore/connio/offset"
)

// StorageType tags which backend a Reader belongs to, used by the runtime
// to dispatch frontier merges and by connlog for diagnostics (spec.md §4.1,
// §9 "tagged-variant dispatch").
type StorageType int

const (
	StorageFS StorageType = iota
	StorageObjectStore
	StorageMessageBus
	StorageEmbeddedSQL
	StorageExternal
)

func (t StorageType) String() string {
	switch t {
	case StorageFS:
		return "fs"
	case StorageObjectStore:
		return "object-store"
	case StorageMessageBus:
		return "message-bus"
	case StorageEmbeddedSQL:
		return "embedded-sql"
	case StorageExternal:
		return "external"
	default:
		return "unknown"
	}
}

// resultKind tags which ReadResult variant is populated.
type resultKind int

const (
	resultData resultKind = iota
	resultNewSource
	resultFinishedSource
	resultFinished
)

// SourceMetadata describes a logical source (file or object) at the
// moment it is opened or deleted. Re-emitted verbatim on deletion so
// downstream join keys match (spec.md §3 cached_metadata invariant).
type SourceMetadata struct {
	Path       string
	ModifiedAt time.Time
	Size       int64
	Owner      string
	Seen       time.Time
}

// ReadResult is the closed set of values Reader.Read may return, modeled
// as a tagged struct rather than an interface hierarchy per spec.md §9.
type ReadResult struct {
	kind kind_

	ctx Context
	key offset.Key
	val offset.Value

	meta *SourceMetadata // NewSource, optional

	commitAllowed bool // FinishedSource
}

type kind_ = resultKind

// Data builds a Data result: one emitted event paired with its offset.
func Data(ctx Context, key offset.Key, val offset.Value) ReadResult {
	return ReadResult{kind: resultData, ctx: ctx, key: key, val: val}
}

// NewSourceResult builds a NewSource result, optionally carrying metadata
// about the source that just opened.
func NewSourceResult(meta *SourceMetadata) ReadResult {
	return ReadResult{kind: resultNewSource, meta: meta}
}

// FinishedSourceResult builds a FinishedSource result. commitAllowed is
// false exactly when a synthesized follow-up event (the second half of a
// modification) is still pending (spec.md §3).
func FinishedSourceResult(commitAllowed bool) ReadResult {
	return ReadResult{kind: resultFinishedSource, commitAllowed: commitAllowed}
}

// Finished builds the terminal Finished result: the entire stream is
// exhausted.
func Finished() ReadResult {
	return ReadResult{kind: resultFinished}
}

// IsData reports whether r is a Data result.
func (r ReadResult) IsData() bool { return r.kind == resultData }

// Context returns the emitted payload; only valid when IsData is true.
func (r ReadResult) Context() Context { return r.ctx }

// Offset returns the offset paired with the emitted event; only valid
// when IsData is true.
func (r ReadResult) Offset() (offset.Key, offset.Value) { return r.key, r.val }

// IsNewSource reports whether r is a NewSource result.
func (r ReadResult) IsNewSource() bool { return r.kind == resultNewSource }

// Metadata returns the optional source metadata; only valid when
// IsNewSource is true. May be nil.
func (r ReadResult) Metadata() *SourceMetadata { return r.meta }

// IsFinishedSource reports whether r is a FinishedSource result.
func (r ReadResult) IsFinishedSource() bool { return r.kind == resultFinishedSource }

// CommitAllowed reports whether the runtime may persist a frontier that
// includes this source's last offset; only valid when IsFinishedSource is
// true.
func (r ReadResult) CommitAllowed() bool { return r.commitAllowed }

// IsFinished reports whether r is the terminal Finished result.
func (r ReadResult) IsFinished() bool { return r.kind == resultFinished }

// Reader is the contract every backend implements (spec.md §4.1).
// Read blocks until the next event, never returning partial bytes.
// Seek must be called at most once, before the first Read.
type Reader interface {
	Read() (ReadResult, error)
	Seek(f offset.Frontier) error
	StorageType() StorageType

	// MaxAllowedConsecutiveErrors is advisory: message-bus readers
	// tolerate 32 consecutive errors before the runtime gives up; every
	// other backend tolerates zero (spec.md §4.1).
	MaxAllowedConsecutiveErrors() int

	// Close releases any resources (open files, background workers,
	// consumer handles) held by the reader.
	Close() error
}
