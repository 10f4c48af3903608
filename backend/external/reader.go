// Package external implements the external-subject reader of spec.md
// §4.8: a thin bridge over an in-process producer exposing start/read/end,
// assigning sequential offsets the way the original Rust PythonReader
// does around a user-supplied ConnectorSubject.
package external

import (
	"fmt"

	"github.com/flowcore/connio/conn"
	"github.com/flowcore/connio/internal/connerrs"
	"github.com/flowcore/connio/internal/connmetrics"
	"github.com/flowcore/connio/offset"
)

const backendName = "external"

// Subject is the producer this reader bridges to. Start/End bracket one
// read session; Read yields one event at a time until the caller signals
// termination via the _pw_special sentinel in the returned values map.
type Subject interface {
	Start() error
	Read() (evt conn.EventKind, key []string, values map[string]conn.Value, err error)
	End() error
}

// Reader implements conn.Reader over a Subject, assigning SequentialID
// offsets increasing from 1 (spec.md §4.8).
type Reader struct {
	subject           Subject
	deletionsEnabled  bool
	started           bool
	nextSeq           uint64
	finished          bool
}

// New builds an external-subject reader. deletionsEnabled mirrors the
// subject's own opt-in flag: when false, any non-Insert event is rejected
// as an error rather than silently accepted (spec.md §4.8).
func New(subject Subject, deletionsEnabled bool) *Reader {
	return &Reader{subject: subject, deletionsEnabled: deletionsEnabled}
}

func (r *Reader) String() string { return "external-subject" }

// StorageType implements conn.Reader.
func (r *Reader) StorageType() conn.StorageType { return conn.StorageExternal }

// MaxAllowedConsecutiveErrors implements conn.Reader.
func (r *Reader) MaxAllowedConsecutiveErrors() int { return 0 }

// Close calls End on the subject if a session is still open.
func (r *Reader) Close() error {
	if !r.started || r.finished {
		return nil
	}
	if err := r.subject.End(); err != nil {
		return connerrs.New(connerrs.KindExternalSubject, "subject.End", err)
	}
	return nil
}

// Seek restores the sequential counter this reader itself assigns: when
// the frontier holds a SequentialID under the Empty key, the next Data
// result continues the numbering after that value. Any other offset kind
// under that key is a fatal error; a frontier without an Empty entry
// leaves the reader unchanged. The subject owns replay on its own terms.
func (r *Reader) Seek(f offset.Frontier) error {
	val, ok := f.Get(offset.Empty)
	if !ok {
		return nil
	}
	if val.Kind() != offset.KindSequentialID {
		return connerrs.NewFatal(connerrs.KindExternalSubject, "external.Seek",
			fmt.Errorf("unexpected offset kind in external-subject frontier: %s", val))
	}
	r.nextSeq = uint64(val.Int())
	return nil
}

// Read implements conn.Reader.
func (r *Reader) Read() (conn.ReadResult, error) {
	if r.finished {
		return conn.Finished(), nil
	}

	if !r.started {
		if err := r.subject.Start(); err != nil {
			return conn.ReadResult{}, connerrs.New(connerrs.KindExternalSubject, "subject.Start", err)
		}
		r.started = true
		connmetrics.SourcesOpened.WithLabelValues(backendName).Inc()
		return conn.NewSourceResult(nil), nil
	}

	evt, key, values, err := r.subject.Read()
	if err != nil {
		connmetrics.ReadErrors.WithLabelValues(backendName, "external-subject").Inc()
		return conn.ReadResult{}, connerrs.New(connerrs.KindExternalSubject, "subject.Read", err)
	}

	ctx := conn.NewDiff(evt, key, values)
	if ctx.IsFinishSentinel() {
		if err := r.subject.End(); err != nil {
			return conn.ReadResult{}, connerrs.New(connerrs.KindExternalSubject, "subject.End", err)
		}
		r.finished = true
		return conn.Finished(), nil
	}

	if evt != conn.Insert && !r.deletionsEnabled {
		return conn.ReadResult{}, connerrs.NewFatal(connerrs.KindExternalSubject, "subject.Read",
			fmt.Errorf("non-insert event %s rejected: this external subject has not opted in to deletions", evt))
	}

	r.nextSeq++
	val := offset.SequentialID(r.nextSeq)
	connmetrics.RecordsRead.WithLabelValues(backendName).Inc()
	return conn.Data(ctx, offset.Empty, val), nil
}
