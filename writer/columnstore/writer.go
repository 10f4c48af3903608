// Package columnstore implements the column-store table writer of
// spec.md §4.9: a columnar buffer coerced to typed Arrow arrays on
// flush. The table sink itself (where a committed batch actually lands)
// is injected behind the Table interface, since the concrete lake format
// the original implementation targets is not part of this module's
// reference pack (see DESIGN.md).
package columnstore

import (
	"fmt"
	"time"

	"github.com/apache/arrow/go/v12/arrow"
	"github.com/apache/arrow/go/v12/arrow/array"
	"github.com/apache/arrow/go/v12/arrow/memory"

	"github.com/flowcore/connio/conn"
	"github.com/flowcore/connio/internal/connerrs"
	"github.com/flowcore/connio/internal/connlog"
	"github.com/flowcore/connio/internal/connmetrics"
)

const backendName = "columnstore"

// Table is the sink a committed Arrow batch is written to, plus the
// table-metadata commit that finalizes it. A local Parquet/Delta
// directory, an object-store-backed table, or a test double may all
// implement it.
type Table interface {
	WriteBatch(record arrow.Record) error
	CommitMetadata() error
}

// Writer buffers rows column-by-column and, on flush, builds one Arrow
// record batch and hands it to Table.
type Writer struct {
	table  Table
	schema *arrow.Schema
	fields []Field
	mem    memory.Allocator

	// MinCommitFrequency bounds how long a non-forced flush may defer a
	// nonempty buffer (spec.md §4.9 "elapsed >= min_commit_frequency").
	MinCommitFrequency time.Duration

	buf         []conn.WriteContext
	lastFlushAt time.Time
}

// New builds a column-store writer. fields declares the output schema;
// construction fails if any field's kind has no Arrow mapping.
func New(table Table, fields []Field, minCommitFrequency time.Duration) (*Writer, error) {
	schema, err := buildSchema(fields)
	if err != nil {
		return nil, err
	}
	return &Writer{
		table:              table,
		schema:             schema,
		fields:             fields,
		mem:                memory.NewGoAllocator(),
		MinCommitFrequency: minCommitFrequency,
	}, nil
}

// Write implements conn.Writer: buffers ctx for the next flush.
func (w *Writer) Write(ctx conn.WriteContext) error {
	w.buf = append(w.buf, ctx)
	return nil
}

// Flush implements conn.Writer: when the buffer is nonempty and either
// forced is true or min_commit_frequency has elapsed since the last
// flush, coerces the buffer into one Arrow record batch, writes it, and
// commits table metadata (spec.md §4.9).
func (w *Writer) Flush(forced bool) error {
	if len(w.buf) == 0 {
		return nil
	}
	if !forced && !w.lastFlushAt.IsZero() && time.Since(w.lastFlushAt) < w.MinCommitFrequency {
		return nil
	}

	record, err := w.buildRecord()
	if err != nil {
		return err
	}
	defer record.Release()

	if err := w.table.WriteBatch(record); err != nil {
		return connerrs.New(connerrs.KindSerialization, "table.WriteBatch", err)
	}
	if err := w.table.CommitMetadata(); err != nil {
		return connerrs.New(connerrs.KindSerialization, "table.CommitMetadata", err)
	}

	connmetrics.RowsWritten.WithLabelValues(backendName).Add(float64(len(w.buf)))
	connlog.Debugf(connlog.Name(backendName), "flushed %d rows across %d columns", len(w.buf), len(w.schema.Fields()))
	w.buf = w.buf[:0]
	w.lastFlushAt = time.Now()
	return nil
}

// Retriable implements conn.Writer: a failed batch write/commit may be
// retried wholesale from the still-buffered rows.
func (w *Writer) Retriable() bool { return true }

// SingleThreaded implements conn.Writer: Write/Flush calls must be
// serialized by the caller. Flush builds the batch's columns one after
// another on the calling goroutine; it starts no executor or worker
// goroutines of its own.
func (w *Writer) SingleThreaded() bool { return true }

// Close performs a final forced flush, matching spec.md §5's "column-
// store requires an explicit final flush(forced=true)".
func (w *Writer) Close() error { return w.Flush(true) }

func (w *Writer) buildRecord() (arrow.Record, error) {
	cols := make([]arrow.Array, 0, len(w.fields)+2)

	for _, f := range w.fields {
		col, err := w.buildColumn(f)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}

	timeBuilder := array.NewInt64Builder(w.mem)
	diffBuilder := array.NewInt64Builder(w.mem)
	for _, row := range w.buf {
		timeBuilder.Append(row.CommitTime.UnixMicro())
		diffBuilder.Append(row.Sign)
	}
	cols = append(cols, timeBuilder.NewArray(), diffBuilder.NewArray())
	timeBuilder.Release()
	diffBuilder.Release()

	return array.NewRecord(w.schema, cols, int64(len(w.buf))), nil
}

func (w *Writer) buildColumn(f Field) (arrow.Array, error) {
	switch f.Kind {
	case FieldBool:
		b := array.NewBooleanBuilder(w.mem)
		defer b.Release()
		for _, row := range w.buf {
			v := row.Values[f.Name]
			if v.Null || v.Bool == nil {
				b.AppendNull()
				continue
			}
			b.Append(*v.Bool)
		}
		return b.NewArray(), nil

	case FieldInt, FieldDuration:
		b := array.NewInt64Builder(w.mem)
		defer b.Release()
		for _, row := range w.buf {
			v := row.Values[f.Name]
			if v.Null || v.Int == nil {
				b.AppendNull()
				continue
			}
			b.Append(*v.Int)
		}
		return b.NewArray(), nil

	case FieldFloat:
		b := array.NewFloat64Builder(w.mem)
		defer b.Release()
		for _, row := range w.buf {
			v := row.Values[f.Name]
			if v.Null || v.Float == nil {
				b.AppendNull()
				continue
			}
			b.Append(*v.Float)
		}
		return b.NewArray(), nil

	case FieldPointer, FieldString, FieldJSON:
		b := array.NewStringBuilder(w.mem)
		defer b.Release()
		for _, row := range w.buf {
			v := row.Values[f.Name]
			if v.Null || v.String == nil {
				b.AppendNull()
				continue
			}
			b.Append(*v.String)
		}
		return b.NewArray(), nil

	case FieldBytes:
		b := array.NewBinaryBuilder(w.mem, arrow.BinaryTypes.Binary)
		defer b.Release()
		for _, row := range w.buf {
			v := row.Values[f.Name]
			if v.Null || v.Bytes == nil {
				b.AppendNull()
				continue
			}
			b.Append(v.Bytes)
		}
		return b.NewArray(), nil

	case FieldNaiveDatetime, FieldUTCDatetime:
		t, _ := arrowType(f.Kind)
		b := array.NewTimestampBuilder(w.mem, t.(*arrow.TimestampType))
		defer b.Release()
		for _, row := range w.buf {
			v := row.Values[f.Name]
			if v.Null || v.Int == nil {
				b.AppendNull()
				continue
			}
			b.Append(arrow.Timestamp(*v.Int))
		}
		return b.NewArray(), nil

	default:
		return nil, connerrs.NewFatal(connerrs.KindSerialization, "columnstore.buildColumn",
			fmt.Errorf("unsupported schema field kind for column %q", f.Name))
	}
}
