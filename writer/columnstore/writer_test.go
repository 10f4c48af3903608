package columnstore

import (
	"testing"
	"time"

	"github.com/apache/arrow/go/v12/arrow"
	"github.com/apache/arrow/go/v12/arrow/array"

	"github.com/flowcore/connio/conn"
)

type fakeTable struct {
	batches      []arrow.Record
	commits      int
	writeBatchErr error
}

func (f *fakeTable) WriteBatch(record arrow.Record) error {
	if f.writeBatchErr != nil {
		return f.writeBatchErr
	}
	record.Retain()
	f.batches = append(f.batches, record)
	return nil
}

func (f *fakeTable) CommitMetadata() error {
	f.commits++
	return nil
}

func strp(s string) *string { return &s }
func intp(v int64) *int64   { return &v }

func TestWriterFlushBuildsRecordWithSyntheticColumns(t *testing.T) {
	table := &fakeTable{}
	w, err := New(table, []Field{{Name: "name", Kind: FieldString}, {Name: "count", Kind: FieldInt}}, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	now := time.Unix(1_700_000_000, 0)
	if err := w.Write(conn.WriteContext{
		Values:     map[string]conn.Value{"name": {String: strp("a")}, "count": {Int: intp(1)}},
		CommitTime: now,
		Sign:       1,
	}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Write(conn.WriteContext{
		Values:     map[string]conn.Value{"name": {String: strp("b")}, "count": {Int: intp(2)}},
		CommitTime: now,
		Sign:       -1,
	}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if err := w.Flush(true); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(table.batches) != 1 {
		t.Fatalf("table received %d batches, want 1", len(table.batches))
	}
	if table.commits != 1 {
		t.Fatalf("table.CommitMetadata called %d times, want 1", table.commits)
	}

	record := table.batches[0]
	defer record.Release()
	if record.NumRows() != 2 {
		t.Errorf("record has %d rows, want 2", record.NumRows())
	}
	if record.NumCols() != 4 {
		t.Errorf("record has %d columns, want 4 (name, count, time, diff)", record.NumCols())
	}

	diffCol, ok := record.Column(3).(*array.Int64)
	if !ok {
		t.Fatalf("diff column is %T, want *array.Int64", record.Column(3))
	}
	if diffCol.Value(0) != 1 || diffCol.Value(1) != -1 {
		t.Errorf("diff column = [%d %d], want [1 -1]", diffCol.Value(0), diffCol.Value(1))
	}

	if len(w.buf) != 0 {
		t.Error("Flush must clear the buffer")
	}
}

func TestWriterFlushSkipsEmptyBuffer(t *testing.T) {
	table := &fakeTable{}
	w, err := New(table, []Field{{Name: "a", Kind: FieldString}}, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Flush(true); err != nil {
		t.Fatalf("Flush on an empty buffer: %v", err)
	}
	if len(table.batches) != 0 {
		t.Error("Flush on an empty buffer must not write any batch")
	}
}

func TestWriterNonForcedFlushRespectsMinCommitFrequency(t *testing.T) {
	table := &fakeTable{}
	w, err := New(table, []Field{{Name: "a", Kind: FieldString}}, time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.lastFlushAt = time.Now()

	if err := w.Write(conn.WriteContext{Values: map[string]conn.Value{"a": {String: strp("x")}}}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Flush(false); err != nil {
		t.Fatalf("Flush(false): %v", err)
	}
	if len(table.batches) != 0 {
		t.Error("a non-forced flush before min_commit_frequency elapses must not write a batch")
	}
	if len(w.buf) != 1 {
		t.Error("a deferred flush must leave the buffer intact")
	}
}

func TestWriterNullValuesBecomeNullCells(t *testing.T) {
	table := &fakeTable{}
	w, err := New(table, []Field{{Name: "a", Kind: FieldString}}, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Write(conn.WriteContext{Values: map[string]conn.Value{"a": {Null: true}}}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Flush(true); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	record := table.batches[0]
	defer record.Release()
	col, ok := record.Column(0).(*array.String)
	if !ok {
		t.Fatalf("column 0 is %T, want *array.String", record.Column(0))
	}
	if !col.IsNull(0) {
		t.Error("a Null-tagged value must produce a null Arrow cell")
	}
}

func TestWriterCloseForcesFinalFlush(t *testing.T) {
	table := &fakeTable{}
	w, err := New(table, []Field{{Name: "a", Kind: FieldString}}, time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.lastFlushAt = time.Now()
	if err := w.Write(conn.WriteContext{Values: map[string]conn.Value{"a": {String: strp("x")}}}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(table.batches) != 1 {
		t.Error("Close must force a final flush regardless of min_commit_frequency")
	}
}

func TestWriterSingleThreadedIsTrue(t *testing.T) {
	table := &fakeTable{}
	w, err := New(table, []Field{{Name: "a", Kind: FieldString}}, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !w.SingleThreaded() {
		t.Error("columnstore writer must report SingleThreaded() = true")
	}
	if !w.Retriable() {
		t.Error("columnstore writer must report Retriable() = true")
	}
}
