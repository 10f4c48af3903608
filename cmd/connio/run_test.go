package main

import (
	"errors"
	"testing"

	"github.com/flowcore/connio/conn"
	"github.com/flowcore/connio/offset"
)

type fakeReader struct {
	results []conn.ReadResult
	errs    []error
	pos     int
	maxErrs int
}

func (r *fakeReader) String() string                    { return "fake-reader" }
func (r *fakeReader) StorageType() conn.StorageType      { return conn.StorageExternal }
func (r *fakeReader) MaxAllowedConsecutiveErrors() int   { return r.maxErrs }
func (r *fakeReader) Close() error                       { return nil }
func (r *fakeReader) Seek(f offset.Frontier) error       { return nil }

func (r *fakeReader) Read() (conn.ReadResult, error) {
	if r.pos >= len(r.results) {
		return conn.Finished(), nil
	}
	err := r.errs[r.pos]
	res := r.results[r.pos]
	r.pos++
	if err != nil {
		return conn.ReadResult{}, err
	}
	return res, nil
}

type fakeWriter struct {
	written      []conn.WriteContext
	flushes      []bool
	closed       bool
}

func (w *fakeWriter) Write(ctx conn.WriteContext) error {
	w.written = append(w.written, ctx)
	return nil
}
func (w *fakeWriter) Flush(forced bool) error {
	w.flushes = append(w.flushes, forced)
	return nil
}
func (w *fakeWriter) Retriable() bool      { return true }
func (w *fakeWriter) SingleThreaded() bool { return false }
func (w *fakeWriter) Close() error         { w.closed = true; return nil }

func strp(s string) *string { return &s }

func TestPumpForwardsDataAndFlushesOnFinishedSource(t *testing.T) {
	reader := &fakeReader{
		results: []conn.ReadResult{
			conn.NewSourceResult(nil),
			conn.Data(conn.NewDiff(conn.Insert, []string{"1"}, map[string]conn.Value{"a": {String: strp("x")}}), offset.Empty, offset.SequentialID(1)),
			conn.FinishedSourceResult(true),
		},
		errs: []error{nil, nil, nil},
	}
	writer := &fakeWriter{}

	if err := pump(reader, writer); err != nil {
		t.Fatalf("pump: %v", err)
	}
	if len(writer.written) != 1 {
		t.Fatalf("writer received %d records, want 1", len(writer.written))
	}
	if writer.written[0].Sign != 1 {
		t.Errorf("Sign for an Insert event = %d, want 1", writer.written[0].Sign)
	}
	if len(writer.flushes) != 2 {
		t.Fatalf("writer.Flush called %d times, want 2 (FinishedSource + terminal Finished)", len(writer.flushes))
	}
	if !writer.flushes[0] {
		t.Error("the FinishedSource flush must pass its commit_allowed value through")
	}
}

func TestPumpSignOfDeleteIsNegative(t *testing.T) {
	reader := &fakeReader{
		results: []conn.ReadResult{
			conn.Data(conn.NewDiff(conn.Delete, []string{"1"}, map[string]conn.Value{"a": {String: strp("x")}}), offset.Empty, offset.SequentialID(1)),
		},
		errs: []error{nil},
	}
	writer := &fakeWriter{}
	if err := pump(reader, writer); err != nil {
		t.Fatalf("pump: %v", err)
	}
	if len(writer.written) != 1 || writer.written[0].Sign != -1 {
		t.Fatalf("Sign for a Delete event = %+v, want -1", writer.written)
	}
}

func TestPumpStopsAfterTooManyConsecutiveErrors(t *testing.T) {
	readErr := errors.New("transient")
	reader := &fakeReader{
		results: []conn.ReadResult{{}, {}, {}},
		errs:    []error{readErr, readErr, readErr},
		maxErrs: 1,
	}
	writer := &fakeWriter{}

	err := pump(reader, writer)
	if err == nil {
		t.Fatal("pump must return an error once consecutive errors exceed MaxAllowedConsecutiveErrors")
	}
}

func TestPumpTreatsEachSuccessfulReadAsResettingTheErrorCount(t *testing.T) {
	readErr := errors.New("transient")
	reader := &fakeReader{
		results: []conn.ReadResult{{}, conn.NewSourceResult(nil), {}, conn.Finished()},
		errs:    []error{readErr, nil, readErr, nil},
		maxErrs: 1,
	}
	writer := &fakeWriter{}
	if err := pump(reader, writer); err != nil {
		t.Fatalf("pump must tolerate isolated errors separated by successful reads, got: %v", err)
	}
}

func TestToWriteContextCarriesDiffValuesAndKey(t *testing.T) {
	result := conn.Data(
		conn.NewDiff(conn.Insert, []string{"42"}, map[string]conn.Value{"a": {String: strp("x")}}),
		offset.Empty, offset.SequentialID(1),
	)
	wc := toWriteContext(result)
	if wc.Values["a"].String == nil || *wc.Values["a"].String != "x" {
		t.Errorf("toWriteContext did not carry Diff values through: %+v", wc.Values)
	}
	if string(wc.Key) != "42" {
		t.Errorf("toWriteContext key = %q, want 42", wc.Key)
	}
}

func TestSignOf(t *testing.T) {
	if signOf(conn.Insert) != 1 {
		t.Error("signOf(Insert) must be 1")
	}
	if signOf(conn.Upsert) != 1 {
		t.Error("signOf(Upsert) must be 1")
	}
	if signOf(conn.Delete) != -1 {
		t.Error("signOf(Delete) must be -1")
	}
}
