package msgbus

import (
	"testing"

	"github.com/flowcore/connio/conn"
)

func float64ptr(v float64) *float64 { return &v }
func int64ptr(v int64) *int64       { return &v }
func boolptr(v bool) *bool          { return &v }

func TestFieldBytesPrefersBytesThenStringThenScalars(t *testing.T) {
	if got := fieldBytes(conn.Value{Bytes: []byte("raw")}); string(got) != "raw" {
		t.Errorf("Bytes field: got %q", got)
	}
	s := "hello"
	if got := fieldBytes(conn.Value{String: &s}); string(got) != "hello" {
		t.Errorf("String field: got %q", got)
	}
	if got := fieldBytes(conn.Value{Int: int64ptr(42)}); string(got) != "42" {
		t.Errorf("Int field: got %q", got)
	}
	if got := fieldBytes(conn.Value{Float: float64ptr(1.5)}); string(got) != "1.5" {
		t.Errorf("Float field: got %q", got)
	}
	if got := fieldBytes(conn.Value{Bool: boolptr(true)}); string(got) != "true" {
		t.Errorf("Bool field: got %q", got)
	}
	if got := fieldBytes(conn.Value{}); got != nil {
		t.Errorf("empty Value: got %v, want nil", got)
	}
}

func TestEncodeValuesFallsBackToValueField(t *testing.T) {
	s := "payload"
	got := encodeValues(map[string]conn.Value{"value": {String: &s}})
	if string(got) != "payload" {
		t.Errorf("encodeValues = %q, want %q", got, "payload")
	}
	if got := encodeValues(map[string]conn.Value{"other": {String: &s}}); got != nil {
		t.Errorf("encodeValues with no \"value\" field = %v, want nil", got)
	}
}

func TestWriterSurfacesPendingErrorBeforeProducing(t *testing.T) {
	w := NewWriter(nil, "orders")
	w.pendingErr = errPrior

	err := w.Write(conn.WriteContext{})
	if err == nil {
		t.Fatal("expected Write to surface a previously recorded producer error")
	}
	if w.pendingErr != nil {
		t.Error("Write must clear pendingErr once it has surfaced it")
	}
}

func TestWriterRetriableAndSingleThreaded(t *testing.T) {
	w := NewWriter(nil, "orders")
	if !w.Retriable() {
		t.Error("message-bus writer must report Retriable() = true")
	}
	if w.SingleThreaded() {
		t.Error("message-bus writer must report SingleThreaded() = false")
	}
}

var errPrior = fmtError("broker rejected the previous record")

type fmtError string

func (e fmtError) Error() string { return string(e) }
