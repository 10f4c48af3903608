package searchindex

import (
	"testing"
	"time"

	"github.com/flowcore/connio/conn"
)

func strp(s string) *string { return &s }
func intp(v int64) *int64   { return &v }

func TestDocumentOfIncludesSyntheticFields(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	row := conn.WriteContext{
		Values:     map[string]conn.Value{"name": {String: strp("a")}},
		CommitTime: now,
		Sign:       1,
	}
	doc := documentOf(row)
	if doc["name"] != "a" {
		t.Errorf("documentOf[name] = %v, want a", doc["name"])
	}
	if doc["_pw_time"] != now.UnixMilli() {
		t.Errorf("documentOf[_pw_time] = %v, want %d", doc["_pw_time"], now.UnixMilli())
	}
	if doc["_pw_diff"] != int64(1) {
		t.Errorf("documentOf[_pw_diff] = %v, want 1", doc["_pw_diff"])
	}
}

func TestJSONValueVariants(t *testing.T) {
	if jsonValue(conn.Value{Null: true}) != nil {
		t.Error("Null value must become nil")
	}
	if got := jsonValue(conn.Value{Int: intp(5)}); got != int64(5) {
		t.Errorf("Int value = %v, want 5", got)
	}
	if got := jsonValue(conn.Value{String: strp("x")}); got != "x" {
		t.Errorf("String value = %v, want x", got)
	}
}

func TestScalarStringPrefersStringThenIntThenBytes(t *testing.T) {
	if got := scalarString(conn.Value{String: strp("abc")}); got != "abc" {
		t.Errorf("scalarString(String) = %q, want abc", got)
	}
	if got := scalarString(conn.Value{Int: intp(42)}); got != "42" {
		t.Errorf("scalarString(Int) = %q, want 42", got)
	}
	if got := scalarString(conn.Value{Bytes: []byte("raw")}); got != "raw" {
		t.Errorf("scalarString(Bytes) = %q, want raw", got)
	}
	if got := scalarString(conn.Value{}); got != "" {
		t.Errorf("scalarString(empty) = %q, want empty string", got)
	}
}

func TestNewDefaultsMaxBatchSize(t *testing.T) {
	w := New(nil, "idx", 0)
	if w.MaxBatchSize != 500 {
		t.Errorf("MaxBatchSize default = %d, want 500", w.MaxBatchSize)
	}
}

func TestWriterRetriableAndSingleThreaded(t *testing.T) {
	w := New(nil, "idx", 10)
	if !w.Retriable() {
		t.Error("search-index writer must report Retriable() = true")
	}
	if w.SingleThreaded() {
		t.Error("search-index writer must report SingleThreaded() = false")
	}
}

func TestFlushOnEmptyBufferIsNoop(t *testing.T) {
	w := New(nil, "idx", 10)
	if err := w.Flush(true); err != nil {
		t.Errorf("Flush on an empty buffer must not touch the client, got: %v", err)
	}
}
