package embeddedsql

import (
	"database/sql"
	"testing"

	"github.com/flowcore/connio/conn"
	"github.com/flowcore/connio/offset"
)

func TestOpenRejectsNonEmptyPersistentID(t *testing.T) {
	_, err := Open(t.TempDir()+"/db.sqlite", "t", []string{"a"}, "some-persistent-id")
	if err == nil {
		t.Fatal("Open must reject a non-empty persistent id for an embedded-SQL source")
	}
}

func TestSeekRejectsNonEmptyFrontier(t *testing.T) {
	r := &Reader{storedState: map[int64]map[string]conn.Value{}}
	f := offset.New()
	f.Advance(offset.Empty, offset.SequentialID(1))

	if err := r.Seek(f); err == nil {
		t.Fatal("Seek must reject any non-empty frontier for an embedded-SQL source")
	}
}

func TestSeekAcceptsEmptyFrontier(t *testing.T) {
	r := &Reader{storedState: map[int64]map[string]conn.Value{}}
	if err := r.Seek(offset.New()); err != nil {
		t.Errorf("Seek with an empty frontier must succeed, got: %v", err)
	}
}

func TestParseRowID(t *testing.T) {
	v, err := parseRowID(sql.RawBytes("42"))
	if err != nil {
		t.Fatalf("parseRowID: %v", err)
	}
	if v != 42 {
		t.Errorf("parseRowID(\"42\") = %d, want 42", v)
	}
}

func TestToValueNullVsPresent(t *testing.T) {
	null := toValue(nil)
	if !null.Null {
		t.Error("toValue(nil) must report Null = true")
	}

	present := toValue(sql.RawBytes("hello"))
	if present.Null {
		t.Error("toValue with bytes must not report Null")
	}
	if present.String == nil || *present.String != "hello" {
		t.Errorf("toValue(\"hello\").String = %v, want \"hello\"", present.String)
	}
}

func TestValuesEqual(t *testing.T) {
	a := map[string]conn.Value{"x": toValue(sql.RawBytes("1"))}
	b := map[string]conn.Value{"x": toValue(sql.RawBytes("1"))}
	c := map[string]conn.Value{"x": toValue(sql.RawBytes("2"))}

	if !valuesEqual(a, b) {
		t.Error("identical row snapshots must compare equal")
	}
	if valuesEqual(a, c) {
		t.Error("differing row snapshots must not compare equal")
	}

	d := map[string]conn.Value{"x": toValue(sql.RawBytes("1")), "y": toValue(sql.RawBytes("2"))}
	if valuesEqual(a, d) {
		t.Error("snapshots with a differing number of columns must not compare equal")
	}

	nullA := map[string]conn.Value{"x": toValue(nil)}
	nullB := map[string]conn.Value{"x": toValue(nil)}
	if !valuesEqual(nullA, nullB) {
		t.Error("two null values must compare equal")
	}
}
