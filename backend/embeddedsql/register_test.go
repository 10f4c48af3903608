package embeddedsql

import "testing"

func TestNewFromOptionsSplitsColumns(t *testing.T) {
	result, err := newFromOptions(map[string]string{
		"path":    "ignored.sqlite",
		"table":   "events",
		"columns": "a,b,c",
	})
	if err != nil {
		t.Fatalf("newFromOptions: %v", err)
	}
	r, ok := result.(*Reader)
	if !ok {
		t.Fatalf("newFromOptions returned %T, want *Reader", result)
	}
	defer r.Close()
	if len(r.columns) != 3 || r.columns[0] != "a" || r.columns[2] != "c" {
		t.Errorf("columns = %v, want [a b c]", r.columns)
	}
	if r.table != "events" {
		t.Errorf("table = %q, want events", r.table)
	}
}

func TestNewFromOptionsRejectsPersistentID(t *testing.T) {
	_, err := newFromOptions(map[string]string{
		"path":          "ignored.sqlite",
		"table":         "events",
		"persistent_id": "some-id",
	})
	if err == nil {
		t.Error("newFromOptions must reject a non-empty persistent_id")
	}
}

func TestNewFromOptionsWithoutColumns(t *testing.T) {
	result, err := newFromOptions(map[string]string{"path": "ignored.sqlite", "table": "events"})
	if err != nil {
		t.Fatalf("newFromOptions: %v", err)
	}
	r := result.(*Reader)
	defer r.Close()
	if len(r.columns) != 0 {
		t.Errorf("columns = %v, want empty", r.columns)
	}
}
