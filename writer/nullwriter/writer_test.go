package nullwriter

import (
	"testing"

	"github.com/flowcore/connio/conn"
)

func TestWriterDiscardsEverything(t *testing.T) {
	w := New()
	if err := w.Write(conn.WriteContext{}); err != nil {
		t.Errorf("Write: %v", err)
	}
	if err := w.Flush(true); err != nil {
		t.Errorf("Flush: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if !w.Retriable() {
		t.Error("null writer must report Retriable() = true")
	}
	if w.SingleThreaded() {
		t.Error("null writer must report SingleThreaded() = false")
	}
}
