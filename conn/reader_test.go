package conn

import (
	"testing"
	"time"

	"github.com/flowcore/connio/offset"
)

func TestReadResultVariants(t *testing.T) {
	data := Data(NewRawBytes(Insert, []byte("x")), offset.Empty, offset.FilePosition(1, "a", 1))
	if !data.IsData() || data.IsNewSource() || data.IsFinishedSource() || data.IsFinished() {
		t.Fatal("Data result reported the wrong variant")
	}
	key, val := data.Offset()
	if !key.IsEmpty() || val.TotalEntriesRead() != 1 {
		t.Errorf("unexpected offset on Data result: %v, %v", key, val)
	}

	meta := &SourceMetadata{Path: "a.txt", ModifiedAt: time.Unix(0, 0)}
	ns := NewSourceResult(meta)
	if !ns.IsNewSource() {
		t.Fatal("NewSourceResult reported the wrong variant")
	}
	if ns.Metadata().Path != "a.txt" {
		t.Errorf("Metadata().Path = %q", ns.Metadata().Path)
	}

	fin := FinishedSourceResult(false)
	if !fin.IsFinishedSource() || fin.CommitAllowed() {
		t.Error("FinishedSourceResult(false) must report commit_allowed=false")
	}

	done := Finished()
	if !done.IsFinished() {
		t.Fatal("Finished() reported the wrong variant")
	}
}
