package fsreader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flowcore/connio/backend/fsscan"
	"github.com/flowcore/connio/offset"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %q: %v", path, err)
	}
}

func TestLineReaderReadsLinesThenFinishesSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "one\ntwo\nthree\n")

	r, err := New(filepath.Join(dir, "*.txt"), "", fsscan.Static, ByLine, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Close()

	result, err := r.Read()
	if err != nil {
		t.Fatalf("Read (NewSource): %v", err)
	}
	if !result.IsNewSource() {
		t.Fatalf("expected a NewSource result, got %+v", result)
	}

	var lines []string
	for i := 0; i < 3; i++ {
		result, err = r.Read()
		if err != nil {
			t.Fatalf("Read (line %d): %v", i, err)
		}
		if !result.IsData() {
			t.Fatalf("expected a Data result for line %d, got %+v", i, result)
		}
		lines = append(lines, string(result.Context().RawBytes()))
		_, val := result.Offset()
		if val.TotalEntriesRead() != uint64(i+1) {
			t.Errorf("line %d: total_entries_read = %d, want %d", i, val.TotalEntriesRead(), i+1)
		}
	}
	want := []string{"one\n", "two\n", "three\n"}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}

	result, err = r.Read()
	if err != nil {
		t.Fatalf("Read (FinishedSource): %v", err)
	}
	if !result.IsFinishedSource() {
		t.Fatalf("expected a FinishedSource result, got %+v", result)
	}
	if !result.CommitAllowed() {
		t.Error("a finished static-mode source with no planned reinsertion must allow commit")
	}

	result, err = r.Read()
	if err != nil {
		t.Fatalf("Read (Finished): %v", err)
	}
	if !result.IsFinished() {
		t.Fatalf("expected a Finished result once static mode is exhausted, got %+v", result)
	}
}

func TestLineReaderFullModeReturnsWholeFileAsOneRecord(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "one\ntwo\nthree\n")

	r, err := New(filepath.Join(dir, "*.txt"), "", fsscan.Static, Full, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Close()

	if _, err := r.Read(); err != nil {
		t.Fatalf("Read (NewSource): %v", err)
	}

	result, err := r.Read()
	if err != nil {
		t.Fatalf("Read (data): %v", err)
	}
	if !result.IsData() {
		t.Fatalf("expected a Data result, got %+v", result)
	}
	if string(result.Context().RawBytes()) != "one\ntwo\nthree\n" {
		t.Errorf("Full mode must return the entire file as one record, got %q", result.Context().RawBytes())
	}

	result, err = r.Read()
	if err != nil {
		t.Fatalf("Read (FinishedSource): %v", err)
	}
	if !result.IsFinishedSource() {
		t.Fatalf("expected a FinishedSource result immediately after the single Full record, got %+v", result)
	}
}

func TestLineReaderSeekResumesAtByteOffset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, "one\ntwo\nthree\n")

	r, err := New(filepath.Join(dir, "*.txt"), "", fsscan.Static, ByLine, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Close()

	f := offset.New()
	f.Advance(offset.Empty, offset.FilePosition(1, path, uint64(len("one\n"))))
	if err := r.Seek(f); err != nil {
		t.Fatalf("Seek: %v", err)
	}

	result, err := r.Read()
	if err != nil {
		t.Fatalf("Read after seek: %v", err)
	}
	if !result.IsData() {
		t.Fatalf("expected a Data result after seek, got %+v", result)
	}
	if string(result.Context().RawBytes()) != "two\n" {
		t.Errorf("after seeking past the first line, expected to resume at %q, got %q", "two\n", result.Context().RawBytes())
	}
	_, val := result.Offset()
	if val.TotalEntriesRead() != 2 {
		t.Errorf("total_entries_read after seek = %d, want 2", val.TotalEntriesRead())
	}
}
