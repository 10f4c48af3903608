package fsreader

import (
	"path/filepath"
	"testing"

	"github.com/flowcore/connio/backend/fsscan"
	"github.com/flowcore/connio/offset"
)

func TestDSVReaderTokenizesFieldsPerLine(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.csv"), "a,b,c\n1,2,3\n")

	r, err := NewDSV(filepath.Join(dir, "*.csv"), "", fsscan.Static, ',', "")
	if err != nil {
		t.Fatalf("NewDSV: %v", err)
	}
	defer r.Close()

	if _, err := r.Read(); err != nil {
		t.Fatalf("Read (NewSource): %v", err)
	}

	header, err := r.Read()
	if err != nil {
		t.Fatalf("Read (header): %v", err)
	}
	if !header.IsData() {
		t.Fatalf("expected a Data result for the header row, got %+v", header)
	}
	if got := header.Context().Fields(); len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Errorf("header fields = %v, want [a b c]", got)
	}

	row, err := r.Read()
	if err != nil {
		t.Fatalf("Read (row): %v", err)
	}
	if !row.IsData() {
		t.Fatalf("expected a Data result for the data row, got %+v", row)
	}
	if got := row.Context().Fields(); len(got) != 3 || got[1] != "2" {
		t.Errorf("row fields = %v, want [1 2 3]", got)
	}

	fin, err := r.Read()
	if err != nil {
		t.Fatalf("Read (FinishedSource): %v", err)
	}
	if !fin.IsFinishedSource() {
		t.Fatalf("expected a FinishedSource result, got %+v", fin)
	}
}

func TestDSVReaderSeekPastHeaderReplaysHeaderAsDeferred(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.csv")
	writeFile(t, path, "a,b\n1,2\n3,4\n")

	r, err := NewDSV(filepath.Join(dir, "*.csv"), "", fsscan.Static, ',', "")
	if err != nil {
		t.Fatalf("NewDSV: %v", err)
	}
	defer r.Close()

	f := offset.New()
	f.Advance(offset.Empty, offset.FilePosition(1, path, uint64(len("a,b\n"))))
	if err := r.Seek(f); err != nil {
		t.Fatalf("Seek: %v", err)
	}

	replayed, err := r.Read()
	if err != nil {
		t.Fatalf("Read (replayed header): %v", err)
	}
	if !replayed.IsData() {
		t.Fatalf("expected the replayed header as a Data result, got %+v", replayed)
	}
	fields := replayed.Context().Fields()
	if len(fields) != 2 || fields[0] != "a" || fields[1] != "b" {
		t.Errorf("replayed header fields = %v, want [a b]", fields)
	}

	row, err := r.Read()
	if err != nil {
		t.Fatalf("Read (first row after seek): %v", err)
	}
	if !row.IsData() {
		t.Fatalf("expected a Data result, got %+v", row)
	}
	rowFields := row.Context().Fields()
	if len(rowFields) != 2 || rowFields[0] != "1" || rowFields[1] != "2" {
		t.Errorf("first row after seek = %v, want [1 2]", rowFields)
	}
}

func TestDSVReaderSeekWithZeroOffsetDoesNotReplayHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.csv")
	writeFile(t, path, "a,b\n1,2\n")

	r, err := NewDSV(filepath.Join(dir, "*.csv"), "", fsscan.Static, ',', "")
	if err != nil {
		t.Fatalf("NewDSV: %v", err)
	}
	defer r.Close()

	f := offset.New()
	f.Advance(offset.Empty, offset.FilePosition(0, path, 0))
	if err := r.Seek(f); err != nil {
		t.Fatalf("Seek: %v", err)
	}

	result, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !result.IsData() {
		t.Fatalf("expected a Data result, got %+v", result)
	}
	fields := result.Context().Fields()
	if len(fields) != 2 || fields[0] != "a" {
		t.Errorf("expected the header to be read as the first ordinary record, got %v", fields)
	}
}
