package fsreader

import (
	"testing"

	"github.com/flowcore/connio/backend/fsscan"
)

func TestParseMode(t *testing.T) {
	cases := []struct {
		in   string
		want fsscan.Mode
	}{
		{"", fsscan.Streaming},
		{"streaming", fsscan.Streaming},
		{"static", fsscan.Static},
	}
	for _, c := range cases {
		got, err := parseMode(c.in)
		if err != nil {
			t.Fatalf("parseMode(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("parseMode(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseModeRejectsUnknown(t *testing.T) {
	if _, err := parseMode("bogus"); err == nil {
		t.Error("parseMode must reject an unrecognized mode string")
	}
}

func TestNewFromOptionsBuildsReader(t *testing.T) {
	dir := t.TempDir()
	result, err := newFromOptions(map[string]string{
		"pattern": dir + "/*.txt",
		"mode":    "static",
	})
	if err != nil {
		t.Fatalf("newFromOptions: %v", err)
	}
	r, ok := result.(*Reader)
	if !ok {
		t.Fatalf("newFromOptions returned %T, want *Reader", result)
	}
	defer r.Close()
	if r.method != ByLine {
		t.Errorf("default method = %v, want ByLine", r.method)
	}
}

func TestNewDSVFromOptionsUsesFirstByteOfDelimiter(t *testing.T) {
	dir := t.TempDir()
	result, err := newDSVFromOptions(map[string]string{
		"pattern":   dir + "/*.csv",
		"mode":      "static",
		"delimiter": ";",
	})
	if err != nil {
		t.Fatalf("newDSVFromOptions: %v", err)
	}
	r, ok := result.(*DSVReader)
	if !ok {
		t.Fatalf("newDSVFromOptions returned %T, want *DSVReader", result)
	}
	defer r.Close()
	if r.delim != ';' {
		t.Errorf("delim = %q, want ';'", r.delim)
	}
}
