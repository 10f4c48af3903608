package fsreader

import (
	"fmt"

	"github.com/flowcore/connio/backend/fsscan"
	"github.com/flowcore/connio/internal/registry"
)

func init() {
	registry.RegisterReader("fs", newFromOptions)
	registry.RegisterReader("fs-dsv", newDSVFromOptions)
}

// newFromOptions builds a line/full filesystem reader from string options:
// pattern (required), object_pattern, mode ("static"|"streaming"),
// method ("by-line"|"full"), persistent_id.
func newFromOptions(opts map[string]string) (any, error) {
	mode, err := parseMode(opts["mode"])
	if err != nil {
		return nil, err
	}
	method := ByLine
	if opts["method"] == "full" {
		method = Full
	}
	return New(opts["pattern"], opts["object_pattern"], mode, method, opts["persistent_id"])
}

func newDSVFromOptions(opts map[string]string) (any, error) {
	mode, err := parseMode(opts["mode"])
	if err != nil {
		return nil, err
	}
	delim := byte(',')
	if d := opts["delimiter"]; d != "" {
		delim = d[0]
	}
	return NewDSV(opts["pattern"], opts["object_pattern"], mode, delim, opts["persistent_id"])
}

func parseMode(s string) (fsscan.Mode, error) {
	switch s {
	case "", "streaming":
		return fsscan.Streaming, nil
	case "static":
		return fsscan.Static, nil
	default:
		return 0, fmt.Errorf("fsreader: unknown mode %q", s)
	}
}
