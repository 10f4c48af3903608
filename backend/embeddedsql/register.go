package embeddedsql

import (
	"strings"

	"github.com/flowcore/connio/internal/registry"
)

func init() {
	registry.RegisterReader("embeddedsql", newFromOptions)
}

// newFromOptions builds an embedded-SQL reader from string options:
// path, table, columns (comma-separated), persistent_id (must be empty).
func newFromOptions(opts map[string]string) (any, error) {
	var columns []string
	if c := opts["columns"]; c != "" {
		columns = strings.Split(c, ",")
	}
	return Open(opts["path"], opts["table"], columns, opts["persistent_id"])
}
