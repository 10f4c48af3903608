package rowstore

import (
	"database/sql"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/flowcore/connio/internal/connerrs"
	"github.com/flowcore/connio/internal/registry"
)

func init() {
	registry.RegisterWriter("rowstore", newFromOptions)
}

// newFromOptions builds a row-store writer from string options: path
// (SQLite file), table, columns (comma-separated), max_batch_size.
func newFromOptions(opts map[string]string) (any, error) {
	db, err := sql.Open("sqlite3", "file:"+opts["path"])
	if err != nil {
		return nil, connerrs.New(connerrs.KindIO, "sql.Open", err)
	}
	var columns []string
	if c := opts["columns"]; c != "" {
		columns = strings.Split(c, ",")
	}
	maxBatch, _ := strconv.Atoi(opts["max_batch_size"])
	return New(db, opts["table"], columns, maxBatch), nil
}
