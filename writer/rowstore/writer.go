// Package rowstore implements the row-store writer of spec.md §4.9: a
// batching database/sql sink that executes one prepared statement per
// buffered record inside a single transaction on flush, grounded on
// rclone's backend/sqlite Exec-per-row idiom.
package rowstore

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/flowcore/connio/conn"
	"github.com/flowcore/connio/internal/connerrs"
	"github.com/flowcore/connio/internal/connlog"
	"github.com/flowcore/connio/internal/connmetrics"
)

const backendName = "rowstore"

// Writer buffers rows up to MaxBatchSize and, on flush, executes each as
// a parameterized statement inside one transaction.
type Writer struct {
	db      *sql.DB
	table   string
	columns []string

	// MaxBatchSize bounds how many buffered rows trigger an implicit
	// flush from Write itself, independent of the runtime's own
	// forced-flush schedule.
	MaxBatchSize int

	buf []conn.WriteContext
}

// New builds a row-store writer over table, inserting columns (in order)
// plus the synthetic time/diff columns on every row.
func New(db *sql.DB, table string, columns []string, maxBatchSize int) *Writer {
	if maxBatchSize <= 0 {
		maxBatchSize = 1000
	}
	return &Writer{db: db, table: table, columns: columns, MaxBatchSize: maxBatchSize}
}

// Write implements conn.Writer: buffers ctx, flushing once MaxBatchSize
// is reached.
func (w *Writer) Write(ctx conn.WriteContext) error {
	w.buf = append(w.buf, ctx)
	if len(w.buf) >= w.MaxBatchSize {
		return w.Flush(false)
	}
	return nil
}

// Flush implements conn.Writer: executes every buffered row inside one
// transaction. forced does not change the behaviour: an empty buffer is a
// no-op and a non-empty buffer is always flushed.
func (w *Writer) Flush(forced bool) error {
	if len(w.buf) == 0 {
		return nil
	}

	tx, err := w.db.Begin()
	if err != nil {
		return connerrs.New(connerrs.KindIO, "db.Begin", err)
	}

	query := w.insertStatement()
	stmt, err := tx.Prepare(query)
	if err != nil {
		_ = tx.Rollback()
		return connerrs.New(connerrs.KindIO, "tx.Prepare", err)
	}

	for _, row := range w.buf {
		args := w.args(row)
		if _, err := stmt.Exec(args...); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return connerrs.New(connerrs.KindIO, "stmt.Exec", err)
		}
	}
	_ = stmt.Close()

	if err := tx.Commit(); err != nil {
		return connerrs.New(connerrs.KindIO, "tx.Commit", err)
	}

	connmetrics.RowsWritten.WithLabelValues(backendName).Add(float64(len(w.buf)))
	connlog.Debugf(connlog.Name(backendName), "flushed %d rows to %s", len(w.buf), w.table)
	w.buf = w.buf[:0]
	return nil
}

// Retriable implements conn.Writer: a failed transaction may be retried
// wholesale.
func (w *Writer) Retriable() bool { return true }

// SingleThreaded implements conn.Writer: *sql.DB pools its own
// connections, so concurrent writers are safe.
func (w *Writer) SingleThreaded() bool { return false }

// Close flushes any buffered rows.
func (w *Writer) Close() error { return w.Flush(true) }

func (w *Writer) insertStatement() string {
	cols := append(append([]string{}, w.columns...), "time", "diff")
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", w.table, strings.Join(cols, ","), strings.Join(placeholders, ","))
}

func (w *Writer) args(row conn.WriteContext) []any {
	args := make([]any, 0, len(w.columns)+2)
	for _, col := range w.columns {
		args = append(args, scalarArg(row.Values[col]))
	}
	args = append(args, row.CommitTime.UnixMilli(), row.Sign)
	return args
}

func scalarArg(v conn.Value) any {
	switch {
	case v.Null:
		return nil
	case v.Bool != nil:
		return *v.Bool
	case v.Int != nil:
		return *v.Int
	case v.Float != nil:
		return *v.Float
	case v.String != nil:
		return *v.String
	case v.Bytes != nil:
		return v.Bytes
	default:
		return nil
	}
}
