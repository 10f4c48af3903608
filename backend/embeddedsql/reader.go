// Package embeddedsql implements the embedded-SQL reader of spec.md §4.7:
// a polled full-table reload diffed against the previous snapshot,
// reusing database/sql exactly as rclone's backend/sqlite does, with the
// diff algorithm grounded on the original Rust SqliteReader.
package embeddedsql

import (
	"container/list"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/flowcore/connio/conn"
	"github.com/flowcore/connio/internal/connerrs"
	"github.com/flowcore/connio/internal/connmetrics"
	"github.com/flowcore/connio/offset"
)

const backendName = "embeddedsql"

// pollInterval matches the original SqliteReader's wait_period: how long
// to sleep before the next data_version check when the version is
// unchanged.
const pollInterval = 500 * time.Millisecond

// dataVersionPragma is queried on every poll; SQLite bumps it whenever
// any connection commits a change to the database file, which is the
// only reliable cross-connection change signal (rusqlite hooks only fire
// for changes on the same connection).
const dataVersionPragma = "data_version"

// Reader implements conn.Reader over one table, polling PRAGMA
// data_version and, on change, reloading the whole table and diffing it
// against the previously stored row snapshot.
type Reader struct {
	db        *sql.DB
	table     string
	columns   []string

	lastDataVersion   *int64
	storedState       map[int64]map[string]conn.Value
	queuedUpdates     *list.List // of conn.ReadResult
}

// Open opens a SQLite database file and builds a Reader over table,
// selecting columns plus the implicit rowid as the diff key.
// persistentID must be empty: an embedded-SQL source has no durable
// change history to resume from, so requesting persistence for it is
// rejected at construction time rather than silently ignored (spec.md
// §4.7, §9).
func Open(dbPath, table string, columns []string, persistentID string) (*Reader, error) {
	if persistentID != "" {
		return nil, connerrs.NewFatal(connerrs.KindEmbeddedSQL, "embeddedsql.Open",
			fmt.Errorf("persistence is not supported for an embedded-SQL data source"))
	}
	db, err := sql.Open("sqlite3", "file:"+dbPath)
	if err != nil {
		return nil, connerrs.New(connerrs.KindEmbeddedSQL, "sql.Open", err)
	}
	return &Reader{
		db:            db,
		table:         table,
		columns:       columns,
		storedState:   make(map[int64]map[string]conn.Value),
		queuedUpdates: list.New(),
	}, nil
}

func (r *Reader) String() string { return fmt.Sprintf("embeddedsql(%s)", r.table) }

// StorageType implements conn.Reader.
func (r *Reader) StorageType() conn.StorageType { return conn.StorageEmbeddedSQL }

// MaxAllowedConsecutiveErrors implements conn.Reader.
func (r *Reader) MaxAllowedConsecutiveErrors() int { return 0 }

// Close closes the underlying database handle.
func (r *Reader) Close() error {
	if err := r.db.Close(); err != nil {
		return connerrs.New(connerrs.KindEmbeddedSQL, "db.Close", err)
	}
	return nil
}

// Seek accepts an empty frontier (nothing to resume) and fails with a
// fatal error for any non-empty one: an embedded-SQL source has no
// persisted change history to replay from, so it cannot resume past where
// it last left off (spec.md §4.7; persistent IDs are also rejected at
// construction time for this backend).
func (r *Reader) Seek(f offset.Frontier) error {
	if len(f) == 0 {
		return nil
	}
	return connerrs.NewFatal(connerrs.KindEmbeddedSQL, "embeddedsql.Seek",
		fmt.Errorf("seek is not supported for an embedded-SQL source: no persistent history of changes is available"))
}

func (r *Reader) dataVersion() (int64, error) {
	var v int64
	row := r.db.QueryRow(fmt.Sprintf("PRAGMA %s", dataVersionPragma))
	if err := row.Scan(&v); err != nil {
		return 0, err
	}
	return v, nil
}

// Read implements conn.Reader: drains any queued diff events first, then
// polls data_version and reloads the table on change.
func (r *Reader) Read() (conn.ReadResult, error) {
	for {
		if r.queuedUpdates.Len() > 0 {
			front := r.queuedUpdates.Remove(r.queuedUpdates.Front())
			return front.(conn.ReadResult), nil
		}

		version, err := r.dataVersion()
		if err != nil {
			connmetrics.ReadErrors.WithLabelValues(backendName, "embedded-sql").Inc()
			return conn.ReadResult{}, connerrs.New(connerrs.KindEmbeddedSQL, "pragma.data_version", err)
		}

		if r.lastDataVersion == nil || *r.lastDataVersion != version {
			if err := r.loadTable(); err != nil {
				connmetrics.ReadErrors.WithLabelValues(backendName, "embedded-sql").Inc()
				return conn.ReadResult{}, err
			}
			r.lastDataVersion = &version
			connmetrics.SourcesOpened.WithLabelValues(backendName).Inc()
			return conn.NewSourceResult(nil), nil
		}

		time.Sleep(pollInterval)
	}
}

// loadTable reloads every row and diffs it against storedState, queuing
// Delete+Insert pairs for changed rows, Insert for new rows, and Delete
// for rows that disappeared (spec.md §4.7). When any event was queued, a
// FinishedSource{commit_allowed: true} sentinel is appended so downstream
// knows this reload batch is complete.
func (r *Reader) loadTable() error {
	query := fmt.Sprintf("SELECT %s,_rowid_ FROM %s", strings.Join(r.columns, ","), r.table)
	rows, err := r.db.Query(query)
	if err != nil {
		return connerrs.New(connerrs.KindEmbeddedSQL, "db.Query", err)
	}
	defer rows.Close()

	present := make(map[int64]bool)
	scanDest := make([]any, len(r.columns)+1)
	rawVals := make([]sql.RawBytes, len(r.columns)+1)
	for i := range scanDest {
		scanDest[i] = &rawVals[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanDest...); err != nil {
			return connerrs.New(connerrs.KindEmbeddedSQL, "rows.Scan", err)
		}
		rowid, err := parseRowID(rawVals[len(r.columns)])
		if err != nil {
			return connerrs.New(connerrs.KindEmbeddedSQL, "parse rowid", err)
		}

		values := make(map[string]conn.Value, len(r.columns))
		for i, name := range r.columns {
			values[name] = toValue(rawVals[i])
		}
		present[rowid] = true

		keyTuple := []string{fmt.Sprintf("%d", rowid)}
		if prior, ok := r.storedState[rowid]; ok {
			if !valuesEqual(prior, values) {
				r.queuedUpdates.PushBack(conn.Data(conn.NewDiff(conn.Delete, keyTuple, prior), offset.Empty, offset.SequentialID(0)))
				r.queuedUpdates.PushBack(conn.Data(conn.NewDiff(conn.Insert, keyTuple, values), offset.Empty, offset.SequentialID(0)))
				r.storedState[rowid] = values
			}
		} else {
			r.queuedUpdates.PushBack(conn.Data(conn.NewDiff(conn.Insert, keyTuple, values), offset.Empty, offset.SequentialID(0)))
			r.storedState[rowid] = values
		}
	}
	if err := rows.Err(); err != nil {
		return connerrs.New(connerrs.KindEmbeddedSQL, "rows.Err", err)
	}

	for rowid, values := range r.storedState {
		if present[rowid] {
			continue
		}
		keyTuple := []string{fmt.Sprintf("%d", rowid)}
		r.queuedUpdates.PushBack(conn.Data(conn.NewDiff(conn.Delete, keyTuple, values), offset.Empty, offset.SequentialID(0)))
		delete(r.storedState, rowid)
	}

	if r.queuedUpdates.Len() > 0 {
		r.queuedUpdates.PushBack(conn.FinishedSourceResult(true))
	}
	return nil
}

func parseRowID(raw sql.RawBytes) (int64, error) {
	var v int64
	_, err := fmt.Sscanf(string(raw), "%d", &v)
	return v, err
}

func toValue(raw sql.RawBytes) conn.Value {
	if raw == nil {
		return conn.Value{Null: true}
	}
	b := append([]byte(nil), raw...)
	s := string(b)
	return conn.Value{String: &s, Bytes: b}
}

func valuesEqual(a, b map[string]conn.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok {
			return false
		}
		if av.Null != bv.Null {
			return false
		}
		if av.String == nil || bv.String == nil {
			if av.String != bv.String {
				return false
			}
			continue
		}
		if *av.String != *bv.String {
			return false
		}
	}
	return true
}
