// Package fsreader implements the file readers that glue fsscan.Scanner
// output to byte streams: a line/full-object reader (spec.md §4.3) and a
// delimited-record reader (spec.md §4.4). Grounded on rclone's
// backend/local Object.Open + BufReader idiom and on the original Rust
// FilesystemReader's read/seek loop.
package fsreader

import (
	"bufio"
	"io"
	"os"
	"time"

	"github.com/flowcore/connio/backend/fsscan"
	"github.com/flowcore/connio/conn"
	"github.com/flowcore/connio/internal/connerrs"
	"github.com/flowcore/connio/internal/connlog"
	"github.com/flowcore/connio/internal/connmetrics"
	"github.com/flowcore/connio/offset"
)

// ReadMethod selects how a file's bytes are split into records.
type ReadMethod int

const (
	// ByLine reads up to and including the next '\n'; end of file is
	// signalled by a zero-byte read.
	ByLine ReadMethod = iota
	// Full reads the whole object as a single record.
	Full
)

func (m ReadMethod) String() string {
	if m == Full {
		return "full"
	}
	return "by-line"
}

const backendName = "fs"

// Reader implements conn.Reader over a polled directory tree, backed by an
// fsscan.Scanner (spec.md §4.3).
type Reader struct {
	scanner      *fsscan.Scanner
	method       ReadMethod
	persistentID string

	file   *os.File
	buf    *bufio.Reader
	pos    int64
	total  uint64
	deferredResult *conn.ReadResult
}

// New builds a filesystem line/full reader over pattern, recursing into
// directories matching objectPattern.
func New(pattern, objectPattern string, mode fsscan.Mode, method ReadMethod, persistentID string) (*Reader, error) {
	scanner, err := fsscan.New(pattern, objectPattern, mode, persistentID)
	if err != nil {
		return nil, connerrs.New(connerrs.KindIO, "fsscan.New", err)
	}
	return &Reader{scanner: scanner, method: method, persistentID: persistentID}, nil
}

func (r *Reader) String() string {
	if p, ok := r.scanner.CurrentOffsetFile(); ok {
		return p
	}
	return "fsreader"
}

// StorageType implements conn.Reader.
func (r *Reader) StorageType() conn.StorageType { return conn.StorageFS }

// MaxAllowedConsecutiveErrors implements conn.Reader: filesystem sources
// are not tolerant of repeated errors (spec.md §4.1).
func (r *Reader) MaxAllowedConsecutiveErrors() int { return 0 }

// Close releases the open file handle and the scanner's cache directory.
func (r *Reader) Close() error {
	if r.file != nil {
		_ = r.file.Close()
	}
	return r.scanner.Close()
}

// Seek decodes a FilePosition offset, restores scanner state via
// seek_to_file, and positions the underlying file at bytes_offset
// (spec.md §4.3 "Seek").
func (r *Reader) Seek(f offset.Frontier) error {
	val, ok := f.Get(offset.Empty)
	if !ok {
		return nil
	}
	if val.Kind() != offset.KindFilePosition {
		connlog.Errorf(r, "incorrect offset kind in filesystem frontier: %s", val)
		return nil
	}

	if err := r.scanner.SeekToFile(val.Path()); err != nil {
		return connerrs.New(connerrs.KindIO, "fsscan.SeekToFile", err)
	}

	file, err := os.Open(val.Path())
	if err != nil {
		return connerrs.New(connerrs.KindIO, "os.Open", err)
	}
	if _, err := file.Seek(int64(val.BytesOffset()), io.SeekStart); err != nil {
		_ = file.Close()
		return connerrs.New(connerrs.KindIO, "file.Seek", err)
	}
	r.file = file
	r.buf = bufio.NewReader(file)
	r.pos = int64(val.BytesOffset())
	r.total = val.TotalEntriesRead()
	return nil
}

// Read implements conn.Reader.
func (r *Reader) Read() (conn.ReadResult, error) {
	if r.deferredResult != nil {
		res := *r.deferredResult
		r.deferredResult = nil
		return res, nil
	}

	for {
		if r.buf != nil {
			line, n, err := r.readNext()
			if err != nil {
				connmetrics.ReadErrors.WithLabelValues(backendName, "io").Inc()
				return conn.ReadResult{}, connerrs.New(connerrs.KindIO, "readNext", err)
			}
			if n > 0 || r.method == Full {
				r.total++
				r.pos += int64(n)

				path, _ := r.scanner.CurrentOffsetFile()
				evt, _ := r.scanner.CurrentEventKind()
				val := offset.FilePosition(r.total, path, uint64(r.pos))

				if r.method == Full {
					commitAllowed := !r.scanner.HasPlannedInsertion()
					res := conn.FinishedSourceResult(commitAllowed)
					r.deferredResult = &res
					_ = r.file.Close()
					r.file, r.buf = nil, nil
				}

				connmetrics.RecordsRead.WithLabelValues(backendName).Inc()
				return conn.Data(conn.NewRawBytes(evt, line), offset.Empty, val), nil
			}

			_ = r.file.Close()
			r.file, r.buf = nil, nil
			commitAllowed := !r.scanner.HasPlannedInsertion()
			return conn.FinishedSourceResult(commitAllowed), nil
		}

		result, err := r.scanner.NextAction()
		if err != nil {
			connmetrics.ReadErrors.WithLabelValues(backendName, "io").Inc()
			return conn.ReadResult{}, connerrs.New(connerrs.KindIO, "fsscan.NextAction", err)
		}
		if result != nil {
			if selected, ok := r.scanner.CurrentFile(); ok {
				file, err := os.Open(selected)
				if err != nil {
					return conn.ReadResult{}, connerrs.New(connerrs.KindIO, "os.Open", err)
				}
				r.file = file
				r.buf = bufio.NewReader(file)
				r.pos = 0
				connmetrics.SourcesOpened.WithLabelValues(backendName).Inc()
			}
			return *result, nil
		}

		if r.scanner.PollingEnabled() {
			time.Sleep(fsscan.PollInterval)
			continue
		}
		return conn.Finished(), nil
	}
}

// readNext returns the next record's bytes (and its length) under the
// reader's ReadMethod.
func (r *Reader) readNext() ([]byte, int, error) {
	if r.method == Full {
		b, err := io.ReadAll(r.buf)
		if err != nil {
			return nil, 0, err
		}
		return b, len(b), nil
	}

	line, err := r.buf.ReadBytes('\n')
	if err != nil && err != io.EOF {
		return nil, 0, err
	}
	if len(line) == 0 {
		return nil, 0, nil
	}
	return line, len(line), nil
}

