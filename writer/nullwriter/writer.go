// Package nullwriter implements the null writer of spec.md §4.9: a sink
// that accepts everything and does nothing, for outputs whose side
// effects happen entirely in user code.
package nullwriter

import "github.com/flowcore/connio/conn"

// Writer is a conn.Writer that discards every record.
type Writer struct{}

// New builds a null writer.
func New() *Writer { return &Writer{} }

func (Writer) Write(conn.WriteContext) error { return nil }
func (Writer) Flush(bool) error              { return nil }
func (Writer) Retriable() bool               { return true }
func (Writer) SingleThreaded() bool          { return false }
func (Writer) Close() error                  { return nil }
