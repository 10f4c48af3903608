// Package connlog is the logging facade shared by every backend in connio.
//
// It mirrors rclone's fs.Logf/fs.Debugf/fs.Errorf convention: callers pass
// the loggable object (anything with a String() method, or nil) plus a
// printf-style message, and the facade prefixes the rendered object.
package connlog

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Loggable is satisfied by any reader/writer/source handle that wants to
// identify itself in log lines (a file path, an object key, a topic
// partition, ...).
type Loggable interface {
	String() string
}

var std = logrus.StandardLogger()

// SetLevel adjusts the global log verbosity, e.g. from a CLI -v flag.
func SetLevel(level logrus.Level) {
	std.SetLevel(level)
}

func render(o Loggable, format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if o == nil {
		return msg
	}
	return fmt.Sprintf("%s: %s", o.String(), msg)
}

// Debugf logs a low-level trace message about o (or global state if o is nil).
func Debugf(o Loggable, format string, args ...any) {
	std.Debug(render(o, format, args...))
}

// Logf logs an informational message about o.
func Logf(o Loggable, format string, args ...any) {
	std.Info(render(o, format, args...))
}

// Infof is an alias of Logf kept for readability at call sites that want to
// stress "this is routine" rather than "this is noteworthy".
func Infof(o Loggable, format string, args ...any) {
	std.Info(render(o, format, args...))
}

// Errorf logs a recoverable error concerning o.
func Errorf(o Loggable, format string, args ...any) {
	std.Error(render(o, format, args...))
}

// Fatalf logs an unrecoverable condition and aborts the process, matching
// rclone's fs.Fatalf — reserved for configuration-time failures that make
// continuing meaningless.
func Fatalf(o Loggable, format string, args ...any) {
	std.Fatal(render(o, format, args...))
}

// stringFunc adapts a bare string to Loggable for call sites that only have
// a name, not a full object (e.g. a path before its metadata is known).
type stringFunc string

func (s stringFunc) String() string { return string(s) }

// Name wraps a plain string so it can be passed where a Loggable is expected.
func Name(s string) Loggable { return stringFunc(s) }
