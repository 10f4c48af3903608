// Package registry maps backend names to constructors, in the spirit of
// rclone's fs.RegInfo/fs.Register pattern: each backend package adds
// itself here from an init(), and only cmd/connio ever looks names up —
// a pipeline wired together in code never touches this package.
package registry

import "fmt"

// ReaderFactory builds a reader from a name->value options map, mirroring
// rclone's configmap.Mapper-driven backend construction.
type ReaderFactory func(opts map[string]string) (any, error)

// WriterFactory builds a writer from a name->value options map.
type WriterFactory func(opts map[string]string) (any, error)

var readers = map[string]ReaderFactory{}
var writers = map[string]WriterFactory{}

// RegisterReader adds a reader backend under name. Calling it twice for
// the same name is a programming error and panics, matching rclone's own
// fs.Register behavior on duplicate registration.
func RegisterReader(name string, factory ReaderFactory) {
	if _, exists := readers[name]; exists {
		panic(fmt.Sprintf("registry: reader backend %q already registered", name))
	}
	readers[name] = factory
}

// RegisterWriter adds a writer backend under name.
func RegisterWriter(name string, factory WriterFactory) {
	if _, exists := writers[name]; exists {
		panic(fmt.Sprintf("registry: writer backend %q already registered", name))
	}
	writers[name] = factory
}

// NewReader resolves name to its factory and builds a reader from opts.
func NewReader(name string, opts map[string]string) (any, error) {
	factory, ok := readers[name]
	if !ok {
		return nil, fmt.Errorf("registry: no reader backend registered under %q", name)
	}
	return factory(opts)
}

// NewWriter resolves name to its factory and builds a writer from opts.
func NewWriter(name string, opts map[string]string) (any, error) {
	factory, ok := writers[name]
	if !ok {
		return nil, fmt.Errorf("registry: no writer backend registered under %q", name)
	}
	return factory(opts)
}

// ReaderNames lists every registered reader backend name.
func ReaderNames() []string {
	names := make([]string, 0, len(readers))
	for name := range readers {
		names = append(names, name)
	}
	return names
}

// WriterNames lists every registered writer backend name.
func WriterNames() []string {
	names := make([]string, 0, len(writers))
	for name := range writers {
		names = append(names, name)
	}
	return names
}
