// Package all imports every backend that self-registers into
// internal/registry, the way rclone's backend/all pulls in every
// provider. Only backends fully constructible from a string options map
// register themselves this way; backends that take a preconstructed
// transport handle (object-store bucket, message-bus client, search
// index client) are wired directly by their caller instead (spec.md §6
// "transport-level client construction... injected preconstructed").
package all

import (
	_ "github.com/flowcore/connio/backend/embeddedsql"
	_ "github.com/flowcore/connio/backend/fsreader"
	_ "github.com/flowcore/connio/writer/nullwriter"
	_ "github.com/flowcore/connio/writer/rowstore"
)
