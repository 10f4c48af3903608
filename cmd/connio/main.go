// Command connio is a demo CLI that wires one registered reader backend
// to one registered writer backend and pumps events between them,
// exercising the library the way rclone's cmd package exercises its own
// backends end to end.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
