package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowcore/connio/conn"
	"github.com/flowcore/connio/internal/connlog"
	"github.com/flowcore/connio/internal/registry"
)

var (
	readerName string
	writerName string
	readerOpts map[string]string
	writerOpts map[string]string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "pump events from one registered reader to one registered writer until the reader reports Finished",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&readerName, "reader", "", "registered reader backend name (see 'connio list')")
	runCmd.Flags().StringVar(&writerName, "writer", "", "registered writer backend name (see 'connio list')")
	runCmd.Flags().StringToStringVar(&readerOpts, "reader-opt", nil, "reader option key=value, repeatable")
	runCmd.Flags().StringToStringVar(&writerOpts, "writer-opt", nil, "writer option key=value, repeatable")
	_ = runCmd.MarkFlagRequired("reader")
	_ = runCmd.MarkFlagRequired("writer")
}

func runRun(cmd *cobra.Command, args []string) error {
	rdrAny, err := registry.NewReader(readerName, readerOpts)
	if err != nil {
		return err
	}
	reader, ok := rdrAny.(conn.Reader)
	if !ok {
		return fmt.Errorf("connio: backend %q did not build a conn.Reader", readerName)
	}
	defer reader.Close()

	wtrAny, err := registry.NewWriter(writerName, writerOpts)
	if err != nil {
		return err
	}
	writer, ok := wtrAny.(conn.Writer)
	if !ok {
		return fmt.Errorf("connio: backend %q did not build a conn.Writer", writerName)
	}
	defer writer.Close()

	return pump(reader, writer)
}

// pump drives reader.Read in a loop, forwarding Data events to writer and
// flushing on every FinishedSource, matching the runtime loop shape
// described in spec.md §5 (single-threaded, blocking read, commit
// boundaries at FinishedSource).
func pump(reader conn.Reader, writer conn.Writer) error {
	consecutiveErrors := 0
	for {
		result, err := reader.Read()
		if err != nil {
			consecutiveErrors++
			connlog.Errorf(connlog.Name(readerName), "read error (%d consecutive): %v", consecutiveErrors, err)
			if consecutiveErrors > reader.MaxAllowedConsecutiveErrors() {
				return fmt.Errorf("connio: too many consecutive read errors from %q: %w", readerName, err)
			}
			continue
		}
		consecutiveErrors = 0

		switch {
		case result.IsData():
			ctx := toWriteContext(result)
			if err := writer.Write(ctx); err != nil {
				return fmt.Errorf("connio: write to %q failed: %w", writerName, err)
			}
		case result.IsNewSource():
			if meta := result.Metadata(); meta != nil {
				connlog.Logf(connlog.Name(readerName), "opened new source %s", meta.Path)
			}
		case result.IsFinishedSource():
			if err := writer.Flush(result.CommitAllowed()); err != nil {
				return fmt.Errorf("connio: flush of %q failed: %w", writerName, err)
			}
		case result.IsFinished():
			return writer.Flush(true)
		}
	}
}

// toWriteContext adapts a Data ReadResult's Context into a WriteContext.
// Only the Diff variant carries pre-typed values directly usable by a
// sink; RawBytes/TokenizedFields/KeyValue payloads are handed to a
// parser upstream of the writer in a real pipeline (out of scope here,
// per spec.md §2 "the parser layer ... treated as an external
// collaborator") — this demo CLI forwards what it can construct
// directly so 'connio run' is useful against Diff-producing readers
// (embedded SQL, external subject) out of the box.
func toWriteContext(result conn.ReadResult) conn.WriteContext {
	ctx := result.Context()
	wc := conn.WriteContext{CommitTime: time.Now(), Sign: signOf(ctx.EventKind())}
	if ctx.IsDiff() {
		wc.Values = ctx.Values()
		if len(ctx.KeyTuple()) > 0 {
			wc.Key = []byte(ctx.KeyTuple()[0])
		}
	}
	return wc
}

func signOf(evt conn.EventKind) int64 {
	if evt == conn.Delete {
		return -1
	}
	return 1
}
