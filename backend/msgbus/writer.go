package msgbus

import (
	"context"
	"strconv"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/flowcore/connio/conn"
	"github.com/flowcore/connio/internal/connerrs"
	"github.com/flowcore/connio/internal/connmetrics"
)

// Writer implements conn.Writer by producing one record per write to a
// fixed topic, tagging every record with the pathway_time/pathway_diff
// headers the original KafkaWriter attaches, plus any additional fields
// named in HeaderFields (spec.md §4.9 "message-bus writer").
type Writer struct {
	client *kgo.Client
	topic  string

	// KeyField names the WriteContext.Values entry used as the record
	// key. When empty, WriteContext.Key is used verbatim.
	KeyField string

	// HeaderFields lists extra field names copied into Kafka record
	// headers alongside pathway_time/pathway_diff.
	HeaderFields []string

	pendingErr error
}

// NewWriter builds a message-bus writer over topic using an
// already-configured producer client.
func NewWriter(client *kgo.Client, topic string) *Writer {
	return &Writer{client: client, topic: topic}
}

// Write implements conn.Writer: produces one record asynchronously and
// remembers the first production error so it surfaces on the next Flush
// or Write call, matching the fire-and-flush shape of a ThreadedProducer.
func (w *Writer) Write(ctx conn.WriteContext) error {
	if w.pendingErr != nil {
		err := w.pendingErr
		w.pendingErr = nil
		return connerrs.New(connerrs.KindBusClient, "kgo.Produce", err)
	}

	key := ctx.Key
	if w.KeyField != "" {
		if v, ok := ctx.Values[w.KeyField]; ok {
			key = fieldBytes(v)
		}
	}

	rec := &kgo.Record{
		Topic: w.topic,
		Key:   key,
		Value: encodeValues(ctx.Values),
		Headers: []kgo.RecordHeader{
			{Key: "pathway_time", Value: []byte(strconv.FormatInt(ctx.CommitTime.UnixMilli(), 10))},
			{Key: "pathway_diff", Value: []byte(strconv.FormatInt(ctx.Sign, 10))},
		},
	}
	for _, name := range w.HeaderFields {
		if v, ok := ctx.Values[name]; ok {
			rec.Headers = append(rec.Headers, kgo.RecordHeader{Key: name, Value: fieldBytes(v)})
		}
	}

	w.client.Produce(context.Background(), rec, func(_ *kgo.Record, err error) {
		if err != nil && w.pendingErr == nil {
			w.pendingErr = err
		}
	})
	connmetrics.RowsWritten.WithLabelValues(backendName).Inc()
	return nil
}

// Flush implements conn.Writer by blocking until every in-flight produce
// callback has run, surfacing the first error seen.
func (w *Writer) Flush(forced bool) error {
	if err := w.client.Flush(context.Background()); err != nil {
		return connerrs.New(connerrs.KindBusClient, "kgo.Flush", err)
	}
	if w.pendingErr != nil {
		err := w.pendingErr
		w.pendingErr = nil
		return connerrs.New(connerrs.KindBusClient, "kgo.Produce", err)
	}
	return nil
}

// Retriable implements conn.Writer: broker-level produce failures are
// transient.
func (w *Writer) Retriable() bool { return true }

// SingleThreaded implements conn.Writer: the underlying client is safe
// for concurrent Produce calls.
func (w *Writer) SingleThreaded() bool { return false }

// Close flushes outstanding records; the client itself is shared and
// owned by the caller.
func (w *Writer) Close() error { return w.Flush(true) }

func fieldBytes(v conn.Value) []byte {
	switch {
	case v.Bytes != nil:
		return v.Bytes
	case v.String != nil:
		return []byte(*v.String)
	case v.Int != nil:
		return []byte(strconv.FormatInt(*v.Int, 10))
	case v.Float != nil:
		return []byte(strconv.FormatFloat(*v.Float, 'g', -1, 64))
	case v.Bool != nil:
		return []byte(strconv.FormatBool(*v.Bool))
	default:
		return nil
	}
}

func encodeValues(values map[string]conn.Value) []byte {
	// A single scalar "value" field is the common case for a message-bus
	// sink (the rest travel as headers); fall back to its raw bytes.
	if v, ok := values["value"]; ok {
		return fieldBytes(v)
	}
	return nil
}
