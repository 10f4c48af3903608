// Package searchindex implements the search-index writer of spec.md
// §4.9: a batching sink that bulk-indexes buffered payloads via
// elastic/go-elasticsearch, failing loudly on any non-2xx bulk response.
package searchindex

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/flowcore/connio/conn"
	"github.com/flowcore/connio/internal/connerrs"
	"github.com/flowcore/connio/internal/connlog"
	"github.com/flowcore/connio/internal/connmetrics"
)

const backendName = "searchindex"

// Writer buffers documents up to MaxBatchSize and, on flush, issues one
// bulk request per buffered batch.
type Writer struct {
	client *elasticsearch.Client
	index  string

	// MaxBatchSize bounds how many buffered documents trigger an
	// implicit flush from Write itself.
	MaxBatchSize int

	// IDField optionally names the field supplying each document's _id;
	// when empty, Elasticsearch assigns one.
	IDField string

	buf []conn.WriteContext
}

// New builds a search-index writer targeting index.
func New(client *elasticsearch.Client, index string, maxBatchSize int) *Writer {
	if maxBatchSize <= 0 {
		maxBatchSize = 500
	}
	return &Writer{client: client, index: index, MaxBatchSize: maxBatchSize}
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

// Flush implements conn.Writer: encodes the buffer as one newline-
// delimited bulk request body and issues it. Any non-2xx response, or
// any per-item failure reported in the bulk response, is returned as an
// error (spec.md §4.9 "fails loudly on non-2xx").
func (w *Writer) Flush(forced bool) error {
	if len(w.buf) == 0 {
		return nil
	}

	var body bytes.Buffer
	for _, row := range w.buf {
		meta := map[string]any{"index": map[string]any{"_index": w.index}}
		if w.IDField != "" {
			if v, ok := row.Values[w.IDField]; ok {
				if id := scalarString(v); id != "" {
					meta["index"].(map[string]any)["_id"] = id
				}
			}
		}
		doc := documentOf(row)

		metaLine, err := json.Marshal(meta)
		if err != nil {
			return connerrs.New(connerrs.KindSerialization, "json.Marshal(meta)", err)
		}
		docLine, err := json.Marshal(doc)
		if err != nil {
			return connerrs.New(connerrs.KindSerialization, "json.Marshal(doc)", err)
		}
		body.Write(metaLine)
		body.WriteByte('\n')
		body.Write(docLine)
		body.WriteByte('\n')
	}

	resp, err := w.client.Bulk(bytes.NewReader(body.Bytes()), w.client.Bulk.WithIndex(w.index))
	if err != nil {
		return connerrs.New(connerrs.KindIO, "es.Bulk", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		msg, _ := io.ReadAll(resp.Body)
		return connerrs.New(connerrs.KindIO, "es.Bulk", fmt.Errorf("bulk request failed: %s: %s", resp.Status(), msg))
	}

	var parsed struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			Status int `json:"status"`
			Error  any `json:"error"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return connerrs.New(connerrs.KindSerialization, "decode bulk response", err)
	}
	if parsed.Errors {
		return connerrs.New(connerrs.KindIO, "es.Bulk", fmt.Errorf("bulk request reported per-item errors: %+v", parsed.Items))
	}

	connmetrics.RowsWritten.WithLabelValues(backendName).Add(float64(len(w.buf)))
	connlog.Debugf(connlog.Name(backendName), "bulk-indexed %d documents into %s", len(w.buf), w.index)
	w.buf = w.buf[:0]
	return nil
}

// Retriable implements conn.Writer: a failed bulk request may be
// retried wholesale.
func (w *Writer) Retriable() bool { return true }

// SingleThreaded implements conn.Writer: the underlying client is safe
// for concurrent use.
func (w *Writer) SingleThreaded() bool { return false }

// Close flushes any buffered documents.
func (w *Writer) Close() error { return w.Flush(true) }

func documentOf(row conn.WriteContext) map[string]any {
	doc := make(map[string]any, len(row.Values)+2)
	for name, v := range row.Values {
		doc[name] = jsonValue(v)
	}
	doc["_pw_time"] = row.CommitTime.UnixMilli()
	doc["_pw_diff"] = row.Sign
	return doc
}

func jsonValue(v conn.Value) any {
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

func scalarString(v conn.Value) string {
	switch {
	case v.String != nil:
		return *v.String
	case v.Int != nil:
		return strconv.FormatInt(*v.Int, 10)
	case v.Bytes != nil:
		return string(v.Bytes)
	default:
		return ""
	}
}
