// Package msgbus implements the message-bus reader and writer of spec.md
// §4.6 on top of franz-go, grounded on the consumer-loop shape used by
// Grafana Tempo's livestore partition reader (AddConsumePartitions +
// PollFetches) and on the producer-header convention from the original
// Rust KafkaWriter.
package msgbus

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/flowcore/connio/conn"
	"github.com/flowcore/connio/internal/connerrs"
	"github.com/flowcore/connio/internal/connlog"
	"github.com/flowcore/connio/internal/connmetrics"
	"github.com/flowcore/connio/offset"
)

const backendName = "msgbus"

// maxAllowedConsecutiveErrors matches the original KafkaReader: message-bus
// sources tolerate transient broker errors far more readily than a
// filesystem or object-store read.
const maxAllowedConsecutiveErrors = 32

// Reader implements conn.Reader over one topic using a shared *kgo.Client
// the caller owns and closes independently (the client may be multiplexed
// across several topics/partitions). positionsForSeek implements the
// "lazy seek" described in spec.md §4.6: a consumer group assigns
// partitions asynchronously, so Seek only records the target offsets;
// Read fast-forwards past them once the assignment actually delivers
// messages from that partition.
type Reader struct {
	client *kgo.Client
	topic  string

	positionsForSeek map[int32]int64

	pending []*kgo.Record
	pendErr error
}

// New builds a message-bus reader over topic using an already-configured
// client (consumer group membership, brokers, TLS etc. are the client's
// concern, not this reader's).
func New(client *kgo.Client, topic string) *Reader {
	return &Reader{client: client, topic: topic, positionsForSeek: make(map[int32]int64)}
}

func (r *Reader) String() string { return fmt.Sprintf("msgbus(%s)", r.topic) }

// StorageType implements conn.Reader.
func (r *Reader) StorageType() conn.StorageType { return conn.StorageMessageBus }

// MaxAllowedConsecutiveErrors implements conn.Reader.
func (r *Reader) MaxAllowedConsecutiveErrors() int { return maxAllowedConsecutiveErrors }

// Close does not close the underlying client: it is shared and owned by
// the caller, matching the original KafkaReader's Drop being a no-op on
// the consumer handle itself.
func (r *Reader) Close() error { return nil }

// Seek records the offsets a future Read should fast-forward past, one
// per partition. It never seeks the underlying client directly, since
// seeking only works on partitions already assigned to this consumer —
// an assignment this reader does not control (spec.md §4.6, §9 "lazy
// seek").
func (r *Reader) Seek(f offset.Frontier) error {
	for key, val := range f {
		if key.IsEmpty() {
			connlog.Errorf(r, "unexpected empty offset key in message-bus frontier: %s", val)
			continue
		}
		if val.Kind() != offset.KindBusOffset {
			connlog.Errorf(r, "unexpected type of offset in message-bus frontier: %s", val)
			continue
		}
		if key.Topic != r.topic {
			connlog.Errorf(r, "unexpected topic name, expected %s got %s", r.topic, key.Topic)
			continue
		}
		r.positionsForSeek[key.Partition] = val.Int()
	}
	return nil
}

// Read implements conn.Reader: polls until a record survives the lazy
// seek check, then emits it as a Data result keyed by its
// (topic, partition) offset channel.
func (r *Reader) Read() (conn.ReadResult, error) {
	ctx := context.Background()
	for {
		rec, err := r.nextRecord(ctx)
		if err != nil {
			connmetrics.ReadErrors.WithLabelValues(backendName, "bus-client").Inc()
			return conn.ReadResult{}, connerrs.New(connerrs.KindBusClient, "kgo.PollFetches", err)
		}

		if lastReadOffset, ok := r.positionsForSeek[rec.Partition]; ok {
			if lastReadOffset >= rec.Offset {
				r.client.SetOffsets(map[string]map[int32]kgo.EpochOffset{
					rec.Topic: {rec.Partition: {Epoch: -1, Offset: lastReadOffset + 1}},
				})
				continue
			}
			delete(r.positionsForSeek, rec.Partition)
		}

		key := offset.MessageBusPartition(rec.Topic, rec.Partition)
		val := offset.BusOffset(rec.Offset)
		ctx := conn.NewKeyValue(nilIfEmpty(rec.Key), nilIfEmpty(rec.Value))
		connmetrics.RecordsRead.WithLabelValues(backendName).Inc()
		return conn.Data(ctx, key, val), nil
	}
}

// nextRecord drains one buffered fetch at a time, polling for a new batch
// of fetches once the buffer is empty.
func (r *Reader) nextRecord(ctx context.Context) (*kgo.Record, error) {
	for len(r.pending) == 0 {
		fetches := r.client.PollFetches(ctx)
		if err := fetches.Err(); err != nil {
			return nil, err
		}
		r.pending = fetches.Records()
	}
	rec := r.pending[0]
	r.pending = r.pending[1:]
	return rec, nil
}

func nilIfEmpty(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}
