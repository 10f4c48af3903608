// Package offset implements the frontier algebra from the connector spec:
// per-source offset keys and values, their ordering, and the frontier
// merge rule used by the persistence layer.
package offset

import "fmt"

// Key identifies a logical position channel within a source. The
// single-stream case used by every backend except the message bus is the
// Empty variable; the zero Key is not Empty (its IsEmpty reports false).
type Key struct {
	// empty is true for single-stream sources (filesystem, object store,
	// embedded SQL, external subject). When false, Topic/Partition name a
	// message-bus partition channel.
	empty     bool
	Topic     string
	Partition int32
}

// Empty is the key used by single-stream sources.
var Empty = Key{empty: true}

// MessageBusPartition builds the key for one topic-partition channel.
func MessageBusPartition(topic string, partition int32) Key {
	return Key{Topic: topic, Partition: partition}
}

// IsEmpty reports whether k is the single-stream Empty key.
func (k Key) IsEmpty() bool { return k.empty }

func (k Key) String() string {
	if k.empty {
		return "<empty>"
	}
	return fmt.Sprintf("%s[%d]", k.Topic, k.Partition)
}

// Kind tags which Value variant a Key's channel carries, used to detect
// the "variant mismatch" bug condition in Merge.
type Kind int

const (
	KindFilePosition Kind = iota
	KindObjectStorePosition
	KindBusOffset
	KindSequentialID
)

// Value is the position within a channel. Exactly one constructor should
// be used to build a Value; Kind() reports which one did.
type Value struct {
	kind Kind

	// FilePosition / ObjectStorePosition fields.
	totalEntriesRead uint64
	path             string
	bytesOffset      uint64

	// BusOffset / SequentialID field.
	seq int64
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// FilePosition builds the filesystem-reader offset variant.
func FilePosition(totalEntriesRead uint64, path string, bytesOffset uint64) Value {
	return Value{kind: KindFilePosition, totalEntriesRead: totalEntriesRead, path: path, bytesOffset: bytesOffset}
}

// ObjectStorePosition builds the object-store-reader offset variant.
func ObjectStorePosition(totalEntriesRead uint64, objectKey string, bytesOffset uint64) Value {
	return Value{kind: KindObjectStorePosition, totalEntriesRead: totalEntriesRead, path: objectKey, bytesOffset: bytesOffset}
}

// BusOffset builds the message-bus offset variant.
func BusOffset(v int64) Value {
	return Value{kind: KindBusOffset, seq: v}
}

// SequentialID builds the external-subject offset variant.
func SequentialID(v uint64) Value {
	return Value{kind: KindSequentialID, seq: int64(v)}
}

// TotalEntriesRead returns the entry counter for FilePosition/ObjectStorePosition values.
func (v Value) TotalEntriesRead() uint64 { return v.totalEntriesRead }

// Path returns the file path (FilePosition) or object key (ObjectStorePosition).
func (v Value) Path() string { return v.path }

// BytesOffset returns the in-object byte cursor for FilePosition/ObjectStorePosition values.
func (v Value) BytesOffset() uint64 { return v.bytesOffset }

// Int returns the raw integer for BusOffset/SequentialID values.
func (v Value) Int() int64 { return v.seq }

func (v Value) String() string {
	switch v.kind {
	case KindFilePosition:
		return fmt.Sprintf("file(%s@%d, n=%d)", v.path, v.bytesOffset, v.totalEntriesRead)
	case KindObjectStorePosition:
		return fmt.Sprintf("object(%s@%d, n=%d)", v.path, v.bytesOffset, v.totalEntriesRead)
	case KindBusOffset:
		return fmt.Sprintf("bus(%d)", v.seq)
	case KindSequentialID:
		return fmt.Sprintf("seq(%d)", v.seq)
	default:
		return "<unknown offset>"
	}
}

// Less reports whether v orders strictly before other under its variant's
// comparator. FilePosition and ObjectStorePosition order by
// total_entries_read (spec.md §3); BusOffset and SequentialID order by
// their natural integer value. Comparing values of different kinds always
// reports false — callers must check Kind() first, exactly as Merge does.
func (v Value) Less(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindFilePosition, KindObjectStorePosition:
		return v.totalEntriesRead < other.totalEntriesRead
	case KindBusOffset, KindSequentialID:
		return v.seq < other.seq
	default:
		return false
	}
}

// Max returns the larger of v and other under Less, assuming both share a
// Kind (callers of Merge already guard on this).
func Max(v, other Value) Value {
	if v.Less(other) {
		return other
	}
	return v
}
