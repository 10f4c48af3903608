package columnstore

import (
	"fmt"

	"github.com/apache/arrow/go/v12/arrow"

	"github.com/flowcore/connio/internal/connerrs"
)

// FieldKind tags the user-declared logical type of one schema column,
// prior to its mapping onto an Arrow type (spec.md §4.9 "Schema types
// map").
type FieldKind int

const (
	FieldBool FieldKind = iota
	FieldInt
	FieldDuration
	FieldFloat
	FieldPointer
	FieldString
	FieldJSON
	FieldBytes
	FieldNaiveDatetime
	FieldUTCDatetime
)

// Field is one user-declared output column.
type Field struct {
	Name string
	Kind FieldKind
}

// arrowType maps a declared FieldKind onto its target Arrow type:
// bool->bool, int/duration->i64, float->f64, pointer/string/json->utf8,
// bytes->binary, naive-datetime->timestamp-us (no tz),
// utc-datetime->timestamp-us (tz=UTC). Unsupported kinds fail writer
// construction rather than silently degrading (spec.md §4.9).
func arrowType(k FieldKind) (arrow.DataType, error) {
	switch k {
	case FieldBool:
		return arrow.FixedWidthTypes.Boolean, nil
	case FieldInt, FieldDuration:
		return arrow.PrimitiveTypes.Int64, nil
	case FieldFloat:
		return arrow.PrimitiveTypes.Float64, nil
	case FieldPointer, FieldString, FieldJSON:
		return arrow.BinaryTypes.String, nil
	case FieldBytes:
		return arrow.BinaryTypes.Binary, nil
	case FieldNaiveDatetime:
		return &arrow.TimestampType{Unit: arrow.Microsecond}, nil
	case FieldUTCDatetime:
		return &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}, nil
	default:
		return nil, connerrs.NewFatal(connerrs.KindSerialization, "columnstore.arrowType",
			fmt.Errorf("unsupported schema field kind %d", k))
	}
}

// buildSchema derives the full Arrow schema: the user's declared fields
// plus the two synthetic bookkeeping columns every row carries.
func buildSchema(fields []Field) (*arrow.Schema, error) {
	out := make([]arrow.Field, 0, len(fields)+2)
	for _, f := range fields {
		t, err := arrowType(f.Kind)
		if err != nil {
			return nil, err
		}
		out = append(out, arrow.Field{Name: f.Name, Type: t, Nullable: true})
	}
	out = append(out,
		arrow.Field{Name: "time", Type: arrow.PrimitiveTypes.Int64},
		arrow.Field{Name: "diff", Type: arrow.PrimitiveTypes.Int64},
	)
	return arrow.NewSchema(out, nil), nil
}
