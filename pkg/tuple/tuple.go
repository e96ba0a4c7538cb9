package tuple

import (
	"bytes"
	"fmt"
	"io"

	"storemy/pkg/types"
)

// Tuple is a row valued according to a TupleDescription. RecordID is set
// once the tuple is placed on a page by an insert and cleared on deletion;
// a Tuple with a nil RecordID has not yet been (or is no longer) physically
// located.
type Tuple struct {
	Desc     *TupleDescription
	Fields   []types.Field
	RecordID *RecordID
}

// NewTuple builds a tuple over desc; fields must match desc's arity.
func NewTuple(desc *TupleDescription, fields []types.Field) (*Tuple, error) {
	if len(fields) != desc.NumFields() {
		return nil, fmt.Errorf("tuple: expected %d fields, got %d", desc.NumFields(), len(fields))
	}
	for i, f := range fields {
		want, _ := desc.FieldType(i)
		if f.GetType() != want {
			return nil, fmt.Errorf("tuple: field %d has type %v, schema wants %v", i, f.GetType(), want)
		}
	}
	return &Tuple{Desc: desc, Fields: fields}, nil
}

func (t *Tuple) Field(i int) (types.Field, error) {
	if i < 0 || i >= len(t.Fields) {
		return nil, fmt.Errorf("tuple: field index %d out of range", i)
	}
	return t.Fields[i], nil
}

// Serialize writes the tuple's fields in schema order to exactly
// Desc.TupleSize() bytes.
func (t *Tuple) Serialize(w io.Writer) error {
	for _, f := range t.Fields {
		if err := f.Serialize(w); err != nil {
			return fmt.Errorf("tuple: serialize field: %w", err)
		}
	}
	return nil
}

// Deserialize reads exactly desc.TupleSize() bytes from buf into a new
// Tuple, in schema order.
func Deserialize(buf []byte, desc *TupleDescription) (*Tuple, error) {
	r := bytes.NewReader(buf)
	fields := make([]types.Field, desc.NumFields())
	for i := 0; i < desc.NumFields(); i++ {
		ft, _ := desc.FieldType(i)
		var (
			f   types.Field
			err error
		)
		switch ft {
		case types.INT32:
			f, err = types.DeserializeInt32Field(r)
		case types.STRING:
			f, err = types.DeserializeStringField(r)
		default:
			return nil, fmt.Errorf("tuple: unknown field type %v", ft)
		}
		if err != nil {
			return nil, fmt.Errorf("tuple: deserialize field %d: %w", i, err)
		}
		fields[i] = f
	}
	return &Tuple{Desc: desc, Fields: fields}, nil
}

// Equals compares field values only; RecordID is location metadata and does
// not participate in value equality.
func (t *Tuple) Equals(other *Tuple) bool {
	if other == nil || len(t.Fields) != len(other.Fields) {
		return false
	}
	for i := range t.Fields {
		if !t.Fields[i].Equals(other.Fields[i]) {
			return false
		}
	}
	return true
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("%v", parts)
}
