package types

import (
	"encoding/binary"
	"fmt"
	"io"

	"storemy/pkg/primitives"
)

// Int32Field is a signed 32-bit integer value, serialized big-endian.
type Int32Field struct {
	Value int32
}

func NewInt32Field(v int32) *Int32Field { return &Int32Field{Value: v} }

func (f *Int32Field) GetType() Type { return INT32 }

func (f *Int32Field) Serialize(w io.Writer) error {
	return binary.Write(w, binary.BigEndian, f.Value)
}

func (f *Int32Field) String() string { return fmt.Sprintf("%d", f.Value) }

func (f *Int32Field) Equals(other Field) bool {
	o, ok := other.(*Int32Field)
	return ok && o.Value == f.Value
}

func (f *Int32Field) Compare(op primitives.Op, other Field) (bool, error) {
	o, ok := other.(*Int32Field)
	if !ok {
		return false, fmt.Errorf("types: cannot compare INT32 to %v", other.GetType())
	}
	switch op {
	case primitives.Equals:
		return f.Value == o.Value, nil
	case primitives.NotEqual:
		return f.Value != o.Value, nil
	case primitives.LessThan:
		return f.Value < o.Value, nil
	case primitives.LessThanOrEqual:
		return f.Value <= o.Value, nil
	case primitives.GreaterThan:
		return f.Value > o.Value, nil
	case primitives.GreaterThanOrEqual:
		return f.Value >= o.Value, nil
	default:
		return false, fmt.Errorf("types: unsupported op %v", op)
	}
}

// DeserializeInt32Field reads exactly 4 big-endian bytes.
func DeserializeInt32Field(r io.Reader) (*Int32Field, error) {
	var v int32
	if err := binary.Read(r, binary.BigEndian, &v); err != nil {
		return nil, err
	}
	return &Int32Field{Value: v}, nil
}
