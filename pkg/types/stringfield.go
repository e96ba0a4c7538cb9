package types

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"storemy/pkg/primitives"
)

// StringField is a UTF-8 string value truncated to MaxStringLen bytes on
// construction. Its wire form is a 4-byte big-endian length prefix followed
// by exactly MaxStringLen bytes, zero-padded past the logical length.
type StringField struct {
	Value string
}

func NewStringField(v string) *StringField {
	if len(v) > MaxStringLen {
		v = v[:MaxStringLen]
	}
	return &StringField{Value: v}
}

func (f *StringField) GetType() Type { return STRING }

func (f *StringField) Serialize(w io.Writer) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(f.Value))); err != nil {
		return err
	}
	buf := make([]byte, MaxStringLen)
	copy(buf, f.Value)
	_, err := w.Write(buf)
	return err
}

func (f *StringField) String() string { return f.Value }

func (f *StringField) Equals(other Field) bool {
	o, ok := other.(*StringField)
	return ok && o.Value == f.Value
}

func (f *StringField) Compare(op primitives.Op, other Field) (bool, error) {
	o, ok := other.(*StringField)
	if !ok {
		return false, fmt.Errorf("types: cannot compare STRING to %v", other.GetType())
	}
	c := strings.Compare(f.Value, o.Value)
	switch op {
	case primitives.Equals:
		return c == 0, nil
	case primitives.NotEqual:
		return c != 0, nil
	case primitives.LessThan:
		return c < 0, nil
	case primitives.LessThanOrEqual:
		return c <= 0, nil
	case primitives.GreaterThan:
		return c > 0, nil
	case primitives.GreaterThanOrEqual:
		return c >= 0, nil
	default:
		return false, fmt.Errorf("types: unsupported op %v", op)
	}
}

// DeserializeStringField reads a 4-byte length prefix plus MaxStringLen
// bytes, trimming the trailing zero padding.
func DeserializeStringField(r io.Reader) (*StringField, error) {
	var length uint32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return nil, err
	}
	buf := make([]byte, MaxStringLen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	if int(length) > MaxStringLen {
		length = MaxStringLen
	}
	return &StringField{Value: string(buf[:length])}, nil
}
