// Package tuple implements rows and schemas: TupleDescription, Tuple, and
// the RecordID lifecycle that ties a Tuple to its physical slot.
package tuple

import (
	"fmt"
	"strings"

	"storemy/pkg/types"
)

// FieldSpec names one column of a schema. Name is advisory; equality
// between schemas ignores it entirely.
type FieldSpec struct {
	Type types.Type
	Name string
}

// TupleDescription is an ordered, non-empty sequence of typed columns. Two
// descriptions are equal iff their type sequences match; names never
// participate in equality.
type TupleDescription struct {
	fields []FieldSpec
}

// NewTupleDescription builds a schema from parallel type/name slices. types
// must be non-empty; names may be shorter than types or contain empty
// strings for unnamed columns.
func NewTupleDescription(fieldTypes []types.Type, names []string) (*TupleDescription, error) {
	if len(fieldTypes) == 0 {
		return nil, fmt.Errorf("tuple: schema must have at least one field")
	}
	fields := make([]FieldSpec, len(fieldTypes))
	for i, t := range fieldTypes {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		fields[i] = FieldSpec{Type: t, Name: name}
	}
	return &TupleDescription{fields: fields}, nil
}

func (td *TupleDescription) NumFields() int { return len(td.fields) }

func (td *TupleDescription) FieldType(i int) (types.Type, error) {
	if i < 0 || i >= len(td.fields) {
		return 0, fmt.Errorf("tuple: field index %d out of range", i)
	}
	return td.fields[i].Type, nil
}

func (td *TupleDescription) FieldName(i int) (string, error) {
	if i < 0 || i >= len(td.fields) {
		return "", fmt.Errorf("tuple: field index %d out of range", i)
	}
	return td.fields[i].Name, nil
}

// FindFieldIndex returns the index of the first field named name.
func (td *TupleDescription) FindFieldIndex(name string) (int, error) {
	for i, f := range td.fields {
		if f.Name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("tuple: no field named %q", name)
}

// TupleSize returns the fixed on-disk byte width of a tuple matching this
// schema: the sum of each field's fixed length.
func (td *TupleDescription) TupleSize() int {
	size := 0
	for _, f := range td.fields {
		size += f.Type.FixedLen()
	}
	return size
}

// Equals compares type sequences only, per contract.
func (td *TupleDescription) Equals(other *TupleDescription) bool {
	if other == nil || len(td.fields) != len(other.fields) {
		return false
	}
	for i := range td.fields {
		if td.fields[i].Type != other.fields[i].Type {
			return false
		}
	}
	return true
}

func (td *TupleDescription) String() string {
	parts := make([]string, len(td.fields))
	for i, f := range td.fields {
		parts[i] = fmt.Sprintf("%s(%s)", f.Name, f.Type)
	}
	return strings.Join(parts, ", ")
}

// Merge concatenates two schemas, as used to build a join's output schema.
func Merge(a, b *TupleDescription) *TupleDescription {
	fields := make([]FieldSpec, 0, len(a.fields)+len(b.fields))
	fields = append(fields, a.fields...)
	fields = append(fields, b.fields...)
	return &TupleDescription{fields: fields}
}
