package tuple

import (
	"bytes"
	"testing"

	"storemy/pkg/types"
)

func TestTupleSerializeDeserializeRoundTrip(t *testing.T) {
	td, err := NewTupleDescription([]types.Type{types.INT32, types.STRING}, []string{"id", "name"})
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	tup, err := NewTuple(td, []types.Field{types.NewInt32Field(7), types.NewStringField("alice")})
	if err != nil {
		t.Fatalf("new tuple: %v", err)
	}
	var buf bytes.Buffer
	if err := tup.Serialize(&buf); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if buf.Len() != td.TupleSize() {
		t.Fatalf("expected %d bytes, got %d", td.TupleSize(), buf.Len())
	}
	got, err := Deserialize(buf.Bytes(), td)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if !got.Equals(tup) {
		t.Fatalf("round trip mismatch: got %v want %v", got, tup)
	}
}

func TestTupleDescriptionEqualsIgnoresNames(t *testing.T) {
	a, _ := NewTupleDescription([]types.Type{types.INT32, types.STRING}, []string{"id", "name"})
	b, _ := NewTupleDescription([]types.Type{types.INT32, types.STRING}, []string{"x", "y"})
	if !a.Equals(b) {
		t.Fatal("expected schemas with same type sequence but different names to be equal")
	}
}

func TestTupleDescriptionFindFieldIndexFirstMatch(t *testing.T) {
	td, _ := NewTupleDescription([]types.Type{types.INT32, types.INT32}, []string{"a", "a"})
	idx, err := td.FindFieldIndex("a")
	if err != nil || idx != 0 {
		t.Fatalf("expected first match at index 0, got %d err %v", idx, err)
	}
}

func TestMergeConcatenatesSchemas(t *testing.T) {
	a, _ := NewTupleDescription([]types.Type{types.INT32}, []string{"a"})
	b, _ := NewTupleDescription([]types.Type{types.STRING}, []string{"b"})
	merged := Merge(a, b)
	if merged.NumFields() != 2 {
		t.Fatalf("expected 2 fields, got %d", merged.NumFields())
	}
	ft0, _ := merged.FieldType(0)
	ft1, _ := merged.FieldType(1)
	if ft0 != types.INT32 || ft1 != types.STRING {
		t.Fatalf("unexpected merged field types: %v %v", ft0, ft1)
	}
}

func TestNewTupleFieldTypeMismatch(t *testing.T) {
	td, _ := NewTupleDescription([]types.Type{types.INT32}, []string{"a"})
	if _, err := NewTuple(td, []types.Field{types.NewStringField("x")}); err == nil {
		t.Fatal("expected error constructing tuple with mismatched field type")
	}
}
