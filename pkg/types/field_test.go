package types

import (
	"bytes"
	"testing"

	"storemy/pkg/primitives"
)

func TestInt32FieldRoundTrip(t *testing.T) {
	f := NewInt32Field(-42)
	var buf bytes.Buffer
	if err := f.Serialize(&buf); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if buf.Len() != 4 {
		t.Fatalf("expected 4 bytes, got %d", buf.Len())
	}
	got, err := DeserializeInt32Field(&buf)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if !got.Equals(f) {
		t.Fatalf("round trip mismatch: got %v want %v", got, f)
	}
}

func TestInt32FieldCompare(t *testing.T) {
	a := NewInt32Field(5)
	b := NewInt32Field(10)
	cases := []struct {
		op   primitives.Op
		want bool
	}{
		{primitives.LessThan, true},
		{primitives.GreaterThan, false},
		{primitives.Equals, false},
		{primitives.NotEqual, true},
		{primitives.LessThanOrEqual, true},
		{primitives.GreaterThanOrEqual, false},
	}
	for _, c := range cases {
		got, err := a.Compare(c.op, b)
		if err != nil {
			t.Fatalf("compare %v: %v", c.op, err)
		}
		if got != c.want {
			t.Errorf("5 %s 10 = %v, want %v", c.op, got, c.want)
		}
	}
}

func TestStringFieldRoundTrip(t *testing.T) {
	f := NewStringField("hello")
	var buf bytes.Buffer
	if err := f.Serialize(&buf); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if buf.Len() != 4+MaxStringLen {
		t.Fatalf("expected %d bytes, got %d", 4+MaxStringLen, buf.Len())
	}
	got, err := DeserializeStringField(&buf)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if !got.Equals(f) {
		t.Fatalf("round trip mismatch: got %q want %q", got.Value, f.Value)
	}
}

func TestStringFieldTruncation(t *testing.T) {
	long := make([]byte, MaxStringLen+50)
	for i := range long {
		long[i] = 'a'
	}
	f := NewStringField(string(long))
	if len(f.Value) != MaxStringLen {
		t.Fatalf("expected truncation to %d bytes, got %d", MaxStringLen, len(f.Value))
	}
}

func TestStringFieldCompare(t *testing.T) {
	a := NewStringField("apple")
	b := NewStringField("banana")
	got, err := a.Compare(primitives.LessThan, b)
	if err != nil || !got {
		t.Fatalf("expected apple < banana, got %v err %v", got, err)
	}
}

func TestCompareTypeMismatch(t *testing.T) {
	a := NewInt32Field(1)
	b := NewStringField("x")
	if _, err := a.Compare(primitives.Equals, b); err == nil {
		t.Fatal("expected error comparing INT32 to STRING")
	}
}
