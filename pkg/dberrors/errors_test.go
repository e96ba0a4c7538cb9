package dberrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		IO:                  "IO",
		Db:                  "Db",
		TransactionAborted:  "TransactionAborted",
		NoSuchElement:       "NoSuchElement",
		Kind(99):            "Unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestIs(t *testing.T) {
	err := NewDb("BufferPool", "getPage", "all pages dirty")
	if !Is(err, Db) {
		t.Fatal("expected Is(err, Db) to be true")
	}
	if Is(err, IO) {
		t.Fatal("expected Is(err, IO) to be false")
	}
}

func TestIsThroughWrap(t *testing.T) {
	inner := NewIO("HeapFile", "readPage", "short read", nil)
	wrapped := fmt.Errorf("context: %w", inner)
	if !Is(wrapped, IO) {
		t.Fatal("expected Is to unwrap fmt.Errorf chains")
	}
}

func TestErrorStringIncludesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewIO("HeapFile", "writePage", "write failed", cause)
	if got := err.Error(); got == "" {
		t.Fatal("expected non-empty error string")
	}
	if !errors.Is(err, err) {
		t.Fatal("expected self-identity under errors.Is")
	}
}
