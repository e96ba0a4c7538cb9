package statistics

import (
	"testing"

	"storemy/pkg/primitives"
)

func TestEncodeStringPrefixPreservesOrder(t *testing.T) {
	pairs := [][2]string{
		{"apple", "banana"},
		{"aa", "ab"},
		{"a", "aa"},
	}
	for _, p := range pairs {
		if encodeStringPrefix(p[0]) >= encodeStringPrefix(p[1]) {
			t.Errorf("encodeStringPrefix(%q) should be < encodeStringPrefix(%q)", p[0], p[1])
		}
	}
	// Only the first four bytes are encoded, so strings sharing a 4-byte
	// prefix get the same code.
	if encodeStringPrefix("zzzz") != encodeStringPrefix("zzzza") {
		t.Errorf("encodeStringPrefix(%q) should equal encodeStringPrefix(%q)", "zzzz", "zzzza")
	}
}

func TestStringHistogramEqualitySelectivity(t *testing.T) {
	h := NewStringHistogram(10)
	names := []string{"alice", "bob", "carol", "dave", "alice"}
	for _, n := range names {
		h.AddValue(n)
	}
	sel := h.EstimateSelectivity(primitives.Equals, "alice")
	if sel <= 0 {
		t.Errorf("expected positive selectivity for a repeated value, got %f", sel)
	}
}

func TestStringHistogramShorterThanPrefixLength(t *testing.T) {
	h := NewStringHistogram(4)
	h.AddValue("a")
	h.AddValue("ab")
	// Must not panic on strings shorter than the prefix encoding length.
	_ = h.EstimateSelectivity(primitives.Equals, "a")
}
