package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"storemy/pkg/primitives"
)

func within(t *testing.T, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("got %f, want %f +/- %f", got, want, tol)
	}
}

// IntHistogram(buckets=10, min=1, max=100), each integer 1..100 inserted
// once.
func TestIntHistogramUniformDistribution(t *testing.T) {
	h := NewIntHistogram(10, 1, 100)
	for v := int32(1); v <= 100; v++ {
		h.AddValue(v)
	}

	within(t, h.EstimateSelectivity(primitives.GreaterThan, 50), 0.50, 0.01)
	within(t, h.EstimateSelectivity(primitives.Equals, 50), 0.01, 0.001)
	within(t, h.EstimateSelectivity(primitives.GreaterThan, 200), 0.0, 1e-9)
	within(t, h.EstimateSelectivity(primitives.LessThan, 0), 0.0, 1e-9)
}

func TestIntHistogramOutOfRangeSymmetry(t *testing.T) {
	h := NewIntHistogram(10, 1, 100)
	for v := int32(1); v <= 100; v++ {
		h.AddValue(v)
	}

	cases := []struct {
		name string
		op   primitives.Op
		v    int32
		want float64
	}{
		{"gt below min", primitives.GreaterThan, 0, 1.0},
		{"ge below min", primitives.GreaterThanOrEqual, 0, 1.0},
		{"ne below min", primitives.NotEqual, 0, 1.0},
		{"lt below min", primitives.LessThan, 0, 0.0},
		{"eq below min", primitives.Equals, 0, 0.0},
		{"lt above max", primitives.LessThan, 101, 1.0},
		{"le above max", primitives.LessThanOrEqual, 101, 1.0},
		{"ne above max", primitives.NotEqual, 101, 1.0},
		{"gt above max", primitives.GreaterThan, 101, 0.0},
		{"eq above max", primitives.Equals, 101, 0.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, h.EstimateSelectivity(tc.op, tc.v))
		})
	}
}

func TestIntHistogramEqualsAndNotEqualComplementary(t *testing.T) {
	h := NewIntHistogram(5, 0, 49)
	for v := int32(0); v < 50; v++ {
		h.AddValue(v)
	}
	eq := h.EstimateSelectivity(primitives.Equals, 25)
	ne := h.EstimateSelectivity(primitives.NotEqual, 25)
	within(t, eq+ne, 1.0, 1e-9)
}

func TestIntHistogramSingleValueBucket(t *testing.T) {
	h := NewIntHistogram(3, 5, 5)
	h.AddValue(5)
	within(t, h.EstimateSelectivity(primitives.Equals, 5), 1.0, 1e-9)
}
