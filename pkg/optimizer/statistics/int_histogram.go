// Package statistics implements per-column histograms and table-level
// statistics used for selectivity and cost estimation. IntHistogram is the
// only storage structure; StringHistogram delegates to it via a bounded
// integer encoding of string prefixes.
package statistics

import (
	"sort"

	"storemy/pkg/primitives"
)

// IntHistogram partitions [min, max] into as-equal-as-possible integer bins
// and tracks per-bin counts in a Fenwick tree, giving O(log buckets)
// selectivity estimates.
type IntHistogram struct {
	min, max int32
	start    []int32
	size     []int32
	counts   *fenwick
	total    int64
}

// NewIntHistogram builds an IntHistogram with the given number of buckets
// over the closed range [min, max]. Bucket i covers [start[i], start[i]+size[i]-1];
// the range's length is split as evenly as buckets allows, with the first
// (max-min+1) mod buckets bins getting one extra integer.
func NewIntHistogram(buckets int, min, max int32) *IntHistogram {
	if buckets < 1 {
		buckets = 1
	}
	span := int64(max) - int64(min) + 1
	if span < int64(buckets) {
		buckets = int(span)
	}
	base := span / int64(buckets)
	rem := span % int64(buckets)

	start := make([]int32, buckets)
	size := make([]int32, buckets)
	cur := int64(min)
	for i := 0; i < buckets; i++ {
		w := base
		if int64(i) < rem {
			w++
		}
		start[i] = int32(cur)
		size[i] = int32(w)
		cur += w
	}

	return &IntHistogram{
		min:    min,
		max:    max,
		start:  start,
		size:   size,
		counts: newFenwick(buckets),
	}
}

// bucketOf returns the index of the bucket containing v via a floor search
// over the sorted bucket starts, or -1 if v is outside [min, max].
func (h *IntHistogram) bucketOf(v int32) int {
	if v < h.min || v > h.max {
		return -1
	}
	i := sort.Search(len(h.start), func(i int) bool { return h.start[i] > v }) - 1
	if i < 0 {
		i = 0
	}
	return i
}

// AddValue records one occurrence of v, ignored if v falls outside
// [min, max].
func (h *IntHistogram) AddValue(v int32) {
	idx := h.bucketOf(v)
	if idx < 0 {
		return
	}
	h.counts.add(idx, 1)
	h.total++
}

// EstimateSelectivity estimates the fraction of recorded values satisfying
// "field op v". Out-of-range v short-circuits per op without touching the
// buckets: for v < min, GreaterThan/GreaterThanOrEqual/NotEqual are 1 and
// everything else is 0; symmetrically for v > max.
func (h *IntHistogram) EstimateSelectivity(op primitives.Op, v int32) float64 {
	if h.total == 0 {
		return 0.0
	}
	if v < h.min {
		switch op {
		case primitives.GreaterThan, primitives.GreaterThanOrEqual, primitives.NotEqual:
			return 1.0
		default:
			return 0.0
		}
	}
	if v > h.max {
		switch op {
		case primitives.LessThan, primitives.LessThanOrEqual, primitives.NotEqual:
			return 1.0
		default:
			return 0.0
		}
	}

	idx := h.bucketOf(v)
	bucketCount := h.counts.at(idx)
	width := int64(h.size[idx])

	switch op {
	case primitives.Equals:
		return (float64(bucketCount) / float64(width)) / float64(h.total)
	case primitives.NotEqual:
		return 1.0 - (float64(bucketCount)/float64(width))/float64(h.total)
	case primitives.GreaterThan, primitives.GreaterThanOrEqual:
		upper := int64(h.start[idx]) + width - 1
		covered := upper - int64(v)
		if op == primitives.GreaterThanOrEqual {
			covered++
		}
		full := h.counts.rangeSum(idx+1, len(h.start)-1)
		partial := float64(bucketCount) * float64(covered) / float64(width)
		return (float64(full) + partial) / float64(h.total)
	case primitives.LessThan, primitives.LessThanOrEqual:
		covered := int64(v) - int64(h.start[idx])
		if op == primitives.LessThanOrEqual {
			covered++
		}
		full := h.counts.rangeSum(0, idx-1)
		partial := float64(bucketCount) * float64(covered) / float64(width)
		return (float64(full) + partial) / float64(h.total)
	default:
		return 0.5
	}
}

// AvgSelectivity returns the average per-bucket selectivity, used by
// TableStats when no constant is available to estimate against (e.g. a
// join predicate over two columns).
func (h *IntHistogram) AvgSelectivity() float64 {
	if h.total == 0 {
		return 0.0
	}
	return 1.0 / float64(len(h.start))
}
