package statistics

// fenwick is a Binary Indexed Tree over a fixed number of buckets, giving
// O(log n) point updates and prefix sums for histogram bucket counts.
type fenwick struct {
	tree []int64
}

func newFenwick(n int) *fenwick {
	return &fenwick{tree: make([]int64, n+1)}
}

// add increments bucket i (0-indexed) by delta.
func (f *fenwick) add(i int, delta int64) {
	for i++; i < len(f.tree); i += i & (-i) {
		f.tree[i] += delta
	}
}

// prefixSum returns the sum of buckets [0, i] inclusive.
func (f *fenwick) prefixSum(i int) int64 {
	if i < 0 {
		return 0
	}
	var sum int64
	for i++; i > 0; i -= i & (-i) {
		sum += f.tree[i]
	}
	return sum
}

// rangeSum returns the sum of buckets [lo, hi] inclusive, or 0 if the range
// is empty.
func (f *fenwick) rangeSum(lo, hi int) int64 {
	if lo > hi {
		return 0
	}
	return f.prefixSum(hi) - f.prefixSum(lo-1)
}

// at returns the count in a single bucket.
func (f *fenwick) at(i int) int64 {
	return f.rangeSum(i, i)
}
