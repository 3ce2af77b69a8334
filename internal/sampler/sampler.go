// Package sampler implements even-step sampling of a sequence.
package sampler

// SampleEvenly returns up to k items from items, evenly spaced, plus the
// indices chosen. step = n/k (real division); item i is taken from
// index floor(i*step) for i in [0,k). Returns empty slices when n or k
// is zero.
func SampleEvenly[T any](items []T, k int) ([]T, []int) {
	n := len(items)
	if n == 0 || k <= 0 {
		return nil, nil
	}
	if k > n {
		k = n
	}

	step := float64(n) / float64(k)
	out := make([]T, 0, k)
	indices := make([]int, 0, k)
	for i := 0; i < k; i++ {
		idx := int(float64(i) * step)
		out = append(out, items[idx])
		indices = append(indices, idx)
	}
	return out, indices
}
