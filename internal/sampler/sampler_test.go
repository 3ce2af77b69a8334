package sampler

import (
	"reflect"
	"testing"
)

func TestSampleEvenly(t *testing.T) {
	cases := []struct {
		name        string
		n, k        int
		wantIndices []int
	}{
		{"empty input", 0, 3, nil},
		{"zero k", 5, 0, nil},
		{"negative k", 5, -1, nil},
		{"k equals n", 4, 4, []int{0, 1, 2, 3}},
		{"k greater than n caps to n", 3, 10, []int{0, 1, 2}},
		{"even split", 10, 5, []int{0, 2, 4, 6, 8}},
		{"uneven split floors", 7, 3, []int{0, 2, 4}},
		{"single sample takes first", 9, 1, []int{0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items := make([]int, tc.n)
			for i := range items {
				items[i] = i
			}

			out, indices := SampleEvenly(items, tc.k)
			if !reflect.DeepEqual(indices, tc.wantIndices) {
				t.Fatalf("indices = %v, want %v", indices, tc.wantIndices)
			}
			if len(out) != len(tc.wantIndices) {
				t.Fatalf("len(out) = %d, want %d", len(out), len(tc.wantIndices))
			}
			for i, idx := range indices {
				if out[i] != items[idx] {
					t.Errorf("out[%d] = %d, want items[%d] = %d", i, out[i], idx, items[idx])
				}
			}
		})
	}
}

func TestSampleEvenlyIndicesAreStrictlyIncreasing(t *testing.T) {
	items := make([]string, 100)
	for i := range items {
		items[i] = string(rune('a' + i%26))
	}

	_, indices := SampleEvenly(items, 17)
	for i := 1; i < len(indices); i++ {
		if indices[i] <= indices[i-1] {
			t.Fatalf("indices not strictly increasing at %d: %v", i, indices)
		}
	}
}
