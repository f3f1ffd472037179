package merge

import (
	"iter"
)

// Subsets yields every subset of items, smallest subsets first and
// within one size in index order. The yielded slices are fresh copies.
// The sequence restarts from the beginning every time it is ranged
// over, which is what the nested search loops rely on.
func Subsets[T any](items []T) iter.Seq[[]T] {
	return SubsetsAtLeast(items, 0)
}

// SubsetsAtLeast yields every subset with at least min elements, in
// the same order as Subsets.
func SubsetsAtLeast[T any](items []T, min int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for k := min; k <= len(items); k++ {
			if !yieldCombinations(items, k, yield) {
				return
			}
		}
	}
}

// Combinations yields the k element subsets of items in index order.
func Combinations[T any](items []T, k int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		yieldCombinations(items, k, yield)
	}
}

// CombinationsWithReplacement yields the k element multisets of
// items, as non decreasing index tuples. k = 0 yields one empty pick.
func CombinationsWithReplacement[T any](items []T, k int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		if k < 0 || (len(items) == 0 && k > 0) {
			return
		}
		idx := make([]int, k)
		for {
			sub := make([]T, k)
			for i, j := range idx {
				sub[i] = items[j]
			}
			if !yield(sub) {
				return
			}

			i := k - 1
			for i >= 0 && idx[i] == len(items)-1 {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[i]
			}
		}
	}
}

func yieldCombinations[T any](items []T, k int, yield func([]T) bool) bool {
	if k < 0 || k > len(items) {
		return true
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		sub := make([]T, k)
		for i, j := range idx {
			sub[i] = items[j]
		}
		if !yield(sub) {
			return false
		}

		// advance the index vector like an odometer
		i := k - 1
		for i >= 0 && idx[i] == len(items)-k+i {
			i--
		}
		if i < 0 {
			return true
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
