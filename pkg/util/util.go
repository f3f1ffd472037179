package util

import (
	"golang.org/x/exp/constraints"
)

// Sum adds up a slice of numbers.
func Sum[T constraints.Integer | constraints.Float](values []T) T {
	var total T
	for _, v := range values {
		total += v
	}
	return total
}

// Repeat returns a slice holding value n times.
func Repeat[T any](value T, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// Permutations returns every ordered arrangement of size items, in
// lexicographic order of the picked source indices. A size larger than
// the input yields nothing. The input slice is not modified.
func Permutations[T any](items []T, size int) [][]T {
	if size > len(items) {
		return nil
	}
	var out [][]T
	used := make([]bool, len(items))
	current := make([]T, 0, size)

	var walk func()
	walk = func() {
		if len(current) == size {
			out = append(out, append([]T(nil), current...))
			return
		}
		for i, item := range items {
			if used[i] {
				continue
			}
			used[i] = true
			current = append(current, item)
			walk()
			current = current[:len(current)-1]
			used[i] = false
		}
	}
	walk()
	return out
}

// AssertPanic panics with msg when cond does not hold.
func AssertPanic(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}
