package util

import (
	"reflect"
	"testing"
)

func TestSum(t *testing.T) {
	if got := Sum([]int{3, 4, 5}); got != 12 {
		t.Errorf("Sum ints = %d, want 12", got)
	}
	if got := Sum([]float64{0.5, 0.25}); got != 0.75 {
		t.Errorf("Sum floats = %v, want 0.75", got)
	}
	if got := Sum[int](nil); got != 0 {
		t.Errorf("Sum nil = %d, want 0", got)
	}
}

func TestRepeat(t *testing.T) {
	got := Repeat("x", 3)
	want := []string{"x", "x", "x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Repeat = %v, want %v", got, want)
	}
	if len(Repeat(1, 0)) != 0 {
		t.Errorf("Repeat with n=0 should be empty")
	}
}

func TestPermutationsOrder(t *testing.T) {
	got := Permutations([]int{1, 2, 3}, 3)
	want := [][]int{
		{1, 2, 3}, {1, 3, 2},
		{2, 1, 3}, {2, 3, 1},
		{3, 1, 2}, {3, 2, 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Permutations = %v, want %v", got, want)
	}
}

func TestPermutationsPartialSize(t *testing.T) {
	got := Permutations([]string{"a", "b", "c"}, 2)
	want := [][]string{
		{"a", "b"}, {"a", "c"},
		{"b", "a"}, {"b", "c"},
		{"c", "a"}, {"c", "b"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Permutations size 2 = %v, want %v", got, want)
	}
	if Permutations([]string{"a"}, 2) != nil {
		t.Errorf("oversized Permutations should yield nothing")
	}
}

func TestPermutationsOfEmptySlice(t *testing.T) {
	got := Permutations([]int{}, 0)
	if len(got) != 1 || len(got[0]) != 0 {
		t.Errorf("Permutations of empty slice = %v, want one empty ordering", got)
	}
}

func TestPermutationsDoesNotAliasInput(t *testing.T) {
	in := []int{1, 2}
	got := Permutations(in, 2)
	got[0][0] = 99
	if in[0] != 1 {
		t.Errorf("Permutations must copy its output rows")
	}
}

func TestAssertPanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("AssertPanic should panic on false condition")
		}
	}()
	AssertPanic(false, "boom")
}
