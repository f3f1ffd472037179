package credit

import (
	"testing"
)

func TestExactThirds(t *testing.T) {
	third := New(1, 3)

	// 1/3 repeated three times must be exactly one
	sum := Zero()
	for i := 0; i < 3; i++ {
		sum = sum.Add(third)
	}
	if !sum.Equal(FromInt(1)) {
		t.Errorf("3 * 1/3 = %s, want 1", sum)
	}

	if third.MulInt(6).String() != "2" {
		t.Errorf("6 * 1/3 = %s, want 2", third.MulInt(6))
	}
}

func TestZeroValueIsZero(t *testing.T) {
	var c Credit
	if !c.Equal(Zero()) {
		t.Error("zero value must equal Zero()")
	}
	if !c.Add(FromInt(2)).Equal(FromInt(2)) {
		t.Error("0 + 2 must be 2")
	}
}

func TestOperandsNotMutated(t *testing.T) {
	a := New(1, 2)
	b := New(1, 3)
	_ = a.Add(b)
	_ = a.Sub(b)
	_ = a.MulInt(7)
	if a.String() != "1/2" || b.String() != "1/3" {
		t.Errorf("operands mutated: a=%s b=%s", a, b)
	}
}

func TestComparisons(t *testing.T) {
	testCases := []struct {
		name    string
		a, b    Credit
		cmp     int
		atLeast bool
	}{
		{name: "equal thirds", a: New(1, 3), b: New(2, 6), cmp: 0, atLeast: true},
		{name: "half above third", a: New(1, 2), b: New(1, 3), cmp: 1, atLeast: true},
		{name: "third below half", a: New(1, 3), b: New(1, 2), cmp: -1, atLeast: false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cmp(tt.b); got != tt.cmp {
				t.Errorf("Cmp: got %d, want %d", got, tt.cmp)
			}
			if got := tt.a.AtLeast(tt.b); got != tt.atLeast {
				t.Errorf("AtLeast: got %v, want %v", got, tt.atLeast)
			}
		})
	}
}

func TestInvariantAmounts(t *testing.T) {
	inv := NewInvariant(New(1, 3))

	testCases := []struct {
		name string
		got  Credit
		want Credit
	}{
		{name: "large", got: inv.LargeCredit(), want: FromInt(2)},
		{name: "complex component", got: inv.ComplexCompCredit(), want: New(7, 3)},
		{name: "black of degree 12", got: inv.BlackCredit(12), want: FromInt(2)},
		{name: "black of degree 15", got: inv.BlackCredit(15), want: New(5, 2)},
		{name: "block", got: inv.BlockCredit(), want: FromInt(1)},
		{name: "triangle", got: inv.TwoECCredit(3), want: FromInt(1)},
		{name: "six cycle", got: inv.TwoECCredit(6), want: FromInt(2)},
		{name: "cap at large", got: inv.TwoECCredit(100), want: FromInt(2)},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equal(tt.want) {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestSchemeString(t *testing.T) {
	inv := NewInvariant(New(2, 5))
	if inv.String() != "Credit Scheme with c = 2/5" {
		t.Errorf("got %q", inv.String())
	}
}
