// Package credit implements exact rational credit arithmetic and the
// credit scheme that prices components, blocks and black vertices.
// Feasibility decisions are strict comparisons of rationals such as
// 1/3, so floating point is out of the question here.
package credit

import (
	"math/big"
)

// Credit is an exact rational amount of credit. The zero value is
// zero credits. Credits are immutable: every operation returns a new
// value and never mutates its operands.
type Credit struct {
	r *big.Rat
}

// New returns the credit num/den. Panics if den is zero.
func New(num, den int64) Credit {
	return Credit{r: big.NewRat(num, den)}
}

// FromInt returns the credit n/1.
func FromInt(n int64) Credit {
	return Credit{r: new(big.Rat).SetInt64(n)}
}

// Zero returns zero credits.
func Zero() Credit {
	return Credit{}
}

func (c Credit) rat() *big.Rat {
	if c.r == nil {
		return new(big.Rat)
	}
	return c.r
}

// Add returns c + o.
func (c Credit) Add(o Credit) Credit {
	return Credit{r: new(big.Rat).Add(c.rat(), o.rat())}
}

// Sub returns c - o.
func (c Credit) Sub(o Credit) Credit {
	return Credit{r: new(big.Rat).Sub(c.rat(), o.rat())}
}

// MulInt returns c * n.
func (c Credit) MulInt(n int64) Credit {
	return Credit{r: new(big.Rat).Mul(c.rat(), new(big.Rat).SetInt64(n))}
}

// DivInt returns c / n. Panics if n is zero.
func (c Credit) DivInt(n int64) Credit {
	return Credit{r: new(big.Rat).Quo(c.rat(), big.NewRat(n, 1))}
}

// Cmp compares c and o, returning -1, 0 or +1.
func (c Credit) Cmp(o Credit) int {
	return c.rat().Cmp(o.rat())
}

// Equal reports whether c and o denote the same amount.
func (c Credit) Equal(o Credit) bool {
	return c.Cmp(o) == 0
}

// AtLeast reports whether c >= o.
func (c Credit) AtLeast(o Credit) bool {
	return c.Cmp(o) >= 0
}

// Min returns the smaller of a and b.
func Min(a, b Credit) Credit {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// String renders the amount as "6" or "13/3".
func (c Credit) String() string {
	return c.rat().RatString()
}
