package credit

import (
	"fmt"
)

// Scheme is the pricing interface feasibility checks work against.
// All amounts are exact rationals derived from the base credit c.
type Scheme interface {
	// C is the credit granted per component edge.
	C() Credit
	// TwoECCredit is the credit of a two edge connected component
	// with the given number of edges, capped at LargeCredit.
	TwoECCredit(numEdges int) Credit
	// LargeCredit is the credit of a large component.
	LargeCredit() Credit
	// ComplexCompCredit is the base credit of a complex component.
	ComplexCompCredit() Credit
	// BlackCredit is the credit carried by black vertices of the
	// given total bridge degree.
	BlackCredit(deg int) Credit
	// BlockCredit is the credit of one block of a complex component.
	BlockCredit() Credit

	fmt.Stringer
}

// Invariant is the standard scheme parameterized by c. A proof run is
// always relative to one fixed Invariant.
type Invariant struct {
	c Credit
}

// NewInvariant builds the scheme for the given base credit.
func NewInvariant(c Credit) *Invariant {
	return &Invariant{c: c}
}

func (inv *Invariant) C() Credit {
	return inv.c
}

func (inv *Invariant) TwoECCredit(numEdges int) Credit {
	return Min(inv.c.MulInt(int64(numEdges)), inv.LargeCredit())
}

func (inv *Invariant) LargeCredit() Credit {
	return inv.c.MulInt(6)
}

func (inv *Invariant) ComplexCompCredit() Credit {
	return inv.c.MulInt(13).Sub(FromInt(2))
}

func (inv *Invariant) BlackCredit(deg int) Credit {
	return inv.c.MulInt(int64(deg)).DivInt(2)
}

func (inv *Invariant) BlockCredit() Credit {
	return FromInt(1)
}

func (inv *Invariant) String() string {
	return fmt.Sprintf("Credit Scheme with c = %s", inv.c)
}
