// Package engine runs quantified proof searches over a mutable case stack.
//
// A proof is described declaratively as an Expression built from
// quantifiers (All, Any, AllOpt, AllOptPar), tactics, and the structural
// combinators Or, And, and Map. Proving an expression walks the case
// space of an Instance, pushing one stack element per enumerated case,
// and records every step in a ProofNode tree that can be evaluated and
// rendered afterwards.
package engine

import "iter"

// Instance is the mutable state a proof search runs against. Cases are
// pushed onto it before the sub expression is proved and popped right
// after, so an instance always reflects exactly the chain of cases that
// leads to the current proof obligation.
type Instance[S any] interface {
	// ItemMsg renders the headline for one enumerated case. enumMsg is
	// the extra context an OptEnumerator returned, empty otherwise.
	ItemMsg(item S, enumMsg string) string

	Push(item S)
	Pop()

	// Clone returns an independent deep copy. Parallel quantifiers prove
	// each case on its own clone.
	Clone() Instance[S]
}

// Enumerator produces the cases of an All or Any quantifier.
type Enumerator[S any] interface {
	Msg() string
	Cases(inst Instance[S]) iter.Seq[S]
}

// OptEnumerator may decline to enumerate. When TryCases reports false
// the quantifier skips enumeration entirely and proves its fallback
// expression instead. An enumerator with no cases to offer must decline
// rather than return an empty sequence, which would prove the
// quantifier vacuously.
type OptEnumerator[S any] interface {
	Msg() string
	TryCases(inst Instance[S]) (iter.Seq[S], string, bool)
}

// Tactic is a proof leaf: it inspects the instance and reports whether
// the current obligation holds.
type Tactic[S any] interface {
	Prove(inst Instance[S]) *ProofNode
}

// Mapper derives one stack element from the instance. Map pushes it for
// the duration of the sub proof.
type Mapper[S any] interface {
	StackElement(inst Instance[S]) S
}
