package proof

import (
	"fmt"
	"sync/atomic"

	"github.com/twoecproof/twoec/pkg/credit"
	"github.com/twoecproof/twoec/pkg/engine"
	"github.com/twoecproof/twoec/pkg/graph"
	"github.com/twoecproof/twoec/pkg/merge"
)

// DirectMerge proves a tree case by trading edges: it searches every
// sell and buy combination on the merge graph for one that leaves a
// single bridgeless or admissible complex component within the credit
// the placed components bring in. Two consecutive Large components
// merge trivially. The tactic keeps call counters so drivers can
// report how often it closed a branch.
type DirectMerge struct {
	name   string
	calls  atomic.Int64
	proofs atomic.Int64
}

func NewDirectMerge(name string) *DirectMerge {
	return &DirectMerge{name: name}
}

func (t *DirectMerge) Prove(inst engine.Instance[TreeFragment]) *engine.ProofNode {
	t.calls.Add(1)
	ti := inst.(*TreeInstance)
	placed := ti.Comps()

	for i := 0; i+1 < len(placed); i++ {
		if placed[i].IsLarge() && placed[i+1].IsLarge() {
			return engine.NewLeaf("Direct merge between two Large", true)
		}
	}

	available := credit.Zero()
	anyComplex := false
	var white []graph.Node
	for _, c := range placed {
		available = available.Add(c.Credits(ti.scheme))
		if c.IsComplex() {
			anyComplex = true
		}
		if c.IsLarge() {
			white = append(white, c.MatchingNodes()[0])
		}
	}

	// a large outcome must buy two edges per joined pair, a complex
	// outcome gets by with one
	minBuy := 2 * (len(placed) - 1)
	if anyComplex {
		minBuy = len(placed) - 1
	}

	mg := ti.MergeGraph()
	res := merge.FindFeasibleMerge(
		mg,
		merge.SubsetsAtLeast(mg.EdgesOfKind(graph.Buyable), minBuy),
		merge.Subsets(mg.EdgesOfKind(graph.Sellable)),
		available, white, ti.scheme, anyComplex,
	)

	switch res.Kind {
	case merge.FeasibleLarge:
		t.proofs.Add(1)
		return engine.NewLeaf(fmt.Sprintf(
			"Direct merge to 2EC possible [bought = %s, sold = %s]",
			graph.JoinEdges(res.Bought), graph.JoinEdges(res.Sold)), true)
	case merge.FeasibleComplex:
		t.proofs.Add(1)
		return engine.NewLeaf(fmt.Sprintf(
			"Direct merge to complex possible [bought = %s, sold = %s]",
			graph.JoinEdges(res.Bought), graph.JoinEdges(res.Sold)), true)
	}
	return engine.NewLeaf(fmt.Sprintf(
		"Direct merge impossible [available credits: %s]", available), false)
}

func (t *DirectMerge) Name() string { return t.name }

// Calls counts Prove invocations, Proofs the ones that closed the
// branch with a feasible trade.
func (t *DirectMerge) Calls() int64  { return t.calls.Load() }
func (t *DirectMerge) Proofs() int64 { return t.proofs.Load() }

// Exhausted is the terminal tactic behind every other option. Whether
// running out of tactics is fatal depends on the caller: an
// exhaustively enumerated case space may treat it as success.
type Exhausted[S any] struct {
	success bool
	calls   atomic.Int64
}

func NewExhausted[S any](success bool) *Exhausted[S] {
	return &Exhausted[S]{success: success}
}

func (t *Exhausted[S]) Prove(engine.Instance[S]) *engine.ProofNode {
	t.calls.Add(1)
	return engine.NewLeaf("Tactics exhausted!", t.success)
}

func (t *Exhausted[S]) Calls() int64 { return t.calls.Load() }
