package proof

import (
	"fmt"
	"sync/atomic"

	"github.com/twoecproof/twoec/pkg/comps"
	"github.com/twoecproof/twoec/pkg/credit"
	"github.com/twoecproof/twoec/pkg/engine"
	"github.com/twoecproof/twoec/pkg/graph"
	"github.com/twoecproof/twoec/pkg/merge"
	"github.com/twoecproof/twoec/pkg/util"
)

// LocalMerge proves progress by collapsing two or three placed
// components into one: buy two of the settled edges per joined pair,
// gain a credit for every bought pair whose endpoints form a nice
// pair and can be shortcut, and check that the result still pays the
// two edge connected price.
type LocalMerge struct {
	calls  atomic.Int64
	proofs atomic.Int64
}

func NewLocalMerge() *LocalMerge {
	return &LocalMerge{}
}

func (t *LocalMerge) Prove(inst engine.Instance[PathFragment]) *engine.ProofNode {
	t.calls.Add(1)
	pi := inst.(*PathInstance)
	placed := pi.PathComps()
	edges := pi.AllEdges()
	nps := pi.NicePairs()

	for i := 0; i < len(placed); i++ {
		for j := i + 1; j < len(placed); j++ {
			between := edgesBetweenComps(edges, placed[i], placed[j])
			if len(between) < 2 {
				continue
			}
			if node, ok := t.mergePair(pi, placed[i], placed[j], between, nps); ok {
				t.proofs.Add(1)
				return node
			}
		}
	}

	for _, perm := range util.Permutations(placed, 3) {
		left, mid, right := perm[0], perm[1], perm[2]
		b1 := edgesBetweenComps(edges, left, mid)
		b2 := edgesBetweenComps(edges, mid, right)
		if len(b1) < 2 || len(b2) < 2 {
			continue
		}
		if node, ok := t.mergeTriple(pi, left, mid, right, b1, b2, nps); ok {
			t.proofs.Add(1)
			return node
		}
	}

	return engine.NewLeaf("No local merge found between any components", false)
}

func (t *LocalMerge) mergePair(pi *PathInstance, left, right PathComp, between []PathEdge, nps NicePairSet) (*engine.ProofNode, bool) {
	total := left.Comp.Credits(pi.scheme).Add(right.Comp.Credits(pi.scheme))
	req := pi.scheme.TwoECCredit(left.Comp.NumEdges() + right.Comp.NumEdges())

	for buy := range merge.Combinations(between, 2) {
		credits := total.Sub(buy[0].Cost).Add(shortcutGain(buy, left, nps)).
			Sub(buy[1].Cost).Add(shortcutGain(buy, right, nps))
		if credits.AtLeast(req) {
			return engine.NewLeaf(fmt.Sprintf(
				"Local merge of %s and %s possible [bought = %s]",
				left.Idx, right.Idx, joinPathEdges(buy)), true), true
		}
	}
	return nil, false
}

func (t *LocalMerge) mergeTriple(pi *PathInstance, left, mid, right PathComp, b1, b2 []PathEdge, nps NicePairSet) (*engine.ProofNode, bool) {
	total := left.Comp.Credits(pi.scheme).
		Add(mid.Comp.Credits(pi.scheme)).
		Add(right.Comp.Credits(pi.scheme))
	req := pi.scheme.TwoECCredit(
		left.Comp.NumEdges() + mid.Comp.NumEdges() + right.Comp.NumEdges())

	for buy1 := range merge.Combinations(b1, 2) {
		for buy2 := range merge.Combinations(b2, 2) {
			credits := total.
				Sub(buy1[0].Cost).Sub(buy1[1].Cost).
				Sub(buy2[0].Cost).Sub(buy2[1].Cost).
				Add(shortcutGain(buy1, left, nps)).
				Add(shortcutGain(buy2, right, nps))
			// the middle component shortcuts through either bought pair
			if shortcutGain(buy1, mid, nps).Equal(credit.FromInt(1)) ||
				shortcutGain(buy2, mid, nps).Equal(credit.FromInt(1)) {
				credits = credits.Add(credit.FromInt(1))
			}
			if credits.AtLeast(req) {
				return engine.NewLeaf(fmt.Sprintf(
					"Local merge of %s, %s and %s possible [bought = %s and %s]",
					left.Idx, mid.Idx, right.Idx,
					joinPathEdges(buy1), joinPathEdges(buy2)), true), true
			}
		}
	}
	return nil, false
}

func (t *LocalMerge) Name() string { return "Local merge" }

func (t *LocalMerge) Calls() int64  { return t.calls.Load() }
func (t *LocalMerge) Proofs() int64 { return t.proofs.Load() }

// shortcutGain is one credit when the endpoints of the bought pair
// inside the component form a nice pair, since the edge between them
// can then be sold.
func shortcutGain(buy []PathEdge, pc PathComp, nps NicePairSet) credit.Credit {
	n1, ok1 := endpointIn(buy[0], pc.Comp)
	n2, ok2 := endpointIn(buy[1], pc.Comp)
	if ok1 && ok2 && nps.IsNicePair(n1, n2) {
		return credit.FromInt(1)
	}
	return credit.Zero()
}

func endpointIn(e PathEdge, c comps.Component) (graph.Node, bool) {
	if c.Contains(e.U) {
		return e.U, true
	}
	if c.Contains(e.V) {
		return e.V, true
	}
	return 0, false
}

func edgesBetweenComps(edges []PathEdge, a, b PathComp) []PathEdge {
	var between []PathEdge
	for _, e := range edges {
		if (a.Comp.Contains(e.U) && b.Comp.Contains(e.V)) ||
			(a.Comp.Contains(e.V) && b.Comp.Contains(e.U)) {
			between = append(between, e)
		}
	}
	return between
}

// PendantRewire proves progress when the last component hangs off its
// neighbor alone: every settled connection of the last component,
// path edge included, runs into the second to last one, and there are
// at least three of them. The path can then be rewired to end one
// component earlier, with the pendant component attached by a three
// matching to a single neighbor.
type PendantRewire struct {
	calls  atomic.Int64
	proofs atomic.Int64
}

func NewPendantRewire() *PendantRewire {
	return &PendantRewire{}
}

func (t *PendantRewire) Prove(inst engine.Instance[PathFragment]) *engine.ProofNode {
	t.calls.Add(1)
	pi := inst.(*PathInstance)
	placed := pi.PathComps()
	if len(placed) < 2 {
		return engine.NewLeaf("Pendant rewire impossible [last component has no settled neighbor]", false)
	}
	last, prelast := placed[0], placed[1]

	for _, o := range pi.OutsideHits() {
		if last.Comp.Contains(o) {
			return engine.NewLeaf("Pendant rewire impossible [outside edge at Last]", false)
		}
	}
	for _, ob := range pi.OpenObligations() {
		if last.Comp.Contains(ob.Source) {
			return engine.NewLeaf("Pendant rewire impossible [open obligation at Last]", false)
		}
	}

	conns := 0
	for _, e := range pi.AllEdges() {
		_, w, ok := splitEdge(e, last.Comp)
		if !ok {
			continue
		}
		if !prelast.Comp.Contains(w) {
			return engine.NewLeaf("Pendant rewire impossible [Last reaches past Prelast]", false)
		}
		conns++
	}
	if conns < 3 {
		return engine.NewLeaf(fmt.Sprintf(
			"Pendant rewire impossible [%d edges between Last and Prelast]", conns), false)
	}

	t.proofs.Add(1)
	return engine.NewLeaf("Rewired the last component as a pendant of Prelast", true)
}

func (t *PendantRewire) Name() string { return "Pendant rewire" }

func (t *PendantRewire) Calls() int64  { return t.calls.Load() }
func (t *PendantRewire) Proofs() int64 { return t.proofs.Load() }

// LongerPath proves progress by extending the nice path beyond its
// last component: an edge leaving the instance at the last component
// prolongs the path whenever walking from the path edge to it keeps
// the component nicely traversable.
type LongerPath struct {
	calls  atomic.Int64
	proofs atomic.Int64
}

func NewLongerPath() *LongerPath {
	return &LongerPath{}
}

func (t *LongerPath) Prove(inst engine.Instance[PathFragment]) *engine.ProofNode {
	t.calls.Add(1)
	pi := inst.(*PathInstance)
	last := pi.PathComps()[0]

	var hits []graph.Node
	for _, o := range pi.OutsideHits() {
		if last.Comp.Contains(o) {
			hits = append(hits, o)
		}
	}
	if len(hits) == 0 {
		return engine.NewLeaf("No outside edge at the last component", false)
	}

	nps := pi.NicePairs()
	node := engine.NewAny("Extend the nice path outside")
	for _, u := range hits {
		if validInOut(last.Comp, nps, last.In, u, true, last.Used) {
			node.AddChild(engine.NewLeaf(fmt.Sprintf(
				"Longer nice path via outside edge at %s", u), true))
		} else {
			node.AddChild(engine.NewLeaf(fmt.Sprintf(
				"No longer nice path via outside edge at %s", u), false))
		}
	}
	if node.Eval() {
		t.proofs.Add(1)
	}
	return node
}

func (t *LongerPath) Name() string { return "Longer nice path" }

func (t *LongerPath) Calls() int64  { return t.calls.Load() }
func (t *LongerPath) Proofs() int64 { return t.proofs.Load() }

// validInOut checks the nice path traversal rules for a component
// entered at in and left at out: a C4 needs a nice pair, a prelast C5
// needs a nice pair when unused and distinct ends when used, anything
// else traverses freely.
func validInOut(c comps.Component, nps NicePairSet, in, out graph.Node, prelast, used bool) bool {
	switch {
	case c.CycleLen() == 4:
		return nps.IsNicePair(in, out)
	case c.CycleLen() == 5 && prelast && used:
		return in != out
	case c.CycleLen() == 5 && prelast && !used:
		return nps.IsNicePair(in, out)
	}
	return true
}
