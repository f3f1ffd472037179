package proof

import (
	"iter"

	"github.com/twoecproof/twoec/pkg/comps"
	"github.com/twoecproof/twoec/pkg/engine"
	"github.com/twoecproof/twoec/pkg/graph"
	"github.com/twoecproof/twoec/pkg/merge"
	"github.com/twoecproof/twoec/pkg/util"
)

// ComponentCases enumerates which component the adversary appends
// next. Appended components are shifted past the node ids already
// placed.
type ComponentCases struct{}

func (ComponentCases) Msg() string { return "Enumerate more components" }

func (ComponentCases) Cases(inst engine.Instance[TreeFragment]) iter.Seq[TreeFragment] {
	ti := inst.(*TreeInstance)
	return func(yield func(TreeFragment) bool) {
		offset := graph.Node(ti.NumNodes())
		for _, c := range ti.inner {
			if !yield(compFragment(c.Shifted(offset))) {
				return
			}
		}
	}
}

// MatchingCases enumerates every way to buy size matching edges
// between the two most recently placed components. Only endpoints of
// edges already bought between that pair are blocked; a Large
// component offers its placeholder node for every edge.
type MatchingCases struct {
	size int
}

func NewMatchingCases(size int) MatchingCases {
	return MatchingCases{size: size}
}

func (MatchingCases) Msg() string { return "" }

func (m MatchingCases) Cases(inst engine.Instance[TreeFragment]) iter.Seq[TreeFragment] {
	ti := inst.(*TreeInstance)
	return func(yield func(TreeFragment) bool) {
		placed := ti.Comps()
		last := len(placed) - 1
		between := ti.EdgesBetween(last)

		leftSets := m.endpointSets(placed[last-1], between, false)
		rightSets := m.endpointSets(placed[last], between, true)

		for _, ls := range leftSets {
			for _, rs := range rightSets {
				edges := make([]graph.Edge, m.size)
				for i := range edges {
					edges[i] = graph.NewEdge(ls[i], rs[i], graph.Buyable)
				}
				if !yield(matchingFragment(edges)) {
					return
				}
			}
		}
	}
}

// endpointSets lists the candidate endpoint tuples on one side of the
// pair: unordered picks on the left, ordered arrangements on the
// right.
func (m MatchingCases) endpointSets(c comps.Component, between []graph.Edge, ordered bool) [][]graph.Node {
	if c.IsLarge() {
		return [][]graph.Node{util.Repeat(c.MatchingNodes()[0], m.size)}
	}
	free := freeMatchingNodes(c, between)
	if ordered {
		return util.Permutations(free, m.size)
	}
	var sets [][]graph.Node
	for pick := range merge.Combinations(free, m.size) {
		sets = append(sets, pick)
	}
	return sets
}

func freeMatchingNodes(c comps.Component, between []graph.Edge) []graph.Node {
	var free []graph.Node
	for _, n := range c.MatchingNodes() {
		blocked := false
		for _, e := range between {
			if e.Touches(n) {
				blocked = true
				break
			}
		}
		if !blocked {
			free = append(free, n)
		}
	}
	return free
}

// ContractableComponents enumerates the placed C5 and C6 components
// that are contractible: with the free nodes being those whose merge
// graph neighbors all stay inside the component, the component
// qualifies when 5 times the necessary edge count, 2*free minus the
// free pairs already adjacent, reaches 4 times its edge count.
type ContractableComponents struct{}

func (ContractableComponents) Msg() string { return "Enumerate more components" }

func (ContractableComponents) Cases(inst engine.Instance[TreeFragment]) iter.Seq[TreeFragment] {
	ti := inst.(*TreeInstance)
	return func(yield func(TreeFragment) bool) {
		mg := ti.MergeGraph()
		for idx, c := range ti.Comps() {
			if n := c.CycleLen(); n != 5 && n != 6 {
				continue
			}
			free := freeCompNodes(c, mg)
			if !contractible(c, mg, free) {
				continue
			}
			if !yield(contractFragment(idx, free)) {
				return
			}
		}
	}
}

func freeCompNodes(c comps.Component, mg graph.Graph) []graph.Node {
	cg := c.Graph()
	var free []graph.Node
	for _, n := range cg.Nodes() {
		inside := true
		for _, nb := range mg.Neighbors(n) {
			if !cg.HasNode(nb) {
				inside = false
				break
			}
		}
		if inside {
			free = append(free, n)
		}
	}
	return free
}

func contractible(c comps.Component, mg graph.Graph, free []graph.Node) bool {
	adjacent := 0
	for i := 0; i < len(free); i++ {
		for j := i + 1; j < len(free); j++ {
			if mg.HasEdgeBetween(free[i], free[j]) {
				adjacent++
			}
		}
	}
	necessary := 2*len(free) - adjacent
	return 5*necessary >= 4*c.NumEdges()
}

// ContractedEdgeCases enumerates the edges a contractible component
// implies, one case per non adjacent pair of its free nodes.
type ContractedEdgeCases struct{}

func (ContractedEdgeCases) Msg() string { return "" }

func (ContractedEdgeCases) Cases(inst engine.Instance[TreeFragment]) iter.Seq[TreeFragment] {
	ti := inst.(*TreeInstance)
	return func(yield func(TreeFragment) bool) {
		idx, free := ti.topContract()
		comp := ti.Comps()[idx]
		for pair := range merge.Combinations(free, 2) {
			if comp.IsAdjacent(pair[0], pair[1]) {
				continue
			}
			if !yield(impliedFragment(graph.NewEdge(pair[0], pair[1], graph.Buyable))) {
				return
			}
		}
	}
}
