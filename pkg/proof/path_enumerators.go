package proof

import (
	"fmt"
	"iter"

	"github.com/twoecproof/twoec/pkg/comps"
	"github.com/twoecproof/twoec/pkg/credit"
	"github.com/twoecproof/twoec/pkg/engine"
	"github.com/twoecproof/twoec/pkg/graph"
	"github.com/twoecproof/twoec/pkg/merge"
)

// PathExtension attaches the next component to the open end of the
// path: one case per component choice, entry and exit node, and per
// way the open obligations land on the new component. It declines
// once the path is settled enough that attaching further components
// cannot reveal anything new.
type PathExtension struct{}

func (PathExtension) Msg() string { return "Enumerate path node" }

func (PathExtension) TryCases(inst engine.Instance[PathFragment]) (iter.Seq[PathFragment], string, bool) {
	pi := inst.(*PathInstance)
	open := pi.OpenObligations()
	if len(open) == 0 && len(pi.PathComps()) >= 3 {
		if _, ok := deficientComp(pi); !ok {
			return nil, "", false
		}
	}

	base := pathCompCases(pi)
	seq := func(yield func(PathFragment) bool) {
		for _, frag := range base {
			pc := frag.comps[0]
			for hit := range merge.Subsets(open) {
				for _, f := range obligationLandings(frag, pc, hit) {
					if !yield(f) {
						return
					}
				}
			}
		}
	}
	return seq, "path node", true
}

// pathCompCases enumerates the component placements extending the
// path by one: every choice, shifted past the occupied id range, with
// every entry node and every valid exit node. The exit node of a
// cycle is pinned to its canonical node; rotating the cycle makes any
// other exit equivalent.
func pathCompCases(pi *PathInstance) []PathFragment {
	placed := pi.PathComps()
	newIdx := placed[len(placed)-1].Idx + 1
	offset := graph.Node(pi.NumNodes())

	var cases []PathFragment
	for _, choice := range pi.choices {
		comp := choice.Comp.Shifted(offset)
		outNodes := []graph.Node{comp.FixedNode()}
		if comp.IsComplex() {
			outNodes = comp.MatchingNodes()
		}
		for _, in := range comp.MatchingNodes() {
			for _, out := range outNodes {
				if !prevalidInOut(comp, in, out, newIdx == Prelast) {
					continue
				}
				for _, pc := range placementVariants(comp, choice.Used, newIdx, in, out) {
					cases = append(cases, pathCompFragment(pc))
				}
			}
		}
	}
	return cases
}

// prevalidInOut rules out traversals no nice pair enumeration can
// save: the small cycles and a prelast C5 must pass through, only C6
// and Large may be entered and left at the same node.
func prevalidInOut(c comps.Component, in, out graph.Node, prelast bool) bool {
	n := c.CycleLen()
	if n == 3 || n == 4 || (n == 5 && prelast) || c.IsComplex() {
		return in != out
	}
	return true
}

// placementVariants settles the nice pairs a placement commits to. A
// C4 passed through non adjacent nodes always shortcuts, so in and
// out become a nice pair. An unused prelast C5 does too, and the two
// ways of routing its fifth node around are separate cases.
func placementVariants(comp comps.Component, used bool, idx Pidx, in, out graph.Node) []PathComp {
	pc := PathComp{
		Comp:       comp,
		In:         in,
		Out:        out,
		HasOut:     true,
		Used:       used,
		Idx:        idx,
		InitialNPs: comp.EdgePairs(),
	}

	needsPair := (comp.CycleLen() == 4 || (comp.CycleLen() == 5 && !used && idx == Prelast)) &&
		!comp.IsAdjacent(in, out)
	if !needsPair {
		return []PathComp{pc}
	}

	pc.InitialNPs = appendPair(pc.InitialNPs, in, out)
	if comp.CycleLen() != 5 {
		return []PathComp{pc}
	}

	// in and out sit at distance two on the C5: v1 is their common
	// neighbor, v2 the other neighbor of out, v3 the other neighbor
	// of in
	var v1, v2, v3 graph.Node
	for _, v := range comp.MatchingNodes() {
		if comp.IsAdjacent(v, in) && comp.IsAdjacent(v, out) {
			v1 = v
		}
	}
	for _, v := range comp.MatchingNodes() {
		if v != v1 && comp.IsAdjacent(v, out) {
			v2 = v
		}
		if v != v1 && comp.IsAdjacent(v, in) {
			v3 = v
		}
	}

	p1, p2 := pc, pc
	p1.InitialNPs = appendPair(pc.InitialNPs, v3, out)
	p2.InitialNPs = appendPair(pc.InitialNPs, v2, in)
	return []PathComp{p1, p2}
}

func appendPair(pairs [][2]graph.Node, u, v graph.Node) [][2]graph.Node {
	out := make([][2]graph.Node, len(pairs), len(pairs)+1)
	copy(out, pairs)
	return append(out, [2]graph.Node{u, v})
}

// obligationLandings distributes the hit obligations onto the new
// component: per source component, every multiset of target nodes.
// An obligation from the component the new one attaches to must not
// land on the exit node, which the path edge already occupies. Every
// landing discharges all hit obligation ids.
func obligationLandings(base PathFragment, pc PathComp, hit []HalfEdge) []PathFragment {
	if len(hit) == 0 {
		return []PathFragment{base}
	}

	parts := []PathFragment{base}
	for idx := Last; idx < pc.Idx; idx++ {
		var group []HalfEdge
		for _, ob := range hit {
			if ob.SourceIdx == idx {
				group = append(group, ob)
			}
		}
		if len(group) == 0 {
			continue
		}

		var next []PathFragment
		for targets := range merge.CombinationsWithReplacement(pc.Comp.MatchingNodes(), len(group)) {
			if idx+1 == pc.Idx && !pc.Comp.IsLarge() && containsNode(targets, pc.Out) {
				continue
			}
			edges := make([]PathEdge, len(group))
			for i, ob := range group {
				edges[i] = PathEdge{U: ob.Source, V: targets[i], Cost: ob.Cost}
			}
			for _, p := range parts {
				next = append(next, withEdges(p, edges))
			}
		}
		parts = next
	}

	ids := make([]int, len(hit))
	for i, ob := range hit {
		ids[i] = ob.ID
	}
	for i := range parts {
		parts[i].discharged = ids
	}
	return parts
}

func withEdges(f PathFragment, edges []PathEdge) PathFragment {
	combined := make([]PathEdge, 0, len(f.edges)+len(edges))
	combined = append(combined, f.edges...)
	combined = append(combined, edges...)
	f.edges = combined
	return f
}

func containsNode(nodes []graph.Node, n graph.Node) bool {
	for _, m := range nodes {
		if m == n {
			return true
		}
	}
	return false
}

// EdgeCases settles one more matching edge. Every component except
// the newest must account for a three matching into the rest of the
// graph; for the first one that cannot, the enumerator splits on
// where its next matching edge lands: at a free node of another
// component, outside the instance, or in the unrevealed part of the
// path as a fresh obligation.
type EdgeCases struct{}

func (EdgeCases) Msg() string { return "Enumerate edges" }

func (EdgeCases) TryCases(inst engine.Instance[PathFragment]) (iter.Seq[PathFragment], string, bool) {
	pi := inst.(*PathInstance)
	def, ok := deficientComp(pi)
	if !ok {
		return nil, "", false
	}

	id := pi.nextObligationID()
	seq := func(yield func(PathFragment) bool) {
		for _, u := range def.free {
			for _, w := range def.targets {
				f := PathFragment{edges: []PathEdge{{U: u, V: w, Cost: credit.FromInt(1)}}}
				if !yield(f) {
					return
				}
			}
			if !yield(PathFragment{outside: []graph.Node{u}}) {
				return
			}
			ob := HalfEdge{Source: u, SourceIdx: def.comp.Idx, ID: id, Cost: credit.FromInt(1)}
			if !yield(PathFragment{obligations: []HalfEdge{ob}}) {
				return
			}
		}
	}
	return seq, fmt.Sprintf("3-Matching of %s", def.comp.Idx), true
}

// deficiency describes a component short of its three matching: the
// nodes of the component still able to host an edge and the free
// nodes of the other components an edge could land on.
type deficiency struct {
	comp    PathComp
	free    []graph.Node
	targets []graph.Node
}

// deficientComp scans the settled components, skipping the newest one
// whose remaining matching edges may still come from the unrevealed
// path, for one whose guaranteed matching stays below three.
func deficientComp(pi *PathInstance) (deficiency, bool) {
	placed := pi.PathComps()
	if len(placed) < 2 {
		return deficiency{}, false
	}
	edges := pi.AllEdges()
	outs := pi.OutsideHits()
	open := pi.OpenObligations()

	for _, pc := range placed[:len(placed)-1] {
		if matchingBound(pi, pc, edges, outs, open) >= 3 {
			continue
		}
		free := freePathNodes(pc, edges, outs, open)
		if len(free) == 0 {
			continue
		}
		return deficiency{
			comp:    pc,
			free:    free,
			targets: freeTargets(placed, pc, edges),
		}, true
	}
	return deficiency{}, false
}

// matchingBound is a lower bound on the matching between the
// component and the rest of the instance. A Large placeholder hosts
// any number of matching edges, so its connections count one by one;
// elsewhere a node contributes at most once, and edges into plain
// nodes of other components are capped by the distinct targets they
// reach.
func matchingBound(pi *PathInstance, pc PathComp, edges []PathEdge, outs []graph.Node, open []HalfEdge) int {
	if pc.Comp.IsLarge() {
		n := pc.Comp.MatchingNodes()[0]
		count := 0
		for _, e := range edges {
			if e.Touches(n) {
				count++
			}
		}
		for _, o := range outs {
			if o == n {
				count++
			}
		}
		for _, ob := range open {
			if ob.Source == n {
				count++
			}
		}
		return count
	}

	covered := make(map[graph.Node]bool)
	for _, o := range outs {
		if pc.Comp.Contains(o) {
			covered[o] = true
		}
	}
	for _, ob := range open {
		if pc.Comp.Contains(ob.Source) {
			covered[ob.Source] = true
		}
	}
	for _, e := range edges {
		u, w, ok := splitEdge(e, pc.Comp)
		if ok && pi.compNodeOf(w) {
			covered[u] = true
		}
	}
	count := len(covered)

	fresh := make(map[graph.Node]bool)
	targets := make(map[graph.Node]bool)
	for _, e := range edges {
		u, w, ok := splitEdge(e, pc.Comp)
		if !ok || covered[u] || pi.compNodeOf(w) {
			continue
		}
		fresh[u] = true
		targets[w] = true
	}
	if len(fresh) < len(targets) {
		return count + len(fresh)
	}
	return count + len(targets)
}

// splitEdge splits e into its endpoint inside c and the one outside.
// Edges with both or neither endpoint in c report false.
func splitEdge(e PathEdge, c comps.Component) (graph.Node, graph.Node, bool) {
	inU, inV := c.Contains(e.U), c.Contains(e.V)
	if inU == inV {
		return 0, 0, false
	}
	if inU {
		return e.U, e.V, true
	}
	return e.V, e.U, true
}

func freePathNodes(pc PathComp, edges []PathEdge, outs []graph.Node, open []HalfEdge) []graph.Node {
	if pc.Comp.IsLarge() {
		return []graph.Node{pc.Comp.MatchingNodes()[0]}
	}
	var free []graph.Node
	for _, n := range pc.Comp.MatchingNodes() {
		used := false
		for _, e := range edges {
			if e.Touches(n) {
				used = true
				break
			}
		}
		for _, o := range outs {
			if o == n {
				used = true
			}
		}
		for _, ob := range open {
			if ob.Source == n {
				used = true
			}
		}
		if !used {
			free = append(free, n)
		}
	}
	return free
}

func freeTargets(placed []PathComp, pc PathComp, edges []PathEdge) []graph.Node {
	var targets []graph.Node
	for _, other := range placed {
		if other.Idx == pc.Idx {
			continue
		}
		for _, n := range other.Comp.MatchingNodes() {
			if other.Comp.IsLarge() {
				targets = append(targets, n)
				continue
			}
			touched := false
			for _, e := range edges {
				if e.Touches(n) {
					touched = true
					break
				}
			}
			if !touched {
				targets = append(targets, n)
			}
		}
	}
	return targets
}
