package proof

import (
	"fmt"
	"strings"

	"github.com/twoecproof/twoec/pkg/comps"
	"github.com/twoecproof/twoec/pkg/credit"
	"github.com/twoecproof/twoec/pkg/engine"
	"github.com/twoecproof/twoec/pkg/graph"
	"github.com/twoecproof/twoec/pkg/util"
)

type treeFragmentKind uint8

const (
	fragComp treeFragmentKind = iota
	fragMatching
	fragImplied
	fragContract
)

// TreeFragment is one immutable unit of tree case state: a placed
// component, a batch of bought matching edges, a single edge implied
// by contractability, or a contractability annotation. Fragments are
// never mutated after construction, so instance clones share them.
type TreeFragment struct {
	kind treeFragmentKind
	comp comps.Component
	// edges holds matching or implied edges, always of kind Buyable.
	edges       []graph.Edge
	contractIdx int
	freeNodes   []graph.Node
}

func compFragment(c comps.Component) TreeFragment {
	return TreeFragment{kind: fragComp, comp: c}
}

func matchingFragment(edges []graph.Edge) TreeFragment {
	return TreeFragment{kind: fragMatching, edges: edges}
}

func impliedFragment(e graph.Edge) TreeFragment {
	return TreeFragment{kind: fragImplied, edges: []graph.Edge{e}}
}

func contractFragment(idx int, freeNodes []graph.Node) TreeFragment {
	return TreeFragment{kind: fragContract, contractIdx: idx, freeNodes: freeNodes}
}

// TreeInstance is the proof state of one tree case: a stack of
// fragments describing the components placed so far and the matching
// edges bought between them. Components own contiguous node id ranges
// in placement order, which is how edge endpoints are attributed.
type TreeInstance struct {
	scheme credit.Scheme
	inner  []comps.Component
	stack  []TreeFragment
}

// NewTreeInstance starts a tree case at the given leaf component. The
// inner components are what the component enumerator may append.
func NewTreeInstance(sc credit.Scheme, inner []comps.Component, leaf comps.Component) *TreeInstance {
	return &TreeInstance{
		scheme: sc,
		inner:  inner,
		stack:  []TreeFragment{compFragment(leaf)},
	}
}

func (t *TreeInstance) Push(f TreeFragment) {
	t.stack = append(t.stack, f)
}

func (t *TreeInstance) Pop() {
	util.AssertPanic(len(t.stack) > 0, "proof: pop on empty tree instance")
	t.stack = t.stack[:len(t.stack)-1]
}

// Clone copies the stack; fragments are immutable and shared.
func (t *TreeInstance) Clone() engine.Instance[TreeFragment] {
	stack := make([]TreeFragment, len(t.stack))
	copy(stack, t.stack)
	return &TreeInstance{scheme: t.scheme, inner: t.inner, stack: stack}
}

// ItemMsg renders the case headline for one fragment the way the
// proof tree reports it.
func (t *TreeInstance) ItemMsg(item TreeFragment, _ string) string {
	switch item.kind {
	case fragComp:
		return display(append(t.Comps(), item.comp), t.Edges())
	case fragMatching:
		return fmt.Sprintf("Edges [%s]", graph.JoinEdges(append(t.Edges(), item.edges...)))
	case fragImplied:
		return fmt.Sprintf("Contractability implied edge: Edges [%s]",
			graph.JoinEdges(append(t.Edges(), item.edges...)))
	}
	return fmt.Sprintf("Component %d contractible! Free nodes [%s]",
		item.contractIdx, graph.JoinNodes(item.freeNodes))
}

func (t *TreeInstance) String() string {
	return display(t.Comps(), t.Edges())
}

func display(placed []comps.Component, edges []graph.Edge) string {
	names := make([]string, len(placed))
	for i, c := range placed {
		names[i] = c.String()
	}
	return fmt.Sprintf("Instance %s with edges [%s]",
		strings.Join(names, " -- "), graph.JoinEdges(edges))
}

// Comps returns the placed components in placement order.
func (t *TreeInstance) Comps() []comps.Component {
	var placed []comps.Component
	for _, f := range t.stack {
		if f.kind == fragComp {
			placed = append(placed, f.comp)
		}
	}
	return placed
}

// Edges returns all bought edges, matching and implied, in placement
// order.
func (t *TreeInstance) Edges() []graph.Edge {
	var edges []graph.Edge
	for _, f := range t.stack {
		if f.kind == fragMatching || f.kind == fragImplied {
			edges = append(edges, f.edges...)
		}
	}
	return edges
}

// NumNodes is the total node id space the placed components occupy;
// the next component is shifted here.
func (t *TreeInstance) NumNodes() int {
	total := 0
	for _, c := range t.Comps() {
		total += c.NumNodes()
	}
	return total
}

// compIndexOf attributes a node id to the placed component owning its
// id range.
func (t *TreeInstance) compIndexOf(n graph.Node) int {
	offset := 0
	for i, c := range t.Comps() {
		offset += c.NumNodes()
		if int(n) < offset {
			return i
		}
	}
	return -1
}

// EdgesBetween returns the bought edges joining components idx-1 and
// idx. Implied edges stay inside one component and never qualify.
func (t *TreeInstance) EdgesBetween(idx int) []graph.Edge {
	var between []graph.Edge
	for _, e := range t.Edges() {
		if t.compIndexOf(e.U) == idx-1 && t.compIndexOf(e.V) == idx {
			between = append(between, e)
		}
	}
	return between
}

// MergeGraph unions the placed component graphs and adds every bought
// edge as Buyable.
func (t *TreeInstance) MergeGraph() graph.Graph {
	var g graph.Graph
	for _, c := range t.Comps() {
		g = g.Union(c.Graph())
	}
	for _, e := range t.Edges() {
		g.AddEdge(graph.NewEdge(e.U, e.V, graph.Buyable))
	}
	return g
}

// topContract returns the most recent contractability annotation.
// Only reachable between a contractable components case and its edge
// cases, so a missing annotation is a broken expression.
func (t *TreeInstance) topContract() (int, []graph.Node) {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if t.stack[i].kind == fragContract {
			return t.stack[i].contractIdx, t.stack[i].freeNodes
		}
	}
	panic("proof: no contractability annotation on the stack")
}
