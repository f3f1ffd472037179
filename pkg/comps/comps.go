// Package comps holds the fixed catalogue of components proof
// instances are assembled from: the cycles C3 to C6, the generic
// Large component and the two complex templates. Components are
// immutable values; relabeling into a fresh node id range goes
// through Shifted, which returns a copy.
package comps

import (
	"fmt"
	"strings"

	"github.com/twoecproof/twoec/pkg/credit"
	"github.com/twoecproof/twoec/pkg/graph"
	"github.com/twoecproof/twoec/pkg/util"
)

// Kind tags the three component families of the catalogue.
type Kind uint8

const (
	// KindCycle is a chordless cycle, C3 up to C6.
	KindCycle Kind = iota
	// KindLarge is the generic large component, represented by a
	// single placeholder node.
	KindLarge
	// KindComplex is a complex template carrying bridges, blocks and
	// black vertices.
	KindComplex
)

// Component is one catalogue component. The zero value is not a valid
// component; use the catalogue constructors.
type Component struct {
	kind Kind
	name string
	// nodes are the matching nodes: the cycle nodes in cycle order,
	// the placeholder node of a Large component, or the black nodes
	// of a complex template.
	nodes []graph.Node
	// g is the underlying graph of a complex template. Cycle and
	// Large graphs are derived from nodes on demand.
	g         graph.Graph
	numBlocks int
	blackDeg  int
}

func newCycle(name string, n int) Component {
	nodes := make([]graph.Node, n)
	for i := range nodes {
		nodes[i] = graph.Node(i)
	}
	return Component{kind: KindCycle, name: name, nodes: nodes}
}

// C3 returns the triangle with nodes 0, 1, 2.
func C3() Component { return newCycle("C3", 3) }

// C4 returns the 4-cycle with nodes 0 to 3.
func C4() Component { return newCycle("C4", 4) }

// C5 returns the 5-cycle with nodes 0 to 4.
func C5() Component { return newCycle("C5", 5) }

// C6 returns the 6-cycle with nodes 0 to 5.
func C6() Component { return newCycle("C6", 6) }

// Large returns the generic large component with placeholder node 0.
func Large() Component {
	return Component{kind: KindLarge, name: "Large", nodes: []graph.Node{0}}
}

// ComplexPath returns the complex template whose black vertices form
// a path: a triangle block at each end joined by a chain of six black
// vertices.
func ComplexPath() Component {
	return Component{
		kind:  KindComplex,
		name:  "Complex Path",
		nodes: []graph.Node{1, 2, 3, 4, 5, 6},
		g: graph.FromEdges(
			graph.NewEdge(0, 1, graph.Fixed),
			graph.NewEdge(0, 8, graph.Fixed),
			graph.NewEdge(8, 9, graph.Fixed),
			graph.NewEdge(9, 0, graph.Fixed),
			graph.NewEdge(1, 2, graph.Sellable),
			graph.NewEdge(2, 3, graph.Sellable),
			graph.NewEdge(3, 4, graph.Sellable),
			graph.NewEdge(4, 5, graph.Sellable),
			graph.NewEdge(5, 6, graph.Sellable),
			graph.NewEdge(6, 7, graph.Fixed),
			graph.NewEdge(7, 10, graph.Fixed),
			graph.NewEdge(10, 11, graph.Fixed),
			graph.NewEdge(11, 7, graph.Fixed),
		),
		numBlocks: 2,
		blackDeg:  12,
	}
}

// ComplexTree returns the complex template whose black vertices form
// a tree: three triangle blocks joined through a branching chain of
// seven black vertices.
func ComplexTree() Component {
	return Component{
		kind:  KindComplex,
		name:  "Complex Tree",
		nodes: []graph.Node{1, 2, 3, 4, 5, 7, 8},
		g: graph.FromEdges(
			graph.NewEdge(0, 10, graph.Fixed),
			graph.NewEdge(10, 11, graph.Fixed),
			graph.NewEdge(11, 0, graph.Fixed),
			graph.NewEdge(0, 1, graph.Sellable),
			graph.NewEdge(1, 2, graph.Sellable),
			graph.NewEdge(2, 3, graph.Sellable),
			graph.NewEdge(3, 4, graph.Sellable),
			graph.NewEdge(4, 5, graph.Sellable),
			graph.NewEdge(3, 7, graph.Sellable),
			graph.NewEdge(7, 8, graph.Sellable),
			graph.NewEdge(5, 6, graph.Fixed),
			graph.NewEdge(6, 14, graph.Fixed),
			graph.NewEdge(14, 15, graph.Fixed),
			graph.NewEdge(15, 6, graph.Fixed),
			graph.NewEdge(8, 9, graph.Fixed),
			graph.NewEdge(9, 12, graph.Fixed),
			graph.NewEdge(12, 13, graph.Fixed),
			graph.NewEdge(13, 9, graph.Fixed),
		),
		numBlocks: 3,
		blackDeg:  15,
	}
}

func (c Component) Kind() Kind { return c.kind }

func (c Component) IsCycle() bool { return c.kind == KindCycle }

func (c Component) IsLarge() bool { return c.kind == KindLarge }

func (c Component) IsComplex() bool { return c.kind == KindComplex }

// CycleLen returns the cycle length, or 0 for non-cycles.
func (c Component) CycleLen() int {
	if c.kind != KindCycle {
		return 0
	}
	return len(c.nodes)
}

// ShortName is the catalogue name, such as "C4" or "Complex Path".
func (c Component) ShortName() string { return c.name }

func (c Component) String() string {
	switch c.kind {
	case KindCycle:
		parts := make([]string, len(c.nodes))
		for i, n := range c.nodes {
			parts[i] = n.String()
		}
		return fmt.Sprintf("%s [%s]", c.name, strings.Join(parts, "-"))
	case KindLarge:
		return fmt.Sprintf("Large [%s]", c.nodes[0])
	}
	return c.name
}

// MatchingNodes returns the nodes matching edges may attach to. The
// slice is shared with the component and must not be mutated.
func (c Component) MatchingNodes() []graph.Node {
	return c.nodes
}

// MatchingPermutations returns every ordered choice of size matching
// nodes. A Large component has only its placeholder node and yields a
// single arrangement repeating it.
func (c Component) MatchingPermutations(size int) [][]graph.Node {
	if c.kind == KindLarge {
		return [][]graph.Node{util.Repeat(c.nodes[0], size)}
	}
	return util.Permutations(c.nodes, size)
}

// EdgePairs returns the endpoint pairs of the component's own edges:
// consecutive cycle pairs including the closing pair, the edges of a
// complex template, nothing for Large.
func (c Component) EdgePairs() [][2]graph.Node {
	switch c.kind {
	case KindCycle:
		pairs := make([][2]graph.Node, len(c.nodes))
		for i, n := range c.nodes {
			pairs[i] = [2]graph.Node{n, c.nodes[(i+1)%len(c.nodes)]}
		}
		return pairs
	case KindComplex:
		pairs := make([][2]graph.Node, 0, c.g.NumEdges())
		for _, e := range c.g.Edges() {
			pairs = append(pairs, [2]graph.Node{e.U, e.V})
		}
		return pairs
	}
	return nil
}

// Graph returns the component's graph: the cycle with sellable edges,
// the single placeholder node, or a copy of the complex template.
func (c Component) Graph() graph.Graph {
	switch c.kind {
	case KindCycle:
		var g graph.Graph
		for _, p := range c.EdgePairs() {
			g.AddEdge(graph.NewEdge(p[0], p[1], graph.Sellable))
		}
		return g
	case KindLarge:
		var g graph.Graph
		g.AddNode(c.nodes[0])
		return g
	}
	return c.g.Clone()
}

// NumEdges is the edge count the credit scheme prices the component
// at. Large and complex components count as 8 regardless of their
// actual shape.
func (c Component) NumEdges() int {
	if c.kind == KindCycle {
		return len(c.nodes)
	}
	return 8
}

// NumNodes is the number of node ids the component occupies, counting
// the non-matching nodes of complex templates.
func (c Component) NumNodes() int {
	if c.kind == KindComplex {
		return c.g.NumNodes()
	}
	return len(c.nodes)
}

// IsAdjacent reports whether u and v are joined by a component edge.
// Cycle nodes are labeled consecutively, so cycle adjacency is id
// distance one or the closing pair. The placeholder node of Large is
// adjacent to nothing.
func (c Component) IsAdjacent(u, v graph.Node) bool {
	switch c.kind {
	case KindCycle:
		if u > v {
			u, v = v, u
		}
		return v-u == 1 || (u == c.nodes[0] && v == c.nodes[len(c.nodes)-1])
	case KindComplex:
		return c.g.HasEdgeBetween(u, v)
	}
	return false
}

// FixedNode is the canonical entry node of the component: the first
// cycle node, the Large placeholder, or the middle black vertex of a
// complex template.
func (c Component) FixedNode() graph.Node {
	if c.kind == KindComplex {
		return c.nodes[3]
	}
	return c.nodes[0]
}

// Contains reports whether n is one of the component's matching
// nodes.
func (c Component) Contains(n graph.Node) bool {
	for _, m := range c.nodes {
		if m == n {
			return true
		}
	}
	return false
}

// Incident returns a matching node of the component lying on e, if
// any.
func (c Component) Incident(e graph.Edge) (graph.Node, bool) {
	for _, n := range c.nodes {
		if e.Touches(n) {
			return n, true
		}
	}
	return 0, false
}

// Credits is the credit the component carries under the scheme: the
// two edge connected credit for cycles, the large credit, or the
// complex component price including its blocks and black vertices.
func (c Component) Credits(sc credit.Scheme) credit.Credit {
	switch c.kind {
	case KindCycle:
		return sc.TwoECCredit(len(c.nodes))
	case KindLarge:
		return sc.LargeCredit()
	}
	return sc.BlockCredit().
		MulInt(int64(c.numBlocks)).
		Add(sc.BlackCredit(c.blackDeg)).
		Add(sc.ComplexCompCredit())
}

// Shifted returns a copy with every node id increased by offset.
func (c Component) Shifted(offset graph.Node) Component {
	nodes := make([]graph.Node, len(c.nodes))
	for i, n := range c.nodes {
		nodes[i] = n + offset
	}
	shifted := c
	shifted.nodes = nodes
	if c.kind == KindComplex {
		shifted.g = c.g.Shifted(offset)
	}
	return shifted
}
