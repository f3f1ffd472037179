// Package graph holds the small undirected multigraphs the prover
// reasons about. Graphs here are value types with flat node and edge
// slices: the search loops clone and filter them constantly, so the
// representation favors cheap copies over rich indexing.
package graph

import (
	"fmt"
	"sort"
	"strings"
)

// Node identifies a vertex. Ids carry no meaning beyond identity;
// relabeling helpers keep them unique when component graphs are
// combined into one instance graph.
type Node uint32

func (n Node) String() string {
	return fmt.Sprintf("%d", n)
}

// EdgeKind states how an edge participates in credit trades.
type EdgeKind uint8

const (
	// Fixed edges can neither be sold nor dropped.
	Fixed EdgeKind = iota
	// Sellable edges may be sold for one credit each.
	Sellable
	// Buyable edges may be bought for one credit each. A buyable edge
	// is only present in a checked graph if it was actually bought.
	Buyable
)

func (k EdgeKind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case Sellable:
		return "sellable"
	case Buyable:
		return "buyable"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Edge is an undirected edge between U and V. Endpoints are normalized
// so that U <= V, which makes equality and canonical ordering plain
// value comparisons.
type Edge struct {
	U, V Node
	Kind EdgeKind
}

// NewEdge builds a normalized edge. Self loops are a contract
// violation: nothing in the case enumeration can produce one.
func NewEdge(u, v Node, kind EdgeKind) Edge {
	if u == v {
		panic(fmt.Sprintf("graph: self loop at node %d", u))
	}
	if u > v {
		u, v = v, u
	}
	return Edge{U: u, V: v, Kind: kind}
}

// Touches reports whether n is an endpoint of e.
func (e Edge) Touches(n Node) bool {
	return e.U == n || e.V == n
}

// Other returns the endpoint opposite to n.
func (e Edge) Other(n Node) Node {
	if e.U == n {
		return e.V
	}
	if e.V == n {
		return e.U
	}
	panic(fmt.Sprintf("graph: node %d not on edge %s", n, e))
}

// SamePair reports whether both edges join the same two nodes,
// ignoring the kind.
func (e Edge) SamePair(o Edge) bool {
	return e.U == o.U && e.V == o.V
}

func (e Edge) String() string {
	return fmt.Sprintf("%d-%d", e.U, e.V)
}

// ContainsEdge reports whether edges holds an edge with the same
// endpoints as e, ignoring the kind.
func ContainsEdge(edges []Edge, e Edge) bool {
	for _, o := range edges {
		if o.SamePair(e) {
			return true
		}
	}
	return false
}

// SortEdges orders edges canonically by (U, V, Kind).
func SortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].U != edges[j].U {
			return edges[i].U < edges[j].U
		}
		if edges[i].V != edges[j].V {
			return edges[i].V < edges[j].V
		}
		return edges[i].Kind < edges[j].Kind
	})
}

// JoinEdges renders edges as "0-4, 1-5". Used for case labels and
// proof leaf messages.
func JoinEdges(edges []Edge) string {
	var sb strings.Builder
	for i, e := range edges {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	return sb.String()
}

// JoinNodes renders nodes as "1,2,3".
func JoinNodes(nodes []Node) string {
	var sb strings.Builder
	for i, n := range nodes {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(n.String())
	}
	return sb.String()
}

// Graph is an undirected multigraph. Nodes are kept sorted and unique,
// edges in insertion order. Parallel edges are allowed, self loops are
// not. The zero value is an empty graph ready for use.
type Graph struct {
	nodes []Node
	edges []Edge
}

// New returns an empty graph.
func New() Graph {
	return Graph{}
}

// FromEdges builds a graph whose node set is exactly the endpoints of
// the given edges.
func FromEdges(edges ...Edge) Graph {
	var g Graph
	for _, e := range edges {
		g.AddEdge(e)
	}
	return g
}

// AddNode inserts n if not yet present.
func (g *Graph) AddNode(n Node) {
	i := sort.Search(len(g.nodes), func(i int) bool { return g.nodes[i] >= n })
	if i < len(g.nodes) && g.nodes[i] == n {
		return
	}
	g.nodes = append(g.nodes, 0)
	copy(g.nodes[i+1:], g.nodes[i:])
	g.nodes[i] = n
}

// AddEdge inserts e, adding its endpoints as nodes.
func (g *Graph) AddEdge(e Edge) {
	if e.U == e.V {
		panic(fmt.Sprintf("graph: self loop at node %d", e.U))
	}
	g.AddNode(e.U)
	g.AddNode(e.V)
	g.edges = append(g.edges, e)
}

// Clone returns an independent copy.
func (g Graph) Clone() Graph {
	c := Graph{
		nodes: make([]Node, len(g.nodes)),
		edges: make([]Edge, len(g.edges)),
	}
	copy(c.nodes, g.nodes)
	copy(c.edges, g.edges)
	return c
}

func (g Graph) NumNodes() int {
	return len(g.nodes)
}

func (g Graph) NumEdges() int {
	return len(g.edges)
}

// Nodes returns the node set in ascending order. The slice is shared
// with the graph and must not be mutated.
func (g Graph) Nodes() []Node {
	return g.nodes
}

// Edges returns the edges in insertion order. The slice is shared with
// the graph and must not be mutated.
func (g Graph) Edges() []Edge {
	return g.edges
}

func (g Graph) HasNode(n Node) bool {
	i := sort.Search(len(g.nodes), func(i int) bool { return g.nodes[i] >= n })
	return i < len(g.nodes) && g.nodes[i] == n
}

// HasEdgeBetween reports whether any edge joins u and v.
func (g Graph) HasEdgeBetween(u, v Node) bool {
	for _, e := range g.edges {
		if e.Touches(u) && e.Touches(v) {
			return true
		}
	}
	return false
}

// Degree counts edge endpoints at n, so a parallel edge counts twice.
func (g Graph) Degree(n Node) int {
	deg := 0
	for _, e := range g.edges {
		if e.Touches(n) {
			deg++
		}
	}
	return deg
}

// IncidentEdges returns the edges touching n in insertion order.
func (g Graph) IncidentEdges(n Node) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Touches(n) {
			out = append(out, e)
		}
	}
	return out
}

// Neighbors returns the distinct nodes adjacent to n in ascending
// order.
func (g Graph) Neighbors(n Node) []Node {
	seen := make(map[Node]bool)
	for _, e := range g.edges {
		if e.Touches(n) {
			seen[e.Other(n)] = true
		}
	}
	out := make([]Node, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// EdgesOfKind returns the edges of the given kind in insertion order.
func (g Graph) EdgesOfKind(kind EdgeKind) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// FilterEdges returns a graph with the same node set but only the
// edges keep accepts. Nodes isolated by the filter stay in the graph.
func (g Graph) FilterEdges(keep func(Edge) bool) Graph {
	c := Graph{nodes: make([]Node, len(g.nodes))}
	copy(c.nodes, g.nodes)
	for _, e := range g.edges {
		if keep(e) {
			c.edges = append(c.edges, e)
		}
	}
	return c
}

// Shifted returns a copy with every node id increased by offset.
func (g Graph) Shifted(offset Node) Graph {
	c := Graph{
		nodes: make([]Node, len(g.nodes)),
		edges: make([]Edge, len(g.edges)),
	}
	for i, n := range g.nodes {
		c.nodes[i] = n + offset
	}
	for i, e := range g.edges {
		c.edges[i] = Edge{U: e.U + offset, V: e.V + offset, Kind: e.Kind}
	}
	return c
}

// Union returns a graph holding the nodes and edges of both graphs.
// Edge multiplicities add up; callers keep node id ranges disjoint
// unless overlap is intended.
func (g Graph) Union(o Graph) Graph {
	c := g.Clone()
	for _, n := range o.nodes {
		c.AddNode(n)
	}
	c.edges = append(c.edges, o.edges...)
	return c
}

// Incidence is one adjacency entry: the opposite endpoint and the
// index of the connecting edge in Edges(). Carrying the edge index
// lets traversals tell parallel edges apart.
type Incidence struct {
	To        Node
	EdgeIndex int
}

// Adjacency builds the adjacency lists keyed by node. Every node of
// the graph has an entry, isolated nodes map to nil.
func (g Graph) Adjacency() map[Node][]Incidence {
	adj := make(map[Node][]Incidence, len(g.nodes))
	for _, n := range g.nodes {
		adj[n] = nil
	}
	for i, e := range g.edges {
		adj[e.U] = append(adj[e.U], Incidence{To: e.V, EdgeIndex: i})
		adj[e.V] = append(adj[e.V], Incidence{To: e.U, EdgeIndex: i})
	}
	return adj
}

// ConnectedComponents returns the node sets of the connected
// components. Isolated nodes form singleton components. Components
// are ordered by their smallest node, nodes inside a component
// ascending.
func (g Graph) ConnectedComponents() [][]Node {
	adj := g.Adjacency()
	visited := make(map[Node]bool, len(g.nodes))
	var comps [][]Node
	for _, start := range g.nodes {
		if visited[start] {
			continue
		}
		var comp []Node
		queue := []Node{start}
		visited[start] = true
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			comp = append(comp, n)
			for _, inc := range adj[n] {
				if !visited[inc.To] {
					visited[inc.To] = true
					queue = append(queue, inc.To)
				}
			}
		}
		sort.Slice(comp, func(i, j int) bool { return comp[i] < comp[j] })
		comps = append(comps, comp)
	}
	return comps
}

// Connected reports whether the graph has exactly one connected
// component. The empty graph is not connected.
func (g Graph) Connected() bool {
	return len(g.ConnectedComponents()) == 1
}

// Equal reports whether both graphs have the same node set and the
// same edge multiset.
func (g Graph) Equal(o Graph) bool {
	if len(g.nodes) != len(o.nodes) || len(g.edges) != len(o.edges) {
		return false
	}
	for i, n := range g.nodes {
		if o.nodes[i] != n {
			return false
		}
	}
	a := make([]Edge, len(g.edges))
	b := make([]Edge, len(o.edges))
	copy(a, g.edges)
	copy(b, o.edges)
	SortEdges(a)
	SortEdges(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (g Graph) String() string {
	var sb strings.Builder
	sb.WriteString("graph{")
	sb.WriteString(JoinEdges(g.edges))
	sb.WriteString("}")
	return sb.String()
}
