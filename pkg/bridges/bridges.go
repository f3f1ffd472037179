// Package bridges classifies graphs by their bridge structure. A
// bridge is an edge whose removal disconnects the graph; the merge
// feasibility rules price a merged component entirely by how its
// bridges and black vertices are laid out.
package bridges

import (
	"fmt"

	"github.com/twoecproof/twoec/pkg/graph"
)

// Kind is the outcome of classifying a graph.
type Kind uint8

const (
	// Empty: the graph has no nodes.
	Empty Kind = iota
	// NotConnected: the graph has two or more connected components.
	NotConnected
	// NoBridges: connected and bridgeless, so two edge disjoint paths
	// join every node pair.
	NoBridges
	// BlackLeaf: some black vertex hangs off a single bridge. The
	// credit rules do not price this degenerate shape; callers reject
	// such candidates and move on.
	BlackLeaf
	// Complex: connected with bridges, and every black vertex sits on
	// at least two of them.
	Complex
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case NotConnected:
		return "not connected"
	case NoBridges:
		return "no bridges"
	case BlackLeaf:
		return "black leaf"
	case Complex:
		return "complex"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Result describes the bridge structure of a graph. Bridges and Black
// are only populated for Complex and are in canonical ascending order.
type Result struct {
	Kind    Kind
	Bridges []graph.Edge
	Black   []graph.Node
}

// Classify. determines the bridge structure of g. White vertices are
// exempt from being black: a black vertex is a non white vertex all of
// whose incident edges are bridges.
func Classify(g graph.Graph, white []graph.Node) Result {
	if g.NumNodes() == 0 {
		return Result{Kind: Empty}
	}

	bridgeIdx, firstComp := scanBridges(g, false)
	if firstComp < g.NumNodes() {
		return Result{Kind: NotConnected}
	}
	if len(bridgeIdx) == 0 {
		return Result{Kind: NoBridges}
	}

	isBridge := make([]bool, g.NumEdges())
	for _, i := range bridgeIdx {
		isBridge[i] = true
	}
	whiteSet := make(map[graph.Node]bool, len(white))
	for _, n := range white {
		whiteSet[n] = true
	}

	var black []graph.Node
	edges := g.Edges()
	for _, n := range g.Nodes() {
		if whiteSet[n] {
			continue
		}
		deg := 0
		allBridges := true
		for i, e := range edges {
			if !e.Touches(n) {
				continue
			}
			deg++
			if !isBridge[i] {
				allBridges = false
				break
			}
		}
		if deg == 0 || !allBridges {
			continue
		}
		// every incident edge of a black vertex is a bridge, so its
		// bridge degree equals its degree
		if deg == 1 {
			return Result{Kind: BlackLeaf}
		}
		black = append(black, n)
	}

	bridgeEdges := make([]graph.Edge, 0, len(bridgeIdx))
	for _, i := range bridgeIdx {
		bridgeEdges = append(bridgeEdges, edges[i])
	}
	graph.SortEdges(bridgeEdges)

	return Result{Kind: Complex, Bridges: bridgeEdges, Black: black}
}

// HasAnyBridge. reports whether g contains at least one bridge,
// scanning components until the first one is found.
func HasAnyBridge(g graph.Graph) bool {
	bridgeIdx, _ := scanBridges(g, true)
	return len(bridgeIdx) > 0
}

// dfsFrame is one suspended node visit of the iterative scan. viaEdge
// is the index of the edge used to reach the node, -1 for roots;
// tracking the edge rather than the parent node keeps parallel edges
// from being mistaken for the tree edge.
type dfsFrame struct {
	node    graph.Node
	viaEdge int
	next    int
}

// scanBridges runs a lowpoint depth first search over every component
// of g. It returns the edge indices of all bridges and the number of
// nodes reachable from the smallest node. stopEarly aborts the scan
// once one bridge is known.
func scanBridges(g graph.Graph, stopEarly bool) ([]int, int) {
	adj := g.Adjacency()
	disc := make(map[graph.Node]int, g.NumNodes())
	low := make(map[graph.Node]int, g.NumNodes())
	var bridgeIdx []int

	time := 0
	firstComp := 0
	for rootNo, root := range g.Nodes() {
		if _, seen := disc[root]; seen {
			continue
		}
		if rootNo > 0 && firstComp == 0 {
			firstComp = time
		}

		disc[root] = time
		low[root] = time
		time++

		stack := []dfsFrame{{node: root, viaEdge: -1}}
		for len(stack) > 0 {
			top := len(stack) - 1
			n := stack[top].node
			if stack[top].next < len(adj[n]) {
				inc := adj[n][stack[top].next]
				stack[top].next++
				if inc.EdgeIndex == stack[top].viaEdge {
					continue
				}
				if d, seen := disc[inc.To]; seen {
					if d < low[n] {
						low[n] = d
					}
					continue
				}
				disc[inc.To] = time
				low[inc.To] = time
				time++
				stack = append(stack, dfsFrame{node: inc.To, viaEdge: inc.EdgeIndex})
				continue
			}

			// node finished: fold its lowpoint into the parent and
			// test the tree edge for being a bridge
			finished := stack[top]
			stack = stack[:top]
			if top == 0 {
				continue
			}
			parent := stack[top-1].node
			if low[n] < low[parent] {
				low[parent] = low[n]
			}
			if low[n] > disc[parent] {
				bridgeIdx = append(bridgeIdx, finished.viaEdge)
				if stopEarly {
					return bridgeIdx, firstComp
				}
			}
		}
	}

	if firstComp == 0 {
		// a single component was scanned, or none
		firstComp = time
	}
	return bridgeIdx, firstComp
}
