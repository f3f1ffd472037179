package bridges

import (
	"testing"

	"golang.org/x/exp/rand"

	"github.com/twoecproof/twoec/pkg/graph"
)

func cycle(kind graph.EdgeKind, nodes ...graph.Node) graph.Graph {
	var g graph.Graph
	for i := range nodes {
		g.AddEdge(graph.NewEdge(nodes[i], nodes[(i+1)%len(nodes)], kind))
	}
	return g
}

func path(kind graph.EdgeKind, nodes ...graph.Node) graph.Graph {
	var g graph.Graph
	for i := 0; i+1 < len(nodes); i++ {
		g.AddEdge(graph.NewEdge(nodes[i], nodes[i+1], kind))
	}
	return g
}

func TestClassifyBridgeless(t *testing.T) {
	testCases := []struct {
		name string
		g    graph.Graph
	}{
		{name: "triangle", g: cycle(graph.Sellable, 0, 1, 2)},
		{name: "four cycle", g: cycle(graph.Sellable, 0, 1, 2, 3)},
		{name: "six cycle", g: cycle(graph.Sellable, 0, 1, 2, 3, 4, 5)},
		{
			name: "triangles joined by two matching edges",
			g: graph.FromEdges(
				graph.NewEdge(0, 1, graph.Sellable),
				graph.NewEdge(1, 2, graph.Sellable),
				graph.NewEdge(2, 0, graph.Sellable),
				graph.NewEdge(3, 4, graph.Sellable),
				graph.NewEdge(4, 5, graph.Sellable),
				graph.NewEdge(5, 3, graph.Sellable),
				graph.NewEdge(2, 3, graph.Buyable),
				graph.NewEdge(1, 4, graph.Buyable),
			),
		},
		{
			name: "triangles joined by three matching edges",
			g: graph.FromEdges(
				graph.NewEdge(0, 1, graph.Sellable),
				graph.NewEdge(1, 2, graph.Sellable),
				graph.NewEdge(2, 0, graph.Sellable),
				graph.NewEdge(3, 4, graph.Sellable),
				graph.NewEdge(4, 5, graph.Sellable),
				graph.NewEdge(5, 3, graph.Sellable),
				graph.NewEdge(2, 3, graph.Buyable),
				graph.NewEdge(1, 4, graph.Buyable),
				graph.NewEdge(0, 5, graph.Buyable),
			),
		},
		{
			name: "parallel pair",
			g: graph.FromEdges(
				graph.NewEdge(0, 1, graph.Sellable),
				graph.NewEdge(0, 1, graph.Buyable),
			),
		},
		{
			name: "single node",
			g: func() graph.Graph {
				var g graph.Graph
				g.AddNode(4)
				return g
			}(),
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			res := Classify(tt.g, nil)
			if res.Kind != NoBridges {
				t.Errorf("got %s, want no bridges", res.Kind)
			}
			if HasAnyBridge(tt.g) {
				t.Error("HasAnyBridge disagrees with the classification")
			}
		})
	}
}

func TestClassifyEmptyAndDisconnected(t *testing.T) {
	if got := Classify(graph.New(), nil); got.Kind != Empty {
		t.Errorf("empty graph: got %s", got.Kind)
	}

	two := graph.FromEdges(
		graph.NewEdge(0, 1, graph.Sellable),
		graph.NewEdge(2, 3, graph.Sellable),
	)
	if got := Classify(two, nil); got.Kind != NotConnected {
		t.Errorf("two components: got %s", got.Kind)
	}
}

func TestClassifyJoinedTriangles(t *testing.T) {
	// one connecting edge makes it a bridge, but both endpoints keep
	// their cycle edges, so no vertex turns black
	g := graph.FromEdges(
		graph.NewEdge(0, 1, graph.Sellable),
		graph.NewEdge(1, 2, graph.Sellable),
		graph.NewEdge(2, 0, graph.Sellable),
		graph.NewEdge(2, 3, graph.Buyable),
		graph.NewEdge(3, 4, graph.Sellable),
		graph.NewEdge(4, 5, graph.Sellable),
		graph.NewEdge(5, 3, graph.Sellable),
	)
	res := Classify(g, nil)
	if res.Kind != Complex {
		t.Fatalf("got %s, want complex", res.Kind)
	}
	if len(res.Bridges) != 1 || res.Bridges[0] != graph.NewEdge(2, 3, graph.Buyable) {
		t.Errorf("bridges: got %v", res.Bridges)
	}
	if len(res.Black) != 0 {
		t.Errorf("black vertices: got %v, want none", res.Black)
	}
}

func TestClassifyPath(t *testing.T) {
	g := path(graph.Sellable, 0, 1, 2, 3)

	// without white vertices both endpoints are black leaves
	if res := Classify(g, nil); res.Kind != BlackLeaf {
		t.Errorf("got %s, want black leaf", res.Kind)
	}

	// whitening the endpoints leaves the two middle vertices black,
	// each on two bridges
	res := Classify(g, []graph.Node{0, 3})
	if res.Kind != Complex {
		t.Fatalf("got %s, want complex", res.Kind)
	}
	if len(res.Bridges) != 3 {
		t.Errorf("bridges: got %v, want all three path edges", res.Bridges)
	}
	wantBlack := []graph.Node{1, 2}
	if len(res.Black) != 2 || res.Black[0] != wantBlack[0] || res.Black[1] != wantBlack[1] {
		t.Errorf("black vertices: got %v, want %v", res.Black, wantBlack)
	}
}

func TestClassifyStar(t *testing.T) {
	g := graph.FromEdges(
		graph.NewEdge(0, 1, graph.Sellable),
		graph.NewEdge(0, 2, graph.Sellable),
		graph.NewEdge(0, 3, graph.Sellable),
	)

	// all leaves white: only the center is black, sitting on three
	// bridges
	res := Classify(g, []graph.Node{1, 2, 3})
	if res.Kind != Complex {
		t.Fatalf("got %s, want complex", res.Kind)
	}
	if len(res.Black) != 1 || res.Black[0] != 0 {
		t.Errorf("black vertices: got %v, want [0]", res.Black)
	}
	if len(res.Bridges) != 3 {
		t.Errorf("bridges: got %v, want three", res.Bridges)
	}

	// without white vertices every leaf is a black leaf
	if res := Classify(g, nil); res.Kind != BlackLeaf {
		t.Errorf("got %s, want black leaf", res.Kind)
	}
}

func TestBridgeOrderIsCanonical(t *testing.T) {
	g := path(graph.Sellable, 3, 1, 2, 0)
	res := Classify(g, []graph.Node{0, 1, 2, 3})
	if res.Kind != Complex {
		t.Fatalf("got %s, want complex", res.Kind)
	}
	want := []graph.Edge{
		graph.NewEdge(0, 2, graph.Sellable),
		graph.NewEdge(1, 2, graph.Sellable),
		graph.NewEdge(1, 3, graph.Sellable),
	}
	if len(res.Bridges) != len(want) {
		t.Fatalf("bridges: got %v, want %v", res.Bridges, want)
	}
	for i := range want {
		if res.Bridges[i] != want[i] {
			t.Errorf("bridges not canonical: got %v, want %v", res.Bridges, want)
			break
		}
	}
}

// naiveBridges removes each edge in turn and checks whether the
// component count grows.
func naiveBridges(g graph.Graph) []graph.Edge {
	base := len(g.ConnectedComponents())
	var out []graph.Edge
	for i := range g.Edges() {
		var without graph.Graph
		for _, n := range g.Nodes() {
			without.AddNode(n)
		}
		for j, e := range g.Edges() {
			if j != i {
				without.AddEdge(e)
			}
		}
		if len(without.ConnectedComponents()) > base {
			out = append(out, g.Edges()[i])
		}
	}
	graph.SortEdges(out)
	return out
}

func TestScanAgreesWithRemovalOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		n := 2 + rng.Intn(7)
		var g graph.Graph
		for u := 0; u < n; u++ {
			g.AddNode(graph.Node(u))
		}
		for u := 0; u < n; u++ {
			for v := u + 1; v < n; v++ {
				if rng.Intn(100) < 35 {
					g.AddEdge(graph.NewEdge(graph.Node(u), graph.Node(v), graph.Sellable))
				}
			}
		}
		// sprinkle the occasional parallel edge
		if g.NumEdges() > 0 && rng.Intn(4) == 0 {
			e := g.Edges()[rng.Intn(g.NumEdges())]
			g.AddEdge(graph.NewEdge(e.U, e.V, graph.Buyable))
		}

		want := naiveBridges(g)

		bridgeIdx, _ := scanBridges(g, false)
		got := make([]graph.Edge, 0, len(bridgeIdx))
		for _, i := range bridgeIdx {
			got = append(got, g.Edges()[i])
		}
		graph.SortEdges(got)

		if len(got) != len(want) {
			t.Fatalf("trial %d on %s: got %v, want %v", trial, g, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("trial %d on %s: got %v, want %v", trial, g, got, want)
			}
		}

		if HasAnyBridge(g) != (len(want) > 0) {
			t.Fatalf("trial %d on %s: HasAnyBridge disagrees with oracle", trial, g)
		}
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	g := graph.FromEdges(
		graph.NewEdge(0, 1, graph.Sellable),
		graph.NewEdge(1, 2, graph.Sellable),
		graph.NewEdge(2, 0, graph.Sellable),
		graph.NewEdge(2, 3, graph.Buyable),
		graph.NewEdge(3, 4, graph.Sellable),
	)
	first := Classify(g, []graph.Node{4})
	for i := 0; i < 10; i++ {
		again := Classify(g, []graph.Node{4})
		if again.Kind != first.Kind || len(again.Bridges) != len(first.Bridges) || len(again.Black) != len(first.Black) {
			t.Fatal("classification must be deterministic")
		}
		for j := range first.Bridges {
			if again.Bridges[j] != first.Bridges[j] {
				t.Fatal("bridge order must be deterministic")
			}
		}
	}
}
