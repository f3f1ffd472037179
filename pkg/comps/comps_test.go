package comps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twoecproof/twoec/pkg/credit"
	"github.com/twoecproof/twoec/pkg/graph"
)

func TestCatalogueCredits(t *testing.T) {
	sc := credit.NewInvariant(credit.New(1, 3))

	tests := []struct {
		comp Component
		want string
	}{
		{C3(), "1"},
		{C4(), "4/3"},
		{C5(), "5/3"},
		{C6(), "2"},
		{Large(), "2"},
		{ComplexPath(), "19/3"},
		{ComplexTree(), "47/6"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.comp.Credits(sc).String(), tt.comp.ShortName())
	}
}

func TestDisplayNames(t *testing.T) {
	require.Equal(t, "C6 [0-1-2-3-4-5]", C6().String())
	require.Equal(t, "C3 [5-6-7]", C3().Shifted(5).String())
	require.Equal(t, "Large [4]", Large().Shifted(4).String())
	require.Equal(t, "Complex Path", ComplexPath().String())
	require.Equal(t, "Complex Tree", ComplexTree().String())
}

func TestCycleShape(t *testing.T) {
	g := C4().Graph()
	require.Equal(t, 4, g.NumNodes())
	require.Equal(t, 4, g.NumEdges())
	require.Len(t, g.EdgesOfKind(graph.Sellable), 4)

	require.Equal(t, [][2]graph.Node{{0, 1}, {1, 2}, {2, 3}, {3, 0}}, C4().EdgePairs())
}

func TestComplexTemplates(t *testing.T) {
	p := ComplexPath()
	pg := p.Graph()
	require.Equal(t, 12, pg.NumNodes())
	require.Equal(t, 13, pg.NumEdges())
	require.Len(t, pg.EdgesOfKind(graph.Sellable), 5)
	require.Equal(t, []graph.Node{1, 2, 3, 4, 5, 6}, p.MatchingNodes())
	require.Equal(t, graph.Node(4), p.FixedNode())

	tr := ComplexTree()
	tg := tr.Graph()
	require.Equal(t, 16, tg.NumNodes())
	require.Equal(t, 18, tg.NumEdges())
	require.Len(t, tg.EdgesOfKind(graph.Sellable), 7)
	require.Equal(t, []graph.Node{1, 2, 3, 4, 5, 7, 8}, tr.MatchingNodes())

	// the scheme prices both templates as 8 edge components
	require.Equal(t, 8, p.NumEdges())
	require.Equal(t, 8, tr.NumEdges())
}

func TestCycleAdjacency(t *testing.T) {
	c := C5().Shifted(7)
	require.True(t, c.IsAdjacent(7, 8))
	require.True(t, c.IsAdjacent(11, 10))
	require.True(t, c.IsAdjacent(7, 11), "closing pair")
	require.False(t, c.IsAdjacent(7, 9))

	require.False(t, Large().IsAdjacent(0, 0))

	p := ComplexPath().Shifted(4)
	require.True(t, p.IsAdjacent(4, 5))
	require.True(t, p.IsAdjacent(7, 8))
	require.False(t, p.IsAdjacent(5, 7))
}

func TestShiftedRelabeling(t *testing.T) {
	c := C4().Shifted(5)
	require.Equal(t, []graph.Node{5, 6, 7, 8}, c.MatchingNodes())
	require.Equal(t, []graph.Node{5, 6, 7, 8}, c.Graph().Nodes())

	// the original stays untouched
	require.Equal(t, []graph.Node{0, 1, 2, 3}, C4().MatchingNodes())

	p := ComplexPath().Shifted(10)
	require.Equal(t, graph.Node(14), p.FixedNode())
	require.True(t, p.Graph().HasEdgeBetween(10, 11))
	require.Equal(t, 12, p.NumNodes())
}

func TestMatchingPermutations(t *testing.T) {
	require.Len(t, C3().MatchingPermutations(3), 6)
	require.Len(t, C4().MatchingPermutations(3), 24)
	require.Len(t, ComplexTree().MatchingPermutations(2), 42)

	require.Equal(t,
		[][]graph.Node{{3, 3, 3}},
		Large().Shifted(3).MatchingPermutations(3))
}

func TestIncidentAndContains(t *testing.T) {
	c := C3()
	n, ok := c.Incident(graph.NewEdge(2, 9, graph.Buyable))
	require.True(t, ok)
	require.Equal(t, graph.Node(2), n)

	_, ok = c.Incident(graph.NewEdge(7, 9, graph.Buyable))
	require.False(t, ok)

	p := ComplexPath()
	require.True(t, p.Contains(6))
	require.False(t, p.Contains(0), "triangle nodes are not matching nodes")
	require.False(t, p.Contains(8))
}

func TestLoadSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.yaml")
	data := []byte("leaves: [C3, Large]\ninner: [C3, C4, Complex Path]\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	sel, err := LoadSelection(path)
	require.NoError(t, err)
	require.Len(t, sel.Leaves, 2)
	require.Len(t, sel.Inner, 3)
	require.Equal(t, "Large", sel.Leaves[1].ShortName())
	require.Equal(t, "Complex Path", sel.Inner[2].ShortName())
}

func TestLoadSelectionRejectsUnknownName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.yaml")
	require.NoError(t, os.WriteFile(path, []byte("leaves: [C9]\ninner: [C3]\n"), 0o644))

	_, err := LoadSelection(path)
	require.ErrorContains(t, err, `unknown component "C9"`)
}

func TestLoadSelectionRejectsUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.yaml")
	require.NoError(t, os.WriteFile(path, []byte("leafs: [C3]\n"), 0o644))

	_, err := LoadSelection(path)
	require.Error(t, err)
}

func TestDefaultSelection(t *testing.T) {
	sel := DefaultSelection()
	require.Len(t, sel.Leaves, 5)
	require.Len(t, sel.Inner, 7)
}
