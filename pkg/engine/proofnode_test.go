package engine

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func TestEvalWalksEveryChild(t *testing.T) {
	all := NewAll("every case")
	trailing := NewInfo("later case", NewLeaf("fine", true))
	all.AddChild(NewInfo("first case", NewLeaf("broken", false)))
	all.AddChild(trailing)

	require.False(t, all.Eval())
	require.True(t, trailing.evaluated)
	require.True(t, trailing.Success())
}

func TestVacuousQuantifiers(t *testing.T) {
	require.True(t, NewAll("no cases").Eval())
	require.False(t, NewAny("no cases").Eval())
}

func TestAnyNeedsOneWitness(t *testing.T) {
	miss := NewAny("find one")
	miss.AddChild(NewInfo("a", NewLeaf("no", false)))
	require.False(t, miss.Eval())

	hit := NewAny("find one")
	hit.AddChild(NewInfo("a", NewLeaf("no", false)))
	hit.AddChild(NewInfo("b", NewLeaf("yes", true)))
	require.True(t, hit.Eval())
}

func TestStructuralOrAndVerdicts(t *testing.T) {
	require.True(t, NewOr(NewLeaf("l", false), NewLeaf("r", true)).Eval())
	require.False(t, NewOr(NewLeaf("l", false), NewLeaf("r", false)).Eval())
	require.True(t, NewAnd(NewLeaf("l", true), NewLeaf("r", true)).Eval())
	require.False(t, NewAnd(NewLeaf("l", true), NewLeaf("r", false)).Eval())
}

func TestEvalAndPruneKeepsOnlySupportingChildren(t *testing.T) {
	all := NewAll("every case")
	all.AddChild(NewInfo("ok case", NewLeaf("fine", true)))
	all.AddChild(NewInfo("bad case", NewLeaf("broken", false)))
	all.AddChild(NewInfo("worse case", NewLeaf("also broken", false)))

	require.False(t, all.EvalAndPrune())
	require.Len(t, all.children, 2)
	for _, c := range all.children {
		require.False(t, c.Success())
	}

	witness := NewAny("find one")
	witness.AddChild(NewInfo("miss", NewLeaf("no", false)))
	witness.AddChild(NewInfo("hit", NewLeaf("yes", true)))

	require.True(t, witness.EvalAndPrune())
	require.Len(t, witness.children, 1)
	require.Equal(t, "hit", witness.children[0].msg)
}

func TestEvalAndPruneKeepsAllCasesOfProvenAll(t *testing.T) {
	all := NewAll("every case")
	all.AddChild(NewInfo("a", NewLeaf("ok", true)))
	all.AddChild(NewInfo("b", NewLeaf("ok", true)))

	require.True(t, all.EvalAndPrune())
	require.Len(t, all.children, 2)
}

func TestAddChildOnlyOnQuantifiers(t *testing.T) {
	require.Panics(t, func() {
		NewLeaf("x", true).AddChild(NewLeaf("y", true))
	})
}

func TestWriteTreeRendering(t *testing.T) {
	root := NewAll("Enumerate components")
	root.AddChild(NewInfo("Component C3", NewLeaf("direct merge", true)))

	blocked := NewOr(NewLeaf("direct merge", false), NewLeaf("merge after contraction", true))
	root.AddChild(NewInfo("Component C4", blocked))

	witness := NewAny("Find a merge partner")
	witness.AddChild(NewInfo("Partner C3", NewLeaf("no shared matching", false)))
	witness.AddChild(NewInfo("Partner Large", NewLeaf("credits suffice", true)))
	root.AddChild(NewInfo("Component C5", witness))

	root.Eval()

	var buf bytes.Buffer
	require.NoError(t, root.WriteTree(&buf, 10))

	g := goldie.New(t)
	g.Assert(t, "proof_render", buf.Bytes())
}

func TestWriteTreeCollapsesProvenSubtrees(t *testing.T) {
	root := NewAll("Enumerate components")
	root.AddChild(NewInfo("Component C3", NewLeaf("direct merge", true)))

	failing := NewAny("Find a merge partner")
	failing.AddChild(NewInfo("Partner C3", NewLeaf("no shared matching", false)))
	root.AddChild(NewInfo("Component C4", failing))

	root.Eval()

	var buf bytes.Buffer
	require.NoError(t, root.WriteTree(&buf, 0))

	want := "Enumerate components ❌\n" +
		"    Component C4 ❌\n" +
		"        Find a merge partner ❌\n" +
		"            Partner C3 ❌\n" +
		"                no shared matching ❌\n"
	require.Equal(t, want, buf.String())
}
