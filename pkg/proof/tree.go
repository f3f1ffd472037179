package proof

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/twoecproof/twoec/pkg/comps"
	"github.com/twoecproof/twoec/pkg/credit"
	"github.com/twoecproof/twoec/pkg/engine"
)

// treeStats holds the counting tactics of one tree expression so the
// driver can report them after the run.
type treeStats struct {
	twoMerge   *DirectMerge
	twoContr   *DirectMerge
	threeMerge *DirectMerge
	threeContr *DirectMerge
	exhausted  *Exhausted[TreeFragment]
}

func newTreeStats() *treeStats {
	return &treeStats{
		twoMerge:   NewDirectMerge("2-Comp Merge"),
		twoContr:   NewDirectMerge("2-Comp Merge via Contractability"),
		threeMerge: NewDirectMerge("3-Comp Merge"),
		threeContr: NewDirectMerge("3-Comp Merge via Contractability"),
		exhausted:  NewExhausted[TreeFragment](false),
	}
}

func (st *treeStats) log(log *zap.Logger) {
	for _, dm := range []*DirectMerge{st.twoMerge, st.twoContr, st.threeMerge, st.threeContr} {
		log.Info("tactic stats",
			zap.String("tactic", dm.Name()),
			zap.Int64("proved", dm.Proofs()),
			zap.Int64("calls", dm.Calls()))
	}
	log.Info("unproved tree matching instances", zap.Int64("count", st.exhausted.Calls()))
}

// treeExpression is the full tree case search: for every appended
// component and every matching against it, either merge the pair
// directly, exploit a contractible component, or append a third
// component and merge the triple. The outer quantifiers honor the
// short-circuit setting so disproofs can record every failing case.
func treeExpression(sc bool, st *treeStats) *engine.Expression[TreeFragment] {
	contractTwo := engine.Any(ContractableComponents{},
		engine.All(ContractedEdgeCases{}, engine.Step[TreeFragment](st.twoContr)))
	contractThree := engine.Any(ContractableComponents{},
		engine.All(ContractedEdgeCases{}, engine.Step[TreeFragment](st.threeContr)))

	tripleMerge := engine.All(ComponentCases{},
		engine.All(NewMatchingCases(3),
			engine.Or(
				engine.Step[TreeFragment](st.threeMerge),
				contractThree,
			)))

	return engine.AllSC(sc, ComponentCases{},
		engine.AllSC(sc, NewMatchingCases(3),
			engine.Or(
				engine.Step[TreeFragment](st.twoMerge),
				contractTwo,
				tripleMerge,
				engine.Step[TreeFragment](st.exhausted),
			)))
}

// ProveTreeCase runs the tree case search for one leaf component,
// writes the proof artifact, and reports whether the case holds.
func ProveTreeCase(leaf comps.Component, inner []comps.Component, sc credit.Scheme, opts Options, log *zap.Logger) (bool, error) {
	st := newTreeStats()
	expr := treeExpression(opts.ShortCircuit, st)
	inst := NewTreeInstance(sc, inner, leaf)

	log.Info("proving tree case",
		zap.String("leaf", leaf.ShortName()),
		zap.String("scheme", sc.String()))

	proof := expr.Prove(inst)
	proved := proof.Eval()
	st.log(log)

	name := fmt.Sprintf("proof_%s.txt", leaf.ShortName())
	if !proved {
		name = fmt.Sprintf("wrong_proof_%s.txt", leaf.ShortName())
	}
	path, err := WriteArtifact(opts.OutputDir, name, sc, proof, opts.OutputDepth, opts.Compress)
	if err != nil {
		return proved, err
	}

	if proved {
		log.Info("proved tree case",
			zap.String("leaf", leaf.ShortName()),
			zap.String("artifact", path))
	} else {
		log.Warn("disproved tree case",
			zap.String("leaf", leaf.ShortName()),
			zap.String("artifact", path))
	}
	return proved, nil
}

// ProveTreeCases proves one tree case per selected leaf component,
// cases in parallel, and reports whether all of them hold.
func ProveTreeCases(sel *comps.Selection, sc credit.Scheme, opts Options, log *zap.Logger) (bool, error) {
	results := make([]bool, len(sel.Leaves))
	var g errgroup.Group
	for i, leaf := range sel.Leaves {
		g.Go(func() error {
			ok, err := ProveTreeCase(leaf, sel.Inner, sc, opts, log)
			results[i] = ok
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	proved := true
	for _, ok := range results {
		proved = proved && ok
	}
	return proved, nil
}
