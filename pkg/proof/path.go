package proof

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/twoecproof/twoec/pkg/comps"
	"github.com/twoecproof/twoec/pkg/credit"
	"github.com/twoecproof/twoec/pkg/engine"
	"github.com/twoecproof/twoec/pkg/graph"
)

// tacticCounter is the reporting surface of a counting tactic.
type tacticCounter interface {
	Name() string
	Calls() int64
	Proofs() int64
}

// pathStats holds the counting tactics of one path expression so the
// driver can report them after the run.
type pathStats struct {
	localMerge *LocalMerge
	pendant    *PendantRewire
	longerPath *LongerPath
	exhausted  *Exhausted[PathFragment]
}

func newPathStats() *pathStats {
	return &pathStats{
		localMerge: NewLocalMerge(),
		pendant:    NewPendantRewire(),
		longerPath: NewLongerPath(),
		exhausted:  NewExhausted[PathFragment](false),
	}
}

func (st *pathStats) log(log *zap.Logger) {
	for _, t := range []tacticCounter{st.localMerge, st.pendant, st.longerPath} {
		log.Info("tactic stats",
			zap.String("tactic", t.Name()),
			zap.Int64("proved", t.Proofs()),
			zap.Int64("calls", t.Calls()))
	}
	log.Info("unproved path instances", zap.Int64("count", st.exhausted.Calls()))
}

// pathExpression is the path case search at the given remaining
// depth: make progress on the instance as it stands, or split it
// further, settling missing matching edges first and attaching the
// next component once the matchings are accounted for. Only the
// outermost extension fans out on the worker pool; nested splits stay
// sequential inside their worker.
func pathExpression(st *pathStats, opts Options, depth int, par bool) *engine.Expression[PathFragment] {
	if depth <= 0 {
		return engine.Step[PathFragment](st.exhausted)
	}

	progress := engine.Or(
		engine.Step[PathFragment](st.localMerge),
		engine.Step[PathFragment](st.pendant),
		engine.Step[PathFragment](st.longerPath),
	)

	sub := pathExpression(st, opts, depth-1, false)
	extend := engine.AllOpt(PathExtension{}, sub,
		engine.Step[PathFragment](st.exhausted), opts.ShortCircuit)
	if par {
		extend = engine.AllOptPar(PathExtension{}, sub,
			engine.Step[PathFragment](st.exhausted), opts.ShortCircuit)
	}
	split := engine.AllOpt(EdgeCases{}, sub, extend, opts.ShortCircuit)

	return engine.Or(progress, split)
}

// initialPathCases builds the starting instances for one last
// component: one per entry node, pre expanded depth components deep
// so the case split fans out before the search begins.
func initialPathCases(sc credit.Scheme, choices []PathChoice, last PathChoice, depth int) []*PathInstance {
	starts := []graph.Node{last.Comp.FixedNode()}
	if last.Comp.IsComplex() {
		starts = last.Comp.MatchingNodes()
	}

	insts := make([]*PathInstance, 0, len(starts))
	for _, in := range starts {
		insts = append(insts, NewPathInstance(sc, choices, last, in))
	}

	for d := 1; d < depth; d++ {
		var next []*PathInstance
		for _, pi := range insts {
			for _, frag := range pathCompCases(pi) {
				clone := pi.Clone().(*PathInstance)
				clone.Push(frag)
				next = append(next, clone)
			}
		}
		insts = next
	}
	return insts
}

// ProvePathCase runs the path progress search for one last component,
// writes the proof artifact, and reports whether the case holds.
func ProvePathCase(last PathChoice, choices []PathChoice, sc credit.Scheme, opts Options, log *zap.Logger) (bool, error) {
	st := newPathStats()
	expr := pathExpression(st, opts, opts.MaxDepth, opts.Parallel)
	instances := initialPathCases(sc, choices, last, opts.InitialDepth)

	log.Info("proving path case",
		zap.String("last", last.ShortName()),
		zap.Int("instances", len(instances)),
		zap.String("scheme", sc.String()))

	nodes := make([]*engine.ProofNode, len(instances))
	if opts.Parallel {
		var g errgroup.Group
		for i, pi := range instances {
			g.Go(func() error {
				caseMsg := pi.String()
				node := engine.NewInfo(caseMsg, expr.Prove(pi))
				node.Eval()
				nodes[i] = node
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return false, err
		}
	} else {
		for i, pi := range instances {
			caseMsg := pi.String()
			node := engine.NewInfo(caseMsg, expr.Prove(pi))
			node.Eval()
			nodes[i] = node
		}
	}

	proof := engine.NewAll("Full proof")
	for _, node := range nodes {
		proof.AddChild(node)
	}
	proved := proof.Eval()
	st.log(log)

	name := fmt.Sprintf("proof_%s.txt", last.ShortName())
	if !proved {
		name = fmt.Sprintf("wrong_proof_%s.txt", last.ShortName())
	}
	path, err := WriteArtifact(opts.OutputDir, name, sc, proof, opts.OutputDepth, opts.Compress)
	if err != nil {
		return proved, err
	}

	if proved {
		log.Info("proved path case",
			zap.String("last", last.ShortName()),
			zap.String("artifact", path))
	} else {
		log.Warn("disproved path case",
			zap.String("last", last.ShortName()),
			zap.String("artifact", path))
	}
	return proved, nil
}

// ProvePathCases proves path progress for every selected leaf
// component and reports whether all cases hold. Cases run one after
// another; each spreads its own instances over the pool.
func ProvePathCases(sel *comps.Selection, sc credit.Scheme, opts Options, log *zap.Logger) (bool, error) {
	choices := PathChoices(sel.Inner)
	proved := true
	for _, last := range PathChoices(sel.Leaves) {
		ok, err := ProvePathCase(last, choices, sc, opts, log)
		if err != nil {
			return false, err
		}
		proved = proved && ok
	}
	return proved, nil
}
