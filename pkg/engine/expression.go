package engine

import (
	"iter"
	"runtime"

	"github.com/twoecproof/twoec/pkg/concurrent"
)

type exprKind uint8

const (
	exprAll exprKind = iota
	exprAllOpt
	exprAllOptPar
	exprAny
	exprTactic
	exprOr
	exprAnd
	exprMap
)

// Expression is a proof search plan. It is assembled once from the
// package level constructors and proved against many instances.
type Expression[S any] struct {
	kind   exprKind
	enum   Enumerator[S]
	opt    OptEnumerator[S]
	tac    Tactic[S]
	mapper Mapper[S]
	left   *Expression[S]
	right  *Expression[S]
	sc     bool
}

// All proves sub for every enumerated case and short-circuits on the
// first failing one.
func All[S any](e Enumerator[S], sub *Expression[S]) *Expression[S] {
	return &Expression[S]{kind: exprAll, enum: e, left: sub, sc: true}
}

// AllSC is All with the short-circuit behavior under caller control.
// Without short-circuiting every case is recorded even after a failure,
// which makes failed searches slower but their trees complete.
func AllSC[S any](sc bool, e Enumerator[S], sub *Expression[S]) *Expression[S] {
	return &Expression[S]{kind: exprAll, enum: e, left: sub, sc: sc}
}

// Any proves sub for enumerated cases until one succeeds.
func Any[S any](e Enumerator[S], sub *Expression[S]) *Expression[S] {
	return &Expression[S]{kind: exprAny, enum: e, left: sub}
}

// AllOpt is All over an optional enumeration: when e declines,
// otherwise is proved in its place.
func AllOpt[S any](e OptEnumerator[S], sub, otherwise *Expression[S], sc bool) *Expression[S] {
	return &Expression[S]{kind: exprAllOpt, opt: e, left: sub, right: otherwise, sc: sc}
}

// AllOptPar is AllOpt proving all cases in parallel, each on its own
// clone of the instance. It never short-circuits; case order is
// preserved in the proof tree.
func AllOptPar[S any](e OptEnumerator[S], sub, otherwise *Expression[S], sc bool) *Expression[S] {
	return &Expression[S]{kind: exprAllOptPar, opt: e, left: sub, right: otherwise, sc: sc}
}

// Or tries each alternative in turn and returns the first successful
// proof as is. The chain folds to the right, so failures accumulate as
// nested structural nodes.
func Or[S any](exprs ...*Expression[S]) *Expression[S] {
	if len(exprs) == 0 {
		panic("engine: Or needs at least one alternative")
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return &Expression[S]{kind: exprOr, left: exprs[0], right: Or(exprs[1:]...)}
}

// And proves both parts and fails fast on the first.
func And[S any](a, b *Expression[S]) *Expression[S] {
	return &Expression[S]{kind: exprAnd, left: a, right: b}
}

// Map pushes the mapper's derived element around the sub proof.
func Map[S any](m Mapper[S], sub *Expression[S]) *Expression[S] {
	return &Expression[S]{kind: exprMap, mapper: m, left: sub}
}

// Step lifts a tactic into an expression.
func Step[S any](t Tactic[S]) *Expression[S] {
	return &Expression[S]{kind: exprTactic, tac: t}
}

// Prove runs the search against inst and returns the recorded proof.
// The instance's stack is left exactly as it was found.
func (e *Expression[S]) Prove(inst Instance[S]) *ProofNode {
	switch e.kind {
	case exprTactic:
		return e.tac.Prove(inst)
	case exprOr:
		first := e.left.Prove(inst)
		first.Eval()
		if first.Success() {
			return first
		}
		return NewOr(first, e.right.Prove(inst))
	case exprAnd:
		first := e.left.Prove(inst)
		first.Eval()
		if !first.Success() {
			return first
		}
		return NewAnd(first, e.right.Prove(inst))
	case exprMap:
		inst.Push(e.mapper.StackElement(inst))
		node := e.left.Prove(inst)
		inst.Pop()
		return node
	default:
		return e.proveQuantor(inst)
	}
}

func (e *Expression[S]) proveQuantor(inst Instance[S]) *ProofNode {
	var cases iter.Seq[S]
	var enumMsg string

	switch e.kind {
	case exprAll, exprAny:
		cases = e.enum.Cases(inst)
	case exprAllOpt, exprAllOptPar:
		seq, msg, ok := e.opt.TryCases(inst)
		if !ok {
			return e.right.Prove(inst)
		}
		cases, enumMsg = seq, msg
	}

	var proof *ProofNode
	switch e.kind {
	case exprAny:
		proof = NewAny(e.enum.Msg())
	case exprAll:
		proof = NewAll(e.enum.Msg())
	default:
		proof = NewAll(e.opt.Msg())
	}

	if e.kind == exprAllOptPar {
		e.proveParallel(inst, cases, enumMsg, proof)
	} else {
		for c := range cases {
			itemMsg := inst.ItemMsg(c, enumMsg)
			inst.Push(c)
			node := NewInfo(itemMsg, e.left.Prove(inst))
			res := node.Eval()
			proof.AddChild(node)
			inst.Pop()

			if e.kind == exprAny {
				if res {
					break
				}
			} else if !res && e.sc {
				break
			}
		}
	}

	proof.EvalAndPrune()
	return proof
}

type parCase[S any] struct {
	idx     int
	itemMsg string
	inst    Instance[S]
}

type parVerdict struct {
	idx  int
	node *ProofNode
}

func (e *Expression[S]) proveParallel(inst Instance[S], cases iter.Seq[S], enumMsg string, proof *ProofNode) {
	var jobs []parCase[S]
	for c := range cases {
		clone := inst.Clone()
		clone.Push(c)
		jobs = append(jobs, parCase[S]{
			idx:     len(jobs),
			itemMsg: inst.ItemMsg(c, enumMsg),
			inst:    clone,
		})
	}
	if len(jobs) == 0 {
		return
	}

	pool := concurrent.NewWorkerPool[parCase[S], parVerdict](runtime.NumCPU(), len(jobs))
	for _, job := range jobs {
		pool.AddJob(job)
	}
	pool.Close()
	pool.Start(func(job parCase[S]) parVerdict {
		node := NewInfo(job.itemMsg, e.left.Prove(job.inst))
		node.Eval()
		return parVerdict{idx: job.idx, node: node}
	})
	pool.Wait()

	nodes := make([]*ProofNode, len(jobs))
	for v := range pool.CollectResults() {
		nodes[v.idx] = v.node
	}
	for _, node := range nodes {
		proof.AddChild(node)
	}
}
