package engine

import (
	"fmt"
	"io"
	"strings"
)

type nodeKind uint8

const (
	leafNode nodeKind = iota
	infoNode
	allNode
	anyNode
	orNode
	andNode
)

// ProofNode is one step of a recorded proof. Quantifier nodes collect
// one child per enumerated case, Info nodes label the subtree of a
// single case, and leaves carry a tactic verdict. Or and And nodes are
// structural: they evaluate but never render.
type ProofNode struct {
	kind      nodeKind
	msg       string
	children  []*ProofNode
	evaluated bool
	success   bool
}

func NewLeaf(msg string, success bool) *ProofNode {
	return &ProofNode{kind: leafNode, msg: msg, evaluated: true, success: success}
}

func NewAll(msg string) *ProofNode {
	return &ProofNode{kind: allNode, msg: msg}
}

func NewAny(msg string) *ProofNode {
	return &ProofNode{kind: anyNode, msg: msg}
}

func NewInfo(msg string, child *ProofNode) *ProofNode {
	return &ProofNode{kind: infoNode, msg: msg, children: []*ProofNode{child}}
}

func NewOr(child1, child2 *ProofNode) *ProofNode {
	return &ProofNode{kind: orNode, children: []*ProofNode{child1, child2}}
}

func NewAnd(child1, child2 *ProofNode) *ProofNode {
	return &ProofNode{kind: andNode, children: []*ProofNode{child1, child2}}
}

// AddChild appends a case subtree. Only All and Any nodes take children
// this way.
func (p *ProofNode) AddChild(child *ProofNode) {
	if p.kind != allNode && p.kind != anyNode {
		panic("engine: AddChild on non-quantifier proof node")
	}
	p.children = append(p.children, child)
}

// Success reports the evaluated verdict. Eval must have run first.
func (p *ProofNode) Success() bool {
	if !p.evaluated {
		panic("engine: Success queried before Eval")
	}
	return p.success
}

// Eval computes and memoizes the verdict of the subtree. Every child is
// evaluated, even once the node's own verdict is settled, so that the
// rendered tree shows an outcome for each recorded case.
func (p *ProofNode) Eval() bool {
	if p.evaluated {
		return p.success
	}
	switch p.kind {
	case infoNode:
		p.success = p.children[0].Eval()
	case allNode, andNode:
		p.success = true
		for _, c := range p.children {
			if !c.Eval() {
				p.success = false
			}
		}
	case anyNode, orNode:
		p.success = false
		for _, c := range p.children {
			if c.Eval() {
				p.success = true
			}
		}
	}
	p.evaluated = true
	return p.success
}

// EvalAndPrune evaluates the node and then drops children that do not
// support its verdict: a failed All keeps only failing cases, a
// successful Any keeps only its witnesses. Parallel quantifiers record
// every case, so without pruning their trees grow far beyond what the
// verdict needs.
func (p *ProofNode) EvalAndPrune() bool {
	res := p.Eval()
	switch {
	case p.kind == allNode && !p.success:
		p.retain(false)
	case p.kind == anyNode && p.success:
		p.retain(true)
	}
	return res
}

func (p *ProofNode) retain(success bool) {
	kept := p.children[:0]
	for _, c := range p.children {
		if c.Success() == success {
			kept = append(kept, c)
		}
	}
	p.children = kept
}

func (p *ProofNode) String() string {
	if p.Success() {
		return p.msg + " ✔️"
	}
	return p.msg + " ❌"
}

// WriteTree renders the evaluated proof with four-space indentation.
// Subtrees that succeed below depth maxDepthTrue are collapsed to keep
// large successful proofs reviewable; failing branches always render in
// full. Or and And nodes pass their children through at the same depth.
func (p *ProofNode) WriteTree(w io.Writer, maxDepthTrue int) error {
	return p.writeTree(w, 0, maxDepthTrue)
}

func (p *ProofNode) writeTree(w io.Writer, depth, maxDepthTrue int) error {
	childDepth := depth
	if p.kind != orNode && p.kind != andNode {
		childDepth++
		if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("    ", depth), p.String()); err != nil {
			return err
		}
	}
	for _, c := range p.children {
		if c.Success() && depth == maxDepthTrue {
			continue
		}
		if err := c.writeTree(w, childDepth, maxDepthTrue); err != nil {
			return err
		}
	}
	return nil
}
