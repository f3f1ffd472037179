package proof

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/twoecproof/twoec/pkg/comps"
	"github.com/twoecproof/twoec/pkg/credit"
	"github.com/twoecproof/twoec/pkg/engine"
	"github.com/twoecproof/twoec/pkg/graph"
	"github.com/twoecproof/twoec/pkg/util"
)

// Pidx is the position of a component on the nice path, counted from
// the end: the last component has index 0 and every extension attaches
// at the next higher index.
type Pidx int

const (
	Last    Pidx = 0
	Prelast Pidx = 1
)

func (p Pidx) String() string {
	switch p {
	case Last:
		return "Last"
	case Prelast:
		return "Prelast"
	}
	return fmt.Sprintf("Path[%d]", int(p))
}

// PathComp is one component placed on the nice path. In is the node
// where the path enters from the unexplored side; Out is the node
// joined to the In node of the component one step closer to the end.
// The last component carries no Out node. InitialNPs are the nice
// pairs the component brings along: its own edges, plus the pairs the
// placement enumeration settled.
type PathComp struct {
	Comp       comps.Component
	In         graph.Node
	Out        graph.Node
	HasOut     bool
	Used       bool
	Idx        Pidx
	InitialNPs [][2]graph.Node
}

func (pc PathComp) String() string {
	used := ""
	if pc.Used {
		used = ", used"
	}
	if !pc.HasOut {
		return fmt.Sprintf("[%s, in=%s, idx=%s%s, np=%s]",
			pc.Comp.ShortName(), pc.In, pc.Idx, used, joinPairs(pc.InitialNPs))
	}
	// with both ends settled only the non trivial pairs are worth showing
	var extra [][2]graph.Node
	for _, p := range pc.InitialNPs {
		if !pc.Comp.IsAdjacent(p[0], p[1]) {
			extra = append(extra, p)
		}
	}
	return fmt.Sprintf("[%s, in=%s, out=%s, idx=%s%s, np=%s]",
		pc.Comp.ShortName(), pc.In, pc.Out, pc.Idx, used, joinPairs(extra))
}

// PathEdge is a concrete edge between two placed components, priced
// for merges. Path edges are not normalized; compare them with
// Touches.
type PathEdge struct {
	U, V graph.Node
	Cost credit.Credit
}

func (e PathEdge) String() string {
	return fmt.Sprintf("%s-%s", e.U, e.V)
}

func (e PathEdge) Touches(n graph.Node) bool {
	return e.U == n || e.V == n
}

// HalfEdge is a matching obligation: an edge known to leave Source
// into the part of the path that is not revealed yet. Obligations are
// numbered per instance so later case splits can discharge them.
type HalfEdge struct {
	Source    graph.Node
	SourceIdx Pidx
	ID        int
	Cost      credit.Credit
}

func (e HalfEdge) String() string {
	return fmt.Sprintf("%s-REM(c=%s,id=ID(%d))", e.Source, e.Cost, e.ID)
}

// PathFragment is one immutable unit of path case state: a placed
// component, settled edges and nice pairs, outside hits, fresh
// obligations, or discharged obligation ids. Fragments are never
// mutated after construction, so instance clones share them.
type PathFragment struct {
	comps       []PathComp
	edges       []PathEdge
	nicePairs   [][2]graph.Node
	outside     []graph.Node
	obligations []HalfEdge
	discharged  []int
}

func pathCompFragment(pc PathComp) PathFragment {
	return PathFragment{comps: []PathComp{pc}}
}

func (f PathFragment) String() string {
	var parts []string
	if len(f.comps) > 0 {
		names := make([]string, len(f.comps))
		for i, pc := range f.comps {
			names[i] = pc.String()
		}
		parts = append(parts, "PathComps: "+strings.Join(names, ", "))
	}
	if len(f.edges) > 0 {
		parts = append(parts, "Edges: "+joinPathEdges(f.edges))
	}
	if len(f.nicePairs) > 0 {
		parts = append(parts, "NicePairs: "+joinPairs(f.nicePairs))
	}
	if len(f.outside) > 0 {
		parts = append(parts, "Outside: "+graph.JoinNodes(f.outside))
	}
	if len(f.obligations) > 0 {
		parts = append(parts, "Rem: "+joinHalfEdges(f.obligations))
	}
	if len(f.discharged) > 0 {
		ids := make([]string, len(f.discharged))
		for i, id := range f.discharged {
			ids[i] = "ID(" + strconv.Itoa(id) + ")"
		}
		parts = append(parts, "Discharged: "+strings.Join(ids, ","))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// PathChoice is a component the adversary may place on the path. A
// used C5 already spent its extra credit on an earlier shortcut and
// follows stricter traversal rules.
type PathChoice struct {
	Comp comps.Component
	Used bool
}

func (pc PathChoice) ShortName() string {
	if pc.Used {
		return "aided-" + pc.Comp.ShortName()
	}
	return pc.Comp.ShortName()
}

// PathChoices expands components into path choices: every component
// unused, and C5 additionally in its used variant.
func PathChoices(cs []comps.Component) []PathChoice {
	var out []PathChoice
	for _, c := range cs {
		out = append(out, PathChoice{Comp: c})
		if c.CycleLen() == 5 {
			out = append(out, PathChoice{Comp: c, Used: true})
		}
	}
	return out
}

// NicePairSet answers nice pair queries against the facts collected
// on the instance.
type NicePairSet struct {
	pairs [][2]graph.Node
}

func (s NicePairSet) IsNicePair(u, v graph.Node) bool {
	for _, p := range s.pairs {
		if (p[0] == u && p[1] == v) || (p[0] == v && p[1] == u) {
			return true
		}
	}
	return false
}

// PathInstance is the proof state of one nice path case: a stack of
// fragments describing the components placed so far, the matching
// facts settled between them, and the obligations still open.
// Components own contiguous node id ranges in placement order, which
// is how edge endpoints are attributed.
type PathInstance struct {
	scheme  credit.Scheme
	choices []PathChoice
	stack   []PathFragment
}

// NewPathInstance starts a path case at the given last component,
// entered at in. The choices are what the extension enumerator may
// attach.
func NewPathInstance(sc credit.Scheme, choices []PathChoice, last PathChoice, in graph.Node) *PathInstance {
	pc := PathComp{
		Comp:       last.Comp,
		In:         in,
		Used:       last.Used,
		Idx:        Last,
		InitialNPs: last.Comp.EdgePairs(),
	}
	return &PathInstance{
		scheme:  sc,
		choices: choices,
		stack:   []PathFragment{pathCompFragment(pc)},
	}
}

func (pi *PathInstance) Push(f PathFragment) {
	pi.stack = append(pi.stack, f)
}

func (pi *PathInstance) Pop() {
	util.AssertPanic(len(pi.stack) > 0, "proof: pop on empty path instance")
	pi.stack = pi.stack[:len(pi.stack)-1]
}

// Clone copies the stack; fragments are immutable and shared.
func (pi *PathInstance) Clone() engine.Instance[PathFragment] {
	stack := make([]PathFragment, len(pi.stack))
	copy(stack, pi.stack)
	return &PathInstance{scheme: pi.scheme, choices: pi.choices, stack: stack}
}

// ItemMsg renders the case headline for one fragment the way the
// proof tree reports it.
func (pi *PathInstance) ItemMsg(item PathFragment, enumMsg string) string {
	return fmt.Sprintf("part %s: %s", enumMsg, item)
}

func (pi *PathInstance) String() string {
	placed := pi.PathComps()
	names := make([]string, len(placed))
	for i, pc := range placed {
		names[i] = pc.String()
	}
	var added [][2]graph.Node
	for _, f := range pi.stack {
		added = append(added, f.nicePairs...)
	}
	return fmt.Sprintf("Instance: [%s] E=[%s] O=[%s] R=[%s] NP=[%s]",
		strings.Join(names, ", "),
		joinPathEdges(pi.AllEdges()),
		graph.JoinNodes(pi.OutsideHits()),
		joinHalfEdges(pi.OpenObligations()),
		joinPairs(added))
}

// Profile is the short component sequence of the case, for logs.
func (pi *PathInstance) Profile() string {
	placed := pi.PathComps()
	names := make([]string, len(placed))
	for i, pc := range placed {
		names[i] = pc.Comp.ShortName()
	}
	return strings.Join(names, "--")
}

// PathComps returns the placed components in placement order, which
// is ascending path index order.
func (pi *PathInstance) PathComps() []PathComp {
	var placed []PathComp
	for _, f := range pi.stack {
		placed = append(placed, f.comps...)
	}
	return placed
}

// AllEdges returns the settled edges of the instance: the concrete
// edges of all fragments plus the path edges implied between
// consecutive components.
func (pi *PathInstance) AllEdges() []PathEdge {
	var edges []PathEdge
	for _, f := range pi.stack {
		edges = append(edges, f.edges...)
	}
	placed := pi.PathComps()
	for i := 0; i+1 < len(placed); i++ {
		edges = append(edges, PathEdge{
			U:    placed[i].In,
			V:    placed[i+1].Out,
			Cost: credit.FromInt(1),
		})
	}
	return edges
}

// NicePairs collects the nice pair facts: the initial pairs of every
// placed component plus the pairs settled later.
func (pi *PathInstance) NicePairs() NicePairSet {
	var pairs [][2]graph.Node
	for _, f := range pi.stack {
		for _, pc := range f.comps {
			pairs = append(pairs, pc.InitialNPs...)
		}
		pairs = append(pairs, f.nicePairs...)
	}
	return NicePairSet{pairs: pairs}
}

// OutsideHits returns the nodes with an edge leaving the instance.
func (pi *PathInstance) OutsideHits() []graph.Node {
	var hits []graph.Node
	for _, f := range pi.stack {
		hits = append(hits, f.outside...)
	}
	return hits
}

// OpenObligations returns the obligations no later fragment has
// discharged, in creation order.
func (pi *PathInstance) OpenObligations() []HalfEdge {
	discharged := make(map[int]bool)
	for _, f := range pi.stack {
		for _, id := range f.discharged {
			discharged[id] = true
		}
	}
	var open []HalfEdge
	for _, f := range pi.stack {
		for _, ob := range f.obligations {
			if !discharged[ob.ID] {
				open = append(open, ob)
			}
		}
	}
	return open
}

// nextObligationID returns one past the highest id the instance has
// seen, discharged or not. Ids start at 1.
func (pi *PathInstance) nextObligationID() int {
	max := 0
	for _, f := range pi.stack {
		for _, ob := range f.obligations {
			if ob.ID > max {
				max = ob.ID
			}
		}
		for _, id := range f.discharged {
			if id > max {
				max = id
			}
		}
	}
	return max + 1
}

// NumNodes is the total node id space the placed components occupy;
// the next component is shifted here.
func (pi *PathInstance) NumNodes() int {
	total := 0
	for _, pc := range pi.PathComps() {
		total += pc.Comp.NumNodes()
	}
	return total
}

// compNodeOf reports whether n is the placeholder of a placed Large
// component. Placeholder nodes host any number of matching edges.
func (pi *PathInstance) compNodeOf(n graph.Node) bool {
	for _, pc := range pi.PathComps() {
		if pc.Comp.IsLarge() && pc.Comp.Contains(n) {
			return true
		}
	}
	return false
}

func joinPathEdges(edges []PathEdge) string {
	parts := make([]string, len(edges))
	for i, e := range edges {
		parts[i] = e.String()
	}
	return strings.Join(parts, ",")
}

func joinHalfEdges(edges []HalfEdge) string {
	parts := make([]string, len(edges))
	for i, e := range edges {
		parts[i] = e.String()
	}
	return strings.Join(parts, ",")
}

func joinPairs(pairs [][2]graph.Node) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = fmt.Sprintf("(%s,%s)", p[0], p[1])
	}
	return strings.Join(parts, ",")
}
