// Package merge decides whether a set of components joined by
// matching edges can be traded into a single creditable component.
// The search buys matching edges and sells sellable edges, then asks
// the bridge classification whether the remaining graph forms a two
// edge connected or an admissible complex component, and whether the
// credit balance pays for it.
package merge

import (
	"fmt"
	"iter"

	"github.com/twoecproof/twoec/pkg/bridges"
	"github.com/twoecproof/twoec/pkg/credit"
	"github.com/twoecproof/twoec/pkg/graph"
)

// Feasibility is the verdict of a merge search.
type Feasibility uint8

const (
	// Impossible: no buy and sell combination works out.
	Impossible Feasibility = iota
	// FeasibleLarge: some combination leaves a bridgeless connected
	// graph and enough credit for a large component.
	FeasibleLarge
	// FeasibleComplex: some combination leaves an admissible complex
	// graph and enough credit for its blocks and black vertices.
	FeasibleComplex
)

func (f Feasibility) String() string {
	switch f {
	case Impossible:
		return "impossible"
	case FeasibleLarge:
		return "feasible large"
	case FeasibleComplex:
		return "feasible complex"
	}
	return fmt.Sprintf("feasibility(%d)", uint8(f))
}

// Result carries the verdict and, when feasible, the witness trade.
type Result struct {
	Kind   Feasibility
	Bought []graph.Edge
	Sold   []graph.Edge
	// NewCompCredit is the credit the merged component has to hold,
	// which the balance available + |sold| - |bought| covered.
	NewCompCredit credit.Credit
}

// FindFeasibleMerge searches the cross product of sellSets and
// buySets for a trade that merges g into one component. available is
// the credit the participating components bring in; every sold edge
// earns one credit, every bought edge costs one. white vertices are
// exempt from the black vertex rules. anyComplex widens the search to
// complex outcomes without the large credit cutoff.
//
// Both streams must restart when ranged over again; the buy stream is
// replayed once per sell set. The first feasible combination in
// stream order wins, so the caller's stream order fixes the witness.
func FindFeasibleMerge(
	g graph.Graph,
	buySets iter.Seq[[]graph.Edge],
	sellSets iter.Seq[[]graph.Edge],
	available credit.Credit,
	white []graph.Node,
	sc credit.Scheme,
	anyComplex bool,
) Result {
	for sell := range sellSets {
		totalPlusSell := available.Add(credit.FromInt(int64(len(sell))))

		for buy := range buySets {
			credits := totalPlusSell.Sub(credit.FromInt(int64(len(buy))))

			// without a complex participant only a large outcome can
			// pay off, so a balance below the large credit is hopeless
			if !anyComplex && !credits.AtLeast(sc.LargeCredit()) {
				continue
			}

			check := g.FilterEdges(func(e graph.Edge) bool {
				switch e.Kind {
				case graph.Sellable:
					return !graph.ContainsEdge(sell, e)
				case graph.Buyable:
					return graph.ContainsEdge(buy, e)
				}
				return true
			})

			res := bridges.Classify(check, white)
			switch res.Kind {
			case bridges.NoBridges:
				if credits.AtLeast(sc.LargeCredit()) {
					return Result{
						Kind:          FeasibleLarge,
						Bought:        buy,
						Sold:          sell,
						NewCompCredit: sc.LargeCredit(),
					}
				}
			case bridges.Complex:
				need := complexDemand(check, res, sc)
				if credits.AtLeast(need) {
					return Result{
						Kind:          FeasibleComplex,
						Bought:        buy,
						Sold:          sell,
						NewCompCredit: need,
					}
				}
			case bridges.BlackLeaf, bridges.NotConnected, bridges.Empty:
				// unpriceable shapes, try the next combination
			}
		}
	}
	return Result{Kind: Impossible}
}

// complexDemand prices a complex outcome: one credit per block, the
// black vertex credit for the total bridge degree of all black
// vertices, and the complex component base credit.
func complexDemand(check graph.Graph, res bridges.Result, sc credit.Scheme) credit.Credit {
	blackSet := make(map[graph.Node]bool, len(res.Black))
	for _, b := range res.Black {
		blackSet[b] = true
	}

	// blocks are the components left after cutting every edge at a
	// black vertex, not counting the black vertices themselves
	blocksGraph := check.FilterEdges(func(e graph.Edge) bool {
		return !blackSet[e.U] && !blackSet[e.V]
	})
	numBlocks := len(blocksGraph.ConnectedComponents()) - len(res.Black)

	blackDeg := 0
	for _, b := range res.Black {
		for _, e := range res.Bridges {
			if e.Touches(b) {
				blackDeg++
			}
		}
	}

	return sc.BlockCredit().
		MulInt(int64(numBlocks)).
		Add(sc.BlackCredit(blackDeg)).
		Add(sc.ComplexCompCredit())
}
