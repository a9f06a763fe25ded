package seed

import (
	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/router"
	"github.com/beltforge/layoutcore/score"
)

// exhaustivePermutationBudget bounds TwoLayerExhaustive's search: it tries
// every ordering of the top row combined with every ordering of the bottom
// row, |top|!*|bot|! candidates in total, and falls back to Layered once
// that product would exceed this budget.
const exhaustivePermutationBudget = 4000

// TwoLayerExhaustive fires only when the problem's topology is exactly two
// layers deep -- the same computeLayers test Pattern's three-layer
// detector uses, one layer shorter: every movable is either a source (no
// incoming connection) in the top row, or fed only by top-row machines in
// the bottom row. It then tries every permutation of each row's left-to-
// right ordering, actually routes each candidate in full, and keeps the
// best-scoring result. Above the permutation budget, or when the topology
// is not exactly two layers deep, it falls back to Layered instead of
// truncating the search silently.
func TwoLayerExhaustive(p Problem) (*grid.State, error) {
	if len(p.Movables) == 0 {
		return Greedy(p)
	}

	layer := computeLayers(p)
	maxLayer := 0
	for _, l := range layer {
		if l > maxLayer {
			maxLayer = l
		}
	}
	if maxLayer != 1 {
		return Layered(p)
	}

	specByID := make(map[string]MachineSpec, len(p.Movables))
	var top, bot []string
	for _, spec := range p.Movables {
		specByID[spec.ID] = spec
		if layer[spec.ID] == 0 {
			top = append(top, spec.ID)
		} else {
			bot = append(bot, spec.ID)
		}
	}

	if !withinPermutationBudget(len(top), len(bot)) {
		return Layered(p)
	}

	scoreCfg := score.DefaultConfig()
	var best *grid.State
	var bestMetrics score.Metrics
	bestRouted := false

	for _, topOrder := range permutations(top) {
		for _, botOrder := range permutations(bot) {
			gs, routed, metrics, err := evaluateOrdering(p, specByID, topOrder, botOrder, scoreCfg)
			if err != nil {
				continue
			}
			if best == nil ||
				(routed && !bestRouted) ||
				(routed == bestRouted && score.Compare(metrics, bestMetrics, scoreCfg) < 0) {
				best, bestRouted, bestMetrics = gs, routed, metrics
			}
		}
	}

	if best == nil {
		return Layered(p)
	}
	return best, nil
}

// withinPermutationBudget reports whether nTop!*nBot! does not exceed
// exhaustivePermutationBudget.
func withinPermutationBudget(nTop, nBot int) bool {
	return factorial(nTop)*factorial(nBot) <= exhaustivePermutationBudget
}

// factorial saturates at exhaustivePermutationBudget+1 once exceeded --
// the exact value no longer matters past the point withinPermutationBudget
// will reject it, and this keeps the product from overflowing for larger
// inputs.
func factorial(n int) int {
	f := 1
	for i := 2; i <= n && f <= exhaustivePermutationBudget; i++ {
		f *= i
	}
	return f
}

// evaluateOrdering places topOrder and botOrder as the grid's two rows,
// registers every connection, and routes all of them, returning the
// resulting state, whether every connection routed, and its routed score.
func evaluateOrdering(p Problem, specByID map[string]MachineSpec, topOrder, botOrder []string, scoreCfg score.Config) (*grid.State, bool, score.Metrics, error) {
	gs, err := newBaseState(p)
	if err != nil {
		return nil, false, score.Metrics{}, err
	}
	if err := placeRowLeftToRight(gs, topOrder, specByID, 1); err != nil {
		return nil, false, score.Metrics{}, err
	}
	if err := placeRowLeftToRight(gs, botOrder, specByID, 5); err != nil {
		return nil, false, score.Metrics{}, err
	}
	if err := connectAll(gs, p.Connections); err != nil {
		return nil, false, score.Metrics{}, err
	}

	conns := gs.Connections()
	connIDs := make([]string, len(conns))
	for i, c := range conns {
		connIDs[i] = c.ID
	}
	_, routeErr := router.RouteAll(gs, connIDs)

	metrics := score.EvaluateRouted(gs, conns, scoreCfg)
	return gs, routeErr == nil, metrics, nil
}

// permutations returns every ordering of ids. The empty-slice case yields
// exactly one permutation, the empty ordering, so a layer with no members
// still lets the other layer's orderings run rather than short-circuiting
// the whole search.
func permutations(ids []string) [][]string {
	if len(ids) == 0 {
		return [][]string{{}}
	}

	var out [][]string
	used := make([]bool, len(ids))
	cur := make([]string, 0, len(ids))

	var rec func()
	rec = func() {
		if len(cur) == len(ids) {
			out = append(out, append([]string(nil), cur...))
			return
		}
		for i, id := range ids {
			if used[i] {
				continue
			}
			used[i] = true
			cur = append(cur, id)
			rec()
			cur = cur[:len(cur)-1]
			used[i] = false
		}
	}
	rec()
	return out
}
