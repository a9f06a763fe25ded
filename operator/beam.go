package operator

import (
	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
	"github.com/beltforge/layoutcore/rng"
	"github.com/beltforge/layoutcore/score"
)

// Beam runs width independent attempts of a disruptive move against
// separate clones of gs, each with an independently derived RNG stream,
// and returns the clone with the best routed score among the attempts that
// succeeded. Used for the two large-move operators, whose single attempt
// can otherwise be unlucky about which reinsertion poses it tries first.
func Beam(gs *grid.State, width int, base *rng.LCG, conns []machine.Connection, scoreCfg score.Config, attempt func(*grid.State, randSource) bool) (*grid.State, bool) {
	var best *grid.State
	var bestMetrics score.Metrics
	found := false

	for i := 0; i < width; i++ {
		sub := rng.Derive(base, uint64(i))
		clone := gs.Clone()
		if !attempt(clone, sub) {
			continue
		}
		m := score.EvaluateRouted(clone, conns, scoreCfg)
		if !found || score.Compare(m, bestMetrics, scoreCfg) < 0 {
			best, bestMetrics, found = clone, m, true
		}
	}
	return best, found
}
