package optimizer

import (
	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
	"github.com/beltforge/layoutcore/portassign"
	"github.com/beltforge/layoutcore/score"
	"github.com/beltforge/layoutcore/seed"
)

// problemFromGrid reconstructs a seed.Problem from an already-placed grid:
// every immovable machine becomes an anchor at its current pose, every
// movable machine becomes a MachineSpec to be re-placed, and the
// connection topology is carried over unchanged.
func problemFromGrid(gs *grid.State) seed.Problem {
	var anchors []machine.Machine
	var movables []seed.MachineSpec
	for _, m := range gs.Machines() {
		if m.Movable() {
			movables = append(movables, seed.MachineSpec{ID: m.ID, Type: m.Type})
		} else {
			anchors = append(anchors, m)
		}
	}
	return seed.Problem{
		Width:       gs.Width,
		Height:      gs.Height,
		Anchors:     anchors,
		Movables:    movables,
		Connections: gs.Connections(),
	}
}

// seedGenerators lists every Phase 0 layout generator, tried in turn.
var seedGenerators = []func(seed.Problem) (*grid.State, error){
	seed.Greedy,
	seed.Layered,
	seed.Pattern,
	seed.TwoLayerExhaustive,
}

// runSeedPhase builds a seed.Problem from the caller's starting grid and
// evaluates every generator's output, refining each with one port
// assignment pass before scoring per the pipeline's own ordering. It
// returns the best-scoring candidate grid, preferring any grid whose
// connections all route over one that does not, and falling back to the
// input grid itself if every generator fails outright.
func runSeedPhase(gs *grid.State, scoreCfg score.Config) *grid.State {
	problem := problemFromGrid(gs)

	best := gs
	bestRoutes := allRoute(gs, scoreCfg)
	bestMetrics := evaluateFor(gs, scoreCfg, bestRoutes)

	for _, gen := range seedGenerators {
		candidateGS, err := gen(problem)
		if err != nil {
			continue
		}
		candidateGS = portassign.Assign(candidateGS, scoreCfg)

		routes := allRoute(candidateGS, scoreCfg)
		metrics := evaluateFor(candidateGS, scoreCfg, routes)

		switch {
		case routes && !bestRoutes:
			best, bestRoutes, bestMetrics = candidateGS, routes, metrics
		case routes == bestRoutes && metrics.Total(scoreCfg) < bestMetrics.Total(scoreCfg):
			best, bestRoutes, bestMetrics = candidateGS, routes, metrics
		}
	}

	return best
}

// allRoute reports whether every connection on gs currently has a belt
// path, the signal used to prefer a routed score over a proxy fallback.
func allRoute(gs *grid.State, _ score.Config) bool {
	for _, c := range gs.Connections() {
		if _, ok := gs.BeltPath(c.ID); !ok {
			return false
		}
	}
	return true
}

func evaluateFor(gs *grid.State, scoreCfg score.Config, routed bool) score.Metrics {
	conns := gs.Connections()
	if routed {
		return score.EvaluateRouted(gs, conns, scoreCfg)
	}
	return score.EvaluateProxy(gs, conns, scoreCfg)
}
