package portassign

import (
	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
	"github.com/beltforge/layoutcore/score"
)

// Polish runs Phase 4 orientation polish: for each non-fixed machine, in
// turn, it tries the other three orientations in place and keeps whichever
// one (if any) strictly improves the running score, greedily committing
// before moving to the next machine. A trial is scored by the routed
// metric when every connection it touches still routes, falling back to
// the cheap proxy metric when one doesn't -- an orientation change is not
// rejected outright just because the router couldn't find a path for it.
func Polish(gs *grid.State, conns []machine.Connection, scoreCfg score.Config) *grid.State {
	work := gs.Clone()
	current := score.EvaluateRouted(work, conns, scoreCfg)

	for _, m := range movableByID(work) {
		live, ok := work.Machine(m.ID)
		if !ok {
			continue
		}
		var bestTrial *grid.State
		bestScore := current
		improved := false

		for _, o := range otherOrientations(live.Orientation) {
			trial := work.Clone()
			placed, fullyRouted := repositionRelaxed(trial, live.ID, live.Pos, o)
			if !placed {
				continue
			}
			var s score.Metrics
			if fullyRouted {
				s = score.EvaluateRouted(trial, conns, scoreCfg)
			} else {
				s = score.EvaluateProxy(trial, conns, scoreCfg)
			}
			if score.Compare(s, bestScore, scoreCfg) < 0 {
				bestScore = s
				bestTrial = trial
				improved = true
			}
		}

		if improved {
			work = bestTrial
			current = bestScore
		}
	}

	return work
}

// otherOrientations returns the three cardinal directions other than o.
func otherOrientations(o machine.Direction) []machine.Direction {
	out := make([]machine.Direction, 0, 3)
	for _, d := range []machine.Direction{machine.North, machine.East, machine.South, machine.West} {
		if d != o {
			out = append(out, d)
		}
	}
	return out
}
