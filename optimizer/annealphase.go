package optimizer

import (
	"github.com/beltforge/layoutcore/anneal"
	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/operator"
	"github.com/beltforge/layoutcore/rng"
	"github.com/beltforge/layoutcore/score"
)

// neighborFunc builds an anneal.NeighborFunc over gs's operator portfolio:
// each call draws an operator, applies it to a clone of the current
// candidate's grid, scores the result, and feeds the outcome back into the
// portfolio's adaptive dispatch before returning the new candidate.
func neighborFunc(portfolio *operator.Portfolio, annealCfg anneal.Config, scoreCfg score.Config, mode evalMode) anneal.NeighborFunc {
	return func(current anneal.Candidate, temp float64, r *rng.LCG) (anneal.Candidate, bool) {
		cur, ok := current.(*candidate)
		if !ok {
			return nil, false
		}

		id := portfolio.Select(temp, r)
		trial := cur.gs.Clone()
		if !operator.Apply(trial, id, annealCfg, r) {
			portfolio.RecordResult(id, false, 0)
			return nil, false
		}

		next := newCandidate(trial, scoreCfg, mode)
		gain := cur.Metrics().Total(scoreCfg) - next.Metrics().Total(scoreCfg)
		improved := gain > 0
		portfolio.RecordResult(id, improved, gain)
		if improved {
			portfolio.TriggerCooldown()
		}

		return next, true
	}
}

// kickFunc builds an anneal.KickFunc that applies one uniformly random
// operator (unlike neighborFunc's portfolio.Select, this ignores the
// adaptive distribution entirely) to a clone of the candidate's grid --
// the "random perturbation" an archive-seeded restart applies before
// checking whether the result still routes.
func kickFunc(annealCfg anneal.Config, scoreCfg score.Config, mode evalMode) anneal.KickFunc {
	return func(cand anneal.Candidate, r *rng.LCG) (anneal.Candidate, bool) {
		cur, ok := cand.(*candidate)
		if !ok {
			return nil, false
		}

		id := operator.All[r.Intn(len(operator.All))]
		trial := cur.gs.Clone()
		if !operator.Apply(trial, id, annealCfg, r) {
			return nil, false
		}

		return newCandidate(trial, scoreCfg, mode), true
	}
}

// runAnnealPhases executes Phase 1 (proxy-scored, cfg.Phase1Restarts
// restarts) followed by Phase 2 (routed-scored, cfg.Phase2Attempts
// restarts), each over its own operator portfolio so Phase 2's dispatch
// statistics start fresh rather than carrying over Phase 1's proxy-biased
// rewards.
func runAnnealPhases(gs *grid.State, annealCfg anneal.Config, scoreCfg score.Config, r *rng.LCG) (*grid.State, int) {
	proxyStart := newCandidate(gs, scoreCfg, evalProxy)
	proxyPortfolio := operator.NewPortfolio(annealCfg)
	proxyResult := anneal.RunWithRestarts(
		proxyStart,
		neighborFunc(proxyPortfolio, annealCfg, scoreCfg, evalProxy),
		kickFunc(annealCfg, scoreCfg, evalProxy),
		annealCfg, scoreCfg, r, annealCfg.Phase1Restarts,
	)

	proxyBest := proxyResult.Best.(*candidate)
	routedStart := newCandidate(proxyBest.gs, scoreCfg, evalRouted)
	routedPortfolio := operator.NewPortfolio(annealCfg)
	routedResult := anneal.RunWithRestarts(
		routedStart,
		neighborFunc(routedPortfolio, annealCfg, scoreCfg, evalRouted),
		kickFunc(annealCfg, scoreCfg, evalRouted),
		annealCfg, scoreCfg, r, annealCfg.Phase2Attempts,
	)

	routedBest := routedResult.Best.(*candidate)
	return routedBest.gs, proxyResult.Iterations + routedResult.Iterations
}
