package optimizer

import (
	"github.com/beltforge/layoutcore/anneal"
	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/portassign"
	"github.com/beltforge/layoutcore/rng"
	"github.com/beltforge/layoutcore/score"
)

// Result is the outcome of one Run or RunDeep call.
type Result struct {
	Grid       *grid.State
	Score      score.Metrics
	Iterations int
	Archive    *anneal.Archive
}

// ProgressUpdate reports a routed score and the pipeline phase (or RunDeep
// state) it belongs to. Run emits one after each of its phases and RunDeep
// one at each state change; no update is emitted per annealing batch.
type ProgressUpdate struct {
	Phase string
	Score score.Metrics
}

// ProgressFunc receives a ProgressUpdate; pass nil to Run/RunDeep to
// disable progress reporting.
type ProgressFunc func(ProgressUpdate)

// Run executes one fixed-budget pass over gs: Phase 0 seed generation (if
// enabled), Phase 1/2 simulated annealing, Phase 3 port reassignment, and
// Phase 4 compaction plus orientation polish, repeated
// cfg.Anneal.LocalPolishPasses times (at least once). The returned Grid's
// routed score is never worse than gs's own, regardless of how any
// individual phase performs -- Run falls back to gs untouched if the
// pipeline's result scores worse than it.
func Run(gs *grid.State, cfg Config, progress ProgressFunc) Result {
	scoreCfg := cfg.Score
	baseline := score.EvaluateRouted(gs, gs.Connections(), scoreCfg)
	r := rng.New(resolveSeed(cfg))

	working := gs
	if cfg.UseExplorationSeeds {
		working = runSeedPhase(working, scoreCfg)
		report(progress, "seed", working, scoreCfg)
	}

	var iterations int
	working, iterations = runAnnealPhases(working, cfg.Anneal, scoreCfg, r)
	report(progress, "anneal", working, scoreCfg)

	working = portassign.Assign(working, scoreCfg)
	report(progress, "port-assign", working, scoreCfg)

	passes := cfg.Anneal.LocalPolishPasses
	if passes < 1 {
		passes = 1
	}
	for pass := 0; pass < passes; pass++ {
		conns := working.Connections()
		working = portassign.Compact(working, conns, scoreCfg)
		report(progress, "compact", working, scoreCfg)

		working = portassign.Polish(working, working.Connections(), scoreCfg)
		report(progress, "polish", working, scoreCfg)
	}

	final := working
	finalScore := score.EvaluateRouted(final, final.Connections(), scoreCfg)
	if score.Compare(baseline, finalScore, scoreCfg) < 0 {
		final = gs
		finalScore = baseline
	}

	archive := anneal.NewArchive(cfg.Anneal, scoreCfg)
	archive.Add(newCandidate(final, scoreCfg, evalRouted))
	if cfg.IncomingArchive != nil {
		for _, e := range cfg.IncomingArchive.All() {
			archive.Add(e)
		}
	}

	return Result{Grid: final, Score: finalScore, Iterations: iterations, Archive: archive}
}

func report(progress ProgressFunc, phase string, gs *grid.State, scoreCfg score.Config) {
	if progress == nil {
		return
	}
	progress(ProgressUpdate{Phase: phase, Score: score.EvaluateRouted(gs, gs.Connections(), scoreCfg)})
}
