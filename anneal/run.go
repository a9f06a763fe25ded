package anneal

import (
	"math"

	"github.com/beltforge/layoutcore/rng"
	"github.com/beltforge/layoutcore/score"
)

// NeighborFunc proposes a candidate move from current at the given
// temperature (some operators are temperature-gated, e.g. large moves
// cool off late in the run). ok is false if no move could be produced this
// call (e.g. every operator's repair attempt failed); the caller should
// simply try again on the next iteration.
type NeighborFunc func(current Candidate, temp float64, r *rng.LCG) (cand Candidate, ok bool)

// KickFunc applies one uniformly random perturbation ("kick") to cand. ok
// is false if the perturbation could not be applied at all. Unlike
// NeighborFunc, a kick is never adaptively weighted -- the spec calls these
// "random perturbations," independent of the operator portfolio's reward
// dispatch, so RunWithRestarts is the only caller and only ever uses it
// right after seeding a restart from the elite archive.
type KickFunc func(cand Candidate, r *rng.LCG) (cand2 Candidate, ok bool)

// archiveRestartBias is the exponent the spec applies to a uniform [0,1)
// draw before scaling it into an archive index, biasing restart seeds
// toward the top of the ranked archive without always picking the single
// best entry.
const archiveRestartBias = 1.6

// minArchiveKicks and maxArchiveKicks bound how many perturbations an
// archive-seeded restart applies before checking whether the result still
// routes, per the spec's "apply 1-2 random perturbations."
const minArchiveKicks = 1
const maxArchiveKicks = 2

// Result is one annealing run's outcome.
type Result struct {
	Best       Candidate
	Archive    *Archive
	Iterations int
}

// reheatStagnationBatches is the fixed number of consecutive outer batches
// without a best-score improvement that triggers a reheat. This is
// distinct from cfg.AdaptiveStagnationResetWindow, which paces the
// operator portfolio's own stagnation flattening on a separate, configured
// schedule.
const reheatStagnationBatches = 5

// Run executes one full temperature schedule starting from initial,
// proposing cfg.BatchSize*cfg.IterPerTemp neighbors per temperature step
// and accepting each via the Metropolis rule (always accept an
// improvement; accept a worsening move with probability
// exp(-delta/temperature)). A run that stagnates for
// reheatStagnationBatches consecutive outer batches without improving its
// best-known candidate reheats back to min(initialTemp/2, 3*current),
// resets current to best, and clears the stagnation counter, giving the
// search one more chance to escape a local optimum before the schedule
// finishes cooling.
//
// Run never returns a candidate worse than initial: the caller's existing
// layout is always a safe floor.
func Run(initial Candidate, neighbor NeighborFunc, cfg Config, scoreCfg score.Config, r *rng.LCG) Result {
	sched := NewSchedule(cfg)
	archive := NewArchive(cfg, scoreCfg)
	archive.Add(initial)

	current := initial
	best := initial
	stagnantSteps := 0
	iterations := 0

	for !sched.Done() {
		improvedThisStep := false

		for b := 0; b < cfg.BatchSize; b++ {
			for i := 0; i < cfg.IterPerTemp; i++ {
				iterations++

				cand, ok := neighbor(current, sched.Temp(), r)
				if !ok {
					continue
				}

				delta := cand.Metrics().Total(scoreCfg) - current.Metrics().Total(scoreCfg)
				accept := delta <= 0
				if !accept {
					accept = r.Float64() < math.Exp(-delta/sched.Temp())
				}
				if !accept {
					continue
				}

				current = cand
				archive.Add(cand)
				if Better(cand, best, scoreCfg) {
					best = cand
					improvedThisStep = true
				}
			}
		}

		if improvedThisStep {
			stagnantSteps = 0
		} else {
			stagnantSteps++
		}
		if stagnantSteps >= reheatStagnationBatches {
			sched.Reheat()
			current = best
			stagnantSteps = 0
		}

		sched.Cool()
	}

	if Better(initial, best, scoreCfg) {
		best = initial
	}
	archive.Add(best)

	return Result{Best: best, Archive: archive, Iterations: iterations}
}

// RunWithRestarts runs Run restarts+1 times, reseeding every restart after
// the first from a candidate sampled out of the accumulated elite archive
// (falling back to initial if the archive is somehow empty). Archive
// sampling is biased toward the top of the ranked pool: index
// i = floor(rand()^archiveRestartBias * |archive|). After sampling, kick
// (if non-nil) is applied 1-2 times; the kicked candidate replaces the
// sampled one only if it is still routable (UnroutableCount == 0) once all
// kicks landed, otherwise the unkicked sample is kept. The returned
// Result's Best is the best candidate found across every restart, and its
// Archive accumulates entries from all of them.
func RunWithRestarts(initial Candidate, neighbor NeighborFunc, kick KickFunc, cfg Config, scoreCfg score.Config, r *rng.LCG, restarts int) Result {
	archive := NewArchive(cfg, scoreCfg)
	archive.Add(initial)
	best := initial
	totalIterations := 0

	for attempt := 0; attempt <= restarts; attempt++ {
		start := initial
		if attempt > 0 && archive.Len() > 0 {
			start = sampleArchiveRestart(archive, r)
			if kick != nil {
				start = applyKicks(start, kick, r)
			}
		}

		res := Run(start, neighbor, cfg, scoreCfg, r)
		totalIterations += res.Iterations
		for _, e := range res.Archive.All() {
			archive.Add(e)
		}
		if Better(res.Best, best, scoreCfg) {
			best = res.Best
		}
	}

	return Result{Best: best, Archive: archive, Iterations: totalIterations}
}

// sampleArchiveRestart picks one entry from archive's ranked (best-first)
// view, biased toward the top per archiveRestartBias.
func sampleArchiveRestart(archive *Archive, r *rng.LCG) Candidate {
	ranked := archive.Ranked()
	idx := int(math.Pow(r.Float64(), archiveRestartBias) * float64(len(ranked)))
	if idx >= len(ranked) {
		idx = len(ranked) - 1
	}
	return ranked[idx].Clone()
}

// applyKicks perturbs start 1-2 times via kick and keeps the result only
// if every kick applied and the final candidate still routes; otherwise
// the original, unkicked start is returned.
func applyKicks(start Candidate, kick KickFunc, r *rng.LCG) Candidate {
	numKicks := minArchiveKicks + r.Intn(maxArchiveKicks-minArchiveKicks+1)
	kicked := start
	for i := 0; i < numKicks; i++ {
		next, ok := kick(kicked, r)
		if !ok {
			return start
		}
		kicked = next
	}
	if kicked.Metrics().UnroutableCount > 0 {
		return start
	}
	return kicked
}
