package optimizer

import (
	"time"

	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/score"
)

// deepState names the states of RunDeep's chunk-chaining loop, reported to
// progress callers via ProgressUpdate.Phase so a caller can distinguish
// "still searching" from "stopped, and why."
type deepState string

const (
	stateRunningChunk  deepState = "RUNNING_CHUNK"
	stateBetweenChunks deepState = "BETWEEN_CHUNKS"
	stateStopRequested deepState = "STOP_REQUESTED"
	stateAutoPlateau   deepState = "AUTO_PLATEAU_STOP"
	stateDone          deepState = "DONE"
)

// RunDeep chains repeated Run passes ("chunks"), each starting from the best
// grid found so far and receiving the previous chunk's elite archive as
// IncomingArchive; a chunk's annealing restarts sample only the archive that
// chunk builds itself, not the incoming one. It stops on the first of:
// the caller's ShouldStop predicate firing, cfg.TimeBudgetMs elapsing, or
// cfg.Anneal.PlateauWindow consecutive chunks producing no improvement over
// the best score seen so far.
func RunDeep(gs *grid.State, cfg Config, progress ProgressFunc) Result {
	deadline := time.Time{}
	if cfg.TimeBudgetMs > 0 {
		deadline = time.Now().Add(time.Duration(cfg.TimeBudgetMs) * time.Millisecond)
	}

	chunkCfg := cfg
	chunkCfg.Mode = ModeNormal

	best := Run(gs, chunkCfg, progress)
	plateauCount := 0
	totalIterations := best.Iterations

	for {
		if cfg.ShouldStop != nil && cfg.ShouldStop() {
			reportState(progress, stateStopRequested, best.Score)
			break
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			reportState(progress, stateDone, best.Score)
			break
		}
		if cfg.Anneal.PlateauWindow > 0 && plateauCount >= cfg.Anneal.PlateauWindow {
			reportState(progress, stateAutoPlateau, best.Score)
			break
		}

		reportState(progress, stateRunningChunk, best.Score)

		chunkCfg.IncomingArchive = best.Archive
		next := Run(best.Grid, chunkCfg, progress)
		totalIterations += next.Iterations

		if score.Compare(next.Score, best.Score, cfg.Score) < 0 {
			best = next
			plateauCount = 0
		} else {
			plateauCount++
		}

		reportState(progress, stateBetweenChunks, best.Score)
	}

	best.Iterations = totalIterations
	if !cfg.PersistEliteArchive {
		best.Archive = nil
	}
	return best
}

func reportState(progress ProgressFunc, state deepState, s score.Metrics) {
	if progress == nil {
		return
	}
	progress(ProgressUpdate{Phase: string(state), Score: s})
}
