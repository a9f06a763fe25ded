package portassign

import (
	"math"

	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
	"github.com/beltforge/layoutcore/score"
)

const compactionMaxPasses = 30

// Compact runs Phase 4 compaction against a fully-routed gs: it translates
// every non-fixed machine so their collective bounding box sits at (1,1),
// then repeatedly walks machines (sorted by x+y ascending) pulling each one
// west then north one tile at a time as long as the move stays valid,
// until a full pass makes no further progress or compactionMaxPasses is
// reached. The result is committed only if its routed score is no worse
// than the score gs started with.
func Compact(gs *grid.State, conns []machine.Connection, scoreCfg score.Config) *grid.State {
	baseline := score.EvaluateRouted(gs, conns, scoreCfg)

	work := translateToOrigin(gs.Clone())
	for pass := 0; pass < compactionMaxPasses; pass++ {
		if !compactionPass(work) {
			break
		}
	}

	final := score.EvaluateRouted(work, conns, scoreCfg)
	if score.Compare(final, baseline, scoreCfg) <= 0 {
		return work
	}
	return gs.Clone()
}

// translateToOrigin shifts every movable machine in gs by the same
// (dx, dy) so their collective bounding box's top-left corner lands at
// (1, 1). The shift is attempted on a scratch clone and only adopted if
// every machine's move succeeds -- a partial shift would distort the
// layout's relative arrangement, which this step is not meant to do.
func translateToOrigin(gs *grid.State) *grid.State {
	movable := movableByID(gs)
	if len(movable) == 0 {
		return gs
	}

	minX, minY := math.MaxInt, math.MaxInt
	for _, m := range movable {
		rect, err := m.Footprint()
		if err != nil {
			continue
		}
		if rect.X < minX {
			minX = rect.X
		}
		if rect.Y < minY {
			minY = rect.Y
		}
	}
	shiftX, shiftY := 1-minX, 1-minY
	if shiftX == 0 && shiftY == 0 {
		return gs
	}

	scratch := gs.Clone()
	for _, m := range movable {
		next := machine.Point{X: m.Pos.X + shiftX, Y: m.Pos.Y + shiftY}
		if !repositionStrict(scratch, m.ID, next, m.Orientation) {
			return gs
		}
	}
	return scratch
}

// compactionPass makes one outer pass over gs's movable machines (ordered
// by x+y ascending), pulling each one as far west and then as far north as
// repositionStrict allows. It reports whether any machine actually moved.
func compactionPass(gs *grid.State) bool {
	changed := false
	for _, m := range movableByCorner(gs) {
		cur, ok := gs.Machine(m.ID)
		if !ok {
			continue
		}
		for {
			next := machine.Point{X: cur.Pos.X - 1, Y: cur.Pos.Y}
			if !repositionStrict(gs, m.ID, next, cur.Orientation) {
				break
			}
			changed = true
			cur, _ = gs.Machine(m.ID)
		}
		for {
			next := machine.Point{X: cur.Pos.X, Y: cur.Pos.Y - 1}
			if !repositionStrict(gs, m.ID, next, cur.Orientation) {
				break
			}
			changed = true
			cur, _ = gs.Machine(m.ID)
		}
	}
	return changed
}
