package router

import (
	"container/heap"

	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
)

// allDirections is the fixed expansion order for neighbor generation. A
// fixed slice (not a map) keeps the search's tie-breaking deterministic.
var allDirections = [4]machine.Direction{machine.North, machine.East, machine.South, machine.West}

const (
	turnPenalty   = 2.0
	crossingExtra = 0.5
)

// search holds the A* run's working state for one FindPath call.
type search struct {
	gs       *grid.State
	excluded map[machine.Point]grid.TileUsage
	goal     machine.Point
	finalDir machine.Direction
}

// FindPath searches for a turn-penalized shortest path from src's external
// tile to tgt's external tile. If excludeConnID is non-empty, that
// connection's currently-applied path (if any) is treated as absent from
// the grid's usage counts, so a connection can be rerouted through its own
// prior corridor. FindPath does not mutate gs; apply the result with
// grid.State.ApplyBeltPath.
func FindPath(gs *grid.State, src, tgt machine.Port, excludeConnID string) (grid.BeltPath, error) {
	s := &search{
		gs:       gs,
		excluded: excludedUsage(gs, excludeConnID),
		goal:     machine.ExternalTile(tgt),
		finalDir: tgt.Approach.Opposite(),
	}

	startPos := machine.ExternalTile(src)
	if s.blocked(startPos) {
		return nil, ErrStartBlocked
	}
	if s.blocked(s.goal) {
		return nil, ErrTargetBlocked
	}

	start := state{pos: startPos, dir: src.Approach}
	return s.run(start)
}

// run executes the A* search from start and reconstructs the winning path.
func (s *search) run(start state) (grid.BeltPath, error) {
	bestG := map[state]float64{start: 0}
	parent := map[state]state{}
	closed := map[state]bool{}

	pq := make(nodePQ, 0, 64)
	seq := 0
	heap.Push(&pq, &node{st: start, g: 0, f: s.heuristic(start.pos), seq: seq})
	seq++

	for pq.Len() > 0 {
		cur := heap.Pop(&pq).(*node)
		if g, ok := bestG[cur.st]; ok && cur.g > g {
			continue // stale lazy-decrease-key entry
		}
		if closed[cur.st] {
			continue
		}
		closed[cur.st] = true

		if cur.st.pos == s.goal && cur.st.dir == s.finalDir {
			return s.reconstruct(parent, start, cur.st), nil
		}

		for _, d2 := range allDirections {
			next := cur.st.pos.Step(d2)
			if !s.canStep(cur.st, next, d2) {
				continue
			}

			stepCost := 1.0
			turning := d2 != cur.st.dir
			if turning {
				stepCost += turnPenalty
			}
			if !s.effectiveUsage(next).Empty() {
				stepCost += crossingExtra
			}

			nextState := state{pos: next, dir: d2}
			g := cur.g + stepCost
			if prev, ok := bestG[nextState]; ok && g >= prev {
				continue
			}
			bestG[nextState] = g
			parent[nextState] = cur.st
			heap.Push(&pq, &node{st: nextState, g: g, f: g + s.heuristic(next), seq: seq})
			seq++
		}
	}

	return nil, ErrNoPath
}

// canStep validates the forbidden-move rules for stepping from cur (whose
// tile is "current") onto next via direction d2: next must be in bounds,
// not a machine tile, and neither next nor cur may already carry usage that
// conflicts with this move (parallel sharing, or a turn on an occupied
// tile).
func (s *search) canStep(cur state, next machine.Point, d2 machine.Direction) bool {
	if !s.gs.InBounds(next.X, next.Y) {
		return false
	}
	if s.gs.CellAt(next.X, next.Y).Kind == grid.MachineCell {
		return false
	}

	axisHorizontal := d2.Horizontal()

	effNext := s.effectiveUsage(next)
	if effNext.Corner > 0 {
		return false
	}
	if axisHorizontal && effNext.Horizontal > 0 {
		return false
	}
	if !axisHorizontal && effNext.Vertical > 0 {
		return false
	}

	effCur := s.effectiveUsage(cur.pos)
	if axisHorizontal && effCur.Horizontal > 0 {
		return false
	}
	if !axisHorizontal && effCur.Vertical > 0 {
		return false
	}
	if d2 != cur.dir && !effCur.Empty() {
		return false
	}

	return true
}

// blocked reports whether p cannot be a path endpoint: out of bounds, a
// machine tile, or already corner-occupied.
func (s *search) blocked(p machine.Point) bool {
	if !s.gs.InBounds(p.X, p.Y) {
		return true
	}
	if s.gs.CellAt(p.X, p.Y).Kind == grid.MachineCell {
		return true
	}
	return s.effectiveUsage(p).Corner > 0
}

// effectiveUsage returns p's belt usage with the excluded connection's own
// contribution (if any) subtracted out.
func (s *search) effectiveUsage(p machine.Point) grid.TileUsage {
	u := s.gs.TileUsageAt(p)
	if exc, ok := s.excluded[p]; ok {
		u.Horizontal -= exc.Horizontal
		u.Vertical -= exc.Vertical
		u.Corner -= exc.Corner
	}
	return u
}

func (s *search) heuristic(p machine.Point) float64 {
	return float64(p.ManhattanTo(s.goal))
}

// reconstruct walks the parent chain from goal back to start and builds the
// BeltSegment list. A state's dir is the direction used to arrive there, so
// segment i's From is state[i].dir (nil at i==0) and segment i's To is
// state[i+1].dir (nil at the last segment).
func (s *search) reconstruct(parent map[state]state, start, goal state) grid.BeltPath {
	states := []state{goal}
	for states[len(states)-1] != start {
		states = append(states, parent[states[len(states)-1]])
	}
	// states is goal..start; reverse to start..goal.
	for i, j := 0, len(states)-1; i < j; i, j = i+1, j-1 {
		states[i], states[j] = states[j], states[i]
	}

	path := make(grid.BeltPath, len(states))
	for i, st := range states {
		seg := grid.BeltSegment{Pos: st.pos}
		if i > 0 {
			from := states[i].dir
			seg.From = &from
		}
		if i < len(states)-1 {
			to := states[i+1].dir
			seg.To = &to
		}
		path[i] = seg
	}
	return path
}

// excludedUsage builds the per-tile usage contributed by excludeConnID's
// currently-applied path, if any, so FindPath can treat it as absent.
func excludedUsage(gs *grid.State, excludeConnID string) map[machine.Point]grid.TileUsage {
	if excludeConnID == "" {
		return nil
	}
	path, ok := gs.BeltPath(excludeConnID)
	if !ok {
		return nil
	}
	out := make(map[machine.Point]grid.TileUsage, len(path))
	for _, seg := range path {
		u := out[seg.Pos]
		corner, horizontal := grid.ClassifySegment(seg)
		switch {
		case corner:
			u.Corner++
		case horizontal:
			u.Horizontal++
		default:
			u.Vertical++
		}
		out[seg.Pos] = u
	}
	return out
}
