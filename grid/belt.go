package grid

import "github.com/beltforge/layoutcore/machine"

// ApplyBeltPath lays connID's routed path onto the grid: each traversed
// EMPTY cell becomes BELT, connID is appended to every touched cell's belt
// list, and per-tile usage counts are updated. Calling Apply twice for the
// same connID without an intervening RemoveBeltPath double-counts usage;
// callers (the router) must remove before rerouting.
// Complexity: O(len(path)).
func (s *State) ApplyBeltPath(connID string, path BeltPath) {
	for _, seg := range path {
		x, y := seg.Pos.X, seg.Pos.Y
		if !s.InBounds(x, y) {
			continue
		}
		cell := s.cells[y][x]
		if cell.Kind == Empty {
			cell.Kind = BeltCell
		}
		if !cell.hasBelt(connID) {
			cell.Belts = append(cell.Belts, connID)
		}
		s.cells[y][x] = cell

		s.bumpUsage(seg.Pos, seg, 1)
	}
	s.beltPaths[connID] = path
}

// RemoveBeltPath tears down connID's previously applied path, reversing the
// cell and usage bookkeeping. Cells whose belt list becomes empty revert to
// Empty. Returns false if connID had no applied path.
// Complexity: O(len(path)).
func (s *State) RemoveBeltPath(connID string) bool {
	path, ok := s.beltPaths[connID]
	if !ok {
		return false
	}
	for _, seg := range path {
		x, y := seg.Pos.X, seg.Pos.Y
		if !s.InBounds(x, y) {
			continue
		}
		cell := s.cells[y][x]
		cell.Belts = removeID(cell.Belts, connID)
		if len(cell.Belts) == 0 {
			cell = Cell{}
		}
		s.cells[y][x] = cell

		s.bumpUsage(seg.Pos, seg, -1)
	}
	delete(s.beltPaths, connID)
	return true
}

// bumpUsage adjusts the usage counters at p by delta (+1 on apply, -1 on
// remove), classifying seg as a corner or as horizontal/vertical straight
// travel. Zeroed entries are pruned so a tile with all-zero counts is
// absent from tileUsage, per the data-model invariant.
func (s *State) bumpUsage(p machine.Point, seg BeltSegment, delta int) {
	u, ok := s.tileUsage[p]
	if !ok {
		u = &TileUsage{}
		s.tileUsage[p] = u
	}

	corner, horizontal := ClassifySegment(seg)
	switch {
	case corner:
		u.Corner += delta
	case horizontal:
		u.Horizontal += delta
	default:
		u.Vertical += delta
	}

	if u.Empty() {
		delete(s.tileUsage, p)
	}
}

// ClassifySegment reports how seg occupies its tile: corner, or straight
// travel on the horizontal (East/West) axis. A non-corner segment with
// horizontal==false occupies the vertical axis. Exported so the router can
// classify a candidate move's tile the same way the grid itself does.
func ClassifySegment(seg BeltSegment) (corner, horizontal bool) {
	if seg.IsCorner() {
		return true, false
	}
	if seg.To != nil {
		return false, seg.To.Horizontal()
	}
	if seg.From != nil {
		return false, seg.From.Horizontal()
	}
	return false, false
}

func removeID(ids []string, target string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
