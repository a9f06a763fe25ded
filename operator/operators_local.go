package operator

import (
	"sort"

	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
	"github.com/beltforge/layoutcore/router"
)

// stepToward returns the unit step (-1, 0, or 1) from a to b along one axis.
func stepToward(a, b int) int {
	switch {
	case a < b:
		return 1
	case a > b:
		return -1
	default:
		return 0
	}
}

// clampPose clamps a candidate top-left position so the oriented footprint
// (w, h) stays fully inside the grid.
func clampPose(gs *grid.State, pos machine.Point, w, h int) machine.Point {
	return machine.Point{
		X: clampInt(pos.X, 0, gs.Width-w),
		Y: clampInt(pos.Y, 0, gs.Height-h),
	}
}

func footprintDims(m machine.Machine) (int, int, bool) {
	w, h, err := machine.OrientedDims(m.Type, m.Orientation)
	if err != nil {
		return 0, 0, false
	}
	return w, h, true
}

// moveTowardNeighbor nudges a random machine 1-3 tiles toward its
// most-connected neighbor.
func moveTowardNeighbor(gs *grid.State, r randSource) bool {
	m, ok := pickRandomMovable(gs, r)
	if !ok {
		return false
	}
	nbr, ok := mostConnectedNeighbor(gs, m.ID)
	if !ok {
		return false
	}
	w, h, ok := footprintDims(m)
	if !ok {
		return false
	}
	dist := 1 + r.Intn(3)
	dx := stepToward(m.Pos.X, nbr.Pos.X) * dist
	dy := stepToward(m.Pos.Y, nbr.Pos.Y) * dist
	pos := clampPose(gs, machine.Point{X: m.Pos.X + dx, Y: m.Pos.Y + dy}, w, h)
	if pos == m.Pos {
		return false
	}
	return reposition(gs, m.ID, pos, m.Orientation)
}

// moveToSource nudges a random machine toward the centroid of its input
// sources, taking a full step along the axis with the larger gap and a
// half step (rounded toward zero) on the other.
func moveToSource(gs *grid.State, r randSource) bool {
	m, ok := pickRandomMovable(gs, r)
	if !ok {
		return false
	}
	sources := inputSources(gs, m.ID)
	if len(sources) == 0 {
		return false
	}
	pts := make([]machine.Point, len(sources))
	for i, s := range sources {
		pts[i] = s.Pos
	}
	target := centroid(pts)
	w, h, ok := footprintDims(m)
	if !ok {
		return false
	}

	gapX := target.X - m.Pos.X
	gapY := target.Y - m.Pos.Y
	dx, dy := 0, 0
	if absInt(gapX) >= absInt(gapY) {
		dx = stepToward(m.Pos.X, target.X)
		dy = gapY / 2
	} else {
		dy = stepToward(m.Pos.Y, target.Y)
		dx = gapX / 2
	}
	pos := clampPose(gs, machine.Point{X: m.Pos.X + dx, Y: m.Pos.Y + dy}, w, h)
	if pos == m.Pos {
		return false
	}
	return reposition(gs, m.ID, pos, m.Orientation)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// portFacingJump teleports a random machine to the best (orientation,
// side-of-neighbor) pose flush against its most-connected neighbor,
// scored by Manhattan belt cost over its own connections.
func portFacingJump(gs *grid.State, r randSource) bool {
	m, ok := pickRandomMovable(gs, r)
	if !ok {
		return false
	}
	nbr, ok := mostConnectedNeighbor(gs, m.ID)
	if !ok {
		return false
	}
	nbrRect, err := nbr.Footprint()
	if err != nil {
		return false
	}

	type pose struct {
		pos machine.Point
		o   machine.Direction
	}
	var candidates []pose
	for _, o := range []machine.Direction{machine.North, machine.East, machine.South, machine.West} {
		w, h, err := machine.OrientedDims(m.Type, o)
		if err != nil {
			continue
		}
		candidates = append(candidates,
			pose{machine.Point{X: nbrRect.X + nbrRect.W, Y: nbrRect.Y}, o}, // east face
			pose{machine.Point{X: nbrRect.X - w, Y: nbrRect.Y}, o},         // west face
			pose{machine.Point{X: nbrRect.X, Y: nbrRect.Y + nbrRect.H}, o}, // south face
			pose{machine.Point{X: nbrRect.X, Y: nbrRect.Y - h}, o},         // north face
		)
	}

	bestCost := -1
	var best pose
	found := false
	for _, c := range candidates {
		w, h, err := machine.OrientedDims(m.Type, c.o)
		if err != nil {
			continue
		}
		rect := machine.Rect{X: c.pos.X, Y: c.pos.Y, W: w, H: h}
		if !rect.InBounds(gs.Width, gs.Height) {
			continue
		}
		cand := machine.Machine{ID: m.ID, Type: m.Type, Pos: c.pos, Orientation: c.o}
		cost := manhattanCostForPose(gs, cand)
		if !found || cost < bestCost {
			bestCost, best, found = cost, c, true
		}
	}
	if !found {
		return false
	}
	return reposition(gs, m.ID, best.pos, best.o)
}

// tryDifferentPort re-assigns a random connection to whichever currently
// free (source output, target input) port pair minimizes Manhattan
// distance between them.
func tryDifferentPort(gs *grid.State, r randSource) bool {
	conns := gs.Connections()
	if len(conns) == 0 {
		return false
	}
	sort.Slice(conns, func(i, j int) bool { return conns[i].ID < conns[j].ID })
	conn := conns[r.Intn(len(conns))]

	srcM, ok := gs.Machine(conn.SourceMachine)
	if !ok {
		return false
	}
	tgtM, ok := gs.Machine(conn.TargetMachine)
	if !ok {
		return false
	}
	_, outputs, err := machine.Ports(srcM)
	if err != nil {
		return false
	}
	inputs, _, err := machine.Ports(tgtM)
	if err != nil {
		return false
	}

	bestSrc, bestTgt, bestDist := conn.SourcePort, conn.TargetPort, -1
	for oi, op := range outputs {
		if oi != conn.SourcePort && portInUse(gs, conn.SourceMachine, machine.Output, oi) {
			continue
		}
		for ii, ip := range inputs {
			if ii != conn.TargetPort && portInUse(gs, conn.TargetMachine, machine.Input, ii) {
				continue
			}
			d := machine.ExternalTile(op).ManhattanTo(machine.ExternalTile(ip))
			if bestDist == -1 || d < bestDist {
				bestSrc, bestTgt, bestDist = oi, ii, d
			}
		}
	}
	if bestSrc == conn.SourcePort && bestTgt == conn.TargetPort {
		return false
	}

	oldPath, hadPath := gs.BeltPath(conn.ID)
	gs.Disconnect(conn.ID)
	newConn := machine.Connection{ID: conn.ID, SourceMachine: conn.SourceMachine, SourcePort: bestSrc, TargetMachine: conn.TargetMachine, TargetPort: bestTgt}
	if _, err := gs.Connect(newConn); err != nil {
		restoreConnection(gs, conn, oldPath, hadPath)
		return false
	}
	if _, err := router.Route(gs, conn.ID); err != nil {
		gs.Disconnect(conn.ID)
		restoreConnection(gs, conn, oldPath, hadPath)
		return false
	}
	return true
}

// portInUse reports whether (machineID, role, index) is currently claimed
// by any connection.
func portInUse(gs *grid.State, machineID string, role machine.PortRole, index int) bool {
	for _, c := range gs.Connections() {
		if role == machine.Output && c.SourceMachine == machineID && c.SourcePort == index {
			return true
		}
		if role == machine.Input && c.TargetMachine == machineID && c.TargetPort == index {
			return true
		}
	}
	return false
}

func restoreConnection(gs *grid.State, conn machine.Connection, path grid.BeltPath, hadPath bool) {
	if _, err := gs.Connect(conn); err != nil {
		return
	}
	if hadPath {
		gs.ApplyBeltPath(conn.ID, path)
	}
}

// randomShift shifts one machine by 1-3 tiles in a uniformly chosen
// cardinal direction.
func randomShift(gs *grid.State, r randSource) bool {
	m, ok := pickRandomMovable(gs, r)
	if !ok {
		return false
	}
	w, h, ok := footprintDims(m)
	if !ok {
		return false
	}
	dirs := []machine.Direction{machine.North, machine.East, machine.South, machine.West}
	d := dirs[r.Intn(len(dirs))]
	dx, dy := d.Delta()
	dist := 1 + r.Intn(3)
	pos := clampPose(gs, machine.Point{X: m.Pos.X + dx*dist, Y: m.Pos.Y + dy*dist}, w, h)
	if pos == m.Pos {
		return false
	}
	return reposition(gs, m.ID, pos, m.Orientation)
}

// swapPositions exchanges the top-left positions of two distinct randomly
// chosen movable machines, each keeping its own orientation.
func swapPositions(gs *grid.State, r randSource) bool {
	ms := movableMachines(gs)
	if len(ms) < 2 {
		return false
	}
	i := r.Intn(len(ms))
	j := r.Intn(len(ms))
	if i == j {
		j = (j + 1) % len(ms)
	}
	a, b := ms[i], ms[j]

	touchingA := connectionsTouching(gs, a.ID)
	touchingB := connectionsTouching(gs, b.ID)
	touching := append(append([]machine.Connection{}, touchingA...), touchingB...)
	snapshot := snapshotPaths(gs, touching)
	for _, c := range touching {
		gs.RemoveBeltPath(c.ID)
	}
	gs.Remove(a.ID)
	gs.Remove(b.ID)

	na, nb := a, b
	na.Pos, nb.Pos = b.Pos, a.Pos
	if !gs.Place(na) || !gs.Place(nb) {
		gs.Remove(na.ID)
		gs.Remove(nb.ID)
		gs.Place(a)
		gs.Place(b)
		restorePaths(gs, touching, snapshot)
		return false
	}
	for _, c := range touching {
		if _, err := router.Route(gs, c.ID); err != nil {
			gs.Remove(na.ID)
			gs.Remove(nb.ID)
			gs.Place(a)
			gs.Place(b)
			restorePaths(gs, touching, snapshot)
			return false
		}
	}
	return true
}

// rotateBest scores those of a random machine's other three orientations
// that fit in bounds by Manhattan belt cost over its connections, and
// applies the cheapest one if it beats the current orientation's cost. If
// that move does not reroute, the machine keeps its current orientation.
func rotateBest(gs *grid.State, r randSource) bool {
	m, ok := pickRandomMovable(gs, r)
	if !ok {
		return false
	}

	type trial struct {
		o    machine.Direction
		cost int
	}
	var best *trial
	for _, o := range []machine.Direction{machine.North, machine.East, machine.South, machine.West} {
		if o == m.Orientation {
			continue
		}
		w, h, err := machine.OrientedDims(m.Type, o)
		if err != nil {
			continue
		}
		rect := machine.Rect{X: m.Pos.X, Y: m.Pos.Y, W: w, H: h}
		if !rect.InBounds(gs.Width, gs.Height) {
			continue
		}
		cand := machine.Machine{ID: m.ID, Type: m.Type, Pos: m.Pos, Orientation: o}
		cost := manhattanCostForPose(gs, cand)
		if best == nil || cost < best.cost {
			best = &trial{o: o, cost: cost}
		}
	}
	if best == nil {
		return false
	}
	currentCost := manhattanCostForPose(gs, m)
	if best.cost >= currentCost {
		return false
	}
	return reposition(gs, m.ID, m.Pos, best.o)
}

// jointMoveRotate combines a random 1-2 tile shift with a random rotation
// in one atomic move.
func jointMoveRotate(gs *grid.State, r randSource) bool {
	m, ok := pickRandomMovable(gs, r)
	if !ok {
		return false
	}
	dirs := []machine.Direction{machine.North, machine.East, machine.South, machine.West}
	o := dirs[r.Intn(len(dirs))]
	w, h, err := machine.OrientedDims(m.Type, o)
	if err != nil {
		return false
	}
	shiftDir := dirs[r.Intn(len(dirs))]
	dx, dy := shiftDir.Delta()
	dist := 1 + r.Intn(2)
	pos := clampPose(gs, machine.Point{X: m.Pos.X + dx*dist, Y: m.Pos.Y + dy*dist}, w, h)
	if pos == m.Pos && o == m.Orientation {
		return false
	}
	return reposition(gs, m.ID, pos, o)
}
