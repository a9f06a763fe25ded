package operator

import (
	"sort"

	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
	"github.com/beltforge/layoutcore/router"
)

// movableMachines returns every placed machine whose type may be
// repositioned, sorted by ID for deterministic iteration.
func movableMachines(gs *grid.State) []machine.Machine {
	all := gs.Machines()
	out := make([]machine.Machine, 0, len(all))
	for _, m := range all {
		if m.Movable() {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// pickRandomMovable returns a uniformly chosen movable machine.
func pickRandomMovable(gs *grid.State, r randSource) (machine.Machine, bool) {
	ms := movableMachines(gs)
	if len(ms) == 0 {
		return machine.Machine{}, false
	}
	return ms[r.Intn(len(ms))], true
}

// randSource is the subset of *rng.LCG the operator package depends on,
// kept narrow so tests can supply a fake deterministic source.
type randSource interface {
	Intn(n int) int
	Float64() float64
}

// connectionsTouching returns every connection where id is the source or
// target machine, sorted by connection ID for determinism.
func connectionsTouching(gs *grid.State, id string) []machine.Connection {
	all := gs.Connections()
	out := make([]machine.Connection, 0, len(all))
	for _, c := range all {
		if c.SourceMachine == id || c.TargetMachine == id {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// neighborCounts tallies, for machine id, how many connections link it to
// each other machine.
func neighborCounts(gs *grid.State, id string) map[string]int {
	counts := make(map[string]int)
	for _, c := range connectionsTouching(gs, id) {
		other := c.TargetMachine
		if other == id {
			other = c.SourceMachine
		}
		counts[other]++
	}
	return counts
}

// mostConnectedNeighbor returns the other machine sharing the most
// connections with id, breaking ties by lowest ID.
func mostConnectedNeighbor(gs *grid.State, id string) (machine.Machine, bool) {
	counts := neighborCounts(gs, id)
	if len(counts) == 0 {
		return machine.Machine{}, false
	}
	ids := make([]string, 0, len(counts))
	for other := range counts {
		ids = append(ids, other)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return gs.Machine(ids[0])
}

// inputSources returns the machines feeding id's input ports.
func inputSources(gs *grid.State, id string) []machine.Machine {
	var out []machine.Machine
	for _, c := range connectionsTouching(gs, id) {
		if c.TargetMachine != id {
			continue
		}
		if m, ok := gs.Machine(c.SourceMachine); ok {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// centroid averages a set of positions, rounding toward zero.
func centroid(pts []machine.Point) machine.Point {
	if len(pts) == 0 {
		return machine.Point{}
	}
	var sx, sy int
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	return machine.Point{X: sx / len(pts), Y: sy / len(pts)}
}

// portOf resolves the hypothetical Port a machine pose m would present for
// (role, index), without requiring m to currently be placed on any grid.
func portOf(m machine.Machine, role machine.PortRole, index int) (machine.Port, bool) {
	inputs, outputs, err := machine.Ports(m)
	if err != nil {
		return machine.Port{}, false
	}
	list := inputs
	if role == machine.Output {
		list = outputs
	}
	if index < 0 || index >= len(list) {
		return machine.Port{}, false
	}
	return list[index], true
}

// manhattanCostForPose sums the Manhattan distance, over every connection
// touching a hypothetical pose of machine id, between that pose's port and
// the other end's actual placed port. Connections whose other endpoint
// isn't placed, or whose port can't be resolved, are skipped -- this is a
// cheap siting heuristic, not a routed score.
func manhattanCostForPose(gs *grid.State, pose machine.Machine) int {
	total := 0
	for _, c := range connectionsTouching(gs, pose.ID) {
		if c.SourceMachine == pose.ID {
			src, ok := portOf(pose, machine.Output, c.SourcePort)
			if !ok {
				continue
			}
			tgtM, ok := gs.Machine(c.TargetMachine)
			if !ok {
				continue
			}
			tgt, ok := portOf(tgtM, machine.Input, c.TargetPort)
			if !ok {
				continue
			}
			total += machine.ExternalTile(src).ManhattanTo(machine.ExternalTile(tgt))
		} else {
			tgt, ok := portOf(pose, machine.Input, c.TargetPort)
			if !ok {
				continue
			}
			srcM, ok := gs.Machine(c.SourceMachine)
			if !ok {
				continue
			}
			src, ok := portOf(srcM, machine.Output, c.SourcePort)
			if !ok {
				continue
			}
			total += machine.ExternalTile(src).ManhattanTo(machine.ExternalTile(tgt))
		}
	}
	return total
}

// reposition moves machine id to (pos, orientation), rerouting every
// connection that touches it. On any failure (footprint doesn't fit, or a
// touched connection can no longer be routed) the grid is restored exactly
// to its pre-call state and reposition returns false.
func reposition(gs *grid.State, id string, pos machine.Point, orientation machine.Direction) bool {
	old, ok := gs.Machine(id)
	if !ok {
		return false
	}
	touching := connectionsTouching(gs, id)
	oldPaths := snapshotPaths(gs, touching)

	for _, c := range touching {
		gs.RemoveBeltPath(c.ID)
	}
	gs.Remove(id)

	next := old
	next.Pos = pos
	next.Orientation = orientation
	if !gs.Place(next) {
		gs.Place(old)
		restorePaths(gs, touching, oldPaths)
		return false
	}

	for _, c := range touching {
		if _, err := router.Route(gs, c.ID); err != nil {
			gs.Remove(id)
			gs.Place(old)
			restorePaths(gs, touching, oldPaths)
			return false
		}
	}
	return true
}

func snapshotPaths(gs *grid.State, conns []machine.Connection) map[string]grid.BeltPath {
	out := make(map[string]grid.BeltPath, len(conns))
	for _, c := range conns {
		if p, ok := gs.BeltPath(c.ID); ok {
			out[c.ID] = p
		}
	}
	return out
}

func restorePaths(gs *grid.State, conns []machine.Connection, snapshot map[string]grid.BeltPath) {
	for _, c := range conns {
		gs.RemoveBeltPath(c.ID)
		if p, ok := snapshot[c.ID]; ok {
			gs.ApplyBeltPath(c.ID, p)
		}
	}
}

// canPlace reports whether m's footprint would fit in bounds and not
// overlap any other machine's cells, without mutating gs.
func canPlace(gs *grid.State, m machine.Machine) bool {
	rect, err := m.Footprint()
	if err != nil {
		return false
	}
	if !rect.InBounds(gs.Width, gs.Height) {
		return false
	}
	ok := true
	rect.Tiles(func(x, y int) {
		if !ok {
			return
		}
		if c := gs.CellAt(x, y); c.Kind == grid.MachineCell && c.Owner != m.ID {
			ok = false
		}
	})
	return ok
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
