package portassign

import (
	"sort"

	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
	"github.com/beltforge/layoutcore/router"
)

// movableByID returns every placed movable machine sorted by ID, the
// deterministic order orientation polish and the translate-to-origin step
// walk machines in.
func movableByID(gs *grid.State) []machine.Machine {
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

// movableByCorner returns every placed movable machine sorted by x+y
// ascending (ties broken by ID), the order the compaction pass visits
// machines in.
func movableByCorner(gs *grid.State) []machine.Machine {
	out := movableByID(gs)
	sort.SliceStable(out, func(i, j int) bool {
		return (out[i].Pos.X + out[i].Pos.Y) < (out[j].Pos.X + out[j].Pos.Y)
	})
	return out
}

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

func connIDs(conns []machine.Connection) []string {
	ids := make([]string, len(conns))
	for i, c := range conns {
		ids[i] = c.ID
	}
	return ids
}

// portInUse reports whether (machineID, role, index) is currently claimed
// by any connection in gs.
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
// overlap another machine's cells, without mutating gs.
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

// repositionStrict moves machine id to (pos, orientation), rerouting every
// touching connection. Any failure (footprint doesn't fit, or a touched
// connection can no longer be routed) rolls gs back to its pre-call state
// and returns false. Used by compaction, which must never leave a
// connection unrouted mid-pass.
func repositionStrict(gs *grid.State, id string, pos machine.Point, orientation machine.Direction) bool {
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

// repositionRelaxed moves machine id to (pos, orientation) if the footprint
// fits, then attempts to reroute every touching connection but does not
// roll back on a routing failure -- callers (orientation polish) are
// expected to fall back to the fast score when not every connection routed.
// It reports whether the placement itself succeeded and whether every
// touching connection ended up routed.
func repositionRelaxed(gs *grid.State, id string, pos machine.Point, orientation machine.Direction) (placed, fullyRouted bool) {
	old, ok := gs.Machine(id)
	if !ok {
		return false, false
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
		return false, false
	}

	fullyRouted = true
	for _, c := range touching {
		if _, err := router.Route(gs, c.ID); err != nil {
			fullyRouted = false
		}
	}
	return true, fullyRouted
}
