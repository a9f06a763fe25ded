package grid

import (
	"strconv"

	"github.com/beltforge/layoutcore/machine"
)

// InBounds reports whether (x, y) lies within the grid.
func (s *State) InBounds(x, y int) bool {
	return x >= 0 && x < s.Width && y >= 0 && y < s.Height
}

// CellAt returns the cell at (x, y). Out-of-bounds coordinates return the
// zero Cell (Empty, no owner, no belts).
func (s *State) CellAt(x, y int) Cell {
	if !s.InBounds(x, y) {
		return Cell{}
	}
	return s.cells[y][x]
}

// Machine looks up a placed machine by ID.
func (s *State) Machine(id string) (machine.Machine, bool) {
	m, ok := s.machines[id]
	return m, ok
}

// Machines returns every placed machine, in no particular order. Callers
// must not mutate the returned slice's backing machines via pointer --
// Machine is a value type.
func (s *State) Machines() []machine.Machine {
	out := make([]machine.Machine, 0, len(s.machines))
	for _, m := range s.machines {
		out = append(out, m)
	}
	return out
}

// Connection looks up a connection by ID.
func (s *State) Connection(id string) (machine.Connection, bool) {
	c, ok := s.connections[id]
	return c, ok
}

// Connections returns every connection, in no particular order.
func (s *State) Connections() []machine.Connection {
	out := make([]machine.Connection, 0, len(s.connections))
	for _, c := range s.connections {
		out = append(out, c)
	}
	return out
}

// BeltPath returns the routed path for connID, if one has been applied.
func (s *State) BeltPath(connID string) (BeltPath, bool) {
	p, ok := s.beltPaths[connID]
	return p, ok
}

// TileUsageAt returns the belt-usage counts at p (zero value if the tile
// carries no belt).
func (s *State) TileUsageAt(p machine.Point) TileUsage {
	u, ok := s.tileUsage[p]
	if !ok {
		return TileUsage{}
	}
	return *u
}

// NextMachineID mints the next machine identifier for this grid instance.
// Complexity: O(1).
func (s *State) NextMachineID() string {
	s.nextMachineID++
	return "m" + strconv.FormatUint(s.nextMachineID, 10)
}

// NextConnectionID mints the next connection identifier for this grid
// instance. Complexity: O(1).
func (s *State) NextConnectionID() string {
	s.nextConnectionID++
	return "c" + strconv.FormatUint(s.nextConnectionID, 10)
}

// Place stamps m's oriented footprint into the grid as MachineCell(m.ID).
// Fails (returns false, no mutation) if any target tile is out of bounds or
// already owned by a different machine. Complexity: O(area of footprint).
func (s *State) Place(m machine.Machine) bool {
	rect, err := m.Footprint()
	if err != nil {
		return false
	}
	if !rect.InBounds(s.Width, s.Height) {
		return false
	}

	ok := true
	rect.Tiles(func(x, y int) {
		if !ok {
			return
		}
		c := s.cells[y][x]
		if c.Kind == MachineCell && c.Owner != m.ID {
			ok = false
		}
	})
	if !ok {
		return false
	}

	rect.Tiles(func(x, y int) {
		s.cells[y][x] = Cell{Kind: MachineCell, Owner: m.ID}
	})
	s.machines[m.ID] = m

	return true
}

// Remove clears m's ownership of its footprint tiles and drops it from the
// machine catalog. It does NOT touch belts -- the caller is responsible for
// rerouting or removing any connections that referenced this machine (see
// RemoveCascade for the convenience wrapper that does so).
// Complexity: O(area of footprint).
func (s *State) Remove(id string) bool {
	m, ok := s.machines[id]
	if !ok {
		return false
	}
	rect, err := m.Footprint()
	if err != nil {
		return false
	}
	rect.Tiles(func(x, y int) {
		if s.cells[y][x].Kind == MachineCell && s.cells[y][x].Owner == id {
			s.cells[y][x] = Cell{}
		}
	})
	delete(s.machines, id)

	return true
}

// RemoveCascade removes machine id and, per the lifecycle described in the
// data model, cascades: every connection touching id has its belt path torn
// down (if routed) and is itself deleted.
// Complexity: O(area of footprint + connections touching id).
func (s *State) RemoveCascade(id string) bool {
	if _, ok := s.machines[id]; !ok {
		return false
	}
	for connID, c := range s.connections {
		if c.SourceMachine == id || c.TargetMachine == id {
			s.RemoveBeltPath(connID)
			s.deleteConnection(connID)
		}
	}
	return s.Remove(id)
}

// Clone returns a deep, independent copy of s.
// Complexity: O(W*H + machines + connections + belt tiles).
func (s *State) Clone() *State {
	out := NewState(s.Width, s.Height)
	out.nextMachineID = s.nextMachineID
	out.nextConnectionID = s.nextConnectionID

	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			src := s.cells[y][x]
			dst := Cell{Kind: src.Kind, Owner: src.Owner}
			if len(src.Belts) > 0 {
				dst.Belts = append([]string(nil), src.Belts...)
			}
			out.cells[y][x] = dst
		}
	}
	for id, m := range s.machines {
		out.machines[id] = m
	}
	for id, c := range s.connections {
		out.connections[id] = c
	}
	for id, p := range s.beltPaths {
		out.beltPaths[id] = append(BeltPath(nil), p...)
	}
	for pt, u := range s.tileUsage {
		cp := *u
		out.tileUsage[pt] = &cp
	}
	for k, v := range s.usedPorts {
		out.usedPorts[k] = v
	}

	return out
}
