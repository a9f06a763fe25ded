package grid

import "github.com/beltforge/layoutcore/machine"

// CellKind tags the occupant of a grid tile.
type CellKind int

const (
	Empty CellKind = iota
	MachineCell
	BeltCell
)

// Cell is one tile of the grid. Owner is the machine ID when Kind ==
// MachineCell. Belts holds every connection ID whose path passes through
// this tile when Kind == BeltCell (a tile may be shared by at most two
// belts, per the axis-usage invariant enforced by the router package).
type Cell struct {
	Kind  CellKind
	Owner string
	Belts []string
}

// hasBelt reports whether connID already passes through this cell.
func (c Cell) hasBelt(connID string) bool {
	for _, id := range c.Belts {
		if id == connID {
			return true
		}
	}
	return false
}

// TileUsage counts how many belt segments of each disposition occupy a
// tile. A tile with all-zero counts is absent from State.tileUsage.
type TileUsage struct {
	Horizontal int
	Vertical   int
	Corner     int
}

// Empty reports whether every count is zero.
func (u TileUsage) Empty() bool {
	return u.Horizontal == 0 && u.Vertical == 0 && u.Corner == 0
}

// BeltSegment is one tile of a belt path, with the direction the belt
// arrived from (nil only at the path's first segment) and the direction it
// departs to (nil only at the path's last segment). A segment is a corner
// iff both directions are set and lie on different axes.
type BeltSegment struct {
	Pos  machine.Point
	From *machine.Direction
	To   *machine.Direction
}

// IsCorner reports whether the segment turns: both directions set and on
// different axes.
func (s BeltSegment) IsCorner() bool {
	return s.From != nil && s.To != nil && !s.From.SameAxis(*s.To)
}

// BeltPath is the ordered list of segments routed for one connection: the
// first segment sits just outside the source port, the last just outside
// the target port.
type BeltPath []BeltSegment

// CornerCount returns the number of corner segments in the path.
func (p BeltPath) CornerCount() int {
	n := 0
	for _, seg := range p {
		if seg.IsCorner() {
			n++
		}
	}
	return n
}

// State is the grid model: dimensions, the cell matrix, the machine and
// connection catalogs, routed belt paths, and per-tile belt usage.
type State struct {
	Width, Height int

	cells       [][]Cell // row-major: cells[y][x]
	machines    map[string]machine.Machine
	connections map[string]machine.Connection
	beltPaths   map[string]BeltPath
	tileUsage   map[machine.Point]*TileUsage

	// usedPorts tracks which (machineID, role, index) triples already
	// belong to a connection, enforcing the one-connection-per-port rule.
	usedPorts map[portKey]string // -> connection ID

	nextMachineID    uint64
	nextConnectionID uint64
}

// portKey identifies one port slot for uniqueness tracking.
type portKey struct {
	machineID string
	role      machine.PortRole
	index     int
}

// NewState allocates an empty W x H grid.
func NewState(width, height int) *State {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
	}
	return &State{
		Width:       width,
		Height:      height,
		cells:       cells,
		machines:    make(map[string]machine.Machine),
		connections: make(map[string]machine.Connection),
		beltPaths:   make(map[string]BeltPath),
		tileUsage:   make(map[machine.Point]*TileUsage),
		usedPorts:   make(map[portKey]string),
	}
}
