package machine

// PortRole distinguishes an input port (belt arrives) from an output port
// (belt departs).
type PortRole int

const (
	Input PortRole = iota
	Output
)

// String renders a PortRole for logs and fingerprints.
func (r PortRole) String() string {
	if r == Output {
		return "out"
	}
	return "in"
}

// Machine is a placed, typed instance on the grid. Position is the
// top-left corner of its oriented footprint. Immovable types (Anchor3x1)
// must keep the same Pos/Orientation across every transformation the
// optimizer performs.
type Machine struct {
	ID          string
	Type        MachineType
	Pos         Point
	Orientation Direction
}

// Footprint returns the rectangle m occupies, honoring its orientation.
func (m Machine) Footprint() (Rect, error) {
	w, h, err := OrientedDims(m.Type, m.Orientation)
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: m.Pos.X, Y: m.Pos.Y, W: w, H: h}, nil
}

// Movable reports whether m may be repositioned or reoriented.
func (m Machine) Movable() bool {
	return m.Type.Movable()
}

// Port is one connection point on a placed Machine's boundary.
type Port struct {
	MachineID string
	Role      PortRole
	Index     int
	Pos       Point
	Approach  Direction
}

// Connection links one machine's output port to another machine's input
// port. A (machine, port index, role) triple may appear in at most one
// Connection; this invariant is enforced by whatever constructs
// Connections (grid.State.Connect), not by this type itself.
type Connection struct {
	ID            string
	SourceMachine string
	SourcePort    int
	TargetMachine string
	TargetPort    int
}
