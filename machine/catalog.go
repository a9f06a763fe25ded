package machine

// MachineType enumerates the fixed footprints a Machine may have. Base
// dimensions are given in the machine's NORTH/SOUTH orientation; EAST/WEST
// swap (width, height) -> (height, width), per OrientedDims.
type MachineType int

const (
	// Small3x3 is a 3x3 general-purpose machine: one input face, one output
	// face (opposite), one port per face tile.
	Small3x3 MachineType = iota

	// Large5x5 is a 5x5 general-purpose machine, same port rule as Small3x3.
	Large5x5

	// Wide6x4 is a 6(w)x4(h) general-purpose machine in its base
	// orientation, same port rule as Small3x3.
	Wide6x4

	// Anchor3x1 is a 3(w)x1(h) immovable machine: position and orientation
	// are pinned across every transformation. It has exactly one output
	// port, centered on the face its orientation points at, and no inputs.
	Anchor3x1
)

// String renders a MachineType for logs and fingerprints.
func (t MachineType) String() string {
	switch t {
	case Small3x3:
		return "3x3"
	case Large5x5:
		return "5x5"
	case Wide6x4:
		return "6x4"
	case Anchor3x1:
		return "anchor3x1"
	default:
		return "unknown"
	}
}

// catalogEntry holds the static facts about a MachineType.
type catalogEntry struct {
	baseW, baseH int
	movable      bool
	anchor       bool
}

var catalog = map[MachineType]catalogEntry{
	Small3x3:  {baseW: 3, baseH: 3, movable: true, anchor: false},
	Large5x5:  {baseW: 5, baseH: 5, movable: true, anchor: false},
	Wide6x4:   {baseW: 6, baseH: 4, movable: true, anchor: false},
	Anchor3x1: {baseW: 3, baseH: 1, movable: false, anchor: true},
}

// Valid reports whether t is a known MachineType.
func (t MachineType) Valid() bool {
	_, ok := catalog[t]
	return ok
}

// BaseDims returns the NORTH/SOUTH (width, height) of t.
func (t MachineType) BaseDims() (w, h int, err error) {
	e, ok := catalog[t]
	if !ok {
		return 0, 0, ErrUnknownType
	}
	return e.baseW, e.baseH, nil
}

// Movable reports whether machines of type t may change position or
// orientation. Anchor types are pinned (movable == false).
func (t MachineType) Movable() bool {
	e, ok := catalog[t]
	return ok && e.movable
}

// IsAnchor reports whether t follows the anchor port rule (single output,
// centered on the orientation-facing side, no inputs) rather than the
// regular one-port-per-face-tile rule.
func (t MachineType) IsAnchor() bool {
	e, ok := catalog[t]
	return ok && e.anchor
}

// OrientedDims returns the occupied (width, height) of a machine of type t
// under orientation o. NORTH/SOUTH keep the base dimensions; EAST/WEST swap
// them.
func OrientedDims(t MachineType, o Direction) (w, h int, err error) {
	bw, bh, err := t.BaseDims()
	if err != nil {
		return 0, 0, err
	}
	if !o.Valid() {
		return 0, 0, ErrInvalidOrientation
	}
	if o.Horizontal() {
		return bh, bw, nil
	}
	return bw, bh, nil
}
