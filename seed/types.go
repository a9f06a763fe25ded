package seed

import "github.com/beltforge/layoutcore/machine"

// MachineSpec is a to-be-placed movable machine: its catalog type and the
// ID it should be registered under. Orientation defaults to North unless a
// generator has reason to pick otherwise.
type MachineSpec struct {
	ID   string
	Type machine.MachineType
}

// Problem is the full input to every generator in this package: the grid
// dimensions, the already-positioned immovable anchors, the movable
// machines to place, and the connection topology linking them all (by ID,
// resolved once every machine has been placed).
type Problem struct {
	Width, Height int
	Anchors       []machine.Machine
	Movables      []MachineSpec
	Connections   []machine.Connection
}
