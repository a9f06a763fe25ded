package grid

import "errors"

// Sentinel errors for the grid package.
var (
	// ErrOutOfBounds indicates a placement or query referenced a tile (or
	// footprint) outside the grid.
	ErrOutOfBounds = errors.New("grid: out of bounds")

	// ErrOverlap indicates a placement would overlap a tile already owned
	// by a different machine.
	ErrOverlap = errors.New("grid: overlaps an existing machine")

	// ErrMachineNotFound indicates a reference to an unknown machine ID.
	ErrMachineNotFound = errors.New("grid: machine not found")

	// ErrConnectionNotFound indicates a reference to an unknown connection ID.
	ErrConnectionNotFound = errors.New("grid: connection not found")

	// ErrPortIndexOutOfRange indicates a connection referenced a port index
	// that does not exist on the given machine/role.
	ErrPortIndexOutOfRange = errors.New("grid: port index out of range")

	// ErrPortAlreadyUsed indicates the targeted port already belongs to
	// another connection. A (machine, port index, role) triple may carry at
	// most one connection.
	ErrPortAlreadyUsed = errors.New("grid: port already connected")

	// ErrSelfConnection indicates a connection whose source and target
	// machine are identical; forbidden at construction time.
	ErrSelfConnection = errors.New("grid: connection cannot target its own machine")

	// ErrUsageUnderflow is a fatal invariant: decrementing tile usage below
	// zero. By construction this should never happen.
	ErrUsageUnderflow = errors.New("grid: tile usage underflow")
)
