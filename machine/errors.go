package machine

import "errors"

// Sentinel errors for the machine package. Callers should use errors.Is to
// branch on semantics rather than comparing error strings.
var (
	// ErrUnknownType indicates a MachineType value outside the known catalog.
	ErrUnknownType = errors.New("machine: unknown machine type")

	// ErrInvalidOrientation indicates a Direction value outside North/East/South/West.
	ErrInvalidOrientation = errors.New("machine: invalid orientation")

	// ErrPortIndexOutOfRange indicates a port index outside [0, faceSpan).
	ErrPortIndexOutOfRange = errors.New("machine: port index out of range")

	// ErrPortAlreadyUsed indicates a (machine, port index, role) triple already
	// appears in some connection; a given port may carry at most one connection.
	ErrPortAlreadyUsed = errors.New("machine: port already connected")

	// ErrSelfConnection indicates a connection whose source and target machine
	// are the same; self-wiring is forbidden at construction time.
	ErrSelfConnection = errors.New("machine: connection cannot target its own machine")
)
