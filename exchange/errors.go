package exchange

import "errors"

var (
	// ErrUnsupportedVersion is returned when a document's Version field is
	// not 1, the only version this package knows how to read.
	ErrUnsupportedVersion = errors.New("exchange: unsupported document version")

	// ErrUnknownMachineType is returned when a machine entry's Type tag
	// does not match any known catalog entry or legacy alias.
	ErrUnknownMachineType = errors.New("exchange: unknown machine type tag")

	// ErrUnknownOrientation is returned when a machine entry's Orientation
	// tag is not one of "N", "E", "S", "W".
	ErrUnknownOrientation = errors.New("exchange: unknown orientation tag")

	// ErrPlacementFailed is returned when a document's machine entry
	// cannot be placed on the grid it describes (out of bounds or
	// overlapping an already-placed machine).
	ErrPlacementFailed = errors.New("exchange: machine placement failed")

	// ErrDuplicateMachineID is returned when two machine entries in the
	// same document share an ID.
	ErrDuplicateMachineID = errors.New("exchange: duplicate machine id")
)
