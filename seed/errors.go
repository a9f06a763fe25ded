package seed

import "errors"

// Sentinel errors for the seed package.
var (
	// ErrNoValidPlacement indicates every orientation at every ring offset
	// out to the grid's maximum radius was rejected for a machine.
	ErrNoValidPlacement = errors.New("seed: no valid placement found for machine")

	// ErrUnknownMachine indicates a connection referenced a machine ID not
	// present among the anchors or movables passed to the generator.
	ErrUnknownMachine = errors.New("seed: connection references unknown machine")

	// ErrAbstain indicates that Pattern found the problem's topology did
	// not match either shape it specializes in (TwoLayerExhaustive falls
	// back to Layered instead of abstaining). Callers treat it exactly like any other
	// generator error: skip this candidate, try the next generator.
	ErrAbstain = errors.New("seed: topology does not match this generator's pattern")
)
