// Package machine defines the typed building blocks of a factory layout:
// machine footprints, cardinal directions/orientations, ports, and the
// connections between them.
//
// What:
//
//   - MachineType enumerates fixed footprints (Small3x3, Large5x5, Wide6x4,
//     Anchor3x1) and their base (unrotated) dimensions.
//   - Direction is the shared cardinal-direction type used both for a
//     machine's Orientation and for a Port's approach direction.
//   - Port derives its absolute position and approach direction from its
//     owning Machine's footprint, orientation, and role (input/output).
//   - Connection links one machine's output port to another's input port.
//
// Why: every other package (grid, router, score, seed, anneal, operator,
// portassign, optimizer) builds on these value types without needing to
// know how a footprint rotates or where a port lands.
//
// Complexity: all operations here are O(1) or O(n) in the number of ports
// on a single machine face (at most the larger of the two footprint
// dimensions).
package machine
