// Package grid implements the grid model: a 2D cell array on which machines
// are placed and belts are laid, plus the bookkeeping a routed layout
// carries (per-connection belt paths, per-tile axis/corner usage).
//
// State is the mutable root: Width, Height, a cell matrix, a machine
// catalog, a connection catalog, belt paths, and tile usage. It is a plain
// value-ish struct (no internal locking) -- the optimizer's concurrency
// model (see the anneal package) is single-threaded and cooperative, so the
// mutex discipline the teacher's core.Graph uses is unnecessary here; State
// exposes an explicit Clone for the cases (fallback preservation, repair
// beams) that need an independent copy.
//
// Machine and connection IDs are generated by a monotonic counter scoped to
// the State instance, never global, so tests stay reproducible across runs.
package grid
