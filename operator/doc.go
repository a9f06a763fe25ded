// Package operator implements the move-operator portfolio the annealing
// core samples from: eight local moves that perturb one machine or
// connection at a time, plus a cluster destroy-repair move and a
// critical-net-focus move that tear out and reinsert several machines at
// once. Every operator mutates a *grid.State in place and leaves it either
// fully valid (every touched connection rerouted) or, on failure, restored
// to its pre-attempt state -- callers never have to distinguish a failed
// operator from a successful no-op.
//
// Dispatch is adaptive: Portfolio tracks a rolling reward per operator and
// blends base weights with that reward to bias sampling toward whatever has
// recently been paying off, within per-operator probability floors and
// caps, and with the two disruptive cluster operators gated by temperature
// and a post-improvement cooldown.
package operator
