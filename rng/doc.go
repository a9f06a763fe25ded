// Package rng provides the deterministic pseudo-random source shared by the
// seed generators, the annealing core, and the move operators.
//
// Unlike the rest of this module's numeric code, the generator here is a
// plain linear congruential generator rather than math/rand: the annealing
// schedule must reproduce bit-identical runs given the same seed regardless
// of host platform or Go runtime version, which math/rand's algorithm does
// not guarantee to preserve across releases. The recurrence is the textbook
// Numeric Recipes LCG: state = state*1664525 + 1013904223 (mod 2^32).
//
// Independent sub-streams (one per restart, one per operator) are derived
// with a SplitMix64-style avalanche mix, the same technique this module's
// other local-search code uses to decorrelate derived streams from a parent
// generator.
package rng
