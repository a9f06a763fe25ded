// Package anneal implements the generic simulated-annealing engine shared
// by every optimization phase: a temperature schedule with reheat-on-
// stagnation, the Metropolis acceptance rule, and an elite archive that
// keeps a diverse pool of good candidates to reseed restarts from.
//
// The engine itself is domain-agnostic: it operates on any Candidate via a
// caller-supplied neighbor function and score.Metrics comparator, so the
// same Run loop drives both the routing-free proxy-scored phase and the
// fully-routed phase -- only the neighbor function (which lives in the
// operator package) and the scorer change between them.
package anneal
