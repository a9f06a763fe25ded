// Package router finds turn-penalized shortest belt paths between two ports
// on a grid.State, and applies or retracts the resulting BeltPath.
//
// The search is an A* over (tile, incoming-direction) states: moving
// straight costs 1, turning adds a penalty of 2, and stepping onto a tile
// that already carries a belt (crossing it) adds 0.5 -- noticeably cheaper
// than the 2-cost detour a turn would take to avoid the crossing, so the
// search prefers to cross rather than route around. The Manhattan distance
// to the target tile is an admissible heuristic since no step ever costs
// less than 1.
//
// Two belts may share a tile only if neither occupies it as a corner and
// they travel on orthogonal axes; parallel sharing and any use of an
// already-cornered tile are forbidden. FindPath enforces this against the
// grid's existing usage, discounting the connection being rerouted (if any)
// so a connection can be re-routed through its own prior path.
package router
