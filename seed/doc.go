// Package seed builds initial, unrouted candidate layouts for the
// optimizer's Phase 0. Each generator places every movable machine
// somewhere valid on the grid (anchors are placed exactly where given,
// since they are immovable) and registers every connection, without
// attempting to route any of them -- routing and scoring happen in later
// phases.
//
// Four generators cover different structural biases:
//
//   - Greedy: places movables in the order given, each by spiral search
//     from the grid's center; no topology awareness. It does not order
//     machines by connectivity or try poses beside placed machines.
//   - Layered: places machines in order of their longest-path layer from
//     the layout's sources, each by spiral search from its already-placed
//     predecessors' average position. Layers are not packed into fixed
//     bands, and machines within a layer are ordered by ID only.
//   - Pattern: fires only on a clean three-layer bipartite graph or a
//     ring of eight to ringSearchMaxNodes machines (with any number of
//     chords), laying either
//     out as packed rows or a circle; abstains (ErrAbstain) on any other
//     topology rather than falling back to a generic heuristic.
//   - Exhaustive: fires only on a topology exactly two layers deep, tries
//     every permutation of each layer's row ordering bounded by
//     |top|!*|bot|!<=4000, actually routes each candidate, and keeps the
//     best-scoring routable result; falls back to Layered otherwise.
//
// Any generator that cannot place a machine by its primary heuristic falls
// back to a spiral search outward from a preferred anchor point -- see
// spiral.go.
package seed
