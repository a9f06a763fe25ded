// Package portassign implements the two post-annealing refinement passes:
// port-assignment optimization (reassigning each connection to the
// unused port pair on its two machines that minimizes Manhattan
// distance, then committing only if the result routes at least as well
// as what it replaced) and the compaction/orientation-polish pass that
// tightens the layout once annealing has settled on a placement.
package portassign
