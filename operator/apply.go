package operator

import (
	"github.com/beltforge/layoutcore/anneal"
	"github.com/beltforge/layoutcore/grid"
)

// Apply dispatches to the named operator against gs, returning whether it
// produced a (valid, fully rerouted) change. A false return means gs is
// unchanged -- callers should treat this as "no neighbor this iteration",
// not as an error.
func Apply(gs *grid.State, id ID, cfg anneal.Config, r randSource) bool {
	switch id {
	case MoveTowardNeighbor:
		return moveTowardNeighbor(gs, r)
	case MoveToSource:
		return moveToSource(gs, r)
	case PortFacingJump:
		return portFacingJump(gs, r)
	case TryDifferentPort:
		return tryDifferentPort(gs, r)
	case RandomShift:
		return randomShift(gs, r)
	case SwapPositions:
		return swapPositions(gs, r)
	case RotateBest:
		return rotateBest(gs, r)
	case JointMoveRotate:
		return jointMoveRotate(gs, r)
	case ClusterDestroyRepair:
		return clusterDestroyRepair(gs, cfg.ClusterMoveMinSize, cfg.ClusterMoveMaxSize, r)
	case CriticalNetFocus:
		return criticalNetFocus(gs, cfg.ClusterMoveMaxSize, r)
	default:
		return false
	}
}
