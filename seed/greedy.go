package seed

import (
	"github.com/beltforge/layoutcore/grid"
)

// Greedy places every movable machine, in the order given, via a spiral
// search from the grid's center. It has no topology awareness: it is the
// fastest generator and serves as the baseline the other three are judged
// against.
func Greedy(p Problem) (*grid.State, error) {
	gs, err := newBaseState(p)
	if err != nil {
		return nil, err
	}

	center := gridCenter(gs)
	for _, spec := range p.Movables {
		if _, ok := spiralPlace(gs, spec.ID, spec.Type, center); !ok {
			return nil, ErrNoValidPlacement
		}
	}

	if err := connectAll(gs, p.Connections); err != nil {
		return nil, err
	}
	return gs, nil
}
