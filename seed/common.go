package seed

import (
	"fmt"

	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
)

// newBaseState allocates the grid and places every anchor verbatim --
// anchors are immovable and their Pos/Orientation are part of the problem,
// not something a generator may choose.
func newBaseState(p Problem) (*grid.State, error) {
	gs := grid.NewState(p.Width, p.Height)
	for _, a := range p.Anchors {
		if !gs.Place(a) {
			return nil, fmt.Errorf("seed: anchor %s could not be placed at its fixed position", a.ID)
		}
	}
	return gs, nil
}

// connectAll registers every connection in p against gs once all machines
// are placed. Registration order follows p.Connections, so results are
// deterministic given a deterministic machine placement order.
func connectAll(gs *grid.State, conns []machine.Connection) error {
	for _, c := range conns {
		if _, ok := gs.Machine(c.SourceMachine); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownMachine, c.SourceMachine)
		}
		if _, ok := gs.Machine(c.TargetMachine); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownMachine, c.TargetMachine)
		}
		if _, err := gs.Connect(c); err != nil {
			return err
		}
	}
	return nil
}

// gridCenter returns the grid's midpoint tile, the default spiral-search
// origin for a machine with no more specific anchor to seed from.
func gridCenter(gs *grid.State) machine.Point {
	return machine.Point{X: gs.Width / 2, Y: gs.Height / 2}
}
