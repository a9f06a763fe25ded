package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
)

func newPlaced(t *testing.T, s *grid.State, typ machine.MachineType, x, y int, o machine.Direction) machine.Machine {
	t.Helper()
	m := machine.Machine{ID: s.NextMachineID(), Type: typ, Pos: machine.Point{X: x, Y: y}, Orientation: o}
	require.True(t, s.Place(m))
	return m
}

func TestPlace_StampsFootprintAndRejectsOverlap(t *testing.T) {
	s := grid.NewState(10, 10)
	a := newPlaced(t, s, machine.Small3x3, 0, 0, machine.North)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			cell := s.CellAt(x, y)
			assert.Equal(t, grid.MachineCell, cell.Kind)
			assert.Equal(t, a.ID, cell.Owner)
		}
	}

	overlapping := machine.Machine{ID: s.NextMachineID(), Type: machine.Small3x3, Pos: machine.Point{X: 1, Y: 1}, Orientation: machine.North}
	assert.False(t, s.Place(overlapping))

	outOfBounds := machine.Machine{ID: s.NextMachineID(), Type: machine.Small3x3, Pos: machine.Point{X: 9, Y: 9}, Orientation: machine.North}
	assert.False(t, s.Place(outOfBounds))
}

func TestRemove_ClearsCellsAndLeavesNoReference(t *testing.T) {
	s := grid.NewState(10, 10)
	a := newPlaced(t, s, machine.Small3x3, 2, 2, machine.North)

	require.True(t, s.Remove(a.ID))
	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			cell := s.CellAt(x, y)
			assert.Equal(t, grid.Empty, cell.Kind)
			assert.Empty(t, cell.Owner)
		}
	}
	_, ok := s.Machine(a.ID)
	assert.False(t, ok)
}

func TestConnect_RejectsSelfAndDuplicatePort(t *testing.T) {
	s := grid.NewState(10, 10)
	a := newPlaced(t, s, machine.Small3x3, 0, 0, machine.North)
	b := newPlaced(t, s, machine.Small3x3, 0, 6, machine.South)

	_, err := s.Connect(machine.Connection{SourceMachine: a.ID, SourcePort: 0, TargetMachine: a.ID, TargetPort: 0})
	assert.ErrorIs(t, err, grid.ErrSelfConnection)

	conn, err := s.Connect(machine.Connection{SourceMachine: a.ID, SourcePort: 0, TargetMachine: b.ID, TargetPort: 0})
	require.NoError(t, err)
	require.NotEmpty(t, conn.ID)

	_, err = s.Connect(machine.Connection{SourceMachine: a.ID, SourcePort: 0, TargetMachine: b.ID, TargetPort: 1})
	assert.ErrorIs(t, err, grid.ErrPortAlreadyUsed)
}

func TestApplyAndRemoveBeltPath_RestoresExactPreState(t *testing.T) {
	s := grid.NewState(10, 10)
	south := machine.South
	path := grid.BeltPath{
		{Pos: machine.Point{X: 5, Y: 5}, From: nil, To: &south},
		{Pos: machine.Point{X: 5, Y: 6}, From: &south, To: nil},
	}

	before := s.CellAt(5, 5)
	s.ApplyBeltPath("c1", path)

	assert.Equal(t, grid.BeltCell, s.CellAt(5, 5).Kind)
	usage := s.TileUsageAt(machine.Point{X: 5, Y: 5})
	assert.Equal(t, 1, usage.Vertical)
	assert.Equal(t, 0, usage.Corner)

	require.True(t, s.RemoveBeltPath("c1"))
	assert.Equal(t, before, s.CellAt(5, 5))
	assert.Equal(t, grid.TileUsage{}, s.TileUsageAt(machine.Point{X: 5, Y: 5}))
	_, applied := s.BeltPath("c1")
	assert.False(t, applied)
}

func TestApplyBeltPath_CrossingTileCountsBothAxes(t *testing.T) {
	s := grid.NewState(10, 10)
	east := machine.East
	west := machine.West
	north := machine.North
	south := machine.South

	horizontal := grid.BeltPath{{Pos: machine.Point{X: 5, Y: 5}, From: &west, To: &east}}
	vertical := grid.BeltPath{{Pos: machine.Point{X: 5, Y: 5}, From: &north, To: &south}}

	s.ApplyBeltPath("h", horizontal)
	s.ApplyBeltPath("v", vertical)

	usage := s.TileUsageAt(machine.Point{X: 5, Y: 5})
	assert.Equal(t, 1, usage.Horizontal)
	assert.Equal(t, 1, usage.Vertical)
	assert.Equal(t, 0, usage.Corner)

	cell := s.CellAt(5, 5)
	assert.ElementsMatch(t, []string{"h", "v"}, cell.Belts)
}

func TestClone_IsIndependent(t *testing.T) {
	s := grid.NewState(5, 5)
	a := newPlaced(t, s, machine.Small3x3, 0, 0, machine.North)

	clone := s.Clone()
	require.True(t, clone.Remove(a.ID))

	_, stillThere := s.Machine(a.ID)
	assert.True(t, stillThere)
	_, removedInClone := clone.Machine(a.ID)
	assert.False(t, removedInClone)
}
