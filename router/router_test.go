package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
	"github.com/beltforge/layoutcore/router"
)

func place(t *testing.T, s *grid.State, typ machine.MachineType, x, y int, o machine.Direction) machine.Machine {
	t.Helper()
	m := machine.Machine{ID: s.NextMachineID(), Type: typ, Pos: machine.Point{X: x, Y: y}, Orientation: o}
	require.True(t, s.Place(m))
	return m
}

func outputPort(t *testing.T, s *grid.State, m machine.Machine, index int) machine.Port {
	t.Helper()
	_, outputs, err := machine.Ports(m)
	require.NoError(t, err)
	require.Greater(t, len(outputs), index)
	return outputs[index]
}

func inputPort(t *testing.T, s *grid.State, m machine.Machine, index int) machine.Port {
	t.Helper()
	inputs, _, err := machine.Ports(m)
	require.NoError(t, err)
	require.Greater(t, len(inputs), index)
	return inputs[index]
}

func TestFindPath_StraightNoTurn(t *testing.T) {
	s := grid.NewState(10, 10)
	a := place(t, s, machine.Small3x3, 2, 5, machine.South) // output faces North
	b := place(t, s, machine.Small3x3, 2, 0, machine.South) // input faces South

	src := outputPort(t, s, a, 1) // centered port
	tgt := inputPort(t, s, b, 1)

	path, err := router.FindPath(s, src, tgt, "")
	require.NoError(t, err)
	require.Len(t, path, 2)
	assert.Equal(t, 0, path.CornerCount())
	assert.Nil(t, path[0].From)
	assert.Nil(t, path[len(path)-1].To)
}

func TestFindPath_SingleTurn_CornerCounted(t *testing.T) {
	s := grid.NewState(10, 10)
	a := place(t, s, machine.Small3x3, 2, 5, machine.South) // output faces North, external (3,4)
	b := place(t, s, machine.Small3x3, 6, 2, machine.West)  // input faces West, external (5,3)

	src := outputPort(t, s, a, 1)
	tgt := inputPort(t, s, b, 1)

	path, err := router.FindPath(s, src, tgt, "")
	require.NoError(t, err)
	assert.Equal(t, 1, path.CornerCount())
	assert.Equal(t, machine.North, *path[0].To)
	assert.Equal(t, machine.East, *path[len(path)-1].From)
}

func TestFindPath_StartBlocked_OutOfBounds(t *testing.T) {
	s := grid.NewState(10, 10)
	a := place(t, s, machine.Small3x3, 0, 0, machine.South) // output faces North, external (1,-1)
	b := place(t, s, machine.Small3x3, 0, 5, machine.South)

	src := outputPort(t, s, a, 1)
	tgt := inputPort(t, s, b, 1)

	_, err := router.FindPath(s, src, tgt, "")
	assert.ErrorIs(t, err, router.ErrStartBlocked)
}

func TestRoute_RerouteIgnoresOwnExistingPath(t *testing.T) {
	s := grid.NewState(10, 10)
	a := place(t, s, machine.Small3x3, 2, 5, machine.South)
	b := place(t, s, machine.Small3x3, 2, 0, machine.South)

	conn, err := s.Connect(machine.Connection{SourceMachine: a.ID, SourcePort: 1, TargetMachine: b.ID, TargetPort: 1})
	require.NoError(t, err)

	first, err := router.Route(s, conn.ID)
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := router.Route(s, conn.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFindPath_CrossingBeltsShareTileOrthogonally(t *testing.T) {
	s := grid.NewState(3, 3)
	south := machine.South
	vertical := grid.BeltPath{
		{Pos: machine.Point{X: 1, Y: 0}, From: nil, To: &south},
		{Pos: machine.Point{X: 1, Y: 1}, From: &south, To: &south},
		{Pos: machine.Point{X: 1, Y: 2}, From: &south, To: nil},
	}
	s.ApplyBeltPath("v", vertical)

	src := machine.Port{Pos: machine.Point{X: -1, Y: 1}, Approach: machine.East}
	tgt := machine.Port{Pos: machine.Point{X: 3, Y: 1}, Approach: machine.West}

	path, err := router.FindPath(s, src, tgt, "")
	require.NoError(t, err)
	assert.Equal(t, 0, path.CornerCount())

	s.ApplyBeltPath("h", path)
	usage := s.TileUsageAt(machine.Point{X: 1, Y: 1})
	assert.Equal(t, 1, usage.Horizontal)
	assert.Equal(t, 1, usage.Vertical)
	assert.Equal(t, 0, usage.Corner)
}

func TestFindPath_ParallelSharingForbiddenInSingleRowCorridor(t *testing.T) {
	s := grid.NewState(5, 1)
	west, east := machine.West, machine.East
	existing := grid.BeltPath{
		{Pos: machine.Point{X: 2, Y: 0}, From: &west, To: &east},
	}
	s.ApplyBeltPath("existing", existing)

	src := machine.Port{Pos: machine.Point{X: 0, Y: 0}, Approach: machine.East}
	tgt := machine.Port{Pos: machine.Point{X: 4, Y: 0}, Approach: machine.West}

	_, err := router.FindPath(s, src, tgt, "")
	assert.ErrorIs(t, err, router.ErrNoPath)
}
