package portassign_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
	"github.com/beltforge/layoutcore/portassign"
	"github.com/beltforge/layoutcore/router"
	"github.com/beltforge/layoutcore/score"
)

func place(t *testing.T, s *grid.State, typ machine.MachineType, x, y int, o machine.Direction) machine.Machine {
	t.Helper()
	m := machine.Machine{ID: s.NextMachineID(), Type: typ, Pos: machine.Point{X: x, Y: y}, Orientation: o}
	require.True(t, s.Place(m))
	return m
}

func testScoreConfig() score.Config {
	return score.DefaultConfig()
}

// mismatchedPairGrid connects m1's output port 0 to m2's input port 2 --
// both machines' faces line up tile-for-tile, so port 0 on one side and
// port 0 on the other would be a straight, cornerless run; pairing 0 with
// 2 forces a detour.
func mismatchedPairGrid(t *testing.T) (*grid.State, []machine.Connection) {
	t.Helper()
	gs := grid.NewState(24, 24)
	m1 := place(t, gs, machine.Small3x3, 2, 10, machine.West)
	m2 := place(t, gs, machine.Small3x3, 10, 10, machine.West)

	conn, err := gs.Connect(machine.Connection{SourceMachine: m1.ID, SourcePort: 0, TargetMachine: m2.ID, TargetPort: 2})
	require.NoError(t, err)
	_, err = router.Route(gs, conn.ID)
	require.NoError(t, err)

	return gs, gs.Connections()
}

func TestAssign_NeverWorsensTheRoutedScore(t *testing.T) {
	gs, conns := mismatchedPairGrid(t)
	cfg := testScoreConfig()
	baseline := score.EvaluateRouted(gs, conns, cfg)

	out := portassign.Assign(gs, cfg)
	require.Len(t, out.Machines(), 2)
	require.Len(t, out.Connections(), 1)

	result := score.EvaluateRouted(out, out.Connections(), cfg)
	assert.LessOrEqual(t, score.Compare(result, baseline, cfg), 0)
}

func TestAssign_PreservesMachineAndConnectionIdentities(t *testing.T) {
	gs, _ := mismatchedPairGrid(t)
	cfg := testScoreConfig()

	out := portassign.Assign(gs, cfg)
	for _, c := range out.Connections() {
		_, srcOK := out.Machine(c.SourceMachine)
		_, tgtOK := out.Machine(c.TargetMachine)
		assert.True(t, srcOK)
		assert.True(t, tgtOK)
	}
}

func TestAssign_NoConnectionsReturnsEquivalentClone(t *testing.T) {
	gs := grid.NewState(10, 10)
	place(t, gs, machine.Small3x3, 0, 0, machine.South)
	cfg := testScoreConfig()

	out := portassign.Assign(gs, cfg)
	assert.Len(t, out.Machines(), 1)
	assert.Len(t, out.Connections(), 0)
}

// scatteredGrid places two connected machines far from the grid origin
// with plenty of slack on every side, giving compaction real room to pull
// them toward (1, 1).
func scatteredGrid(t *testing.T) (*grid.State, []machine.Connection) {
	t.Helper()
	gs := grid.NewState(40, 40)
	m1 := place(t, gs, machine.Small3x3, 20, 20, machine.West)
	m2 := place(t, gs, machine.Small3x3, 28, 20, machine.West)

	conn, err := gs.Connect(machine.Connection{SourceMachine: m1.ID, SourcePort: 1, TargetMachine: m2.ID, TargetPort: 1})
	require.NoError(t, err)
	_, err = router.Route(gs, conn.ID)
	require.NoError(t, err)

	return gs, gs.Connections()
}

func TestCompact_PullsMachinesTowardOriginWithoutWorseningScore(t *testing.T) {
	gs, conns := scatteredGrid(t)
	cfg := testScoreConfig()
	baseline := score.EvaluateRouted(gs, conns, cfg)

	out := portassign.Compact(gs, conns, cfg)
	require.Len(t, out.Machines(), 2)
	require.Len(t, out.Connections(), 1)

	result := score.EvaluateRouted(out, out.Connections(), cfg)
	assert.LessOrEqual(t, score.Compare(result, baseline, cfg), 0)

	var minCorner int = 1 << 30
	for _, m := range out.Machines() {
		rect, err := m.Footprint()
		require.NoError(t, err)
		if c := rect.X + rect.Y; c < minCorner {
			minCorner = c
		}
	}
	before := 1 << 30
	for _, m := range gs.Machines() {
		rect, _ := m.Footprint()
		if c := rect.X + rect.Y; c < before {
			before = c
		}
	}
	assert.Less(t, minCorner, before)
}

func TestCompact_NoMovableMachinesIsANoop(t *testing.T) {
	gs := grid.NewState(10, 10)
	place(t, gs, machine.Anchor3x1, 3, 0, machine.South)
	cfg := testScoreConfig()

	out := portassign.Compact(gs, nil, cfg)
	assert.Len(t, out.Machines(), 1)
}

func TestPolish_NeverWorsensTheRoutedScore(t *testing.T) {
	gs, conns := mismatchedPairGrid(t)
	cfg := testScoreConfig()
	baseline := score.EvaluateRouted(gs, conns, cfg)

	out := portassign.Polish(gs, conns, cfg)
	require.Len(t, out.Machines(), 2)
	require.Len(t, out.Connections(), 1)

	result := score.EvaluateRouted(out, out.Connections(), cfg)
	assert.LessOrEqual(t, score.Compare(result, baseline, cfg), 0)
}

func TestPolish_PreservesMachineAndConnectionIdentities(t *testing.T) {
	gs, _ := mismatchedPairGrid(t)
	cfg := testScoreConfig()

	out := portassign.Polish(gs, gs.Connections(), cfg)
	for _, c := range out.Connections() {
		_, srcOK := out.Machine(c.SourceMachine)
		_, tgtOK := out.Machine(c.TargetMachine)
		assert.True(t, srcOK)
		assert.True(t, tgtOK)
	}
}
