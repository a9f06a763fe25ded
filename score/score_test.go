package score_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
	"github.com/beltforge/layoutcore/router"
	"github.com/beltforge/layoutcore/score"
)

func place(t *testing.T, s *grid.State, typ machine.MachineType, x, y int, o machine.Direction) machine.Machine {
	t.Helper()
	m := machine.Machine{ID: s.NextMachineID(), Type: typ, Pos: machine.Point{X: x, Y: y}, Orientation: o}
	require.True(t, s.Place(m))
	return m
}

func TestEvaluateRouted_SumsBeltLengthAndCorners(t *testing.T) {
	s := grid.NewState(10, 10)
	a := place(t, s, machine.Small3x3, 2, 5, machine.South)
	b := place(t, s, machine.Small3x3, 2, 0, machine.South)

	conn, err := s.Connect(machine.Connection{SourceMachine: a.ID, SourcePort: 1, TargetMachine: b.ID, TargetPort: 1})
	require.NoError(t, err)
	_, err = router.Route(s, conn.ID)
	require.NoError(t, err)

	cfg := score.DefaultConfig()
	m := score.EvaluateRouted(s, s.Connections(), cfg)
	assert.Equal(t, 0, m.UnroutableCount)
	assert.Equal(t, 2, m.BeltLength)
	assert.Equal(t, 0, m.Corners)
	assert.Greater(t, m.BoundingArea, 0)
}

func TestEvaluateRouted_UnroutedConnectionIsPenalized(t *testing.T) {
	s := grid.NewState(10, 10)
	a := place(t, s, machine.Small3x3, 0, 0, machine.South)
	b := place(t, s, machine.Small3x3, 0, 5, machine.South)

	conn, err := s.Connect(machine.Connection{SourceMachine: a.ID, SourcePort: 1, TargetMachine: b.ID, TargetPort: 1})
	require.NoError(t, err)

	cfg := score.DefaultConfig()
	m := score.EvaluateRouted(s, s.Connections(), cfg)
	assert.Equal(t, 1, m.UnroutableCount)
	assert.GreaterOrEqual(t, m.PenaltySum, cfg.UnroutableBase)
}

func TestCompare_FewerUnroutableAlwaysWins(t *testing.T) {
	cfg := score.DefaultConfig()
	better := score.Metrics{UnroutableCount: 0, BeltLength: 1000}
	worse := score.Metrics{UnroutableCount: 1, BeltLength: 1}
	assert.Equal(t, -1, score.Compare(better, worse, cfg))
}

func TestCompare_LowerTotalWinsWhenUnroutableEqual(t *testing.T) {
	cfg := score.DefaultConfig()
	better := score.Metrics{BeltLength: 5}
	worse := score.Metrics{BeltLength: 10}
	assert.Equal(t, -1, score.Compare(better, worse, cfg))
	assert.Equal(t, 1, score.Compare(worse, better, cfg))
	assert.Equal(t, 0, score.Compare(better, better, cfg))
}

func TestEvaluateProxy_ApproximatesBeltLengthViaManhattan(t *testing.T) {
	s := grid.NewState(10, 10)
	a := place(t, s, machine.Small3x3, 2, 5, machine.South)
	b := place(t, s, machine.Small3x3, 2, 0, machine.South)

	conn, err := s.Connect(machine.Connection{SourceMachine: a.ID, SourcePort: 1, TargetMachine: b.ID, TargetPort: 1})
	require.NoError(t, err)

	cfg := score.DefaultConfig()
	m := score.EvaluateProxy(s, s.Connections(), cfg)
	assert.Equal(t, 0, m.UnroutableCount)
	assert.Equal(t, 1, m.BeltLength)
	// Same column, so this connection has no Δx component: no corner.
	assert.Equal(t, 0, m.Corners)
}

func TestEvaluateProxy_CountsCornersWhenBothAxesDiffer(t *testing.T) {
	s := grid.NewState(10, 10)
	a := place(t, s, machine.Small3x3, 2, 5, machine.South)
	b := place(t, s, machine.Small3x3, 6, 0, machine.South)

	conn, err := s.Connect(machine.Connection{SourceMachine: a.ID, SourcePort: 1, TargetMachine: b.ID, TargetPort: 1})
	require.NoError(t, err)

	cfg := score.DefaultConfig()
	m := score.EvaluateProxy(s, s.Connections(), cfg)
	assert.Equal(t, 0, m.UnroutableCount)
	assert.Equal(t, 1, m.Corners)
}

func TestEvaluateProxy_BoundingAreaIncludesConnectionEndpoints(t *testing.T) {
	s := grid.NewState(10, 10)
	a := place(t, s, machine.Small3x3, 2, 2, machine.East)
	b := place(t, s, machine.Small3x3, 6, 2, machine.East)

	_, err := s.Connect(machine.Connection{SourceMachine: a.ID, SourcePort: 0, TargetMachine: b.ID, TargetPort: 0})
	require.NoError(t, err)

	cfg := score.DefaultConfig()
	m := score.EvaluateProxy(s, s.Connections(), cfg)
	// The two machines' footprints alone span x in [2,9), y in [2,5): area
	// 7*3=21. Both ports face outward, so their external tiles sit one
	// tile past that rectangle on either side.
	assert.Greater(t, m.BoundingArea, 21)
}
