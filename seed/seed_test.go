package seed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beltforge/layoutcore/machine"
	"github.com/beltforge/layoutcore/seed"
)

func simpleProblem(width, height int) seed.Problem {
	return seed.Problem{
		Width:  width,
		Height: height,
		Movables: []seed.MachineSpec{
			{ID: "m1", Type: machine.Small3x3},
			{ID: "m2", Type: machine.Small3x3},
			{ID: "m3", Type: machine.Small3x3},
		},
		Connections: []machine.Connection{
			{SourceMachine: "m1", SourcePort: 0, TargetMachine: "m2", TargetPort: 0},
			{SourceMachine: "m2", SourcePort: 0, TargetMachine: "m3", TargetPort: 0},
		},
	}
}

func TestGreedy_PlacesEveryMovableAndConnection(t *testing.T) {
	p := simpleProblem(20, 20)
	gs, err := seed.Greedy(p)
	require.NoError(t, err)
	assert.Len(t, gs.Machines(), 3)
	assert.Len(t, gs.Connections(), 2)
}

func TestLayered_PlacesEveryMovableAndConnection(t *testing.T) {
	p := simpleProblem(20, 20)
	gs, err := seed.Layered(p)
	require.NoError(t, err)
	assert.Len(t, gs.Machines(), 3)
	assert.Len(t, gs.Connections(), 2)
}

func TestPattern_ThreeLayerBipartite_PlacesOneRowPerLayer(t *testing.T) {
	// m1 -> m2 -> m3 is a clean three-layer chain: each machine is its own
	// singleton layer, and every connection runs strictly layer -> layer+1.
	p := simpleProblem(30, 30)
	gs, err := seed.Pattern(p)
	require.NoError(t, err)
	assert.Len(t, gs.Machines(), 3)

	m1, _ := gs.Machine("m1")
	m2, _ := gs.Machine("m2")
	m3, _ := gs.Machine("m3")
	assert.Less(t, m1.Pos.Y, m2.Pos.Y)
	assert.Less(t, m2.Pos.Y, m3.Pos.Y)
}

func TestPattern_AbstainsOnTopologyItDoesNotSpecializeIn(t *testing.T) {
	// A single connection between two machines is neither a three-layer
	// bipartite graph (only two layers) nor an eight-plus ring.
	p := seed.Problem{
		Width:  20,
		Height: 20,
		Movables: []seed.MachineSpec{
			{ID: "m1", Type: machine.Small3x3},
			{ID: "m2", Type: machine.Small3x3},
		},
		Connections: []machine.Connection{
			{SourceMachine: "m1", SourcePort: 0, TargetMachine: "m2", TargetPort: 0},
		},
	}
	_, err := seed.Pattern(p)
	assert.ErrorIs(t, err, seed.ErrAbstain)
}

func ringProblem(n int) seed.Problem {
	movables := make([]seed.MachineSpec, n)
	conns := make([]machine.Connection, 0, n+1)
	for i := 0; i < n; i++ {
		movables[i] = seed.MachineSpec{ID: ringID(i), Type: machine.Small3x3}
		conns = append(conns, machine.Connection{
			SourceMachine: ringID(i), SourcePort: 0,
			TargetMachine: ringID((i + 1) % n), TargetPort: 0,
		})
	}
	// A chord: an extra connection between two non-adjacent ring members.
	conns = append(conns, machine.Connection{SourceMachine: ringID(0), SourcePort: 1, TargetMachine: ringID(4), TargetPort: 1})

	return seed.Problem{Width: 60, Height: 60, Movables: movables, Connections: conns}
}

func ringID(i int) string {
	return "r" + string(rune('a'+i))
}

func TestPattern_RingWithChords_PlacesEveryMachineAndConnection(t *testing.T) {
	p := ringProblem(8)
	gs, err := seed.Pattern(p)
	require.NoError(t, err)
	assert.Len(t, gs.Machines(), 8)
	assert.Len(t, gs.Connections(), 9)
}

func TestTwoLayerExhaustive_FallsBackToLayeredWhenNotTwoLayersDeep(t *testing.T) {
	// m1 -> m2 -> m3 is three layers deep, not two, so this must fall back
	// to Layered rather than try to split it into a top/bottom row pair.
	p := simpleProblem(20, 20)
	gs, err := seed.TwoLayerExhaustive(p)
	require.NoError(t, err)
	assert.Len(t, gs.Machines(), 3)
	assert.Len(t, gs.Connections(), 2)
}

func twoLayerProblem(width, height int) seed.Problem {
	return seed.Problem{
		Width:  width,
		Height: height,
		Movables: []seed.MachineSpec{
			{ID: "s1", Type: machine.Small3x3},
			{ID: "s2", Type: machine.Small3x3},
			{ID: "t1", Type: machine.Small3x3},
			{ID: "t2", Type: machine.Small3x3},
		},
		Connections: []machine.Connection{
			{SourceMachine: "s1", SourcePort: 0, TargetMachine: "t2", TargetPort: 0},
			{SourceMachine: "s2", SourcePort: 0, TargetMachine: "t1", TargetPort: 0},
		},
	}
}

func TestTwoLayerExhaustive_RoutesEveryPermutationAndKeepsTheBest(t *testing.T) {
	p := twoLayerProblem(30, 30)
	gs, err := seed.TwoLayerExhaustive(p)
	require.NoError(t, err)
	assert.Len(t, gs.Machines(), 4)
	assert.Len(t, gs.Connections(), 2)
	for _, c := range gs.Connections() {
		_, ok := gs.BeltPath(c.ID)
		assert.True(t, ok, "connection %s should have been routed by the exhaustive search", c.ID)
	}
}

func TestGreedy_FailsCleanlyWhenGridTooSmall(t *testing.T) {
	p := simpleProblem(2, 2)
	_, err := seed.Greedy(p)
	assert.ErrorIs(t, err, seed.ErrNoValidPlacement)
}

func TestAnchors_ArePlacedAtTheirFixedPosition(t *testing.T) {
	p := simpleProblem(20, 20)
	p.Anchors = []machine.Machine{
		{ID: "a1", Type: machine.Anchor3x1, Pos: machine.Point{X: 0, Y: 0}, Orientation: machine.East},
	}
	gs, err := seed.Greedy(p)
	require.NoError(t, err)
	a, ok := gs.Machine("a1")
	require.True(t, ok)
	assert.Equal(t, machine.Point{X: 0, Y: 0}, a.Pos)
}
