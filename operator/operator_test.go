package operator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beltforge/layoutcore/anneal"
	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
	"github.com/beltforge/layoutcore/operator"
	"github.com/beltforge/layoutcore/rng"
	"github.com/beltforge/layoutcore/router"
)

// chainGrid places a small m1->m2->m3 chain with room to maneuver and
// routes every connection, giving operators a fully valid starting state.
func chainGrid(t *testing.T) (*grid.State, []machine.Connection) {
	t.Helper()
	gs := grid.NewState(24, 24)

	// Orientation West: input faces West, output faces East -- so each
	// machine's output points at the next one in the chain.
	m1 := machine.Machine{ID: "m1", Type: machine.Small3x3, Pos: machine.Point{X: 2, Y: 10}, Orientation: machine.West}
	m2 := machine.Machine{ID: "m2", Type: machine.Small3x3, Pos: machine.Point{X: 10, Y: 10}, Orientation: machine.West}
	m3 := machine.Machine{ID: "m3", Type: machine.Small3x3, Pos: machine.Point{X: 18, Y: 10}, Orientation: machine.West}
	require.True(t, gs.Place(m1))
	require.True(t, gs.Place(m2))
	require.True(t, gs.Place(m3))

	c1, err := gs.Connect(machine.Connection{SourceMachine: "m1", SourcePort: 1, TargetMachine: "m2", TargetPort: 1})
	require.NoError(t, err)
	c2, err := gs.Connect(machine.Connection{SourceMachine: "m2", SourcePort: 1, TargetMachine: "m3", TargetPort: 1})
	require.NoError(t, err)

	ids, err := router.RouteAll(gs, []string{c1.ID, c2.ID})
	require.NoError(t, err)
	require.Len(t, ids, 2)

	return gs, []machine.Connection{c1, c2}
}

func assertInvariants(t *testing.T, gs *grid.State, conns []machine.Connection) {
	t.Helper()
	assert.Len(t, gs.Machines(), 3)
	assert.Len(t, gs.Connections(), len(conns))
	for _, c := range gs.Connections() {
		_, srcOK := gs.Machine(c.SourceMachine)
		_, tgtOK := gs.Machine(c.TargetMachine)
		assert.True(t, srcOK)
		assert.True(t, tgtOK)
	}
}

func TestApply_EveryOperatorPreservesMachineAndConnectionCounts(t *testing.T) {
	cfg := anneal.DefaultConfig()
	for _, id := range operator.All {
		gs, conns := chainGrid(t)
		r := rng.New(uint32(100 + id))
		for i := 0; i < 20; i++ {
			operator.Apply(gs, id, cfg, r)
		}
		assertInvariants(t, gs, conns)
	}
}

func TestApply_RandomShift_KeepsEveryMachinePlaced(t *testing.T) {
	cfg := anneal.DefaultConfig()
	gs, _ := chainGrid(t)
	before, _ := gs.Machine("m1")

	r := rng.New(7)
	moved := false
	for i := 0; i < 50 && !moved; i++ {
		if operator.Apply(gs, operator.RandomShift, cfg, r) {
			after, _ := gs.Machine("m1")
			if after.Pos != before.Pos {
				moved = true
			}
		}
	}
	// Not asserting moved must be true (RandomShift may always target m2/m3
	// under this seed) -- only that the grid stayed consistent throughout.
	assert.Len(t, gs.Machines(), 3)
}

func TestApply_ClusterDestroyRepair_RestoresOnFailure(t *testing.T) {
	cfg := anneal.DefaultConfig() // cluster bounds 2..5 with only 3 movables on grid
	gs, conns := chainGrid(t)
	r := rng.New(3)

	for i := 0; i < 10; i++ {
		operator.Apply(gs, operator.ClusterDestroyRepair, cfg, r)
		assertInvariants(t, gs, conns)
	}
}

func TestPortfolio_EveryOperatorIsSelectable(t *testing.T) {
	cfg := anneal.DefaultConfig()
	p := operator.NewPortfolio(cfg)
	r := rng.New(1)

	counts := make(map[operator.ID]int)
	const draws = 2000
	for i := 0; i < draws; i++ {
		counts[p.Select(cfg.InitialTemp, r)]++
	}
	total := 0
	for _, id := range operator.All {
		total += counts[id]
	}
	assert.Equal(t, draws, total)
	// Every operator should have a nonzero floor probability, so over 2000
	// draws every one of the ten should be picked at least once.
	for _, id := range operator.All {
		assert.Greater(t, counts[id], 0, "operator %s was never selected", id)
	}
}

func TestPortfolio_CooldownZeroesLargeMoveBudget(t *testing.T) {
	cfg := anneal.DefaultConfig()
	p := operator.NewPortfolio(cfg)
	p.TriggerCooldown()
	r := rng.New(2)

	for i := 0; i < 500; i++ {
		id := p.Select(cfg.InitialTemp, r)
		assert.False(t, id.IsLarge(), "large move selected during cooldown")
	}
}

func TestPortfolio_RecordResultTicksCooldownAndStagnation(t *testing.T) {
	cfg := anneal.DefaultConfig()
	p := operator.NewPortfolio(cfg)
	p.TriggerCooldown()
	p.RecordResult(operator.RandomShift, true, 5)
	p.RecordResult(operator.RandomShift, false, 0)
	// No panics, no assertions on internals -- this exercises the bookkeeping
	// path without depending on unexported state.
}
