package anneal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beltforge/layoutcore/rng"
	"github.com/beltforge/layoutcore/score"
)

// fakeCandidate is a minimal Candidate for exercising the engine without any
// grid/router machinery.
type fakeCandidate struct {
	id    int
	total int // encoded directly as BeltLength so Total == total
}

func (f fakeCandidate) Metrics() score.Metrics {
	return score.Metrics{BeltLength: f.total}
}

func (f fakeCandidate) Fingerprint() string {
	return fmt.Sprintf("m:%d", f.id)
}

func (f fakeCandidate) Clone() Candidate {
	return f
}

func testScoreConfig() score.Config {
	return score.DefaultConfig(score.WithWeights(1, 0, 0))
}

func TestSchedule_CoolsAndFloors(t *testing.T) {
	cfg := DefaultConfig(WithTemperature(10, 1, 0.5))
	s := NewSchedule(cfg)
	require.Equal(t, 10.0, s.Temp())
	s.Cool()
	assert.Equal(t, 5.0, s.Temp())
	s.Cool()
	s.Cool()
	s.Cool()
	assert.True(t, s.Done())
	assert.Equal(t, 1.0, s.Temp())
}

func TestSchedule_ReheatNeverLowersTemp(t *testing.T) {
	cfg := DefaultConfig(WithTemperature(100, 1, 0.9))
	s := NewSchedule(cfg)
	s.temp = 2
	s.Reheat() // min(100/2, 3*2) = 6
	assert.Equal(t, 6.0, s.Temp())
	s.temp = 40
	s.Reheat() // min(100/2, 3*40) = 50, above current 40
	assert.Equal(t, 50.0, s.Temp())
}

func TestArchive_ReplacesNearDuplicateOnlyIfBetter(t *testing.T) {
	cfg := DefaultConfig(WithElitePool(4, 0.5))
	scoreCfg := testScoreConfig()
	a := NewArchive(cfg, scoreCfg)

	a.Add(fakeCandidate{id: 1, total: 10})
	a.Add(fakeCandidate{id: 1, total: 20}) // same fingerprint, worse -- ignored
	require.Equal(t, 1, a.Len())
	assert.Equal(t, 10, a.Best().Metrics().BeltLength)

	a.Add(fakeCandidate{id: 1, total: 5}) // same fingerprint, better -- replaces
	require.Equal(t, 1, a.Len())
	assert.Equal(t, 5, a.Best().Metrics().BeltLength)
}

func TestArchive_EvictsWorstWhenFull(t *testing.T) {
	cfg := DefaultConfig(WithElitePool(2, 0))
	scoreCfg := testScoreConfig()
	a := NewArchive(cfg, scoreCfg)

	a.Add(fakeCandidate{id: 1, total: 10})
	a.Add(fakeCandidate{id: 2, total: 20})
	require.Equal(t, 2, a.Len())

	a.Add(fakeCandidate{id: 3, total: 5}) // better than worst (20) -- evicts it
	require.Equal(t, 2, a.Len())
	for _, e := range a.All() {
		assert.NotEqual(t, 20, e.Metrics().BeltLength)
	}

	a.Add(fakeCandidate{id: 4, total: 100}) // worse than every entry -- dropped
	require.Equal(t, 2, a.Len())
	for _, e := range a.All() {
		assert.NotEqual(t, 100, e.Metrics().BeltLength)
	}
}

func TestDiversityDistance(t *testing.T) {
	assert.Equal(t, 0.0, DiversityDistance("m1:1,2,N|m2:3,4,E", "m1:1,2,N|m2:3,4,E"))
	assert.Equal(t, 1.0, DiversityDistance("m1:1,2,N|m2:3,4,E", "m1:1,2,N|m2:9,9,E"))
	assert.Equal(t, 2.0, DiversityDistance("m1:1,2,N", "m1:1,2,N|m2:3,4,E"))
}

func TestRun_AcceptsOnlyImprovingMovesAtZeroTemperature(t *testing.T) {
	cfg := DefaultConfig(WithTemperature(0.001, 0.0001, 0.5), WithBatching(1, 5))
	scoreCfg := testScoreConfig()
	initial := fakeCandidate{id: 0, total: 50}

	// Every proposed neighbor is worse; at near-zero temperature none should
	// be accepted, so Run must return exactly the initial candidate.
	neighbor := func(current Candidate, temp float64, r *rng.LCG) (Candidate, bool) {
		return fakeCandidate{id: 1, total: 999}, true
	}

	res := Run(initial, neighbor, cfg, scoreCfg, rng.New(1))
	assert.Equal(t, 50, res.Best.Metrics().BeltLength)
}

func TestRun_NeverWorseThanInitial(t *testing.T) {
	cfg := DefaultConfig(WithTemperature(50, 1, 0.9), WithBatching(2, 5))
	scoreCfg := testScoreConfig()
	initial := fakeCandidate{id: 0, total: 10}

	neighbor := func(current Candidate, temp float64, r *rng.LCG) (Candidate, bool) {
		return fakeCandidate{id: 1, total: 10000}, true
	}

	res := Run(initial, neighbor, cfg, scoreCfg, rng.New(7))
	assert.LessOrEqual(t, res.Best.Metrics().BeltLength, initial.Metrics().BeltLength)
}

func TestRun_FindsAnImprovingNeighbor(t *testing.T) {
	cfg := DefaultConfig(WithTemperature(20, 0.5, 0.8), WithBatching(3, 10))
	scoreCfg := testScoreConfig()
	initial := fakeCandidate{id: 0, total: 100}

	neighbor := func(current Candidate, temp float64, r *rng.LCG) (Candidate, bool) {
		return fakeCandidate{id: current.(fakeCandidate).id + 1, total: current.(fakeCandidate).total - 1}, true
	}

	res := Run(initial, neighbor, cfg, scoreCfg, rng.New(3))
	assert.Less(t, res.Best.Metrics().BeltLength, initial.Metrics().BeltLength)
}

func TestRun_SkipsIterationsWhenNeighborDeclines(t *testing.T) {
	cfg := DefaultConfig(WithTemperature(5, 1, 0.9), WithBatching(1, 4))
	scoreCfg := testScoreConfig()
	initial := fakeCandidate{id: 0, total: 10}

	calls := 0
	neighbor := func(current Candidate, temp float64, r *rng.LCG) (Candidate, bool) {
		calls++
		return nil, false
	}

	res := Run(initial, neighbor, cfg, scoreCfg, rng.New(2))
	assert.Equal(t, initial, res.Best)
	assert.Greater(t, calls, 0)
}

func TestRunWithRestarts_ReturnsBestAcrossAttempts(t *testing.T) {
	cfg := DefaultConfig(WithTemperature(5, 1, 0.8), WithBatching(1, 3), WithElitePool(4, 0))
	scoreCfg := testScoreConfig()
	initial := fakeCandidate{id: 0, total: 30}

	neighbor := func(current Candidate, temp float64, r *rng.LCG) (Candidate, bool) {
		cur := current.(fakeCandidate)
		return fakeCandidate{id: cur.id + 1, total: cur.total - 1}, true
	}

	res := RunWithRestarts(initial, neighbor, nil, cfg, scoreCfg, rng.New(42), 2)
	assert.LessOrEqual(t, res.Best.Metrics().BeltLength, initial.Metrics().BeltLength)
	assert.Greater(t, res.Archive.Len(), 0)
}

func TestRunWithRestarts_KeepsUnkickedSeedWhenKickUnroutable(t *testing.T) {
	cfg := DefaultConfig(WithTemperature(5, 1, 0.8), WithBatching(1, 3), WithElitePool(4, 0))
	scoreCfg := testScoreConfig()
	initial := fakeCandidate{id: 0, total: 30}

	neighbor := func(current Candidate, temp float64, r *rng.LCG) (Candidate, bool) {
		return nil, false
	}
	kickCalls := 0
	kick := func(cand Candidate, r *rng.LCG) (Candidate, bool) {
		kickCalls++
		cur := cand.(fakeCandidate)
		return unroutableCandidate{fakeCandidate: fakeCandidate{id: cur.id + 1, total: cur.total}}, true
	}

	res := RunWithRestarts(initial, neighbor, kick, cfg, scoreCfg, rng.New(7), 2)
	assert.Greater(t, kickCalls, 0)
	assert.Equal(t, initial.Metrics().BeltLength, res.Best.Metrics().BeltLength)
}

// unroutableCandidate wraps fakeCandidate to report a nonzero
// UnroutableCount, exercising applyKicks' "discard the kick if the result
// doesn't route" rule.
type unroutableCandidate struct {
	fakeCandidate
}

func (u unroutableCandidate) Metrics() score.Metrics {
	m := u.fakeCandidate.Metrics()
	m.UnroutableCount = 1
	return m
}

func (u unroutableCandidate) Clone() Candidate {
	return u
}
