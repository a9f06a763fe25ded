package operator

import (
	"math"
	"sort"

	"github.com/beltforge/layoutcore/anneal"
)

// minOperatorFloor is the minimum selection probability every operator
// with a nonzero base weight keeps regardless of its adaptive reward, so a
// currently-unlucky operator is never starved out of the portfolio
// entirely. A large move whose budget is zero (during the post-improvement
// cooldown) gets no floor. The spec calls for a
// per-operator floor without naming a value; a single small floor shared
// by all ten operators is the simplest reading, recorded in the module's
// design notes.
const minOperatorFloor = 0.02

// opStat tracks one operator's rolling reward.
type opStat struct {
	window []float64
	reward float64
}

// Portfolio implements the adaptive operator dispatch: a rolling
// reward per operator blended with base weights, per-operator floors and
// caps, temperature-gated large-move budget, stagnation flattening, and a
// post-improvement cooldown that zeroes the large-move budget for a few
// iterations.
type Portfolio struct {
	cfg                 anneal.Config
	stats               map[ID]*opStat
	iterations          int
	iterationsSinceBest int
	cooldown            int
}

// NewPortfolio returns a Portfolio with empty reward history for every
// operator in All.
func NewPortfolio(cfg anneal.Config) *Portfolio {
	p := &Portfolio{cfg: cfg, stats: make(map[ID]*opStat, len(All))}
	for _, id := range All {
		p.stats[id] = &opStat{}
	}
	return p
}

// Select draws one operator ID according to the current adaptive
// distribution at temperature temp.
func (p *Portfolio) Select(temp float64, r randSource) ID {
	probs := p.probabilities(temp)
	roll := r.Float64()
	cum := 0.0
	for _, id := range All {
		cum += probs[id]
		if roll < cum {
			return id
		}
	}
	return All[len(All)-1]
}

// RecordResult feeds back whether the operator just tried improved the
// best-known candidate, and by how much (ignored if not an improvement).
// It updates the operator's rolling reward, the global stagnation
// counter, and ticks down any active cooldown.
func (p *Portfolio) RecordResult(id ID, improvedBest bool, gain float64) {
	p.iterations++
	st := p.stats[id]
	g := 0.0
	if improvedBest && gain > 0 {
		g = gain
	}
	st.window = append(st.window, g)
	if len(st.window) > max(p.cfg.AdaptiveWindow, 1) {
		st.window = st.window[1:]
	}
	st.reward = decayedMean(st.window)

	if improvedBest {
		p.iterationsSinceBest = 0
	} else {
		p.iterationsSinceBest++
	}
	if p.cooldown > 0 {
		p.cooldown--
	}
}

// TriggerCooldown suppresses large moves for the configured cooldown
// window, called by the caller when an improvement crosses its own
// significance threshold.
func (p *Portfolio) TriggerCooldown() {
	p.cooldown = p.cfg.LargeMoveCooldownAfterImprove
}

// decayedMean averages window (oldest first) with decay factor 0.9
// applied per step back from the most recent entry.
func decayedMean(window []float64) float64 {
	if len(window) == 0 {
		return 0
	}
	weight := 1.0
	var sum, totalWeight float64
	for i := len(window) - 1; i >= 0; i-- {
		sum += window[i] * weight
		totalWeight += weight
		weight *= 0.9
	}
	if totalWeight == 0 {
		return 0
	}
	return sum / totalWeight
}

// largeMoveRate picks the temperature-gated large-move budget: the early
// (more aggressive) rate above 45% of the way from minTemp to initialTemp,
// the late rate below it, reverting to early if stagnation has run past
// 60% of the reset window, and forced to zero during a post-improvement
// cooldown.
func (p *Portfolio) largeMoveRate(temp float64) float64 {
	if p.cooldown > 0 {
		return 0
	}
	cfg := p.cfg
	rate := cfg.LargeMoveRateLate
	span := cfg.InitialTemp - cfg.MinTemp
	if span > 0 && (temp-cfg.MinTemp)/span >= 0.45 {
		rate = cfg.LargeMoveRateEarly
	}
	if cfg.AdaptiveStagnationResetWindow > 0 &&
		float64(p.iterationsSinceBest) > 0.6*float64(cfg.AdaptiveStagnationResetWindow) {
		rate = cfg.LargeMoveRateEarly
	}
	return rate
}

// baseWeights returns the non-adaptive base distribution: sharedScale
// split evenly across the eight local operators, and the large-move
// budget split between cluster-destroy-repair and critical-net-focus by
// cfg.CriticalNetRate.
func (p *Portfolio) baseWeights(temp float64) map[ID]float64 {
	largeRate := p.largeMoveRate(temp)
	sharedScale := math.Max(0.05, 1-largeRate)

	weights := make(map[ID]float64, len(All))
	localShare := sharedScale / 8
	for _, id := range All {
		if !id.IsLarge() {
			weights[id] = localShare
		}
	}
	criticalShare := largeRate * p.cfg.CriticalNetRate
	weights[CriticalNetFocus] = criticalShare
	weights[ClusterDestroyRepair] = largeRate - criticalShare
	return weights
}

// probabilities builds the final per-operator selection probability at
// the given temperature: base weights, reward-adjusted once warmup has
// elapsed and adaptive dispatch is enabled, flattened toward the base
// distribution under prolonged stagnation, then normalized with each
// operator's floor applied and its probability capped.
func (p *Portfolio) probabilities(temp float64) map[ID]float64 {
	cfg := p.cfg
	weights := p.baseWeights(temp)

	useAdaptive := cfg.AdaptiveOps && p.iterations >= cfg.AdaptiveWarmupIterations
	if useAdaptive {
		for _, id := range All {
			weights[id] *= 1 + math.Log(1+p.stats[id].reward)
		}
		if cfg.AdaptiveStagnationResetWindow > 0 && p.iterationsSinceBest >= cfg.AdaptiveStagnationResetWindow {
			base := p.baseWeights(temp)
			for _, id := range All {
				weights[id] = cfg.AdaptiveFlattenFactor*base[id] + (1-cfg.AdaptiveFlattenFactor)*weights[id]
			}
		}
	}

	return normalizeWithFloorAndCap(weights, minOperatorFloor, cfg.AdaptiveMaxOperatorProb)
}

// normalizeWithFloorAndCap distributes probability mass so every operator
// with a positive weight gets at least floor (an operator of zero weight
// gets probability zero), the remainder is split proportional to weight, and
// no operator exceeds cap; a single redistribution pass handles the
// common case where at most a couple of operators hit the cap.
func normalizeWithFloorAndCap(weights map[ID]float64, floor, cap float64) map[ID]float64 {
	n := len(weights)
	ids := make([]ID, 0, n)
	total := 0.0
	floored := 0
	for id, w := range weights {
		ids = append(ids, id)
		if w > 0 {
			total += w
			floored++
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make(map[ID]float64, n)
	remainder := 1 - floor*float64(floored)
	if remainder < 0 {
		remainder = 0
	}
	for _, id := range ids {
		if weights[id] <= 0 {
			out[id] = 0
			continue
		}
		share := 0.0
		if total > 0 {
			share = remainder * (weights[id] / total)
		}
		v := floor + share
		if cap > 0 && v > cap {
			v = cap
		}
		out[id] = v
	}

	sum := 0.0
	for _, v := range out {
		sum += v
	}
	if sum > 0 {
		for id := range out {
			out[id] /= sum
		}
	}
	return out
}
