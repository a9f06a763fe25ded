package optimizer

import (
	"sort"
	"strconv"
	"strings"

	"github.com/beltforge/layoutcore/anneal"
	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/score"
)

// evalMode selects which score.Evaluate* function a candidate's Metrics
// uses: Phase 1 runs on the cheap proxy score, Phase 2 on the exact routed
// score (with its own unroutable-connection penalty fallback).
type evalMode int

const (
	evalProxy evalMode = iota
	evalRouted
)

// candidate adapts a *grid.State into an anneal.Candidate. It always reads
// connections fresh from the grid at Metrics/Fingerprint time rather than
// caching them, since operators like try_different_port and
// critical_net_focus reassign a connection's ports in place -- a cached
// connection list would silently score against stale port indices.
type candidate struct {
	gs       *grid.State
	scoreCfg score.Config
	mode     evalMode
}

func newCandidate(gs *grid.State, scoreCfg score.Config, mode evalMode) *candidate {
	return &candidate{gs: gs, scoreCfg: scoreCfg, mode: mode}
}

func (c *candidate) Metrics() score.Metrics {
	conns := c.gs.Connections()
	if c.mode == evalRouted {
		return score.EvaluateRouted(c.gs, conns, c.scoreCfg)
	}
	return score.EvaluateProxy(c.gs, conns, c.scoreCfg)
}

// Fingerprint renders the sorted "id:x,y,orient|..." concatenation over
// every movable machine, per the glossary's layout-fingerprint definition.
// Immovable anchors are omitted since they never vary between candidates
// and would only dilute DiversityDistance.
func (c *candidate) Fingerprint() string {
	ms := c.gs.Machines()
	sort.Slice(ms, func(i, j int) bool { return ms[i].ID < ms[j].ID })

	var b strings.Builder
	first := true
	for _, m := range ms {
		if !m.Movable() {
			continue
		}
		if !first {
			b.WriteByte('|')
		}
		first = false
		b.WriteString(m.ID)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(m.Pos.X))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(m.Pos.Y))
		b.WriteByte(',')
		b.WriteString(m.Orientation.String())
	}
	return b.String()
}

func (c *candidate) Clone() anneal.Candidate {
	return &candidate{gs: c.gs.Clone(), scoreCfg: c.scoreCfg, mode: c.mode}
}
