package score

import (
	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
)

// EvaluateRouted scores gs exactly, using each connection's actually-applied
// BeltPath. Connections with no applied path are penalized via
// unroutablePenalty rather than excluded, so a layout can never hide an
// unroutable connection by simply never routing it.
func EvaluateRouted(gs *grid.State, conns []machine.Connection, cfg Config) Metrics {
	m := Metrics{BoundingArea: boundingAreaRouted(gs, conns)}

	for _, conn := range conns {
		path, ok := gs.BeltPath(conn.ID)
		if !ok || len(path) == 0 {
			m.UnroutableCount++
			m.PenaltySum += unroutablePenalty(gs, conn, cfg)
			continue
		}
		m.BeltLength += len(path)
		m.Corners += path.CornerCount()
	}

	return m
}

// unroutablePenalty estimates the cost of an unrouted connection from the
// Manhattan distance between its source and target external tiles, so the
// search can still distinguish "nearly routable" from "hopelessly distant"
// failures instead of treating every unroutable connection identically.
func unroutablePenalty(gs *grid.State, conn machine.Connection, cfg Config) float64 {
	src, err := gs.SourcePort(conn)
	if err != nil {
		return cfg.UnroutableBase
	}
	tgt, err := gs.TargetPort(conn)
	if err != nil {
		return cfg.UnroutableBase
	}
	dist := machine.ExternalTile(src).ManhattanTo(machine.ExternalTile(tgt))
	return cfg.UnroutableBase + cfg.K1*float64(dist) + cfg.K2*estimatedTurns(src, tgt)
}

// estimatedTurns guesses how many corners a direct detour would need: 0 if
// the two ports' approach directions lie on the same axis, 1 otherwise (an
// L-shaped detour suffices in the common case).
func estimatedTurns(src, tgt machine.Port) float64 {
	if src.Approach.SameAxis(tgt.Approach) {
		return 0
	}
	return 1
}
