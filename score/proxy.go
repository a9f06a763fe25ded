package score

import (
	"github.com/beltforge/layoutcore/grid"
	"github.com/beltforge/layoutcore/machine"
)

// EvaluateProxy scores gs cheaply, without routing: each connection's belt
// length is approximated by the Manhattan distance between its source and
// target external tiles, and its corner count is approximated by whether
// that distance has a component on both axes (a straight run has none; any
// dogleg needs at least one turn). Used by the optimizer's early annealing
// phase, where routing every candidate would be too slow to explore enough
// of the search space.
//
// A connection only counts as unroutable here if its ports cannot even be
// resolved (e.g. a missing machine); geometric reachability is not checked,
// since that is exactly what the real router determines later.
func EvaluateProxy(gs *grid.State, conns []machine.Connection, cfg Config) Metrics {
	m := Metrics{BoundingArea: boundingAreaProxy(gs, conns)}

	for _, conn := range conns {
		src, err := gs.SourcePort(conn)
		if err != nil {
			m.UnroutableCount++
			m.PenaltySum += cfg.UnroutableBase
			continue
		}
		tgt, err := gs.TargetPort(conn)
		if err != nil {
			m.UnroutableCount++
			m.PenaltySum += cfg.UnroutableBase
			continue
		}
		srcTile, tgtTile := machine.ExternalTile(src), machine.ExternalTile(tgt)
		m.BeltLength += srcTile.ManhattanTo(tgtTile)

		dx := srcTile.X - tgtTile.X
		if dx < 0 {
			dx = -dx
		}
		dy := srcTile.Y - tgtTile.Y
		if dy < 0 {
			dy = -dy
		}
		if dx > 0 && dy > 0 {
			m.Corners++
		}
	}

	return m
}
