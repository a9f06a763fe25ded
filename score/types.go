package score

// Metrics summarizes one layout's routing quality.
type Metrics struct {
	BeltLength      int     // sum of belt tiles across every routed connection
	Corners         int     // sum of corner tiles across every routed connection
	BoundingArea    int     // area of the axis-aligned box enclosing every machine plus belt tiles (routed) or connection endpoints (proxy)
	UnroutableCount int     // connections with no path at all
	PenaltySum      float64 // sum of each unroutable connection's estimated penalty
}

// Total combines m into one float64, lower is better: weighted belt length,
// area, and corners, plus the accumulated unroutable-connection penalty.
func (m Metrics) Total(cfg Config) float64 {
	return float64(m.BeltLength)*cfg.WeightBelts +
		float64(m.BoundingArea)*cfg.WeightArea +
		float64(m.Corners)*cfg.WeightCorners +
		m.PenaltySum
}

// Compare orders a and b for annealing acceptance and elite-archive ranking:
// fewer unroutable connections always wins first, then lower weighted Total.
// Returns -1 if a is better, 1 if b is better, 0 if equal.
func Compare(a, b Metrics, cfg Config) int {
	if a.UnroutableCount != b.UnroutableCount {
		if a.UnroutableCount < b.UnroutableCount {
			return -1
		}
		return 1
	}
	ta, tb := a.Total(cfg), b.Total(cfg)
	switch {
	case ta < tb:
		return -1
	case ta > tb:
		return 1
	default:
		return 0
	}
}
