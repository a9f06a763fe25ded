package score

// Config weights the components of a Metrics value into one comparable
// total, and parameterizes the unroutable-connection penalty.
type Config struct {
	WeightBelts   float64
	WeightArea    float64
	WeightCorners float64

	// UnroutableBase, K1, K2 parameterize the penalty charged per
	// unroutable connection: UnroutableBase + K1*manhattan + K2*corners,
	// where manhattan is the Manhattan distance between the connection's
	// two external tiles and corners is a fixed estimate of turns a
	// detour would need. The base dominates so even a very close
	// unroutable pair scores far worse than any routed layout.
	UnroutableBase float64
	K1             float64
	K2             float64
}

// Option configures a Config.
type Option func(*Config)

// WithWeights overrides the per-component weights.
func WithWeights(belts, area, corners float64) Option {
	return func(c *Config) {
		c.WeightBelts = belts
		c.WeightArea = area
		c.WeightCorners = corners
	}
}

// WithUnroutablePenalty overrides the unroutable-connection penalty
// parameters. Panics if base is not positive.
func WithUnroutablePenalty(base, k1, k2 float64) Option {
	return func(c *Config) {
		if base <= 0 {
			panic("score: UnroutableBase must be positive")
		}
		c.UnroutableBase = base
		c.K1 = k1
		c.K2 = k2
	}
}

// DefaultConfig returns the default weighting: belts=1.0, area=0.5,
// corners=0.3, with an unroutable penalty floor high enough to dominate
// any routed layout's total.
func DefaultConfig(opts ...Option) Config {
	cfg := Config{
		WeightBelts:    1.0,
		WeightArea:     0.5,
		WeightCorners:  0.3,
		UnroutableBase: 1000,
		K1:             5,
		K2:             2,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
