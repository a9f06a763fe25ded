package anneal

// Config parameterizes one annealing run. The defaults mirror the values
// this module's optimizer uses for both the proxy-scored and routed
// phases; callers tune individual fields via the With* options.
type Config struct {
	InitialTemp float64
	MinTemp     float64
	CoolingRate float64

	BatchSize   int
	IterPerTemp int

	Phase1Restarts    int
	Phase2Attempts    int
	LocalPolishPasses int

	LargeMoveRate                 float64
	LargeMoveRateEarly            float64
	LargeMoveRateLate             float64
	LargeMoveCooldownAfterImprove int
	CriticalNetRate               float64

	ClusterMoveMinSize int
	ClusterMoveMaxSize int

	AdaptiveOps                    bool
	AdaptiveWindow                 int
	AdaptiveWarmupIterations       int
	AdaptiveMaxOperatorProb        float64
	AdaptiveStagnationResetWindow  int
	AdaptiveFlattenFactor          float64

	RepairBeamWidth int

	ElitePoolSize    int
	EliteMinDistance float64

	// PlateauWindow is the number of consecutive no-improvement chunks the
	// optimizer tolerates before declaring a plateau and stopping (see the
	// optimizer package's deep-search state machine).
	PlateauWindow int
}

// Option configures a Config.
type Option func(*Config)

// WithTemperature overrides the initial temperature, the floor below which
// the schedule stops cooling, and the per-step cooling rate.
func WithTemperature(initial, min, coolingRate float64) Option {
	return func(c *Config) {
		c.InitialTemp = initial
		c.MinTemp = min
		c.CoolingRate = coolingRate
	}
}

// WithBatching overrides how many proposals are attempted per temperature
// step (batchSize * iterPerTemp).
func WithBatching(batchSize, iterPerTemp int) Option {
	return func(c *Config) {
		c.BatchSize = batchSize
		c.IterPerTemp = iterPerTemp
	}
}

// WithElitePool overrides the archive's capacity and minimum pairwise
// diversity distance.
func WithElitePool(size int, minDistance float64) Option {
	return func(c *Config) {
		c.ElitePoolSize = size
		c.EliteMinDistance = minDistance
	}
}

// WithAdaptiveOperators toggles the operator-portfolio's adaptive dispatch
// (reward-weighted selection vs. selection by the fixed base weights alone).
func WithAdaptiveOperators(enabled bool) Option {
	return func(c *Config) {
		c.AdaptiveOps = enabled
	}
}

// DefaultConfig returns the tuned defaults used throughout this module.
func DefaultConfig(opts ...Option) Config {
	cfg := Config{
		InitialTemp: 100,
		MinTemp:     0.01,
		CoolingRate: 0.95,

		BatchSize:   20,
		IterPerTemp: 10,

		Phase1Restarts:    2,
		Phase2Attempts:    2,
		LocalPolishPasses: 2,

		LargeMoveRate:                 0.15,
		LargeMoveRateEarly:            0.20,
		LargeMoveRateLate:             0.08,
		LargeMoveCooldownAfterImprove: 5,
		CriticalNetRate:               0.4,

		ClusterMoveMinSize: 2,
		ClusterMoveMaxSize: 5,

		AdaptiveOps:                   true,
		AdaptiveWindow:                20,
		AdaptiveWarmupIterations:      50,
		AdaptiveMaxOperatorProb:       0.35,
		AdaptiveStagnationResetWindow: 30,
		AdaptiveFlattenFactor:         0.5,

		RepairBeamWidth: 3,

		ElitePoolSize:    12,
		EliteMinDistance: 2.0,

		PlateauWindow: 3,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
