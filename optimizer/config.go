package optimizer

import (
	"time"

	"github.com/beltforge/layoutcore/anneal"
	"github.com/beltforge/layoutcore/score"
)

// Mode selects between a single fixed-budget optimization pass and the
// continuous chained deep-search loop.
type Mode string

const (
	// ModeNormal runs one pass: seed, anneal phases 1-2, port assignment,
	// compaction, and orientation polish.
	ModeNormal Mode = "normal"

	// ModeDeep chains ModeNormal passes, feeding the elite archive forward
	// between them, until the plateau window or time budget is reached or
	// the caller's ShouldStop predicate fires.
	ModeDeep Mode = "deep"
)

// Config parameterizes one call to Run or RunDeep.
type Config struct {
	Anneal anneal.Config
	Score  score.Config

	Mode Mode

	// TimeBudgetMs is the wall-clock deadline for RunDeep; ignored by Run.
	TimeBudgetMs int64

	// UseExplorationSeeds enables Phase 0's four generators; when false,
	// the only seed considered is the caller's current layout as given.
	UseExplorationSeeds bool

	// PersistEliteArchive requests that Result.Archive carry the run's
	// elite pool forward so a caller can feed it back via IncomingArchive
	// on a later call.
	PersistEliteArchive bool

	// IncomingArchive, if non-nil, has its entries merged into the run's
	// outgoing Result.Archive alongside the final layout -- the
	// cross-invocation continuity the deep-search loop relies on. The
	// annealing restarts inside the run do not sample it; they draw only on
	// the archive that run builds itself.
	IncomingArchive *anneal.Archive

	// Seed is the PRNG seed. A nil Seed means "not supplied": a
	// wall-clock-derived seed is used instead, matching the spec's
	// fallback-to-system-PRNG behavior while keeping the LCG's own
	// zero-is-a-valid-seed semantics (rng.New(0)) reserved for callers who
	// explicitly ask for it.
	Seed *uint32

	// ShouldStop is polled by RunDeep before each chunk after the first; a
	// true return ends the search and returns the best layout found so far.
	// Run itself never polls it, so a running chunk is not interrupted.
	ShouldStop func() bool
}

// Option configures a Config.
type Option func(*Config)

// WithMode overrides Mode.
func WithMode(m Mode) Option {
	return func(c *Config) { c.Mode = m }
}

// WithTimeBudget overrides TimeBudgetMs.
func WithTimeBudget(ms int64) Option {
	return func(c *Config) { c.TimeBudgetMs = ms }
}

// WithSeed overrides Seed with an explicit, reproducible value.
func WithSeed(seed uint32) Option {
	return func(c *Config) { c.Seed = &seed }
}

// WithExplorationSeeds toggles UseExplorationSeeds.
func WithExplorationSeeds(enabled bool) Option {
	return func(c *Config) { c.UseExplorationSeeds = enabled }
}

// WithShouldStop installs a cancellation predicate.
func WithShouldStop(fn func() bool) Option {
	return func(c *Config) { c.ShouldStop = fn }
}

// WithIncomingArchive merges a prior invocation's persisted archive into
// the run's outgoing elite pool.
func WithIncomingArchive(a *anneal.Archive) Option {
	return func(c *Config) { c.IncomingArchive = a }
}

// WithPersistEliteArchive toggles PersistEliteArchive.
func WithPersistEliteArchive(enabled bool) Option {
	return func(c *Config) { c.PersistEliteArchive = enabled }
}

// WithAnnealConfig overrides the embedded anneal.Config wholesale.
func WithAnnealConfig(cfg anneal.Config) Option {
	return func(c *Config) { c.Anneal = cfg }
}

// WithScoreConfig overrides the embedded score.Config wholesale.
func WithScoreConfig(cfg score.Config) Option {
	return func(c *Config) { c.Score = cfg }
}

// DefaultConfig returns a normal-mode Config over the anneal and score
// packages' own tuned defaults.
func DefaultConfig(opts ...Option) Config {
	cfg := Config{
		Anneal:              anneal.DefaultConfig(),
		Score:               score.DefaultConfig(),
		Mode:                ModeNormal,
		UseExplorationSeeds: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// resolveSeed returns cfg.Seed's value, or a wall-clock-derived fallback
// seed if none was supplied.
func resolveSeed(cfg Config) uint32 {
	if cfg.Seed != nil {
		return *cfg.Seed
	}
	return uint32(time.Now().UnixNano())
}
