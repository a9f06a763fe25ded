package anneal

import (
	"sort"

	"github.com/beltforge/layoutcore/score"
)

// Archive keeps a bounded, diverse pool of the best candidates seen across
// an annealing run, for biasing restarts toward promising but distinct
// starting points rather than always the single best-known candidate.
type Archive struct {
	cfg      Config
	scoreCfg score.Config
	entries  []Candidate
}

// NewArchive returns an empty archive bounded by cfg.ElitePoolSize and
// cfg.EliteMinDistance.
func NewArchive(cfg Config, scoreCfg score.Config) *Archive {
	return &Archive{cfg: cfg, scoreCfg: scoreCfg}
}

// Add offers cand to the archive. If an existing entry is within
// EliteMinDistance of cand (a near-duplicate), cand replaces it only if
// cand scores better; otherwise cand is inserted if the pool has room or
// it beats the pool's current worst entry, which is then evicted.
func (a *Archive) Add(cand Candidate) {
	fp := cand.Fingerprint()
	for i, e := range a.entries {
		if DiversityDistance(fp, e.Fingerprint()) < a.cfg.EliteMinDistance {
			if Better(cand, e, a.scoreCfg) {
				a.entries[i] = cand
			}
			return
		}
	}

	if len(a.entries) < a.cfg.ElitePoolSize {
		a.entries = append(a.entries, cand)
		return
	}

	worstIdx := a.worstIndex()
	if Better(cand, a.entries[worstIdx], a.scoreCfg) {
		a.entries[worstIdx] = cand
	}
}

// worstIndex returns the index of the archive's lowest-scoring entry.
func (a *Archive) worstIndex() int {
	worst := 0
	for i := 1; i < len(a.entries); i++ {
		if Better(a.entries[worst], a.entries[i], a.scoreCfg) {
			worst = i
		}
	}
	return worst
}

// Len reports how many entries the archive currently holds.
func (a *Archive) Len() int {
	return len(a.entries)
}

// Best returns the archive's best entry. Panics if the archive is empty;
// callers must check Len first.
func (a *Archive) Best() Candidate {
	best := 0
	for i := 1; i < len(a.entries); i++ {
		if Better(a.entries[i], a.entries[best], a.scoreCfg) {
			best = i
		}
	}
	return a.entries[best]
}

// Sample returns a pseudo-random entry, chosen by index i mod Len() -- the
// caller supplies i (typically derived from its own RNG) so the archive
// itself stays free of any PRNG dependency.
func (a *Archive) Sample(i int) Candidate {
	return a.entries[((i%len(a.entries))+len(a.entries))%len(a.entries)]
}

// Ranked returns every entry sorted best-first. This is the ordering
// restart seeding biases toward: entry order within a.entries itself
// carries no quality signal (insertion/eviction order, see Add), so any
// "sample near the top" policy has to rank first.
func (a *Archive) Ranked() []Candidate {
	ranked := make([]Candidate, len(a.entries))
	copy(ranked, a.entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Better(ranked[i], ranked[j], a.scoreCfg)
	})
	return ranked
}

// All returns every entry currently held, in no particular order. Callers
// must not mutate the returned slice.
func (a *Archive) All() []Candidate {
	return a.entries
}
