package anneal

import "github.com/beltforge/layoutcore/score"

// Candidate is anything the annealing engine can compare, clone, and
// fingerprint. The optimizer package's candidate type (wrapping a
// *grid.State and its connection list) implements this.
type Candidate interface {
	Metrics() score.Metrics
	Fingerprint() string
	Clone() Candidate
}

// Better reports whether a scores strictly better than b under cfg's
// comparator (score.Compare, lower/fewer-unroutable wins).
func Better(a, b Candidate, scoreCfg score.Config) bool {
	return score.Compare(a.Metrics(), b.Metrics(), scoreCfg) < 0
}
