package rank

import (
	"github.com/shockdb/stringspace/internal/scoring"
	"github.com/shockdb/stringspace/internal/store"
)

// scoreCandidate is the transient, per-query record of every algorithm
// score a candidate earned during one best_completions call, plus the
// combined score it is ultimately ranked by.
type scoreCandidate struct {
	record store.Record
	scores map[scoring.Algorithm]scoring.AlgorithmScore
	final  float64
}

// set records algorithm a's raw and normalized score for this candidate,
// keeping whichever normalizes higher if the algorithm already has one
// recorded (a candidate earns at most one score per algorithm per query).
func (c *scoreCandidate) set(a scoring.Algorithm, raw, normalized float64) {
	if c.scores == nil {
		c.scores = make(map[scoring.Algorithm]scoring.AlgorithmScore, 4)
	}

	if existing, ok := c.scores[a]; !ok || normalized > existing.Normalized {
		c.scores[a] = scoring.AlgorithmScore{Algorithm: a, Raw: raw, Normalized: normalized}
	}
}

// score returns the candidate's normalized score for a, or 0 if the
// algorithm never produced one.
func (c *scoreCandidate) score(a scoring.Algorithm) float64 {
	return c.scores[a].Normalized
}
