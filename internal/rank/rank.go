// Package rank implements the completion ranker (component C7): the
// progressive, multi-algorithm best_completions pipeline that runs prefix,
// fuzzy-subsequence, and Jaro-Winkler search with dynamic per-query
// weighting, normalises heterogeneous score scales, merges duplicate
// candidates, applies metadata adjustments, and imposes a strict
// prefix-bias tiebreak.
package rank

import (
	"bytes"
	"math"
	"sort"

	"github.com/shockdb/stringspace/internal/scoring"
	"github.com/shockdb/stringspace/internal/search"
	"github.com/shockdb/stringspace/internal/similarity"
	"github.com/shockdb/stringspace/internal/store"
)

// DefaultLimit is the result limit used by BestCompletions when the caller
// does not supply one.
const DefaultLimit = 15

// BestCompletions returns up to limit records ranked for query, combining
// prefix, fuzzy-subsequence, Jaro-Winkler, and substring evidence. It never
// fails: invalid queries, an empty store, and algorithmic dead ends all
// produce an empty (nil) result.
func BestCompletions(s *store.Store, query string, limit int) []store.Record {
	if limit <= 0 {
		limit = DefaultLimit
	}

	if !validateQuery(query) {
		return nil
	}

	if s.Empty() {
		return nil
	}

	qRunes := []rune(query)
	if len(qRunes) == 1 {
		hits := search.Prefix(s, []byte(query))
		if len(hits) > limit {
			hits = hits[:limit]
		}

		return hits
	}

	pool := collectPool(s, query, limit)
	if len(pool) == 0 {
		return nil
	}

	candidates := scoreDetailed(s, pool, query)

	w := weightsFor(len(qRunes))
	today := s.Today()
	lenMax := s.MaxRecordLength()

	for i := range candidates {
		candidates[i].final = combine(&candidates[i], w, today, lenMax, len(query))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].final > candidates[j].final
	})

	sort.SliceStable(candidates, func(i, j int) bool {
		return prefixRank(candidates[i].record.Bytes, query) < prefixRank(candidates[j].record.Bytes, query)
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]store.Record, len(candidates))
	for i, c := range candidates {
		out[i] = c.record
	}

	return out
}

// collectPool runs the prefix, fuzzy-subsequence, and Jaro-Winkler phases
// and deduplicates their hits by exact record bytes, preserving first-seen
// order (prefix phase first, then fuzzy, then Jaro-Winkler).
func collectPool(s *store.Store, query string, limit int) []store.Record {
	seen := make(map[string]struct{})
	pool := make([]store.Record, 0, limit*2)

	add := func(records []store.Record) {
		for _, r := range records {
			key := string(r.Bytes)
			if _, ok := seen[key]; ok {
				continue
			}

			seen[key] = struct{}{}

			pool = append(pool, r)
		}
	}

	prefixHits := search.Prefix(s, []byte(query))
	if len(prefixHits) > limit {
		prefixHits = prefixHits[:limit]
	}

	add(prefixHits)

	add(similarity.FuzzySubsequenceFullDatabase(s, query, limit, 0.0))

	qwThreshold := 0.7
	if len([]rune(query)) <= 2 {
		qwThreshold = 0.6
	}

	add(similarity.JaroWinklerFullDatabase(s, query, limit, qwThreshold))

	return pool
}

// scoreDetailed computes, for every pool member, its prefix/fuzzy/Jaro-
// Winkler/substring algorithm scores against query.
func scoreDetailed(s *store.Store, pool []store.Record, query string) []scoreCandidate {
	candidates := make([]scoreCandidate, len(pool))
	for i, r := range pool {
		candidates[i].record = r
	}

	scorePrefix(candidates, query)
	scoreFuzzy(candidates, query)
	scoreJaroWinkler(candidates, query)
	scoreSubstring(candidates, query)

	return candidates
}

func scorePrefix(candidates []scoreCandidate, query string) {
	q := []byte(query)
	qLower := asciiLower(q)

	for i := range candidates {
		b := candidates[i].record.Bytes

		switch {
		case bytes.HasPrefix(b, q):
			candidates[i].set(scoring.Prefix, 1.0, 1.0)
		case bytes.HasPrefix(asciiLower(b), qLower):
			candidates[i].set(scoring.Prefix, 0.9999, 0.9999)
		}
	}
}

func scoreFuzzy(candidates []scoreCandidate, query string) {
	qRunes := []rune(query)

	type match struct {
		idx int
		raw float64
	}

	matches := make([]match, 0, len(candidates))

	for i := range candidates {
		sRunes := []rune(string(candidates[i].record.Bytes))

		indices, ok := scoring.IsSubsequence(qRunes, sRunes)
		if !ok {
			continue
		}

		matches = append(matches, match{idx: i, raw: scoring.MatchSpanScore(indices, len(sRunes))})
	}

	if len(matches) == 0 {
		return
	}

	raws := make([]float64, len(matches))
	for i, m := range matches {
		raws[i] = m.raw
	}

	lo, hi := scoring.NormalizeRange(raws)

	for _, m := range matches {
		candidates[m.idx].set(scoring.Fuzzy, m.raw, scoring.Normalize(m.raw, lo, hi))
	}
}

func scoreJaroWinkler(candidates []scoreCandidate, query string) {
	for i := range candidates {
		sim := similarity.JaroWinkler(query, string(candidates[i].record.Bytes))
		if sim < 0.7 {
			continue
		}

		candidates[i].set(scoring.JaroWinkler, sim, sim)
	}
}

func scoreSubstring(candidates []scoreCandidate, query string) {
	q := []byte(query)

	for i := range candidates {
		b := candidates[i].record.Bytes

		p := bytes.Index(b, q)
		if p < 0 {
			continue
		}

		n, qLen := len(b), len(q)

		var normalized float64

		if n == qLen {
			normalized = 1
		} else {
			normalized = 1 - float64(p)/float64(n-qLen)
		}

		candidates[i].set(scoring.Substring, float64(p), normalized)
	}
}

// combine applies the per-category weighted sum and the frequency/age/
// length-penalty metadata adjustments, returning the clamped final score.
func combine(c *scoreCandidate, w weights, today uint32, lenMax int, queryLen int) float64 {
	weighted := w.Prefix*c.score(scoring.Prefix) +
		w.Fuzzy*c.score(scoring.Fuzzy) +
		w.Jaro*c.score(scoring.JaroWinkler) +
		w.Substring*c.score(scoring.Substring)

	frequencyFactor := 1 + 0.1*math.Log(float64(c.record.Frequency)+1)

	ageFactor := 1.0
	if today > 0 {
		ageFactor = 1 + 0.05*float64(c.record.AgeDays)/float64(today)
	}

	lengthPenalty := 1.0

	lenCand := len(c.record.Bytes)
	if lenMax > 0 && lenCand > 3*queryLen {
		lengthPenalty = 1 - 0.1*float64(lenCand-queryLen)/float64(lenMax)
	}

	final := weighted * frequencyFactor * ageFactor * lengthPenalty

	switch {
	case final < 0:
		return 0
	case final > 2:
		return 2
	default:
		return final
	}
}

// prefixRank returns the three-level prefix-bias tiebreak key for b
// against query: 0 for an exact-case prefix match, 1 for a case-
// insensitive-only prefix match, 2 for no prefix match at all. Lower sorts
// first.
func prefixRank(b []byte, query string) int {
	q := []byte(query)

	if bytes.HasPrefix(b, q) {
		return 0
	}

	if bytes.HasPrefix(asciiLower(b), asciiLower(q)) {
		return 1
	}

	return 2
}

func asciiLower(b []byte) []byte {
	out := make([]byte, len(b))

	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}

		out[i] = c
	}

	return out
}
