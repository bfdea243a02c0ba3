package similarity

import (
	"sort"

	"github.com/shockdb/stringspace/internal/scoring"
	"github.com/shockdb/stringspace/internal/store"
)

// FuzzySubsequenceFullDatabase scans every record in the store, computes a
// raw match-span score (scoring.MatchSpanScore) for each one that is a
// subsequence match for q, normalises the raw scores with the same
// three-case (min,max) rule as NormalizeRange, and keeps those whose
// normalised score is at least scoreThreshold. Collection stops once
// 2*targetCount candidates have been accepted. Returns nil if q is empty.
func FuzzySubsequenceFullDatabase(s *store.Store, q string, targetCount int, scoreThreshold float64) []store.Record {
	if q == "" {
		return nil
	}

	qRunes := []rune(q)

	all := s.AllRecords()

	type candidate struct {
		record store.Record
		raw    float64
	}

	scored := make([]candidate, 0, len(all))

	for _, r := range all {
		sRunes := []rune(string(r.Bytes))

		if scoring.ShouldSkipCandidateFuzzy(len(sRunes), len(qRunes)) {
			continue
		}

		indices, ok := scoring.IsSubsequence(qRunes, sRunes)
		if !ok {
			continue
		}

		scored = append(scored, candidate{record: r, raw: scoring.MatchSpanScore(indices, len(sRunes))})
	}

	if len(scored) == 0 {
		return nil
	}

	raws := make([]float64, len(scored))
	for i, c := range scored {
		raws[i] = c.raw
	}

	lo, hi := scoring.NormalizeRange(raws)

	limit := 2 * targetCount

	out := make([]store.Record, 0, len(scored))

	for _, c := range scored {
		normalized := scoring.Normalize(c.raw, lo, hi)
		if normalized >= scoreThreshold {
			out = append(out, c.record)

			if len(out) >= limit {
				break
			}
		}
	}

	return out
}

// JaroWinklerFullDatabase scans every record in the store, applies the
// general CPU-tuned length filter, keeps those whose Jaro-Winkler
// similarity to q is at least similarityThreshold, and stops once
// 2*targetCount candidates have been accepted. Results are sorted by
// similarity descending.
func JaroWinklerFullDatabase(s *store.Store, q string, targetCount int, similarityThreshold float64) []store.Record {
	all := s.AllRecords()

	type candidate struct {
		record     store.Record
		similarity float64
	}

	matches := make([]candidate, 0)

	limit := 2 * targetCount

	for _, r := range all {
		if scoring.ShouldSkipCandidate(len([]rune(string(r.Bytes))), len([]rune(q))) {
			continue
		}

		sim := JaroWinkler(q, string(r.Bytes))
		if sim >= similarityThreshold {
			matches = append(matches, candidate{record: r, similarity: sim})

			if len(matches) >= limit {
				break
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].similarity > matches[j].similarity
	})

	out := make([]store.Record, len(matches))
	for i, m := range matches {
		out[i] = m.record
	}

	return out
}
