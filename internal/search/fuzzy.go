package search

import (
	"sort"

	"github.com/shockdb/stringspace/internal/scoring"
	"github.com/shockdb/stringspace/internal/store"
)

// fuzzySubsequenceLimit is the hard cap on results from FuzzySubsequence.
const fuzzySubsequenceLimit = 10

// FuzzySubsequence restricts candidates to records sharing q's first byte,
// keeps those for which q is a Unicode-character subsequence, and returns
// them sorted ascending by match-span score (lower is better), truncated
// to the top 10. Returns nil if q is empty.
func FuzzySubsequence(s *store.Store, q []byte) []store.Record {
	if len(q) == 0 {
		return nil
	}

	candidates := s.PrefixCandidates(q[:1])
	if len(candidates) == 0 {
		return nil
	}

	qRunes := []rune(string(q))

	type scored struct {
		record store.Record
		score  float64
	}

	matches := make([]scored, 0, len(candidates))

	for _, c := range candidates {
		sRunes := []rune(string(c.Bytes))

		indices, ok := scoring.IsSubsequence(qRunes, sRunes)
		if !ok {
			continue
		}

		matches = append(matches, scored{
			record: c,
			score:  scoring.MatchSpanScore(indices, len(sRunes)),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score < matches[j].score
	})

	if len(matches) > fuzzySubsequenceLimit {
		matches = matches[:fuzzySubsequenceLimit]
	}

	out := make([]store.Record, len(matches))
	for i, m := range matches {
		out[i] = m.record
	}

	return out
}
