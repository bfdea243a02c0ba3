package similarity

import (
	"sort"

	"github.com/shockdb/stringspace/internal/store"
)

// DefaultSimilarCutoff is the Jaro-Winkler cutoff to pass to GetSimilarWords
// when no other cutoff is given (completion-repl uses it for "similar"
// without a cutoff argument).
const DefaultSimilarCutoff = 0.6

// similarWordsLimit caps the number of results GetSimilarWords returns.
const similarWordsLimit = 15

// GetSimilarWords restricts candidates to records sharing w's first byte,
// keeps those whose Jaro-Winkler similarity to w is strictly greater than
// cutoff, truncates to the 15 most similar, then breaks ties by frequency
// descending and, failing that, by age_days descending. Returns nil if w
// is shorter than two characters.
func GetSimilarWords(s *store.Store, w string, cutoff float64) []store.Record {
	if len([]rune(w)) < 2 {
		return nil
	}

	candidates := s.PrefixCandidates([]byte(w)[:1])
	if len(candidates) == 0 {
		return nil
	}

	type scored struct {
		record     store.Record
		similarity float64
	}

	matches := make([]scored, 0, len(candidates))

	for _, c := range candidates {
		sim := JaroWinkler(w, string(c.Bytes))
		if sim > cutoff {
			matches = append(matches, scored{record: c, similarity: sim})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].similarity > matches[j].similarity
	})

	if len(matches) > similarWordsLimit {
		matches = matches[:similarWordsLimit]
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].record.AgeDays > matches[j].record.AgeDays
	})

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].record.Frequency > matches[j].record.Frequency
	})

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].similarity > matches[j].similarity
	})

	out := make([]store.Record, len(matches))
	for i, m := range matches {
		out[i] = m.record
	}

	return out
}
