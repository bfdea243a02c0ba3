package scoring

import "math"

// MatchSpanScore computes the match-span score from a subsequence match's
// character indices in the candidate string: the width of the match span
// (last matched index minus first, inclusive) plus a small penalty
// proportional to the candidate's overall length. Lower is better — a
// tight, early match in a short candidate beats a loose or late match in a
// long one, and (critically) two candidates with the same match span are
// *not* treated as equivalent: the longer candidate scores worse. An empty
// match returns the worst possible score.
func MatchSpanScore(matchIndices []int, sLenChars int) float64 {
	if len(matchIndices) == 0 {
		return math.MaxFloat64
	}

	spanLength := float64(matchIndices[len(matchIndices)-1]-matchIndices[0]) + 1

	return spanLength + 0.1*float64(sLenChars)
}
