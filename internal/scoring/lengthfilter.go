package scoring

// ShouldSkipCandidate is the general CPU-tuned length filter: it rejects a
// candidate of length sLen against a query of length qLen before any
// character-level comparison runs, based on ratios tuned to keep the
// common cases cheap without discarding plausible matches.
func ShouldSkipCandidate(sLen, qLen int) bool {
	switch {
	case sLen < qLen:
		return true
	case qLen <= 2 && sLen > 8*qLen:
		return true
	case qLen <= 3 && sLen > 5*qLen:
		return true
	case qLen > 3 && sLen > 4*qLen:
		return true
	default:
		return false
	}
}

// ShouldSkipCandidateFuzzy is the looser variant used by fuzzy-subsequence
// search, whose ratios are wide enough to preserve abbreviation-style
// matches (e.g. "og4" -> "openai/gpt-4o-...").
func ShouldSkipCandidateFuzzy(sLen, qLen int) bool {
	switch {
	case sLen < qLen:
		return true
	case qLen <= 2 && sLen > 15*qLen:
		return true
	case qLen <= 3 && sLen > 12*qLen:
		return true
	case qLen > 3 && sLen > 8*qLen:
		return true
	default:
		return false
	}
}
