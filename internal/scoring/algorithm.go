// Package scoring implements the transient, per-query scoring primitives
// shared by the search operations (C4/C5) and the completion ranker (C7):
// subsequence detection with match-index capture, match-span scoring, score
// normalisation, and the CPU-tuned length filters that restrict candidate
// pools before the more expensive algorithms run.
package scoring

// Algorithm tags one of the four search algorithms a candidate's score came
// from. Kept as a closed, string-backed enum — the original implementation
// this was distilled from used a small named-variant enum for the same
// purpose rather than free-form strings.
type Algorithm string

const (
	Prefix      Algorithm = "prefix"
	Fuzzy       Algorithm = "fuzzy"
	JaroWinkler Algorithm = "jaro_winkler"
	Substring   Algorithm = "substring"
)

// AlgorithmScore is one algorithm's contribution to a candidate: the
// algorithm it came from, its raw (algorithm-specific scale) score, and its
// normalised score in [0,1] where higher is always better.
type AlgorithmScore struct {
	Algorithm  Algorithm
	Raw        float64
	Normalized float64
}
