// Package search implements the basic search operations (component C4):
// prefix, substring, and fuzzy-subsequence enumeration directly over a
// store's index. Each operation returns value-copy records; none of them
// mutate the store.
package search

import (
	"sort"

	"github.com/shockdb/stringspace/internal/store"
)

// byFrequencyDesc sorts records by frequency descending. It is stable, so
// ties keep the order they arrived in (which, for candidates drawn straight
// from the index, is lexicographic byte order).
func byFrequencyDesc(records []store.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Frequency > records[j].Frequency
	})
}

// Prefix returns every record whose bytes begin with p, sorted by
// frequency descending. Returns nil if p is empty.
func Prefix(s *store.Store, p []byte) []store.Record {
	if len(p) == 0 {
		return nil
	}

	records := s.PrefixCandidates(p)
	byFrequencyDesc(records)

	return records
}
