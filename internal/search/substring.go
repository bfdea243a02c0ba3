package search

import (
	"bytes"

	"github.com/shockdb/stringspace/internal/store"
)

// Substring returns every record whose bytes contain q as a contiguous
// byte substring, sorted by frequency descending. Returns nil if q is
// empty. This is a full linear scan of the store — there is no index
// structure that narrows a substring search.
func Substring(s *store.Store, q []byte) []store.Record {
	if len(q) == 0 {
		return nil
	}

	all := s.AllRecords()

	matches := make([]store.Record, 0, len(all))

	for _, r := range all {
		if bytes.Contains(r.Bytes, q) {
			matches = append(matches, r)
		}
	}

	byFrequencyDesc(matches)

	return matches
}
