package store

import (
	"bytes"
	"sort"

	"github.com/shockdb/stringspace/internal/arena"
)

// index is the ordered sequence of entries, kept sorted by the byte
// sequence each entry points at in the arena. It never touches the
// filesystem and has no notion of "today" — those concerns live in Store.
type index struct {
	entries []entry
}

// bytesOf returns the bytes an entry points at, borrowed from the arena.
func bytesOf(a *arena.Arena, e entry) []byte {
	return a.View(e.offset, e.length)
}

// lowerBound returns the index of the first entry whose bytes are
// lexicographically >= key, or len(entries) if none qualify. This is a
// plain byte-wise comparison (not the "prefix-collapsing" discipline
// described for find_by_prefix_no_sort — prefixRun below walks the prefix
// range forward from this lower bound, so there is exactly one comparator
// to reason about for index ordering).
func (ix *index) lowerBound(a *arena.Arena, key []byte) int {
	return sort.Search(len(ix.entries), func(i int) bool {
		return bytes.Compare(bytesOf(a, ix.entries[i]), key) >= 0
	})
}

// findExact returns the position and the entry with the given exact bytes,
// or (-1, false) if no entry matches.
func (ix *index) findExact(a *arena.Arena, key []byte) (int, bool) {
	pos := ix.lowerBound(a, key)
	if pos < len(ix.entries) && bytes.Equal(bytesOf(a, ix.entries[pos]), key) {
		return pos, true
	}

	return -1, false
}

// insertAt inserts e at position pos, shifting later entries right by one.
func (ix *index) insertAt(pos int, e entry) {
	ix.entries = append(ix.entries, entry{})
	copy(ix.entries[pos+1:], ix.entries[pos:])
	ix.entries[pos] = e
}

// prefixRun returns the contiguous slice of entries whose bytes begin with
// prefix, in index (lexicographic) order — this is find_by_prefix_no_sort's
// underlying range. Unlike the source this was distilled from, it compares
// each candidate's own prefix against the query's bytes directly; it never
// compares a string's prefix against itself.
func (ix *index) prefixRun(a *arena.Arena, prefix []byte) []entry {
	if len(prefix) == 0 {
		return nil
	}

	start := ix.lowerBound(a, prefix)

	end := start
	for end < len(ix.entries) {
		s := bytesOf(a, ix.entries[end])
		if len(s) < len(prefix) || !bytes.Equal(s[:len(prefix)], prefix) {
			break
		}

		end++
	}

	return ix.entries[start:end]
}
