package store

import (
	"fmt"

	"github.com/shockdb/stringspace/internal/arena"
	"github.com/shockdb/stringspace/internal/clock"
)

// Store is the public façade over an Arena and an Index (components C1+C2):
// insert-or-merge, iterate all, clear, and — in persist.go — persist/load.
// A Store is not safe for concurrent use; per the design's single-owner
// model, callers that need concurrent access must serialize it externally
// (see internal/server).
type Store struct {
	arena *arena.Arena
	idx   index
	now   clock.Clock
}

// New returns an empty Store. now supplies the current day (days since the
// Unix epoch) for age-stamping inserts; pass clock.System for production use
// and clock.Fixed(day) in tests that need determinism.
func New(now clock.Clock) *Store {
	if now == nil {
		now = clock.System
	}

	return &Store{arena: arena.New(), now: now}
}

// Len returns the number of distinct records currently stored.
func (s *Store) Len() int { return len(s.idx.entries) }

// Empty reports whether the store holds no records.
func (s *Store) Empty() bool { return s.Len() == 0 }

// Capacity returns the arena's current byte capacity.
func (s *Store) Capacity() int { return s.arena.Cap() }

// MaxRecordLength returns the length, in bytes, of the longest record
// currently stored, or 0 if the store is empty. The ranker needs this for
// its length-penalty normalisation (len_max in the specification).
func (s *Store) MaxRecordLength() int {
	max := 0

	for _, e := range s.idx.entries {
		if e.length > max {
			max = e.length
		}
	}

	return max
}

// Insert inserts bytes with the given frequency delta, or — if an entry
// with identical bytes already exists — adds delta to its frequency
// (saturating at the 16-bit maximum) and refreshes its age to today.
//
// Returns ErrLengthOutOfBounds if len(bytes) is outside [MinLength, MaxLength].
func (s *Store) Insert(b []byte, delta uint16) error {
	if len(b) < MinLength || len(b) > MaxLength {
		return fmt.Errorf("%w: length = %d", ErrLengthOutOfBounds, len(b))
	}

	today := s.now()

	if pos, ok := s.idx.findExact(s.arena, b); ok {
		e := &s.idx.entries[pos]
		e.frequency = saturatingAddUint16(e.frequency, delta)
		e.ageDays = today

		return nil
	}

	return s.insertNew(b, delta, today)
}

// loadRecord is used by Load to reconstruct a record with an explicit
// frequency and age (as read from the persisted file) rather than the
// delta-merge semantics of Insert. If a duplicate already exists (which a
// well-formed file should never contain) its frequency saturates-adds and
// its age is overwritten with the newly loaded value, keeping the no-
// duplicates invariant intact.
func (s *Store) loadRecord(b []byte, frequency uint16, ageDays uint32) error {
	if len(b) < MinLength || len(b) > MaxLength {
		return fmt.Errorf("%w: length = %d", ErrLengthOutOfBounds, len(b))
	}

	if pos, ok := s.idx.findExact(s.arena, b); ok {
		e := &s.idx.entries[pos]
		e.frequency = saturatingAddUint16(e.frequency, frequency)
		e.ageDays = ageDays

		return nil
	}

	return s.insertNew(b, frequency, ageDays)
}

func (s *Store) insertNew(b []byte, frequency uint16, ageDays uint32) error {
	pos := s.idx.lowerBound(s.arena, b)

	s.arena.Reserve(len(b))
	offset := s.arena.Append(b)

	s.idx.insertAt(pos, entry{
		offset:    offset,
		length:    len(b),
		frequency: frequency,
		ageDays:   ageDays,
	})

	return nil
}

// Clear removes all records and resets the arena's used-byte count to zero,
// without releasing arena capacity.
func (s *Store) Clear() {
	s.idx.entries = nil
	s.arena.Clear()
}

func (s *Store) recordAt(e entry) Record {
	return Record{
		Bytes:     bytesOf(s.arena, e),
		Frequency: e.frequency,
		AgeDays:   e.ageDays,
	}.Clone()
}

// AllRecords returns a value-copy of every record, in the index's sorted
// (lexicographic byte) order.
func (s *Store) AllRecords() []Record {
	out := make([]Record, len(s.idx.entries))
	for i, e := range s.idx.entries {
		out[i] = s.recordAt(e)
	}

	return out
}

// PrefixCandidates returns value copies of every record whose bytes begin
// with prefix, in index (lexicographic) order — i.e. find_by_prefix_no_sort.
// Returns nil if prefix is empty.
func (s *Store) PrefixCandidates(prefix []byte) []Record {
	run := s.idx.prefixRun(s.arena, prefix)
	if len(run) == 0 {
		return nil
	}

	out := make([]Record, len(run))
	for i, e := range run {
		out[i] = s.recordAt(e)
	}

	return out
}

// Today returns the store's current day value, as supplied by its clock.
func (s *Store) Today() uint32 { return s.now() }
