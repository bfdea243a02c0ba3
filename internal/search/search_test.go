package search_test

import (
	"testing"

	"github.com/shockdb/stringspace/internal/clock"
	"github.com/shockdb/stringspace/internal/search"
	"github.com/shockdb/stringspace/internal/store"
)

func newFixedStore(t *testing.T, day uint32) *store.Store {
	t.Helper()

	return store.New(clock.Fixed(day))
}

func TestPrefix_SortsByFrequencyDescending(t *testing.T) {
	t.Parallel()

	s := newFixedStore(t, 20000)

	mustInsert(t, s, "hello", 5)
	mustInsert(t, s, "help", 15)
	mustInsert(t, s, "helicopter", 5)
	mustInsert(t, s, "world", 20)

	got := search.Prefix(s, []byte("hel"))
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}

	if string(got[0].Bytes) != "help" {
		t.Fatalf("first record = %q, want %q", got[0].Bytes, "help")
	}
}

func TestPrefix_EmptyPrefixReturnsNil(t *testing.T) {
	t.Parallel()

	s := newFixedStore(t, 20000)
	mustInsert(t, s, "hello", 1)

	if got := search.Prefix(s, nil); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}

func TestSubstring_MatchesContiguousByteSequenceAnywhere(t *testing.T) {
	t.Parallel()

	s := newFixedStore(t, 20000)
	mustInsert(t, s, "anthropic", 1)
	mustInsert(t, s, "philanthropy", 2)
	mustInsert(t, s, "unrelated", 1)

	got := search.Substring(s, []byte("thro"))
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
}

// Scenario G.
func TestFuzzySubsequence_ScenarioG(t *testing.T) {
	t.Parallel()

	s := newFixedStore(t, 20000)
	mustInsert(t, s, "openai/gpt-4o-2024-08-06", 1)
	mustInsert(t, s, "openai/gpt-5", 2)
	mustInsert(t, s, "anthropic/claude-3-opus", 3)

	got := search.FuzzySubsequence(s, []byte("og4"))

	if len(got) != 1 {
		t.Fatalf("got %d records, want 1: %v", len(got), got)
	}

	if string(got[0].Bytes) != "openai/gpt-4o-2024-08-06" {
		t.Fatalf("got %q, want %q", got[0].Bytes, "openai/gpt-4o-2024-08-06")
	}
}

// Testable property 5.
func TestFuzzySubsequence_OnlyTrueSubsequencesSortedAscendingAndCapped(t *testing.T) {
	t.Parallel()

	s := newFixedStore(t, 20000)

	words := []string{
		"aardvark", "abacus", "abalone", "abandon", "abase",
		"abate", "abbey", "abbot", "abdicate", "abdomen",
		"abduct", "aberrant",
	}

	for _, w := range words {
		mustInsert(t, s, w, 1)
	}

	got := search.FuzzySubsequence(s, []byte("ab"))

	if len(got) > 10 {
		t.Fatalf("got %d records, want <= 10", len(got))
	}

	for _, r := range got {
		sRunes := []rune(string(r.Bytes))
		qRunes := []rune("ab")

		qi := 0

		for _, c := range sRunes {
			if qi < len(qRunes) && c == qRunes[qi] {
				qi++
			}
		}

		if qi != len(qRunes) {
			t.Fatalf("record %q is not a subsequence match for %q", r.Bytes, "ab")
		}
	}
}

func mustInsert(t *testing.T, s *store.Store, word string, freq uint16) {
	t.Helper()

	if err := s.Insert([]byte(word), freq); err != nil {
		t.Fatalf("insert %q: %v", word, err)
	}
}
