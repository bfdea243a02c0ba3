package protocol

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shockdb/stringspace/internal/rank"
	"github.com/shockdb/stringspace/internal/search"
	"github.com/shockdb/stringspace/internal/similarity"
	"github.com/shockdb/stringspace/internal/store"
)

// errorPrefix begins every wire-level error payload; the dispatcher
// contract treats any response beginning with it as the user-visible
// failure signal.
const errorPrefix = "ERROR"

// Dispatcher routes one parsed request to the store/search/similarity/rank
// packages and serialises the result back to wire bytes. It is stateful
// only in the sense of holding a reference to the store and its backing
// file path; dispatching itself never blocks beyond what the store does.
type Dispatcher struct {
	Store        *store.Store
	DataFile     string
	DefaultLimit int
	EchoMetadata bool

	// Persist is called after a successful insert. Nil disables
	// persistence (useful in tests).
	Persist func() error
}

// NewDispatcher returns a Dispatcher wired to s, persisting to dataFile
// after successful inserts.
func NewDispatcher(s *store.Store, dataFile string, defaultLimit int, echoMetadata bool) *Dispatcher {
	d := &Dispatcher{
		Store:        s,
		DataFile:     dataFile,
		DefaultLimit: defaultLimit,
		EchoMetadata: echoMetadata,
	}

	d.Persist = func() error { return s.Persist(dataFile) }

	return d
}

// Dispatch routes one request frame (operation name plus operands,
// already split by SplitFields) and returns the response payload, without
// any trailing EOT — callers append that themselves once, after writing
// the full response.
func (d *Dispatcher) Dispatch(op string, operands []string) []byte {
	switch op {
	case "prefix":
		return d.handlePrefix(operands)
	case "substring":
		return d.handleSubstring(operands)
	case "fuzzy-subsequence":
		return d.handleFuzzySubsequence(operands)
	case "similar":
		return d.handleSimilar(operands)
	case "best-completions":
		return d.handleBestCompletions(operands)
	case "insert":
		return d.handleInsert(operands)
	case "data-file":
		return []byte(d.DataFile)
	default:
		return errorf("%s - unknown operation '%s'", errorPrefix, op)
	}
}

func (d *Dispatcher) handlePrefix(operands []string) []byte {
	if len(operands) != 1 {
		return invalidParams(len(operands))
	}

	records := search.Prefix(d.Store, []byte(operands[0]))

	return d.formatRecords(records)
}

func (d *Dispatcher) handleSubstring(operands []string) []byte {
	if len(operands) != 1 {
		return invalidParams(len(operands))
	}

	records := search.Substring(d.Store, []byte(operands[0]))

	return d.formatRecords(records)
}

func (d *Dispatcher) handleFuzzySubsequence(operands []string) []byte {
	if len(operands) != 1 {
		return invalidParams(len(operands))
	}

	records := search.FuzzySubsequence(d.Store, []byte(operands[0]))

	return d.formatRecords(records)
}

func (d *Dispatcher) handleSimilar(operands []string) []byte {
	if len(operands) != 2 {
		return errorf("%s\nInvalid parameters (length = %d)", errorPrefix, len(operands))
	}

	cutoff, err := strconv.ParseFloat(operands[1], 64)
	if err != nil {
		return errorf("%s\nInvalid cutoff parameter '%s'.  expecting floating point string between 0.0 and 1.0", errorPrefix, operands[1])
	}

	records := similarity.GetSimilarWords(d.Store, operands[0], cutoff)

	return d.formatRecords(records)
}

func (d *Dispatcher) handleBestCompletions(operands []string) []byte {
	if len(operands) < 1 || len(operands) > 2 {
		return invalidParams(len(operands))
	}

	limit := d.DefaultLimit
	if limit <= 0 {
		limit = rank.DefaultLimit
	}

	if len(operands) == 2 {
		parsed, err := strconv.Atoi(operands[1])
		if err != nil {
			return errorf("%s - invalid limit parameter '%s'", errorPrefix, operands[1])
		}

		limit = parsed
	}

	records := rank.BestCompletions(d.Store, operands[0], limit)

	return d.formatRecords(records)
}

var insertWhitespaceRE = regexp.MustCompile(`\s+`)

func (d *Dispatcher) handleInsert(operands []string) []byte {
	if len(operands) < 1 {
		return invalidParams(len(operands))
	}

	inserted, total := 0, 0

	for _, blob := range operands {
		cleaned := strings.NewReplacer("\n", " ", ",", " ").Replace(strings.TrimSpace(blob))
		cleaned = insertWhitespaceRE.ReplaceAllString(cleaned, " ")

		for _, word := range strings.Fields(cleaned) {
			total++

			if err := d.Store.Insert([]byte(word), 1); err == nil {
				inserted++
			}
		}
	}

	if inserted > 0 && d.Persist != nil {
		// A successful insert reports success to the client even when
		// Persist fails; the Persist error is discarded and is not logged
		// here or by the server.
		_ = d.Persist()
	}

	return []byte(fmt.Sprintf("OK\nInserted %d of %d words", inserted, total))
}

func (d *Dispatcher) formatRecords(records []store.Record) []byte {
	var buf bytes.Buffer

	for _, r := range records {
		buf.Write(r.Bytes)

		if d.EchoMetadata {
			fmt.Fprintf(&buf, " %d %d", r.Frequency, r.AgeDays)
		}

		buf.WriteByte('\n')
	}

	return buf.Bytes()
}

func invalidParams(n int) []byte {
	return errorf("%s - invalid parameters (length = %d)", errorPrefix, n)
}

func errorf(format string, args ...any) []byte {
	return []byte(fmt.Sprintf(format, args...))
}
