// Package token provides the token counters the chunker consumes and a
// memoizing registry that caches counts across chunking calls.
package token

import (
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/words"
)

// CountFunc maps text to a non-negative token count. The chunker treats it
// as a black box and assumes it is deterministic for a fixed input.
type CountFunc func(text string) int

// Counter is the richer counting surface used by the CLI and the Chunker
// builder: a counting strategy with a name for logging.
type Counter interface {
	Count(text string) int
	Name() string
}

// ContextHinter is implemented by counters that know the context window of
// the model they tokenize for. The Chunker builder falls back to it when
// given no chunk size.
type ContextHinter interface {
	ContextSize() int
}

// Words counts Unicode words using UAX #29 segmentation. Whitespace and
// punctuation-only segments are not counted.
type Words struct{}

func (Words) Name() string { return "words" }

func (Words) Count(text string) int {
	n := 0
	seg := words.NewSegmenter([]byte(text))
	for seg.Next() {
		if hasAlnum(seg.Bytes()) {
			n++
		}
	}
	return n
}

func hasAlnum(b []byte) bool {
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsNumber(r) {
			return true
		}
		b = b[size:]
	}
	return false
}

// Runes counts characters. Useful as an exact budget for fixed-width
// chunking and for tests.
type Runes struct{}

func (Runes) Name() string { return "runes" }

func (Runes) Count(text string) int { return utf8.RuneCountInString(text) }

// Estimate approximates tokens as one per four bytes, rounded up. No
// dependencies, no accuracy guarantees; good enough when a real tokenizer
// is unavailable.
type Estimate struct{}

func (Estimate) Name() string { return "estimate" }

func (Estimate) Count(text string) int { return (len(text) + 3) / 4 }
