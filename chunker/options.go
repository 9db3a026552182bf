package chunker

import (
	"errors"
	"unicode/utf8"

	"textchunk/token"
)

var (
	// ErrChunkSize reports a missing or non-positive chunk size.
	ErrChunkSize = errors.New("chunker: chunk size must be positive")

	// ErrOverlap reports a negative overlap.
	ErrOverlap = errors.New("chunker: overlap must not be negative")

	// ErrCounter reports a missing token counter.
	ErrCounter = errors.New("chunker: token counter is required")

	// ErrDepth reports that recursive decomposition exceeded the depth
	// guard. Input structure alone cannot trigger this; it indicates a
	// counter whose counts grow on substrings.
	ErrDepth = errors.New("chunker: recursion depth limit exceeded")
)

// Options controls chunk construction. The zero value gives non-overlapping
// chunks with an unbounded memoized counter.
type Options struct {
	// Overlap configures redundancy between consecutive chunks. Values in
	// (0, 1) are a fraction of the chunk size; values of 1 and above are an
	// absolute token count, capped at one below the chunk size. Zero
	// disables overlap.
	Overlap float64

	// NoMemoize disables the token-count cache around the counter.
	NoMemoize bool

	// CacheSize bounds the memoized counter's cache; when full, the oldest
	// inserted entry is evicted first. Zero means unbounded.
	CacheSize int

	// MaxTokenChars short-circuits counting: a candidate longer than this
	// many bytes whose prefix alone busts the budget is not tokenized in
	// full. Zero disables the shortcut.
	MaxTokenChars int

	// Registry overrides the process-wide memoization registry. Mostly
	// useful in tests.
	Registry *token.Registry
}

// normalizeOverlap turns the caller's overlap into an absolute token count,
// capped at chunkSize-1. Performed once, before any chunking work.
func normalizeOverlap(chunkSize int, overlap float64) int {
	if overlap <= 0 {
		return 0
	}
	abs := int(overlap)
	if overlap < 1 {
		abs = int(float64(chunkSize) * overlap)
	}
	if abs > chunkSize-1 {
		abs = chunkSize - 1
	}
	return abs
}

// prefixShortcut wraps count so that pathologically long candidates are not
// tokenized in full: when the prefix alone exceeds the budget the exact
// total is irrelevant to the merge search.
func prefixShortcut(count token.CountFunc, budget, maxChars int) token.CountFunc {
	return func(text string) int {
		if len(text) > maxChars {
			cut := maxChars
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			if n := count(text[:cut]); n > budget {
				return n
			}
		}
		return count(text)
	}
}
