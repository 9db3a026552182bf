package chunker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"textchunk/token"
)

// maxDepth bounds recursive decomposition. Every recursion step operates on
// a strictly smaller piece of text, so depth is bounded by input structure;
// the guard turns a misbehaving counter into an error instead of a stack
// overflow.
const maxDepth = 512

// Chunk is one budget-respecting piece of the input, with half-open byte
// offsets into the original text. text[Start:End] == Text always holds.
type Chunk struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Chunker splits texts against a fixed budget and counter. It is safe for
// concurrent use: its memoized counter serializes cache access and the rest
// of its state is read-only after construction.
type Chunker struct {
	size    int // the caller's nominal budget
	overlap int // absolute overlap tokens, normalized
	local   int // effective budget during construction
	count   token.CountFunc
}

// New builds a Chunker from a counting function. chunkSize is the maximum
// token count per chunk as measured by count.
func New(count token.CountFunc, chunkSize int, opts Options) (*Chunker, error) {
	if count == nil {
		return nil, ErrCounter
	}
	if chunkSize <= 0 {
		return nil, ErrChunkSize
	}
	if opts.Overlap < 0 {
		return nil, ErrOverlap
	}
	if !opts.NoMemoize {
		reg := opts.Registry
		if reg == nil {
			reg = token.DefaultRegistry
		}
		count = reg.Memoize(count, opts.CacheSize)
	}
	overlap := normalizeOverlap(chunkSize, opts.Overlap)
	local := chunkSize
	if overlap > 0 {
		local = min(overlap, chunkSize-overlap)
	}
	if opts.MaxTokenChars > 0 {
		count = prefixShortcut(count, local, opts.MaxTokenChars)
	}
	return &Chunker{size: chunkSize, overlap: overlap, local: local, count: count}, nil
}

// NewFromCounter builds a Chunker from a Counter. A zero chunkSize falls
// back to the counter's context-size hint when it provides one.
func NewFromCounter(c token.Counter, chunkSize int, opts Options) (*Chunker, error) {
	if c == nil {
		return nil, ErrCounter
	}
	if chunkSize == 0 {
		h, ok := c.(token.ContextHinter)
		if !ok || h.ContextSize() <= 0 {
			return nil, fmt.Errorf("%w: no chunk size given and counter %q carries no context-size hint", ErrChunkSize, c.Name())
		}
		chunkSize = h.ContextSize()
	}
	if !opts.NoMemoize && opts.Registry == nil {
		opts.Registry = token.DefaultRegistry
	}
	if !opts.NoMemoize {
		opts.NoMemoize = true
		count := opts.Registry.MemoizeCounter(c, opts.CacheSize)
		return New(count, chunkSize, opts)
	}
	return New(c.Count, chunkSize, opts)
}

// Split chunks text in one call. It is shorthand for New followed by Chunk.
func Split(text string, chunkSize int, count token.CountFunc, opts Options) ([]Chunk, error) {
	c, err := New(count, chunkSize, opts)
	if err != nil {
		return nil, err
	}
	return c.Chunk(text)
}

// Texts extracts the chunk texts in order.
func Texts(chunks []Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Text
	}
	return out
}

// Chunk splits text into budget-respecting chunks with offsets into text.
// Empty and whitespace-only input yields an empty, non-nil result.
func (c *Chunker) Chunk(text string) ([]Chunk, error) {
	if strings.TrimSpace(text) == "" {
		return []Chunk{}, nil
	}
	chunks, err := c.build(text, c.local, 0)
	if err != nil {
		return nil, err
	}
	chunks = dropBlank(chunks)
	if c.overlap > 0 {
		chunks = overlapWindows(text, chunks, c.size, c.overlap, c.local)
	}
	return chunks, nil
}

// ChunkAll chunks each text in turn. Inputs are processed sequentially;
// results are index-aligned with texts.
func (c *Chunker) ChunkAll(texts []string) ([][]Chunk, error) {
	out := make([][]Chunk, len(texts))
	for i, t := range texts {
		chunks, err := c.Chunk(t)
		if err != nil {
			return nil, fmt.Errorf("text %d: %w", i, err)
		}
		out[i] = chunks
	}
	return out, nil
}

// build decomposes text one splitter level at a time: over-budget segments
// recurse, everything else merges greedily into maximal runs. Offsets in
// the result are relative to text; callers re-base them.
func (c *Chunker) build(text string, budget, depth int) ([]Chunk, error) {
	if depth > maxDepth {
		return nil, ErrDepth
	}
	lv := newLevel(text)
	var chunks []Chunk
	next := 0
	for i := range lv.segs {
		if i < next {
			continue
		}
		seg := lv.segs[i]
		switch {
		case c.count(seg) <= budget:
			last := c.mergeSegments(lv, budget, i)
			chunks = append(chunks, Chunk{Text: lv.slice(i, last), Start: lv.starts[i], End: lv.ends[last]})
			next = last + 1
		case utf8.RuneCountInString(seg) > 1:
			sub, err := c.build(seg, budget, depth+1)
			if err != nil {
				return nil, err
			}
			for _, s := range sub {
				chunks = append(chunks, Chunk{Text: s.Text, Start: s.Start + lv.starts[i], End: s.End + lv.starts[i]})
			}
			next = i + 1
		default:
			// A lone rune that busts the budget has no smaller piece to
			// cut; emit it rather than recurse forever.
			chunks = append(chunks, Chunk{Text: seg, Start: lv.starts[i], End: lv.ends[i]})
			next = i + 1
		}
		chunks = c.reattachSplitter(lv, chunks, budget, next-1)
	}
	return chunks, nil
}

// reattachSplitter keeps a non-whitespace splitter with the chunk that
// precedes it when the budget allows, or emits it as its own chunk so no
// punctuation is ever dropped. Whitespace splitters are discarded. last is
// the final segment index consumed by the chunk just emitted.
func (c *Chunker) reattachSplitter(lv *level, chunks []Chunk, budget, last int) []Chunk {
	if lv.isWS || last >= len(lv.segs)-1 || len(chunks) == 0 {
		return chunks
	}
	spStart := lv.ends[last]
	spEnd := spStart + len(lv.splitter)
	prev := &chunks[len(chunks)-1]
	if prev.End == spStart {
		// Contiguity holds, so widening the chunk is a pure slice of the
		// original text and the offset invariant survives.
		widened := lv.text[prev.Start:spEnd]
		if c.count(widened) <= budget {
			prev.Text = widened
			prev.End = spEnd
			return chunks
		}
	}
	return append(chunks, Chunk{Text: lv.splitter, Start: spStart, End: spEnd})
}

// dropBlank removes empty and whitespace-only chunks. These only arise
// mid-pipeline, from empty segments and standalone splitter emission.
func dropBlank(chunks []Chunk) []Chunk {
	out := make([]Chunk, 0, len(chunks))
	for _, ch := range chunks {
		if strings.TrimSpace(ch.Text) != "" {
			out = append(out, ch)
		}
	}
	return out
}
