// Package chunker splits text into an ordered sequence of chunks, each
// bounded by a token budget measured by a pluggable counter, cutting at the
// most meaningful boundary available rather than at an arbitrary position.
//
// Boundary preference, coarsest first: runs of newlines (paragraphs), runs
// of tabs, runs of whitespace, sentence and clause punctuation, words, and
// finally single characters. Over-budget pieces are decomposed recursively;
// under-budget neighbors are merged back greedily so every chunk is as large
// as the budget allows.
//
// Every chunk carries half-open byte offsets into the original text with the
// invariant text[c.Start:c.End] == c.Text. Optional overlap reassembles the
// chunks into overlapping windows sliced straight from the original text.
package chunker
