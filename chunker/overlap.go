package chunker

// overlapWindows reassembles the non-overlapping sub-chunks built with the
// reduced local budget into overlapping windows of the full chunk size.
// Window text is sliced straight from the original text, never re-joined,
// so bytes dropped between sub-chunks reappear intact inside a window. That
// reinclusion means a window can exceed the nominal chunk size under
// counters that bill separator characters; the budget bounds the content,
// not the separators between sub-chunks.
func overlapWindows(text string, subs []Chunk, chunkSize, overlap, local int) []Chunk {
	if len(subs) == 0 {
		return subs
	}
	stride := (chunkSize - overlap) / local // sub-chunks advanced per window
	window := chunkSize / local             // sub-chunks covered per window
	n := len(subs)
	count := 1
	if n > window {
		count = (n-window+stride-1)/stride + 1
	}
	out := make([]Chunk, 0, count)
	for i := 0; i < count; i++ {
		first := i * stride
		lastEx := min(first+window, n)
		s := subs[first].Start
		e := subs[lastEx-1].End
		out = append(out, Chunk{Text: text[s:e], Start: s, End: e})
	}
	return out
}
