package chunker

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// semanticSplitters lists non-whitespace boundary characters in priority
// order: sentence terminators, then clause separators, then interrupters,
// then joiners.
var semanticSplitters = []string{
	".", "?", "!", "*",
	";", ",", "(", ")", "[", "]", "“", "”", "‘", "’", "'", "\"", "`",
	":", "—", "…",
	"/", "\\", "–", "&", "-",
}

// selectSplitter picks the most meaningful delimiter present in text and
// splits on it. It returns the delimiter, whether it counts as whitespace,
// and the ordered segments. Joining the segments with the delimiter
// reproduces text byte-for-byte. An empty delimiter is the character-level
// sentinel: text had no other usable boundary and segments holds its
// individual runes.
func selectSplitter(text string) (splitter string, isWhitespace bool, segments []string) {
	if strings.ContainsAny(text, "\r\n") {
		run := longestRun(text, func(r rune) bool { return r == '\r' || r == '\n' })
		return run, true, strings.Split(text, run)
	}
	if strings.ContainsRune(text, '\t') {
		run := longestRun(text, func(r rune) bool { return r == '\t' })
		return run, true, strings.Split(text, run)
	}
	if strings.IndexFunc(text, unicode.IsSpace) >= 0 {
		run := longestRun(text, unicode.IsSpace)
		if utf8.RuneCountInString(run) == 1 {
			// Only single spaces between tokens: prefer sentence and
			// clause boundaries over arbitrary word gaps when any exist.
			for _, mark := range semanticSplitters {
				if strings.Contains(text, mark+run) {
					return run, true, splitAfterMark(text, mark, run)
				}
			}
		}
		return run, true, strings.Split(text, run)
	}
	for _, mark := range semanticSplitters {
		if strings.Contains(text, mark) {
			return mark, false, strings.Split(text, mark)
		}
	}
	segments = make([]string, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		segments = append(segments, string(r))
	}
	return "", true, segments
}

// longestRun returns the longest maximal run of consecutive runes matching
// class, measured in runes, ties broken by first occurrence.
func longestRun(text string, class func(rune) bool) string {
	bestStart, bestEnd, bestLen := 0, 0, 0
	runStart, runLen := -1, 0
	for i, r := range text {
		if class(r) {
			if runStart < 0 {
				runStart = i
			}
			runLen++
			continue
		}
		if runStart >= 0 && runLen > bestLen {
			bestStart, bestEnd, bestLen = runStart, i, runLen
		}
		runStart, runLen = -1, 0
	}
	if runStart >= 0 && runLen > bestLen {
		bestStart, bestEnd, bestLen = runStart, len(text), runLen
	}
	return text[bestStart:bestEnd]
}

// splitAfterMark splits text at every occurrence of sep that immediately
// follows mark. Other occurrences of sep stay inside their segment, so the
// cut lands on sentence or clause boundaries only. Joining the result with
// sep reproduces text.
func splitAfterMark(text, mark, sep string) []string {
	pattern := mark + sep
	var segments []string
	start := 0
	for {
		i := strings.Index(text[start:], pattern)
		if i < 0 {
			break
		}
		cut := start + i + len(mark)
		segments = append(segments, text[start:cut])
		start = cut + len(sep)
	}
	return append(segments, text[start:])
}
