package chunker

import "sort"

// charsPerTokenSeed is the initial characters-per-token estimate used to
// turn a token budget into a candidate byte length. It deliberately
// undershoots; the estimate is refit from every measurement and converges
// within a few probes.
const charsPerTokenSeed = 0.2

// level holds the per-recursion-level segment bookkeeping: the text being
// decomposed, the delimiter chosen for it, and the byte position of every
// segment.
type level struct {
	text     string
	splitter string
	isWS     bool
	segs     []string
	starts   []int // byte offset of each segment within text
	ends     []int // byte offset one past each segment's last byte
	cum      []int // cumulative byte length including one splitter per segment
}

func newLevel(text string) *level {
	splitter, isWS, segs := selectSplitter(text)
	lv := &level{
		text:     text,
		splitter: splitter,
		isWS:     isWS,
		segs:     segs,
		starts:   make([]int, len(segs)),
		ends:     make([]int, len(segs)),
		cum:      make([]int, len(segs)+1),
	}
	pos := 0
	for i, seg := range segs {
		lv.starts[i] = pos
		lv.ends[i] = pos + len(seg)
		pos += len(seg) + len(splitter)
		lv.cum[i+1] = lv.cum[i] + len(seg) + len(splitter)
	}
	return lv
}

// slice returns the span of the level's text covering segments first
// through last inclusive. Because rejoining segments with the splitter
// reproduces the text, this equals the splitter-join of those segments
// without allocating.
func (lv *level) slice(first, last int) string {
	return lv.text[lv.starts[first]:lv.ends[last]]
}

// mergeSegments finds the largest run of consecutive segments, starting at
// start, whose joined text stays within budget tokens. The caller
// guarantees the start segment fits on its own. Returns the index of the
// last included segment.
//
// The search is a self-calibrating binary search: a running
// characters-per-token estimate converts the budget into a byte-length
// target, the cumulative lengths locate the segment nearest that target,
// the actual token count of the candidate shrinks or grows the interval,
// and each measurement refits the estimate.
func (c *Chunker) mergeSegments(lv *level, budget, start int) int {
	lo := start         // last index measured to fit
	hi := len(lv.segs)  // no index at or past this fits
	avg := charsPerTokenSeed
	for lo+1 < hi {
		mid := lv.guess(lo, hi, start, float64(budget)*avg)
		candidate := lv.slice(start, mid)
		tokens := c.count(candidate)
		if tokens > 0 {
			avg = float64(len(candidate)) / float64(tokens)
		}
		if tokens > budget {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}

// guess proposes the next probe index in (lo, hi): the first segment whose
// cumulative byte length from the run's start reaches target, clamped into
// the open interval.
func (lv *level) guess(lo, hi, start int, target float64) int {
	base := lv.cum[start]
	i := sort.Search(hi-lo-1, func(k int) bool {
		return float64(lv.cum[lo+2+k]-base) >= target
	})
	mid := lo + 1 + i
	if mid >= hi {
		mid = hi - 1
	}
	return mid
}
