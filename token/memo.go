package token

import (
	"container/list"
	"reflect"
	"sync"
)

// Registry deduplicates memoized counters: asking twice for the same
// counter and cache size returns the same wrapper, so the cache survives
// across chunking calls that share a counter. The process-wide
// DefaultRegistry backs memoization unless a caller supplies its own.
type Registry struct {
	mu      sync.Mutex
	wrapped map[registryKey]CountFunc
}

type registryKey struct {
	id   any
	size int
}

// DefaultRegistry is the process-wide registry. Tests that need isolation
// should create their own with NewRegistry.
var DefaultRegistry = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{wrapped: make(map[registryKey]CountFunc)}
}

// Memoize wraps count with an exact-text count cache. maxEntries bounds the
// cache with strict oldest-inserted-first eviction; zero or negative means
// unbounded. Repeated calls with the same function and size return the same
// wrapper.
//
// Function identity is the function's code pointer: distinct closures built
// from the same literal share one cache. Counters whose closures differ in
// behavior must go through MemoizeCounter or separate registries.
func (r *Registry) Memoize(count CountFunc, maxEntries int) CountFunc {
	if count == nil {
		return nil
	}
	return r.memoize(reflect.ValueOf(count).Pointer(), count, maxEntries)
}

// MemoizeCounter is Memoize keyed by the Counter's interface identity,
// which is unambiguous per counter instance. A counter of a non-comparable
// dynamic type has no usable identity; it still gets a cache, but a private
// one per call rather than a registry-shared one.
func (r *Registry) MemoizeCounter(c Counter, maxEntries int) CountFunc {
	if c == nil {
		return nil
	}
	if !reflect.TypeOf(c).Comparable() {
		return newMemo(c.Count, maxEntries).get
	}
	return r.memoize(c, c.Count, maxEntries)
}

func (r *Registry) memoize(id any, count CountFunc, maxEntries int) CountFunc {
	key := registryKey{id: id, size: maxEntries}
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.wrapped[key]; ok {
		return w
	}
	m := newMemo(count, maxEntries)
	r.wrapped[key] = m.get
	return m.get
}

// memo is an exact-text count cache with FIFO eviction. Access order never
// affects eviction; only insertion order does.
type memo struct {
	mu     sync.Mutex
	count  CountFunc
	max    int
	counts map[string]int
	order  *list.List // insertion order, oldest at front
}

func newMemo(count CountFunc, maxEntries int) *memo {
	return &memo{count: count, max: maxEntries, counts: make(map[string]int), order: list.New()}
}

func (m *memo) get(text string) int {
	m.mu.Lock()
	if n, ok := m.counts[text]; ok {
		m.mu.Unlock()
		return n
	}
	m.mu.Unlock()

	// Count outside the lock; counters may be slow.
	n := m.count(text)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.counts[text]; ok {
		return n
	}
	m.counts[text] = n
	if m.max > 0 {
		m.order.PushBack(text)
		if m.order.Len() > m.max {
			oldest := m.order.Remove(m.order.Front()).(string)
			delete(m.counts, oldest)
		}
	}
	return n
}
