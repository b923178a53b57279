package vango

import (
	"sync"
	"sync/atomic"
)

// Memo is a lazily recomputed derived value. It is both a listener of what
// it reads and a source for whoever reads it.
type Memo[T any] struct {
	base    signalBase
	compute func() T

	mu    sync.RWMutex
	value T
	valid atomic.Bool
	// gen counts invalidations, including those that arrive while the
	// value is already invalid.
	gen atomic.Uint64

	sourcesMu sync.Mutex
	sources   []*signalBase

	computing atomic.Bool
	disposed  atomic.Bool
}

// NewMemo creates a memo. compute runs on the first Get.
func NewMemo[T any](compute func() T) *Memo[T] {
	return &Memo[T]{
		base:    signalBase{id: nextID()},
		compute: compute,
	}
}

// Get returns the value, recomputing if a dependency changed, and
// subscribes the current listener.
func (m *Memo[T]) Get() T {
	trackRead(&m.base)
	return m.Peek()
}

// Peek returns the value without subscribing. A disposed memo returns its
// last value.
func (m *Memo[T]) Peek() T {
	if !m.valid.Load() && !m.disposed.Load() {
		m.recompute()
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value
}

// MarkDirty invalidates the cached value and propagates once.
func (m *Memo[T]) MarkDirty() {
	if m.disposed.Load() {
		return
	}
	m.gen.Add(1)
	if m.valid.CompareAndSwap(true, false) {
		m.base.notify()
	}
}

// Dispose unsubscribes the memo from everything it read. Memos over
// long-lived signals must be disposed or they stay reachable from them.
func (m *Memo[T]) Dispose() {
	if m.disposed.Swap(true) {
		return
	}
	m.sourcesMu.Lock()
	defer m.sourcesMu.Unlock()
	for _, s := range m.sources {
		s.unsubscribe(m)
	}
	m.sources = nil
}

// ID returns the memo id.
func (m *Memo[T]) ID() uint64 {
	return m.base.id
}

func (m *Memo[T]) addSource(source *signalBase) {
	m.sourcesMu.Lock()
	defer m.sourcesMu.Unlock()
	for _, s := range m.sources {
		if s == source {
			return
		}
	}
	m.sources = append(m.sources, source)
}

func (m *Memo[T]) recompute() {
	// A memo reading itself keeps its stale value.
	if m.computing.Swap(true) {
		return
	}
	defer m.computing.Store(false)

	for {
		gen := m.gen.Load()

		m.sourcesMu.Lock()
		for _, s := range m.sources {
			s.unsubscribe(m)
		}
		m.sources = m.sources[:0]
		m.sourcesMu.Unlock()

		old := setCurrentListener(m)
		v := m.compute()
		setCurrentListener(old)

		m.mu.Lock()
		m.value = v
		m.mu.Unlock()
		m.valid.Store(true)

		// valid is stored before gen is re-read, so a MarkDirty that this
		// load misses sees valid == true and notifies on its own.
		if m.gen.Load() == gen || m.disposed.Load() {
			return
		}
		if m.valid.CompareAndSwap(true, false) {
			m.base.notify()
		}
	}
}
