package vango

import (
	"sync"
	"sync/atomic"
)

// Effect re-runs a side effect whenever something it read changes.
type Effect struct {
	id      uint64
	fn      func() Cleanup
	cleanup Cleanup
	owner   *Owner

	sourcesMu sync.Mutex
	sources   []*signalBase

	// runMu keeps runs of one effect from overlapping.
	runMu sync.Mutex

	pending  atomic.Bool
	running  atomic.Bool
	disposed atomic.Bool
	runs     atomic.Uint64
}

// CreateEffect runs fn immediately under the current owner and again after
// each change to what it read. Without an owner, re-runs happen
// synchronously in MarkDirty.
func CreateEffect(fn func() Cleanup) *Effect {
	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: getCurrentOwner(),
	}
	if e.owner != nil {
		e.owner.registerEffect(e)
	}
	e.run()
	return e
}

// OnCleanup registers fn with the current owner. Without an owner fn is
// never called.
func OnCleanup(fn func()) {
	if o := getCurrentOwner(); o != nil {
		o.OnCleanup(fn)
	}
}

// MarkDirty schedules the effect.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}
	if !e.pending.CompareAndSwap(false, true) {
		return
	}
	if e.owner == nil {
		// A running body picks the change up when it returns.
		if !e.running.Load() {
			e.run()
		}
		return
	}
	e.owner.scheduleEffect(e)
}

// ID returns the effect id.
func (e *Effect) ID() uint64 {
	return e.id
}

// Runs returns how many times the effect body has executed.
func (e *Effect) Runs() uint64 {
	return e.runs.Load()
}

// Pending reports whether a re-run is scheduled.
func (e *Effect) Pending() bool {
	return e.pending.Load()
}

func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()
	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

func (e *Effect) dropSources() {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()
	for _, s := range e.sources {
		s.unsubscribe(e)
	}
	e.sources = nil
}

func (e *Effect) run() {
	for {
		e.runOnce()
		if e.owner != nil || e.disposed.Load() || !e.pending.Load() {
			return
		}
	}
}

func (e *Effect) runOnce() {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	if e.disposed.Load() {
		return
	}
	e.pending.Store(false)
	e.running.Store(true)
	defer e.running.Store(false)

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	e.dropSources()

	oldListener := setCurrentListener(e)
	oldOwner := setCurrentOwner(e.owner)
	defer func() {
		setCurrentOwner(oldOwner)
		setCurrentListener(oldListener)
	}()

	e.runs.Add(1)
	e.cleanup = e.fn()
}

// Dispose runs the last cleanup and unsubscribes the effect.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}
	e.runMu.Lock()
	defer e.runMu.Unlock()
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	e.dropSources()
}
