package vango

import (
	"sync"
	"sync/atomic"
)

// Owner is a disposal scope for effects, cleanups and child owners. One
// owner per live session or view is typical.
type Owner struct {
	id     uint64
	parent *Owner

	mu       sync.Mutex
	children []*Owner
	effects  []*Effect
	cleanups []func()
	pending  []*Effect

	disposed atomic.Bool
}

// NewOwner creates an owner attached to parent. A nil parent makes a root.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{id: nextID(), parent: parent}
	if parent != nil {
		parent.addChild(o)
	}
	return o
}

// ID returns the owner id.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent owner, or nil for a root.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed reports whether Dispose has run.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

func (o *Owner) addChild(child *Owner) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.children = append(o.children, child)
}

func (o *Owner) removeChild(child *Owner) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

func (o *Owner) registerEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.effects = append(o.effects, e)
}

func (o *Owner) scheduleEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = append(o.pending, e)
}

// OnCleanup registers fn to run on Dispose. On a disposed owner fn runs
// immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		fn()
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

// RunPendingEffects runs every scheduled effect of this owner and its
// descendants, repeating until nothing is scheduled or maxRounds is hit.
// It returns the number of effect runs. maxRounds <= 0 means 16.
func (o *Owner) RunPendingEffects(maxRounds int) int {
	if maxRounds <= 0 {
		maxRounds = 16
	}
	ran := 0
	for round := 0; round < maxRounds; round++ {
		n := o.runPendingOnce()
		ran += n
		if n == 0 || !o.HasPendingEffects() {
			break
		}
	}
	return ran
}

func (o *Owner) runPendingOnce() int {
	if o.disposed.Load() {
		return 0
	}

	o.mu.Lock()
	effects := o.pending
	o.pending = nil
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.mu.Unlock()

	ran := 0
	for _, e := range effects {
		if e.pending.Load() {
			e.run()
			ran++
		}
	}
	for _, c := range children {
		ran += c.runPendingOnce()
	}
	return ran
}

// HasPendingEffects reports whether this owner or a descendant has
// scheduled effects.
func (o *Owner) HasPendingEffects() bool {
	if o.disposed.Load() {
		return false
	}
	o.mu.Lock()
	has := len(o.pending) > 0
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.mu.Unlock()

	if has {
		return true
	}
	for _, c := range children {
		if c.HasPendingEffects() {
			return true
		}
	}
	return false
}

// Dispose tears the scope down: children in reverse creation order, then
// effects, then cleanups in reverse registration order.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}
	if o.parent != nil {
		o.parent.removeChild(o)
	}

	o.mu.Lock()
	children := o.children
	effects := o.effects
	cleanups := o.cleanups
	o.children, o.effects, o.cleanups, o.pending = nil, nil, nil, nil
	o.mu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}
	for _, e := range effects {
		e.Dispose()
	}
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}
