package vdom

import "sync"

// Scope collects the cleanups of one rendered view.
type Scope struct {
	mu       sync.Mutex
	cleanups []func()
	released bool
}

// OnCleanup registers fn to run when the view is released. Registering on a
// released scope runs fn immediately.
func (s *Scope) OnCleanup(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
	s.mu.Unlock()
}

// Release runs the cleanups in reverse registration order. Later calls are
// no-ops.
func (s *Scope) Release() {
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return
	}
	s.released = true
	fns := s.cleanups
	s.cleanups = nil
	s.mu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

// Released reports whether Release has run.
func (s *Scope) Released() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}
