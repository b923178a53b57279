package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vango-dev/loadboard/pkg/middleware"
)

// Manager tracks the live sessions of a Server.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	closed   bool

	logger  *slog.Logger
	metrics *middleware.Metrics
}

// NewManager creates an empty manager.
func NewManager(logger *slog.Logger, metrics *middleware.Metrics) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		logger:   logger,
		metrics:  metrics,
	}
}

// add registers s. It fails with ErrSessionClosed after Shutdown.
func (m *Manager) add(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrSessionClosed
	}
	m.sessions[s.ID] = s
	m.metrics.SessionOpened()
	m.logger.Info("session opened", "session_id", s.ID, "sessions", len(m.sessions))
	return nil
}

// remove is the session close hook.
func (m *Manager) remove(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; !ok {
		return
	}
	delete(m.sessions, s.ID)
	m.metrics.SessionClosed()
	m.logger.Info("session closed", "session_id", s.ID, "sessions", len(m.sessions))
}

// Get returns the session with id, or nil.
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Count returns the number of open sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// ForEach calls fn for every session until fn returns false.
func (m *Manager) ForEach(fn func(*Session) bool) {
	for _, s := range m.snapshot() {
		if !fn(s) {
			return
		}
	}
}

// Broadcast asks every session to flush, e.g. after a catalog reload.
func (m *Manager) Broadcast() {
	sessions := m.snapshot()
	for _, s := range sessions {
		s.Refresh()
	}
	if len(sessions) > 0 {
		m.logger.Debug("refresh broadcast", "sessions", len(sessions))
	}
}

func (m *Manager) snapshot() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// Shutdown closes every session and waits for their loops to exit or ctx
// to end. New sessions are refused afterwards.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	sessions := m.snapshot()
	var wg sync.WaitGroup
	for _, s := range sessions {
		wg.Add(1)
		go func(s *Session) {
			defer wg.Done()
			s.Close()
			s.Wait()
		}(s)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		m.logger.Info("session manager shutdown", "closed_sessions", len(sessions))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
