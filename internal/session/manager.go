package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ExpiryFunc is invoked when a session's timer forces a submission.
type ExpiryFunc func(attemptID uint, outcome *Outcome)

// Manager tracks the live sessions of this process and drives their one-second
// countdown from a single ticker.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uint]*Session
	logger   *slog.Logger
	onExpiry ExpiryFunc
}

func NewManager(logger *slog.Logger, onExpiry ExpiryFunc) *Manager {
	return &Manager{
		sessions: make(map[uint]*Session),
		logger:   logger,
		onExpiry: onExpiry,
	}
}

// Put registers a started session under its attempt id.
func (m *Manager) Put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.AttemptID()] = s
}

func (m *Manager) Get(attemptID uint) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[attemptID]
	return s, ok
}

func (m *Manager) Remove(attemptID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, attemptID)
}

// Run ticks every live session once per second until ctx is cancelled.
// Sessions that complete (by expiry or by a submit that raced this tick) are
// dropped from the registry; abandoned sessions are swept too.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tickAll(ctx)
		}
	}
}

func (m *Manager) tickAll(ctx context.Context) {
	m.mu.RLock()
	live := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		live = append(live, s)
	}
	m.mu.RUnlock()

	for _, s := range live {
		outcome, err := s.Tick(ctx)
		if err != nil {
			// Expiry submission failed; the session stays resubmittable and
			// the learner's manual retry goes through the normal path.
			m.logger.Error("auto-submit on timer expiry failed",
				"attempt_id", s.AttemptID(), "error", err)
			continue
		}
		if outcome != nil {
			if m.onExpiry != nil {
				m.onExpiry(s.AttemptID(), outcome)
			}
			m.Remove(s.AttemptID())
			continue
		}
		switch s.State() {
		case StateCompleted, StateAbandoned:
			m.Remove(s.AttemptID())
		}
	}
}
