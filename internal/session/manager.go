package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/export"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/fontsettings"
)

// Manager keeps sessions in memory and drops them after ttl of inactivity.
// Font settings outlive the in-memory session in the settings store.
type Manager struct {
	store fontsettings.Store
	env   *export.Env
	ttl   time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(store fontsettings.Store, env *export.Env, ttl time.Duration) *Manager {
	return &Manager{store: store, env: env, ttl: ttl, sessions: map[string]*Session{}}
}

// Get returns the live session id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if ok {
		s.Touch()
	}
	return s, ok
}

// GetOrCreate returns the session id, creating it with its persisted font
// settings when it is not live.
func (m *Manager) GetOrCreate(ctx context.Context, id string) *Session {
	if s, ok := m.Get(id); ok {
		return s
	}

	fonts := fontsettings.New(m.store, id)
	fonts.LoadFromStorage(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := newSession(id, fonts, m.env)
	m.sessions[id] = s
	log.Debug().Str("session", id).Msg("session created")
	return s
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions idle since before now-ttl and returns how many.
func (m *Manager) Sweep(now time.Time) int {
	cutoff := now.Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := m.Sweep(now); n > 0 {
				log.Debug().Int("dropped", n).Int("live", m.Len()).Msg("expired sessions swept")
			}
		}
	}
}
