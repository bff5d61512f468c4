package session

import (
	"context"
	"sync"
	"time"

	"auth_portal/internal/models"

	"github.com/google/uuid"
)

// DefaultTTL is the session lifetime when none is configured.
const DefaultTTL = time.Hour

// Manager owns the process-wide token → session mapping. All session records
// are created, read and removed through it; nothing else touches the map.
// Records do not survive a process restart.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
	ttl      time.Duration
	now      func() time.Time
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		sessions: make(map[string]models.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create generates a fresh unguessable token and stores a session expiring
// TTL from now. The returned session carries the token for cookie delivery.
func (m *Manager) Create(userID int, username string) models.Session {
	s := models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		Username:  username,
		ExpiresAt: m.now().Add(m.ttl),
	}
	m.mu.Lock()
	m.sessions[s.Token] = s
	m.mu.Unlock()
	return s
}

// Get returns the session for a token. Unknown and expired tokens both report
// false; an expired entry is evicted on the spot.
func (m *Manager) Get(token string) (models.Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return models.Session{}, false
	}
	if s.Expired(m.now()) {
		m.Destroy(token)
		return models.Session{}, false
	}
	return s, true
}

// Destroy removes the session for a token. Removing an absent token is a no-op,
// so logout stays idempotent.
func (m *Manager) Destroy(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// Count returns the number of live (non-expired) sessions.
func (m *Manager) Count() int {
	now := m.now()
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, s := range m.sessions {
		if !s.Expired(now) {
			n++
		}
	}
	return n
}

// Sweep evicts expired sessions at the given interval until ctx is canceled.
// Expired entries are already invisible to Get; this just reclaims memory.
func (m *Manager) Sweep(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			m.evictExpired(now)
		}
	}
}

func (m *Manager) evictExpired(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, token)
		}
	}
}
