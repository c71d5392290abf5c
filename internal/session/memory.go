package session

import (
	"sync"

	"github.com/habithero/habitherod/internal/models"
)

// MemoryStore is an in-memory session store. Flows take the store as an
// interface so tests can substitute this for the database-backed one.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]models.Session)}
}

func (m *MemoryStore) Get(id string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	copy := session
	return &copy, nil
}

func (m *MemoryStore) Put(session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.ID] = *session
	return nil
}

func (m *MemoryStore) Clear(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}
