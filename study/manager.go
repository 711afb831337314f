package study

import (
	"sync"

	"github.com/notesnap/notesnap-api/models"
)

// Manager holds the live study sessions. Sessions are in-memory only; a
// restart simply drops them, the decks themselves stay in the database.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Start creates and registers a session over cards for deckID.
func (m *Manager) Start(userID uint, deckID string, cards []models.Flashcard) *Session {
	session := NewSession(userID, deckID, cards)
	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()
	return session
}

// Get looks up a session by id, scoped to its owner.
func (m *Manager) Get(id string, userID uint) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	if !ok || session.UserID != userID {
		return nil, false
	}
	return session, true
}

// End discards a session. Ending an unknown id is a no-op.
func (m *Manager) End(id string, userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if session, ok := m.sessions[id]; ok && session.UserID == userID {
		delete(m.sessions, id)
	}
}
