// Package study implements the study-session controller: a cursor into a
// fixed snapshot of a deck's cards, with wraparound navigation and a flip
// state that resets on every move. A session loops forever; it never
// terminates on its own.
package study

import (
	"sync"

	"github.com/google/uuid"
	"github.com/notesnap/notesnap-api/models"
)

// Session is one user's walk through a deck snapshot.
type Session struct {
	ID     string
	UserID uint
	DeckID string

	mu      sync.Mutex
	cards   []models.Flashcard
	index   int
	flipped bool
}

// NewSession snapshots cards for deckID. The caller must not pass an empty
// card list.
func NewSession(userID uint, deckID string, cards []models.Flashcard) *Session {
	snapshot := make([]models.Flashcard, len(cards))
	copy(snapshot, cards)
	return &Session{
		ID:     uuid.NewString(),
		UserID: userID,
		DeckID: deckID,
		cards:  snapshot,
	}
}

// View is the serializable state of a session at its current cursor.
type View struct {
	ID       string   `json:"id"`
	DeckID   string   `json:"deckId"`
	Position int      `json:"position"`
	Total    int      `json:"total"`
	Progress float64  `json:"progress"`
	Flipped  bool     `json:"flipped"`
	Card     CardView `json:"card"`
}

// CardView hides the answer until the card has been flipped.
type CardView struct {
	ID       string            `json:"id"`
	Question string            `json:"question"`
	Answer   string            `json:"answer,omitempty"`
	Status   models.CardStatus `json:"status"`
}

// View returns the current state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	card := s.cards[s.index]
	cv := CardView{ID: card.PublicID, Question: card.Question, Status: card.Status}
	if s.flipped {
		cv.Answer = card.Answer
	}
	return View{
		ID:       s.ID,
		DeckID:   s.DeckID,
		Position: s.index + 1,
		Total:    len(s.cards),
		Progress: float64(s.index+1) / float64(len(s.cards)) * 100,
		Flipped:  s.flipped,
		Card:     cv,
	}
}

// Next advances the cursor, wrapping past the last card, and resets the
// flip state.
func (s *Session) Next() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = (s.index + 1) % len(s.cards)
	s.flipped = false
	return s.viewLocked()
}

// Prev moves the cursor back, wrapping before the first card, and resets
// the flip state.
func (s *Session) Prev() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = (s.index - 1 + len(s.cards)) % len(s.cards)
	s.flipped = false
	return s.viewLocked()
}

// Flip toggles between the question and answer sides of the current card.
func (s *Session) Flip() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flipped = !s.flipped
	return s.viewLocked()
}

// CurrentCardID returns the public id of the card under the cursor.
func (s *Session) CurrentCardID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cards[s.index].PublicID
}

// Grade records status on the current card's snapshot and advances the
// cursor, wrapping at the end of the deck.
func (s *Session) Grade(status models.CardStatus) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards[s.index].Status = status
	s.index = (s.index + 1) % len(s.cards)
	s.flipped = false
	return s.viewLocked()
}
