package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/notesnap/notesnap-api/middleware"
	"github.com/notesnap/notesnap-api/models"
)

// StartStudySession snapshots one of the session user's decks and opens a
// study cursor over it.
func (h *DBHandler) StartStudySession(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		DeckID string `json:"deckId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Could not decode request", http.StatusBadRequest)
		return
	}

	var deck models.Deck
	result := h.
		Where("public_id = ? AND user_id = ?", req.DeckID, user.ID).
		Preload("Flashcards").
		First(&deck)
	if result.Error != nil {
		http.Error(w, "Deck not found", http.StatusNotFound)
		return
	}
	if len(deck.Flashcards) == 0 {
		http.Error(w, "Deck has no flashcards", http.StatusBadRequest)
		return
	}

	session := h.Sessions.Start(user.ID, deck.PublicID, deck.Flashcards)
	writeJSON(w, http.StatusCreated, session.View())
}

// GetStudySession returns the current cursor state of a session.
func (h *DBHandler) GetStudySession(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	session, ok := h.Sessions.Get(r.PathValue("sessionID"), user.ID)
	if !ok {
		http.Error(w, "Study session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, session.View())
}

// NextCard advances the cursor, wrapping past the last card.
func (h *DBHandler) NextCard(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	session, ok := h.Sessions.Get(r.PathValue("sessionID"), user.ID)
	if !ok {
		http.Error(w, "Study session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, session.Next())
}

// PrevCard moves the cursor back, wrapping before the first card.
func (h *DBHandler) PrevCard(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	session, ok := h.Sessions.Get(r.PathValue("sessionID"), user.ID)
	if !ok {
		http.Error(w, "Study session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, session.Prev())
}

// FlipCard toggles the current card between its question and answer sides.
func (h *DBHandler) FlipCard(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	session, ok := h.Sessions.Get(r.PathValue("sessionID"), user.ID)
	if !ok {
		http.Error(w, "Study session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, session.Flip())
}

// GradeCard persists a mastery status for the current card and advances
// the cursor. The session loops; grading the last card wraps back to the
// first.
func (h *DBHandler) GradeCard(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Status models.CardStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Could not decode request", http.StatusBadRequest)
		return
	}
	if req.Status != models.StatusLearning && req.Status != models.StatusMastered {
		http.Error(w, "Grade must be learning or mastered", http.StatusBadRequest)
		return
	}

	session, ok := h.Sessions.Get(r.PathValue("sessionID"), user.ID)
	if !ok {
		http.Error(w, "Study session not found", http.StatusNotFound)
		return
	}

	h.setCardStatus(user, session.DeckID, session.CurrentCardID(), req.Status)
	writeJSON(w, http.StatusOK, session.Grade(req.Status))
}

// EndStudySession discards a session. Unknown ids are a no-op.
func (h *DBHandler) EndStudySession(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	h.Sessions.End(r.PathValue("sessionID"), user.ID)
	w.WriteHeader(http.StatusNoContent)
}
