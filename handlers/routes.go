package handlers

import "net/http"

// NewRouter registers every route on a fresh mux. requireSession wraps the
// handlers that need an authenticated user.
func NewRouter(h *DBHandler, requireSession func(http.HandlerFunc) http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/me", requireSession(h.CurrentUser))

	// Decks
	mux.HandleFunc("GET /api/decks", requireSession(h.ListDecks))
	mux.HandleFunc("POST /api/decks", requireSession(h.CreateDeck))
	mux.HandleFunc("POST /api/decks/generate", requireSession(h.GenerateDeck))
	mux.HandleFunc("GET /api/decks/{deckID}", requireSession(h.GetDeck))
	mux.HandleFunc("DELETE /api/decks/{deckID}", requireSession(h.DeleteDeck))

	// Flashcards
	mux.HandleFunc("PATCH /api/decks/{deckID}/cards/{cardID}", requireSession(h.UpdateCardStatus))
	mux.HandleFunc("POST /api/decks/{deckID}/cards/{cardID}/speech", requireSession(h.ReadCardAloud))

	// Study sessions
	mux.HandleFunc("POST /api/study/sessions", requireSession(h.StartStudySession))
	mux.HandleFunc("GET /api/study/sessions/{sessionID}", requireSession(h.GetStudySession))
	mux.HandleFunc("POST /api/study/sessions/{sessionID}/next", requireSession(h.NextCard))
	mux.HandleFunc("POST /api/study/sessions/{sessionID}/prev", requireSession(h.PrevCard))
	mux.HandleFunc("POST /api/study/sessions/{sessionID}/flip", requireSession(h.FlipCard))
	mux.HandleFunc("POST /api/study/sessions/{sessionID}/grade", requireSession(h.GradeCard))
	mux.HandleFunc("DELETE /api/study/sessions/{sessionID}", requireSession(h.EndStudySession))

	return mux
}
