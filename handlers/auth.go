package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/notesnap/notesnap-api/auth"
	"github.com/notesnap/notesnap-api/middleware"
	"github.com/notesnap/notesnap-api/models"
)

// Login signs a user in by username alone. The name is lowercased and
// trimmed before lookup; a first login creates the user with an empty deck
// list, repeat logins return the existing record with its decks intact.
func (h *DBHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Could not decode request", http.StatusBadRequest)
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" {
		http.Error(w, "Username is required", http.StatusBadRequest)
		return
	}

	var user models.User
	result := h.Where("username = ?", username).Preload("Decks.Flashcards").First(&user)
	if result.Error != nil {
		user = models.User{Username: username, Decks: []models.Deck{}}
		if err := h.Create(&user).Error; err != nil {
			http.Error(w, "Failed to create user", http.StatusInternalServerError)
			h.Log.Error().Err(err).Str("username", username).Msg("user creation failed")
			return
		}
		h.Log.Info().Str("username", username).Msg("created new user")
	}

	// Return an empty array instead of null
	if user.Decks == nil {
		user.Decks = []models.Deck{}
	}

	tokenString, err := auth.CreateToken(h.Cfg.JWTSecret, user.Username)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, auth.SessionCookie(tokenString, h.Cfg.CookieDomain, h.Cfg.CookieSecure()))
	writeJSON(w, http.StatusOK, user)
}

// Logout clears the session cookie. The user record is kept.
func (h *DBHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ExpiredCookie(h.Cfg.CookieDomain, h.Cfg.CookieSecure()))
	w.WriteHeader(http.StatusNoContent)
}

// CurrentUser returns the session user with all decks loaded.
func (h *DBHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.Preload("Decks.Flashcards").First(user, user.ID).Error; err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if user.Decks == nil {
		user.Decks = []models.Deck{}
	}
	writeJSON(w, http.StatusOK, user)
}
