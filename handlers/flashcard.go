package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/notesnap/notesnap-api/middleware"
	"github.com/notesnap/notesnap-api/models"
)

// UpdateCardStatus replaces the mastery status of a single card. A deck or
// card id that doesn't match anything leaves the record unchanged; that is
// deliberate no-op behavior, not an error.
func (h *DBHandler) UpdateCardStatus(w http.ResponseWriter, r *http.Request) {
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
	if !req.Status.Valid() {
		http.Error(w, "Unknown card status", http.StatusBadRequest)
		return
	}

	h.setCardStatus(user, r.PathValue("deckID"), r.PathValue("cardID"), req.Status)
	w.WriteHeader(http.StatusNoContent)
}

// setCardStatus is the shared status-mutation path used by the PATCH
// handler and study-session grading. Missing deck or card ids are silent
// no-ops.
func (h *DBHandler) setCardStatus(user *models.User, deckID, cardID string, status models.CardStatus) {
	var deck models.Deck
	if err := h.Where("public_id = ? AND user_id = ?", deckID, user.ID).First(&deck).Error; err != nil {
		return
	}

	var card models.Flashcard
	if err := h.Where("public_id = ? AND deck_id = ?", cardID, deck.ID).First(&card).Error; err != nil {
		return
	}

	now := time.Now()
	updates := map[string]any{
		"status":         status,
		"times_reviewed": card.TimesReviewed + 1,
		"last_reviewed":  &now,
	}
	if err := h.Model(&card).Updates(updates).Error; err != nil {
		h.Log.Error().Err(err).Str("card", cardID).Msg("card status update failed")
		return
	}
	if err := h.Model(&deck).Update("last_studied", &now).Error; err != nil {
		h.Log.Error().Err(err).Str("deck", deckID).Msg("deck last-studied update failed")
	}
}
