package handlers

import (
	"fmt"
	"net/http"

	"github.com/notesnap/notesnap-api/audio"
	"github.com/notesnap/notesnap-api/middleware"
	"github.com/notesnap/notesnap-api/models"
)

// ReadCardAloud synthesizes speech for one card and streams it back as a
// WAV file the browser can play directly.
func (h *DBHandler) ReadCardAloud(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var deck models.Deck
	if err := h.Where("public_id = ? AND user_id = ?", r.PathValue("deckID"), user.ID).First(&deck).Error; err != nil {
		http.Error(w, "Deck not found", http.StatusNotFound)
		return
	}

	var card models.Flashcard
	if err := h.Where("public_id = ? AND deck_id = ?", r.PathValue("cardID"), deck.ID).First(&card).Error; err != nil {
		http.Error(w, "Flashcard not found", http.StatusNotFound)
		return
	}

	text := fmt.Sprintf("Question: %s. Answer: %s.", card.Question, card.Answer)
	pcm, err := h.AI.SynthesizeSpeech(r.Context(), text)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	wav := audio.WAV(pcm, audio.SpeechSampleRate, 1)
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", fmt.Sprint(len(wav)))
	w.WriteHeader(http.StatusOK)
	w.Write(wav)
}
