package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/notesnap/notesnap-api/gemini"
	"github.com/notesnap/notesnap-api/middleware"
	"github.com/notesnap/notesnap-api/models"
	"gorm.io/gorm"
)

// ListDecks returns the session user's decks, newest first.
func (h *DBHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var decks []models.Deck
	result := h.
		Where("user_id = ?", user.ID).
		Preload("Flashcards").
		Order("created_at DESC").
		Find(&decks)
	if result.Error != nil {
		http.Error(w, result.Error.Error(), http.StatusInternalServerError)
		return
	}

	if len(decks) == 0 {
		decks = []models.Deck{}
	}
	writeJSON(w, http.StatusOK, decks)
}

// GetDeck returns one of the session user's decks with its cards and
// source images.
func (h *DBHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	deckID := r.PathValue("deckID")
	var deck models.Deck
	result := h.
		Where("public_id = ? AND user_id = ?", deckID, user.ID).
		Preload("Flashcards").
		Preload("SourceImages").
		First(&deck)
	if result.Error != nil {
		http.Error(w, "Deck not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, deck)
}

// CreateDeck builds a deck from already-written question/answer pairs.
// Every card gets a fresh id and starts with status "new".
func (h *DBHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Title        string         `json:"title"`
		Cards        []gemini.Card  `json:"cards"`
		SourceImages []gemini.Image `json:"sourceImages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Could not decode request", http.StatusBadRequest)
		return
	}
	if len(req.Cards) == 0 {
		http.Error(w, "At least one flashcard is required", http.StatusBadRequest)
		return
	}
	for _, card := range req.Cards {
		if card.Question == "" || card.Answer == "" {
			http.Error(w, "Each flashcard must have a question and answer", http.StatusBadRequest)
			return
		}
	}

	deck, err := h.createDeck(user, req.Title, req.Cards, req.SourceImages)
	if err != nil {
		http.Error(w, "Failed to create deck", http.StatusInternalServerError)
		h.Log.Error().Err(err).Str("username", user.Username).Msg("deck creation failed")
		return
	}

	writeJSON(w, http.StatusCreated, deck)
}

// GenerateDeck is the photographs-to-deck pipeline: extract the text from
// the uploaded images, turn it into question/answer pairs, then persist the
// result as a new deck with the source images attached. A failed external
// call abandons the operation with no partial state.
func (h *DBHandler) GenerateDeck(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Images    []gemini.Image `json:"images"`
		Language  string         `json:"language"`
		CardCount int            `json:"cardCount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Could not decode request", http.StatusBadRequest)
		return
	}
	if len(req.Images) == 0 {
		http.Error(w, "At least one image is required", http.StatusBadRequest)
		return
	}
	if req.Language == "" {
		req.Language = "English"
	}
	if req.CardCount <= 0 {
		req.CardCount = 25
	}

	text, err := h.AI.ExtractText(r.Context(), req.Images)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	cards, err := h.AI.GenerateFlashcards(r.Context(), text, req.Language, req.CardCount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	if len(cards) == 0 {
		http.Error(w, "The notes did not yield any flashcards", http.StatusBadGateway)
		return
	}

	deck, err := h.createDeck(user, "", cards, req.Images)
	if err != nil {
		http.Error(w, "Failed to create deck", http.StatusInternalServerError)
		h.Log.Error().Err(err).Str("username", user.Username).Msg("deck creation failed")
		return
	}

	writeJSON(w, http.StatusCreated, deck)
}

// DeleteDeck removes one of the session user's decks together with its
// cards and source images. A missing deck id is a no-op.
func (h *DBHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	deckID := r.PathValue("deckID")
	var deck models.Deck
	if err := h.Where("public_id = ? AND user_id = ?", deckID, user.ID).First(&deck).Error; err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	err := h.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deck_id = ?", deck.ID).Delete(&models.Flashcard{}).Error; err != nil {
			return err
		}
		if err := tx.Where("deck_id = ?", deck.ID).Delete(&models.SourceImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&deck).Error
	})
	if err != nil {
		http.Error(w, "Failed to delete deck", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// createDeck persists a deck and its cards in one transaction. Ids are
// nanoids, statuses start at "new".
func (h *DBHandler) createDeck(user *models.User, title string, cards []gemini.Card, images []gemini.Image) (*models.Deck, error) {
	deckID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generate deck id: %w", err)
	}
	if title == "" {
		title = "Notes - " + time.Now().Format("Jan 2, 2006 3:04 PM")
	}

	deck := models.Deck{
		PublicID: deckID,
		Title:    title,
		UserID:   user.ID,
	}

	err = h.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&deck).Error; err != nil {
			return err
		}

		for _, card := range cards {
			cardID, err := gonanoid.New()
			if err != nil {
				return fmt.Errorf("generate card id: %w", err)
			}
			flashcard := models.Flashcard{
				PublicID: cardID,
				Question: card.Question,
				Answer:   card.Answer,
				Status:   models.StatusNew,
				DeckID:   deck.ID,
			}
			if err := tx.Create(&flashcard).Error; err != nil {
				return err
			}
		}

		for _, img := range images {
			sourceImage := models.SourceImage{
				DeckID:   deck.ID,
				Data:     img.Base64,
				MimeType: img.MimeType,
			}
			if err := tx.Create(&sourceImage).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := h.Preload("Flashcards").Preload("SourceImages").First(&deck, deck.ID).Error; err != nil {
		return nil, fmt.Errorf("reload created deck: %w", err)
	}
	return &deck, nil
}
