package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/notesnap/notesnap-api/config"
	"github.com/notesnap/notesnap-api/gemini"
	"github.com/notesnap/notesnap-api/study"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// AIGateway is the slice of the Gemini client the handlers use. Tests
// substitute a stub.
type AIGateway interface {
	ExtractText(ctx context.Context, images []gemini.Image) (string, error)
	GenerateFlashcards(ctx context.Context, text, language string, cardCount int) ([]gemini.Card, error)
	SynthesizeSpeech(ctx context.Context, text string) ([]byte, error)
}

// DBHandler carries the injected dependencies every handler needs.
type DBHandler struct {
	*gorm.DB
	AI       AIGateway
	Sessions *study.Manager
	Cfg      config.Config
	Log      zerolog.Logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
