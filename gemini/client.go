// Package gemini is the gateway to the Gemini API for the three calls the
// service depends on: extracting text from note photographs, turning text
// into question/answer pairs and synthesizing speech. Calls are single
// attempts with no retry or caching; a failure surfaces as one wrapped,
// display-ready error.
package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	extractionModel = "gemini-2.5-flash"
	generationModel = "gemini-2.5-pro"
	speechModel     = "gemini-2.5-flash-preview-tts"

	speechVoice = "Kore"

	extractionPrompt = "Extract all the text from these images accurately, " +
		"combining them into a single coherent block of text. The text could " +
		"be in English, French, or Arabic."

	generationPrompt = `Based on the following text, generate a set of approximately %d flashcards.
The flashcards should be in %s.

Rules:
1. Identify the most important key concepts, facts, definitions, and ideas.
2. Create concise, clear questions for the 'front' of the card.
3. Provide accurate and brief answers for the 'back' of the card.
4. Prioritize quality over the exact quantity. If the text is short, create fewer high-quality cards.
5. Ensure the question and answer pairs are logical and directly related to the provided text.

Text to analyze:
---
%s
---`
)

var flashcardsSchema = &schema{
	Type: "object",
	Properties: map[string]*schema{
		"flashcards": {
			Type: "array",
			Items: &schema{
				Type: "object",
				Properties: map[string]*schema{
					"question": {
						Type:        "string",
						Description: "The question for the flashcard.",
					},
					"answer": {
						Type:        "string",
						Description: "The answer to the question.",
					},
				},
				Required: []string{"question", "answer"},
			},
		},
	},
	Required: []string{"flashcards"},
}

// Client talks to the Gemini generateContent endpoint.
type Client struct {
	http *resty.Client
}

// NewClient builds a Client against baseURL. The timeout bounds every call;
// a cancelled request context ends a call early as well.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", apiKey)

	return &Client{http: cli}
}

func (c *Client) generateContent(ctx context.Context, model string, req generateRequest) (*generateResponse, error) {
	var out generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/v1beta/models/" + model + ":generateContent")
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("gemini returned %s", resp.Status())
	}
	return &out, nil
}

// ExtractText runs OCR over the uploaded images and returns the combined
// text. It fails when the call fails or when no text at all was found.
func (c *Client) ExtractText(ctx context.Context, images []Image) (string, error) {
	parts := make([]part, 0, len(images)+1)
	for _, img := range images {
		parts = append(parts, part{
			InlineData: &inlineData{MimeType: img.MimeType, Data: img.Base64},
		})
	}
	parts = append(parts, part{Text: extractionPrompt})

	out, err := c.generateContent(ctx, extractionModel, generateRequest{
		Contents: []content{{Parts: parts}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to analyze images: %w", err)
	}

	text := strings.TrimSpace(out.text())
	if text == "" {
		return "", errors.New("could not find any text in the uploaded image(s)")
	}
	return text, nil
}

// GenerateFlashcards turns text into roughly cardCount question/answer
// pairs in the requested language. The count is a target, not a guarantee.
func (c *Client) GenerateFlashcards(ctx context.Context, text, language string, cardCount int) ([]Card, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{
			{Text: fmt.Sprintf(generationPrompt, cardCount, language, text)},
		}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   flashcardsSchema,
			ThinkingConfig:   &thinkingConfig{ThinkingBudget: 32768},
		},
	}

	out, err := c.generateContent(ctx, generationModel, req)
	if err != nil {
		return nil, fmt.Errorf("failed to generate flashcards: %w", err)
	}

	var payload struct {
		Flashcards json.RawMessage `json:"flashcards"`
	}
	if err := json.Unmarshal([]byte(out.text()), &payload); err != nil {
		return nil, fmt.Errorf("failed to generate flashcards: invalid response: %w", err)
	}
	if payload.Flashcards == nil {
		return nil, errors.New("failed to generate flashcards: response has no 'flashcards' array")
	}

	var cards []Card
	if err := json.Unmarshal(payload.Flashcards, &cards); err != nil {
		return nil, fmt.Errorf("failed to generate flashcards: 'flashcards' is not an array: %w", err)
	}
	return cards, nil
}

// SynthesizeSpeech reads text aloud through the TTS model and returns the
// raw PCM audio bytes (24 kHz, mono, 16-bit little-endian).
func (c *Client) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: text}}}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &speechConfig{
				VoiceConfig: voiceConfig{
					PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: speechVoice},
				},
			},
		},
	}

	out, err := c.generateContent(ctx, speechModel, req)
	if err != nil {
		return nil, fmt.Errorf("failed to generate speech: %w", err)
	}

	data := out.audioData()
	if data == "" {
		return nil, errors.New("no audio data received from the API")
	}

	pcm, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio data: %w", err)
	}
	return pcm, nil
}
