package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// respondJSON mirrors the real API's JSON content type so the client's
// response unmarshalling kicks in.
func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// textResponse builds a generateContent reply whose first candidate carries
// one text part.
func textResponse(text string) generateResponse {
	return generateResponse{Candidates: []candidate{
		{Content: content{Parts: []part{{Text: text}}}},
	}}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-key", 5*time.Second)
}

func TestExtractText(t *testing.T) {
	var gotPath string
	var gotReq generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		respondJSON(w, textResponse("  Photosynthesis converts light energy.  "))
	})

	images := []Image{
		{Base64: "aW1hZ2Ux", MimeType: "image/png"},
		{Base64: "aW1hZ2Uy", MimeType: "image/jpeg"},
	}
	text, err := client.ExtractText(context.Background(), images)
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis converts light energy.", text)

	assert.Equal(t, "/v1beta/models/"+extractionModel+":generateContent", gotPath)
	require.Len(t, gotReq.Contents, 1)
	parts := gotReq.Contents[0].Parts
	require.Len(t, parts, 3, "two image parts plus the prompt")
	assert.Equal(t, "image/png", parts[0].InlineData.MimeType)
	assert.Equal(t, "aW1hZ2Uy", parts[1].InlineData.Data)
	assert.Equal(t, extractionPrompt, parts[2].Text)
}

func TestExtractTextEmptyResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, textResponse("   \n  "))
	})

	_, err := client.ExtractText(context.Background(), []Image{{Base64: "x", MimeType: "image/png"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not find any text")
}

func TestExtractTextServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.ExtractText(context.Background(), []Image{{Base64: "x", MimeType: "image/png"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to analyze images")
}

func TestGenerateFlashcards(t *testing.T) {
	var gotReq generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		payload := `{"flashcards":[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"}]}`
		respondJSON(w, textResponse(payload))
	})

	cards, err := client.GenerateFlashcards(context.Background(), "some notes", "French", 10)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, Card{Question: "Q1", Answer: "A1"}, cards[0])

	require.NotNil(t, gotReq.GenerationConfig)
	assert.Equal(t, "application/json", gotReq.GenerationConfig.ResponseMimeType)
	require.NotNil(t, gotReq.GenerationConfig.ResponseSchema)
	assert.Contains(t, gotReq.GenerationConfig.ResponseSchema.Required, "flashcards")
	prompt := gotReq.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "approximately 10 flashcards")
	assert.Contains(t, prompt, "in French")
	assert.Contains(t, prompt, "some notes")
}

func TestGenerateFlashcardsMissingField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, textResponse(`{"cards":[]}`))
	})

	_, err := client.GenerateFlashcards(context.Background(), "notes", "English", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'flashcards'")
}

func TestGenerateFlashcardsNotAList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, textResponse(`{"flashcards":"oops"}`))
	})

	_, err := client.GenerateFlashcards(context.Background(), "notes", "English", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an array")
}

func TestGenerateFlashcardsMalformedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, textResponse("not json at all"))
	})

	_, err := client.GenerateFlashcards(context.Background(), "notes", "English", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid response")
}

func TestSynthesizeSpeech(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04}
	var gotReq generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		resp := generateResponse{Candidates: []candidate{
			{Content: content{Parts: []part{{
				InlineData: &inlineData{
					MimeType: "audio/pcm",
					Data:     base64.StdEncoding.EncodeToString(pcm),
				},
			}}}},
		}}
		respondJSON(w, resp)
	})

	got, err := client.SynthesizeSpeech(context.Background(), "Question: Q. Answer: A.")
	require.NoError(t, err)
	assert.Equal(t, pcm, got)

	require.NotNil(t, gotReq.GenerationConfig)
	assert.Equal(t, []string{"AUDIO"}, gotReq.GenerationConfig.ResponseModalities)
	require.NotNil(t, gotReq.GenerationConfig.SpeechConfig)
	assert.Equal(t, speechVoice, gotReq.GenerationConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName)
}

func TestSynthesizeSpeechNoAudio(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, textResponse("no audio here"))
	})

	_, err := client.SynthesizeSpeech(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no audio data")
}

func TestSynthesizeSpeechBadBase64(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		resp := generateResponse{Candidates: []candidate{
			{Content: content{Parts: []part{{
				InlineData: &inlineData{MimeType: "audio/pcm", Data: "!!not-base64!!"},
			}}}},
		}}
		respondJSON(w, resp)
	})

	_, err := client.SynthesizeSpeech(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode audio")
}

func TestRequestCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.ExtractText(ctx, []Image{{Base64: "x", MimeType: "image/png"}})
	require.Error(t, err)
}
