package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/satriahrh/pdfvoice/domain/repositories"
	"github.com/satriahrh/pdfvoice/internal/config"
)

func TestNewElevenLabsTTS(t *testing.T) {
	logger := zaptest.NewLogger(t)

	// Test without API key
	_, err := NewElevenLabsTTS(ElevenLabsConfig{}, logger)
	if err == nil {
		t.Error("Expected error when API key is not set")
	}

	// Test with API key
	tts, err := NewElevenLabsTTS(ElevenLabsConfig{APIKey: "test-api-key"}, logger)
	if err != nil {
		t.Fatalf("Failed to create ElevenLabsTTS: %v", err)
	}

	if tts.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", tts.apiKey)
	}

	if tts.voiceID != defaultVoiceID {
		t.Errorf("Expected default voice ID '%s', got '%s'", defaultVoiceID, tts.voiceID)
	}

	if tts.outputFormat != defaultOutputFormat {
		t.Errorf("Expected default output format '%s', got '%s'", defaultOutputFormat, tts.outputFormat)
	}

	if tts.stability != defaultStability || tts.clarity != defaultClarity {
		t.Errorf("Expected default voice settings, got %f/%f", tts.stability, tts.clarity)
	}
}

func TestValidateElevenLabsConfig_RejectsNonMP3(t *testing.T) {
	err := ValidateElevenLabsConfig(ElevenLabsConfig{APIKey: "k", OutputFormat: "pcm_24000"})
	if err == nil {
		t.Error("Expected error for PCM output format")
	}

	err = ValidateElevenLabsConfig(ElevenLabsConfig{APIKey: "k", Stability: 1.5})
	if err == nil {
		t.Error("Expected error for stability out of range")
	}
}

func TestElevenLabsTTS_SynthesizeAudio_EmptyText(t *testing.T) {
	tts, err := NewElevenLabsTTS(ElevenLabsConfig{APIKey: "test-api-key"}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create ElevenLabsTTS: %v", err)
	}

	ctx := context.Background()
	if _, err := tts.SynthesizeAudio(ctx, "", repositories.VoiceConfig{}); err == nil {
		t.Error("Expected error for empty text")
	}

	if _, err := tts.SynthesizeAudio(ctx, "   ", repositories.VoiceConfig{}); err == nil {
		t.Error("Expected error for whitespace-only text")
	}
}

func TestElevenLabsTTS_SynthesizeAudio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("xi-api-key") != "test-api-key" {
			t.Errorf("Expected API key header, got '%s'", r.Header.Get("xi-api-key"))
		}
		if !strings.HasPrefix(r.URL.Path, "/text-to-speech/"+defaultVoiceID) {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("output_format") != defaultOutputFormat {
			t.Errorf("Expected output format %s, got %s", defaultOutputFormat, r.URL.Query().Get("output_format"))
		}

		var req ElevenLabsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if req.Text != "Hello there" {
			t.Errorf("Expected text 'Hello there', got '%s'", req.Text)
		}
		if req.LanguageCode != "en" {
			t.Errorf("Expected language code 'en', got '%s'", req.LanguageCode)
		}
		if req.VoiceSettings.Stability != 0.8 || req.VoiceSettings.SimilarityBoost != 0.9 {
			t.Errorf("Expected voice settings 0.8/0.9, got %f/%f", req.VoiceSettings.Stability, req.VoiceSettings.SimilarityBoost)
		}

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3-fake-mp3"))
	}))
	defer server.Close()

	tts, err := NewElevenLabsTTS(ElevenLabsConfig{
		APIKey:     "test-api-key",
		APIBaseURL: server.URL,
		Stability:  0.8,
		Clarity:    0.9,
	}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create ElevenLabsTTS: %v", err)
	}

	audio, err := tts.SynthesizeAudio(context.Background(), "Hello there", repositories.VoiceConfig{Language: "en"})
	if err != nil {
		t.Fatalf("SynthesizeAudio failed: %v", err)
	}
	if string(audio) != "ID3-fake-mp3" {
		t.Errorf("Unexpected audio payload %q", string(audio))
	}
}

func TestElevenLabsTTS_SynthesizeAudio_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"invalid api key"}`))
	}))
	defer server.Close()

	tts, err := NewElevenLabsTTS(ElevenLabsConfig{APIKey: "bad", APIBaseURL: server.URL}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create ElevenLabsTTS: %v", err)
	}

	_, err = tts.SynthesizeAudio(context.Background(), "Hello", repositories.VoiceConfig{})
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("Expected 401 error, got %v", err)
	}
}

// Integration test - only runs if ELEVEN_LABS_API_KEY is set with real API key
func TestElevenLabsTTS_SynthesizeAudio_Integration(t *testing.T) {
	apiKey := os.Getenv("ELEVEN_LABS_API_KEY")
	if apiKey == "" || apiKey == "test-api-key" {
		t.Skip("Skipping integration test - set ELEVEN_LABS_API_KEY environment variable with real API key")
	}

	cfg := config.Load()
	cfg.TTSProvider = ProviderElevenLabs
	tts, err := NewProvider(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create ElevenLabsTTS: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	audio, err := tts.SynthesizeAudio(ctx, "This is an Eleven Labs integration test.", repositories.VoiceConfig{Language: "en"})
	if err != nil {
		t.Fatalf("Failed to convert text to speech: %v", err)
	}

	if len(audio) == 0 {
		t.Error("No audio data received")
	}
}
