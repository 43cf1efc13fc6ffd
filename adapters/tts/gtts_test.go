package tts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap/zaptest"

	"github.com/satriahrh/pdfvoice/domain/repositories"
)

func TestSplitText_ShortText(t *testing.T) {
	segments := splitText("Hello world", gttsMaxSegment)
	if len(segments) != 1 || segments[0] != "Hello world" {
		t.Errorf("Expected single segment 'Hello world', got %q", segments)
	}
}

func TestSplitText_RespectsMaxLength(t *testing.T) {
	text := strings.Repeat("word ", 100)
	segments := splitText(text, gttsMaxSegment)

	if len(segments) < 5 {
		t.Fatalf("Expected text to be split, got %d segments", len(segments))
	}
	for i, s := range segments {
		if n := utf8.RuneCountInString(s); n > gttsMaxSegment {
			t.Errorf("Segment %d has %d runes", i, n)
		}
	}

	joined := strings.Join(segments, " ")
	if joined != strings.TrimSpace(text) {
		t.Error("Splitting must not lose or reorder words")
	}
}

func TestSplitText_SplitsOnPunctuation(t *testing.T) {
	segments := splitText("First sentence. Second one! Third?", gttsMaxSegment)

	expected := []string{"First sentence.", "Second one!", "Third?"}
	if len(segments) != len(expected) {
		t.Fatalf("Expected %d segments, got %q", len(expected), segments)
	}
	for i := range expected {
		if segments[i] != expected[i] {
			t.Errorf("Segment %d: expected %q, got %q", i, expected[i], segments[i])
		}
	}
}

func TestSplitText_NothingToSpeak(t *testing.T) {
	if segments := splitText("  ... \n !! ", gttsMaxSegment); len(segments) != 0 {
		t.Errorf("Expected no segments, got %q", segments)
	}
}

func TestSplitText_HardCutWithoutSpaces(t *testing.T) {
	segments := splitText(strings.Repeat("x", 250), gttsMaxSegment)
	if len(segments) != 3 {
		t.Fatalf("Expected 3 segments, got %d", len(segments))
	}
}

func TestGoogleTranslateTTS_SynthesizeAudio(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Path != "/translate_tts" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("tl") != "en" {
			t.Errorf("Expected language en, got %s", q.Get("tl"))
		}
		if q.Get("client") != "tw-ob" {
			t.Errorf("Expected client tw-ob, got %s", q.Get("client"))
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		// Echo the segment index so ordering can be verified.
		w.Write([]byte("[" + q.Get("idx") + "]"))
	}))
	defer server.Close()

	g := NewGoogleTranslateTTS(GTTSConfig{BaseURL: server.URL, Concurrency: 3}, zaptest.NewLogger(t))

	text := "One. Two. Three. Four. Five."
	audio, err := g.SynthesizeAudio(context.Background(), text, repositories.VoiceConfig{Language: "en"})
	if err != nil {
		t.Fatalf("SynthesizeAudio failed: %v", err)
	}

	if string(audio) != "[0][1][2][3][4]" {
		t.Errorf("Expected segments joined in order, got %s", string(audio))
	}
	if requests.Load() != 5 {
		t.Errorf("Expected 5 requests, got %d", requests.Load())
	}
}

func TestGoogleTranslateTTS_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	g := NewGoogleTranslateTTS(GTTSConfig{BaseURL: server.URL}, zaptest.NewLogger(t))

	_, err := g.SynthesizeAudio(context.Background(), "Hello", repositories.VoiceConfig{Language: "en"})
	if err == nil {
		t.Fatal("Expected error for upstream failure")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("Expected status code in error, got %v", err)
	}
}

func TestGoogleTranslateTTS_EmptyText(t *testing.T) {
	g := NewGoogleTranslateTTS(GTTSConfig{BaseURL: "http://127.0.0.1:0"}, zaptest.NewLogger(t))

	if _, err := g.SynthesizeAudio(context.Background(), "   ", repositories.VoiceConfig{}); err == nil {
		t.Error("Expected error for whitespace-only text")
	}
}

func TestNewGoogleTranslateTTS_Defaults(t *testing.T) {
	g := NewGoogleTranslateTTS(GTTSConfig{}, zaptest.NewLogger(t))

	if g.baseURL != "https://translate.google.com" {
		t.Errorf("Expected default base URL, got %s", g.baseURL)
	}
	if g.concurrency != defaultGTTSConcurrency {
		t.Errorf("Expected concurrency %d, got %d", defaultGTTSConcurrency, g.concurrency)
	}

	g = NewGoogleTranslateTTS(GTTSConfig{TLD: "co.uk"}, zaptest.NewLogger(t))
	if g.baseURL != "https://translate.google.co.uk" {
		t.Errorf("Expected co.uk host, got %s", g.baseURL)
	}
}
