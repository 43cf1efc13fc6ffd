package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/satriahrh/pdfvoice/adapters/storage"
	"github.com/satriahrh/pdfvoice/domain"
	"github.com/satriahrh/pdfvoice/domain/repositories"
)

type fakeExtractor struct {
	text  string
	err   error
	paths []string
}

func (f *fakeExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	f.paths = append(f.paths, path)
	return f.text, f.err
}

type fakeTTS struct {
	err   error
	texts []string
	voice repositories.VoiceConfig
}

func (f *fakeTTS) SynthesizeAudio(ctx context.Context, text string, config repositories.VoiceConfig) ([]byte, error) {
	f.texts = append(f.texts, text)
	f.voice = config
	if f.err != nil {
		return nil, f.err
	}
	return []byte("audio:" + text), nil
}

type fakeProbe struct {
	duration float64
	err      error
}

func (f *fakeProbe) Duration(path string) (float64, error) {
	return f.duration, f.err
}

type fakeEncoder struct {
	err error
}

func (f *fakeEncoder) EncodePNG(content string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("png:" + content), nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recordingPublisher) Publish(event domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingPublisher) last() domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

var errBoom = errors.New("boom")

func newTestStorage(t *testing.T) (*storage.LocalStorage, storage.Layout) {
	t.Helper()
	root := t.TempDir()
	layout := storage.Layout{
		Uploads: filepath.Join(root, "uploads"),
		Audio:   filepath.Join(root, "audio"),
		QR:      filepath.Join(root, "static"),
	}
	s := storage.NewLocalStorage(layout, zaptest.NewLogger(t))
	if err := s.EnsureLayout(); err != nil {
		t.Fatalf("EnsureLayout failed: %v", err)
	}
	return s, layout
}
