package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/satriahrh/pdfvoice/domain"
	"github.com/satriahrh/pdfvoice/domain/entities"
)

func TestQRService_GenerateIsolated(t *testing.T) {
	store, layout := newTestStorage(t)
	events := &recordingPublisher{}
	svc := NewQRService(&fakeEncoder{}, store, events, true, zaptest.NewLogger(t))

	img, err := svc.Generate(context.Background(), "text", "hello")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if img.ID == "" {
		t.Fatal("Expected a per-request id")
	}
	if img.ContentType != "text" {
		t.Errorf("Expected content type 'text', got '%s'", img.ContentType)
	}

	own, err := os.ReadFile(filepath.Join(layout.QR, img.ID+".png"))
	if err != nil {
		t.Fatalf("Per-request image missing: %v", err)
	}
	if string(own) != "png:hello" {
		t.Errorf("Unexpected image content %q", string(own))
	}

	shared, err := os.ReadFile(filepath.Join(layout.QR, entities.SharedQRFilename))
	if err != nil {
		t.Fatalf("Shared image missing: %v", err)
	}
	if string(shared) != "png:hello" {
		t.Errorf("Unexpected shared content %q", string(shared))
	}

	path, err := svc.ImagePath(img.ID)
	if err != nil {
		t.Fatalf("ImagePath failed: %v", err)
	}
	if path != img.Path {
		t.Errorf("Expected %s, got %s", img.Path, path)
	}

	if event := events.last(); event.Type != domain.EventQRGenerated || event.ContentType != "text" {
		t.Errorf("Unexpected event %+v", event)
	}
}

func TestQRService_SequentialRequestsOverwriteShared(t *testing.T) {
	store, layout := newTestStorage(t)
	svc := NewQRService(&fakeEncoder{}, store, nil, false, zaptest.NewLogger(t))

	first, err := svc.Generate(context.Background(), "text", "first")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if first.ID != "" {
		t.Error("Shared mode must not assign ids")
	}
	if _, err := svc.Generate(context.Background(), "url", "second"); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	shared, _ := os.ReadFile(filepath.Join(layout.QR, entities.SharedQRFilename))
	if string(shared) != "png:second" {
		t.Errorf("Expected shared image to reflect the second request, got %q", string(shared))
	}

	entries, _ := os.ReadDir(layout.QR)
	if len(entries) != 1 {
		t.Errorf("Expected only the shared image, got %d files", len(entries))
	}
}

func TestQRService_EncodingError(t *testing.T) {
	store, _ := newTestStorage(t)
	svc := NewQRService(&fakeEncoder{err: errBoom}, store, nil, true, zaptest.NewLogger(t))

	_, err := svc.Generate(context.Background(), "text", "x")
	pe, ok := domain.IsProcessingError(err)
	if !ok {
		t.Fatalf("Expected processing error, got %v", err)
	}
	if pe.Stage != domain.StageEncoding {
		t.Errorf("Expected encoding stage, got %s", pe.Stage)
	}
}

func TestQRService_ImagePathRejectsNonUUID(t *testing.T) {
	store, _ := newTestStorage(t)
	svc := NewQRService(&fakeEncoder{}, store, nil, true, zaptest.NewLogger(t))

	if _, err := svc.ImagePath("../../etc/passwd"); err == nil {
		t.Error("Expected error for non-uuid id")
	}
}
