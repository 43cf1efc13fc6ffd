package usecase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/satriahrh/pdfvoice/domain"
	"github.com/satriahrh/pdfvoice/domain/entities"
	"github.com/satriahrh/pdfvoice/domain/repositories"
)

// DocumentService orchestrates the PDF to audio flow
type DocumentService struct {
	storage     repositories.FileStorage
	extractor   repositories.TextExtractor
	synthesizer *SpeechSynthesizer
	events      repositories.EventPublisher
	logger      *zap.Logger
}

// NewDocumentService creates a new document service. events may be nil.
func NewDocumentService(
	storage repositories.FileStorage,
	extractor repositories.TextExtractor,
	synthesizer *SpeechSynthesizer,
	events repositories.EventPublisher,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		storage:     storage,
		extractor:   extractor,
		synthesizer: synthesizer,
		events:      events,
		logger:      logger,
	}
}

// ValidateFilename checks an uploaded filename before anything is written
func ValidateFilename(filename string) error {
	if filename == "" {
		return domain.NewClientError(domain.MsgNoSelectedFile)
	}
	if !entities.IsPDFFilename(filename) {
		return domain.NewClientError(domain.MsgInvalidFileFormat)
	}
	return nil
}

// ConvertUpload saves the upload under its original filename, extracts its
// text and synthesizes it into <name>.mp3.
// Failures after validation are returned as *domain.ProcessingError.
func (s *DocumentService) ConvertUpload(ctx context.Context, filename string, src io.Reader) (*entities.AudioFile, error) {
	if err := ValidateFilename(filename); err != nil {
		return nil, err
	}

	size, err := s.storage.Save(repositories.AreaUploads, filename, src)
	if err != nil {
		return nil, s.fail(domain.StageSave, filename, err)
	}

	upload := entities.UploadedPDF{
		Filename: filename,
		Path:     s.storage.Path(repositories.AreaUploads, filename),
		Size:     size,
	}

	s.logger.Info("Processing uploaded PDF",
		zap.String("filename", upload.Filename),
		zap.Int64("size", upload.Size))

	text, err := s.extractor.ExtractText(ctx, upload.Path)
	if err != nil {
		return nil, s.fail(domain.StageExtraction, filename, err)
	}
	if text == "" {
		return nil, s.fail(domain.StageExtraction, filename, domain.ErrEmptyText)
	}

	audio, err := s.synthesizer.Synthesize(ctx, text, entities.AudioFilename(filename))
	if err != nil {
		return nil, s.fail(domain.StageSynthesis, filename, err)
	}

	s.publish(domain.Event{
		Type:            domain.EventAudioReady,
		Filename:        audio.Filename,
		DurationSeconds: audio.DurationSeconds,
	})

	return audio, nil
}

func (s *DocumentService) fail(stage, filename string, err error) error {
	s.logger.Error("Error processing file",
		zap.String("filename", filename),
		zap.String("stage", stage),
		zap.Error(err))

	s.publish(domain.Event{
		Type:     domain.EventConversionFailed,
		Filename: filename,
		Error:    err.Error(),
	})

	return domain.NewProcessingError(stage, filename, err)
}

func (s *DocumentService) publish(event domain.Event) {
	if s.events == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	s.events.Publish(event)
}
