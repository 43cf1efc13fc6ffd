package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/satriahrh/pdfvoice/domain"
	"github.com/satriahrh/pdfvoice/domain/entities"
	"github.com/satriahrh/pdfvoice/domain/repositories"
)

// QRService renders QR codes into the image storage area
type QRService struct {
	encoder  repositories.QREncoder
	storage  repositories.FileStorage
	events   repositories.EventPublisher
	isolated bool
	logger   *zap.Logger
}

// NewQRService creates a new QR service. When isolated is set every request
// also gets its own image next to the shared one.
func NewQRService(
	encoder repositories.QREncoder,
	storage repositories.FileStorage,
	events repositories.EventPublisher,
	isolated bool,
	logger *zap.Logger,
) *QRService {
	return &QRService{
		encoder:  encoder,
		storage:  storage,
		events:   events,
		isolated: isolated,
		logger:   logger,
	}
}

// Isolated reports whether per-request images are written
func (s *QRService) Isolated() bool {
	return s.isolated
}

// Generate encodes content and overwrites the shared image. contentType is
// only carried along for display.
func (s *QRService) Generate(ctx context.Context, contentType, content string) (*entities.QRImage, error) {
	png, err := s.encoder.EncodePNG(content)
	if err != nil {
		s.logger.Error("Failed to generate QR code",
			zap.String("contentType", contentType),
			zap.Int("contentLength", len(content)),
			zap.Error(err))
		return nil, domain.NewProcessingError(domain.StageEncoding, entities.SharedQRFilename, err)
	}

	image := &entities.QRImage{
		ContentType: contentType,
		SharedPath:  s.storage.Path(repositories.AreaQR, entities.SharedQRFilename),
		CreatedAt:   time.Now().UTC(),
	}

	if s.isolated {
		image.ID = uuid.NewString()
		name := entities.QRFilename(image.ID)
		if err := s.storage.WriteFile(repositories.AreaQR, name, png); err != nil {
			return nil, domain.NewProcessingError(domain.StageEncoding, name, err)
		}
		image.Path = s.storage.Path(repositories.AreaQR, name)
	}

	if err := s.storage.WriteFile(repositories.AreaQR, entities.SharedQRFilename, png); err != nil {
		return nil, domain.NewProcessingError(domain.StageEncoding, entities.SharedQRFilename, err)
	}
	if image.Path == "" {
		image.Path = image.SharedPath
	}

	s.logger.Info("QR code generated",
		zap.String("id", image.ID),
		zap.String("contentType", contentType),
		zap.Int("bytes", len(png)))

	if s.events != nil {
		filename := entities.SharedQRFilename
		if image.ID != "" {
			filename = entities.QRFilename(image.ID)
		}
		s.events.Publish(domain.Event{
			ID:          uuid.NewString(),
			Type:        domain.EventQRGenerated,
			Filename:    filename,
			ContentType: contentType,
			Timestamp:   image.CreatedAt,
		})
	}

	return image, nil
}

// ImagePath resolves the per-request image for id
func (s *QRService) ImagePath(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", domain.NewClientError("Invalid QR code id")
	}
	return s.storage.Path(repositories.AreaQR, entities.QRFilename(parsed.String())), nil
}

// SharedPath is the image every generation overwrites
func (s *QRService) SharedPath() string {
	return s.storage.Path(repositories.AreaQR, entities.SharedQRFilename)
}
