package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/satriahrh/pdfvoice/domain/repositories"
)

// Layout names the directory backing each storage area
type Layout struct {
	Uploads string
	Audio   string
	QR      string
}

// LocalStorage implements FileStorage on the local filesystem
type LocalStorage struct {
	dirs   map[repositories.Area]string
	logger *zap.Logger
}

// Ensure LocalStorage implements the FileStorage interface
var _ repositories.FileStorage = (*LocalStorage)(nil)

// NewLocalStorage creates a filesystem storage for the given layout
func NewLocalStorage(layout Layout, logger *zap.Logger) *LocalStorage {
	return &LocalStorage{
		dirs: map[repositories.Area]string{
			repositories.AreaUploads: layout.Uploads,
			repositories.AreaAudio:   layout.Audio,
			repositories.AreaQR:      layout.QR,
		},
		logger: logger,
	}
}

// EnsureLayout creates all storage directories if absent
func (s *LocalStorage) EnsureLayout() error {
	for area, dir := range s.dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s directory %s: %w", area, dir, err)
		}
		s.logger.Debug("Storage directory ready",
			zap.String("area", string(area)),
			zap.String("dir", dir))
	}
	return nil
}

// Path resolves name inside area. Only the base name is used.
func (s *LocalStorage) Path(area repositories.Area, name string) string {
	return filepath.Join(s.dirs[area], filepath.Base(name))
}

// Save copies r into area/name, truncating any existing file
func (s *LocalStorage) Save(area repositories.Area, name string, r io.Reader) (int64, error) {
	path := s.Path(area, name)

	out, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	size, err := io.Copy(out, r)
	if err != nil {
		return size, fmt.Errorf("failed to write %s: %w", path, err)
	}

	s.logger.Debug("Saved file",
		zap.String("path", path),
		zap.Int64("size", size))

	return size, nil
}

// WriteFile writes data into area/name, truncating any existing file
func (s *LocalStorage) WriteFile(area repositories.Area, name string, data []byte) error {
	path := s.Path(area, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
