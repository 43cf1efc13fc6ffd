package repositories

import "io"

// Area names one of the storage directories
type Area string

const (
	AreaUploads Area = "uploads"
	AreaAudio   Area = "audio"
	AreaQR      Area = "qr"
)

// FileStorage defines access to the filesystem-backed storage areas
type FileStorage interface {
	// EnsureLayout creates every storage directory that does not exist yet
	EnsureLayout() error
	// Path resolves name inside area
	Path(area Area, name string) string
	// Save writes r to area/name, overwriting any existing file
	Save(area Area, name string, r io.Reader) (int64, error)
	// WriteFile writes data to area/name, overwriting any existing file
	WriteFile(area Area, name string, data []byte) error
}
