package entities

import (
	"strings"
	"time"
)

const (
	PDFExtension   = ".pdf"
	AudioExtension = ".mp3"

	// SharedQRFilename is the image every generation overwrites.
	SharedQRFilename = "qrcode.png"
)

// UploadedPDF is a PDF persisted under its original filename
type UploadedPDF struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
}

// AudioFile is the synthesized speech for an uploaded PDF
type AudioFile struct {
	Filename        string  `json:"filename"`
	Path            string  `json:"path"`
	Size            int64   `json:"size"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}

// QRImage is a rendered QR code
type QRImage struct {
	// ID is empty when only the shared image was written.
	ID          string    `json:"id,omitempty"`
	ContentType string    `json:"content_type"`
	Path        string    `json:"path"`
	SharedPath  string    `json:"shared_path"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsPDFFilename reports whether name carries the literal, case-sensitive .pdf suffix
func IsPDFFilename(name string) bool {
	return strings.HasSuffix(name, PDFExtension)
}

// AudioFilename derives the audio filename by replacing the .pdf suffix with .mp3
func AudioFilename(pdfFilename string) string {
	return strings.TrimSuffix(pdfFilename, PDFExtension) + AudioExtension
}

// QRFilename returns the per-request image filename for id
func QRFilename(id string) string {
	return id + ".png"
}
