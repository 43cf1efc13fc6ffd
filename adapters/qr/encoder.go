package qr

import (
	"fmt"
	"image/color"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/satriahrh/pdfvoice/domain/repositories"
)

// The library always draws a four module quiet zone.
const libraryBorder = 4

// Options fixes how codes are rendered
type Options struct {
	// Version is the smallest symbol version tried; larger ones are used when content does not fit.
	Version int
	Level   qrcode.RecoveryLevel
	// BoxSize is the pixel width of a single module.
	BoxSize int
	// Border is the quiet zone in modules, either 0 or 4.
	Border     int
	Foreground color.Color
	Background color.Color
}

// DefaultOptions returns version 1, level L, box size 10, border 4, black on white
func DefaultOptions() Options {
	return Options{
		Version:    1,
		Level:      qrcode.Low,
		BoxSize:    10,
		Border:     libraryBorder,
		Foreground: color.Black,
		Background: color.White,
	}
}

// Encoder implements QREncoder with skip2/go-qrcode
type Encoder struct {
	opts Options
}

// Ensure Encoder implements the QREncoder interface
var _ repositories.QREncoder = (*Encoder)(nil)

// NewEncoder validates opts and creates an encoder
func NewEncoder(opts Options) (*Encoder, error) {
	if opts.Version < 1 || opts.Version > 40 {
		return nil, fmt.Errorf("version must be between 1 and 40, got %d", opts.Version)
	}
	if opts.BoxSize <= 0 {
		return nil, fmt.Errorf("box size must be positive, got %d", opts.BoxSize)
	}
	if opts.Border != 0 && opts.Border != libraryBorder {
		return nil, fmt.Errorf("border must be 0 or %d, got %d", libraryBorder, opts.Border)
	}
	if opts.Foreground == nil {
		opts.Foreground = color.Black
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	return &Encoder{opts: opts}, nil
}

// EncodePNG renders content into a PNG image
func (e *Encoder) EncodePNG(content string) ([]byte, error) {
	code, err := e.newCode(content)
	if err != nil {
		return nil, err
	}

	code.ForegroundColor = e.opts.Foreground
	code.BackgroundColor = e.opts.Background
	code.DisableBorder = e.opts.Border == 0

	// A negative size is interpreted as pixels per module.
	png, err := code.PNG(-e.opts.BoxSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}

// newCode picks the smallest version at or above the configured one that fits content.
func (e *Encoder) newCode(content string) (*qrcode.QRCode, error) {
	code, err := qrcode.New(content, e.opts.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	if code.VersionNumber >= e.opts.Version {
		return code, nil
	}

	code, err = qrcode.NewWithForcedVersion(content, e.opts.Version, e.opts.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return code, nil
}
