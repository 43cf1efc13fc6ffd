// Package pdf extracts the text layer of PDF documents.
//
// Only embedded text is read; scanned pages yield no text.
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/satriahrh/pdfvoice/domain/repositories"
)

const previewLength = 100

// Extractor implements TextExtractor using ledongthuc/pdf
type Extractor struct {
	logger *zap.Logger
}

// Ensure Extractor implements the TextExtractor interface
var _ repositories.TextExtractor = (*Extractor)(nil)

// NewExtractor creates a new PDF text extractor
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// ExtractText reads every page in document order and concatenates their
// plain text with no separator.
func (e *Extractor) ExtractText(ctx context.Context, path string) (text string, err error) {
	e.logger.Debug("Extracting text from PDF", zap.String("path", path))

	// The parser panics on some malformed input.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("failed to parse PDF %s: %v", path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer f.Close()

	fonts := make(map[string]*pdf.Font)
	var sb strings.Builder

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}

		pageText, err := page.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d of %s: %w", i, path, err)
		}

		e.logger.Debug("Extracted text from page",
			zap.Int("page", i),
			zap.String("preview", preview(pageText)))

		sb.WriteString(pageText)
	}

	return sb.String(), nil
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= previewLength {
		return s
	}
	return string(r[:previewLength]) + "..."
}
