package repositories

import "context"

// TextExtractor pulls plain text out of documents on disk
type TextExtractor interface {
	// ExtractText returns the text of every page, in order, with no separator
	ExtractText(ctx context.Context, path string) (string, error)
}
