package domain

import (
	"errors"
	"fmt"
)

// Fixed messages reported to clients for rejected uploads.
const (
	MsgNoFilePart        = "No file part"
	MsgNoSelectedFile    = "No selected file"
	MsgInvalidFileFormat = "Invalid file format"
)

// ErrEmptyText is returned when a PDF yields no extractable text.
var ErrEmptyText = errors.New("Extracted text is empty")

// ClientError represents bad or missing input supplied by the caller
type ClientError struct {
	Message string
}

func (e *ClientError) Error() string {
	return e.Message
}

// NewClientError creates a client error with a fixed message
func NewClientError(message string) *ClientError {
	return &ClientError{Message: message}
}

// ProcessingError wraps a failure that happened while working on a
// well-formed request: extraction, synthesis or encoding.
type ProcessingError struct {
	Stage    string
	Filename string
	Err      error
}

func (e *ProcessingError) Error() string {
	return e.Err.Error()
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// Processing stages
const (
	StageSave       = "save"
	StageExtraction = "extraction"
	StageSynthesis  = "synthesis"
	StageEncoding   = "encoding"
)

// NewProcessingError wraps err with the stage and filename it belongs to
func NewProcessingError(stage, filename string, err error) *ProcessingError {
	return &ProcessingError{Stage: stage, Filename: filename, Err: err}
}

// IsClientError reports whether err carries a client error and returns it
func IsClientError(err error) (*ClientError, bool) {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsProcessingError reports whether err carries a processing error and returns it
func IsProcessingError(err error) (*ProcessingError, bool) {
	var pe *ProcessingError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// FailureMessage renders the message returned to clients for a failed upload.
func FailureMessage(err error) string {
	return fmt.Sprintf("Failed to process the PDF: %s", err.Error())
}
