package domain

import "time"

// EventType identifies what happened
type EventType string

const (
	EventAudioReady       EventType = "audio_ready"
	EventConversionFailed EventType = "conversion_failed"
	EventQRGenerated      EventType = "qr_generated"
)

// Event is broadcast to subscribers whenever a conversion finishes
type Event struct {
	ID              string    `json:"id"`
	Type            EventType `json:"type"`
	Filename        string    `json:"filename,omitempty"`
	DurationSeconds float64   `json:"duration_seconds,omitempty"`
	ContentType     string    `json:"content_type,omitempty"`
	Error           string    `json:"error,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}
