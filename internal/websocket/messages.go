package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/satriahrh/pdfvoice/domain"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Supported message types
const (
	MessageTypeEvent MessageType = "event"
	MessageTypePing  MessageType = "ping"
	MessageTypePong  MessageType = "pong"
	MessageTypeError MessageType = "error"
)

// BaseMessage defines the common structure for all WebSocket messages
type BaseMessage struct {
	Type      MessageType `json:"type"`
	Timestamp string      `json:"timestamp"`
}

// EventMessage carries a domain event to subscribers
type EventMessage struct {
	BaseMessage
	Event domain.Event `json:"event"`
}

// PongMessage answers a ping
type PongMessage struct {
	BaseMessage
}

// ErrorMessage reports a problem with a message sent by the client
type ErrorMessage struct {
	BaseMessage
	Message string `json:"message"`
}

// NewEventMessage wraps event for the wire
func NewEventMessage(event domain.Event) *EventMessage {
	return &EventMessage{
		BaseMessage: newBase(MessageTypeEvent),
		Event:       event,
	}
}

// NewPongMessage creates a pong reply
func NewPongMessage() *PongMessage {
	return &PongMessage{BaseMessage: newBase(MessageTypePong)}
}

// NewErrorMessage creates an error reply
func NewErrorMessage(message string) *ErrorMessage {
	return &ErrorMessage{
		BaseMessage: newBase(MessageTypeError),
		Message:     message,
	}
}

// ParseMessageType reads only the type field of an incoming message
func ParseMessageType(data []byte) (MessageType, error) {
	var base BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		return "", fmt.Errorf("failed to parse message: %w", err)
	}
	if base.Type == "" {
		return "", fmt.Errorf("message missing type field")
	}
	return base.Type, nil
}

func newBase(t MessageType) BaseMessage {
	return BaseMessage{
		Type:      t,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
