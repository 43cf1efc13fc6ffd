package repositories

import "github.com/satriahrh/pdfvoice/domain"

// EventPublisher fans events out to interested subscribers
type EventPublisher interface {
	Publish(event domain.Event)
}
