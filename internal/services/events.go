package services

import (
	"github.com/rs/zerolog"
)

// Routing keys of the domain events the services publish.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventReviewSubmitted    = "review.submitted"
	EventReviewModerated    = "review.moderated"
)

// EventPublisher sends domain events to the message broker.
type EventPublisher interface {
	Publish(routingKey string, payload interface{}) error
}

// publishEvent sends an event if a publisher is configured. Failures are
// logged only; the triggering write has already committed.
func publishEvent(publisher EventPublisher, logger zerolog.Logger, routingKey string, payload interface{}) {
	if publisher == nil {
		logger.Debug().Str("routingKey", routingKey).Msg("No event publisher configured, skipping event")
		return
	}
	if err := publisher.Publish(routingKey, payload); err != nil {
		logger.Warn().Err(err).Str("routingKey", routingKey).Msg("Failed to publish event")
	}
}
