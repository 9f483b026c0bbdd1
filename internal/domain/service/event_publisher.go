package service

import (
	"context"
	"time"
)

// Registration lifecycle event types.
const (
	EventRegistered       = "registered"
	EventEndpointAssigned = "endpoint_assigned"
	EventUnregistered     = "unregistered"
)

// RegistrationEvent records a lifecycle change on a registration for the
// audit stream.
type RegistrationEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	Type       string    `json:"type"`
	Token      string    `json:"token"`
	AuthID     string    `json:"auth_id,omitempty"`
	Endpoint   string    `json:"endpoint,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing registration events
// to a message queue. Publishing is best-effort; failures never fail the
// store operation that triggered the event.
type EventPublisher interface {
	// PublishRegistrationEvent publishes a registration lifecycle event.
	PublishRegistrationEvent(ctx context.Context, event *RegistrationEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
