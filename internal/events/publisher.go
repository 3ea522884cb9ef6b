package events

import (
	"context"
	"time"
)

// Event topics
const (
	TopicAuditLog      = "training.audit-log"
	TopicNotifications = "training.notifications"
	TopicEvaluations   = "training.evaluations"
)

// Event types
const (
	EventEntityCreated       = "entity.created"
	EventEntityUpdated       = "entity.updated"
	EventEntityDeleted       = "entity.deleted"
	EventUserLogin           = "user.login"
	EventNotificationCreated = "notification.created"
	EventEvaluationSubmitted = "evaluation.submitted"
	EventEvaluationAssigned  = "evaluation.assigned"
)

// Event is the envelope published to the message broker.
type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Source    string         `json:"source"`
	Version   string         `json:"version"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// EventPublisher publishes domain events. Publishing happens after the
// primary transaction commits; a publish failure must never fail the
// request that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event Event) error
	Close() error
}
