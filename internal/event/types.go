package event

import (
	"context"
	"time"

	"github.com/dshills/inlinechrome/internal/event/topic"
)

// Well-known topics.
const (
	TopicRepositionPopups topic.Topic = "ui.popups.reposition"
	TopicHeaderShown      topic.Topic = "header.shown"
	TopicHeaderHidden     topic.Topic = "header.hidden"
	TopicHeaderMode       topic.Topic = "header.mode.changed"
)

// Priority determines handler execution order.
// Lower values execute first.
type Priority int

const (
	// PriorityCritical runs before anything else.
	PriorityCritical Priority = 0

	// PriorityHigh is for components other handlers depend on.
	PriorityHigh Priority = 100

	// PriorityNormal is the default.
	PriorityNormal Priority = 200

	// PriorityLow is for logging and diagnostics.
	PriorityLow Priority = 300
)

// String returns a human-readable priority name.
func (p Priority) String() string {
	switch {
	case p <= PriorityCritical:
		return "critical"
	case p <= PriorityHigh:
		return "high"
	case p <= PriorityNormal:
		return "normal"
	default:
		return "low"
	}
}

// Event is a published notification.
type Event struct {
	Topic     topic.Topic
	Payload   any
	Source    string
	Timestamp time.Time
}

// NewEvent creates an event stamped with the current time.
func NewEvent(t topic.Topic, payload any, source string) Event {
	return Event{Topic: t, Payload: payload, Source: source, Timestamp: time.Now()}
}

// Handler is the interface for event handlers.
type Handler interface {
	Handle(ctx context.Context, ev Event) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, ev Event) error

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

// ModeChanged is the payload of TopicHeaderMode.
type ModeChanged struct {
	From string
	To   string
}
