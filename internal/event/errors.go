package event

import (
	"errors"
	"fmt"
)

// Errors returned by the bus.
var (
	// ErrNilHandler indicates a nil handler was passed to Subscribe.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrInvalidTopic indicates an empty or malformed topic pattern.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrSubscriptionNotFound indicates the subscription is not registered.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrHandlerPanic indicates a handler panicked during delivery.
	ErrHandlerPanic = errors.New("handler panicked")
)

// HandlerError wraps an error returned by a single handler.
type HandlerError struct {
	SubscriptionID uint64
	Topic          string
	Err            error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %d for %s: %v", e.SubscriptionID, e.Topic, e.Err)
}

// Unwrap returns the underlying error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}
