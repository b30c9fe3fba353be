package app

import (
	"errors"
	"fmt"
)

// Session errors.
var (
	// ErrClosed is returned when using a closed session.
	ErrClosed = errors.New("session closed")

	// ErrNoTarget is returned when a session is created without a target element.
	ErrNoTarget = errors.New("session has no target element")

	// ErrNoOptions is returned when a session is created without an options store.
	ErrNoOptions = errors.New("session has no options store")
)

// InitError reports which component failed while building a session.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
