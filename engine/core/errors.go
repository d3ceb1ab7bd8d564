package core

import (
	"errors"
	"fmt"
)

// ErrInvalidComponent is wrapped by every ValidationError
var ErrInvalidComponent = errors.New("invalid component")

// ValidationError reports a component field that violates its invariant
type ValidationError struct {
	Component ComponentType
	Field     string
	Reason    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Component, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidComponent }

func invalid(t ComponentType, field, reason string) error {
	return &ValidationError{Component: t, Field: field, Reason: reason}
}
