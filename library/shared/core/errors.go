package core

import (
	"errors"
)

// Kinds of business rule violations. A BusinessRuleError unwraps to exactly one of them.
var (
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// BusinessRuleError is returned by command handlers when Decide rejected a command.
type BusinessRuleError struct {
	Kind      error
	EventType EventTypeString
	Reason    string
}

// NewConflict builds a BusinessRuleError of kind ErrConflict.
func NewConflict(eventType EventTypeString, reason string) BusinessRuleError {
	return BusinessRuleError{Kind: ErrConflict, EventType: eventType, Reason: reason}
}

// NewNotFound builds a BusinessRuleError of kind ErrNotFound.
func NewNotFound(eventType EventTypeString, reason string) BusinessRuleError {
	return BusinessRuleError{Kind: ErrNotFound, EventType: eventType, Reason: reason}
}

// NewValidation builds a BusinessRuleError of kind ErrValidation.
func NewValidation(eventType EventTypeString, reason string) BusinessRuleError {
	return BusinessRuleError{Kind: ErrValidation, EventType: eventType, Reason: reason}
}

func (e BusinessRuleError) Error() string {
	return e.EventType + ": " + e.Reason
}

func (e BusinessRuleError) Unwrap() error {
	return e.Kind
}
