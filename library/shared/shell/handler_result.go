package shell

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// HandlerResult represents the outcome of a command handler execution.
// It captures business outcomes and execution metadata without coupling the handler
// to specific observability implementations.
type HandlerResult struct {
	// Idempotent indicates that no state change was needed. This is a business outcome, not an error.
	Idempotent bool

	// Events are the domain events that were appended, including a failure event on business errors.
	Events core.DomainEvents

	// RetryAttempts is the total number of attempts made (1 for no retries).
	RetryAttempts int

	// TotalRetryDelay is the cumulative time spent in backoff delays.
	TotalRetryDelay time.Duration

	// LastErrorType: "none", "concurrency_conflict", "context_canceled", "context_deadline_exceeded", "other"
	LastErrorType string

	// RetriesExhausted is true when all attempts failed with a retryable error.
	RetriesExhausted bool
}

func newResult(retryMetrics RetryMetrics, idempotent bool, events core.DomainEvents) HandlerResult {
	return HandlerResult{
		Idempotent:       idempotent,
		Events:           events,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}

// NewSuccessResult creates a HandlerResult for operations that appended events.
func NewSuccessResult(retryMetrics RetryMetrics, events core.DomainEvents) HandlerResult {
	return newResult(retryMetrics, false, events)
}

// NewIdempotentResult creates a HandlerResult for idempotent operations.
func NewIdempotentResult(retryMetrics RetryMetrics) HandlerResult {
	return newResult(retryMetrics, true, nil)
}

// NewErrorResult creates a HandlerResult for failed operations. events holds the failure
// event if one was appended.
func NewErrorResult(retryMetrics RetryMetrics, events core.DomainEvents) HandlerResult {
	return newResult(retryMetrics, false, events)
}

// HasEvent reports whether an event of eventType was appended.
func (r HandlerResult) HasEvent(eventType core.EventTypeString) bool {
	for _, event := range r.Events {
		if event.EventType() == eventType {
			return true
		}
	}

	return false
}
