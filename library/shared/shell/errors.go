package shell

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// IsCancellationError reports whether err stems from a canceled context.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsTimeoutError reports whether err stems from an exceeded context deadline.
func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// IsConcurrencyConflictError reports whether err is an optimistic concurrency conflict.
func IsConcurrencyConflictError(err error) bool {
	return errors.Is(err, eventstore.ErrConcurrencyConflict)
}
