package shell

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// QueryHistory queries filter with strong consistency and maps the result to domain events.
func QueryHistory(
	ctx context.Context,
	eventStore QueriesEvents,
	filter eventstore.Filter,
) (core.DomainEvents, eventstore.MaxSequenceNumberUint, error) {

	storableEvents, maxSequenceNumber, err := eventStore.Query(eventstore.WithStrongConsistency(ctx), filter)
	if err != nil {
		return nil, 0, err
	}

	history, err := DomainEventsFrom(storableEvents)
	if err != nil {
		return nil, 0, err
	}

	return history, maxSequenceNumber, nil
}

// AppendDecision appends the events of result in one conditional append and returns the
// business error of result, if any. Idempotent results append nothing.
func AppendDecision(
	ctx context.Context,
	eventStore EventStore,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	result core.DecisionResult,
) error {

	if !result.HasEventToAppend() {
		return nil
	}

	storableEvents, err := StorableEventsFrom(result.Events, NewCommandMetadata())
	if err != nil {
		return err
	}

	if err = eventStore.Append(ctx, filter, expectedMaxSequenceNumber, storableEvents...); err != nil {
		return err
	}

	return result.HasError()
}

// HandleWithRetry runs decideAndAppend with retry and builds the HandlerResult from the
// last decision.
func HandleWithRetry(
	ctx context.Context,
	decideAndAppend func(ctx context.Context) (core.DecisionResult, error),
	retryOptions ...RetryOption,
) (HandlerResult, error) {

	var last core.DecisionResult

	retryMetrics, err := RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		result, execErr := decideAndAppend(retryCtx)
		last = result

		return execErr
	}, retryOptions...)

	if err == nil && last.IsIdempotent() {
		return NewIdempotentResult(retryMetrics), nil
	}

	if err != nil {
		var ruleErr core.BusinessRuleError
		if errors.As(err, &ruleErr) {
			return NewErrorResult(retryMetrics, last.Events), err // the failure event was appended
		}

		return NewErrorResult(retryMetrics, nil), err
	}

	return NewSuccessResult(retryMetrics, last.Events), nil
}
