package shell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/memengine"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

func Test_HandleWithRetry_Outcomes(t *testing.T) {
	ctx := context.Background()
	es := memengine.NewEventStore()
	filter := eventstore.BuildEventFilter().MatchingAnyEvent()
	at := time.Unix(0, 0).UTC()
	itemID := uuid.New()

	decideAndAppend := func(result core.DecisionResult) func(ctx context.Context) (core.DecisionResult, error) {
		return func(ctx context.Context) (core.DecisionResult, error) {
			_, maxSeq, err := shell.QueryHistory(ctx, es, filter)
			if err != nil {
				return core.DecisionResult{}, err
			}

			return result, shell.AppendDecision(ctx, es, filter, maxSeq, result)
		}
	}

	// success
	success := core.SuccessDecision(core.BuildItemAddedToCatalog(itemID, "Dune", core.ItemTypeBook, at))
	result, err := shell.HandleWithRetry(ctx, decideAndAppend(success))
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.True(t, result.HasEvent(core.ItemAddedToCatalogEventType))
	assert.Equal(t, 1, result.RetryAttempts)

	// idempotent
	result, err = shell.HandleWithRetry(ctx, decideAndAppend(core.IdempotentDecision()))
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Empty(t, result.Events)

	// business error
	conflict := core.Conflict(core.RemovingItemFromCatalogFailedEventType, itemID.String(), "", "item is checked out", at)
	result, err = shell.HandleWithRetry(ctx, decideAndAppend(conflict))
	assert.ErrorIs(t, err, core.ErrConflict)
	assert.True(t, result.HasEvent(core.RemovingItemFromCatalogFailedEventType))

	assert.Equal(t, 2, es.Len())
}

func Test_HandleWithRetry_InfrastructureError_HasNoEvents(t *testing.T) {
	infraErr := errors.New("connection refused")

	result, err := shell.HandleWithRetry(context.Background(), func(_ context.Context) (core.DecisionResult, error) {
		return core.Conflict(core.PayingFineFailedEventType, "", "m-1", "no balance", time.Now()), infraErr
	})

	assert.ErrorIs(t, err, infraErr)
	assert.Empty(t, result.Events)
}
