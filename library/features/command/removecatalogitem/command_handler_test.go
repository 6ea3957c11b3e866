package removecatalogitem_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/internal/testutil"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/removecatalogitem"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

func Test_CommandHandler_Handle_AppendsFailureEvent_WhenItemIsUnknown(t *testing.T) {
	ctx := context.Background()
	es := testutil.GivenEmptyEventStore()
	handler := removecatalogitem.NewCommandHandler(es)

	result, err := handler.Handle(ctx, removecatalogitem.BuildCommand(testutil.GivenUniqueID(t), testutil.FixedClock))

	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.True(t, result.HasEvent(core.RemovingItemFromCatalogFailedEventType))
	assert.Equal(t, core.RemovingItemFromCatalogFailedEventType, testutil.LastEventType(t, es))
}

func Test_CommandHandler_Handle_RemovesItem(t *testing.T) {
	ctx := context.Background()
	es := testutil.GivenEmptyEventStore()
	itemID := testutil.GivenUniqueID(t)
	testutil.GivenItemInCatalog(t, es, itemID, "Dune", testutil.FixedClock)
	handler := removecatalogitem.NewCommandHandler(es)

	result, err := handler.Handle(ctx, removecatalogitem.BuildCommand(itemID, testutil.FixedClock.Add(time.Hour)))
	require.NoError(t, err)
	assert.True(t, result.HasEvent(core.ItemRemovedFromCatalogEventType))

	result, err = handler.Handle(ctx, removecatalogitem.BuildCommand(itemID, testutil.FixedClock.Add(2*time.Hour)))
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Equal(t, 2, es.Len())
}
