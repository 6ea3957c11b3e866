package catalogitems_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/internal/testutil"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/catalogitems"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

func Test_QueryHandler_Handle(t *testing.T) {
	// setup
	ctx := context.Background()
	es := testutil.GivenEmptyEventStore()
	testutil.GivenItemInCatalog(t, es, testutil.GivenUniqueID(t), "Dune", testutil.FixedClock)
	testutil.GivenEventsAppended(t, es, core.BuildCommandFailed(core.CheckingOutItemFailedEventType, "x", "y", "nope", testutil.FixedClock))
	handler := catalogitems.NewQueryHandler(es)

	// act
	result, err := handler.Handle(ctx, catalogitems.BuildQuery("", "", "", "", 1, 20))

	// assert
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Dune", result.Items[0].Title)
	assert.Equal(t, uint(1), result.GetSequenceNumber())
}
