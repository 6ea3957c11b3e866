package checkoutitem_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/internal/testutil"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/checkoutitem"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

func Test_CommandHandler_Handle_SecondCheckoutOfTheSameItemFails(t *testing.T) {
	// setup
	ctx := context.Background()
	es := testutil.GivenEmptyEventStore()
	itemID := testutil.GivenUniqueID(t)
	memberID := testutil.GivenUniqueID(t)
	testutil.GivenItemInCatalog(t, es, itemID, "Dune", testutil.FixedClock)
	testutil.GivenMemberRegistered(t, es, memberID, "student", testutil.FixedClock)

	policy := core.DefaultLendingPolicy()
	policy.GroupPeriods["student"] = 21 * 24 * time.Hour
	handler := checkoutitem.NewCommandHandler(es, checkoutitem.WithLendingPolicy(policy))

	// act
	first, err := handler.Handle(ctx, checkoutitem.BuildCommand(testutil.GivenUniqueID(t), itemID, memberID, testutil.FixedClock))
	require.NoError(t, err)

	second, secondErr := handler.Handle(ctx, checkoutitem.BuildCommand(testutil.GivenUniqueID(t), itemID, memberID, testutil.FixedClock))

	// assert
	require.Len(t, first.Events, 1)
	assert.Equal(t, testutil.FixedClock.Add(21*24*time.Hour), first.Events[0].(core.ItemCheckedOut).DueDate)
	assert.ErrorIs(t, secondErr, core.ErrConflict)
	assert.True(t, second.HasEvent(core.CheckingOutItemFailedEventType))
}
