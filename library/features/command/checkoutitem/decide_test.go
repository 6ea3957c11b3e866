package checkoutitem_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/features/command/checkoutitem"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func Test_Decide_Success_WithDefaultLendingPeriod(t *testing.T) {
	// arrange
	itemID, memberID, borrowID := uuid.New(), uuid.New(), uuid.New()
	history := core.DomainEvents{
		core.BuildItemAddedToCatalog(itemID, "Dune", core.ItemTypeBook, t0),
		core.BuildMemberRegistered(memberID, "Ada", "", t0),
	}
	now := t0.Add(time.Hour)

	// act
	result := checkoutitem.Decide(history, checkoutitem.BuildCommand(borrowID, itemID, memberID, now), core.DefaultLendingPolicy())

	// assert
	assert.Equal(t, "success", result.Outcome)
	require.Len(t, result.Events, 1)
	checkedOut, ok := result.Events[0].(core.ItemCheckedOut)
	require.True(t, ok, "Expected ItemCheckedOut event")
	assert.Equal(t, borrowID.String(), checkedOut.BorrowID)
	assert.Equal(t, now.Add(14*24*time.Hour), checkedOut.DueDate)
	assert.Equal(t, now, checkedOut.OccurredAt)
}

func Test_Decide_Success_UsesGroupLendingPeriod(t *testing.T) {
	itemID, memberID := uuid.New(), uuid.New()
	history := core.DomainEvents{
		core.BuildItemAddedToCatalog(itemID, "Dune", core.ItemTypeBook, t0),
		core.BuildMemberRegistered(memberID, "Ada", "staff", t0),
	}
	policy := core.DefaultLendingPolicy()
	policy.GroupPeriods["staff"] = 28 * 24 * time.Hour

	result := checkoutitem.Decide(history, checkoutitem.BuildCommand(uuid.New(), itemID, memberID, t0), policy)

	require.Len(t, result.Events, 1)
	assert.Equal(t, t0.Add(28*24*time.Hour), result.Events[0].(core.ItemCheckedOut).DueDate)
}

func Test_Decide_Error_WhenCheckedOutTwice(t *testing.T) {
	itemID, memberID := uuid.New(), uuid.New()
	history := core.DomainEvents{
		core.BuildItemAddedToCatalog(itemID, "Dune", core.ItemTypeBook, t0),
		core.BuildMemberRegistered(memberID, "Ada", "", t0),
	}
	first := checkoutitem.Decide(history, checkoutitem.BuildCommand(uuid.New(), itemID, memberID, t0), core.DefaultLendingPolicy())
	history = append(history, first.Events...)

	second := checkoutitem.Decide(history, checkoutitem.BuildCommand(uuid.New(), itemID, memberID, t0.Add(time.Minute)), core.DefaultLendingPolicy())

	assert.ErrorIs(t, second.HasError(), core.ErrConflict)
	require.Len(t, second.Events, 1)
	assert.Equal(t, "item is checked out", second.Events[0].(core.CommandFailed).FailureInfo)
}

func Test_Decide_HoldRules(t *testing.T) {
	itemID, memberID, otherID, borrowerID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	base := func() core.DomainEvents {
		return core.DomainEvents{
			core.BuildItemAddedToCatalog(itemID, "Dune", core.ItemTypeBook, t0),
			core.BuildMemberRegistered(memberID, "Ada", "", t0),
		}
	}
	borrowed := core.BuildItemCheckedOut(uuid.New(), itemID, borrowerID, t0.Add(14*24*time.Hour), t0)
	returned := core.BuildItemReturned(borrowed.BorrowID, itemID, borrowerID, 0, 0, t0.Add(time.Hour))
	ownHold := core.BuildHoldRequested(uuid.New(), itemID, memberID, t0.Add(2*time.Minute))
	otherHold := core.BuildHoldRequested(uuid.New(), itemID, otherID, t0.Add(time.Minute))

	tests := []struct {
		name       string
		history    core.DomainEvents
		wantTypes  []string
		wantReason string
	}{
		{
			name:      "reserved for the member",
			history:   append(base(), borrowed, ownHold, returned, core.BuildHoldFulfilled(holdOf(ownHold), t0.Add(time.Hour))),
			wantTypes: []string{core.ItemCheckedOutEventType},
		},
		{
			name:       "reserved for another member",
			history:    append(base(), borrowed, otherHold, returned, core.BuildHoldFulfilled(holdOf(otherHold), t0.Add(time.Hour))),
			wantTypes:  []string{core.CheckingOutItemFailedEventType},
			wantReason: "item is reserved for another member",
		},
		{
			name:      "member is next in line on an unreserved item",
			history:   append(base(), borrowed, ownHold, returned),
			wantTypes: []string{core.HoldFulfilledEventType, core.ItemCheckedOutEventType},
		},
		{
			name:       "another member is next in line",
			history:    append(base(), borrowed, otherHold, ownHold, returned),
			wantTypes:  []string{core.CheckingOutItemFailedEventType},
			wantReason: "another member is next in line",
		},
		{
			name:       "unregistered member",
			history:    core.DomainEvents{core.BuildItemAddedToCatalog(itemID, "Dune", core.ItemTypeBook, t0)},
			wantTypes:  []string{core.CheckingOutItemFailedEventType},
			wantReason: "member not registered",
		},
		{
			name:       "unknown item",
			history:    core.DomainEvents{core.BuildMemberRegistered(memberID, "Ada", "", t0)},
			wantTypes:  []string{core.CheckingOutItemFailedEventType},
			wantReason: "item not in catalog",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := checkoutitem.Decide(tc.history, checkoutitem.BuildCommand(uuid.New(), itemID, memberID, t0.Add(2*time.Hour)), core.DefaultLendingPolicy())

			require.Len(t, result.Events, len(tc.wantTypes))
			for i, wantType := range tc.wantTypes {
				assert.Equal(t, wantType, result.Events[i].EventType())
			}

			if tc.wantReason != "" {
				assert.Error(t, result.HasError())
				assert.Equal(t, tc.wantReason, result.Events[0].(core.CommandFailed).FailureInfo)
			}
		})
	}
}

func holdOf(e core.HoldRequested) core.Hold {
	return core.Hold{HoldID: e.HoldID, ItemID: e.ItemID, MemberID: e.MemberID, CreatedAt: e.OccurredAt}
}
