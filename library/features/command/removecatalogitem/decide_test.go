package removecatalogitem_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/features/command/removecatalogitem"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

func Test_Decide(t *testing.T) {
	itemID := uuid.New()
	memberID := uuid.New()
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	added := core.BuildItemAddedToCatalog(itemID, "Dune", core.ItemTypeBook, t0)
	checkedOut := core.BuildItemCheckedOut(uuid.New(), itemID, memberID, t0.Add(14*24*time.Hour), t0.Add(time.Minute))
	holdRequested := core.BuildHoldRequested(uuid.New(), itemID, uuid.New(), t0.Add(2*time.Minute))

	tests := []struct {
		name        string
		history     core.DomainEvents
		wantOutcome string
		wantErr     error
		wantReason  string
	}{
		{name: "available item is removed", history: core.DomainEvents{added}, wantOutcome: "success"},
		{name: "unknown item", history: core.DomainEvents{}, wantOutcome: "error", wantErr: core.ErrNotFound, wantReason: "item not in catalog"},
		{
			name:        "removed item",
			history:     core.DomainEvents{added, core.BuildItemRemovedFromCatalog(itemID, t0.Add(time.Minute))},
			wantOutcome: "idempotent",
		},
		{name: "checked out item", history: core.DomainEvents{added, checkedOut}, wantOutcome: "error", wantErr: core.ErrConflict, wantReason: "item is checked out"},
		{
			name:        "item with active holds",
			history:     core.DomainEvents{added, checkedOut, holdRequested, core.BuildItemReturned(checkedOut.BorrowID, itemID, memberID, 0, 0, t0.Add(time.Hour)), core.BuildHoldCancelled(holdOf(holdRequested), t0.Add(2*time.Hour)), core.BuildHoldRequested(uuid.New(), itemID, uuid.New(), t0.Add(3*time.Hour))},
			wantOutcome: "error",
			wantErr:     core.ErrConflict,
			wantReason:  "item has active holds",
		},
		{
			name:        "reserved item",
			history:     core.DomainEvents{added, checkedOut, holdRequested, core.BuildItemReturned(checkedOut.BorrowID, itemID, memberID, 0, 0, t0.Add(time.Hour)), core.BuildHoldFulfilled(holdOf(holdRequested), t0.Add(time.Hour))},
			wantOutcome: "error",
			wantErr:     core.ErrConflict,
			wantReason:  "item is reserved",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := removecatalogitem.Decide(tc.history, removecatalogitem.BuildCommand(itemID, t0.Add(24*time.Hour)))

			assert.Equal(t, tc.wantOutcome, result.Outcome)

			if tc.wantErr != nil {
				assert.ErrorIs(t, result.HasError(), tc.wantErr)
				require.Len(t, result.Events, 1)
				failed, ok := result.Events[0].(core.CommandFailed)
				require.True(t, ok, "Expected CommandFailed event")
				assert.Equal(t, core.RemovingItemFromCatalogFailedEventType, failed.EventType())
				assert.Equal(t, tc.wantReason, failed.FailureInfo)
			}
		})
	}
}

func holdOf(e core.HoldRequested) core.Hold {
	return core.Hold{HoldID: e.HoldID, ItemID: e.ItemID, MemberID: e.MemberID, CreatedAt: e.OccurredAt}
}
