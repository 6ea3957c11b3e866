package fulfillhold

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const failureEventType = core.FulfillingHoldFailedEventType

// Decide implements the business logic to determine whether the next hold should be fulfilled.
//
// Business Rules:
//
//	GIVEN: An available catalog item that is not reserved and has active holds
//	WHEN: FulfillHold command is received
//	THEN: HoldFulfilled event is generated for the next hold in line
//	ERROR: "item not in catalog", "item is checked out"
//	IDEMPOTENCY: If the item is already reserved or nobody waits for it, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	itemID := command.ItemID.String()
	item := core.ProjectItemCirculation(history, itemID)

	switch {
	case !item.InCatalog:
		return core.NotFound(failureEventType, itemID, "", "item not in catalog", command.OccurredAt)

	case item.Status == core.ItemStatusCheckedOut:
		return core.Conflict(failureEventType, itemID, "", "item is checked out", command.OccurredAt)

	case item.IsReserved():
		return core.IdempotentDecision()
	}

	next, ok := item.Queue().Next()
	if !ok {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildHoldFulfilled(next, command.OccurredAt))
}

// BuildEventFilter creates the filter for querying all circulation events of the specified item.
func BuildEventFilter(itemID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.ItemAddedToCatalogEventType,
			core.ItemRemovedFromCatalogEventType,
			core.ItemCheckedOutEventType,
			core.ItemReturnedEventType,
			core.HoldRequestedEventType,
			core.HoldCancelledEventType,
			core.HoldFulfilledEventType,
		).
		AndAnyPredicateOf(eventstore.P(core.PayloadKeyItemID, itemID.String())).
		Finalize()
}
