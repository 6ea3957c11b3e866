package removecatalogitem

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const failureEventType = core.RemovingItemFromCatalogFailedEventType

// Decide implements the business logic to determine whether an item should be removed from the catalog.
//
// Business Rules:
//
//	GIVEN: An item in the catalog that is available, not reserved and has no active holds
//	WHEN: RemoveCatalogItem command is received
//	THEN: ItemRemovedFromCatalog event is generated
//	ERROR: "item not in catalog" if the item was never added
//	ERROR: "item is checked out", "item is reserved" or "item has active holds" otherwise
//	IDEMPOTENCY: If the item was already removed, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	itemID := command.ItemID.String()
	s := core.ProjectItemCirculation(history, itemID)

	if !s.InCatalog {
		if s.Removed {
			return core.IdempotentDecision()
		}

		return core.NotFound(failureEventType, itemID, "", "item not in catalog", command.OccurredAt)
	}

	switch {
	case s.Status == core.ItemStatusCheckedOut:
		return core.Conflict(failureEventType, itemID, "", "item is checked out", command.OccurredAt)

	case s.IsReserved():
		return core.Conflict(failureEventType, itemID, "", "item is reserved", command.OccurredAt)

	case len(s.Queue()) > 0:
		return core.Conflict(failureEventType, itemID, "", "item has active holds", command.OccurredAt)
	}

	return core.SuccessDecision(core.BuildItemRemovedFromCatalog(command.ItemID, command.OccurredAt))
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
