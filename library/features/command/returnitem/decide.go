package returnitem

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const failureEventType = core.ReturningItemFailedEventType

// Decide implements the business logic to determine whether a borrowed item should be returned.
//
// Business Rules:
//
//	GIVEN: An item checked out by the member
//	WHEN: ReturnItem command is received
//	THEN: ItemReturned event is generated with DaysLate and FineAccruedCents = max(0, DaysLate * daily rate)
//	AND: HoldFulfilled for the next hold in line, if any
//	ERROR: "item is borrowed by another member", "item not in catalog", "item is not checked out"
//	IDEMPOTENCY: If the member already returned the item, no event is generated
func Decide(history core.DomainEvents, command Command, policy core.LendingPolicy) core.DecisionResult {
	itemID := command.ItemID.String()
	memberID := command.MemberID.String()
	at := command.OccurredAt

	item := core.ProjectItemCirculation(history, itemID)

	if borrow := item.OpenBorrow; borrow != nil {
		if borrow.MemberID != memberID {
			return core.Conflict(failureEventType, itemID, memberID, "item is borrowed by another member", at)
		}

		daysLate := core.DaysLate(borrow.DueDate, at)
		returned := core.BuildItemReturned(
			borrow.BorrowID,
			command.ItemID,
			command.MemberID,
			daysLate,
			policy.Fine(daysLate),
			at,
		)

		if next, ok := item.Queue().Next(); ok && !item.IsReserved() {
			return core.SuccessDecision(returned, core.BuildHoldFulfilled(next, at))
		}

		return core.SuccessDecision(returned)
	}

	switch {
	case item.LastBorrow != nil && item.LastBorrow.MemberID == memberID:
		return core.IdempotentDecision()

	case !item.InCatalog:
		return core.NotFound(failureEventType, itemID, memberID, "item not in catalog", at)

	default:
		return core.Conflict(failureEventType, itemID, memberID, "item is not checked out", at)
	}
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
