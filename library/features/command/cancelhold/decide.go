package cancelhold

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const failureEventType = core.CancelingHoldFailedEventType

// Decide implements the business logic to determine whether a hold should be cancelled.
//
// Business Rules:
//
//	GIVEN: A member with an active hold on the item, or a fulfilled hold that still reserves the item
//	WHEN: CancelHold command is received
//	THEN: HoldCancelled event is generated
//	AND: HoldFulfilled for the next hold in line if the cancelled hold reserved the item
//	ERROR: "no hold for this member" if the member never requested a hold on the item
//	ERROR: "hold already collected" if the member checked out the item of a fulfilled hold
//	IDEMPOTENCY: If the member's latest hold is already cancelled, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	itemID := command.ItemID.String()
	memberID := command.MemberID.String()
	at := command.OccurredAt

	item := core.ProjectItemCirculation(history, itemID)

	hold, found := item.LatestHoldOf(memberID)
	if !found {
		return core.NotFound(failureEventType, itemID, memberID, "no hold for this member", at)
	}

	switch hold.Status {
	case core.HoldStatusCancelled:
		return core.IdempotentDecision()

	case core.HoldStatusFulfilled:
		if item.ReservedHoldID != hold.HoldID {
			return core.Conflict(failureEventType, itemID, memberID, "hold already collected", at)
		}

		cancelled := core.BuildHoldCancelled(hold, at)

		if next, ok := item.Queue().Next(); ok && item.Status == core.ItemStatusAvailable {
			return core.SuccessDecision(cancelled, core.BuildHoldFulfilled(next, at))
		}

		return core.SuccessDecision(cancelled)

	default:
		return core.SuccessDecision(core.BuildHoldCancelled(hold, at))
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
