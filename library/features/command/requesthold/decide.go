package requesthold

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const failureEventType = core.RequestingHoldFailedEventType

// Decide implements the business logic to determine whether a hold should be placed.
//
// Business Rules:
//
//	GIVEN: A registered member and a catalog item that is checked out or reserved for another member
//	WHEN: RequestHold command is received
//	THEN: HoldRequested event is generated, the hold joins the end of the queue
//	ERROR: "member not registered", "item not in catalog"
//	ERROR: "member already has an active hold on this item"
//	ERROR: "member currently borrows this item", "item is already reserved for this member"
//	ERROR: "item is available" if nothing prevents a checkout
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	itemID := command.ItemID.String()
	memberID := command.MemberID.String()
	at := command.OccurredAt

	member := core.ProjectMemberAccount(history, memberID)
	item := core.ProjectItemCirculation(history, itemID)

	switch {
	case !member.Registered:
		return core.NotFound(failureEventType, itemID, memberID, "member not registered", at)

	case !item.InCatalog:
		return core.NotFound(failureEventType, itemID, memberID, "item not in catalog", at)
	}

	if _, ok := item.Queue().ActiveFor(memberID); ok {
		return core.Conflict(failureEventType, itemID, memberID, "member already has an active hold on this item", at)
	}

	switch {
	case item.IsBorrowedBy(memberID):
		return core.Conflict(failureEventType, itemID, memberID, "member currently borrows this item", at)

	case item.ReservedFor == memberID:
		return core.Conflict(failureEventType, itemID, memberID, "item is already reserved for this member", at)

	case item.Status == core.ItemStatusAvailable && !item.IsReserved():
		return core.Conflict(failureEventType, itemID, memberID, "item is available", at)
	}

	return core.SuccessDecision(core.BuildHoldRequested(command.HoldID, command.ItemID, command.MemberID, at))
}

// BuildEventFilter creates the filter for querying the circulation events of the item
// and the registration of the member.
// All active holds of the item are part of the boundary, which makes a concurrent
// duplicate request fail with a concurrency conflict.
func BuildEventFilter(itemID uuid.UUID, memberID uuid.UUID) eventstore.Filter {
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
		OrMatching().
		AnyEventTypeOf(core.MemberRegisteredEventType).
		AndAnyPredicateOf(eventstore.P(core.PayloadKeyMemberID, memberID.String())).
		Finalize()
}
