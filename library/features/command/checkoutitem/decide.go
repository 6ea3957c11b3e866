package checkoutitem

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const failureEventType = core.CheckingOutItemFailedEventType

// Decide implements the business logic to determine whether an item should be lent to a member.
//
// Business Rules:
//
//	GIVEN: A registered member and an available catalog item
//	WHEN: CheckoutItem command is received
//	THEN: ItemCheckedOut event is generated with DueDate = borrow date + lending period of the member's group
//	AND: HoldFulfilled first, if the member's hold is next in line on an unreserved item
//	ERROR: "member not registered", "item not in catalog", "item is checked out"
//	ERROR: "item is reserved for another member", "another member is next in line"
func Decide(history core.DomainEvents, command Command, policy core.LendingPolicy) core.DecisionResult {
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

	case item.Status == core.ItemStatusCheckedOut:
		return core.Conflict(failureEventType, itemID, memberID, "item is checked out", at)
	}

	checkedOut := core.BuildItemCheckedOut(
		command.BorrowID,
		command.ItemID,
		command.MemberID,
		policy.DueDate(at, member.GroupID),
		at,
	)

	if item.IsReserved() {
		if item.ReservedFor != memberID {
			return core.Conflict(failureEventType, itemID, memberID, "item is reserved for another member", at)
		}

		return core.SuccessDecision(checkedOut)
	}

	next, ok := item.Queue().Next()
	if !ok {
		return core.SuccessDecision(checkedOut)
	}

	if next.MemberID != memberID {
		return core.Conflict(failureEventType, itemID, memberID, "another member is next in line", at)
	}

	return core.SuccessDecision(core.BuildHoldFulfilled(next, at), checkedOut)
}

// BuildEventFilter creates the filter for querying the circulation events of the item
// and the registration of the member.
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
