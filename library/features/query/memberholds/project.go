package memberholds

import (
	"slices"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// ProjectMemberHolds implements the query logic to list the holds of a member.
//
// Query Logic:
//
//	GIVEN: The circulation events of all items the member ever requested a hold on
//	WHEN: MemberHolds query is executed
//	THEN: All holds of the member are returned, most recent first
//	INCLUDES: Queue position and next-in-line marker of active holds
func ProjectMemberHolds(history core.DomainEvents, query Query, maxSequenceNumber uint) MemberHolds {
	memberID := query.MemberID.String()
	holds := make([]MemberHold, 0)

	for _, item := range core.ProjectItemCirculations(history) {
		queue := item.Queue()

		for _, hold := range item.Holds() {
			if hold.MemberID != memberID {
				continue
			}

			position := 0
			if hold.IsActive() {
				position = queue.PositionOf(memberID)
			}

			holds = append(holds, MemberHold{
				HoldID:         hold.HoldID,
				ItemID:         hold.ItemID,
				Title:          item.Title,
				CreatedAt:      hold.CreatedAt,
				Status:         hold.Status,
				Position:       position,
				NextInLine:     hold.IsActive() && queue.IsNextInLine(hold.HoldID),
				ReadyForPickup: item.ReservedHoldID == hold.HoldID,
			})
		}
	}

	slices.SortFunc(holds, func(a, b MemberHold) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return MemberHolds{
		MemberID:       memberID,
		Holds:          holds,
		SequenceNumber: maxSequenceNumber,
	}
}

// BuildRequestedHoldsFilter creates the filter for the first step: the hold requests of the member.
func BuildRequestedHoldsFilter(query Query) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.HoldRequestedEventType).
		AndAnyPredicateOf(eventstore.P(core.PayloadKeyMemberID, query.MemberID.String())).
		Finalize()
}

// BuildEventFilter creates the filter for the second step: all circulation events of itemIDs.
func BuildEventFilter(itemIDs []core.ItemIDString) eventstore.Filter {
	predicates := make([]eventstore.FilterPredicate, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		predicates = append(predicates, eventstore.P(core.PayloadKeyItemID, itemID))
	}

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
		AndAnyPredicateOf(predicates[0], predicates[1:]...).
		Finalize()
}

func itemIDsOf(requests core.DomainEvents) []core.ItemIDString {
	itemIDs := make([]core.ItemIDString, 0, len(requests))
	for _, event := range requests {
		if e, ok := event.(core.HoldRequested); ok && !slices.Contains(itemIDs, e.ItemID) {
			itemIDs = append(itemIDs, e.ItemID)
		}
	}

	return itemIDs
}

