package holdqueue

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// ProjectItemHoldQueue implements the query logic to list the hold queue of an item.
//
// Query Logic:
//
//	GIVEN: An item with ItemID
//	WHEN: HoldQueue query is executed
//	THEN: The active holds are returned FIFO by request time, the first one is next in line
//	EXCLUDES: Fulfilled and cancelled holds
func ProjectItemHoldQueue(history core.DomainEvents, query Query, maxSequenceNumber uint) ItemHoldQueue {
	item := core.ProjectItemCirculation(history, query.ItemID.String())
	queue := item.Queue()

	holds := make([]QueuedHold, 0, len(queue))
	for i, hold := range queue {
		holds = append(holds, QueuedHold{
			HoldID:     hold.HoldID,
			MemberID:   hold.MemberID,
			CreatedAt:  hold.CreatedAt,
			Position:   i + 1,
			NextInLine: i == 0,
		})
	}

	return ItemHoldQueue{
		ItemID:         item.ItemID,
		InCatalog:      item.InCatalog,
		Status:         item.Status,
		ReservedFor:    item.ReservedFor,
		Holds:          holds,
		SequenceNumber: maxSequenceNumber,
	}
}

// BuildEventFilter creates the filter for querying all circulation events of the item.
func BuildEventFilter(query Query) eventstore.Filter {
	return buildEventFilter(query.ItemID)
}

func buildEventFilter(itemID uuid.UUID) eventstore.Filter {
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
