package desk

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// ItemLookup returns the current circulation state of an item.
type ItemLookup interface {
	Lookup(ctx context.Context, itemID core.ItemIDString) (core.ItemCirculation, error)
}

// EventStoreItemLookup projects the item from its events.
type EventStoreItemLookup struct {
	eventStore shell.QueriesEvents
}

// NewEventStoreItemLookup creates an EventStoreItemLookup.
func NewEventStoreItemLookup(eventStore shell.QueriesEvents) EventStoreItemLookup {
	return EventStoreItemLookup{eventStore: eventStore}
}

func (l EventStoreItemLookup) Lookup(ctx context.Context, itemID core.ItemIDString) (core.ItemCirculation, error) {
	filter := eventstore.BuildEventFilter().
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
		AndAnyPredicateOf(eventstore.P(core.PayloadKeyItemID, itemID)).
		Finalize()

	history, _, err := shell.QueryHistory(ctx, l.eventStore, filter)
	if err != nil {
		return core.ItemCirculation{}, err
	}

	return core.ProjectItemCirculation(history, itemID), nil
}
