package addcatalogitem

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// state represents the current state projected from the event history.
type state struct {
	itemIsInCatalog bool
}

// Decide implements the business logic to determine whether an item should be added to the catalog.
//
// Business Rules:
//
//	GIVEN: An item with ItemID
//	WHEN: AddCatalogItem command is received
//	THEN: ItemAddedToCatalog event is generated
//	IDEMPOTENCY: If the item is already in the catalog, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.ItemID.String())

	if s.itemIsInCatalog {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildItemAddedToCatalog(
			command.ItemID,
			command.Title,
			command.TypeName,
			command.OccurredAt,
		),
	)
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, itemID string) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.ItemAddedToCatalog:
			if e.ItemID == itemID {
				s.itemIsInCatalog = true
			}

		case core.ItemRemovedFromCatalog:
			if e.ItemID == itemID {
				s.itemIsInCatalog = false
			}
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying all events
// related to the specified item which are relevant for this feature/use-case.
func BuildEventFilter(itemID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.ItemAddedToCatalogEventType,
			core.ItemRemovedFromCatalogEventType,
		).
		AndAnyPredicateOf(eventstore.P(core.PayloadKeyItemID, itemID.String())).
		Finalize()
}
