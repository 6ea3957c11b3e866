package memberholds

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// QueryHandler orchestrates the query processing workflow: Query requests -> Query items -> Project.
type QueryHandler struct {
	eventStore shell.QueriesEvents
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return QueryHandler{eventStore: eventStore}
}

// Handle executes both query steps with eventual consistency.
func (h QueryHandler) Handle(ctx context.Context, query Query) (MemberHolds, error) {
	ctx = eventstore.WithEventualConsistency(ctx)

	// Query phase: which items
	requests, err := h.query(ctx, BuildRequestedHoldsFilter(query))
	if err != nil {
		return MemberHolds{}, err
	}

	itemIDs := itemIDsOf(requests)
	if len(itemIDs) == 0 {
		return ProjectMemberHolds(core.DomainEvents{}, query, 0), nil
	}

	// Query phase: the items' circulation
	storableEvents, maxSeq, err := h.eventStore.Query(ctx, BuildEventFilter(itemIDs))
	if err != nil {
		return MemberHolds{}, err
	}

	// Unmarshal phase
	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return MemberHolds{}, err
	}

	// Projection phase
	return ProjectMemberHolds(history, query, maxSeq), nil
}

func (h QueryHandler) query(ctx context.Context, filter eventstore.Filter) (core.DomainEvents, error) {
	storableEvents, _, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	return shell.DomainEventsFrom(storableEvents)
}
