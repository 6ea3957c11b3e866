package shell

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// ProjectingQueryHandler runs a query as Query -> Unmarshal -> Project with eventual consistency.
// Query features configure it with their filter and projection.
type ProjectingQueryHandler[Q Query, R QueryResult] struct {
	eventStore    QueriesEvents
	filterBuilder FilterBuilderFunc[Q]
	project       ProjectionFunc[Q, R]
}

// NewProjectingQueryHandler creates a ProjectingQueryHandler.
func NewProjectingQueryHandler[Q Query, R QueryResult](
	eventStore QueriesEvents,
	filterBuilder FilterBuilderFunc[Q],
	project ProjectionFunc[Q, R],
) ProjectingQueryHandler[Q, R] {

	return ProjectingQueryHandler[Q, R]{
		eventStore:    eventStore,
		filterBuilder: filterBuilder,
		project:       project,
	}
}

// Handle queries and projects.
func (h ProjectingQueryHandler[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	var zero R

	// Query phase
	storableEvents, maxSeq, err := h.eventStore.Query(eventstore.WithEventualConsistency(ctx), h.filterBuilder(query))
	if err != nil {
		return zero, err
	}

	// Unmarshal phase
	history, err := DomainEventsFrom(storableEvents)
	if err != nil {
		return zero, err
	}

	// Projection phase
	return h.project(history, query, maxSeq), nil
}
