package shell

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// QueriesEvents is the read side of an event store.
type QueriesEvents interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
}

// EventStore is what command handlers need from an event store.
type EventStore interface {
	QueriesEvents
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		storableEvents ...eventstore.StorableEvent,
	) error
}

// Query represents the contract for all query types. QueryType is used for observability.
type Query interface {
	QueryType() string
}

// QueryResult represents the contract for all query result types (projections).
// GetSequenceNumber returns the highest event sequence number included in the projection.
type QueryResult interface {
	GetSequenceNumber() uint
}

// QueryHandler processes queries and returns projections.
type QueryHandler[Q Query, R QueryResult] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// ProjectionFunc transforms events into a projection. It must be deterministic.
type ProjectionFunc[Q Query, R QueryResult] func(events core.DomainEvents, query Q, maxSeq uint) R

// FilterBuilderFunc constructs the event store filter for a query.
type FilterBuilderFunc[Q Query] func(query Q) eventstore.Filter

// Command represents the contract for all command types. CommandType is used for observability.
type Command interface {
	CommandType() string
}

// CommandHandler processes commands: Query, Decide, Append.
type CommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}
