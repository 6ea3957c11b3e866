// Package eventstore provides the storage abstractions the circulation service is built on:
// filters that describe a dynamic consistency boundary, storable events, and the
// errors and observability hooks shared by the engines.
//
// A filter selects events by type and by top-level JSON payload predicates. The
// same filter is used to read the history a decision is based on and to guard the
// append of the decision's events:
//
//	filter := eventstore.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(
//			core.ItemCheckedOutEventType,
//			core.ItemReturnedEventType).
//		AndAnyPredicateOf(eventstore.P("ItemID", itemID.String())).
//		Finalize()
//
//	events, maxSeq, err := store.Query(ctx, filter)
//	// ... decide ...
//	err = store.Append(ctx, filter, maxSeq, newEvent)
//
// Append fails with ErrConcurrencyConflict when an event matching the filter was
// appended after the query.
//
// Engines live in subpackages: postgresengine (PostgreSQL, via pgx, database/sql or sqlx)
// and memengine (in-process).
package eventstore
