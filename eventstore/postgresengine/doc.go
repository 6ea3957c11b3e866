// Package postgresengine stores events in a PostgreSQL table.
//
// The engine works with a pgxpool.Pool (optionally with a read replica), a
// database/sql DB (lib/pq) or a sqlx.DB. SQL is built with goqu.
//
// Appends are INSERT ... SELECT statements guarded by a CTE that recomputes the
// max sequence number of the events matching the filter. They run in a
// SERIALIZABLE transaction, so two writers racing on the same boundary cannot
// both succeed: the loser either inserts zero rows or hits a serialization
// failure, and both cases surface as eventstore.ErrConcurrencyConflict.
//
//	pool, _ := pgxpool.NewWithConfig(ctx, cfg)
//	store, _ := postgresengine.NewEventStoreFromPGXPool(
//		pool,
//		postgresengine.WithTableName("events"),
//		postgresengine.WithLogger(slog.Default()),
//	)
//	_ = store.Migrate(ctx)
//
//	events, maxSeq, _ := store.Query(ctx, filter)
//	err := store.Append(ctx, filter, maxSeq, newEvent)
package postgresengine
