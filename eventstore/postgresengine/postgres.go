package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/postgresengine/internal/adapters"
)

const (
	defaultEventTableName          = "events"
	logMsgBuildSelectQueryFailed   = "failed to build select query"
	logMsgDBQueryFailed            = "database query execution failed"
	logMsgCloseRowsFailed          = "failed to close database rows"
	logMsgScanRowFailed            = "failed to scan database row"
	logMsgBuildStorableEventFailed = "failed to build storable event from database row"
	logMsgBuildInsertQueryFailed   = "failed to build insert query"
	logMsgDBExecFailed             = "database execution failed during event append"
	logMsgRowsAffectedFailed       = "failed to get rows affected count"
	logMsgQueryCompleted           = "query completed"
	logMsgEventsAppended           = "events appended"
	logMsgConcurrencyConflict      = "concurrency conflict detected"
	logMsgSQLExecuted              = "executed sql for: "
	logMsgOperation                = "eventstore operation: "
	logAttrError                   = "error"
	logAttrQuery                   = "query"
	logAttrEventType               = "event_type"
	logAttrEventCount              = "event_count"
	logAttrDurationMS              = "duration_ms"
	logAttrExpectedEvents          = "expected_events"
	logAttrRowsAffected            = "rows_affected"
	logAttrExpectedSequence        = "expected_sequence"
	colEventType                   = "event_type"
	colOccurredAt                  = "occurred_at"
	colPayload                     = "payload"
	colMetadata                    = "metadata"
	colSequenceNumber              = "sequence_number"
	cteContext                     = "context"
	cteVals                        = "vals"
	dialectPostgres                = "postgres"
	aliasMaxSeq                    = "max_seq"
	castText                       = "?::text"
	castTimestamp                  = "?::timestamp with time zone"
	castJsonb                      = "?::jsonb"
	exprPayloadContains            = colPayload + " @> ?::jsonb"
)

// ErrInvalidTableName is returned by WithTableName for names that are not plain Postgres identifiers.
var ErrInvalidTableName = errors.New("invalid events table name")

// EventStore is the Postgres implementation of the dynamic consistency boundary event store.
// It is safe for concurrent use.
type EventStore struct {
	db               adapters.DBAdapter
	eventTableName   string
	logger           eventstore.Logger
	contextualLogger eventstore.ContextualLogger
	metricsCollector eventstore.MetricsCollector
	tracingCollector eventstore.TracingCollector
}

type queryResultRow struct {
	eventType      string
	payload        []byte
	metadata       []byte
	occurredAt     sql.NullTime
	sequenceNumber int64
}

// NewEventStoreFromPGXPool creates a new EventStore using a pgx Pool with optional configuration.
func NewEventStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapter(db), options...)
}

// NewEventStoreFromPGXPoolAndReplica creates an EventStore that sends queries running under
// eventstore.WithEventualConsistency to replica. Appends and strongly consistent queries use primary.
func NewEventStoreFromPGXPoolAndReplica(primary *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*EventStore, error) {
	if primary == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	if replica == nil {
		return newEventStore(adapters.NewPGXAdapter(primary), options...)
	}

	return newEventStore(adapters.NewPGXAdapterWithReplica(primary, replica), options...)
}

// NewEventStoreFromSQLDB creates a new EventStore using a sql.DB with optional configuration.
func NewEventStoreFromSQLDB(db *sql.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLAdapter(db), options...)
}

// NewEventStoreFromSQLX creates a new EventStore using a sqlx.DB with optional configuration.
func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLXAdapter(db), options...)
}

func newEventStore(db adapters.DBAdapter, options ...Option) (*EventStore, error) {
	es := &EventStore{
		db:             db,
		eventTableName: defaultEventTableName,
	}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	return es, nil
}

// Query returns all events matching filter ordered by sequence number, together with the
// highest sequence number among them (0 if there are none).
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	observer := es.observe(ctx, operationQuery, map[string]string{})
	ctx = observer.ctx

	sqlQuery, buildQueryErr := es.buildSelectQuery(filter)
	if buildQueryErr != nil {
		es.logError(ctx, logMsgBuildSelectQueryFailed, buildQueryErr)
		observer.fail(errorTypeBuildQuery)

		return nil, 0, buildQueryErr
	}

	rows, queryErr := es.db.Query(ctx, sqlQuery)
	es.logSQL(ctx, sqlQuery, operationQuery, time.Since(observer.start))

	if queryErr != nil {
		es.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		observer.fail(errorTypeDatabase)

		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, queryErr)
	}
	defer es.closeRows(ctx, rows)

	eventStream, maxSequenceNumber, errorType, scanErr := es.processQueryResults(ctx, rows)
	if scanErr != nil {
		observer.fail(errorType)

		return nil, 0, scanErr
	}

	es.logOperation(
		ctx,
		logMsgQueryCompleted,
		logAttrEventCount, len(eventStream),
		logAttrDurationMS, toMilliseconds(time.Since(observer.start)),
	)

	observer.succeed(len(eventStream), map[string]string{
		spanAttrMaxSequence: strconv.FormatUint(uint64(maxSequenceNumber), 10),
	})

	return eventStream, maxSequenceNumber, nil
}

func (es *EventStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		es.logWarn(ctx, logMsgCloseRowsFailed, closeErr)
	}
}

func (es *EventStore) processQueryResults(ctx context.Context, rows adapters.DBRows) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	string,
	error,
) {

	result := queryResultRow{}
	eventStream := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for rows.Next() {
		rowScanErr := rows.Scan(&result.eventType, &result.occurredAt, &result.payload, &result.metadata, &result.sequenceNumber)
		if rowScanErr != nil {
			es.logError(ctx, logMsgScanRowFailed, rowScanErr)

			return nil, 0, errorTypeRowScan, errors.Join(eventstore.ErrScanningDBRowFailed, rowScanErr)
		}

		event, buildStorableErr := eventstore.BuildStorableEvent(
			result.eventType,
			result.occurredAt.Time,
			result.payload,
			result.metadata,
		)
		if buildStorableErr != nil {
			es.logError(ctx, logMsgBuildStorableEventFailed, buildStorableErr, logAttrEventType, result.eventType)

			return nil, 0, errorTypeBuildEvent, errors.Join(eventstore.ErrBuildingStorableEventFailed, buildStorableErr)
		}

		eventStream = append(eventStream, event)
		maxSequenceNumber = eventstore.MaxSequenceNumberUint(result.sequenceNumber) //nolint:gosec
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		es.logError(ctx, logMsgScanRowFailed, rowsErr)

		return nil, 0, errorTypeRowScan, errors.Join(eventstore.ErrScanningDBRowFailed, rowsErr)
	}

	return eventStream, maxSequenceNumber, "", nil
}

// Append appends storableEvents atomically, but only if no event matching filter was stored
// after expectedMaxSequenceNumber. Otherwise, it returns eventstore.ErrConcurrencyConflict.
//
// The filter must be the one used for the Query the decision was based on.
// The insert runs in a SERIALIZABLE transaction, a serialization failure is reported as a conflict.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	storableEvents ...eventstore.StorableEvent,
) error {

	if len(storableEvents) == 0 {
		return eventstore.ErrNoEventsToAppend
	}

	observer := es.observe(ctx, operationAppend, map[string]string{
		spanAttrEventCount:  strconv.Itoa(len(storableEvents)),
		spanAttrExpectedSeq: strconv.FormatUint(uint64(expectedMaxSequenceNumber), 10),
		spanAttrEventType:   storableEvents[0].EventType,
	})
	ctx = observer.ctx

	sqlQuery, buildQueryErr := es.buildAppendQuery(storableEvents, filter, expectedMaxSequenceNumber)
	if buildQueryErr != nil {
		es.logError(ctx, logMsgBuildInsertQueryFailed, buildQueryErr, logAttrEventCount, len(storableEvents))
		observer.fail(errorTypeBuildQuery)

		return buildQueryErr
	}

	result, execErr := es.db.ExecSerializable(ctx, sqlQuery)
	es.logSQL(ctx, sqlQuery, operationAppend, time.Since(observer.start))

	if errors.Is(execErr, adapters.ErrSerializationFailure) {
		es.logConflict(ctx, len(storableEvents), 0, expectedMaxSequenceNumber)
		observer.fail(errorTypeConflict)

		return eventstore.ErrConcurrencyConflict
	}

	if execErr != nil {
		es.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		observer.fail(errorTypeDatabaseExec)

		return errors.Join(eventstore.ErrAppendingEventFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		es.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		observer.fail(errorTypeRowsAffected)

		return errors.Join(eventstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	if rowsAffected < int64(len(storableEvents)) {
		es.logConflict(ctx, len(storableEvents), rowsAffected, expectedMaxSequenceNumber)
		observer.fail(errorTypeConflict)

		return eventstore.ErrConcurrencyConflict
	}

	es.logOperation(
		ctx,
		logMsgEventsAppended,
		logAttrEventCount, len(storableEvents),
		logAttrDurationMS, toMilliseconds(time.Since(observer.start)),
	)

	observer.succeed(len(storableEvents), map[string]string{
		spanAttrRowsAffected: strconv.FormatInt(rowsAffected, 10),
	})

	return nil
}

func (es *EventStore) logConflict(
	ctx context.Context,
	expectedEventCount int,
	rowsAffected int64,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) {

	es.logOperation(
		ctx,
		logMsgConcurrencyConflict,
		logAttrExpectedEvents, expectedEventCount,
		logAttrRowsAffected, rowsAffected,
		logAttrExpectedSequence, expectedMaxSequenceNumber,
	)
}

func (es *EventStore) buildSelectQuery(filter eventstore.Filter) (string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(es.eventTableName).
		Select(colEventType, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Order(goqu.I(colSequenceNumber).Asc())

	selectStmt, whereErr := es.addWhereClause(filter, selectStmt)
	if whereErr != nil {
		return "", whereErr
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// buildAppendQuery builds an INSERT ... SELECT that only yields rows while the max sequence number
// of the filtered stream still equals expectedMaxSequenceNumber.
func (es *EventStore) buildAppendQuery(
	events eventstore.StorableEvents,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (string, error) {

	builder := goqu.Dialect(dialectPostgres)

	cteStmt := builder.
		From(es.eventTableName).
		Select(goqu.MAX(colSequenceNumber).As(aliasMaxSeq))

	cteStmt, whereErr := es.addWhereClause(filter, cteStmt)
	if whereErr != nil {
		return "", whereErr
	}

	valuesStmt := eventValues(builder, events[0])
	for _, event := range events[1:] {
		valuesStmt = valuesStmt.UnionAll(eventValues(builder, event))
	}

	insertStmt := builder.
		Insert(es.eventTableName).
		Cols(colEventType, colOccurredAt, colPayload, colMetadata).
		With(cteContext, cteStmt).
		With(cteVals, valuesStmt).
		FromQuery(
			builder.From(cteContext, cteVals).
				Select(
					goqu.I(cteVals+"."+colEventType),
					goqu.I(cteVals+"."+colOccurredAt),
					goqu.I(cteVals+"."+colPayload),
					goqu.I(cteVals+"."+colMetadata),
				).
				Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber))),
		)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func eventValues(builder goqu.DialectWrapper, event eventstore.StorableEvent) *goqu.SelectDataset {
	return builder.Select(
		goqu.L(castText, event.EventType).As(colEventType),
		goqu.L(castTimestamp, event.OccurredAt).As(colOccurredAt),
		goqu.L(castJsonb, string(event.PayloadJSON)).As(colPayload),
		goqu.L(castJsonb, string(event.MetadataJSON)).As(colMetadata),
	)
}

// addWhereClause ORs the filter items. Inside an item the event types are ORed and the
// predicates are ANDed or ORed. Predicates become jsonb containment checks with bound literals.
func (es *EventStore) addWhereClause(filter eventstore.Filter, selectStmt *goqu.SelectDataset) (*goqu.SelectDataset, error) {
	if filter.IsEmpty() {
		return selectStmt, nil
	}

	itemsExpressions := make([]exp.Expression, 0, len(filter.Items()))

	for _, item := range filter.Items() {
		itemExpressions := make([]exp.Expression, 0, 2)

		if len(item.EventTypes()) > 0 {
			itemExpressions = append(itemExpressions, goqu.C(colEventType).In(item.EventTypes()))
		}

		predicateExpressions := make([]exp.Expression, 0, len(item.Predicates()))
		for _, predicate := range item.Predicates() {
			containment, marshalErr := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(
				map[string]string{predicate.Key(): predicate.Val()},
			)
			if marshalErr != nil {
				return nil, errors.Join(eventstore.ErrBuildingQueryFailed, fmt.Errorf("predicate %q: %w", predicate.Key(), marshalErr))
			}

			predicateExpressions = append(predicateExpressions, goqu.L(exprPayloadContains, containment))
		}

		if len(predicateExpressions) > 0 {
			if item.AllPredicatesMustMatch() {
				itemExpressions = append(itemExpressions, goqu.And(predicateExpressions...))
			} else {
				itemExpressions = append(itemExpressions, goqu.Or(predicateExpressions...))
			}
		}

		itemsExpressions = append(itemsExpressions, goqu.And(itemExpressions...))
	}

	return selectStmt.Where(goqu.Or(itemsExpressions...)), nil
}
