package postgresengine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	metricQueryDuration        = "eventstore_query_duration_seconds"
	metricAppendDuration       = "eventstore_append_duration_seconds"
	metricEventsQueried        = "eventstore_events_queried_total"
	metricEventsAppended       = "eventstore_events_appended_total"
	metricConcurrencyConflicts = "eventstore_concurrency_conflicts_total"
	metricDatabaseErrors       = "eventstore_database_errors_total"

	spanNameQuery  = "eventstore.query"
	spanNameAppend = "eventstore.append"

	spanAttrOperation    = "operation"
	spanAttrEventCount   = "event_count"
	spanAttrEventType    = "event_type"
	spanAttrExpectedSeq  = "expected_sequence"
	spanAttrMaxSequence  = "max_sequence"
	spanAttrRowsAffected = "rows_affected"
	spanAttrDurationMS   = "duration_ms"
	spanAttrErrorType    = "error_type"

	labelStatus       = "status"
	labelConflictType = "conflict_type"

	operationQuery  = "query"
	operationAppend = "append"

	statusSuccess = "success"
	statusError   = "error"

	errorTypeBuildQuery   = "build_query"
	errorTypeDatabase     = "database_query"
	errorTypeDatabaseExec = "database_exec"
	errorTypeRowScan      = "row_scan"
	errorTypeBuildEvent   = "build_storable_event"
	errorTypeRowsAffected = "rows_affected"
	errorTypeConflict     = "concurrency_conflict"
)

func (es *EventStore) logSQL(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	switch {
	case es.contextualLogger != nil:
		es.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
	case es.logger != nil:
		es.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

func (es *EventStore) logOperation(ctx context.Context, action string, args ...any) {
	switch {
	case es.contextualLogger != nil:
		es.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	case es.logger != nil:
		es.logger.Info(logMsgOperation+action, args...)
	}
}

func (es *EventStore) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	switch {
	case es.contextualLogger != nil:
		es.contextualLogger.ErrorContext(ctx, message, allArgs...)
	case es.logger != nil:
		es.logger.Error(message, allArgs...)
	}
}

func (es *EventStore) logWarn(ctx context.Context, message string, err error) {
	switch {
	case es.contextualLogger != nil:
		es.contextualLogger.WarnContext(ctx, message, logAttrError, err.Error())
	case es.logger != nil:
		es.logger.Warn(message, logAttrError, err.Error())
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

/***** metrics *****/

func (es *EventStore) recordDuration(ctx context.Context, metric string, d time.Duration, operation, status string) {
	if es.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, labelStatus: status}

	if contextual, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metric, d, labels)
		return
	}

	es.metricsCollector.RecordDuration(metric, d, labels)
}

func (es *EventStore) recordValue(ctx context.Context, metric string, value float64, operation string) {
	if es.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, labelStatus: statusSuccess}

	if contextual, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		contextual.RecordValueContext(ctx, metric, value, labels)
		return
	}

	es.metricsCollector.RecordValue(metric, value, labels)
}

func (es *EventStore) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if es.metricsCollector == nil {
		return
	}

	if contextual, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
		return
	}

	es.metricsCollector.IncrementCounter(metric, labels)
}

func (es *EventStore) recordFailure(ctx context.Context, operation, errorType string, d time.Duration) {
	metric := metricQueryDuration
	if operation == operationAppend {
		metric = metricAppendDuration
	}

	es.recordDuration(ctx, metric, d, operation, statusError)

	if errorType == errorTypeConflict {
		es.incrementCounter(ctx, metricConcurrencyConflicts, map[string]string{
			spanAttrOperation: operation,
			labelConflictType: "concurrency",
		})

		return
	}

	es.incrementCounter(ctx, metricDatabaseErrors, map[string]string{
		spanAttrOperation: operation,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	})
}

/***** tracing *****/

// operationObserver wraps the span and metrics of one Query or Append call.
type operationObserver struct {
	es        *EventStore
	ctx       context.Context
	span      eventstore.SpanContext
	operation string
	start     time.Time
}

func (es *EventStore) observe(ctx context.Context, operation string, attrs map[string]string) *operationObserver {
	o := &operationObserver{es: es, ctx: ctx, operation: operation, start: time.Now()}

	if es.tracingCollector != nil {
		name := spanNameQuery
		if operation == operationAppend {
			name = spanNameAppend
		}

		attrs[spanAttrOperation] = operation
		o.ctx, o.span = es.tracingCollector.StartSpan(ctx, name, attrs)
	}

	return o
}

func (o *operationObserver) fail(errorType string) {
	elapsed := time.Since(o.start)
	o.es.recordFailure(o.ctx, o.operation, errorType, elapsed)

	if o.span == nil {
		return
	}

	o.span.SetStatus(statusError)
	o.span.AddAttribute(spanAttrErrorType, errorType)
	o.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", toMilliseconds(elapsed)))
	o.es.tracingCollector.FinishSpan(o.span, statusError, map[string]string{spanAttrErrorType: errorType})
}

func (o *operationObserver) succeed(eventCount int, attrs map[string]string) {
	elapsed := time.Since(o.start)

	if o.operation == operationAppend {
		o.es.recordDuration(o.ctx, metricAppendDuration, elapsed, operationAppend, statusSuccess)
		o.es.recordValue(o.ctx, metricEventsAppended, float64(eventCount), operationAppend)
	} else {
		o.es.recordDuration(o.ctx, metricQueryDuration, elapsed, operationQuery, statusSuccess)
		o.es.recordValue(o.ctx, metricEventsQueried, float64(eventCount), operationQuery)
	}

	if o.span == nil {
		return
	}

	o.span.SetStatus(statusSuccess)
	o.span.AddAttribute(spanAttrEventCount, fmt.Sprintf("%d", eventCount))
	o.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", toMilliseconds(elapsed)))
	for key, value := range attrs {
		o.span.AddAttribute(key, value)
	}

	o.es.tracingCollector.FinishSpan(o.span, statusSuccess, attrs)
}
