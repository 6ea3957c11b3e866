package memengine

import (
	"context"
	"errors"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	logMsgQueryCompleted      = "eventstore operation: query completed"
	logMsgEventsAppended      = "eventstore operation: events appended"
	logMsgConcurrencyConflict = "eventstore operation: concurrency conflict detected"
	logAttrEventCount         = "event_count"
	logAttrExpectedSequence   = "expected_sequence"
	logAttrActualSequence     = "actual_sequence"
)

type storedEvent struct {
	event          eventstore.StorableEvent
	sequenceNumber eventstore.MaxSequenceNumberUint
	payload        map[string]any
}

// EventStore keeps all events in a slice guarded by a RWMutex.
type EventStore struct {
	mu     sync.RWMutex
	events []storedEvent
	logger eventstore.Logger
}

// Option configures an EventStore.
type Option func(*EventStore)

// WithLogger sets a logger for operational messages.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) {
		es.logger = logger
	}
}

// NewEventStore returns an empty EventStore.
func NewEventStore(options ...Option) *EventStore {
	es := &EventStore{}

	for _, option := range options {
		option(es)
	}

	return es
}

// Query returns all events matching filter in sequence order together with the highest
// sequence number among them.
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	if err := ctx.Err(); err != nil {
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, err)
	}

	es.mu.RLock()
	defer es.mu.RUnlock()

	result := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for _, stored := range es.events {
		if !matches(filter, stored) {
			continue
		}

		result = append(result, stored.event)
		maxSequenceNumber = stored.sequenceNumber
	}

	if es.logger != nil {
		es.logger.Info(logMsgQueryCompleted, logAttrEventCount, len(result))
	}

	return result, maxSequenceNumber, nil
}

// Append appends storableEvents if no event matching filter was appended after expectedMaxSequenceNumber.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	storableEvents ...eventstore.StorableEvent,
) error {

	if len(storableEvents) == 0 {
		return eventstore.ErrNoEventsToAppend
	}

	if err := ctx.Err(); err != nil {
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}

	decoded := make([]map[string]any, 0, len(storableEvents))
	for _, event := range storableEvents {
		payload := make(map[string]any)
		if err := jsoniter.ConfigFastest.Unmarshal(event.PayloadJSON, &payload); err != nil {
			return errors.Join(eventstore.ErrAppendingEventFailed, eventstore.ErrInvalidPayloadJSON, err)
		}

		decoded = append(decoded, payload)
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	actual := es.maxSequenceNumberMatching(filter)
	if actual != expectedMaxSequenceNumber {
		if es.logger != nil {
			es.logger.Info(
				logMsgConcurrencyConflict,
				logAttrExpectedSequence, expectedMaxSequenceNumber,
				logAttrActualSequence, actual,
			)
		}

		return eventstore.ErrConcurrencyConflict
	}

	next := eventstore.MaxSequenceNumberUint(len(es.events))
	for i, event := range storableEvents {
		next++
		es.events = append(es.events, storedEvent{
			event:          event,
			sequenceNumber: next,
			payload:        decoded[i],
		})
	}

	if es.logger != nil {
		es.logger.Info(logMsgEventsAppended, logAttrEventCount, len(storableEvents))
	}

	return nil
}

// Len returns the number of stored events.
func (es *EventStore) Len() int {
	es.mu.RLock()
	defer es.mu.RUnlock()

	return len(es.events)
}

// Reset drops all events.
func (es *EventStore) Reset() {
	es.mu.Lock()
	defer es.mu.Unlock()

	es.events = nil
}

func (es *EventStore) maxSequenceNumberMatching(filter eventstore.Filter) eventstore.MaxSequenceNumberUint {
	for i := len(es.events) - 1; i >= 0; i-- {
		if matches(filter, es.events[i]) {
			return es.events[i].sequenceNumber
		}
	}

	return 0
}
