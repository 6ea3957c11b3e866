package shell

import (
	"errors"
	"slices"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.ItemAddedToCatalogEventType:
		return unmarshal[core.ItemAddedToCatalog](storableEvent.PayloadJSON)

	case core.ItemRemovedFromCatalogEventType:
		return unmarshal[core.ItemRemovedFromCatalog](storableEvent.PayloadJSON)

	case core.MemberRegisteredEventType:
		return unmarshal[core.MemberRegistered](storableEvent.PayloadJSON)

	case core.ItemCheckedOutEventType:
		return unmarshal[core.ItemCheckedOut](storableEvent.PayloadJSON)

	case core.ItemReturnedEventType:
		return unmarshal[core.ItemReturned](storableEvent.PayloadJSON)

	case core.HoldRequestedEventType:
		return unmarshal[core.HoldRequested](storableEvent.PayloadJSON)

	case core.HoldCancelledEventType:
		return unmarshal[core.HoldCancelled](storableEvent.PayloadJSON)

	case core.HoldFulfilledEventType:
		return unmarshal[core.HoldFulfilled](storableEvent.PayloadJSON)

	case core.FinePaidEventType:
		return unmarshal[core.FinePaid](storableEvent.PayloadJSON)

	default:
		if slices.Contains(core.FailureEventTypes(), storableEvent.EventType) {
			return unmarshalCommandFailed(storableEvent)
		}
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshal[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var event E

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}

func unmarshalCommandFailed(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	payload := new(core.CommandFailed)

	if err := jsoniter.ConfigFastest.Unmarshal(storableEvent.PayloadJSON, payload); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return core.BuildCommandFailed(
		storableEvent.EventType,
		payload.ItemID,
		payload.MemberID,
		payload.FailureInfo,
		payload.OccurredAt,
	), nil
}
