package core

import (
	"time"
)

// Failure event types. They are appended when Decide rejects a command and are excluded
// from every decision filter, so they never change the outcome of a later command.
const (
	CheckingOutItemFailedEventType         = "CheckingOutItemFailed"
	ReturningItemFailedEventType           = "ReturningItemFailed"
	RequestingHoldFailedEventType          = "RequestingHoldFailed"
	CancelingHoldFailedEventType           = "CancelingHoldFailed"
	FulfillingHoldFailedEventType          = "FulfillingHoldFailed"
	PayingFineFailedEventType              = "PayingFineFailed"
	RemovingItemFromCatalogFailedEventType = "RemovingItemFromCatalogFailed"
)

// FailureEventTypes lists all failure event types.
func FailureEventTypes() []EventTypeString {
	return []EventTypeString{
		CheckingOutItemFailedEventType,
		ReturningItemFailedEventType,
		RequestingHoldFailedEventType,
		CancelingHoldFailedEventType,
		FulfillingHoldFailedEventType,
		PayingFineFailedEventType,
		RemovingItemFromCatalogFailedEventType,
	}
}

// CommandFailed records a rejected command. FailedEventType holds one of the failure event types.
type CommandFailed struct {
	FailedEventType EventTypeString
	ItemID          ItemIDString
	MemberID        MemberIDString
	FailureInfo     string
	OccurredAt      OccurredAtTS
}

// BuildCommandFailed creates a failure event of type eventType.
func BuildCommandFailed(
	eventType EventTypeString,
	itemID ItemIDString,
	memberID MemberIDString,
	failureInfo string,
	occurredAt time.Time,
) CommandFailed {

	return CommandFailed{
		FailedEventType: eventType,
		ItemID:          itemID,
		MemberID:        memberID,
		FailureInfo:     failureInfo,
		OccurredAt:      ToOccurredAt(occurredAt),
	}
}

func (e CommandFailed) EventType() string {
	return e.FailedEventType
}

func (e CommandFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e CommandFailed) IsErrorEvent() bool {
	return true
}

// Conflict is ErrorDecision for a failure event of kind ErrConflict.
func Conflict(eventType EventTypeString, itemID ItemIDString, memberID MemberIDString, reason string, at time.Time) DecisionResult {
	return ErrorDecision(BuildCommandFailed(eventType, itemID, memberID, reason, at), NewConflict(eventType, reason))
}

// NotFound is ErrorDecision for a failure event of kind ErrNotFound.
func NotFound(eventType EventTypeString, itemID ItemIDString, memberID MemberIDString, reason string, at time.Time) DecisionResult {
	return ErrorDecision(BuildCommandFailed(eventType, itemID, memberID, reason, at), NewNotFound(eventType, reason))
}

// Invalid is ErrorDecision for a failure event of kind ErrValidation.
func Invalid(eventType EventTypeString, itemID ItemIDString, memberID MemberIDString, reason string, at time.Time) DecisionResult {
	return ErrorDecision(BuildCommandFailed(eventType, itemID, memberID, reason, at), NewValidation(eventType, reason))
}
