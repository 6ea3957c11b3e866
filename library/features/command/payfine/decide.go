package payfine

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const failureEventType = core.PayingFineFailedEventType

// state represents the current state projected from the event history.
type state struct {
	account     core.MemberAccount
	paymentDone bool
}

// Decide implements the business logic to determine whether a fine payment should be booked.
//
// Business Rules:
//
//	GIVEN: A registered member with an outstanding fine balance
//	WHEN: PayFine command is received with 0 < AmountCents <= balance
//	THEN: FinePaid event is generated
//	ERROR: "amount must be positive", "member not registered", "no outstanding balance"
//	ERROR: "amount exceeds outstanding balance of N cents"
//	IDEMPOTENCY: If a payment with the same PaymentID was booked, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	memberID := command.MemberID.String()
	at := command.OccurredAt

	if command.AmountCents <= 0 {
		return core.Invalid(failureEventType, "", memberID, "amount must be positive", at)
	}

	s := project(history, memberID, command.PaymentID.String())

	switch {
	case !s.account.Registered:
		return core.NotFound(failureEventType, "", memberID, "member not registered", at)

	case s.paymentDone:
		return core.IdempotentDecision()
	}

	balance := s.account.BalanceCents()

	switch {
	case balance <= 0:
		return core.Conflict(failureEventType, "", memberID, "no outstanding balance", at)

	case command.AmountCents > balance:
		reason := "amount exceeds outstanding balance of " + strconv.FormatInt(balance, 10) + " cents"
		return core.Conflict(failureEventType, "", memberID, reason, at)
	}

	return core.SuccessDecision(core.BuildFinePaid(command.PaymentID, command.MemberID, command.AmountCents, at))
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, memberID string, paymentID string) state {
	s := state{account: core.ProjectMemberAccount(history, memberID)}

	for _, event := range history {
		if e, ok := event.(core.FinePaid); ok && e.PaymentID == paymentID {
			s.paymentDone = true
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying the registration, accrued fines and
// payments of the specified member.
func BuildEventFilter(memberID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.MemberRegisteredEventType,
			core.ItemReturnedEventType,
			core.FinePaidEventType,
		).
		AndAnyPredicateOf(eventstore.P(core.PayloadKeyMemberID, memberID.String())).
		Finalize()
}
