package memberbalance

import (
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// ProjectBalance implements the query logic to compute the fine balance of a member.
func ProjectBalance(history core.DomainEvents, query Query, maxSequenceNumber uint) Balance {
	account := core.ProjectMemberAccount(history, query.MemberID.String())

	return Balance{
		MemberID:         account.MemberID,
		Registered:       account.Registered,
		AccruedCents:     account.AccruedCents,
		PaidCents:        account.PaidCents,
		OutstandingCents: account.BalanceCents(),
		SequenceNumber:   maxSequenceNumber,
	}
}

// BuildEventFilter creates the filter for querying the registration, accrued fines and
// payments of the member.
func BuildEventFilter(query Query) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.MemberRegisteredEventType,
			core.ItemReturnedEventType,
			core.FinePaidEventType,
		).
		AndAnyPredicateOf(eventstore.P(core.PayloadKeyMemberID, query.MemberID.String())).
		Finalize()
}
