package registermember

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// Decide implements the business logic to determine whether a member should be registered.
//
// Business Rules:
//
//	GIVEN: A person with MemberID
//	WHEN: RegisterMember command is received
//	THEN: MemberRegistered event is generated
//	IDEMPOTENCY: If the member is already registered, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if core.ProjectMemberAccount(history, command.MemberID.String()).Registered {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildMemberRegistered(command.MemberID, command.Name, command.GroupID, command.OccurredAt),
	)
}

// BuildEventFilter creates the filter for querying the registration of the specified member.
func BuildEventFilter(memberID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.MemberRegisteredEventType).
		AndAnyPredicateOf(eventstore.P(core.PayloadKeyMemberID, memberID.String())).
		Finalize()
}
