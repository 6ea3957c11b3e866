package core

// DecisionResult represents the outcome of a business decision in a Decide function.
//
// Construct it only with IdempotentDecision, SuccessDecision or ErrorDecision.
type DecisionResult struct {
	Outcome string       // "idempotent", "success", or "error"
	Events  DomainEvents // empty for idempotent decisions
	Err     error
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	errorOutcome      = "error"
)

// IdempotentDecision creates a DecisionResult indicating no state change is needed.
func IdempotentDecision() DecisionResult {
	return DecisionResult{
		Outcome: idempotentOutcome,
	}
}

// SuccessDecision creates a DecisionResult with one or more events to append atomically.
func SuccessDecision(event DomainEvent, additionalEvents ...DomainEvent) DecisionResult {
	return DecisionResult{
		Outcome: successOutcome,
		Events:  append(DomainEvents{event}, additionalEvents...),
	}
}

// ErrorDecision creates a DecisionResult for a business rule violation with a failure event to append.
func ErrorDecision(event DomainEvent, err error) DecisionResult {
	return DecisionResult{
		Outcome: errorOutcome,
		Events:  DomainEvents{event},
		Err:     err,
	}
}

// HasEventToAppend returns true if there is at least one event to append to the event store.
func (r DecisionResult) HasEventToAppend() bool {
	return r.Outcome != idempotentOutcome && len(r.Events) > 0
}

// HasError returns the error if there is one, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}

// IsIdempotent reports whether the command was already applied and nothing is to be appended.
func (r DecisionResult) IsIdempotent() bool {
	return r.Outcome == idempotentOutcome
}
