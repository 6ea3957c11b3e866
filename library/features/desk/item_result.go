package desk

import (
	"errors"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// Outcomes of one item.
const (
	OutcomeSuccess    = "success"
	OutcomeIdempotent = "idempotent"
	OutcomeRejected   = "rejected"
)

// ItemResult is the outcome of one item of a batch.
type ItemResult struct {
	ItemID  core.ItemIDString `json:"itemId"`
	Outcome string            `json:"outcome"`
	Reason  string            `json:"reason,omitempty"`

	// Kind is one of core.ErrConflict, core.ErrNotFound, core.ErrValidation for rejected items.
	Kind error `json:"-"`

	DueDate          *time.Time `json:"dueDate,omitempty"`
	DaysLate         int        `json:"daysLate,omitempty"`
	FineAccruedCents int64      `json:"fineAccruedCents,omitempty"`
}

// Succeeded reports whether the item was processed, idempotent outcomes included.
func (r ItemResult) Succeeded() bool {
	return r.Outcome != OutcomeRejected
}

// BatchInterruptedError is returned when an infrastructure error stops a batch. Processed holds
// the items handled before the failing one, their events are appended.
type BatchInterruptedError struct {
	Processed BatchResult
	ItemID    core.ItemIDString
	Err       error
}

func (e BatchInterruptedError) Error() string {
	return "batch interrupted at item " + e.ItemID + ": " + e.Err.Error()
}

func (e BatchInterruptedError) Unwrap() error {
	return e.Err
}

// BatchResult holds the per-item results in request order.
type BatchResult struct {
	Items []ItemResult `json:"items"`
}

// AllRejected reports whether no item of a non-empty batch succeeded.
func (b BatchResult) AllRejected() bool {
	if len(b.Items) == 0 {
		return false
	}

	for _, item := range b.Items {
		if item.Succeeded() {
			return false
		}
	}

	return true
}

// SucceededItemIDs returns the ids of the items that succeeded.
func (b BatchResult) SucceededItemIDs() []core.ItemIDString {
	ids := make([]core.ItemIDString, 0, len(b.Items))
	for _, item := range b.Items {
		if item.Succeeded() {
			ids = append(ids, item.ItemID)
		}
	}

	return ids
}

// itemResultFrom turns a handler outcome into an ItemResult.
// A non-business error is returned as is and aborts the batch.
func itemResultFrom(itemID core.ItemIDString, result shell.HandlerResult, err error) (ItemResult, error) {
	if err != nil {
		var ruleErr core.BusinessRuleError
		if !errors.As(err, &ruleErr) {
			return ItemResult{}, err
		}

		return ItemResult{
			ItemID:  itemID,
			Outcome: OutcomeRejected,
			Reason:  ruleErr.Reason,
			Kind:    ruleErr.Kind,
		}, nil
	}

	if result.Idempotent {
		return ItemResult{ItemID: itemID, Outcome: OutcomeIdempotent}, nil
	}

	itemResult := ItemResult{ItemID: itemID, Outcome: OutcomeSuccess}

	for _, event := range result.Events {
		switch e := event.(type) {
		case core.ItemCheckedOut:
			dueDate := e.DueDate
			itemResult.DueDate = &dueDate
		case core.ItemReturned:
			itemResult.DaysLate = e.DaysLate
			itemResult.FineAccruedCents = e.FineAccruedCents
		}
	}

	return itemResult, nil
}
