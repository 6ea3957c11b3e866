package overdueloans

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// QueryHandler answers overdue loan queries, see shell.ProjectingQueryHandler.
type QueryHandler = shell.ProjectingQueryHandler[Query, OverdueLoans]

// NewQueryHandler creates a new QueryHandler that prices fines with policy.
func NewQueryHandler(eventStore shell.QueriesEvents, policy core.LendingPolicy) QueryHandler {
	return shell.NewProjectingQueryHandler[Query, OverdueLoans](eventStore, BuildEventFilter, NewProjector(policy).Project)
}
