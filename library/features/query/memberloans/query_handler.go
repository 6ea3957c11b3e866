package memberloans

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// QueryHandler answers member loan queries, see shell.ProjectingQueryHandler.
type QueryHandler = shell.ProjectingQueryHandler[Query, MemberLoans]

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return shell.NewProjectingQueryHandler[Query, MemberLoans](eventStore, BuildEventFilter, ProjectMemberLoans)
}
