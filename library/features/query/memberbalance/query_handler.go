package memberbalance

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// QueryHandler answers balance queries, see shell.ProjectingQueryHandler.
type QueryHandler = shell.ProjectingQueryHandler[Query, Balance]

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return shell.NewProjectingQueryHandler[Query, Balance](eventStore, BuildEventFilter, ProjectBalance)
}
