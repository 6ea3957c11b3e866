package holdqueue

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// QueryHandler answers hold queue queries, see shell.ProjectingQueryHandler.
type QueryHandler = shell.ProjectingQueryHandler[Query, ItemHoldQueue]

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return shell.NewProjectingQueryHandler[Query, ItemHoldQueue](eventStore, BuildEventFilter, ProjectItemHoldQueue)
}
