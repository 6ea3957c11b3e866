package catalogitems

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// QueryHandler answers catalog queries, see shell.ProjectingQueryHandler.
type QueryHandler = shell.ProjectingQueryHandler[Query, CatalogItems]

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return shell.NewProjectingQueryHandler[Query, CatalogItems](eventStore, BuildEventFilter, ProjectCatalogItems)
}
