package postgresengine

import (
	"context"
	_ "embed"
	"errors"
	"strings"
)

const tablePlaceholder = "{{table}}"

//go:embed schema.sql
var schemaSQL string

// ErrMigrationFailed is returned when the events table or one of its indexes could not be created.
var ErrMigrationFailed = errors.New("events table migration failed")

// Migrate creates the events table and its indexes if they do not exist yet.
func (es *EventStore) Migrate(ctx context.Context) error {
	for _, statement := range es.schemaStatements() {
		if _, err := es.db.Exec(ctx, statement); err != nil {
			es.logError(ctx, logMsgDBExecFailed, err, logAttrQuery, statement)

			return errors.Join(ErrMigrationFailed, err)
		}
	}

	return nil
}

func (es *EventStore) schemaStatements() []string {
	rendered := strings.ReplaceAll(schemaSQL, tablePlaceholder, es.eventTableName)

	statements := make([]string, 0, 3)
	for _, statement := range strings.Split(rendered, ";") {
		if trimmed := strings.TrimSpace(statement); trimmed != "" {
			statements = append(statements, trimmed)
		}
	}

	return statements
}
