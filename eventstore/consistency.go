package eventstore

import "context"

// ConsistencyLevel tells an engine where a Query may be served from.
type ConsistencyLevel int

const (
	// StrongConsistency reads from the primary. Command handlers use it since they must see
	// their own writes before deciding.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows reads from a replica. Query handlers use it.
	EventualConsistency
)

type contextKey string

// ConsistencyLevelKey is the context key for the consistency level.
const ConsistencyLevelKey contextKey = "eventstore.consistency_level"

// WithStrongConsistency marks ctx so that Query hits the primary database.
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency marks ctx so that Query may hit a replica database.
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel returns the level stored in ctx, StrongConsistency if none is set.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
