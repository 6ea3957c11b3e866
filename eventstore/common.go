package eventstore

import (
	"errors"
)

var (
	ErrEmptyEventsTableName        = errors.New("events table name must not be empty")
	ErrNilDatabaseConnection       = errors.New("database connection must not be nil")
	ErrConcurrencyConflict         = errors.New("concurrency conflict: the event stream changed since it was queried")
	ErrQueryingEventsFailed        = errors.New("querying events failed")
	ErrScanningDBRowFailed         = errors.New("scanning db row failed")
	ErrBuildingStorableEventFailed = errors.New("building storable event failed")
	ErrBuildingQueryFailed         = errors.New("building query failed")
	ErrAppendingEventFailed        = errors.New("appending event(s) failed")
	ErrGettingRowsAffectedFailed   = errors.New("getting rows affected failed")
	ErrNoEventsToAppend            = errors.New("no events to append")
)

// MaxSequenceNumberUint is the highest sequence number among the events matching a Filter,
// 0 when no event matches.
type MaxSequenceNumberUint = uint
