// Package requesthold implements the Request Hold use case.
//
// Members queue for items that are checked out or reserved for someone else.
// The queue is FIFO by request time, see core.HoldQueue.
package requesthold
