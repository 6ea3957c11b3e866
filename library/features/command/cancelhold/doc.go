// Package cancelhold implements the Cancel Hold use case.
//
// Cancelling removes the member's hold from the queue, the remaining holds keep their
// order. Cancelling a hold that already reserves the item passes the reservation on to
// the next hold in line.
package cancelhold
