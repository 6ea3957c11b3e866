// Package fulfillhold implements the Fulfill Hold use case.
//
// Fulfilling marks the next hold in line as fulfilled and reserves the available item for
// its member. Returns fulfill implicitly, this use case covers the explicit desk action.
package fulfillhold
