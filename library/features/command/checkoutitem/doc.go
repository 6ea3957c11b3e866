// Package checkoutitem implements the Checkout Item use case.
//
// A checkout lends one available item to a member and opens a borrow record whose due
// date follows from the lending period of the member's group. Items reserved by a
// fulfilled hold, or with a hold next in line, only go to that hold's member.
package checkoutitem
