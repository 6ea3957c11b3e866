// Package returnitem implements the Return Item use case.
//
// A return closes the member's open borrow record, charges the late fine and hands the
// item to the next hold in line within the same append.
package returnitem
