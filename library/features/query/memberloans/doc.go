// Package memberloans implements the Member Loans query: open and closed borrow records of a member.
package memberloans
