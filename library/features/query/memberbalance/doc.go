// Package memberbalance implements the Member Balance query: accrued fines, payments and
// the outstanding balance of a member.
package memberbalance
