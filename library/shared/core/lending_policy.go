package core

import (
	"math"
	"time"
)

const (
	// DefaultLendingPeriod applies to members whose group has no own period.
	DefaultLendingPeriod = 14 * 24 * time.Hour

	// DefaultDailyFineCents is charged per started day after the due date.
	DefaultDailyFineCents = int64(25)
)

// LendingPolicy holds the lending periods per member group and the daily fine rate.
type LendingPolicy struct {
	DefaultPeriod  time.Duration
	GroupPeriods   map[GroupIDString]time.Duration
	DailyFineCents int64
}

// DefaultLendingPolicy returns a policy with a 14 day period for every group and 25 cents per day late.
func DefaultLendingPolicy() LendingPolicy {
	return LendingPolicy{
		DefaultPeriod:  DefaultLendingPeriod,
		GroupPeriods:   map[GroupIDString]time.Duration{},
		DailyFineCents: DefaultDailyFineCents,
	}
}

// LendingPeriod returns the period for groupID.
func (p LendingPolicy) LendingPeriod(groupID GroupIDString) time.Duration {
	if period, ok := p.GroupPeriods[groupID]; ok && period > 0 {
		return period
	}

	if p.DefaultPeriod > 0 {
		return p.DefaultPeriod
	}

	return DefaultLendingPeriod
}

// DueDate returns borrowDate plus the lending period of groupID.
func (p LendingPolicy) DueDate(borrowDate time.Time, groupID GroupIDString) time.Time {
	return borrowDate.Add(p.LendingPeriod(groupID))
}

// DaysLate returns the number of started days between dueDate and returnDate, 0 if not late.
func DaysLate(dueDate time.Time, returnDate time.Time) int {
	if !returnDate.After(dueDate) {
		return 0
	}

	return int(math.Ceil(returnDate.Sub(dueDate).Hours() / 24))
}

// Fine returns max(0, daysLate * daily rate).
func (p LendingPolicy) Fine(daysLate int) int64 {
	if daysLate <= 0 {
		return 0
	}

	return int64(daysLate) * p.DailyFineCents
}
