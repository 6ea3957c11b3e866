package core

// MemberAccount is the state of one member as needed for circulation decisions.
type MemberAccount struct {
	MemberID     MemberIDString
	Registered   bool
	Name         string
	GroupID      GroupIDString
	OpenBorrows  int
	AccruedCents int64
	PaidCents    int64
}

// BalanceCents returns the outstanding fine balance.
func (m MemberAccount) BalanceCents() int64 {
	return m.AccruedCents - m.PaidCents
}

// ProjectMemberAccount replays history and returns the account of memberID.
func ProjectMemberAccount(history DomainEvents, memberID MemberIDString) MemberAccount {
	m := MemberAccount{MemberID: memberID}

	for _, event := range history {
		switch e := event.(type) {
		case MemberRegistered:
			if e.MemberID == memberID {
				m.Registered = true
				m.Name = e.Name
				m.GroupID = e.GroupID
			}

		case ItemCheckedOut:
			if e.MemberID == memberID {
				m.OpenBorrows++
			}

		case ItemReturned:
			if e.MemberID == memberID {
				m.OpenBorrows--
				m.AccruedCents += e.FineAccruedCents
			}

		case FinePaid:
			if e.MemberID == memberID {
				m.PaidCents += e.AmountCents
			}
		}
	}

	return m
}
