package domain

import (
	"fmt"
	"time"
)

// PaymentTranche is a single scheduled installment. Transitions return a new
// value so callers can compare old and new states; the receiver is never
// mutated.
type PaymentTranche struct {
	DueDate     time.Time
	Amount      Money
	Status      TrancheStatus
	RequestDate *time.Time
	PaymentDate *time.Time
}

// Request moves not_paid -> requested and stamps the request date.
func (t PaymentTranche) Request(now time.Time) (PaymentTranche, error) {
	if t.Status != TrancheNotPaid {
		return t, fmt.Errorf("%w: cannot request payment on %s tranche", ErrInvalidTransition, t.Status)
	}
	t.Status = TrancheRequested
	t.RequestDate = &now
	return t, nil
}

// Approve moves requested -> paid and stamps the payment date. This is the
// only transition that models money moving; it is a confirmation convention,
// not a settlement call.
func (t PaymentTranche) Approve(now time.Time) (PaymentTranche, error) {
	if t.Status != TrancheRequested {
		return t, fmt.Errorf("%w: cannot approve %s tranche", ErrInvalidTransition, t.Status)
	}
	t.Status = TranchePaid
	t.PaymentDate = &now
	return t, nil
}

// Cancel moves requested -> cancelled.
func (t PaymentTranche) Cancel() (PaymentTranche, error) {
	if t.Status != TrancheRequested {
		return t, fmt.Errorf("%w: cannot cancel %s tranche", ErrInvalidTransition, t.Status)
	}
	t.Status = TrancheCancelled
	return t, nil
}

func (t PaymentTranche) clone() PaymentTranche {
	if t.RequestDate != nil {
		d := *t.RequestDate
		t.RequestDate = &d
	}
	if t.PaymentDate != nil {
		d := *t.PaymentDate
		t.PaymentDate = &d
	}
	return t
}
