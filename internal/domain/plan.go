package domain

import "fmt"

// PaymentPlan selects one-time vs. partial payment for a contract and carries
// the fee split. Fees arrive pre-computed per contract; this type only carries
// and exposes them, it never recomputes them.
type PaymentPlan struct {
	TotalPayable    Money
	TotalReceivable Money
	FeeFromPayer    Money
	FeeFromPayee    Money
	Schedules       []PaymentSchedule

	// SelectedType is empty until the payer picks a method.
	SelectedType      PaymentType
	SelectedFrequency PaymentFrequency
}

// Selected reports whether a payment method has been chosen.
func (p PaymentPlan) Selected() bool {
	return p.SelectedType != ""
}

// SelectOneTime picks the one-time method and clears any frequency selection.
func (p PaymentPlan) SelectOneTime() PaymentPlan {
	p = p.clone()
	p.SelectedType = PaymentOneTime
	p.SelectedFrequency = ""
	return p
}

// SelectPartial picks the partial method with the given frequency. A schedule
// for that frequency must already exist on the plan.
func (p PaymentPlan) SelectPartial(frequency PaymentFrequency) (PaymentPlan, error) {
	if _, ok := p.scheduleIndex(frequency); !ok {
		return p, fmt.Errorf("%w: %q", ErrNoScheduleForFrequency, frequency)
	}
	p = p.clone()
	p.SelectedType = PaymentPartial
	p.SelectedFrequency = frequency
	return p, nil
}

// ActiveSchedule returns the schedule matching the selected frequency, or
// false when the plan is one-time or unselected.
func (p PaymentPlan) ActiveSchedule() (PaymentSchedule, bool) {
	if p.SelectedType != PaymentPartial {
		return PaymentSchedule{}, false
	}
	i, ok := p.scheduleIndex(p.SelectedFrequency)
	if !ok {
		return PaymentSchedule{}, false
	}
	return p.Schedules[i], true
}

func (p PaymentPlan) scheduleIndex(frequency PaymentFrequency) (int, bool) {
	for i, s := range p.Schedules {
		if s.Frequency == frequency {
			return i, true
		}
	}
	return 0, false
}

// CheckAccounting verifies the advisory identity
// totalPayable = totalReceivable + feeFromPayer + feeFromPayee.
// Inconsistent plans are reported but never rejected; the admin console may
// edit fee fields and tranche amounts independently.
func (p PaymentPlan) CheckAccounting() error {
	sum, err := p.TotalReceivable.Add(p.FeeFromPayer)
	if err != nil {
		return err
	}
	sum, err = sum.Add(p.FeeFromPayee)
	if err != nil {
		return err
	}
	if !sum.Equal(p.TotalPayable) {
		return fmt.Errorf("%w: payable %s != receivable+fees %s", ErrValidation, p.TotalPayable, sum)
	}
	return nil
}

func (p PaymentPlan) clone() PaymentPlan {
	schedules := make([]PaymentSchedule, len(p.Schedules))
	for i, s := range p.Schedules {
		schedules[i] = s.clone()
	}
	p.Schedules = schedules
	return p
}
