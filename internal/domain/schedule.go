package domain

import (
	"fmt"
	"time"
)

// PaymentSchedule is the ordered list of tranches for one payment frequency.
// Invariants: tranches ascend by due date, share one currency, and sum exactly
// to the total they were generated from.
type PaymentSchedule struct {
	Frequency PaymentFrequency
	Tranches  []PaymentTranche
}

// Next returns the due date one frequency period after t.
func (f PaymentFrequency) Next(t time.Time) time.Time {
	switch f {
	case FrequencyMonthly:
		return t.AddDate(0, 1, 0)
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// GenerateSchedule splits total into count tranches of equal value, the final
// tranche absorbing the rounding remainder so the sum is exact. Due dates are
// spaced by the frequency period starting at startDate.
func GenerateSchedule(total Money, frequency PaymentFrequency, count int, startDate time.Time) (PaymentSchedule, error) {
	if count < 1 {
		return PaymentSchedule{}, fmt.Errorf("%w: tranche count %d", ErrValidation, count)
	}
	if !ValidFrequencies[string(frequency)] {
		return PaymentSchedule{}, fmt.Errorf("%w: unknown frequency %q", ErrValidation, frequency)
	}
	amounts, err := total.Split(count)
	if err != nil {
		return PaymentSchedule{}, err
	}
	tranches := make([]PaymentTranche, count)
	due := startDate
	for i, amount := range amounts {
		tranches[i] = PaymentTranche{
			DueDate: due,
			Amount:  amount,
			Status:  TrancheNotPaid,
		}
		due = frequency.Next(due)
	}
	return PaymentSchedule{Frequency: frequency, Tranches: tranches}, nil
}

// Total sums the tranche amounts. An empty schedule has no currency to sum in
// and returns a zero Money.
func (s PaymentSchedule) Total() Money {
	if len(s.Tranches) == 0 {
		return Money{}
	}
	total := Money{CurrencyCode: s.Tranches[0].Amount.CurrencyCode}
	for _, t := range s.Tranches {
		sum, err := total.Add(t.Amount)
		if err != nil {
			return Money{}
		}
		total = sum
	}
	return total
}

// Validate checks the schedule invariants: known frequency, ascending due
// dates, and a single shared currency. Used when accepting imported state.
func (s PaymentSchedule) Validate() error {
	if !ValidFrequencies[string(s.Frequency)] {
		return fmt.Errorf("%w: unknown frequency %q", ErrValidation, s.Frequency)
	}
	for i, t := range s.Tranches {
		if i > 0 {
			if t.DueDate.Before(s.Tranches[i-1].DueDate) {
				return fmt.Errorf("%w: tranche %d due before tranche %d", ErrValidation, i, i-1)
			}
			if t.Amount.CurrencyCode != s.Tranches[0].Amount.CurrencyCode {
				return fmt.Errorf("%w: tranche %d currency %s differs from %s",
					ErrValidation, i, t.Amount.CurrencyCode, s.Tranches[0].Amount.CurrencyCode)
			}
		}
	}
	return nil
}

func (s PaymentSchedule) clone() PaymentSchedule {
	tranches := make([]PaymentTranche, len(s.Tranches))
	for i, t := range s.Tranches {
		tranches[i] = t.clone()
	}
	return PaymentSchedule{Frequency: s.Frequency, Tranches: tranches}
}
