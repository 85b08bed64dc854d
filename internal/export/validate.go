package export

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bharathg-scrimpify/accord/internal/domain"
)

var (
	validTrancheStatuses = map[string]bool{
		"": true, "not_paid": true, "requested": true, "paid": true, "cancelled": true,
	}
	validPaymentTypes = map[string]bool{"": true, "one_time": true, "partial": true}
)

// ValidateDocument checks a contract document before conversion. Returns a
// slice of all validation errors found.
func ValidateDocument(doc *ContractDocument) []error {
	var errs []error

	errs = append(errs, validateContractSection(&doc.Contract)...)
	errs = append(errs, validatePaymentSection(&doc.Payment)...)

	for i, h := range doc.History {
		if h.Action == "" {
			errs = append(errs, fmt.Errorf("history[%d].action is required", i))
		}
		if h.Timestamp == "" {
			errs = append(errs, fmt.Errorf("history[%d].timestamp is required", i))
		} else if _, err := time.Parse(time.RFC3339, h.Timestamp); err != nil {
			errs = append(errs, fmt.Errorf("history[%d].timestamp: invalid RFC3339 value %q", i, h.Timestamp))
		}
	}

	return errs
}

func validateContractSection(c *ContractSection) []error {
	var errs []error

	if c.From.Name == "" {
		errs = append(errs, fmt.Errorf("contract.from.name is required"))
	}
	if c.To.Name == "" {
		errs = append(errs, fmt.Errorf("contract.to.name is required"))
	}
	if c.Status != "" && !domain.ContractStatus(c.Status).Valid() {
		errs = append(errs, fmt.Errorf("contract.status: invalid value %q", c.Status))
	}
	if c.Progress < 0 || c.Progress > 100 {
		errs = append(errs, fmt.Errorf("contract.progress %d out of range", c.Progress))
	}

	errs = append(errs, validateDate("contract.details.start_date", c.Details.StartDate, true)...)
	errs = append(errs, validateDate("contract.details.end_date", c.Details.EndDate, true)...)

	return errs
}

func validatePaymentSection(p *PaymentSection) []error {
	var errs []error

	if p.Currency == "" {
		errs = append(errs, fmt.Errorf("payment.currency is required"))
	}
	errs = append(errs, validateAmount("payment.total_payable", p.TotalPayable)...)
	errs = append(errs, validateAmount("payment.total_receivable", p.TotalReceivable)...)
	errs = append(errs, validateAmount("payment.fee_from_payer", p.FeeFromPayer)...)
	errs = append(errs, validateAmount("payment.fee_from_payee", p.FeeFromPayee)...)

	if !validPaymentTypes[p.SelectedType] {
		errs = append(errs, fmt.Errorf("payment.selected_type: invalid value %q", p.SelectedType))
	}
	if p.SelectedFrequency != "" && !domain.ValidFrequencies[p.SelectedFrequency] {
		errs = append(errs, fmt.Errorf("payment.selected_frequency: invalid value %q", p.SelectedFrequency))
	}
	if p.SelectedType == "partial" {
		found := false
		for _, s := range p.Schedules {
			if s.Frequency == p.SelectedFrequency {
				found = true
			}
		}
		if !found {
			errs = append(errs, fmt.Errorf("payment.selected_frequency %q has no matching schedule", p.SelectedFrequency))
		}
	}

	seen := map[string]bool{}
	for i, s := range p.Schedules {
		prefix := fmt.Sprintf("payment.schedules[%d]", i)
		if !domain.ValidFrequencies[s.Frequency] {
			errs = append(errs, fmt.Errorf("%s.frequency: invalid value %q", prefix, s.Frequency))
		} else if seen[s.Frequency] {
			errs = append(errs, fmt.Errorf("%s: duplicate frequency %q", prefix, s.Frequency))
		}
		seen[s.Frequency] = true

		if len(s.Tranches) == 0 {
			errs = append(errs, fmt.Errorf("%s needs at least one tranche", prefix))
		}
		for j, t := range s.Tranches {
			tp := fmt.Sprintf("%s.tranches[%d]", prefix, j)
			errs = append(errs, validateDate(tp+".due_date", t.DueDate, true)...)
			errs = append(errs, validateAmount(tp+".amount", t.Amount)...)
			if !validTrancheStatuses[t.Status] {
				errs = append(errs, fmt.Errorf("%s.status: invalid value %q", tp, t.Status))
			}
		}
	}

	return errs
}

func validateDate(field, value string, required bool) []error {
	if value == "" {
		if required {
			return []error{fmt.Errorf("%s is required", field)}
		}
		return nil
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, value)}
	}
	return nil
}

func validateAmount(field, value string) []error {
	if value == "" {
		return []error{fmt.Errorf("%s is required", field)}
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return []error{fmt.Errorf("%s: invalid decimal %q", field, value)}
	}
	if d.IsNegative() {
		return []error{fmt.Errorf("%s must not be negative", field)}
	}
	return nil
}
