package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrStr(s string) *string { return &s }

func validMinimalDocument() *ContractDocument {
	return &ContractDocument{
		Contract: ContractSection{
			From: PartyRecord{Name: "Alice Jensen"},
			To:   PartyRecord{Name: "Bob Okafor"},
			Details: DetailsRecord{
				StartDate: "2025-04-01",
				EndDate:   "2025-06-01",
			},
		},
		Payment: PaymentSection{
			Currency:        "USD",
			TotalPayable:    "1000.00",
			TotalReceivable: "900.00",
			FeeFromPayer:    "50.00",
			FeeFromPayee:    "50.00",
		},
	}
}

func TestValidateDocument_ValidMinimal(t *testing.T) {
	errs := ValidateDocument(validMinimalDocument())
	assert.Empty(t, errs)
}

func TestValidateDocument_MissingPartyNames(t *testing.T) {
	doc := validMinimalDocument()
	doc.Contract.From.Name = ""
	doc.Contract.To.Name = ""

	errs := ValidateDocument(doc)
	assert.Len(t, errs, 2)
}

func TestValidateDocument_BadStatusAndProgress(t *testing.T) {
	doc := validMinimalDocument()
	doc.Contract.Status = "frozen"
	doc.Contract.Progress = 140

	errs := ValidateDocument(doc)
	require := assert.New(t)
	require.Len(errs, 2)
}

func TestValidateDocument_BadAmounts(t *testing.T) {
	doc := validMinimalDocument()
	doc.Payment.TotalPayable = "a lot"
	doc.Payment.FeeFromPayer = "-50.00"
	doc.Payment.TotalReceivable = ""

	errs := ValidateDocument(doc)
	assert.Len(t, errs, 3)
}

func TestValidateDocument_ScheduleChecks(t *testing.T) {
	doc := validMinimalDocument()
	doc.Payment.Schedules = []ScheduleRecord{
		{Frequency: "monthly", Tranches: []TrancheRecord{
			{DueDate: "2025-04-01", Amount: "500.00"},
			{DueDate: "04/01/2025", Amount: "500.00", Status: "pending"},
		}},
		{Frequency: "monthly", Tranches: []TrancheRecord{
			{DueDate: "2025-04-01", Amount: "500.00"},
		}},
		{Frequency: "hourly"},
	}

	errs := ValidateDocument(doc)
	// Bad due date, bad tranche status, duplicate frequency, unknown
	// frequency, empty tranche list.
	assert.Len(t, errs, 5)
}

func TestValidateDocument_PartialNeedsMatchingSchedule(t *testing.T) {
	doc := validMinimalDocument()
	doc.Payment.SelectedType = "partial"
	doc.Payment.SelectedFrequency = "weekly"
	doc.Payment.Schedules = []ScheduleRecord{
		{Frequency: "monthly", Tranches: []TrancheRecord{
			{DueDate: "2025-04-01", Amount: "1000.00"},
		}},
	}

	errs := ValidateDocument(doc)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "no matching schedule")
}

func TestValidateDocument_HistoryChecks(t *testing.T) {
	doc := validMinimalDocument()
	doc.History = []HistoryRecord{
		{Action: "Contract Signed", Actor: "Alice Jensen", Timestamp: "2025-03-02T10:00:00Z"},
		{Actor: "Bob Okafor", Timestamp: "yesterday"},
	}

	errs := ValidateDocument(doc)
	assert.Len(t, errs, 2)
}
