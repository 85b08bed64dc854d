package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bharathg-scrimpify/accord/internal/domain"
)

var testShortCodeCounter atomic.Int64

func defaultShortCode() string {
	n := testShortCodeCounter.Add(1)
	return fmt.Sprintf("CT9%03d", n)
}

// USD builds a Money value from a decimal string. Panics on malformed input,
// acceptable in test fixtures.
func USD(amount string) domain.Money {
	return domain.Money{CurrencyCode: "USD", Amount: decimal.RequireFromString(amount)}
}

// NewTestPlan builds a plan with a two-tranche monthly schedule and a
// four-tranche weekly schedule over USD 1000, fees 50/50.
func NewTestPlan() domain.PaymentPlan {
	start := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	monthly, err := domain.GenerateSchedule(USD("1000.00"), domain.FrequencyMonthly, 2, start)
	if err != nil {
		panic(err)
	}
	weekly, err := domain.GenerateSchedule(USD("1000.00"), domain.FrequencyWeekly, 4, start)
	if err != nil {
		panic(err)
	}
	return domain.PaymentPlan{
		TotalPayable:    USD("1000.00"),
		TotalReceivable: USD("900.00"),
		FeeFromPayer:    USD("50.00"),
		FeeFromPayee:    USD("50.00"),
		Schedules:       []domain.PaymentSchedule{monthly, weekly},
	}
}

// Contract options
type ContractOption func(*domain.Contract)

func WithShortCode(code string) ContractOption {
	return func(c *domain.Contract) {
		c.ShortCode = code
	}
}

func WithContractStatus(s domain.ContractStatus) ContractOption {
	return func(c *domain.Contract) {
		c.Status = s
		c.Progress = domain.ProgressFor(s)
	}
}

func WithSignatures() ContractOption {
	return func(c *domain.Contract) {
		c.From.Signature = c.From.Name
		c.To.Signature = c.To.Name
	}
}

func WithSelectedOneTime() ContractOption {
	return func(c *domain.Contract) {
		c.Payment.SelectedType = domain.PaymentOneTime
		c.Payment.SelectedFrequency = ""
	}
}

func WithSelectedPartial(f domain.PaymentFrequency) ContractOption {
	return func(c *domain.Contract) {
		c.Payment.SelectedType = domain.PaymentPartial
		c.Payment.SelectedFrequency = f
	}
}

func WithHistoryEntry(action, actor string) ContractOption {
	return func(c *domain.Contract) {
		c.History = append(c.History, domain.HistoryEntry{
			ID:        uuid.New().String(),
			Timestamp: c.UpdatedAt,
			Action:    action,
			Actor:     actor,
		})
	}
}

// NewTestContract builds a draft contract between Alice (payer) and Bob
// (payee) with the standard test payment plan.
func NewTestContract(opts ...ContractOption) *domain.Contract {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	c := domain.NewContract(uuid.New().String(),
		domain.ContractParty{Name: "Alice Jensen", Email: "alice@example.com", Organization: "Jensen Consulting"},
		domain.ContractParty{Name: "Bob Okafor", Email: "bob@example.com", Address: "12 Harbour Rd"},
		domain.ContractDetails{
			PlaceOfService: "Oslo",
			StartDate:      time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			Rate:           "USD 500/day",
			MealsIncluded:  true,
		},
		NewTestPlan(), now)
	c.ShortCode = defaultShortCode()
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}
