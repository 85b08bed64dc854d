package export

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bharathg-scrimpify/accord/internal/domain"
)

const dateLayout = "2006-01-02"

// ToDocument renders a contract aggregate as an interchange document.
func ToDocument(c *domain.Contract) *ContractDocument {
	doc := &ContractDocument{
		Contract: ContractSection{
			ID:             c.ID,
			ShortCode:      c.ShortCode,
			Status:         string(c.Status),
			Progress:       c.Progress,
			From:           toPartyRecord(c.From),
			To:             toPartyRecord(c.To),
			PayerConfirmed: c.PayerConfirmed,
			PayeeConfirmed: c.PayeeConfirmed,
			CreatedAt:      c.CreatedAt.Format(time.RFC3339),
			UpdatedAt:      c.UpdatedAt.Format(time.RFC3339),
			Details: DetailsRecord{
				PlaceOfService:    c.Details.PlaceOfService,
				StartDate:         c.Details.StartDate.Format(dateLayout),
				EndDate:           c.Details.EndDate.Format(dateLayout),
				Rate:              c.Details.Rate,
				MealsIncluded:     c.Details.MealsIncluded,
				AdditionalDetails: c.Details.AdditionalDetails,
			},
		},
		Payment: PaymentSection{
			Currency:          c.Payment.TotalPayable.CurrencyCode,
			TotalPayable:      c.Payment.TotalPayable.Amount.String(),
			TotalReceivable:   c.Payment.TotalReceivable.Amount.String(),
			FeeFromPayer:      c.Payment.FeeFromPayer.Amount.String(),
			FeeFromPayee:      c.Payment.FeeFromPayee.Amount.String(),
			SelectedType:      string(c.Payment.SelectedType),
			SelectedFrequency: string(c.Payment.SelectedFrequency),
		},
	}

	for _, s := range c.Payment.Schedules {
		rec := ScheduleRecord{Frequency: string(s.Frequency)}
		for _, t := range s.Tranches {
			rec.Tranches = append(rec.Tranches, TrancheRecord{
				DueDate:     t.DueDate.Format(dateLayout),
				Amount:      t.Amount.Amount.String(),
				Status:      string(t.Status),
				RequestDate: formatOptionalTime(t.RequestDate),
				PaymentDate: formatOptionalTime(t.PaymentDate),
			})
		}
		doc.Payment.Schedules = append(doc.Payment.Schedules, rec)
	}

	for _, h := range c.History {
		doc.History = append(doc.History, HistoryRecord{
			ID:        h.ID,
			Timestamp: h.Timestamp.Format(time.RFC3339),
			Action:    h.Action,
			Actor:     h.Actor,
			Notes:     h.Notes,
		})
	}
	return doc
}

// FromDocument converts a validated document back into a contract aggregate.
// Call ValidateDocument first; FromDocument assumes the document is valid.
// Missing IDs and timestamps are filled in so hand-written files import
// cleanly.
func FromDocument(doc *ContractDocument) (*domain.Contract, error) {
	now := time.Now().UTC()

	c := domain.Contract{
		ID:             doc.Contract.ID,
		ShortCode:      doc.Contract.ShortCode,
		From:           fromPartyRecord(doc.Contract.From),
		To:             fromPartyRecord(doc.Contract.To),
		Status:         domain.ContractStatus(doc.Contract.Status),
		Progress:       doc.Contract.Progress,
		PayerConfirmed: doc.Contract.PayerConfirmed,
		PayeeConfirmed: doc.Contract.PayeeConfirmed,
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = domain.StatusDraft
	}
	if doc.Contract.Progress == 0 {
		c.Progress = domain.ProgressFor(c.Status)
	}

	var err error
	if c.Details.StartDate, err = time.Parse(dateLayout, doc.Contract.Details.StartDate); err != nil {
		return nil, fmt.Errorf("parsing details.start_date: %w", err)
	}
	if c.Details.EndDate, err = time.Parse(dateLayout, doc.Contract.Details.EndDate); err != nil {
		return nil, fmt.Errorf("parsing details.end_date: %w", err)
	}
	c.Details.PlaceOfService = doc.Contract.Details.PlaceOfService
	c.Details.Rate = doc.Contract.Details.Rate
	c.Details.MealsIncluded = doc.Contract.Details.MealsIncluded
	c.Details.AdditionalDetails = doc.Contract.Details.AdditionalDetails

	c.CreatedAt = parseOrDefault(doc.Contract.CreatedAt, now)
	c.UpdatedAt = parseOrDefault(doc.Contract.UpdatedAt, now)

	currency := doc.Payment.Currency
	if c.Payment.TotalPayable, err = domain.NewMoneyFromString(currency, doc.Payment.TotalPayable); err != nil {
		return nil, fmt.Errorf("parsing payment.total_payable: %w", err)
	}
	if c.Payment.TotalReceivable, err = domain.NewMoneyFromString(currency, doc.Payment.TotalReceivable); err != nil {
		return nil, fmt.Errorf("parsing payment.total_receivable: %w", err)
	}
	if c.Payment.FeeFromPayer, err = domain.NewMoneyFromString(currency, doc.Payment.FeeFromPayer); err != nil {
		return nil, fmt.Errorf("parsing payment.fee_from_payer: %w", err)
	}
	if c.Payment.FeeFromPayee, err = domain.NewMoneyFromString(currency, doc.Payment.FeeFromPayee); err != nil {
		return nil, fmt.Errorf("parsing payment.fee_from_payee: %w", err)
	}
	c.Payment.SelectedType = domain.PaymentType(doc.Payment.SelectedType)
	c.Payment.SelectedFrequency = domain.PaymentFrequency(doc.Payment.SelectedFrequency)

	for _, rec := range doc.Payment.Schedules {
		sched := domain.PaymentSchedule{Frequency: domain.PaymentFrequency(rec.Frequency)}
		for i, tr := range rec.Tranches {
			var t domain.PaymentTranche
			if t.DueDate, err = time.Parse(dateLayout, tr.DueDate); err != nil {
				return nil, fmt.Errorf("parsing %s tranche %d due_date: %w", rec.Frequency, i+1, err)
			}
			if t.Amount, err = domain.NewMoneyFromString(currency, tr.Amount); err != nil {
				return nil, fmt.Errorf("parsing %s tranche %d amount: %w", rec.Frequency, i+1, err)
			}
			t.Status = domain.TrancheStatus(tr.Status)
			if t.Status == "" {
				t.Status = domain.TrancheNotPaid
			}
			if t.RequestDate, err = parseOptionalTime(tr.RequestDate); err != nil {
				return nil, fmt.Errorf("parsing %s tranche %d request_date: %w", rec.Frequency, i+1, err)
			}
			if t.PaymentDate, err = parseOptionalTime(tr.PaymentDate); err != nil {
				return nil, fmt.Errorf("parsing %s tranche %d payment_date: %w", rec.Frequency, i+1, err)
			}
			sched.Tranches = append(sched.Tranches, t)
		}
		c.Payment.Schedules = append(c.Payment.Schedules, sched)
	}

	for i, rec := range doc.History {
		h := domain.HistoryEntry{
			ID:     rec.ID,
			Action: rec.Action,
			Actor:  rec.Actor,
			Notes:  rec.Notes,
		}
		if h.ID == "" {
			h.ID = uuid.New().String()
		}
		if h.Timestamp, err = time.Parse(time.RFC3339, rec.Timestamp); err != nil {
			return nil, fmt.Errorf("parsing history[%d].timestamp: %w", i, err)
		}
		c.History = append(c.History, h)
	}

	return &c, nil
}

func toPartyRecord(p domain.ContractParty) PartyRecord {
	return PartyRecord{
		Name:         p.Name,
		Email:        p.Email,
		Organization: p.Organization,
		Address:      p.Address,
		Signature:    p.Signature,
	}
}

func fromPartyRecord(rec PartyRecord) domain.ContractParty {
	return domain.ContractParty{
		Name:         rec.Name,
		Email:        rec.Email,
		Organization: rec.Organization,
		Address:      rec.Address,
		Signature:    rec.Signature,
	}
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func parseOptionalTime(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseOrDefault(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fallback
	}
	return t
}
