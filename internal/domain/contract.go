package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ContractDetails holds the negotiated terms of the engagement. Rate is
// free-form text (e.g. "USD 500/day") edited by the parties during drafting.
type ContractDetails struct {
	PlaceOfService    string
	StartDate         time.Time
	EndDate           time.Time
	Rate              string
	MealsIncluded     bool
	AdditionalDetails string
}

// Contract is the aggregate: lifecycle state, parties, terms, payment plan,
// and the append-only history log. All mutating operations are pure: they
// validate first, then return a new snapshot, leaving the receiver untouched
// on both success and failure. A failed operation therefore has zero side
// effects.
type Contract struct {
	ID        string
	ShortCode string

	// From pays, To performs the service and receives payment.
	From ContractParty
	To   ContractParty

	Details  ContractDetails
	Status   ContractStatus
	Progress int
	Payment  PaymentPlan

	// Completion confirmations collected while pending_completion.
	PayerConfirmed bool
	PayeeConfirmed bool

	History []HistoryEntry

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewContract creates a draft contract. History starts empty; entries are
// appended by mutating operations only.
func NewContract(id string, from, to ContractParty, details ContractDetails, payment PaymentPlan, now time.Time) Contract {
	return Contract{
		ID:        id,
		From:      from,
		To:        to,
		Details:   details,
		Status:    StatusDraft,
		Progress:  ProgressFor(StatusDraft),
		Payment:   payment,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Party returns the contract party for a payer or payee role.
func (c Contract) Party(role PartyRole) (ContractParty, bool) {
	switch role {
	case RolePayer:
		return c.From, true
	case RolePayee:
		return c.To, true
	}
	return ContractParty{}, false
}

// Sign records the actor's signature. Signing an already-signed slot is an
// idempotent no-op success, since the same view may submit twice. The payer
// signs during drafting; the payee signs during review, which activates the
// contract (the counterparty_sign lifecycle event).
func (c Contract) Sign(actor Actor, signature string, now time.Time) (Contract, error) {
	if signature == "" {
		signature = actor.Name
	}
	switch actor.Role {
	case RolePayer:
		if c.From.Signed() {
			return c, nil
		}
		if c.Status != StatusDraft {
			return c, fmt.Errorf("%w: payer signs while drafting, contract is %s", ErrInvalidTransition, c.Status)
		}
		out := c.clone()
		out.From.Signature = signature
		out.appendHistory(now, "Contract Signed", actor.Name, "")
		return out, nil
	case RolePayee:
		if c.To.Signed() {
			return c, nil
		}
		if c.Status != StatusPendingReview {
			return c, fmt.Errorf("%w: payee signs during review, contract is %s", ErrInvalidTransition, c.Status)
		}
		out := c.clone()
		out.To.Signature = signature
		out.setStatus(StatusActive, now)
		out.appendHistory(now, "Contract Signed", actor.Name, "counterparty signature activates the contract")
		return out, nil
	default:
		return c, fmt.Errorf("%w: %s cannot sign", ErrNotAuthorized, actor.Role)
	}
}

// eventRoles lists the roles permitted to fire each lifecycle event.
var eventRoles = map[LifecycleEvent][]PartyRole{
	EventSendForReview:     {RolePayer},
	EventCounterpartySign:  {RolePayee},
	EventStart:             {RolePayer},
	EventRequestCompletion: {RolePayee},
	EventConfirmCompletion: {RolePayer, RolePayee},
	EventCancel:            {RolePayer, RolePayee, RoleAdmin},
}

// Advance drives the contract lifecycle. Guards are checked in order; a
// failure reports the first unmet guard and mutates nothing.
func (c Contract) Advance(event LifecycleEvent, actor Actor, now time.Time) (Contract, error) {
	roles, ok := eventRoles[event]
	if !ok {
		return c, fmt.Errorf("%w: unknown event %q", ErrValidation, event)
	}
	allowed := false
	for _, r := range roles {
		if actor.Role == r {
			allowed = true
			break
		}
	}
	if !allowed {
		return c, fmt.Errorf("%w: %s cannot fire %s", ErrNotAuthorized, actor.Role, event)
	}

	next, err := NextStatus(c.Status, event)
	if err != nil {
		return c, err
	}

	switch event {
	case EventSendForReview:
		if !c.From.Signed() {
			return c, ErrSignatureRequired
		}
		if !c.Payment.Selected() {
			return c, ErrPaymentMethodRequired
		}
		out := c.clone()
		out.setStatus(next, now)
		out.appendHistory(now, "Sent for Review", actor.Name, "")
		return out, nil

	case EventCounterpartySign:
		// The payee's signature is what fires this transition; Sign takes
		// the same path. Advancing without a signature on file fails.
		if !c.To.Signed() {
			return c, ErrSignatureRequired
		}
		out := c.clone()
		out.setStatus(next, now)
		out.appendHistory(now, "Contract Activated", actor.Name, "")
		return out, nil

	case EventStart:
		out := c.clone()
		out.setStatus(next, now)
		out.appendHistory(now, "Contract Started", actor.Name, "")
		return out, nil

	case EventRequestCompletion:
		out := c.clone()
		out.setStatus(next, now)
		out.appendHistory(now, "Completion Requested", actor.Name, "")
		return out, nil

	case EventConfirmCompletion:
		out := c.clone()
		switch actor.Role {
		case RolePayer:
			if out.PayerConfirmed {
				return c, fmt.Errorf("%w: payer already confirmed completion", ErrInvalidTransition)
			}
			out.PayerConfirmed = true
		case RolePayee:
			if out.PayeeConfirmed {
				return c, fmt.Errorf("%w: payee already confirmed completion", ErrInvalidTransition)
			}
			out.PayeeConfirmed = true
		}
		if out.PayerConfirmed && out.PayeeConfirmed {
			out.setStatus(next, now)
			out.appendHistory(now, "Contract Completed", actor.Name, "both parties confirmed")
		} else {
			out.UpdatedAt = now
			out.appendHistory(now, "Completion Confirmed", actor.Name, "")
		}
		return out, nil

	case EventCancel:
		out := c.clone()
		out.setStatus(next, now)
		out.appendHistory(now, "Contract Cancelled", actor.Name, "")
		return out, nil
	}

	return c, fmt.Errorf("%w: unhandled event %q", ErrValidation, event)
}

// SelectPaymentMethod picks one-time or partial payment. Only the payer
// chooses, and only while the contract is a draft.
func (c Contract) SelectPaymentMethod(ptype PaymentType, frequency PaymentFrequency, actor Actor, now time.Time) (Contract, error) {
	if actor.Role != RolePayer {
		return c, fmt.Errorf("%w: %s cannot select the payment method", ErrNotAuthorized, actor.Role)
	}
	if c.Status != StatusDraft {
		return c, fmt.Errorf("%w: status is %s", ErrNotEditable, c.Status)
	}
	out := c.clone()
	switch ptype {
	case PaymentOneTime:
		out.Payment = out.Payment.SelectOneTime()
		out.appendHistory(now, "Payment Method Selected", actor.Name, "one-time payment")
	case PaymentPartial:
		plan, err := out.Payment.SelectPartial(frequency)
		if err != nil {
			return c, err
		}
		out.Payment = plan
		out.appendHistory(now, "Payment Method Selected", actor.Name, fmt.Sprintf("partial, %s", frequency))
	default:
		return c, fmt.Errorf("%w: unknown payment type %q", ErrValidation, ptype)
	}
	out.UpdatedAt = now
	return out, nil
}

// RequestPayment asks the payer to pay tranche idx of the active schedule.
// Only the payee (the service provider) requests payment.
func (c Contract) RequestPayment(idx int, actor Actor, now time.Time) (Contract, error) {
	if actor.Role != RolePayee {
		return c, fmt.Errorf("%w: only the payee requests payment", ErrNotAuthorized)
	}
	return c.mutateTranche(idx, actor, now, "Payment Requested", func(t PaymentTranche) (PaymentTranche, error) {
		return t.Request(now)
	})
}

// ApprovePayment confirms payment of tranche idx. Only the payer approves.
func (c Contract) ApprovePayment(idx int, actor Actor, now time.Time) (Contract, error) {
	if actor.Role != RolePayer {
		return c, fmt.Errorf("%w: only the payer approves payment", ErrNotAuthorized)
	}
	return c.mutateTranche(idx, actor, now, "Payment Approved", func(t PaymentTranche) (PaymentTranche, error) {
		return t.Approve(now)
	})
}

// CancelPayment withdraws a payment request on tranche idx. Only the payer
// cancels a request.
func (c Contract) CancelPayment(idx int, actor Actor, now time.Time) (Contract, error) {
	if actor.Role != RolePayer {
		return c, fmt.Errorf("%w: only the payer cancels a payment request", ErrNotAuthorized)
	}
	return c.mutateTranche(idx, actor, now, "Payment Request Cancelled", func(t PaymentTranche) (PaymentTranche, error) {
		return t.Cancel()
	})
}

func (c Contract) mutateTranche(idx int, actor Actor, now time.Time, action string, fn func(PaymentTranche) (PaymentTranche, error)) (Contract, error) {
	si, ok := c.Payment.scheduleIndex(c.Payment.SelectedFrequency)
	if c.Payment.SelectedType != PaymentPartial || !ok {
		return c, fmt.Errorf("%w: contract has no active payment schedule", ErrValidation)
	}
	if idx < 0 || idx >= len(c.Payment.Schedules[si].Tranches) {
		return c, fmt.Errorf("%w: tranche index %d out of range", ErrValidation, idx)
	}
	out := c.clone()
	tranche, err := fn(out.Payment.Schedules[si].Tranches[idx])
	if err != nil {
		return c, err
	}
	out.Payment.Schedules[si].Tranches[idx] = tranche
	out.UpdatedAt = now
	out.appendHistory(now, action, actor.Name, fmt.Sprintf("tranche %d, %s", idx+1, tranche.Amount))
	return out, nil
}

// EditField applies a free-form edit to a party or details field. Editing is
// only allowed while the contract is a draft; there is no other validation
// beyond parsing typed values.
func (c Contract) EditField(section, field, value string, actor Actor, now time.Time) (Contract, error) {
	if c.Status != StatusDraft {
		return c, fmt.Errorf("%w: status is %s", ErrNotEditable, c.Status)
	}
	out := c.clone()

	setParty := func(p *ContractParty) error {
		switch field {
		case "name":
			p.Name = value
		case "email":
			p.Email = value
		case "organization":
			p.Organization = value
		case "address":
			p.Address = value
		default:
			return fmt.Errorf("%w: unknown %s field %q", ErrValidation, section, field)
		}
		return nil
	}

	switch section {
	case "from":
		if err := setParty(&out.From); err != nil {
			return c, err
		}
	case "to":
		if err := setParty(&out.To); err != nil {
			return c, err
		}
	case "details":
		switch field {
		case "place_of_service":
			out.Details.PlaceOfService = value
		case "start_date", "end_date":
			d, err := time.Parse("2006-01-02", value)
			if err != nil {
				return c, fmt.Errorf("%w: invalid date %q", ErrValidation, value)
			}
			if field == "start_date" {
				out.Details.StartDate = d
			} else {
				out.Details.EndDate = d
			}
		case "rate":
			out.Details.Rate = value
		case "meals_included":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return c, fmt.Errorf("%w: invalid boolean %q", ErrValidation, value)
			}
			out.Details.MealsIncluded = b
		case "additional_details":
			out.Details.AdditionalDetails = value
		default:
			return c, fmt.Errorf("%w: unknown details field %q", ErrValidation, field)
		}
	default:
		return c, fmt.Errorf("%w: unknown section %q", ErrValidation, section)
	}

	out.UpdatedAt = now
	out.appendHistory(now, "Contract Edited", actor.Name, fmt.Sprintf("%s.%s", section, field))
	return out, nil
}

// AdminSetStatus assigns a status directly, bypassing all lifecycle guards.
// This is the support-console escape hatch; the override is still logged.
func (c Contract) AdminSetStatus(status ContractStatus, actorName string, now time.Time) (Contract, error) {
	if !status.Valid() {
		return c, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	out := c.clone()
	prev := out.Status
	out.setStatus(status, now)
	out.appendHistory(now, "Status Override", actorName, fmt.Sprintf("%s -> %s", prev, status))
	return out, nil
}

// AdminSetProgress assigns the progress percentage directly.
func (c Contract) AdminSetProgress(progress int, actorName string, now time.Time) (Contract, error) {
	if progress < 0 || progress > 100 {
		return c, fmt.Errorf("%w: progress %d out of range", ErrValidation, progress)
	}
	out := c.clone()
	out.Progress = progress
	out.UpdatedAt = now
	out.appendHistory(now, "Progress Override", actorName, strconv.Itoa(progress))
	return out, nil
}

// AdminSetTranche assigns a tranche's status and dates directly, addressed by
// schedule frequency and tranche index, bypassing the tranche state machine.
func (c Contract) AdminSetTranche(frequency PaymentFrequency, idx int, status TrancheStatus, requestDate, paymentDate *time.Time, actorName string, now time.Time) (Contract, error) {
	switch status {
	case TrancheNotPaid, TrancheRequested, TranchePaid, TrancheCancelled:
	default:
		return c, fmt.Errorf("%w: unknown tranche status %q", ErrValidation, status)
	}
	si, ok := c.Payment.scheduleIndex(frequency)
	if !ok {
		return c, fmt.Errorf("%w: %q", ErrNoScheduleForFrequency, frequency)
	}
	if idx < 0 || idx >= len(c.Payment.Schedules[si].Tranches) {
		return c, fmt.Errorf("%w: tranche index %d out of range", ErrValidation, idx)
	}
	out := c.clone()
	t := &out.Payment.Schedules[si].Tranches[idx]
	prev := t.Status
	t.Status = status
	t.RequestDate = requestDate
	t.PaymentDate = paymentDate
	out.UpdatedAt = now
	out.appendHistory(now, "Tranche Override", actorName, fmt.Sprintf("%s tranche %d: %s -> %s", frequency, idx+1, prev, status))
	return out, nil
}

func (c *Contract) setStatus(status ContractStatus, now time.Time) {
	c.Status = status
	c.Progress = ProgressFor(status)
	c.UpdatedAt = now
}

func (c *Contract) appendHistory(now time.Time, action, actor, notes string) {
	c.History = append(c.History, HistoryEntry{
		ID:        uuid.New().String(),
		Timestamp: now,
		Action:    action,
		Actor:     actor,
		Notes:     notes,
	})
}

func (c Contract) clone() Contract {
	c.Payment = c.Payment.clone()
	history := make([]HistoryEntry, len(c.History))
	copy(history, c.History)
	c.History = history
	return c
}
