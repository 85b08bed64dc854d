package service

import (
	"context"
	"time"

	"github.com/bharathg-scrimpify/accord/internal/domain"
	"github.com/bharathg-scrimpify/accord/internal/repository"
)

// CreateContractInput carries everything needed to draft a new contract.
// The short code is allocated by the service.
type CreateContractInput struct {
	From    domain.ContractParty
	To      domain.ContractParty
	Details domain.ContractDetails
	Payment domain.PaymentPlan
}

type ContractService interface {
	Create(ctx context.Context, in CreateContractInput) (*domain.Contract, error)
	GetByID(ctx context.Context, id string) (*domain.Contract, error)
	GetByShortCode(ctx context.Context, code string) (*domain.Contract, error)
	List(ctx context.Context, statuses []domain.ContractStatus) ([]repository.ContractSummary, error)
	Delete(ctx context.Context, id string, force bool) error

	Sign(ctx context.Context, id string, actor domain.Actor, signature string) (*domain.Contract, error)
	Advance(ctx context.Context, id string, event domain.LifecycleEvent, actor domain.Actor) (*domain.Contract, error)
	SelectPaymentMethod(ctx context.Context, id string, ptype domain.PaymentType, frequency domain.PaymentFrequency, actor domain.Actor) (*domain.Contract, error)
	EditField(ctx context.Context, id, section, field, value string, actor domain.Actor) (*domain.Contract, error)
}

type PaymentService interface {
	Request(ctx context.Context, id string, tranche int, actor domain.Actor) (*domain.Contract, error)
	Approve(ctx context.Context, id string, tranche int, actor domain.Actor) (*domain.Contract, error)
	Cancel(ctx context.Context, id string, tranche int, actor domain.Actor) (*domain.Contract, error)
	// Capture is the two-phase approval: the tranche is validated
	// immediately, then the paid state is committed after the hold
	// period unless ctx is cancelled first.
	Capture(ctx context.Context, id string, tranche int, actor domain.Actor, hold time.Duration) (*domain.Contract, error)
}

type AdminService interface {
	SetStatus(ctx context.Context, id string, status domain.ContractStatus, actorName string) (*domain.Contract, error)
	SetProgress(ctx context.Context, id string, progress int, actorName string) (*domain.Contract, error)
	SetTranche(ctx context.Context, id string, frequency domain.PaymentFrequency, tranche int, status domain.TrancheStatus, requestDate, paymentDate *time.Time, actorName string) (*domain.Contract, error)
}
