package service

import (
	"context"
	"time"

	"github.com/bharathg-scrimpify/accord/internal/db"
	"github.com/bharathg-scrimpify/accord/internal/domain"
	"github.com/bharathg-scrimpify/accord/internal/repository"
)

type paymentService struct {
	contracts repository.ContractRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewPaymentService(contracts repository.ContractRepo, uow db.UnitOfWork, observers ...UseCaseObserver) PaymentService {
	return &paymentService{
		contracts: contracts,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *paymentService) Request(ctx context.Context, id string, tranche int, actor domain.Actor) (contract *domain.Contract, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observeUseCase(ctx, s.observer, "request-payment", startedAt, err, map[string]any{
			"contract": id, "tranche": tranche,
		})
	}()
	return mutateContract(ctx, s.uow, id, func(c domain.Contract, now time.Time) (domain.Contract, error) {
		return c.RequestPayment(tranche, actor, now)
	})
}

func (s *paymentService) Approve(ctx context.Context, id string, tranche int, actor domain.Actor) (contract *domain.Contract, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observeUseCase(ctx, s.observer, "approve-payment", startedAt, err, map[string]any{
			"contract": id, "tranche": tranche,
		})
	}()
	return mutateContract(ctx, s.uow, id, func(c domain.Contract, now time.Time) (domain.Contract, error) {
		return c.ApprovePayment(tranche, actor, now)
	})
}

func (s *paymentService) Cancel(ctx context.Context, id string, tranche int, actor domain.Actor) (contract *domain.Contract, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observeUseCase(ctx, s.observer, "cancel-payment", startedAt, err, map[string]any{
			"contract": id, "tranche": tranche,
		})
	}()
	return mutateContract(ctx, s.uow, id, func(c domain.Contract, now time.Time) (domain.Contract, error) {
		return c.CancelPayment(tranche, actor, now)
	})
}

// Capture validates the approval immediately, waits out the hold period, then
// commits through the normal approval path. Nothing is persisted until the
// hold elapses; cancelling ctx during the hold aborts with the contract
// untouched. The commit revalidates against current state, so a tranche
// cancelled during the hold fails cleanly instead of being paid.
func (s *paymentService) Capture(ctx context.Context, id string, tranche int, actor domain.Actor, hold time.Duration) (*domain.Contract, error) {
	current, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := current.ApprovePayment(tranche, actor, time.Now().UTC()); err != nil {
		return nil, err
	}

	if hold > 0 {
		timer := time.NewTimer(hold)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return s.Approve(ctx, id, tranche, actor)
}
