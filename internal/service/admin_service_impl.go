package service

import (
	"context"
	"time"

	"github.com/bharathg-scrimpify/accord/internal/db"
	"github.com/bharathg-scrimpify/accord/internal/domain"
)

// adminService applies operator overrides. These bypass the lifecycle rules
// on purpose, so every override lands in the contract history.
type adminService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewAdminService(uow db.UnitOfWork, observers ...UseCaseObserver) AdminService {
	return &adminService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *adminService) SetStatus(ctx context.Context, id string, status domain.ContractStatus, actorName string) (contract *domain.Contract, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observeUseCase(ctx, s.observer, "admin-set-status", startedAt, err, map[string]any{
			"contract": id, "status": string(status),
		})
	}()
	return mutateContract(ctx, s.uow, id, func(c domain.Contract, now time.Time) (domain.Contract, error) {
		return c.AdminSetStatus(status, actorName, now)
	})
}

func (s *adminService) SetProgress(ctx context.Context, id string, progress int, actorName string) (contract *domain.Contract, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observeUseCase(ctx, s.observer, "admin-set-progress", startedAt, err, map[string]any{
			"contract": id, "progress": progress,
		})
	}()
	return mutateContract(ctx, s.uow, id, func(c domain.Contract, now time.Time) (domain.Contract, error) {
		return c.AdminSetProgress(progress, actorName, now)
	})
}

func (s *adminService) SetTranche(ctx context.Context, id string, frequency domain.PaymentFrequency, tranche int, status domain.TrancheStatus, requestDate, paymentDate *time.Time, actorName string) (contract *domain.Contract, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observeUseCase(ctx, s.observer, "admin-set-tranche", startedAt, err, map[string]any{
			"contract": id, "frequency": string(frequency), "tranche": tranche,
		})
	}()
	return mutateContract(ctx, s.uow, id, func(c domain.Contract, now time.Time) (domain.Contract, error) {
		return c.AdminSetTranche(frequency, tranche, status, requestDate, paymentDate, actorName, now)
	})
}
