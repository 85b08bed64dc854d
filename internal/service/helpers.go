package service

import (
	"context"
	"time"

	"github.com/bharathg-scrimpify/accord/internal/db"
	"github.com/bharathg-scrimpify/accord/internal/domain"
	"github.com/bharathg-scrimpify/accord/internal/repository"
)

// mutateContract runs a single aggregate mutation transactionally: load the
// contract by id, apply fn to the snapshot, persist the result. The saved
// snapshot is returned. fn receives the current UTC time so every history
// entry written by one mutation shares a timestamp.
func mutateContract(
	ctx context.Context,
	uow db.UnitOfWork,
	id string,
	fn func(c domain.Contract, now time.Time) (domain.Contract, error),
) (*domain.Contract, error) {
	var result *domain.Contract
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txContracts := repository.NewSQLiteContractRepo(tx)

		current, err := txContracts.GetByID(ctx, id)
		if err != nil {
			return err
		}

		next, err := fn(*current, time.Now().UTC())
		if err != nil {
			return err
		}
		next.UpdatedAt = time.Now().UTC()

		if err := txContracts.Save(ctx, &next); err != nil {
			return err
		}
		result = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// observeUseCase reports a finished use case to the observer.
func observeUseCase(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, err error, fields map[string]any) {
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: startedAt,
	})
}
