package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bharathg-scrimpify/accord/internal/db"
	"github.com/bharathg-scrimpify/accord/internal/domain"
	"github.com/bharathg-scrimpify/accord/internal/repository"
)

type contractService struct {
	contracts repository.ContractRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewContractService(contracts repository.ContractRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ContractService {
	return &contractService{
		contracts: contracts,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *contractService) Create(ctx context.Context, in CreateContractInput) (contract *domain.Contract, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observeUseCase(ctx, s.observer, "create-contract", startedAt, err, map[string]any{
			"from": in.From.Name,
			"to":   in.To.Name,
		})
	}()

	if in.From.Name == "" || in.To.Name == "" {
		return nil, fmt.Errorf("%w: both parties need a name", domain.ErrValidation)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txContracts := repository.NewSQLiteContractRepo(tx)
		txSeq := repository.NewSQLiteSequenceRepo(tx)

		seq, err := txSeq.NextContractSeq(ctx)
		if err != nil {
			return err
		}

		c := domain.NewContract(uuid.New().String(), in.From, in.To, in.Details, in.Payment, time.Now().UTC())
		c.ShortCode = repository.FormatShortCode(seq)

		if err := txContracts.Create(ctx, &c); err != nil {
			return err
		}
		contract = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *contractService) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	return s.contracts.GetByID(ctx, id)
}

func (s *contractService) GetByShortCode(ctx context.Context, code string) (*domain.Contract, error) {
	return s.contracts.GetByShortCode(ctx, code)
}

func (s *contractService) List(ctx context.Context, statuses []domain.ContractStatus) ([]repository.ContractSummary, error) {
	return s.contracts.List(ctx, statuses)
}

// Delete removes a contract. Without force only terminal contracts and
// unsigned drafts may be deleted.
func (s *contractService) Delete(ctx context.Context, id string, force bool) error {
	if !force {
		c, err := s.contracts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		deletable := c.Status.IsTerminal() ||
			(c.Status == domain.StatusDraft && !c.From.Signed() && !c.To.Signed())
		if !deletable {
			return fmt.Errorf("contract %s is %s; complete or cancel it first (or use --force)", c.ShortCode, c.Status)
		}
	}
	return s.contracts.Delete(ctx, id)
}

func (s *contractService) Sign(ctx context.Context, id string, actor domain.Actor, signature string) (contract *domain.Contract, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observeUseCase(ctx, s.observer, "sign-contract", startedAt, err, map[string]any{
			"contract": id,
			"role":     string(actor.Role),
		})
	}()
	return mutateContract(ctx, s.uow, id, func(c domain.Contract, now time.Time) (domain.Contract, error) {
		return c.Sign(actor, signature, now)
	})
}

func (s *contractService) Advance(ctx context.Context, id string, event domain.LifecycleEvent, actor domain.Actor) (contract *domain.Contract, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observeUseCase(ctx, s.observer, "advance-contract", startedAt, err, map[string]any{
			"contract": id,
			"event":    string(event),
			"role":     string(actor.Role),
		})
	}()
	return mutateContract(ctx, s.uow, id, func(c domain.Contract, now time.Time) (domain.Contract, error) {
		return c.Advance(event, actor, now)
	})
}

func (s *contractService) SelectPaymentMethod(ctx context.Context, id string, ptype domain.PaymentType, frequency domain.PaymentFrequency, actor domain.Actor) (*domain.Contract, error) {
	return mutateContract(ctx, s.uow, id, func(c domain.Contract, now time.Time) (domain.Contract, error) {
		return c.SelectPaymentMethod(ptype, frequency, actor, now)
	})
}

func (s *contractService) EditField(ctx context.Context, id, section, field, value string, actor domain.Actor) (*domain.Contract, error) {
	return mutateContract(ctx, s.uow, id, func(c domain.Contract, now time.Time) (domain.Contract, error) {
		return c.EditField(section, field, value, actor, now)
	})
}
