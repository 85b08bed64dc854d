package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bharathg-scrimpify/accord/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ContractSummary is a flat listing view of a contract, cheap to load
// because it skips the payment plan and history child tables.
type ContractSummary struct {
	ID           string
	ShortCode    string
	FromName     string
	ToName       string
	Status       domain.ContractStatus
	Progress     int
	TotalPayable domain.Money
	UpdatedAt    time.Time
}

type ContractRepo interface {
	Create(ctx context.Context, c *domain.Contract) error
	GetByID(ctx context.Context, id string) (*domain.Contract, error)
	GetByShortCode(ctx context.Context, code string) (*domain.Contract, error)
	List(ctx context.Context, statuses []domain.ContractStatus) ([]ContractSummary, error)
	// Save persists a full aggregate snapshot, replacing the stored
	// payment plan and history.
	Save(ctx context.Context, c *domain.Contract) error
	Delete(ctx context.Context, id string) error
}

type SequenceRepo interface {
	NextContractSeq(ctx context.Context) (int, error)
}
