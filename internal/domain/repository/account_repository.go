package repository

import (
	"context"

	"github.com/classiclink/ledger-api/internal/domain/entity"
	"github.com/classiclink/ledger-api/internal/domain/enum"
	"github.com/classiclink/ledger-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRepository defines the interface for chart of accounts data operations
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Account, error)
	GetByNumber(ctx context.Context, number int) (*entity.Account, error)
	Update(ctx context.Context, account *entity.Account) error
	List(ctx context.Context, params *pagination.PaginationParams, search string, accountType *enum.AccountType) ([]entity.Account, int64, error)
	// Balance sums the committed GL entry amounts for the account. Positive
	// means a net debit position.
	Balance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
}
