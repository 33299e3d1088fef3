package repository

import (
	"context"
	"time"

	"github.com/classiclink/ledger-api/internal/domain/entity"
	"github.com/classiclink/ledger-api/internal/domain/enum"
	"github.com/classiclink/ledger-api/pkg/pagination"
	"github.com/google/uuid"
)

// TransactionRepository defines the interface for posted transaction data
// operations. Writes go through CreatePosting so the header, lines, tax
// lines and GL entries land in one database transaction.
type TransactionRepository interface {
	// CreatePosting persists the full document atomically. Either everything
	// is written or nothing is.
	CreatePosting(ctx context.Context, header *entity.TransactionHeader, lines []entity.LineItem, taxLines []entity.TaxLine, entries []entity.GLEntry) error
	GetByID(ctx context.Context, id int64) (*entity.TransactionHeader, error)
	// GetWithDetails loads the header with lines, tax lines and entries.
	GetWithDetails(ctx context.Context, id int64) (*entity.TransactionHeader, error)
	GetByDocumentNumber(ctx context.Context, txType enum.TransactionType, documentNumber string) (*entity.TransactionHeader, error)
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.TransactionHeader, int64, error)
	// EntriesByAccount returns committed entries touching the account, newest
	// first.
	EntriesByAccount(ctx context.Context, accountID uuid.UUID, params *pagination.PaginationParams) ([]entity.GLEntry, int64, error)
}

// TransactionFilterParams contains filtering parameters for transaction queries
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	Type       *enum.TransactionType
	Status     *enum.TransactionStatus
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
