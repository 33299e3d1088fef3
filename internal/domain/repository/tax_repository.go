package repository

import (
	"context"

	"github.com/classiclink/ledger-api/internal/domain/entity"
	"github.com/classiclink/ledger-api/pkg/pagination"
	"github.com/google/uuid"
)

// TaxCodeRepository defines the interface for tax code data operations
type TaxCodeRepository interface {
	Create(ctx context.Context, code *entity.TaxCode) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxCode, error)
	GetByCode(ctx context.Context, code string) (*entity.TaxCode, error)
	// GetByCodes resolves code strings in a single query, preserving nothing
	// about order; callers re-sort into request order.
	GetByCodes(ctx context.Context, codes []string) ([]entity.TaxCode, error)
	Update(ctx context.Context, code *entity.TaxCode) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) ([]entity.TaxCode, int64, error)
}
