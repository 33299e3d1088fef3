package repository

import (
	"context"

	"github.com/classiclink/ledger-api/internal/domain/entity"
	"github.com/classiclink/ledger-api/pkg/pagination"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string, activeOnly bool) ([]entity.Customer, int64, error)
	ListWithCursor(ctx context.Context, params *pagination.CursorParams, search string, activeOnly bool) ([]entity.Customer, error)
	// GetWithTaxLinks loads the customer together with its tax code links.
	GetWithTaxLinks(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// ReplaceTaxLinks swaps the customer's tax code links for the given set.
	ReplaceTaxLinks(ctx context.Context, customerID uuid.UUID, links []entity.CustomerTaxLink) error
}
