package repository

import (
	"context"

	"github.com/classiclink/ledger-api/internal/domain/entity"
	"github.com/classiclink/ledger-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemRepository defines the interface for catalog item data operations
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	// GetByIDs retrieves multiple items by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error)
	GetByNumber(ctx context.Context, number string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ItemFilterParams) ([]entity.Item, int64, error)
	ListWithCursor(ctx context.Context, params *ItemCursorFilterParams) ([]entity.Item, error)
	// GetTaxLinks returns the tax code links for the given items.
	GetTaxLinks(ctx context.Context, itemIDs []uuid.UUID) ([]entity.ItemTaxLink, error)
	// ReplaceTaxLinks swaps the item's tax code links for the given set.
	ReplaceTaxLinks(ctx context.Context, itemID uuid.UUID, links []entity.ItemTaxLink) error
	// UpdateAverageCost sets the costing basis used when inventory is relieved.
	UpdateAverageCost(ctx context.Context, id uuid.UUID, cost decimal.Decimal) error
}

// ItemFilterParams contains filtering parameters for item queries
type ItemFilterParams struct {
	Pagination     *pagination.PaginationParams
	Search         string
	TrackInventory *bool
	ActiveOnly     bool
	SortBy         string
	SortOrder      string
}

// ItemCursorFilterParams contains cursor-based filtering for item queries
type ItemCursorFilterParams struct {
	Cursor         *pagination.CursorParams
	Search         string
	TrackInventory *bool
	ActiveOnly     bool
}
