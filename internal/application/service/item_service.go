package service

import (
	"context"
	"time"

	"github.com/classiclink/ledger-api/internal/domain/entity"
	"github.com/classiclink/ledger-api/internal/domain/repository"
	"github.com/classiclink/ledger-api/pkg/apperror"
	"github.com/classiclink/ledger-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemService handles catalog item operations
type ItemService struct {
	itemRepo    repository.ItemRepository
	accountRepo repository.AccountRepository
	taxCodeRepo repository.TaxCodeRepository
}

// NewItemService creates a new item service
func NewItemService(itemRepo repository.ItemRepository, accountRepo repository.AccountRepository, taxCodeRepo repository.TaxCodeRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo, accountRepo: accountRepo, taxCodeRepo: taxCodeRepo}
}

// CreateItemInput represents the create item input
type CreateItemInput struct {
	Number           string
	Name             string
	Description      *string
	Price            decimal.Decimal
	AverageCost      *decimal.Decimal
	TrackInventory   bool
	RevenueAccountID *uuid.UUID
	AssetAccountID   *uuid.UUID
	ExpenseAccountID *uuid.UUID
}

// CreateItem creates a new catalog item
func (s *ItemService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.Item, error) {
	existing, err := s.itemRepo.GetByNumber(ctx, input.Number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Item number already in use")
	}

	if input.Price.Sign() < 0 {
		return nil, apperror.NewBadRequestError("Price cannot be negative")
	}

	// Tracked items need both sides of the inventory pair configured up
	// front, otherwise posting them would fail later.
	if input.TrackInventory && (input.AssetAccountID == nil || input.ExpenseAccountID == nil) {
		return nil, apperror.NewBadRequestError("Tracked items require asset and expense accounts")
	}

	var accountIDs []uuid.UUID
	for _, accountID := range []*uuid.UUID{input.RevenueAccountID, input.AssetAccountID, input.ExpenseAccountID} {
		if accountID != nil {
			accountIDs = append(accountIDs, *accountID)
		}
	}
	if len(accountIDs) > 0 {
		accounts, err := s.accountRepo.GetByIDs(ctx, accountIDs)
		if err != nil {
			return nil, err
		}
		found := make(map[uuid.UUID]bool, len(accounts))
		for _, account := range accounts {
			found[account.ID] = true
		}
		for _, id := range accountIDs {
			if !found[id] {
				return nil, apperror.NewNotFoundError("Account")
			}
		}
	}

	averageCost := decimal.Zero
	if input.AverageCost != nil {
		if input.AverageCost.Sign() < 0 {
			return nil, apperror.NewBadRequestError("Average cost cannot be negative")
		}
		averageCost = *input.AverageCost
	}

	item := &entity.Item{
		Number:           input.Number,
		Name:             input.Name,
		Description:      input.Description,
		Price:            input.Price,
		AverageCost:      averageCost,
		TrackInventory:   input.TrackInventory,
		RevenueAccountID: input.RevenueAccountID,
		AssetAccountID:   input.AssetAccountID,
		ExpenseAccountID: input.ExpenseAccountID,
		Active:           true,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem retrieves an item by ID
func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// UpdateItemInput represents the update item input
type UpdateItemInput struct {
	Name             *string
	Description      *string
	Price            *decimal.Decimal
	AverageCost      *decimal.Decimal
	TrackInventory   *bool
	RevenueAccountID *uuid.UUID
	AssetAccountID   *uuid.UUID
	ExpenseAccountID *uuid.UUID
	Active           *bool
}

// UpdateItem updates an existing item
func (s *ItemService) UpdateItem(ctx context.Context, id uuid.UUID, input *UpdateItemInput) (*entity.Item, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	if input.Price != nil {
		if input.Price.Sign() < 0 {
			return nil, apperror.NewBadRequestError("Price cannot be negative")
		}
		item.Price = *input.Price
	}
	if input.AverageCost != nil {
		if input.AverageCost.Sign() < 0 {
			return nil, apperror.NewBadRequestError("Average cost cannot be negative")
		}
		item.AverageCost = *input.AverageCost
	}
	if input.TrackInventory != nil {
		item.TrackInventory = *input.TrackInventory
	}
	if input.RevenueAccountID != nil {
		item.RevenueAccountID = input.RevenueAccountID
	}
	if input.AssetAccountID != nil {
		item.AssetAccountID = input.AssetAccountID
	}
	if input.ExpenseAccountID != nil {
		item.ExpenseAccountID = input.ExpenseAccountID
	}
	if input.Active != nil {
		item.Active = *input.Active
	}

	if item.TrackInventory && (item.AssetAccountID == nil || item.ExpenseAccountID == nil) {
		return nil, apperror.NewBadRequestError("Tracked items require asset and expense accounts")
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem soft-deletes an item
func (s *ItemService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetItem(ctx, id); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, id)
}

// ListItems lists items with page-based pagination
func (s *ItemService) ListItems(ctx context.Context, params *repository.ItemFilterParams) (*pagination.PaginatedResult[entity.Item], error) {
	items, total, err := s.itemRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// ListItemsWithCursor lists items using cursor-based pagination
func (s *ItemService) ListItemsWithCursor(ctx context.Context, params *repository.ItemCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Item], error) {
	items, err := s.itemRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, trimmed := pagination.NewCursorPagination(items, params.Cursor.Limit,
		func(i entity.Item) string { return i.ID.String() },
		func(i entity.Item) time.Time { return i.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(trimmed, cursorPag), nil
}

// SetTaxLinks replaces the item's tax code links
func (s *ItemService) SetTaxLinks(ctx context.Context, itemID uuid.UUID, inputs []TaxLinkInput) error {
	if _, err := s.GetItem(ctx, itemID); err != nil {
		return err
	}

	links := make([]entity.ItemTaxLink, 0, len(inputs))
	for _, in := range inputs {
		code, err := s.taxCodeRepo.GetByID(ctx, in.TaxCodeID)
		if err != nil {
			return err
		}
		if code == nil {
			return apperror.NewNotFoundError("Tax code")
		}
		links = append(links, entity.ItemTaxLink{
			ItemID:    itemID,
			TaxCodeID: in.TaxCodeID,
			Exempt:    in.Exempt,
		})
	}

	return s.itemRepo.ReplaceTaxLinks(ctx, itemID, links)
}

// GetTaxLinks returns the item's tax code links
func (s *ItemService) GetTaxLinks(ctx context.Context, itemID uuid.UUID) ([]entity.ItemTaxLink, error) {
	if _, err := s.GetItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.itemRepo.GetTaxLinks(ctx, []uuid.UUID{itemID})
}
