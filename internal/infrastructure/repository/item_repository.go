package repository

import (
	"context"
	"errors"

	"github.com/classiclink/ledger-api/internal/domain/entity"
	domainRepo "github.com/classiclink/ledger-api/internal/domain/repository"
	"github.com/classiclink/ledger-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *gorm.DB) domainRepo.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	var item entity.Item
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *itemRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error) {
	var items []entity.Item
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *itemRepository) GetByNumber(ctx context.Context, number string) (*entity.Item, error) {
	var item entity.Item
	err := r.db.WithContext(ctx).First(&item, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *itemRepository) Update(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Item{}, "id = ?", id).Error
}

func (r *itemRepository) List(ctx context.Context, params *domainRepo.ItemFilterParams) ([]entity.Item, int64, error) {
	var items []entity.Item
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Item{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR number ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}
	if params.TrackInventory != nil {
		query = query.Where("track_inventory = ?", *params.TrackInventory)
	}
	if params.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := params.SortBy
	switch sortBy {
	case "name", "number", "price":
	default:
		sortBy = "number"
	}
	sortOrder := "ASC"
	if params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&items).Error

	return items, total, err
}

// ListWithCursor returns items using cursor-based pagination
// Fetches limit+1 items to detect if there are more results
func (r *itemRepository) ListWithCursor(ctx context.Context, params *domainRepo.ItemCursorFilterParams) ([]entity.Item, error) {
	var items []entity.Item

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Item{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR number ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}
	if params.TrackInventory != nil {
		query = query.Where("track_inventory = ?", *params.TrackInventory)
	}
	if params.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Order("created_at ASC, id ASC").
		Find(&items).Error

	return items, err
}

func (r *itemRepository) GetTaxLinks(ctx context.Context, itemIDs []uuid.UUID) ([]entity.ItemTaxLink, error) {
	var links []entity.ItemTaxLink
	if len(itemIDs) == 0 {
		return links, nil
	}
	err := r.db.WithContext(ctx).Where("item_id IN ?", itemIDs).Find(&links).Error
	return links, err
}

func (r *itemRepository) ReplaceTaxLinks(ctx context.Context, itemID uuid.UUID, links []entity.ItemTaxLink) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", itemID).Delete(&entity.ItemTaxLink{}).Error; err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		for i := range links {
			links[i].ItemID = itemID
		}
		return tx.Create(&links).Error
	})
}

func (r *itemRepository) UpdateAverageCost(ctx context.Context, id uuid.UUID, cost decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&entity.Item{}).
		Where("id = ?", id).
		Update("average_cost", cost).Error
}
