package repository

import (
	"context"
	"errors"

	"github.com/classiclink/ledger-api/internal/domain/entity"
	"github.com/classiclink/ledger-api/internal/domain/enum"
	domainRepo "github.com/classiclink/ledger-api/internal/domain/repository"
	"github.com/classiclink/ledger-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

// CreatePosting writes the header, lines, tax lines and GL entries in a
// single database transaction. The header ID is pre-allocated, so child rows
// are stamped with it before insert rather than relying on gorm association
// writes.
func (r *transactionRepository) CreatePosting(ctx context.Context, header *entity.TransactionHeader, lines []entity.LineItem, taxLines []entity.TaxLine, entries []entity.GLEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(header).Error; err != nil {
			return err
		}

		for i := range lines {
			lines[i].TransactionID = header.ID
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}

		for i := range taxLines {
			taxLines[i].TransactionID = header.ID
		}
		if len(taxLines) > 0 {
			if err := tx.Create(&taxLines).Error; err != nil {
				return err
			}
		}

		for i := range entries {
			entries[i].TransactionID = header.ID
		}
		if len(entries) > 0 {
			if err := tx.Create(&entries).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *transactionRepository) GetByID(ctx context.Context, id int64) (*entity.TransactionHeader, error) {
	var header entity.TransactionHeader
	err := r.db.WithContext(ctx).First(&header, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &header, err
}

func (r *transactionRepository) GetWithDetails(ctx context.Context, id int64) (*entity.TransactionHeader, error) {
	var header entity.TransactionHeader
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Preload("TaxLines", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		First(&header, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &header, err
}

func (r *transactionRepository) GetByDocumentNumber(ctx context.Context, txType enum.TransactionType, documentNumber string) (*entity.TransactionHeader, error) {
	var header entity.TransactionHeader
	err := r.db.WithContext(ctx).
		Where("type = ? AND document_number = ?", txType, documentNumber).
		First(&header).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &header, err
}

func (r *transactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.TransactionHeader, int64, error) {
	var headers []entity.TransactionHeader
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.TransactionHeader{})

	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := params.SortBy
	switch sortBy {
	case "date", "total", "document_number":
	default:
		sortBy = "id"
	}
	sortOrder := "DESC"
	if params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&headers).Error

	return headers, total, err
}

func (r *transactionRepository) EntriesByAccount(ctx context.Context, accountID uuid.UUID, params *pagination.PaginationParams) ([]entity.GLEntry, int64, error) {
	var entries []entity.GLEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.GLEntry{}).Where("account_id = ?", accountID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("transaction_id DESC, seq ASC").
		Find(&entries).Error

	return entries, total, err
}
