package repository

import (
	"context"
	"errors"

	"github.com/classiclink/ledger-api/internal/domain/entity"
	domainRepo "github.com/classiclink/ledger-api/internal/domain/repository"
	"github.com/classiclink/ledger-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type taxCodeRepository struct {
	db *gorm.DB
}

// NewTaxCodeRepository creates a new tax code repository
func NewTaxCodeRepository(db *gorm.DB) domainRepo.TaxCodeRepository {
	return &taxCodeRepository{db: db}
}

func (r *taxCodeRepository) Create(ctx context.Context, code *entity.TaxCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *taxCodeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxCode, error) {
	var code entity.TaxCode
	err := r.db.WithContext(ctx).First(&code, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &code, err
}

func (r *taxCodeRepository) GetByCode(ctx context.Context, codeStr string) (*entity.TaxCode, error) {
	var code entity.TaxCode
	err := r.db.WithContext(ctx).First(&code, "code = ?", codeStr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &code, err
}

func (r *taxCodeRepository) GetByCodes(ctx context.Context, codes []string) ([]entity.TaxCode, error) {
	var result []entity.TaxCode
	if len(codes) == 0 {
		return result, nil
	}
	err := r.db.WithContext(ctx).Where("code IN ?", codes).Find(&result).Error
	return result, err
}

func (r *taxCodeRepository) Update(ctx context.Context, code *entity.TaxCode) error {
	return r.db.WithContext(ctx).Save(code).Error
}

func (r *taxCodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.TaxCode{}, "id = ?", id).Error
}

func (r *taxCodeRepository) List(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) ([]entity.TaxCode, int64, error) {
	var codes []entity.TaxCode
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.TaxCode{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("code ASC").
		Find(&codes).Error

	return codes, total, err
}
