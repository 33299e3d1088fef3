package service

import (
	"context"

	"github.com/classiclink/ledger-api/internal/domain/entity"
	"github.com/classiclink/ledger-api/internal/domain/repository"
	"github.com/classiclink/ledger-api/pkg/apperror"
	"github.com/classiclink/ledger-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxCodeService handles tax code operations
type TaxCodeService struct {
	taxCodeRepo repository.TaxCodeRepository
	accountRepo repository.AccountRepository
}

// NewTaxCodeService creates a new tax code service
func NewTaxCodeService(taxCodeRepo repository.TaxCodeRepository, accountRepo repository.AccountRepository) *TaxCodeService {
	return &TaxCodeService{taxCodeRepo: taxCodeRepo, accountRepo: accountRepo}
}

// CreateTaxCodeInput represents the create tax code input
type CreateTaxCodeInput struct {
	Code               string
	Name               string
	Rate               decimal.Decimal
	LiabilityAccountID uuid.UUID
}

// CreateTaxCode creates a new tax code
func (s *TaxCodeService) CreateTaxCode(ctx context.Context, input *CreateTaxCodeInput) (*entity.TaxCode, error) {
	if input.Rate.Sign() < 0 {
		return nil, apperror.NewBadRequestError("Rate cannot be negative")
	}

	existing, err := s.taxCodeRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Tax code already exists")
	}

	account, err := s.accountRepo.GetByID(ctx, input.LiabilityAccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.NewNotFoundError("Liability account")
	}

	code := &entity.TaxCode{
		Code:               input.Code,
		Name:               input.Name,
		Rate:               input.Rate,
		LiabilityAccountID: input.LiabilityAccountID,
		Active:             true,
	}

	if err := s.taxCodeRepo.Create(ctx, code); err != nil {
		return nil, err
	}
	return code, nil
}

// GetTaxCode retrieves a tax code by ID
func (s *TaxCodeService) GetTaxCode(ctx context.Context, id uuid.UUID) (*entity.TaxCode, error) {
	code, err := s.taxCodeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if code == nil {
		return nil, apperror.NewNotFoundError("Tax code")
	}
	return code, nil
}

// UpdateTaxCodeInput represents the update tax code input
type UpdateTaxCodeInput struct {
	Name               *string
	Rate               *decimal.Decimal
	LiabilityAccountID *uuid.UUID
	Active             *bool
}

// UpdateTaxCode updates an existing tax code. Rate changes affect future
// postings only; committed tax lines keep the amount they were posted with.
func (s *TaxCodeService) UpdateTaxCode(ctx context.Context, id uuid.UUID, input *UpdateTaxCodeInput) (*entity.TaxCode, error) {
	code, err := s.GetTaxCode(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		code.Name = *input.Name
	}
	if input.Rate != nil {
		if input.Rate.Sign() < 0 {
			return nil, apperror.NewBadRequestError("Rate cannot be negative")
		}
		code.Rate = *input.Rate
	}
	if input.LiabilityAccountID != nil {
		account, err := s.accountRepo.GetByID(ctx, *input.LiabilityAccountID)
		if err != nil {
			return nil, err
		}
		if account == nil {
			return nil, apperror.NewNotFoundError("Liability account")
		}
		code.LiabilityAccountID = *input.LiabilityAccountID
	}
	if input.Active != nil {
		code.Active = *input.Active
	}

	if err := s.taxCodeRepo.Update(ctx, code); err != nil {
		return nil, err
	}
	return code, nil
}

// DeleteTaxCode soft-deletes a tax code
func (s *TaxCodeService) DeleteTaxCode(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetTaxCode(ctx, id); err != nil {
		return err
	}
	return s.taxCodeRepo.Delete(ctx, id)
}

// ListTaxCodes lists tax codes with pagination
func (s *TaxCodeService) ListTaxCodes(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) (*pagination.PaginatedResult[entity.TaxCode], error) {
	codes, total, err := s.taxCodeRepo.List(ctx, params, activeOnly)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(codes, pag), nil
}
