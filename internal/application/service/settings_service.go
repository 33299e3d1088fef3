package service

import (
	"context"

	"github.com/classiclink/ledger-api/internal/domain/entity"
	"github.com/classiclink/ledger-api/internal/domain/repository"
	"github.com/classiclink/ledger-api/pkg/apperror"
	"github.com/google/uuid"
)

// SettingsService handles ledger settings business logic
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	accountRepo  repository.AccountRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository, accountRepo repository.AccountRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo, accountRepo: accountRepo}
}

// GetSettings retrieves the ledger settings
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.LedgerSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperror.NewNotFoundError("Ledger settings")
	}
	return settings, nil
}

// UpdateSettingsInput represents the input for updating ledger settings
type UpdateSettingsInput struct {
	ReceivableAccountID *uuid.UUID
	PayableAccountID    *uuid.UUID
	EmitZeroTaxLines    *bool
}

// UpdateSettings updates the ledger settings. Account references are
// validated so the posting engine never resolves a dangling default.
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.LedgerSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if input.ReceivableAccountID != nil {
		account, err := s.accountRepo.GetByID(ctx, *input.ReceivableAccountID)
		if err != nil {
			return nil, err
		}
		if account == nil {
			return nil, apperror.NewNotFoundError("Receivable account")
		}
		settings.ReceivableAccountID = *input.ReceivableAccountID
	}
	if input.PayableAccountID != nil {
		account, err := s.accountRepo.GetByID(ctx, *input.PayableAccountID)
		if err != nil {
			return nil, err
		}
		if account == nil {
			return nil, apperror.NewNotFoundError("Payable account")
		}
		settings.PayableAccountID = *input.PayableAccountID
	}
	if input.EmitZeroTaxLines != nil {
		settings.EmitZeroTaxLines = *input.EmitZeroTaxLines
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
