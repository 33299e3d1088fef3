package repository

import (
	"context"
	"errors"

	"github.com/classiclink/ledger-api/internal/domain/entity"
	domainRepo "github.com/classiclink/ledger-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get retrieves the singleton ledger settings row
func (r *settingsRepository) Get(ctx context.Context) (*entity.LedgerSettings, error) {
	var settings entity.LedgerSettings
	err := r.db.WithContext(ctx).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &settings, err
}

// Update updates the ledger settings
func (r *settingsRepository) Update(ctx context.Context, settings *entity.LedgerSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
