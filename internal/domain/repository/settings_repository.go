package repository

import (
	"context"

	"github.com/classiclink/ledger-api/internal/domain/entity"
)

// SettingsRepository defines the interface for ledger settings data access.
// Settings are a singleton row created at seed time.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.LedgerSettings, error)
	Update(ctx context.Context, settings *entity.LedgerSettings) error
}
