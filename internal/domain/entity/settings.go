package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerSettings holds the posting defaults: which accounts receive the
// balancing entries and whether fully exempted taxes are still persisted as
// zero-amount lines. A single row exists.
type LedgerSettings struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReceivableAccountID uuid.UUID `gorm:"type:uuid;not null" json:"receivable_account_id"`
	PayableAccountID    uuid.UUID `gorm:"type:uuid;not null" json:"payable_account_id"`
	EmitZeroTaxLines    bool      `gorm:"default:true" json:"emit_zero_tax_lines"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	ReceivableAccount *Account `gorm:"foreignKey:ReceivableAccountID" json:"-"`
	PayableAccount    *Account `gorm:"foreignKey:PayableAccountID" json:"-"`
}

// BeforeCreate generates a UUID before creating the settings row
func (s *LedgerSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LedgerSettings model
func (LedgerSettings) TableName() string {
	return "ledger_settings"
}
