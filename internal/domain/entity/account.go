package entity

import (
	"time"

	"github.com/classiclink/ledger-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account represents a general ledger account in the chart of accounts
type Account struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Number      int              `gorm:"unique;not null" json:"number"`
	Name        string           `gorm:"size:255;not null;index" json:"name"`
	Type        enum.AccountType `gorm:"default:0;index" json:"type"`
	Description *string          `gorm:"size:255" json:"description,omitempty"`
	Active      bool             `gorm:"default:true;index" json:"active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}
