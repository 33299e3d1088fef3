package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Item represents a sellable or purchasable catalog item. Account references
// route the GL entries its line items produce; AverageCost is the costing
// basis used for the inventory pair on tracked items.
type Item struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Number           string          `gorm:"size:100;unique;not null" json:"number"`
	Name             string          `gorm:"size:255;not null;index" json:"name"`
	Description      *string         `gorm:"type:text" json:"description,omitempty"`
	Price            decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"price"`
	AverageCost      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"average_cost"`
	TrackInventory   bool            `gorm:"default:false" json:"track_inventory"`
	RevenueAccountID *uuid.UUID      `gorm:"type:uuid" json:"revenue_account_id,omitempty"`
	AssetAccountID   *uuid.UUID      `gorm:"type:uuid" json:"asset_account_id,omitempty"`
	ExpenseAccountID *uuid.UUID      `gorm:"type:uuid" json:"expense_account_id,omitempty"`
	Active           bool            `gorm:"default:true;index" json:"active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	RevenueAccount *Account      `gorm:"foreignKey:RevenueAccountID" json:"-"`
	AssetAccount   *Account      `gorm:"foreignKey:AssetAccountID" json:"-"`
	ExpenseAccount *Account      `gorm:"foreignKey:ExpenseAccountID" json:"-"`
	TaxLinks       []ItemTaxLink `gorm:"foreignKey:ItemID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new item
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Item model
func (Item) TableName() string {
	return "items"
}
