package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TaxCode represents a sales tax with its rate and the liability account
// credited when the tax is collected
type TaxCode struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Code               string          `gorm:"size:50;unique;not null" json:"code"`
	Name               string          `gorm:"size:255;not null" json:"name"`
	Rate               decimal.Decimal `gorm:"type:decimal(9,4);not null" json:"rate"` // percent, e.g. 7.5
	LiabilityAccountID uuid.UUID       `gorm:"type:uuid;not null" json:"liability_account_id"`
	Active             bool            `gorm:"default:true;index" json:"active"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	LiabilityAccount Account `gorm:"foreignKey:LiabilityAccountID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tax code
func (t *TaxCode) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TaxCode model
func (TaxCode) TableName() string {
	return "tax_codes"
}

// ItemTaxLink records an explicit item/tax relation. Exempt=true removes the
// item from the tax code's base; absence of a row means the item is taxable
// under the code by default.
type ItemTaxLink struct {
	ItemID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"item_id"`
	TaxCodeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"tax_code_id"`
	Exempt    bool      `gorm:"default:false" json:"exempt"`
	CreatedAt time.Time `json:"created_at"`

	Item    Item    `gorm:"foreignKey:ItemID" json:"-"`
	TaxCode TaxCode `gorm:"foreignKey:TaxCodeID" json:"-"`
}

// TableName returns the table name for the ItemTaxLink model
func (ItemTaxLink) TableName() string {
	return "item_tax_links"
}

// CustomerTaxLink records an explicit customer/tax relation. Exemption is a
// positive override, never inferred: only a row with Exempt=true excludes the
// customer from a tax code.
type CustomerTaxLink struct {
	CustomerID uuid.UUID `gorm:"type:uuid;primaryKey" json:"customer_id"`
	TaxCodeID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"tax_code_id"`
	Exempt     bool      `gorm:"default:false" json:"exempt"`
	CreatedAt  time.Time `json:"created_at"`

	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
	TaxCode  TaxCode  `gorm:"foreignKey:TaxCodeID" json:"-"`
}

// TableName returns the table name for the CustomerTaxLink model
func (CustomerTaxLink) TableName() string {
	return "customer_tax_links"
}
