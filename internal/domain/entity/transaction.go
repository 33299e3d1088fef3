package entity

import (
	"time"

	"github.com/classiclink/ledger-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionHeader represents a posted accounting document: an invoice,
// credit memo, or bill. The ID is issued by the sequence allocator, never by
// the database, so it is known before the commit that writes the header.
// Once Status is Posted the header and all its rows are immutable.
type TransactionHeader struct {
	ID             int64                  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Type           enum.TransactionType   `gorm:"not null;uniqueIndex:idx_trans_type_number,priority:1" json:"type"`
	DocumentNumber string                 `gorm:"size:100;not null;uniqueIndex:idx_trans_type_number,priority:2" json:"document_number"`
	CustomerID     uuid.UUID              `gorm:"type:uuid;not null;index" json:"customer_id"`
	Date           time.Time              `gorm:"type:date;not null;index" json:"date"`
	Total          decimal.Decimal        `gorm:"type:decimal(18,4);not null" json:"total"`
	Status         enum.TransactionStatus `gorm:"default:0;index" json:"status"`
	Memo           *string                `gorm:"size:255" json:"memo,omitempty"`
	ParentID       *int64                 `gorm:"index" json:"parent_id,omitempty"` // correcting document, if any
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`

	// Relationships
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Lines    []LineItem `gorm:"foreignKey:TransactionID" json:"lines,omitempty"`
	TaxLines []TaxLine  `gorm:"foreignKey:TransactionID" json:"tax_lines,omitempty"`
	Entries  []GLEntry  `gorm:"foreignKey:TransactionID" json:"entries,omitempty"`
}

// TableName returns the table name for the TransactionHeader model
func (TransactionHeader) TableName() string {
	return "transaction_headers"
}

// LineItem represents one catalog line on a transaction. Amount is always
// quantity × unit price at currency precision; Seq is the stable ordering
// index used to keep generated entries deterministic.
type LineItem struct {
	ID            int64           `gorm:"primaryKey" json:"id"`
	TransactionID int64           `gorm:"not null;index" json:"transaction_id"`
	ItemID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"item_id"`
	Seq           int             `gorm:"not null" json:"seq"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_price"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	Description   *string         `gorm:"size:255" json:"description,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`

	Item *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// TableName returns the table name for the LineItem model
func (LineItem) TableName() string {
	return "line_items"
}

// TaxLine represents a tax evaluated against a transaction. BaseAmount is the
// sum of line amounts the code applied to; Amount is the rounded tax. Seq
// continues the line item sequence.
type TaxLine struct {
	ID            int64           `gorm:"primaryKey" json:"id"`
	TransactionID int64           `gorm:"not null;index" json:"transaction_id"`
	TaxCodeID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"tax_code_id"`
	Seq           int             `gorm:"not null" json:"seq"`
	BaseAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"base_amount"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`

	TaxCode *TaxCode `gorm:"foreignKey:TaxCodeID" json:"tax_code,omitempty"`
}

// TableName returns the table name for the TaxLine model
func (TaxLine) TableName() string {
	return "tax_lines"
}

// GLEntry is a single signed general ledger row. Positive amounts are debits,
// negative amounts are credits; the entries of one transaction always sum to
// exactly zero. Entries are written as a batch with their header and are
// never individually mutated afterwards.
type GLEntry struct {
	ID            int64           `gorm:"primaryKey" json:"id"`
	TransactionID int64           `gorm:"not null;index" json:"transaction_id"`
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	Seq           int             `gorm:"not null" json:"seq"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	Type          enum.EntryType  `gorm:"not null" json:"type"`
	Memo          *string         `gorm:"size:255" json:"memo,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`

	Account *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

// TableName returns the table name for the GLEntry model
func (GLEntry) TableName() string {
	return "gl_entries"
}
