package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PostingLineRequest represents one line of a posting request
type PostingLineRequest struct {
	ItemID      uuid.UUID        `json:"item_id" binding:"required"`
	Quantity    decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Description *string          `json:"description" binding:"omitempty,max=255"`
}

// CreatePostingRequest represents a request to post a transaction
type CreatePostingRequest struct {
	// Type is the document type: Invoice, CreditMemo or Bill
	Type       string               `json:"type" binding:"required,oneof=Invoice CreditMemo Bill"`
	CustomerID uuid.UUID            `json:"customer_id" binding:"required"`
	Date       *time.Time           `json:"date"`
	Memo       *string              `json:"memo" binding:"omitempty,max=255"`
	ParentID   *int64               `json:"parent_id"`
	Lines      []PostingLineRequest `json:"lines" binding:"required,min=1,dive"`
	TaxCodes   []string             `json:"tax_codes"`
}

// TransactionFilterRequest represents transaction list filter parameters
type TransactionFilterRequest struct {
	Type       string `form:"type"`
	Status     string `form:"status"`
	CustomerID string `form:"customer_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
