package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTaxCodeRequest represents a tax code creation request
type CreateTaxCodeRequest struct {
	Code               string          `json:"code" binding:"required,max=50"`
	Name               string          `json:"name" binding:"required,min=2,max=255"`
	Rate               decimal.Decimal `json:"rate" binding:"required"`
	LiabilityAccountID uuid.UUID       `json:"liability_account_id" binding:"required"`
}

// UpdateTaxCodeRequest represents a tax code update request
type UpdateTaxCodeRequest struct {
	Name               *string          `json:"name" binding:"omitempty,min=2,max=255"`
	Rate               *decimal.Decimal `json:"rate"`
	LiabilityAccountID *uuid.UUID       `json:"liability_account_id"`
	Active             *bool            `json:"active"`
}
