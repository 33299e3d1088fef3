package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateItemRequest represents an item creation request
type CreateItemRequest struct {
	Number           string           `json:"number" binding:"required,max=100"`
	Name             string           `json:"name" binding:"required,min=2,max=255"`
	Description      *string          `json:"description"`
	Price            decimal.Decimal  `json:"price" binding:"required"`
	AverageCost      *decimal.Decimal `json:"average_cost"`
	TrackInventory   bool             `json:"track_inventory"`
	RevenueAccountID *uuid.UUID       `json:"revenue_account_id"`
	AssetAccountID   *uuid.UUID       `json:"asset_account_id"`
	ExpenseAccountID *uuid.UUID       `json:"expense_account_id"`
}

// UpdateItemRequest represents an item update request
type UpdateItemRequest struct {
	Name             *string          `json:"name" binding:"omitempty,min=2,max=255"`
	Description      *string          `json:"description"`
	Price            *decimal.Decimal `json:"price"`
	AverageCost      *decimal.Decimal `json:"average_cost"`
	TrackInventory   *bool            `json:"track_inventory"`
	RevenueAccountID *uuid.UUID       `json:"revenue_account_id"`
	AssetAccountID   *uuid.UUID       `json:"asset_account_id"`
	ExpenseAccountID *uuid.UUID       `json:"expense_account_id"`
	Active           *bool            `json:"active"`
}

// ItemFilterRequest represents item filter parameters
type ItemFilterRequest struct {
	Search         string `form:"search"`
	TrackInventory string `form:"track_inventory"`
	ActiveOnly     bool   `form:"active_only"`
	SortBy         string `form:"sort_by"`
	SortOrder      string `form:"sort_order"`
	Page           int    `form:"page"`
	PerPage        int    `form:"per_page"`
	Limit          int    `form:"limit"` // For cursor-based pagination
}
