package request

// CreateAccountRequest represents a GL account creation request
type CreateAccountRequest struct {
	Number      int     `json:"number" binding:"required,min=1"`
	Name        string  `json:"name" binding:"required,min=2,max=255"`
	Type        string  `json:"type" binding:"required,oneof=Asset Liability Equity Income Expense"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

// UpdateAccountRequest represents a GL account update request
type UpdateAccountRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=255"`
	Description *string `json:"description" binding:"omitempty,max=255"`
	Active      *bool   `json:"active"`
}
