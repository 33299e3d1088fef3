package request

import "github.com/google/uuid"

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=255"`
	AccountNumber *string `json:"account_number" binding:"omitempty,max=100"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	Address       *string `json:"address"`
	Taxable       *bool   `json:"taxable"`
	TaxExemptNo   *string `json:"tax_exempt_no" binding:"omitempty,max=100"`
	Notes         *string `json:"notes"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=255"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Address     *string `json:"address"`
	Taxable     *bool   `json:"taxable"`
	TaxExemptNo *string `json:"tax_exempt_no" binding:"omitempty,max=100"`
	Active      *bool   `json:"active"`
	Notes       *string `json:"notes"`
}

// TaxLinkRequest represents one tax code link
type TaxLinkRequest struct {
	TaxCodeID uuid.UUID `json:"tax_code_id" binding:"required"`
	Exempt    bool      `json:"exempt"`
}

// SetTaxLinksRequest replaces an entity's tax code links
type SetTaxLinksRequest struct {
	Links []TaxLinkRequest `json:"links" binding:"dive"`
}
