package request

import "github.com/google/uuid"

// UpdateLedgerSettingsRequest represents a ledger settings update request
type UpdateLedgerSettingsRequest struct {
	ReceivableAccountID *uuid.UUID `json:"receivable_account_id"`
	PayableAccountID    *uuid.UUID `json:"payable_account_id"`
	EmitZeroTaxLines    *bool      `json:"emit_zero_tax_lines"`
}
