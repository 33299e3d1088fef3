package ledger

import (
	"github.com/classiclink/ledger-api/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxContext carries the tax configuration a computation runs against. The
// posting service prefetches it so the engine itself stays a pure function
// over its inputs.
type TaxContext struct {
	// Codes are the tax codes requested for the transaction, in request
	// order.
	Codes []entity.TaxCode
	// ItemExemptions maps item ID -> tax code ID -> exempt. A missing entry
	// means the item is taxable under the code.
	ItemExemptions map[uuid.UUID]map[uuid.UUID]bool
	// CustomerExemptions maps tax code ID -> exempt for the transaction's
	// customer. Exemption is a positive override: only an explicit true
	// removes the customer from a code's base.
	CustomerExemptions map[uuid.UUID]bool
}

// TaxEngineOptions control engine behavior that the source system left
// configurable.
type TaxEngineOptions struct {
	// EmitZeroLines keeps fully-exempted codes as zero-amount tax lines so
	// the audit trail shows which codes were evaluated. When false those
	// lines are suppressed.
	EmitZeroLines bool
}

// TaxEngine determines which requested tax codes apply to which line items
// and computes the rounded tax amounts. It has no side effects.
type TaxEngine struct {
	opts TaxEngineOptions
}

// NewTaxEngine creates a tax engine with the given options.
func NewTaxEngine(opts TaxEngineOptions) *TaxEngine {
	return &TaxEngine{opts: opts}
}

// Compute evaluates every requested tax code against the line items and
// returns the resulting tax lines, with Seq continuing from startSeq.
// Inactive codes fail with TaxConfigurationError; the caller resolves
// unknown code strings before calling and reports them with the same error
// type.
func (e *TaxEngine) Compute(lines []entity.LineItem, tc TaxContext, startSeq int) ([]entity.TaxLine, error) {
	taxLines := make([]entity.TaxLine, 0, len(tc.Codes))
	seq := startSeq

	for _, code := range tc.Codes {
		if !code.Active {
			return nil, &TaxConfigurationError{Code: code.Code, Reason: "tax code is inactive"}
		}

		base := decimal.Zero
		if !tc.CustomerExemptions[code.ID] {
			for _, line := range lines {
				if exemptions, ok := tc.ItemExemptions[line.ItemID]; ok && exemptions[code.ID] {
					continue
				}
				base = base.Add(line.Amount)
			}
		}

		amount := RoundAmount(base.Mul(code.Rate).Div(oneHundred))
		if amount.IsZero() && !e.opts.EmitZeroLines {
			continue
		}

		taxLines = append(taxLines, entity.TaxLine{
			TaxCodeID:  code.ID,
			Seq:        seq,
			BaseAmount: base,
			Amount:     amount,
		})
		seq++
	}

	return taxLines, nil
}

var oneHundred = decimal.NewFromInt(100)
