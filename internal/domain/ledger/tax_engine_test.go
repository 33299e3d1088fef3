package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classiclink/ledger-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func taxCode(code string, rate string) entity.TaxCode {
	return entity.TaxCode{
		ID:     uuid.New(),
		Code:   code,
		Rate:   dec(rate),
		Active: true,
	}
}

func TestTaxEngineCompute(t *testing.T) {
	itemA := uuid.New()
	itemB := uuid.New()
	lines := []entity.LineItem{
		{ItemID: itemA, Seq: 1, Amount: dec("100.00")},
		{ItemID: itemB, Seq: 2, Amount: dec("50.00")},
	}

	t.Run("applies rate to full base", func(t *testing.T) {
		code := taxCode("VAT", "7.5")
		engine := NewTaxEngine(TaxEngineOptions{})

		taxLines, err := engine.Compute(lines, TaxContext{Codes: []entity.TaxCode{code}}, 3)
		require.NoError(t, err)
		require.Len(t, taxLines, 1)

		assert.Equal(t, code.ID, taxLines[0].TaxCodeID)
		assert.Equal(t, 3, taxLines[0].Seq)
		assert.True(t, taxLines[0].BaseAmount.Equal(dec("150.00")), "base %s", taxLines[0].BaseAmount)
		assert.True(t, taxLines[0].Amount.Equal(dec("11.25")), "amount %s", taxLines[0].Amount)
	})

	t.Run("item exemption removes line from base", func(t *testing.T) {
		code := taxCode("VAT", "10")
		engine := NewTaxEngine(TaxEngineOptions{})

		tc := TaxContext{
			Codes: []entity.TaxCode{code},
			ItemExemptions: map[uuid.UUID]map[uuid.UUID]bool{
				itemB: {code.ID: true},
			},
		}

		taxLines, err := engine.Compute(lines, tc, 3)
		require.NoError(t, err)
		require.Len(t, taxLines, 1)
		assert.True(t, taxLines[0].BaseAmount.Equal(dec("100.00")))
		assert.True(t, taxLines[0].Amount.Equal(dec("10.00")))
	})

	t.Run("customer exemption zeroes the base", func(t *testing.T) {
		code := taxCode("VAT", "10")
		engine := NewTaxEngine(TaxEngineOptions{EmitZeroLines: true})

		tc := TaxContext{
			Codes:              []entity.TaxCode{code},
			CustomerExemptions: map[uuid.UUID]bool{code.ID: true},
		}

		taxLines, err := engine.Compute(lines, tc, 3)
		require.NoError(t, err)
		require.Len(t, taxLines, 1)
		assert.True(t, taxLines[0].BaseAmount.IsZero())
		assert.True(t, taxLines[0].Amount.IsZero())
	})

	t.Run("zero lines suppressed when not emitting", func(t *testing.T) {
		code := taxCode("VAT", "10")
		engine := NewTaxEngine(TaxEngineOptions{EmitZeroLines: false})

		tc := TaxContext{
			Codes:              []entity.TaxCode{code},
			CustomerExemptions: map[uuid.UUID]bool{code.ID: true},
		}

		taxLines, err := engine.Compute(lines, tc, 3)
		require.NoError(t, err)
		assert.Empty(t, taxLines)
	})

	t.Run("multiple codes keep request order and sequence", func(t *testing.T) {
		vat := taxCode("VAT", "7.5")
		city := taxCode("CITY", "2")
		engine := NewTaxEngine(TaxEngineOptions{})

		taxLines, err := engine.Compute(lines, TaxContext{Codes: []entity.TaxCode{vat, city}}, 3)
		require.NoError(t, err)
		require.Len(t, taxLines, 2)
		assert.Equal(t, vat.ID, taxLines[0].TaxCodeID)
		assert.Equal(t, 3, taxLines[0].Seq)
		assert.Equal(t, city.ID, taxLines[1].TaxCodeID)
		assert.Equal(t, 4, taxLines[1].Seq)
		assert.True(t, taxLines[1].Amount.Equal(dec("3.00")))
	})

	t.Run("inactive code fails", func(t *testing.T) {
		code := taxCode("OLD", "5")
		code.Active = false
		engine := NewTaxEngine(TaxEngineOptions{})

		_, err := engine.Compute(lines, TaxContext{Codes: []entity.TaxCode{code}}, 3)
		var taxErr *TaxConfigurationError
		require.ErrorAs(t, err, &taxErr)
		assert.Equal(t, "OLD", taxErr.Code)
	})

	t.Run("tie rounding goes up", func(t *testing.T) {
		// 33.335 * 7.5% = 2.500125 -> 2.50; 16.70 * 7.5% = 1.2525 -> 1.25
		// then a true tie: 0.10 * 5% = 0.005 -> 0.01
		code := taxCode("T", "5")
		engine := NewTaxEngine(TaxEngineOptions{})

		tieLines := []entity.LineItem{{ItemID: itemA, Seq: 1, Amount: dec("0.10")}}
		taxLines, err := engine.Compute(tieLines, TaxContext{Codes: []entity.TaxCode{code}}, 2)
		require.NoError(t, err)
		require.Len(t, taxLines, 1)
		assert.True(t, taxLines[0].Amount.Equal(dec("0.01")), "amount %s", taxLines[0].Amount)
	})
}
