package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classiclink/ledger-api/internal/domain/entity"
	"github.com/classiclink/ledger-api/internal/domain/enum"
)

type builderFixture struct {
	receivable uuid.UUID
	payable    uuid.UUID
	revenue    uuid.UUID
	inventory  uuid.UUID
	cogs       uuid.UUID
	expense    uuid.UUID
	taxAcct    uuid.UUID

	itemPlain   uuid.UUID
	itemTracked uuid.UUID
	taxCodeID   uuid.UUID
}

func newBuilderFixture() builderFixture {
	return builderFixture{
		receivable:  uuid.New(),
		payable:     uuid.New(),
		revenue:     uuid.New(),
		inventory:   uuid.New(),
		cogs:        uuid.New(),
		expense:     uuid.New(),
		taxAcct:     uuid.New(),
		itemPlain:   uuid.New(),
		itemTracked: uuid.New(),
		taxCodeID:   uuid.New(),
	}
}

func (f builderFixture) resolution() AccountResolution {
	return AccountResolution{
		Receivable: f.receivable,
		Payable:    f.payable,
		Revenue: map[uuid.UUID]uuid.UUID{
			f.itemPlain:   f.revenue,
			f.itemTracked: f.revenue,
		},
		Expense: map[uuid.UUID]uuid.UUID{
			f.itemPlain:   f.expense,
			f.itemTracked: f.expense,
		},
		InventoryAsset: map[uuid.UUID]uuid.UUID{
			f.itemTracked: f.inventory,
		},
		CostOfGoods: map[uuid.UUID]uuid.UUID{
			f.itemTracked: f.cogs,
		},
		TrackInventory: map[uuid.UUID]bool{
			f.itemTracked: true,
		},
		CostBasis: map[uuid.UUID]decimal.Decimal{
			f.itemTracked: dec("6.00"),
		},
		TaxLiability: map[uuid.UUID]uuid.UUID{
			f.taxCodeID: f.taxAcct,
		},
	}
}

func header(txType enum.TransactionType, total string) *entity.TransactionHeader {
	memo := "test posting"
	return &entity.TransactionHeader{
		Type:  txType,
		Total: dec(total),
		Memo:  &memo,
	}
}

func assertEntry(t *testing.T, e entity.GLEntry, account uuid.UUID, seq int, amount string, entryType enum.EntryType) {
	t.Helper()
	assert.Equal(t, account, e.AccountID)
	assert.Equal(t, seq, e.Seq)
	assert.True(t, e.Amount.Equal(dec(amount)), "seq %d amount %s, want %s", seq, e.Amount, amount)
	assert.Equal(t, entryType, e.Type)
}

func TestEntryBuilderInvoice(t *testing.T) {
	f := newBuilderFixture()
	builder := NewEntryBuilder()

	lines := []entity.LineItem{
		{ItemID: f.itemPlain, Seq: 1, Quantity: dec("1"), Amount: dec("100.00")},
		{ItemID: f.itemTracked, Seq: 2, Quantity: dec("2"), Amount: dec("50.00")},
	}
	taxLines := []entity.TaxLine{
		{TaxCodeID: f.taxCodeID, Seq: 3, BaseAmount: dec("150.00"), Amount: dec("11.25")},
	}

	entries, err := builder.Build(header(enum.TransactionTypeInvoice, "161.25"), lines, taxLines, f.resolution())
	require.NoError(t, err)
	require.Len(t, entries, 5)

	// Receivable debit, collapsed revenue credit, tax credit, cost pair.
	assertEntry(t, entries[0], f.receivable, 1, "161.25", enum.EntryTypeReceivable)
	assertEntry(t, entries[1], f.revenue, 2, "-150.00", enum.EntryTypeRevenue)
	assertEntry(t, entries[2], f.taxAcct, 3, "-11.25", enum.EntryTypeTaxLiability)
	assertEntry(t, entries[3], f.cogs, 4, "12.00", enum.EntryTypeCostOfGoods)
	assertEntry(t, entries[4], f.inventory, 5, "-12.00", enum.EntryTypeInventoryAsset)

	require.NoError(t, CheckBalance(entries))
	assert.Equal(t, "test posting", *entries[0].Memo)
}

func TestEntryBuilderCollapsesLinesByAccount(t *testing.T) {
	f := newBuilderFixture()
	builder := NewEntryBuilder()

	otherRevenue := uuid.New()
	itemC := uuid.New()
	res := f.resolution()
	res.Revenue[itemC] = otherRevenue
	res.Expense[itemC] = f.expense

	lines := []entity.LineItem{
		{ItemID: f.itemPlain, Seq: 1, Amount: dec("10.00")},
		{ItemID: itemC, Seq: 2, Amount: dec("20.00")},
		{ItemID: f.itemPlain, Seq: 3, Amount: dec("30.00")},
	}

	entries, err := builder.Build(header(enum.TransactionTypeInvoice, "60.00"), lines, nil, res)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// First-seen account order, with repeated accounts summed.
	assertEntry(t, entries[1], f.revenue, 2, "-40.00", enum.EntryTypeRevenue)
	assertEntry(t, entries[2], otherRevenue, 3, "-20.00", enum.EntryTypeRevenue)
	require.NoError(t, CheckBalance(entries))
}

func TestEntryBuilderCreditMemoFlipsSigns(t *testing.T) {
	f := newBuilderFixture()
	builder := NewEntryBuilder()

	lines := []entity.LineItem{
		{ItemID: f.itemTracked, Seq: 1, Quantity: dec("2"), Amount: dec("50.00")},
	}
	taxLines := []entity.TaxLine{
		{TaxCodeID: f.taxCodeID, Seq: 2, BaseAmount: dec("50.00"), Amount: dec("3.75")},
	}

	entries, err := builder.Build(header(enum.TransactionTypeCreditMemo, "53.75"), lines, taxLines, f.resolution())
	require.NoError(t, err)
	require.Len(t, entries, 5)

	assertEntry(t, entries[0], f.receivable, 1, "-53.75", enum.EntryTypeReceivable)
	assertEntry(t, entries[1], f.revenue, 2, "50.00", enum.EntryTypeRevenue)
	assertEntry(t, entries[2], f.taxAcct, 3, "3.75", enum.EntryTypeTaxLiability)
	assertEntry(t, entries[3], f.cogs, 4, "-12.00", enum.EntryTypeCostOfGoods)
	assertEntry(t, entries[4], f.inventory, 5, "12.00", enum.EntryTypeInventoryAsset)
	require.NoError(t, CheckBalance(entries))
}

func TestEntryBuilderBill(t *testing.T) {
	f := newBuilderFixture()
	builder := NewEntryBuilder()

	lines := []entity.LineItem{
		{ItemID: f.itemTracked, Seq: 1, Quantity: dec("10"), Amount: dec("60.00")},
		{ItemID: f.itemPlain, Seq: 2, Quantity: dec("1"), Amount: dec("40.00")},
	}

	entries, err := builder.Build(header(enum.TransactionTypeBill, "100.00"), lines, nil, f.resolution())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Payable credit first, tracked items debit inventory, untracked debit
	// expense. No cost pairs on the purchase shape.
	assertEntry(t, entries[0], f.payable, 1, "-100.00", enum.EntryTypePayable)
	assertEntry(t, entries[1], f.inventory, 2, "60.00", enum.EntryTypeExpense)
	assertEntry(t, entries[2], f.expense, 3, "40.00", enum.EntryTypeExpense)
	require.NoError(t, CheckBalance(entries))
}

func TestEntryBuilderSkipsZeroCostPair(t *testing.T) {
	f := newBuilderFixture()
	builder := NewEntryBuilder()

	res := f.resolution()
	res.CostBasis[f.itemTracked] = decimal.Zero

	lines := []entity.LineItem{
		{ItemID: f.itemTracked, Seq: 1, Quantity: dec("3"), Amount: dec("30.00")},
	}

	entries, err := builder.Build(header(enum.TransactionTypeInvoice, "30.00"), lines, nil, res)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.NoError(t, CheckBalance(entries))
}

func TestEntryBuilderAccountResolutionFailures(t *testing.T) {
	f := newBuilderFixture()
	builder := NewEntryBuilder()

	lines := []entity.LineItem{
		{ItemID: f.itemPlain, Seq: 1, Amount: dec("10.00")},
	}

	t.Run("missing receivable", func(t *testing.T) {
		res := f.resolution()
		res.Receivable = uuid.Nil

		_, err := builder.Build(header(enum.TransactionTypeInvoice, "10.00"), lines, nil, res)
		var resErr *AccountResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, "receivable", resErr.Role)
	})

	t.Run("missing revenue account for item", func(t *testing.T) {
		res := f.resolution()
		delete(res.Revenue, f.itemPlain)

		_, err := builder.Build(header(enum.TransactionTypeInvoice, "10.00"), lines, nil, res)
		var resErr *AccountResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, "revenue", resErr.Role)
	})

	t.Run("missing tax liability account", func(t *testing.T) {
		res := f.resolution()
		delete(res.TaxLiability, f.taxCodeID)
		taxLines := []entity.TaxLine{
			{TaxCodeID: f.taxCodeID, Seq: 2, Amount: dec("1.00")},
		}

		_, err := builder.Build(header(enum.TransactionTypeInvoice, "11.00"), lines, taxLines, res)
		var resErr *AccountResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, "tax liability", resErr.Role)
	})
}

func TestCheckBalance(t *testing.T) {
	balanced := []entity.GLEntry{
		{Amount: dec("10.00")},
		{Amount: dec("-7.50")},
		{Amount: dec("-2.50")},
	}
	require.NoError(t, CheckBalance(balanced))

	unbalanced := []entity.GLEntry{
		{Amount: dec("10.00")},
		{Amount: dec("-9.99")},
	}
	err := CheckBalance(unbalanced)
	var balErr *UnbalancedLedgerError
	require.ErrorAs(t, err, &balErr)
	assert.True(t, balErr.Sum.Equal(dec("0.01")))
}
