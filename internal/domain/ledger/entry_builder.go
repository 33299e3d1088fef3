package ledger

import (
	"github.com/classiclink/ledger-api/internal/domain/entity"
	"github.com/classiclink/ledger-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountResolution carries the account routing the entry builder needs,
// prefetched from the chart of accounts and catalog metadata. Zero UUIDs or
// missing map entries mean the account could not be resolved and make Build
// fail with AccountResolutionError.
type AccountResolution struct {
	Receivable uuid.UUID
	Payable    uuid.UUID

	// Per item ID.
	Revenue        map[uuid.UUID]uuid.UUID
	Expense        map[uuid.UUID]uuid.UUID
	InventoryAsset map[uuid.UUID]uuid.UUID
	CostOfGoods    map[uuid.UUID]uuid.UUID
	TrackInventory map[uuid.UUID]bool
	CostBasis      map[uuid.UUID]decimal.Decimal

	// Per tax code ID.
	TaxLiability map[uuid.UUID]uuid.UUID
}

// EntryBuilder turns a transaction into its balanced set of GL entries.
// Amount convention: positive is a debit, negative is a credit. Taxes are
// exclusive: the header total equals line amounts plus tax amounts, and the
// balancing receivable/payable entry carries the full total.
type EntryBuilder struct{}

// NewEntryBuilder creates an entry builder.
func NewEntryBuilder() *EntryBuilder {
	return &EntryBuilder{}
}

// Build produces the ordered entry set for the transaction: the balancing
// debit (or credit for bills) first, then one collapsed entry per distinct
// line account in first-seen line order, then one entry per tax line, then
// the inventory cost pairs in line order. Credit memos are invoices with
// every sign flipped. The same input always yields the same entries in the
// same order.
func (b *EntryBuilder) Build(header *entity.TransactionHeader, lines []entity.LineItem, taxLines []entity.TaxLine, res AccountResolution) ([]entity.GLEntry, error) {
	switch header.Type {
	case enum.TransactionTypeBill:
		return b.build(header, lines, taxLines, res, billRouting(res), decimal.NewFromInt(-1))
	default:
		mult := decimal.NewFromInt(int64(header.Type.Multiplier()))
		return b.build(header, lines, taxLines, res, saleRouting(res), mult)
	}
}

// routing abstracts the account roles that differ between the sales shape
// (invoice, credit memo) and the purchase shape (bill).
type routing struct {
	balancingAccount uuid.UUID
	balancingRole    string
	balancingType    enum.EntryType
	lineAccount      func(itemID uuid.UUID) (uuid.UUID, bool)
	lineRole         string
	lineType         enum.EntryType
}

func saleRouting(res AccountResolution) routing {
	return routing{
		balancingAccount: res.Receivable,
		balancingRole:    "receivable",
		balancingType:    enum.EntryTypeReceivable,
		lineAccount: func(itemID uuid.UUID) (uuid.UUID, bool) {
			id, ok := res.Revenue[itemID]
			return id, ok
		},
		lineRole: "revenue",
		lineType: enum.EntryTypeRevenue,
	}
}

func billRouting(res AccountResolution) routing {
	return routing{
		balancingAccount: res.Payable,
		balancingRole:    "payable",
		balancingType:    enum.EntryTypePayable,
		lineAccount: func(itemID uuid.UUID) (uuid.UUID, bool) {
			// Tracked items received on a bill go to the inventory asset
			// account instead of expense.
			if res.TrackInventory[itemID] {
				id, ok := res.InventoryAsset[itemID]
				return id, ok
			}
			id, ok := res.Expense[itemID]
			return id, ok
		},
		lineRole: "expense",
		lineType: enum.EntryTypeExpense,
	}
}

func (b *EntryBuilder) build(header *entity.TransactionHeader, lines []entity.LineItem, taxLines []entity.TaxLine, res AccountResolution, rt routing, mult decimal.Decimal) ([]entity.GLEntry, error) {
	if rt.balancingAccount == uuid.Nil {
		return nil, &AccountResolutionError{Role: rt.balancingRole}
	}

	entries := make([]entity.GLEntry, 0, len(lines)+len(taxLines)+2)
	seq := 1

	// Balancing entry for the full transaction total.
	entries = append(entries, entity.GLEntry{
		AccountID: rt.balancingAccount,
		Seq:       seq,
		Amount:    header.Total.Mul(mult),
		Type:      rt.balancingType,
		Memo:      header.Memo,
	})
	seq++

	// One collapsed entry per distinct line account, in first-seen order.
	// Collapsing never changes the total: each group entry is the exact sum
	// of its line amounts.
	var order []uuid.UUID
	sums := make(map[uuid.UUID]decimal.Decimal)
	for _, line := range lines {
		accountID, ok := rt.lineAccount(line.ItemID)
		if !ok || accountID == uuid.Nil {
			return nil, &AccountResolutionError{Role: rt.lineRole, Ref: "item " + line.ItemID.String()}
		}
		if _, seen := sums[accountID]; !seen {
			order = append(order, accountID)
		}
		sums[accountID] = sums[accountID].Add(line.Amount)
	}
	for _, accountID := range order {
		entries = append(entries, entity.GLEntry{
			AccountID: accountID,
			Seq:       seq,
			Amount:    sums[accountID].Mul(mult).Neg(),
			Type:      rt.lineType,
		})
		seq++
	}

	// Tax entries use the tax line amounts verbatim, never re-derived.
	for _, tax := range taxLines {
		accountID, ok := res.TaxLiability[tax.TaxCodeID]
		if !ok || accountID == uuid.Nil {
			return nil, &AccountResolutionError{Role: "tax liability", Ref: "tax code " + tax.TaxCodeID.String()}
		}
		entries = append(entries, entity.GLEntry{
			AccountID: accountID,
			Seq:       seq,
			Amount:    tax.Amount.Mul(mult).Neg(),
			Type:      enum.EntryTypeTaxLiability,
		})
		seq++
	}

	// Matched cost pair per tracked inventory line, only on the sales shape:
	// relieving inventory at the costing basis belongs to invoices and
	// credit memos, bills already routed tracked lines to the asset account.
	if header.Type != enum.TransactionTypeBill {
		for _, line := range lines {
			if !res.TrackInventory[line.ItemID] {
				continue
			}
			cost := RoundAmount(line.Quantity.Mul(res.CostBasis[line.ItemID]))
			if cost.IsZero() {
				continue
			}
			cogsID, ok := res.CostOfGoods[line.ItemID]
			if !ok || cogsID == uuid.Nil {
				return nil, &AccountResolutionError{Role: "cost of goods", Ref: "item " + line.ItemID.String()}
			}
			assetID, ok := res.InventoryAsset[line.ItemID]
			if !ok || assetID == uuid.Nil {
				return nil, &AccountResolutionError{Role: "inventory asset", Ref: "item " + line.ItemID.String()}
			}
			entries = append(entries, entity.GLEntry{
				AccountID: cogsID,
				Seq:       seq,
				Amount:    cost.Mul(mult),
				Type:      enum.EntryTypeCostOfGoods,
			})
			seq++
			entries = append(entries, entity.GLEntry{
				AccountID: assetID,
				Seq:       seq,
				Amount:    cost.Mul(mult).Neg(),
				Type:      enum.EntryTypeInventoryAsset,
			})
			seq++
		}
	}

	return entries, nil
}
