package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classiclink/ledger-api/internal/config"
	"github.com/classiclink/ledger-api/internal/domain/entity"
	"github.com/classiclink/ledger-api/internal/domain/enum"
	"github.com/classiclink/ledger-api/internal/domain/ledger"
	"github.com/classiclink/ledger-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// In-memory fakes. Embedding the interface keeps them small; only the
// methods the posting pipeline calls are implemented.

type fakeCustomerRepo struct {
	repository.CustomerRepository
	customers map[uuid.UUID]*entity.Customer
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	return f.customers[id], nil
}

func (f *fakeCustomerRepo) GetWithTaxLinks(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	return f.customers[id], nil
}

type fakeItemRepo struct {
	repository.ItemRepository
	items map[uuid.UUID]*entity.Item
	links []entity.ItemTaxLink
}

func (f *fakeItemRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Item, error) {
	var out []entity.Item
	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if item, ok := f.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) GetTaxLinks(_ context.Context, itemIDs []uuid.UUID) ([]entity.ItemTaxLink, error) {
	want := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		want[id] = true
	}
	var out []entity.ItemTaxLink
	for _, link := range f.links {
		if want[link.ItemID] {
			out = append(out, link)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) UpdateAverageCost(_ context.Context, id uuid.UUID, cost decimal.Decimal) error {
	if item, ok := f.items[id]; ok {
		item.AverageCost = cost
	}
	return nil
}

type fakeTaxCodeRepo struct {
	repository.TaxCodeRepository
	codes map[string]*entity.TaxCode
}

func (f *fakeTaxCodeRepo) GetByCodes(_ context.Context, codes []string) ([]entity.TaxCode, error) {
	var out []entity.TaxCode
	for _, c := range codes {
		if code, ok := f.codes[c]; ok {
			out = append(out, *code)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct {
	repository.SettingsRepository
	settings *entity.LedgerSettings
}

func (f *fakeSettingsRepo) Get(_ context.Context) (*entity.LedgerSettings, error) {
	return f.settings, nil
}

type fakeSequenceRepo struct {
	repository.SequenceRepository
	mu       sync.Mutex
	counters map[string]int64
	failNext bool
}

func (f *fakeSequenceRepo) GetAndIncrement(_ context.Context, name, subKey string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		return 0, &ledger.AllocationConflictError{Key: name + "/" + subKey, Attempts: 3}
	}
	key := name + "/" + subKey
	if f.counters == nil {
		f.counters = make(map[string]int64)
	}
	f.counters[key]++
	return f.counters[key], nil
}

func (f *fakeSequenceRepo) Peek(_ context.Context, name, subKey string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counters[name+"/"+subKey], nil
}

type fakeTransactionRepo struct {
	repository.TransactionRepository
	mu        sync.Mutex
	committed []*entity.TransactionHeader
	failWith  error
}

func (f *fakeTransactionRepo) CreatePosting(_ context.Context, header *entity.TransactionHeader, lines []entity.LineItem, taxLines []entity.TaxLine, entries []entity.GLEntry) error {
	if f.failWith != nil {
		return f.failWith
	}
	stored := *header
	stored.Lines = lines
	stored.TaxLines = taxLines
	stored.Entries = entries
	f.mu.Lock()
	f.committed = append(f.committed, &stored)
	f.mu.Unlock()
	return nil
}

func (f *fakeTransactionRepo) GetByID(_ context.Context, id int64) (*entity.TransactionHeader, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.committed {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, nil
}

func (f *fakeTransactionRepo) GetWithDetails(_ context.Context, id int64) (*entity.TransactionHeader, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.committed {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, nil
}

// postingFixture wires a posting service over the in-memory fakes with a
// seeded customer, a plain item, a tracked item and a 7.5% tax code.
type postingFixture struct {
	svc *PostingService

	customers    *fakeCustomerRepo
	items        *fakeItemRepo
	taxCodes     *fakeTaxCodeRepo
	settings     *fakeSettingsRepo
	sequences    *fakeSequenceRepo
	transactions *fakeTransactionRepo

	customerID  uuid.UUID
	itemPlain   uuid.UUID
	itemTracked uuid.UUID
	taxCodeID   uuid.UUID
}

func newPostingFixture() *postingFixture {
	customerID := uuid.New()
	itemPlain := uuid.New()
	itemTracked := uuid.New()

	receivable := uuid.New()
	payable := uuid.New()
	revenue := uuid.New()
	inventory := uuid.New()
	expense := uuid.New()
	taxLiability := uuid.New()
	taxCodeID := uuid.New()

	f := &postingFixture{
		customerID:  customerID,
		itemPlain:   itemPlain,
		itemTracked: itemTracked,
		taxCodeID:   taxCodeID,
	}

	f.customers = &fakeCustomerRepo{customers: map[uuid.UUID]*entity.Customer{
		customerID: {ID: customerID, Name: "Acme Ltd", Taxable: true, Active: true},
	}}
	f.items = &fakeItemRepo{items: map[uuid.UUID]*entity.Item{
		itemPlain: {
			ID:               itemPlain,
			Number:           "SVC-1",
			Name:             "Consulting",
			Price:            dec("100.00"),
			AverageCost:      decimal.Zero,
			Active:           true,
			RevenueAccountID: &revenue,
			ExpenseAccountID: &expense,
		},
		itemTracked: {
			ID:               itemTracked,
			Number:           "WID-1",
			Name:             "Widget",
			Price:            dec("25.00"),
			AverageCost:      dec("6.00"),
			TrackInventory:   true,
			Active:           true,
			RevenueAccountID: &revenue,
			AssetAccountID:   &inventory,
			ExpenseAccountID: &expense,
		},
	}}
	f.taxCodes = &fakeTaxCodeRepo{codes: map[string]*entity.TaxCode{
		"TAX": {
			ID:                 taxCodeID,
			Code:               "TAX",
			Name:               "Sales Tax",
			Rate:               dec("7.5"),
			LiabilityAccountID: taxLiability,
			Active:             true,
		},
	}}
	f.settings = &fakeSettingsRepo{settings: &entity.LedgerSettings{
		ReceivableAccountID: receivable,
		PayableAccountID:    payable,
		EmitZeroTaxLines:    true,
	}}
	f.sequences = &fakeSequenceRepo{}
	f.transactions = &fakeTransactionRepo{}

	f.svc = NewPostingService(
		f.transactions,
		f.customers,
		f.items,
		f.taxCodes,
		f.settings,
		f.sequences,
		config.LedgerConfig{EmitZeroTaxLines: true},
	)
	return f
}

func (f *postingFixture) invoiceInput() *PostingInput {
	return &PostingInput{
		Type:       enum.TransactionTypeInvoice,
		CustomerID: f.customerID,
		Date:       time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Lines: []PostingLineInput{
			{ItemID: f.itemPlain, Quantity: dec("1")},
			{ItemID: f.itemTracked, Quantity: dec("2")},
		},
		TaxCodes: []string{"TAX"},
	}
}

func TestPostInvoice(t *testing.T) {
	f := newPostingFixture()

	receipt, err := f.svc.Post(context.Background(), f.invoiceInput())
	require.NoError(t, err)

	assert.Equal(t, int64(1), receipt.TransactionID)
	assert.Equal(t, "INV-2026-00001", receipt.DocumentNumber)
	// 100 + 2*25 = 150 lines, 7.5% tax = 11.25
	assert.True(t, receipt.Total.Equal(dec("161.25")), "total %s", receipt.Total)

	require.Len(t, f.transactions.committed, 1)
	committed := f.transactions.committed[0]
	assert.Equal(t, enum.TransactionStatusPosted, committed.Status)
	require.Len(t, committed.Lines, 2)
	require.Len(t, committed.TaxLines, 1)
	assert.Equal(t, 3, committed.TaxLines[0].Seq)

	// Receivable, collapsed revenue, tax, cost pair for the tracked item.
	require.Len(t, committed.Entries, 5)
	require.NoError(t, ledger.CheckBalance(committed.Entries))
	assert.True(t, committed.Entries[0].Amount.Equal(dec("161.25")))
	assert.True(t, committed.Entries[3].Amount.Equal(dec("12.00")))
}

func TestPostDocumentNumbersAdvancePerTypeAndYear(t *testing.T) {
	f := newPostingFixture()
	ctx := context.Background()

	first, err := f.svc.Post(ctx, f.invoiceInput())
	require.NoError(t, err)
	second, err := f.svc.Post(ctx, f.invoiceInput())
	require.NoError(t, err)

	bill := f.invoiceInput()
	bill.Type = enum.TransactionTypeBill
	third, err := f.svc.Post(ctx, bill)
	require.NoError(t, err)

	nextYear := f.invoiceInput()
	nextYear.Date = time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC)
	fourth, err := f.svc.Post(ctx, nextYear)
	require.NoError(t, err)

	assert.Equal(t, "INV-2026-00001", first.DocumentNumber)
	assert.Equal(t, "INV-2026-00002", second.DocumentNumber)
	// Bills number independently of invoices.
	assert.Equal(t, "BILL-2026-00001", third.DocumentNumber)
	// The invoice counter restarts per fiscal year.
	assert.Equal(t, "INV-2027-00001", fourth.DocumentNumber)

	// Header IDs come from the shared counter regardless of type.
	assert.Equal(t, int64(1), first.TransactionID)
	assert.Equal(t, int64(2), second.TransactionID)
	assert.Equal(t, int64(3), third.TransactionID)
	assert.Equal(t, int64(4), fourth.TransactionID)
}

func TestPostCreditMemoInvertsEntries(t *testing.T) {
	f := newPostingFixture()

	// Post the invoice the memo refers back to.
	original, err := f.svc.Post(context.Background(), f.invoiceInput())
	require.NoError(t, err)

	input := f.invoiceInput()
	input.Type = enum.TransactionTypeCreditMemo
	input.ParentID = &original.TransactionID

	receipt, err := f.svc.Post(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "CM-2026-00001", receipt.DocumentNumber)

	committed := f.transactions.committed[1]
	require.NotNil(t, committed.ParentID)
	assert.Equal(t, original.TransactionID, *committed.ParentID)

	// Balancing entry is a credit on the credit memo shape.
	assert.True(t, committed.Entries[0].Amount.Equal(dec("-161.25")))
	require.NoError(t, ledger.CheckBalance(committed.Entries))
}

func TestPeekNextNumberDoesNotConsume(t *testing.T) {
	f := newPostingFixture()
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	number, err := f.svc.PeekNextNumber(context.Background(), enum.TransactionTypeInvoice, date)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00001", number)

	// The preview touched nothing; the first posting still gets that number.
	receipt, err := f.svc.Post(context.Background(), f.invoiceInput())
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00001", receipt.DocumentNumber)

	number, err = f.svc.PeekNextNumber(context.Background(), enum.TransactionTypeInvoice, date)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00002", number)
}

func TestPostCreditMemoMissingParentRejected(t *testing.T) {
	f := newPostingFixture()

	input := f.invoiceInput()
	input.Type = enum.TransactionTypeCreditMemo
	parent := int64(42)
	input.ParentID = &parent

	_, err := f.svc.Post(context.Background(), input)
	var postErr *ledger.PostingError
	require.ErrorAs(t, err, &postErr)
	assert.Equal(t, ledger.StateRejected, postErr.State)

	var valErr *ledger.ValidationError
	require.ErrorAs(t, postErr.Err, &valErr)
	assert.Equal(t, "parent_id", valErr.Field)
}

func TestPostBillRoutesTrackedItemsToInventory(t *testing.T) {
	f := newPostingFixture()

	input := f.invoiceInput()
	input.Type = enum.TransactionTypeBill
	input.TaxCodes = nil

	receipt, err := f.svc.Post(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, receipt.Total.Equal(dec("150.00")))

	committed := f.transactions.committed[0]
	// Payable credit, expense debit for the plain item, inventory debit for
	// the tracked item. No cost pairs on bills.
	require.Len(t, committed.Entries, 3)
	assert.Equal(t, enum.EntryTypePayable, committed.Entries[0].Type)
	assert.True(t, committed.Entries[0].Amount.Equal(dec("-150.00")))
	require.NoError(t, ledger.CheckBalance(committed.Entries))

	// The bill refreshed the tracked item's costing basis to the purchase price.
	assert.True(t, f.items.items[f.itemTracked].AverageCost.Equal(dec("25.00")))
}

func TestPostRejectionConsumesNoSequence(t *testing.T) {
	f := newPostingFixture()

	input := f.invoiceInput()
	input.Lines[0].Quantity = dec("-1")

	_, err := f.svc.Post(context.Background(), input)
	var postErr *ledger.PostingError
	require.ErrorAs(t, err, &postErr)
	assert.Equal(t, ledger.StateRejected, postErr.State)
	assert.Empty(t, postErr.DocumentNumber)

	var valErr *ledger.ValidationError
	assert.ErrorAs(t, postErr.Err, &valErr)

	// Nothing was allocated and nothing was written.
	assert.Empty(t, f.sequences.counters)
	assert.Empty(t, f.transactions.committed)
}

func TestPostUnknownTaxCodeBurnsNumber(t *testing.T) {
	f := newPostingFixture()

	input := f.invoiceInput()
	input.TaxCodes = []string{"NOPE"}

	// Tax codes resolve after numbering, so the allocated number is burned.
	_, err := f.svc.Post(context.Background(), input)
	var postErr *ledger.PostingError
	require.ErrorAs(t, err, &postErr)
	assert.Equal(t, ledger.StateFailed, postErr.State)
	assert.Equal(t, "INV-2026-00001", postErr.DocumentNumber)

	var taxErr *ledger.TaxConfigurationError
	require.ErrorAs(t, postErr.Err, &taxErr)
	assert.Equal(t, "NOPE", taxErr.Code)
	assert.Empty(t, f.transactions.committed)

	// The next successful posting never reuses the burned number.
	receipt, err := f.svc.Post(context.Background(), f.invoiceInput())
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00002", receipt.DocumentNumber)
}

func TestPostAllocationConflictRejects(t *testing.T) {
	f := newPostingFixture()
	f.sequences.failNext = true

	_, err := f.svc.Post(context.Background(), f.invoiceInput())
	var postErr *ledger.PostingError
	require.ErrorAs(t, err, &postErr)
	assert.Equal(t, ledger.StateRejected, postErr.State)

	var conflictErr *ledger.AllocationConflictError
	assert.ErrorAs(t, postErr.Err, &conflictErr)
	assert.Empty(t, f.transactions.committed)
}

func TestPostCommitFailureBurnsNumber(t *testing.T) {
	f := newPostingFixture()
	f.transactions.failWith = errors.New("connection reset")

	_, err := f.svc.Post(context.Background(), f.invoiceInput())
	var postErr *ledger.PostingError
	require.ErrorAs(t, err, &postErr)
	assert.Equal(t, ledger.StateFailed, postErr.State)
	assert.Equal(t, "INV-2026-00001", postErr.DocumentNumber)

	var commitErr *ledger.CommitError
	require.ErrorAs(t, postErr.Err, &commitErr)

	// The burned number is never reissued: the next posting gets a fresh one.
	f.transactions.failWith = nil
	receipt, err := f.svc.Post(context.Background(), f.invoiceInput())
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00002", receipt.DocumentNumber)
}

func TestPostNonTaxableCustomerEmitsZeroTaxLine(t *testing.T) {
	f := newPostingFixture()
	f.customers.customers[f.customerID].Taxable = false

	receipt, err := f.svc.Post(context.Background(), f.invoiceInput())
	require.NoError(t, err)

	// Lines only, the tax contributed nothing.
	assert.True(t, receipt.Total.Equal(dec("150.00")))
	assert.NotEmpty(t, receipt.Warnings)

	committed := f.transactions.committed[0]
	require.Len(t, committed.TaxLines, 1)
	assert.True(t, committed.TaxLines[0].Amount.IsZero())
	require.NoError(t, ledger.CheckBalance(committed.Entries))
}

func TestPostItemExemptionShrinksTaxBase(t *testing.T) {
	f := newPostingFixture()
	f.items.links = []entity.ItemTaxLink{
		{ItemID: f.itemTracked, TaxCodeID: f.taxCodeID, Exempt: true},
	}

	receipt, err := f.svc.Post(context.Background(), f.invoiceInput())
	require.NoError(t, err)

	// Only the plain item's 100.00 is taxed: 7.50 of tax.
	assert.True(t, receipt.Total.Equal(dec("157.50")), "total %s", receipt.Total)

	committed := f.transactions.committed[0]
	require.Len(t, committed.TaxLines, 1)
	assert.True(t, committed.TaxLines[0].BaseAmount.Equal(dec("100.00")))
	assert.True(t, committed.TaxLines[0].Amount.Equal(dec("7.50")))
}

func TestPostSuppressesZeroTaxLinesWhenConfigured(t *testing.T) {
	f := newPostingFixture()
	f.settings.settings.EmitZeroTaxLines = false
	f.customers.customers[f.customerID].Taxable = false

	_, err := f.svc.Post(context.Background(), f.invoiceInput())
	require.NoError(t, err)

	committed := f.transactions.committed[0]
	assert.Empty(t, committed.TaxLines)
}

func TestPostConcurrentAllocationsAreUnique(t *testing.T) {
	f := newPostingFixture()
	ctx := context.Background()

	const n = 20
	results := make(chan *ledger.Receipt, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			receipt, err := f.svc.Post(ctx, f.invoiceInput())
			if err == nil {
				results <- receipt
			}
		}()
	}
	wg.Wait()
	close(results)

	seenIDs := make(map[int64]bool)
	seenNumbers := make(map[string]bool)
	count := 0
	for receipt := range results {
		assert.False(t, seenIDs[receipt.TransactionID], "duplicate transaction ID %d", receipt.TransactionID)
		assert.False(t, seenNumbers[receipt.DocumentNumber], "duplicate document number %s", receipt.DocumentNumber)
		seenIDs[receipt.TransactionID] = true
		seenNumbers[receipt.DocumentNumber] = true
		count++
	}
	assert.Equal(t, n, count)
}

func TestRevalidate(t *testing.T) {
	f := newPostingFixture()
	ctx := context.Background()

	receipt, err := f.svc.Post(ctx, f.invoiceInput())
	require.NoError(t, err)

	t.Run("committed document passes", func(t *testing.T) {
		header, err := f.svc.Revalidate(ctx, receipt.TransactionID)
		require.NoError(t, err)
		require.NotNil(t, header)
		assert.Equal(t, receipt.DocumentNumber, header.DocumentNumber)
	})

	t.Run("unknown document returns nothing", func(t *testing.T) {
		header, err := f.svc.Revalidate(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, header)
	})

	t.Run("tampered entries fail the balance check", func(t *testing.T) {
		committed := f.transactions.committed[0]
		committed.Entries[0].Amount = committed.Entries[0].Amount.Add(dec("0.01"))

		_, err := f.svc.Revalidate(ctx, receipt.TransactionID)
		var balErr *ledger.UnbalancedLedgerError
		require.ErrorAs(t, err, &balErr)
	})
}

func TestPostCustomPriceOverridesCatalog(t *testing.T) {
	f := newPostingFixture()

	custom := dec("80.00")
	input := &PostingInput{
		Type:       enum.TransactionTypeInvoice,
		CustomerID: f.customerID,
		Date:       time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Lines: []PostingLineInput{
			{ItemID: f.itemPlain, Quantity: dec("3"), UnitPrice: &custom},
		},
	}

	receipt, err := f.svc.Post(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, receipt.Total.Equal(dec("240.00")), "total %s", receipt.Total)

	committed := f.transactions.committed[0]
	require.Len(t, committed.Lines, 1)
	assert.True(t, committed.Lines[0].UnitPrice.Equal(custom))
	assert.True(t, committed.Lines[0].Amount.Equal(dec("240.00")))
}

func TestPostInactiveReferencesRejected(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *postingFixture)
		field string
	}{
		{
			name:  "inactive customer",
			setup: func(f *postingFixture) { f.customers.customers[f.customerID].Active = false },
			field: "customer_id",
		},
		{
			name:  "unknown customer",
			setup: func(f *postingFixture) { delete(f.customers.customers, f.customerID) },
			field: "customer_id",
		},
		{
			name:  "inactive item",
			setup: func(f *postingFixture) { f.items.items[f.itemPlain].Active = false },
			field: fmt.Sprintf("lines[%d].item_id", 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPostingFixture()
			tt.setup(f)

			_, err := f.svc.Post(context.Background(), f.invoiceInput())
			var postErr *ledger.PostingError
			require.ErrorAs(t, err, &postErr)
			assert.Equal(t, ledger.StateRejected, postErr.State)

			var valErr *ledger.ValidationError
			require.ErrorAs(t, postErr.Err, &valErr)
			assert.Equal(t, tt.field, valErr.Field)
		})
	}
}
