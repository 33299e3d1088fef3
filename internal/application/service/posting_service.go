package service

import (
	"context"
	"fmt"
	"time"

	"github.com/classiclink/ledger-api/internal/config"
	"github.com/classiclink/ledger-api/internal/domain/entity"
	"github.com/classiclink/ledger-api/internal/domain/enum"
	"github.com/classiclink/ledger-api/internal/domain/ledger"
	"github.com/classiclink/ledger-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Counter names used by the allocator. Header IDs share one global counter;
// document numbers get one counter per document type per fiscal year.
const (
	headerCounterName = "acct_trans"
	docCounterPrefix  = "docnum_"
)

// PostingService drives a posting request through validation, numbering, tax
// computation, entry generation, the balance check, and the atomic commit.
// Identifiers are allocated eagerly once validation passes; a failure after
// that point burns the allocated number, which is never reused.
type PostingService struct {
	transactionRepo repository.TransactionRepository
	customerRepo    repository.CustomerRepository
	itemRepo        repository.ItemRepository
	taxCodeRepo     repository.TaxCodeRepository
	settingsRepo    repository.SettingsRepository
	sequenceRepo    repository.SequenceRepository
	entryBuilder    *ledger.EntryBuilder
	cfg             config.LedgerConfig
}

// NewPostingService creates a new posting service
func NewPostingService(
	transactionRepo repository.TransactionRepository,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
	taxCodeRepo repository.TaxCodeRepository,
	settingsRepo repository.SettingsRepository,
	sequenceRepo repository.SequenceRepository,
	cfg config.LedgerConfig,
) *PostingService {
	return &PostingService{
		transactionRepo: transactionRepo,
		customerRepo:    customerRepo,
		itemRepo:        itemRepo,
		taxCodeRepo:     taxCodeRepo,
		settingsRepo:    settingsRepo,
		sequenceRepo:    sequenceRepo,
		entryBuilder:    ledger.NewEntryBuilder(),
		cfg:             cfg,
	}
}

// PostingLineInput represents one requested line
type PostingLineInput struct {
	ItemID      uuid.UUID
	Quantity    decimal.Decimal
	UnitPrice   *decimal.Decimal // nil uses the catalog price
	Description *string
}

// PostingInput represents a posting request
type PostingInput struct {
	Type       enum.TransactionType
	CustomerID uuid.UUID
	Date       time.Time
	Memo       *string
	ParentID   *int64
	Lines      []PostingLineInput
	TaxCodes   []string
}

// Post runs the full posting pipeline. On success the returned receipt names
// the committed transaction; on failure the returned error is a
// *ledger.PostingError whose State says whether a document number was
// consumed.
func (s *PostingService) Post(ctx context.Context, input *PostingInput) (*ledger.Receipt, error) {
	// Validation happens entirely before any identifier is touched, so a
	// rejected request consumes nothing.
	prepared, err := s.validate(ctx, input)
	if err != nil {
		return nil, &ledger.PostingError{State: ledger.StateRejected, Err: err}
	}

	headerID, docNumber, err := s.allocate(ctx, input.Type, prepared.date)
	if err != nil {
		return nil, &ledger.PostingError{State: ledger.StateRejected, Err: err}
	}

	// From here on the document number is burned on failure.
	taxLines, warnings, err := s.computeTaxes(ctx, input, prepared)
	if err != nil {
		return nil, &ledger.PostingError{State: ledger.StateFailed, DocumentNumber: docNumber, Err: err}
	}

	total := decimal.Zero
	for _, line := range prepared.lines {
		total = total.Add(line.Amount)
	}
	for _, tax := range taxLines {
		total = total.Add(tax.Amount)
	}

	header := &entity.TransactionHeader{
		ID:             headerID,
		Type:           input.Type,
		DocumentNumber: docNumber,
		CustomerID:     input.CustomerID,
		Date:           prepared.date,
		Total:          total,
		Status:         enum.TransactionStatusPosted,
		Memo:           input.Memo,
		ParentID:       input.ParentID,
	}

	entries, err := s.entryBuilder.Build(header, prepared.lines, taxLines, prepared.resolution)
	if err != nil {
		return nil, &ledger.PostingError{State: ledger.StateFailed, DocumentNumber: docNumber, Err: err}
	}

	if err := ledger.CheckBalance(entries); err != nil {
		return nil, &ledger.PostingError{State: ledger.StateFailed, DocumentNumber: docNumber, Err: err}
	}

	if err := s.transactionRepo.CreatePosting(ctx, header, prepared.lines, taxLines, entries); err != nil {
		return nil, &ledger.PostingError{
			State:          ledger.StateFailed,
			DocumentNumber: docNumber,
			Err:            &ledger.CommitError{Err: err},
		}
	}

	// Bills refresh the costing basis of tracked items to the latest
	// purchase price. The posting is already committed, so a failure here
	// only warns.
	if input.Type == enum.TransactionTypeBill {
		for _, line := range prepared.lines {
			item := prepared.items[line.ItemID]
			if item == nil || !item.TrackInventory {
				continue
			}
			if err := s.itemRepo.UpdateAverageCost(ctx, line.ItemID, line.UnitPrice); err != nil {
				warnings = append(warnings, fmt.Sprintf("cost basis for item %s was not updated", item.Number))
			}
		}
	}

	return &ledger.Receipt{
		TransactionID:  headerID,
		DocumentNumber: docNumber,
		Total:          total,
		Warnings:       warnings,
	}, nil
}

// preparedPosting carries everything validation resolved so later stages do
// no further lookups.
type preparedPosting struct {
	date       time.Time
	customer   *entity.Customer
	items      map[uuid.UUID]*entity.Item
	lines      []entity.LineItem
	resolution ledger.AccountResolution
}

func (s *PostingService) validate(ctx context.Context, input *PostingInput) (*preparedPosting, error) {
	if !input.Type.IsValid() {
		return nil, &ledger.ValidationError{Field: "type", Reason: "unknown transaction type"}
	}
	if len(input.Lines) == 0 {
		return nil, &ledger.ValidationError{Field: "lines", Reason: "at least one line is required"}
	}

	if input.ParentID != nil {
		parent, err := s.transactionRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, &ledger.ValidationError{Field: "parent_id", Reason: "parent transaction not found"}
		}
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, &ledger.ValidationError{Field: "customer_id", Reason: "customer not found"}
	}
	if !customer.Active {
		return nil, &ledger.ValidationError{Field: "customer_id", Reason: "customer is inactive"}
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC().Truncate(24 * time.Hour)
	}

	// Batch fetch all items in one query (prevents N+1)
	itemIDs := make([]uuid.UUID, len(input.Lines))
	for i, line := range input.Lines {
		itemIDs[i] = line.ItemID
	}
	items, err := s.itemRepo.GetByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	itemMap := make(map[uuid.UUID]*entity.Item, len(items))
	for i := range items {
		itemMap[items[i].ID] = &items[i]
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, &ledger.AccountResolutionError{Role: "receivable"}
	}

	res := ledger.AccountResolution{
		Receivable:     settings.ReceivableAccountID,
		Payable:        settings.PayableAccountID,
		Revenue:        make(map[uuid.UUID]uuid.UUID),
		Expense:        make(map[uuid.UUID]uuid.UUID),
		InventoryAsset: make(map[uuid.UUID]uuid.UUID),
		CostOfGoods:    make(map[uuid.UUID]uuid.UUID),
		TrackInventory: make(map[uuid.UUID]bool),
		CostBasis:      make(map[uuid.UUID]decimal.Decimal),
		TaxLiability:   make(map[uuid.UUID]uuid.UUID),
	}

	lines := make([]entity.LineItem, 0, len(input.Lines))
	for i, line := range input.Lines {
		item, exists := itemMap[line.ItemID]
		if !exists {
			return nil, &ledger.ValidationError{
				Field:  fmt.Sprintf("lines[%d].item_id", i),
				Reason: "item not found",
			}
		}
		if !item.Active {
			return nil, &ledger.ValidationError{
				Field:  fmt.Sprintf("lines[%d].item_id", i),
				Reason: "item is inactive",
			}
		}
		if line.Quantity.Sign() <= 0 {
			return nil, &ledger.ValidationError{
				Field:  fmt.Sprintf("lines[%d].quantity", i),
				Reason: "quantity must be positive",
			}
		}

		unitPrice := item.Price
		if line.UnitPrice != nil {
			if line.UnitPrice.Sign() < 0 {
				return nil, &ledger.ValidationError{
					Field:  fmt.Sprintf("lines[%d].unit_price", i),
					Reason: "unit price cannot be negative",
				}
			}
			unitPrice = *line.UnitPrice
		}

		lines = append(lines, entity.LineItem{
			ItemID:      item.ID,
			Seq:         i + 1,
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
			Amount:      ledger.RoundAmount(line.Quantity.Mul(unitPrice)),
			Description: line.Description,
		})

		if item.RevenueAccountID != nil {
			res.Revenue[item.ID] = *item.RevenueAccountID
		}
		if item.ExpenseAccountID != nil {
			res.Expense[item.ID] = *item.ExpenseAccountID
		}
		if item.AssetAccountID != nil {
			res.InventoryAsset[item.ID] = *item.AssetAccountID
		}
		if item.ExpenseAccountID != nil {
			res.CostOfGoods[item.ID] = *item.ExpenseAccountID
		}
		res.TrackInventory[item.ID] = item.TrackInventory
		res.CostBasis[item.ID] = item.AverageCost
	}

	return &preparedPosting{
		date:       date,
		customer:   customer,
		items:      itemMap,
		lines:      lines,
		resolution: res,
	}, nil
}

func (s *PostingService) computeTaxes(ctx context.Context, input *PostingInput, prepared *preparedPosting) ([]entity.TaxLine, []string, error) {
	if len(input.TaxCodes) == 0 {
		return nil, nil, nil
	}

	found, err := s.taxCodeRepo.GetByCodes(ctx, input.TaxCodes)
	if err != nil {
		return nil, nil, err
	}
	byCode := make(map[string]*entity.TaxCode, len(found))
	for i := range found {
		byCode[found[i].Code] = &found[i]
	}

	// Re-sort into request order; unknown codes are configuration errors,
	// never silently skipped.
	codes := make([]entity.TaxCode, 0, len(input.TaxCodes))
	for _, requested := range input.TaxCodes {
		code, ok := byCode[requested]
		if !ok {
			return nil, nil, &ledger.TaxConfigurationError{Code: requested, Reason: "unknown tax code"}
		}
		codes = append(codes, *code)
		prepared.resolution.TaxLiability[code.ID] = code.LiabilityAccountID
	}

	itemIDs := make([]uuid.UUID, 0, len(prepared.items))
	for id := range prepared.items {
		itemIDs = append(itemIDs, id)
	}
	itemLinks, err := s.itemRepo.GetTaxLinks(ctx, itemIDs)
	if err != nil {
		return nil, nil, err
	}
	itemExemptions := make(map[uuid.UUID]map[uuid.UUID]bool)
	for _, link := range itemLinks {
		if !link.Exempt {
			continue
		}
		if itemExemptions[link.ItemID] == nil {
			itemExemptions[link.ItemID] = make(map[uuid.UUID]bool)
		}
		itemExemptions[link.ItemID][link.TaxCodeID] = true
	}

	customer, err := s.customerRepo.GetWithTaxLinks(ctx, input.CustomerID)
	if err != nil {
		return nil, nil, err
	}
	customerExemptions := make(map[uuid.UUID]bool)
	if customer != nil {
		// A customer flagged non-taxable is exempt from every code; otherwise
		// only explicit per-code links exempt them.
		if !customer.Taxable {
			for i := range codes {
				customerExemptions[codes[i].ID] = true
			}
		}
		for _, link := range customer.TaxLinks {
			if link.Exempt {
				customerExemptions[link.TaxCodeID] = true
			}
		}
	}

	engine := ledger.NewTaxEngine(ledger.TaxEngineOptions{
		EmitZeroLines: s.emitZeroLines(ctx),
	})
	taxLines, err := engine.Compute(prepared.lines, ledger.TaxContext{
		Codes:              codes,
		ItemExemptions:     itemExemptions,
		CustomerExemptions: customerExemptions,
	}, len(prepared.lines)+1)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	for _, tax := range taxLines {
		if tax.Amount.IsZero() {
			warnings = append(warnings, fmt.Sprintf("tax line %d computed a zero amount", tax.Seq))
		}
	}

	return taxLines, warnings, nil
}

// allocate issues the header ID and the document number. Both counters are
// advanced in their own transactions, independent of the posting commit, so
// a later failure leaves a gap in the sequence instead of a reused number.
func (s *PostingService) allocate(ctx context.Context, txType enum.TransactionType, date time.Time) (int64, string, error) {
	headerID, err := s.sequenceRepo.GetAndIncrement(ctx, headerCounterName, "")
	if err != nil {
		return 0, "", err
	}

	fiscalYear := fmt.Sprintf("%04d", date.Year())
	counterName := docCounterPrefix + txType.String()
	number, err := s.sequenceRepo.GetAndIncrement(ctx, counterName, fiscalYear)
	if err != nil {
		return 0, "", err
	}

	docNumber := fmt.Sprintf("%s-%s-%05d", txType.Prefix(), fiscalYear, number)
	return headerID, docNumber, nil
}

// PeekNextNumber previews the document number the next posting of this type
// would receive. Nothing is consumed; a concurrent posting can still claim
// the previewed number first.
func (s *PostingService) PeekNextNumber(ctx context.Context, txType enum.TransactionType, date time.Time) (string, error) {
	if date.IsZero() {
		date = time.Now().UTC()
	}
	fiscalYear := fmt.Sprintf("%04d", date.Year())
	last, err := s.sequenceRepo.Peek(ctx, docCounterPrefix+txType.String(), fiscalYear)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%05d", txType.Prefix(), fiscalYear, last+1), nil
}

func (s *PostingService) emitZeroLines(ctx context.Context) bool {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil || settings == nil {
		return s.cfg.EmitZeroTaxLines
	}
	return settings.EmitZeroTaxLines
}

// Revalidate re-checks a committed transaction without allocating anything:
// the stored entries must still sum to zero and the header total must equal
// lines plus taxes. Posting is deterministic, so revalidation of a committed
// document always passes unless the stored rows were tampered with.
func (s *PostingService) Revalidate(ctx context.Context, id int64) (*entity.TransactionHeader, error) {
	header, err := s.transactionRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, nil
	}

	if err := ledger.CheckBalance(header.Entries); err != nil {
		return header, err
	}

	sum := decimal.Zero
	for _, line := range header.Lines {
		sum = sum.Add(line.Amount)
	}
	for _, tax := range header.TaxLines {
		sum = sum.Add(tax.Amount)
	}
	if !sum.Equal(header.Total) {
		return header, &ledger.ValidationError{
			Field:  "total",
			Reason: fmt.Sprintf("header total %s does not match lines plus taxes %s", header.Total.StringFixed(2), sum.StringFixed(2)),
		}
	}

	return header, nil
}
