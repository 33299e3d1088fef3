package service

import (
	"context"

	"github.com/classiclink/ledger-api/internal/domain/entity"
	"github.com/classiclink/ledger-api/internal/domain/enum"
	"github.com/classiclink/ledger-api/internal/domain/repository"
	"github.com/classiclink/ledger-api/pkg/apperror"
	"github.com/classiclink/ledger-api/pkg/pagination"
	"github.com/google/uuid"
)

// TransactionService handles read access to posted transactions. Posted
// documents are immutable, so there are no update or delete operations.
type TransactionService struct {
	transactionRepo repository.TransactionRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(transactionRepo repository.TransactionRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo}
}

// GetTransaction retrieves a transaction with its lines, taxes and entries
func (s *TransactionService) GetTransaction(ctx context.Context, id int64) (*entity.TransactionHeader, error) {
	header, err := s.transactionRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return header, nil
}

// GetByDocumentNumber retrieves a transaction by type and document number
func (s *TransactionService) GetByDocumentNumber(ctx context.Context, txType enum.TransactionType, documentNumber string) (*entity.TransactionHeader, error) {
	header, err := s.transactionRepo.GetByDocumentNumber(ctx, txType, documentNumber)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return header, nil
}

// ListTransactions lists transactions with filters and pagination
func (s *TransactionService) ListTransactions(ctx context.Context, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.TransactionHeader], error) {
	headers, total, err := s.transactionRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(headers, pag), nil
}

// EntriesByAccount returns the GL entries posted to an account
func (s *TransactionService) EntriesByAccount(ctx context.Context, accountID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.GLEntry], error) {
	entries, total, err := s.transactionRepo.EntriesByAccount(ctx, accountID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(entries, pag), nil
}
