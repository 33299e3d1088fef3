package service

import (
	"context"

	"github.com/classiclink/ledger-api/internal/domain/entity"
	"github.com/classiclink/ledger-api/internal/domain/enum"
	"github.com/classiclink/ledger-api/internal/domain/repository"
	"github.com/classiclink/ledger-api/pkg/apperror"
	"github.com/classiclink/ledger-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountService handles chart of accounts operations
type AccountService struct {
	accountRepo repository.AccountRepository
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo repository.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// CreateAccountInput represents the create account input
type CreateAccountInput struct {
	Number      int
	Name        string
	Type        enum.AccountType
	Description *string
}

// CreateAccount creates a new GL account
func (s *AccountService) CreateAccount(ctx context.Context, input *CreateAccountInput) (*entity.Account, error) {
	if !input.Type.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown account type")
	}

	existing, err := s.accountRepo.GetByNumber(ctx, input.Number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Account number already in use")
	}

	account := &entity.Account{
		Number:      input.Number,
		Name:        input.Name,
		Type:        input.Type,
		Description: input.Description,
		Active:      true,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccount retrieves an account by ID
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.NewNotFoundError("Account")
	}
	return account, nil
}

// UpdateAccountInput represents the update account input
type UpdateAccountInput struct {
	Name        *string
	Description *string
	Active      *bool
}

// UpdateAccount updates an account's mutable fields. Number and type are
// fixed once entries may reference the account.
func (s *AccountService) UpdateAccount(ctx context.Context, id uuid.UUID, input *UpdateAccountInput) (*entity.Account, error) {
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.Description != nil {
		account.Description = input.Description
	}
	if input.Active != nil {
		account.Active = *input.Active
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// ListAccounts lists accounts with pagination
func (s *AccountService) ListAccounts(ctx context.Context, params *pagination.PaginationParams, search string, accountType *enum.AccountType) (*pagination.PaginatedResult[entity.Account], error) {
	accounts, total, err := s.accountRepo.List(ctx, params, search, accountType)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(accounts, pag), nil
}

// AccountBalance is an account with its current signed balance
type AccountBalance struct {
	Account *entity.Account `json:"account"`
	// Balance is the raw signed sum of entries; positive is a net debit.
	Balance decimal.Decimal `json:"balance"`
	// NormalBalance is the balance adjusted by the account type's balance
	// factor so revenue and liability accounts read positive when credited.
	NormalBalance decimal.Decimal `json:"normal_balance"`
}

// GetBalance returns the account's committed balance
func (s *AccountService) GetBalance(ctx context.Context, id uuid.UUID) (*AccountBalance, error) {
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	balance, err := s.accountRepo.Balance(ctx, id)
	if err != nil {
		return nil, err
	}

	factor := decimal.NewFromInt(int64(account.Type.BalanceFactor()))
	return &AccountBalance{
		Account:       account,
		Balance:       balance,
		NormalBalance: balance.Mul(factor),
	}, nil
}
