package service

import (
	"context"
	"time"

	"github.com/classiclink/ledger-api/internal/domain/entity"
	"github.com/classiclink/ledger-api/internal/domain/repository"
	"github.com/classiclink/ledger-api/pkg/apperror"
	"github.com/classiclink/ledger-api/pkg/pagination"
	"github.com/classiclink/ledger-api/pkg/utils"
	"github.com/google/uuid"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	taxCodeRepo  repository.TaxCodeRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, taxCodeRepo repository.TaxCodeRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, taxCodeRepo: taxCodeRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name          string
	AccountNumber *string
	Email         *string
	Phone         *string
	Address       *string
	Taxable       *bool
	TaxExemptNo   *string
	Notes         *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	accountNumber := input.AccountNumber
	if accountNumber == nil {
		generated := utils.GenerateAccountNumber("CUST")
		accountNumber = &generated
	} else {
		existing, err := s.customerRepo.GetByAccountNumber(ctx, *accountNumber)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Account number already in use")
		}
	}

	taxable := true
	if input.Taxable != nil {
		taxable = *input.Taxable
	}

	customer := &entity.Customer{
		Name:          input.Name,
		AccountNumber: accountNumber,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		Taxable:       taxable,
		TaxExemptNo:   input.TaxExemptNo,
		Active:        true,
		Notes:         input.Notes,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	Name        *string
	Email       *string
	Phone       *string
	Address     *string
	Taxable     *bool
	TaxExemptNo *string
	Active      *bool
	Notes       *string
}

// UpdateCustomer updates an existing customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.Taxable != nil {
		customer.Taxable = *input.Taxable
	}
	if input.TaxExemptNo != nil {
		customer.TaxExemptNo = input.TaxExemptNo
	}
	if input.Active != nil {
		customer.Active = *input.Active
	}
	if input.Notes != nil {
		customer.Notes = input.Notes
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer soft-deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}

// ListCustomers lists customers with page-based pagination
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string, activeOnly bool) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search, activeOnly)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// ListCustomersWithCursor lists customers using cursor-based pagination
func (s *CustomerService) ListCustomersWithCursor(ctx context.Context, params *pagination.CursorParams, search string, activeOnly bool) (*pagination.CursorPaginatedResult[entity.Customer], error) {
	customers, err := s.customerRepo.ListWithCursor(ctx, params, search, activeOnly)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(customers, params.Limit,
		func(c entity.Customer) string { return c.ID.String() },
		func(c entity.Customer) time.Time { return c.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// TaxLinkInput represents one customer/tax relation
type TaxLinkInput struct {
	TaxCodeID uuid.UUID
	Exempt    bool
}

// SetTaxLinks replaces the customer's tax code links
func (s *CustomerService) SetTaxLinks(ctx context.Context, customerID uuid.UUID, inputs []TaxLinkInput) error {
	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return err
	}

	links := make([]entity.CustomerTaxLink, 0, len(inputs))
	for _, in := range inputs {
		code, err := s.taxCodeRepo.GetByID(ctx, in.TaxCodeID)
		if err != nil {
			return err
		}
		if code == nil {
			return apperror.NewNotFoundError("Tax code")
		}
		links = append(links, entity.CustomerTaxLink{
			CustomerID: customerID,
			TaxCodeID:  in.TaxCodeID,
			Exempt:     in.Exempt,
		})
	}

	return s.customerRepo.ReplaceTaxLinks(ctx, customerID, links)
}

// GetTaxLinks returns the customer's tax code links
func (s *CustomerService) GetTaxLinks(ctx context.Context, customerID uuid.UUID) ([]entity.CustomerTaxLink, error) {
	customer, err := s.customerRepo.GetWithTaxLinks(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer.TaxLinks, nil
}
