package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/classiclink/ledger-api/internal/application/service"
	"github.com/classiclink/ledger-api/internal/domain/enum"
	"github.com/classiclink/ledger-api/internal/presentation/http/dto/request"
	"github.com/classiclink/ledger-api/internal/presentation/http/dto/response"
	"github.com/classiclink/ledger-api/pkg/pagination"
	"github.com/classiclink/ledger-api/pkg/utils"
)

// AccountHandler handles GL account HTTP requests
type AccountHandler struct {
	accountService     *service.AccountService
	transactionService *service.TransactionService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *service.AccountService, transactionService *service.TransactionService) *AccountHandler {
	return &AccountHandler{accountService: accountService, transactionService: transactionService}
}

// List handles listing accounts
func (h *AccountHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	search := c.Query("search")

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	var accountType *enum.AccountType
	if typeStr := c.Query("type"); typeStr != "" {
		parsed, ok := enum.ParseAccountType(typeStr)
		if !ok {
			response.BadRequest(c, "Unknown account type")
			return
		}
		accountType = &parsed
	}

	result, err := h.accountService.ListAccounts(c.Request.Context(), params, search, accountType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Accounts retrieved successfully", result)
}

// Get handles getting a single account
func (h *AccountHandler) Get(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account retrieved successfully", account)
}

// Create handles creating an account
func (h *AccountHandler) Create(c *gin.Context) {
	var req request.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	accountType, ok := enum.ParseAccountType(req.Type)
	if !ok {
		response.BadRequest(c, "Unknown account type")
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), &service.CreateAccountInput{
		Number:      req.Number,
		Name:        req.Name,
		Type:        accountType,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Account created successfully", account)
}

// Update handles updating an account
func (h *AccountHandler) Update(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid account ID")
		return
	}

	var req request.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), id, &service.UpdateAccountInput{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account updated successfully", account)
}

// GetBalance handles getting an account's committed balance
func (h *AccountHandler) GetBalance(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid account ID")
		return
	}

	balance, err := h.accountService.GetBalance(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account balance retrieved successfully", balance)
}

// ListEntries handles listing an account's committed ledger entries
func (h *AccountHandler) ListEntries(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid account ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	result, err := h.transactionService.EntriesByAccount(c.Request.Context(), id, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Account entries retrieved successfully", result)
}
