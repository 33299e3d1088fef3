package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/classiclink/ledger-api/internal/application/service"
	"github.com/classiclink/ledger-api/internal/domain/enum"
	"github.com/classiclink/ledger-api/internal/domain/ledger"
	"github.com/classiclink/ledger-api/internal/presentation/http/dto/request"
	"github.com/classiclink/ledger-api/internal/presentation/http/dto/response"
)

// PostingHandler handles posting-related HTTP requests
type PostingHandler struct {
	postingService *service.PostingService
}

// NewPostingHandler creates a new posting handler
func NewPostingHandler(postingService *service.PostingService) *PostingHandler {
	return &PostingHandler{postingService: postingService}
}

// Create handles posting a new transaction
func (h *PostingHandler) Create(c *gin.Context) {
	var req request.CreatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	txType, ok := enum.ParseTransactionType(req.Type)
	if !ok {
		response.BadRequest(c, "Unknown transaction type")
		return
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}

	lines := make([]service.PostingLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, service.PostingLineInput{
			ItemID:      line.ItemID,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Description: line.Description,
		})
	}

	input := &service.PostingInput{
		Type:       txType,
		CustomerID: req.CustomerID,
		Date:       date,
		Memo:       req.Memo,
		ParentID:   req.ParentID,
		Lines:      lines,
		TaxCodes:   req.TaxCodes,
	}

	receipt, err := h.postingService.Post(c.Request.Context(), input)
	if err != nil {
		h.respondPostingError(c, err)
		return
	}

	response.Created(c, "Transaction posted successfully", receipt)
}

// NextNumber previews the next document number for a transaction type
func (h *PostingHandler) NextNumber(c *gin.Context) {
	txType, ok := enum.ParseTransactionType(c.Query("type"))
	if !ok {
		response.BadRequest(c, "Unknown transaction type")
		return
	}

	number, err := h.postingService.PeekNextNumber(c.Request.Context(), txType, time.Now().UTC())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Next document number retrieved successfully", gin.H{
		"type":            txType.String(),
		"document_number": number,
	})
}

// Verify handles re-checking a committed transaction's balance and totals
func (h *PostingHandler) Verify(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	header, err := h.postingService.Revalidate(c.Request.Context(), id)
	if err != nil {
		var unbalanced *ledger.UnbalancedLedgerError
		if errors.As(err, &unbalanced) {
			response.ErrorWithCode(c, http.StatusConflict, err.Error())
			return
		}
		response.Error(c, err)
		return
	}
	if header == nil {
		response.NotFound(c, "Transaction not found")
		return
	}

	response.OK(c, "Transaction verified successfully", gin.H{
		"transaction_id":  header.ID,
		"document_number": header.DocumentNumber,
		"total":           header.Total,
		"balanced":        true,
	})
}

// respondPostingError maps posting pipeline failures onto HTTP status codes.
// The reached state and any consumed document number are surfaced so clients
// can tell a clean rejection from a burned number.
func (h *PostingHandler) respondPostingError(c *gin.Context, err error) {
	var postingErr *ledger.PostingError
	if !errors.As(err, &postingErr) {
		response.Error(c, err)
		return
	}

	status := http.StatusInternalServerError
	var validationErr *ledger.ValidationError
	var taxErr *ledger.TaxConfigurationError
	var accountErr *ledger.AccountResolutionError
	var conflictErr *ledger.AllocationConflictError
	switch {
	case errors.As(postingErr.Err, &validationErr),
		errors.As(postingErr.Err, &taxErr),
		errors.As(postingErr.Err, &accountErr):
		status = http.StatusUnprocessableEntity
	case errors.As(postingErr.Err, &conflictErr):
		status = http.StatusConflict
	}

	payload := gin.H{
		"state": postingErr.State.String(),
	}
	if postingErr.DocumentNumber != "" {
		payload["document_number"] = postingErr.DocumentNumber
	}

	response.ErrorWithDetails(c, status, postingErr.Err.Error(), payload)
}
