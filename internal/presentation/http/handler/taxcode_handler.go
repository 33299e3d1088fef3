package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/classiclink/ledger-api/internal/application/service"
	"github.com/classiclink/ledger-api/internal/presentation/http/dto/request"
	"github.com/classiclink/ledger-api/internal/presentation/http/dto/response"
	"github.com/classiclink/ledger-api/pkg/pagination"
	"github.com/classiclink/ledger-api/pkg/utils"
)

// TaxCodeHandler handles tax code HTTP requests
type TaxCodeHandler struct {
	taxCodeService *service.TaxCodeService
}

// NewTaxCodeHandler creates a new tax code handler
func NewTaxCodeHandler(taxCodeService *service.TaxCodeService) *TaxCodeHandler {
	return &TaxCodeHandler{taxCodeService: taxCodeService}
}

// List handles listing tax codes
func (h *TaxCodeHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	activeOnly := c.Query("active_only") == "true"

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	result, err := h.taxCodeService.ListTaxCodes(c.Request.Context(), params, activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Tax codes retrieved successfully", result)
}

// Get handles getting a single tax code
func (h *TaxCodeHandler) Get(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax code ID")
		return
	}

	code, err := h.taxCodeService.GetTaxCode(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax code retrieved successfully", code)
}

// Create handles creating a tax code
func (h *TaxCodeHandler) Create(c *gin.Context) {
	var req request.CreateTaxCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	code, err := h.taxCodeService.CreateTaxCode(c.Request.Context(), &service.CreateTaxCodeInput{
		Code:               req.Code,
		Name:               req.Name,
		Rate:               req.Rate,
		LiabilityAccountID: req.LiabilityAccountID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tax code created successfully", code)
}

// Update handles updating a tax code
func (h *TaxCodeHandler) Update(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax code ID")
		return
	}

	var req request.UpdateTaxCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	code, err := h.taxCodeService.UpdateTaxCode(c.Request.Context(), id, &service.UpdateTaxCodeInput{
		Name:               req.Name,
		Rate:               req.Rate,
		LiabilityAccountID: req.LiabilityAccountID,
		Active:             req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax code updated successfully", code)
}

// Delete handles deactivating a tax code
func (h *TaxCodeHandler) Delete(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax code ID")
		return
	}

	if err := h.taxCodeService.DeleteTaxCode(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax code deleted successfully", nil)
}
