package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/classiclink/ledger-api/internal/application/service"
	"github.com/classiclink/ledger-api/internal/domain/repository"
	"github.com/classiclink/ledger-api/internal/presentation/http/dto/request"
	"github.com/classiclink/ledger-api/internal/presentation/http/dto/response"
	"github.com/classiclink/ledger-api/pkg/pagination"
	"github.com/classiclink/ledger-api/pkg/utils"
)

// ItemHandler handles catalog item HTTP requests
type ItemHandler struct {
	itemService *service.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// List handles listing items (supports both page-based and cursor-based pagination)
func (h *ItemHandler) List(c *gin.Context) {
	var req request.ItemFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid filter parameters")
		return
	}

	var trackInventory *bool
	switch req.TrackInventory {
	case "true":
		tracked := true
		trackInventory = &tracked
	case "false":
		tracked := false
		trackInventory = &tracked
	}

	// Check if cursor-based pagination is requested
	if cursor := c.Query("cursor"); cursor != "" || c.Query("limit") != "" {
		h.listWithCursor(c, req, trackInventory)
		return
	}

	params := &repository.ItemFilterParams{
		Pagination:     &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage},
		Search:         req.Search,
		TrackInventory: trackInventory,
		ActiveOnly:     req.ActiveOnly,
		SortBy:         req.SortBy,
		SortOrder:      req.SortOrder,
	}

	result, err := h.itemService.ListItems(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Items retrieved successfully", result)
}

// listWithCursor handles listing items with cursor-based pagination
func (h *ItemHandler) listWithCursor(c *gin.Context, req request.ItemFilterRequest, trackInventory *bool) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))
	cursor := c.Query("cursor")
	direction := c.DefaultQuery("direction", "next")

	params := &repository.ItemCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    cursor,
			Direction: pagination.CursorDirection(direction),
			Limit:     limit,
		},
		Search:         req.Search,
		TrackInventory: trackInventory,
		ActiveOnly:     req.ActiveOnly,
	}

	result, err := h.itemService.ListItemsWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Items retrieved successfully", result)
}

// Get handles getting a single item
func (h *ItemHandler) Get(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item retrieved successfully", item)
}

// Create handles creating an item
func (h *ItemHandler) Create(c *gin.Context) {
	var req request.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), &service.CreateItemInput{
		Number:           req.Number,
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		AverageCost:      req.AverageCost,
		TrackInventory:   req.TrackInventory,
		RevenueAccountID: req.RevenueAccountID,
		AssetAccountID:   req.AssetAccountID,
		ExpenseAccountID: req.ExpenseAccountID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item created successfully", item)
}

// Update handles updating an item
func (h *ItemHandler) Update(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), id, &service.UpdateItemInput{
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		AverageCost:      req.AverageCost,
		TrackInventory:   req.TrackInventory,
		RevenueAccountID: req.RevenueAccountID,
		AssetAccountID:   req.AssetAccountID,
		ExpenseAccountID: req.ExpenseAccountID,
		Active:           req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", item)
}

// Delete handles deactivating an item
func (h *ItemHandler) Delete(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item deleted successfully", nil)
}

// GetTaxLinks handles getting an item's tax code links
func (h *ItemHandler) GetTaxLinks(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	links, err := h.itemService.GetTaxLinks(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax links retrieved successfully", links)
}

// SetTaxLinks handles replacing an item's tax code links
func (h *ItemHandler) SetTaxLinks(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.SetTaxLinksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	inputs := make([]service.TaxLinkInput, 0, len(req.Links))
	for _, link := range req.Links {
		inputs = append(inputs, service.TaxLinkInput{
			TaxCodeID: link.TaxCodeID,
			Exempt:    link.Exempt,
		})
	}

	if err := h.itemService.SetTaxLinks(c.Request.Context(), id, inputs); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax links updated successfully", nil)
}
