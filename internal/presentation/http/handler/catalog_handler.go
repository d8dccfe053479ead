package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jkarimi/dukapos/internal/application/service"
	"github.com/jkarimi/dukapos/internal/presentation/http/dto/request"
	"github.com/jkarimi/dukapos/internal/presentation/http/dto/response"
)

// CatalogHandler handles item catalog HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
	reportService  *service.ReportService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService, reportService *service.ReportService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		reportService:  reportService,
	}
}

// lowStock fetches the current low-stock alert; every mutating response
// carries it so the caller can decide whether to surface a warning.
func (h *CatalogHandler) lowStock(c *gin.Context) []service.LowStockItem {
	alerts, err := h.reportService.LowStockAlert(c.Request.Context())
	if err != nil {
		return nil
	}
	return alerts
}

// List handles listing the full catalog
func (h *CatalogHandler) List(c *gin.Context) {
	items, err := h.catalogService.ListItems(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Items retrieved successfully", items)
}

// Search handles searching items by ID or name substring
func (h *CatalogHandler) Search(c *gin.Context) {
	query := c.Query("q")
	items, err := h.catalogService.SearchItems(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Search results retrieved successfully", items)
}

// Create handles adding a new item
func (h *CatalogHandler) Create(c *gin.Context) {
	var req request.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.catalogService.AddItem(c.Request.Context(), req.ID, &service.ItemInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Item added successfully", gin.H{
		"item":      item,
		"low_stock": h.lowStock(c),
	})
}

// Update handles replacing an item's mutable fields
func (h *CatalogHandler) Update(c *gin.Context) {
	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.catalogService.UpdateItem(c.Request.Context(), c.Param("id"), &service.ItemInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Item updated successfully", gin.H{
		"item":      item,
		"low_stock": h.lowStock(c),
	})
}

// Delete handles removing an item
func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.catalogService.RemoveItem(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Item deleted successfully", nil)
}

// Incoming handles recording delivered stock
func (h *CatalogHandler) Incoming(c *gin.Context) {
	var req request.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.catalogService.IncomingStock(c.Request.Context(), c.Param("id"), req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Stock updated successfully", gin.H{
		"item":      item,
		"low_stock": h.lowStock(c),
	})
}

// Outgoing handles recording stock leaving outside of a sale
func (h *CatalogHandler) Outgoing(c *gin.Context) {
	var req request.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.catalogService.OutgoingStock(c.Request.Context(), c.Param("id"), req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Stock updated successfully", gin.H{
		"item":      item,
		"low_stock": h.lowStock(c),
	})
}

// LowStock handles fetching the low-stock alert on demand
func (h *CatalogHandler) LowStock(c *gin.Context) {
	alerts, err := h.reportService.LowStockAlert(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Low stock items retrieved successfully", alerts)
}
