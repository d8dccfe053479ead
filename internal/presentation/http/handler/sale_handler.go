package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jkarimi/dukapos/internal/application/service"
	"github.com/jkarimi/dukapos/internal/presentation/http/dto/request"
	"github.com/jkarimi/dukapos/internal/presentation/http/dto/response"
)

// SaleHandler handles sale session HTTP requests
type SaleHandler struct {
	saleService   *service.SaleService
	reportService *service.ReportService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService, reportService *service.ReportService) *SaleHandler {
	return &SaleHandler{
		saleService:   saleService,
		reportService: reportService,
	}
}

// AddLine handles adding an item to the cashier's current sale
func (h *SaleHandler) AddLine(c *gin.Context) {
	var req request.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.saleService.AddLine(c.Request.Context(), GetUsername(c), req.ItemID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Item added to sale", gin.H{
		"item_id":  item.ID,
		"name":     item.Name,
		"quantity": req.Quantity,
	})
}

// ViewCart handles viewing the cashier's current sale
func (h *SaleHandler) ViewCart(c *gin.Context) {
	lines := h.saleService.CartLines(c.Request.Context(), GetUsername(c))
	response.Success(c, http.StatusOK, "Current sale retrieved successfully", gin.H{
		"lines": lines,
	})
}

// Abandon handles clearing the cashier's current sale
func (h *SaleHandler) Abandon(c *gin.Context) {
	h.saleService.Abandon(c.Request.Context(), GetUsername(c))
	response.Success(c, http.StatusOK, "Sale abandoned", nil)
}

// Complete handles finalizing the cashier's current sale
func (h *SaleHandler) Complete(c *gin.Context) {
	var req request.CompleteSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	receipt, err := h.saleService.Complete(c.Request.Context(), GetUsername(c), req.Discount, *req.MoneyGiven)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Sale completed successfully", gin.H{
		"receipt":      receipt,
		"receipt_text": receipt.Text(),
		"low_stock":    h.lowStock(c),
	})
}

// lowStock fetches the current low-stock alert for mutating responses.
func (h *SaleHandler) lowStock(c *gin.Context) []service.LowStockItem {
	alerts, err := h.reportService.LowStockAlert(c.Request.Context())
	if err != nil {
		return nil
	}
	return alerts
}

// LastReceipt handles fetching the cashier's most recent receipt
func (h *SaleHandler) LastReceipt(c *gin.Context) {
	receipt, err := h.saleService.LastReceipt(c.Request.Context(), GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Receipt retrieved successfully", gin.H{
		"receipt":      receipt,
		"receipt_text": receipt.Text(),
	})
}
