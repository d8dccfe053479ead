package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jkarimi/dukapos/internal/application/service"
	"github.com/jkarimi/dukapos/internal/presentation/http/dto/response"
)

const reportDateLayout = "2006-01-02"

// ReportHandler handles sales history and report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// History handles listing the full sales history
func (h *ReportHandler) History(c *gin.Context) {
	history, err := h.reportService.SalesHistory(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Sales history retrieved successfully", history)
}

// RangeReport handles generating a sales report between two dates. Both
// bounds are calendar dates; the end date is included in the report.
func (h *ReportHandler) RangeReport(c *gin.Context) {
	start, err := time.Parse(reportDateLayout, c.Query("start"))
	if err != nil {
		response.BadRequest(c, "Bad date format, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse(reportDateLayout, c.Query("end"))
	if err != nil {
		response.BadRequest(c, "Bad date format, expected YYYY-MM-DD")
		return
	}

	// The report range is [start, end of the end date).
	report, err := h.reportService.RangeReport(c.Request.Context(), start, end.AddDate(0, 0, 1))
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Sales report generated successfully"
	if !report.Found {
		message = "No sales found for this range"
	}
	response.Success(c, http.StatusOK, message, report)
}
