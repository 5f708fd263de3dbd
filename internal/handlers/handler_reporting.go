package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/shopbooks/shopbooks_app/internal/core/ports/services"
	"github.com/shopbooks/shopbooks_app/internal/dto"
	"github.com/shopbooks/shopbooks_app/internal/middleware"
)

// reportingHandler handles HTTP requests for cross-ledger reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.getDashboardSummary)
		reports.GET("/period", h.getPeriodReport)
	}
}

func (h *reportingHandler) getDashboardSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.reportingService.DashboardSummary(c.Request.Context())
	if err != nil {
		writeServiceError(c, logger, err, "Failed to assemble dashboard summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *reportingHandler) getPeriodReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	from, _ := parseOptionalDate(params.From)
	to, _ := parseOptionalDate(params.To)

	report, err := h.reportingService.PeriodReport(c.Request.Context(), from, to)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to assemble period report")
		return
	}

	c.JSON(http.StatusOK, report)
}
