package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	portssvc "github.com/shopbooks/shopbooks_app/internal/core/ports/services"
	"github.com/shopbooks/shopbooks_app/internal/dto"
	"github.com/shopbooks/shopbooks_app/internal/middleware"
)

// receiptHandler handles HTTP requests related to customer receipts.
type receiptHandler struct {
	receiptService portssvc.ReceiptSvcFacade
}

func newReceiptHandler(rs portssvc.ReceiptSvcFacade) *receiptHandler {
	return &receiptHandler{receiptService: rs}
}

// registerReceiptRoutes registers routes related to receipts.
func registerReceiptRoutes(rg *gin.RouterGroup, receiptService portssvc.ReceiptSvcFacade) {
	h := newReceiptHandler(receiptService)

	receipts := rg.Group("/receipts")
	{
		receipts.POST("", h.createReceipt)
		receipts.GET("", h.listReceipts)
		receipts.GET("/summary", h.getReceiptSummary)
		receipts.GET("/summary/modes", h.getReceiptModeSummary)
		receipts.GET("/:id", h.getReceipt)
		receipts.PUT("/:id", h.updateReceipt)
		receipts.DELETE("/:id", h.deleteReceipt)
	}
}

func (h *receiptHandler) createReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to create receipt")
		return
	}

	c.JSON(http.StatusCreated, dto.ToReceiptResponse(receipt))
}

func (h *receiptHandler) listReceipts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListReceiptsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListReceipts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var (
		receipts []domain.ReceiptWithCustomer
		err      error
	)
	switch {
	case params.Mode != "":
		receipts, err = h.receiptService.ListReceiptsByMode(c.Request.Context(), domain.PaymentMode(params.Mode))
	case params.From != "" || params.To != "":
		from, ferr := parseOptionalDate(params.From)
		to, terr := parseOptionalDate(params.To)
		if ferr != nil || terr != nil || from == nil || to == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "both from and to are required for a date range"})
			return
		}
		receipts, err = h.receiptService.ListReceiptsByDateRange(c.Request.Context(), *from, *to)
	case params.CustomerID != "":
		receipts, err = h.receiptService.ListReceiptsByCustomer(c.Request.Context(), params.CustomerID, params.Limit)
	default:
		receipts, err = h.receiptService.ListReceipts(c.Request.Context(), params.Limit, params.Offset)
	}
	if err != nil {
		writeServiceError(c, logger, err, "Failed to list receipts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListReceiptsResponse(receipts))
}

func (h *receiptHandler) getReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("id")

	receipt, err := h.receiptService.GetReceiptByID(c.Request.Context(), receiptID)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to retrieve receipt")
		return
	}

	c.JSON(http.StatusOK, dto.ToReceiptWithCustomerResponse(receipt))
}

func (h *receiptHandler) getReceiptSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	from, _ := parseOptionalDate(params.From)
	to, _ := parseOptionalDate(params.To)

	summary, err := h.receiptService.GetReceiptSummary(c.Request.Context(), from, to)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to aggregate receipt summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *receiptHandler) getReceiptModeSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	from, _ := parseOptionalDate(params.From)
	to, _ := parseOptionalDate(params.To)

	summary, err := h.receiptService.GetReceiptModeSummary(c.Request.Context(), from, to)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to aggregate receipts by mode")
		return
	}

	c.JSON(http.StatusOK, gin.H{"modes": summary})
}

func (h *receiptHandler) updateReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("id")

	var req dto.UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	receipt, err := h.receiptService.UpdateReceipt(c.Request.Context(), receiptID, req)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to update receipt")
		return
	}

	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

func (h *receiptHandler) deleteReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("id")

	if err := h.receiptService.DeleteReceipt(c.Request.Context(), receiptID); err != nil {
		writeServiceError(c, logger, err, "Failed to delete receipt")
		return
	}

	c.Status(http.StatusNoContent)
}
