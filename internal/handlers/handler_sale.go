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

// saleHandler handles HTTP requests related to sales.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{saleService: ss}
}

// registerSaleRoutes registers routes related to sales.
func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/summary", h.getSaleSummary)
		sales.GET("/:id", h.getSale)
		sales.GET("/:id/receipts", h.getSaleReceipts)
		sales.PUT("/:id", h.updateSale)
		sales.DELETE("/:id", h.deleteSale)
	}
}

func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to create sale")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

func (h *saleHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListSales", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var (
		sales []domain.SaleWithCustomer
		err   error
	)
	switch {
	case params.Outstanding:
		sales, err = h.saleService.ListOutstandingSales(c.Request.Context(), params.CustomerID)
	case params.From != "" || params.To != "":
		from, ferr := parseOptionalDate(params.From)
		to, terr := parseOptionalDate(params.To)
		if ferr != nil || terr != nil || from == nil || to == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "both from and to are required for a date range"})
			return
		}
		sales, err = h.saleService.ListSalesByDateRange(c.Request.Context(), *from, *to)
	case params.CustomerID != "":
		sales, err = h.saleService.ListSalesByCustomer(c.Request.Context(), params.CustomerID, params.Limit)
	default:
		sales, err = h.saleService.ListSales(c.Request.Context(), params.Limit, params.Offset)
	}
	if err != nil {
		writeServiceError(c, logger, err, "Failed to list sales")
		return
	}

	c.JSON(http.StatusOK, dto.ToListSalesResponse(sales))
}

func (h *saleHandler) getSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("id")

	sale, receipts, err := h.saleService.GetSaleByID(c.Request.Context(), saleID)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to retrieve sale")
		return
	}

	receiptResponses := make([]dto.ReceiptWithCustomerResponse, len(receipts))
	for i, r := range receipts {
		receiptResponses[i] = dto.ToReceiptWithCustomerResponse(&r)
	}
	c.JSON(http.StatusOK, dto.SaleDetailResponse{
		Sale:     dto.ToSaleWithCustomerResponse(sale),
		Receipts: receiptResponses,
	})
}

func (h *saleHandler) getSaleReceipts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("id")

	_, receipts, err := h.saleService.GetSaleByID(c.Request.Context(), saleID)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to load sale receipts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListReceiptsResponse(receipts))
}

func (h *saleHandler) getSaleSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	from, _ := parseOptionalDate(params.From)
	to, _ := parseOptionalDate(params.To)

	summary, err := h.saleService.GetSaleSummary(c.Request.Context(), from, to)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to aggregate sale summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *saleHandler) updateSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("id")

	var req dto.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	sale, err := h.saleService.UpdateSale(c.Request.Context(), saleID, req)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to update sale")
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

func (h *saleHandler) deleteSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("id")

	if err := h.saleService.DeleteSale(c.Request.Context(), saleID); err != nil {
		writeServiceError(c, logger, err, "Failed to delete sale")
		return
	}

	c.Status(http.StatusNoContent)
}
