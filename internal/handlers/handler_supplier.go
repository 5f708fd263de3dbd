package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	portssvc "github.com/shopbooks/shopbooks_app/internal/core/ports/services"
	"github.com/shopbooks/shopbooks_app/internal/dto"
	"github.com/shopbooks/shopbooks_app/internal/middleware"
)

const defaultTransactionFeedLimit = 20

// supplierHandler handles HTTP requests related to suppliers.
type supplierHandler struct {
	supplierService portssvc.SupplierSvcFacade
}

func newSupplierHandler(ss portssvc.SupplierSvcFacade) *supplierHandler {
	return &supplierHandler{supplierService: ss}
}

// registerSupplierRoutes registers routes related to suppliers.
func registerSupplierRoutes(rg *gin.RouterGroup, supplierService portssvc.SupplierSvcFacade) {
	h := newSupplierHandler(supplierService)

	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.createSupplier)
		suppliers.GET("", h.listSuppliers)
		suppliers.GET("/summary", h.getSupplierSummary)
		suppliers.GET("/:id", h.getSupplierDetails)
		suppliers.GET("/:id/transactions", h.getSupplierTransactions)
		suppliers.PUT("/:id", h.updateSupplier)
		suppliers.DELETE("/:id", h.deleteSupplier)
	}
}

func (h *supplierHandler) createSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSupplier", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to create supplier")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSupplierResponse(supplier))
}

// listSuppliers serves the plain list, the search box and the balance
// filter through one route; the three query params are mutually exclusive
// in the UI but harmless when combined (balance wins, then search).
func (h *supplierHandler) listSuppliers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListSuppliersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListSuppliers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var (
		suppliers []domain.SupplierWithTotals
		err       error
	)
	switch {
	case params.Balance != "":
		suppliers, err = h.supplierService.ListSuppliersByBalance(c.Request.Context(), domain.BalanceFilter(params.Balance))
	case params.Search != "":
		suppliers, err = h.supplierService.SearchSuppliers(c.Request.Context(), params.Search, params.Limit)
	default:
		suppliers, err = h.supplierService.ListSuppliers(c.Request.Context(), params.Limit, params.Offset)
	}
	if err != nil {
		writeServiceError(c, logger, err, "Failed to list suppliers")
		return
	}

	c.JSON(http.StatusOK, dto.ToListSuppliersResponse(suppliers))
}

func (h *supplierHandler) getSupplierDetails(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	supplierID := c.Param("id")

	txnLimit, err := strconv.Atoi(c.DefaultQuery("txnLimit", strconv.Itoa(defaultTransactionFeedLimit)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "txnLimit must be an integer"})
		return
	}

	supplier, transactions, err := h.supplierService.GetSupplierDetails(c.Request.Context(), supplierID, txnLimit)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to retrieve supplier")
		return
	}

	c.JSON(http.StatusOK, dto.SupplierDetailResponse{
		Supplier:     dto.ToSupplierWithTotalsResponse(supplier),
		Transactions: dto.ToTransactionEntryResponses(transactions),
	})
}

func (h *supplierHandler) getSupplierTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	supplierID := c.Param("id")

	// limit <= 0 returns the full history
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}

	// GetSupplierDetails keeps 404 semantics for unknown suppliers; the
	// feed itself is empty-slice-friendly.
	_, transactions, err := h.supplierService.GetSupplierDetails(c.Request.Context(), supplierID, limit)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to load supplier transactions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": dto.ToTransactionEntryResponses(transactions)})
}

func (h *supplierHandler) getSupplierSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.supplierService.GetSupplierSummary(c.Request.Context())
	if err != nil {
		writeServiceError(c, logger, err, "Failed to aggregate supplier summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *supplierHandler) updateSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	supplierID := c.Param("id")

	var req dto.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateSupplier", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), supplierID, req)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to update supplier")
		return
	}

	c.JSON(http.StatusOK, dto.ToSupplierResponse(supplier))
}

func (h *supplierHandler) deleteSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	supplierID := c.Param("id")

	if err := h.supplierService.DeleteSupplier(c.Request.Context(), supplierID); err != nil {
		writeServiceError(c, logger, err, "Failed to delete supplier")
		return
	}

	c.Status(http.StatusNoContent)
}
