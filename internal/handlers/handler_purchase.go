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

// purchaseHandler handles HTTP requests related to purchases.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
}

func newPurchaseHandler(ps portssvc.PurchaseSvcFacade) *purchaseHandler {
	return &purchaseHandler{purchaseService: ps}
}

// registerPurchaseRoutes registers routes related to purchases.
func registerPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvcFacade) {
	h := newPurchaseHandler(purchaseService)

	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.createPurchase)
		purchases.GET("", h.listPurchases)
		purchases.GET("/summary", h.getPurchaseSummary)
		purchases.GET("/:id", h.getPurchase)
		purchases.GET("/:id/payments", h.getPurchasePayments)
		purchases.PUT("/:id", h.updatePurchase)
		purchases.DELETE("/:id", h.deletePurchase)
	}
}

func (h *purchaseHandler) createPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to create purchase")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPurchaseResponse(purchase))
}

// listPurchases serves the ledger page's filter combinations: outstanding
// only, one supplier, a date window, or the plain paginated list.
func (h *purchaseHandler) listPurchases(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPurchasesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListPurchases", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var (
		purchases []domain.PurchaseWithSupplier
		err       error
	)
	switch {
	case params.Outstanding:
		purchases, err = h.purchaseService.ListOutstandingPurchases(c.Request.Context(), params.SupplierID)
	case params.From != "" || params.To != "":
		from, ferr := parseOptionalDate(params.From)
		to, terr := parseOptionalDate(params.To)
		if ferr != nil || terr != nil || from == nil || to == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "both from and to are required for a date range"})
			return
		}
		purchases, err = h.purchaseService.ListPurchasesByDateRange(c.Request.Context(), *from, *to)
	case params.SupplierID != "":
		purchases, err = h.purchaseService.ListPurchasesBySupplier(c.Request.Context(), params.SupplierID, params.Limit)
	default:
		purchases, err = h.purchaseService.ListPurchases(c.Request.Context(), params.Limit, params.Offset)
	}
	if err != nil {
		writeServiceError(c, logger, err, "Failed to list purchases")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPurchasesResponse(purchases))
}

func (h *purchaseHandler) getPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("id")

	purchase, payments, err := h.purchaseService.GetPurchaseByID(c.Request.Context(), purchaseID)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to retrieve purchase")
		return
	}

	paymentResponses := make([]dto.PaymentWithSupplierResponse, len(payments))
	for i, p := range payments {
		paymentResponses[i] = dto.ToPaymentWithSupplierResponse(&p)
	}
	c.JSON(http.StatusOK, dto.PurchaseDetailResponse{
		Purchase: dto.ToPurchaseWithSupplierResponse(purchase),
		Payments: paymentResponses,
	})
}

func (h *purchaseHandler) getPurchasePayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("id")

	_, payments, err := h.purchaseService.GetPurchaseByID(c.Request.Context(), purchaseID)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to load purchase payments")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPaymentsResponse(payments))
}

func (h *purchaseHandler) getPurchaseSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	from, _ := parseOptionalDate(params.From)
	to, _ := parseOptionalDate(params.To)

	summary, err := h.purchaseService.GetPurchaseSummary(c.Request.Context(), from, to)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to aggregate purchase summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *purchaseHandler) updatePurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("id")

	var req dto.UpdatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	purchase, err := h.purchaseService.UpdatePurchase(c.Request.Context(), purchaseID, req)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to update purchase")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

func (h *purchaseHandler) deletePurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("id")

	if err := h.purchaseService.DeletePurchase(c.Request.Context(), purchaseID); err != nil {
		writeServiceError(c, logger, err, "Failed to delete purchase")
		return
	}

	c.Status(http.StatusNoContent)
}
