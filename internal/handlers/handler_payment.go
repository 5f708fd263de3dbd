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

// paymentHandler handles HTTP requests related to supplier payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers routes related to payments.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.createPayment)
		payments.GET("", h.listPayments)
		payments.GET("/summary", h.getPaymentSummary)
		payments.GET("/summary/modes", h.getPaymentModeSummary)
		payments.GET("/:id", h.getPayment)
		payments.PUT("/:id", h.updatePayment)
		payments.DELETE("/:id", h.deletePayment)
	}
}

func (h *paymentHandler) createPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to create payment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListPayments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var (
		payments []domain.PaymentWithSupplier
		err      error
	)
	switch {
	case params.Mode != "":
		payments, err = h.paymentService.ListPaymentsByMode(c.Request.Context(), domain.PaymentMode(params.Mode))
	case params.From != "" || params.To != "":
		from, ferr := parseOptionalDate(params.From)
		to, terr := parseOptionalDate(params.To)
		if ferr != nil || terr != nil || from == nil || to == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "both from and to are required for a date range"})
			return
		}
		payments, err = h.paymentService.ListPaymentsByDateRange(c.Request.Context(), *from, *to)
	case params.SupplierID != "":
		payments, err = h.paymentService.ListPaymentsBySupplier(c.Request.Context(), params.SupplierID, params.Limit)
	default:
		payments, err = h.paymentService.ListPayments(c.Request.Context(), params.Limit, params.Offset)
	}
	if err != nil {
		writeServiceError(c, logger, err, "Failed to list payments")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPaymentsResponse(payments))
}

func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")

	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), paymentID)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to retrieve payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentWithSupplierResponse(payment))
}

func (h *paymentHandler) getPaymentSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	from, _ := parseOptionalDate(params.From)
	to, _ := parseOptionalDate(params.To)

	summary, err := h.paymentService.GetPaymentSummary(c.Request.Context(), from, to)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to aggregate payment summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *paymentHandler) getPaymentModeSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	from, _ := parseOptionalDate(params.From)
	to, _ := parseOptionalDate(params.To)

	summary, err := h.paymentService.GetPaymentModeSummary(c.Request.Context(), from, to)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to aggregate payments by mode")
		return
	}

	c.JSON(http.StatusOK, gin.H{"modes": summary})
}

func (h *paymentHandler) updatePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")

	var req dto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	payment, err := h.paymentService.UpdatePayment(c.Request.Context(), paymentID, req)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to update payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

func (h *paymentHandler) deletePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")

	if err := h.paymentService.DeletePayment(c.Request.Context(), paymentID); err != nil {
		writeServiceError(c, logger, err, "Failed to delete payment")
		return
	}

	c.Status(http.StatusNoContent)
}
