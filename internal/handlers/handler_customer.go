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

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func newCustomerHandler(cs portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerService: cs}
}

// registerCustomerRoutes registers routes related to customers.
func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/summary", h.getCustomerSummary)
		customers.GET("/:id", h.getCustomerDetails)
		customers.GET("/:id/transactions", h.getCustomerTransactions)
		customers.PUT("/:id", h.updateCustomer)
		customers.DELETE("/:id", h.deleteCustomer)
	}
}

func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

func (h *customerHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListCustomersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListCustomers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var (
		customers []domain.CustomerWithTotals
		err       error
	)
	switch {
	case params.Balance != "":
		customers, err = h.customerService.ListCustomersByBalance(c.Request.Context(), domain.BalanceFilter(params.Balance))
	case params.Search != "":
		customers, err = h.customerService.SearchCustomers(c.Request.Context(), params.Search, params.Limit)
	default:
		customers, err = h.customerService.ListCustomers(c.Request.Context(), params.Limit, params.Offset)
	}
	if err != nil {
		writeServiceError(c, logger, err, "Failed to list customers")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCustomersResponse(customers))
}

func (h *customerHandler) getCustomerDetails(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("id")

	txnLimit, err := strconv.Atoi(c.DefaultQuery("txnLimit", strconv.Itoa(defaultTransactionFeedLimit)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "txnLimit must be an integer"})
		return
	}

	customer, transactions, err := h.customerService.GetCustomerDetails(c.Request.Context(), customerID, txnLimit)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to retrieve customer")
		return
	}

	c.JSON(http.StatusOK, dto.CustomerDetailResponse{
		Customer:     dto.ToCustomerWithTotalsResponse(customer),
		Transactions: dto.ToTransactionEntryResponses(transactions),
	})
}

func (h *customerHandler) getCustomerTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("id")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}

	_, transactions, err := h.customerService.GetCustomerDetails(c.Request.Context(), customerID, limit)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to load customer transactions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": dto.ToTransactionEntryResponses(transactions)})
}

func (h *customerHandler) getCustomerSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.customerService.GetCustomerSummary(c.Request.Context())
	if err != nil {
		writeServiceError(c, logger, err, "Failed to aggregate customer summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *customerHandler) updateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("id")

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, req)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

func (h *customerHandler) deleteCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("id")

	if err := h.customerService.DeleteCustomer(c.Request.Context(), customerID); err != nil {
		writeServiceError(c, logger, err, "Failed to delete customer")
		return
	}

	c.Status(http.StatusNoContent)
}
