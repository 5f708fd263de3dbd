package dto

import (
	"time"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest defines the data needed to create a new customer.
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact"` // Optional
	Address string `json:"address"` // Optional
}

// UpdateCustomerRequest defines the data allowed for updating a customer.
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Contact *string `json:"contact"`
	Address *string `json:"address"`
}

// CustomerResponse defines the data returned for a customer.
// Mirrors domain.Customer.
type CustomerResponse struct {
	CustomerID string          `json:"customerID"`
	Name       string          `json:"name"`
	Contact    string          `json:"contact"`
	Address    string          `json:"address"`
	Balance    decimal.Decimal `json:"balance"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// CustomerWithTotalsResponse adds lifetime sale and receipt totals.
type CustomerWithTotalsResponse struct {
	CustomerResponse
	TotalSales          int64           `json:"totalSales"`
	TotalSaleAmount     decimal.Decimal `json:"totalSaleAmount"`
	TotalReceivedAmount decimal.Decimal `json:"totalReceivedAmount"`
	TotalReceipts       int64           `json:"totalReceipts"`
}

// CustomerDetailResponse combines a customer with its recent transaction feed.
type CustomerDetailResponse struct {
	Customer     CustomerWithTotalsResponse `json:"customer"`
	Transactions []TransactionEntryResponse `json:"transactions"`
}

// ListCustomersParams defines query parameters for listing customers.
type ListCustomersParams struct {
	Limit   int    `form:"limit,default=100"`
	Offset  int    `form:"offset,default=0"`
	Search  string `form:"search"`
	Balance string `form:"balance" binding:"omitempty,oneof=receivable advance zero"`
}

// ListCustomersResponse wraps the list of customers.
type ListCustomersResponse struct {
	Customers []CustomerWithTotalsResponse `json:"customers"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Contact:    c.Contact,
		Address:    c.Address,
		Balance:    c.Balance,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ToCustomerWithTotalsResponse converts a domain.CustomerWithTotals to its DTO
func ToCustomerWithTotalsResponse(c *domain.CustomerWithTotals) CustomerWithTotalsResponse {
	return CustomerWithTotalsResponse{
		CustomerResponse:    ToCustomerResponse(&c.Customer),
		TotalSales:          c.TotalSales,
		TotalSaleAmount:     c.TotalSaleAmount,
		TotalReceivedAmount: c.TotalReceivedAmount,
		TotalReceipts:       c.TotalReceipts,
	}
}

// ToListCustomersResponse converts a slice of domain.CustomerWithTotals to the list DTO
func ToListCustomersResponse(customers []domain.CustomerWithTotals) ListCustomersResponse {
	res := make([]CustomerWithTotalsResponse, len(customers))
	for i, c := range customers {
		res[i] = ToCustomerWithTotalsResponse(&c)
	}
	return ListCustomersResponse{Customers: res}
}
