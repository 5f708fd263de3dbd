package dto

import (
	"time"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest defines the data needed to record a sale.
type CreateSaleRequest struct {
	Date           string          `json:"date" binding:"required,datetime=2006-01-02"`
	CustomerID     string          `json:"customerID" binding:"required"`
	InvoiceNo      string          `json:"invoiceNo"` // Optional
	Items          string          `json:"items"`     // Optional
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	ReceivedAmount decimal.Decimal `json:"receivedAmount"` // Optional, collected at entry
	Notes          string          `json:"notes"`          // Optional
}

// UpdateSaleRequest defines the data allowed for updating a sale.
type UpdateSaleRequest struct {
	Date           *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	InvoiceNo      *string          `json:"invoiceNo"`
	Items          *string          `json:"items"`
	Amount         *decimal.Decimal `json:"amount"`
	ReceivedAmount *decimal.Decimal `json:"receivedAmount"`
	Notes          *string          `json:"notes"`
}

// SaleResponse defines the data returned for a sale.
// Mirrors domain.Sale plus its derived settlement fields.
type SaleResponse struct {
	SaleID         string               `json:"saleID"`
	Date           time.Time            `json:"date"`
	CustomerID     string               `json:"customerID"`
	InvoiceNo      string               `json:"invoiceNo"`
	Items          string               `json:"items"`
	Amount         decimal.Decimal      `json:"amount"`
	ReceivedAmount decimal.Decimal      `json:"receivedAmount"`
	Outstanding    decimal.Decimal      `json:"outstanding"`
	Status         domain.PaymentStatus `json:"status"`
	Notes          string               `json:"notes"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

// SaleWithCustomerResponse adds the joined customer columns.
type SaleWithCustomerResponse struct {
	SaleResponse
	CustomerName    string `json:"customerName"`
	CustomerContact string `json:"customerContact,omitempty"`
}

// SaleDetailResponse combines a sale with its collection history.
type SaleDetailResponse struct {
	Sale     SaleWithCustomerResponse      `json:"sale"`
	Receipts []ReceiptWithCustomerResponse `json:"receipts"`
}

// ListSalesParams defines query parameters for listing sales.
type ListSalesParams struct {
	Limit       int    `form:"limit,default=100"`
	Offset      int    `form:"offset,default=0"`
	CustomerID  string `form:"customerID"`
	From        string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To          string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Outstanding bool   `form:"outstanding"`
}

// ListSalesResponse wraps the list of sales.
type ListSalesResponse struct {
	Sales []SaleWithCustomerResponse `json:"sales"`
}

// ToSaleResponse converts a domain.Sale to SaleResponse DTO
func ToSaleResponse(s *domain.Sale) SaleResponse {
	return SaleResponse{
		SaleID:         s.SaleID,
		Date:           s.Date,
		CustomerID:     s.CustomerID,
		InvoiceNo:      s.InvoiceNo,
		Items:          s.Items,
		Amount:         s.Amount,
		ReceivedAmount: s.ReceivedAmount,
		Outstanding:    s.Outstanding(),
		Status:         s.Status(),
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// ToSaleWithCustomerResponse converts a domain.SaleWithCustomer to its DTO
func ToSaleWithCustomerResponse(s *domain.SaleWithCustomer) SaleWithCustomerResponse {
	return SaleWithCustomerResponse{
		SaleResponse:    ToSaleResponse(&s.Sale),
		CustomerName:    s.CustomerName,
		CustomerContact: s.CustomerContact,
	}
}

// ToListSalesResponse converts a slice of domain.SaleWithCustomer to the list DTO
func ToListSalesResponse(sales []domain.SaleWithCustomer) ListSalesResponse {
	res := make([]SaleWithCustomerResponse, len(sales))
	for i, s := range sales {
		res[i] = ToSaleWithCustomerResponse(&s)
	}
	return ListSalesResponse{Sales: res}
}
