package dto

import (
	"time"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReceiptRequest defines the data needed to record a customer receipt.
// A nil SaleID records an unattached advance receipt.
type CreateReceiptRequest struct {
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	CustomerID  string          `json:"customerID" binding:"required"`
	SaleID      *string         `json:"saleID"` // Optional
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentMode string          `json:"paymentMode" binding:"required,paymentmode"`
	ReferenceNo string          `json:"referenceNo"` // Optional
	Notes       string          `json:"notes"`       // Optional
}

// UpdateReceiptRequest defines the data allowed for updating a receipt.
// The customer and sale links are fixed at creation.
type UpdateReceiptRequest struct {
	Date        *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Amount      *decimal.Decimal `json:"amount"`
	PaymentMode *string          `json:"paymentMode" binding:"omitempty,paymentmode"`
	ReferenceNo *string          `json:"referenceNo"`
	Notes       *string          `json:"notes"`
}

// ReceiptResponse defines the data returned for a receipt.
// Mirrors domain.Receipt.
type ReceiptResponse struct {
	ReceiptID   string             `json:"receiptID"`
	Date        time.Time          `json:"date"`
	CustomerID  string             `json:"customerID"`
	SaleID      *string            `json:"saleID,omitempty"`
	Amount      decimal.Decimal    `json:"amount"`
	PaymentMode domain.PaymentMode `json:"paymentMode"`
	ReceiptType string             `json:"receiptType"`
	ReferenceNo string             `json:"referenceNo"`
	Notes       string             `json:"notes"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// ReceiptWithCustomerResponse adds the joined customer and sale columns.
type ReceiptWithCustomerResponse struct {
	ReceiptResponse
	CustomerName    string           `json:"customerName"`
	CustomerContact string           `json:"customerContact,omitempty"`
	SaleInvoiceNo   string           `json:"saleInvoiceNo,omitempty"`
	SaleAmount      *decimal.Decimal `json:"saleAmount,omitempty"`
}

// ListReceiptsParams defines query parameters for listing receipts.
type ListReceiptsParams struct {
	Limit      int    `form:"limit,default=100"`
	Offset     int    `form:"offset,default=0"`
	CustomerID string `form:"customerID"`
	Mode       string `form:"mode" binding:"omitempty,paymentmode"`
	From       string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// ListReceiptsResponse wraps the list of receipts.
type ListReceiptsResponse struct {
	Receipts []ReceiptWithCustomerResponse `json:"receipts"`
}

// ToReceiptResponse converts a domain.Receipt to ReceiptResponse DTO
func ToReceiptResponse(r *domain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ReceiptID:   r.ReceiptID,
		Date:        r.Date,
		CustomerID:  r.CustomerID,
		SaleID:      r.SaleID,
		Amount:      r.Amount,
		PaymentMode: r.PaymentMode,
		ReceiptType: r.Type(),
		ReferenceNo: r.ReferenceNo,
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt,
	}
}

// ToReceiptWithCustomerResponse converts a domain.ReceiptWithCustomer to its DTO
func ToReceiptWithCustomerResponse(r *domain.ReceiptWithCustomer) ReceiptWithCustomerResponse {
	return ReceiptWithCustomerResponse{
		ReceiptResponse: ToReceiptResponse(&r.Receipt),
		CustomerName:    r.CustomerName,
		CustomerContact: r.CustomerContact,
		SaleInvoiceNo:   r.SaleInvoiceNo,
		SaleAmount:      r.SaleAmount,
	}
}

// ToListReceiptsResponse converts a slice of domain.ReceiptWithCustomer to the list DTO
func ToListReceiptsResponse(receipts []domain.ReceiptWithCustomer) ListReceiptsResponse {
	res := make([]ReceiptWithCustomerResponse, len(receipts))
	for i, r := range receipts {
		res[i] = ToReceiptWithCustomerResponse(&r)
	}
	return ListReceiptsResponse{Receipts: res}
}
