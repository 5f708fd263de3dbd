package dto

import (
	"time"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest defines the data needed to record a supplier payment.
// A nil PurchaseID records an unattached advance payment.
type CreatePaymentRequest struct {
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	SupplierID  string          `json:"supplierID" binding:"required"`
	PurchaseID  *string         `json:"purchaseID"` // Optional
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentMode string          `json:"paymentMode" binding:"required,paymentmode"`
	ReferenceNo string          `json:"referenceNo"` // Optional
	Notes       string          `json:"notes"`       // Optional
}

// UpdatePaymentRequest defines the data allowed for updating a payment.
// The supplier and purchase links are fixed at creation.
type UpdatePaymentRequest struct {
	Date        *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Amount      *decimal.Decimal `json:"amount"`
	PaymentMode *string          `json:"paymentMode" binding:"omitempty,paymentmode"`
	ReferenceNo *string          `json:"referenceNo"`
	Notes       *string          `json:"notes"`
}

// PaymentResponse defines the data returned for a payment.
// Mirrors domain.Payment.
type PaymentResponse struct {
	PaymentID   string             `json:"paymentID"`
	Date        time.Time          `json:"date"`
	SupplierID  string             `json:"supplierID"`
	PurchaseID  *string            `json:"purchaseID,omitempty"`
	Amount      decimal.Decimal    `json:"amount"`
	PaymentMode domain.PaymentMode `json:"paymentMode"`
	PaymentType string             `json:"paymentType"`
	ReferenceNo string             `json:"referenceNo"`
	Notes       string             `json:"notes"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// PaymentWithSupplierResponse adds the joined supplier and purchase columns.
type PaymentWithSupplierResponse struct {
	PaymentResponse
	SupplierName    string           `json:"supplierName"`
	SupplierContact string           `json:"supplierContact,omitempty"`
	PurchaseBillNo  string           `json:"purchaseBillNo,omitempty"`
	PurchaseAmount  *decimal.Decimal `json:"purchaseAmount,omitempty"`
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	Limit      int    `form:"limit,default=100"`
	Offset     int    `form:"offset,default=0"`
	SupplierID string `form:"supplierID"`
	Mode       string `form:"mode" binding:"omitempty,paymentmode"`
	From       string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// ListPaymentsResponse wraps the list of payments.
type ListPaymentsResponse struct {
	Payments []PaymentWithSupplierResponse `json:"payments"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:   p.PaymentID,
		Date:        p.Date,
		SupplierID:  p.SupplierID,
		PurchaseID:  p.PurchaseID,
		Amount:      p.Amount,
		PaymentMode: p.PaymentMode,
		PaymentType: p.Type(),
		ReferenceNo: p.ReferenceNo,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
	}
}

// ToPaymentWithSupplierResponse converts a domain.PaymentWithSupplier to its DTO
func ToPaymentWithSupplierResponse(p *domain.PaymentWithSupplier) PaymentWithSupplierResponse {
	return PaymentWithSupplierResponse{
		PaymentResponse: ToPaymentResponse(&p.Payment),
		SupplierName:    p.SupplierName,
		SupplierContact: p.SupplierContact,
		PurchaseBillNo:  p.PurchaseBillNo,
		PurchaseAmount:  p.PurchaseAmount,
	}
}

// ToListPaymentsResponse converts a slice of domain.PaymentWithSupplier to the list DTO
func ToListPaymentsResponse(payments []domain.PaymentWithSupplier) ListPaymentsResponse {
	res := make([]PaymentWithSupplierResponse, len(payments))
	for i, p := range payments {
		res[i] = ToPaymentWithSupplierResponse(&p)
	}
	return ListPaymentsResponse{Payments: res}
}
