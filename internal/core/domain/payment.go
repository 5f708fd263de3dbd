package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records money paid out to a supplier. A nil PurchaseID means an
// unattached advance payment.
type Payment struct {
	PaymentID   string          `json:"paymentID"`
	Date        time.Time       `json:"date"`
	SupplierID  string          `json:"supplierID"`
	PurchaseID  *string         `json:"purchaseID,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentMode PaymentMode     `json:"paymentMode"`
	ReferenceNo string          `json:"referenceNo"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Type labels the payment as settling a specific purchase or as an advance.
func (p Payment) Type() string {
	if p.PurchaseID != nil {
		return "Purchase Payment"
	}
	return "Advance Payment"
}

// PaymentWithSupplier is a payment joined with supplier and, when linked,
// purchase details.
type PaymentWithSupplier struct {
	Payment
	SupplierName    string           `json:"supplierName"`
	SupplierContact string           `json:"supplierContact,omitempty"`
	PurchaseBillNo  string           `json:"purchaseBillNo,omitempty"`
	PurchaseAmount  *decimal.Decimal `json:"purchaseAmount,omitempty"`
}

// PaymentSummary aggregates payments into linked/advance buckets.
type PaymentSummary struct {
	TotalPayments int64           `json:"totalPayments"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	LinkedCount   int64           `json:"linkedCount"`
	AdvanceCount  int64           `json:"advanceCount"`
	LinkedAmount  decimal.Decimal `json:"linkedAmount"`
	AdvanceAmount decimal.Decimal `json:"advanceAmount"`
}

// ModeSummary is one row of a by-payment-mode rollup.
type ModeSummary struct {
	PaymentMode PaymentMode     `json:"paymentMode"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}
