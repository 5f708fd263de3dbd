package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase records money owed to a supplier for goods received.
// PaidAmount tracks the settled portion; the outstanding amount is always
// derived on read, never stored.
type Purchase struct {
	PurchaseID string          `json:"purchaseID"`
	Date       time.Time       `json:"date"`
	SupplierID string          `json:"supplierID"`
	BillNo     string          `json:"billNo"`
	Amount     decimal.Decimal `json:"amount"`
	PaidAmount decimal.Decimal `json:"paidAmount"`
	Items      string          `json:"items"`
	Notes      string          `json:"notes"`
	Timestamps
}

// Outstanding returns the unsettled portion of the purchase.
func (p Purchase) Outstanding() decimal.Decimal {
	return p.Amount.Sub(p.PaidAmount)
}

// Status classifies the purchase as Paid, Partial or Unpaid.
func (p Purchase) Status() PaymentStatus {
	switch {
	case p.PaidAmount.GreaterThanOrEqual(p.Amount):
		return StatusPaid
	case p.PaidAmount.IsPositive():
		return StatusPartial
	default:
		return StatusUnpaid
	}
}

// PurchaseWithSupplier is a purchase joined with its supplier's details.
type PurchaseWithSupplier struct {
	Purchase
	SupplierName    string `json:"supplierName"`
	SupplierContact string `json:"supplierContact,omitempty"`
}

// PurchaseSummary aggregates purchases into paid/partial/unpaid buckets.
type PurchaseSummary struct {
	TotalPurchases   int64           `json:"totalPurchases"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	PaidCount        int64           `json:"paidCount"`
	PartialCount     int64           `json:"partialCount"`
	UnpaidCount      int64           `json:"unpaidCount"`
}
