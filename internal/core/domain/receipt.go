package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt records money received from a customer. A nil SaleID means an
// unattached advance receipt.
type Receipt struct {
	ReceiptID   string          `json:"receiptID"`
	Date        time.Time       `json:"date"`
	CustomerID  string          `json:"customerID"`
	SaleID      *string         `json:"saleID,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentMode PaymentMode     `json:"paymentMode"`
	ReferenceNo string          `json:"referenceNo"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Type labels the receipt as settling a specific sale or as an advance.
func (r Receipt) Type() string {
	if r.SaleID != nil {
		return "Sale Receipt"
	}
	return "Advance Receipt"
}

// ReceiptWithCustomer is a receipt joined with customer and, when linked,
// sale details.
type ReceiptWithCustomer struct {
	Receipt
	CustomerName    string           `json:"customerName"`
	CustomerContact string           `json:"customerContact,omitempty"`
	SaleInvoiceNo   string           `json:"saleInvoiceNo,omitempty"`
	SaleAmount      *decimal.Decimal `json:"saleAmount,omitempty"`
}

// ReceiptSummary aggregates receipts into linked/advance buckets.
type ReceiptSummary struct {
	TotalReceipts int64           `json:"totalReceipts"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	LinkedCount   int64           `json:"linkedCount"`
	AdvanceCount  int64           `json:"advanceCount"`
	LinkedAmount  decimal.Decimal `json:"linkedAmount"`
	AdvanceAmount decimal.Decimal `json:"advanceAmount"`
}
