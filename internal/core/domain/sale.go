package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale records money owed by a customer for goods delivered.
type Sale struct {
	SaleID         string          `json:"saleID"`
	Date           time.Time       `json:"date"`
	CustomerID     string          `json:"customerID"`
	InvoiceNo      string          `json:"invoiceNo"`
	Amount         decimal.Decimal `json:"amount"`
	ReceivedAmount decimal.Decimal `json:"receivedAmount"`
	Items          string          `json:"items"`
	Notes          string          `json:"notes"`
	Timestamps
}

// Outstanding returns the uncollected portion of the sale.
func (s Sale) Outstanding() decimal.Decimal {
	return s.Amount.Sub(s.ReceivedAmount)
}

// Status classifies the sale as Paid, Partial or Unpaid.
func (s Sale) Status() PaymentStatus {
	switch {
	case s.ReceivedAmount.GreaterThanOrEqual(s.Amount):
		return StatusPaid
	case s.ReceivedAmount.IsPositive():
		return StatusPartial
	default:
		return StatusUnpaid
	}
}

// SaleWithCustomer is a sale joined with its customer's details.
type SaleWithCustomer struct {
	Sale
	CustomerName    string `json:"customerName"`
	CustomerContact string `json:"customerContact,omitempty"`
}

// SaleSummary aggregates sales into paid/partial/unpaid buckets.
type SaleSummary struct {
	TotalSales       int64           `json:"totalSales"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	TotalReceived    decimal.Decimal `json:"totalReceived"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	PaidCount        int64           `json:"paidCount"`
	PartialCount     int64           `json:"partialCount"`
	UnpaidCount      int64           `json:"unpaidCount"`
}
