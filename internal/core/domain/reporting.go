package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionEntryType discriminates rows in a merged transaction feed.
type TransactionEntryType string

const (
	EntryPurchase TransactionEntryType = "purchase"
	EntryPayment  TransactionEntryType = "payment"
	EntrySale     TransactionEntryType = "sale"
	EntryReceipt  TransactionEntryType = "receipt"
)

// TransactionEntry is one row of a party's merged, date-sorted transaction
// history (purchases+payments for suppliers, sales+receipts for customers).
// Settlement rows carry their own amount as SettledAmount and a zero
// outstanding, so the feed renders uniformly.
type TransactionEntry struct {
	EntryType     TransactionEntryType `json:"entryType"`
	EntryID       string               `json:"entryID"`
	Date          time.Time            `json:"date"`
	Reference     string               `json:"reference"`
	Items         string               `json:"items"`
	Amount        decimal.Decimal      `json:"amount"`
	SettledAmount decimal.Decimal      `json:"settledAmount"`
	Outstanding   decimal.Decimal      `json:"outstanding"`
	PaymentStatus PaymentStatus        `json:"paymentStatus"`
	Notes         string               `json:"notes"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// DashboardSummary is the cross-entity reconciliation snapshot served on
// the landing view of the presentation layer.
type DashboardSummary struct {
	SupplierCount        int64                  `json:"supplierCount"`
	CustomerCount        int64                  `json:"customerCount"`
	TotalPayable         decimal.Decimal        `json:"totalPayable"`
	TotalReceivable      decimal.Decimal        `json:"totalReceivable"`
	Purchases            PurchaseSummary        `json:"purchases"`
	Sales                SaleSummary            `json:"sales"`
	RecentPurchases      []PurchaseWithSupplier `json:"recentPurchases"`
	RecentSales          []SaleWithCustomer     `json:"recentSales"`
	OutstandingPurchases []PurchaseWithSupplier `json:"outstandingPurchases"`
	OutstandingSales     []SaleWithCustomer     `json:"outstandingSales"`
}

// PeriodReport groups the per-entity summaries plus instrument breakdowns
// for one reporting period.
type PeriodReport struct {
	From         *time.Time      `json:"from,omitempty"`
	To           *time.Time      `json:"to,omitempty"`
	Purchases    PurchaseSummary `json:"purchases"`
	Sales        SaleSummary     `json:"sales"`
	Payments     PaymentSummary  `json:"payments"`
	Receipts     ReceiptSummary  `json:"receipts"`
	PaymentModes []ModeSummary   `json:"paymentModes"`
	ReceiptModes []ModeSummary   `json:"receiptModes"`
}
