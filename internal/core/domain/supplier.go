package domain

import (
	"github.com/shopspring/decimal"
)

// Supplier represents a party the business buys from.
// Balance is derived exclusively by the balance maintenance rules:
// positive means the business owes the supplier, negative means an
// advance is held with the supplier.
type Supplier struct {
	SupplierID string          `json:"supplierID"`
	Name       string          `json:"name"`
	Contact    string          `json:"contact"`
	Address    string          `json:"address"`
	Balance    decimal.Decimal `json:"balance"`
	Timestamps
}

// SupplierWithTotals is a supplier joined with purchase/payment aggregates.
type SupplierWithTotals struct {
	Supplier
	TotalPurchases      int64           `json:"totalPurchases"`
	TotalPurchaseAmount decimal.Decimal `json:"totalPurchaseAmount"`
	TotalPaidAmount     decimal.Decimal `json:"totalPaidAmount"`
	TotalPayments       int64           `json:"totalPayments"`
}

// SupplierSummary buckets suppliers by the sign of their balance.
type SupplierSummary struct {
	TotalSuppliers int64           `json:"totalSuppliers"`
	PayableCount   int64           `json:"payableCount"`
	AdvanceCount   int64           `json:"advanceCount"`
	ZeroCount      int64           `json:"zeroCount"`
	TotalPayable   decimal.Decimal `json:"totalPayable"`
	TotalAdvance   decimal.Decimal `json:"totalAdvance"`
	NetPayable     decimal.Decimal `json:"netPayable"`
}
