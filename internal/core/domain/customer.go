package domain

import (
	"github.com/shopspring/decimal"
)

// Customer represents a party the business sells to.
// Positive balance means the customer owes the business, negative means
// the customer has paid in advance.
type Customer struct {
	CustomerID string          `json:"customerID"`
	Name       string          `json:"name"`
	Contact    string          `json:"contact"`
	Address    string          `json:"address"`
	Balance    decimal.Decimal `json:"balance"`
	Timestamps
}

// CustomerWithTotals is a customer joined with sale/receipt aggregates.
type CustomerWithTotals struct {
	Customer
	TotalSales          int64           `json:"totalSales"`
	TotalSaleAmount     decimal.Decimal `json:"totalSaleAmount"`
	TotalReceivedAmount decimal.Decimal `json:"totalReceivedAmount"`
	TotalReceipts       int64           `json:"totalReceipts"`
}

// CustomerSummary buckets customers by the sign of their balance.
type CustomerSummary struct {
	TotalCustomers  int64           `json:"totalCustomers"`
	ReceivableCount int64           `json:"receivableCount"`
	AdvanceCount    int64           `json:"advanceCount"`
	ZeroCount       int64           `json:"zeroCount"`
	TotalReceivable decimal.Decimal `json:"totalReceivable"`
	TotalAdvance    decimal.Decimal `json:"totalAdvance"`
	NetReceivable   decimal.Decimal `json:"netReceivable"`
}
