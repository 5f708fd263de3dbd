package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the DB row shape for the sales table.
type Sale struct {
	SaleID         string          `db:"sale_id"`
	Date           time.Time       `db:"date"`
	CustomerID     string          `db:"customer_id"`
	InvoiceNo      string          `db:"invoice_no"`
	Amount         decimal.Decimal `db:"amount"`
	ReceivedAmount decimal.Decimal `db:"received_amount"`
	Items          string          `db:"items"`
	Notes          string          `db:"notes"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`

	// Joined columns, populated by list queries.
	CustomerName    string `db:"customer_name"`
	CustomerContact string `db:"customer_contact"`
}
