package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is the DB row shape for the purchases table.
type Purchase struct {
	PurchaseID string          `db:"purchase_id"`
	Date       time.Time       `db:"date"`
	SupplierID string          `db:"supplier_id"`
	BillNo     string          `db:"bill_no"`
	Amount     decimal.Decimal `db:"amount"`
	PaidAmount decimal.Decimal `db:"paid_amount"`
	Items      string          `db:"items"`
	Notes      string          `db:"notes"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`

	// Joined columns, populated by list queries.
	SupplierName    string `db:"supplier_name"`
	SupplierContact string `db:"supplier_contact"`
}
