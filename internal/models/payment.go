package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the DB row shape for the payments table.
type Payment struct {
	PaymentID   string          `db:"payment_id"`
	Date        time.Time       `db:"date"`
	SupplierID  string          `db:"supplier_id"`
	PurchaseID  *string         `db:"purchase_id"`
	Amount      decimal.Decimal `db:"amount"`
	PaymentMode string          `db:"payment_mode"`
	ReferenceNo string          `db:"reference_no"`
	Notes       string          `db:"notes"`
	CreatedAt   time.Time       `db:"created_at"`

	// Joined columns, populated by list queries.
	SupplierName    string           `db:"supplier_name"`
	SupplierContact string           `db:"supplier_contact"`
	PurchaseBillNo  string           `db:"purchase_bill_no"`
	PurchaseAmount  *decimal.Decimal `db:"purchase_amount"`
}
