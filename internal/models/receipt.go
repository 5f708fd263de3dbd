package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the DB row shape for the receipts table.
type Receipt struct {
	ReceiptID   string          `db:"receipt_id"`
	Date        time.Time       `db:"date"`
	CustomerID  string          `db:"customer_id"`
	SaleID      *string         `db:"sale_id"`
	Amount      decimal.Decimal `db:"amount"`
	PaymentMode string          `db:"payment_mode"`
	ReferenceNo string          `db:"reference_no"`
	Notes       string          `db:"notes"`
	CreatedAt   time.Time       `db:"created_at"`

	// Joined columns, populated by list queries.
	CustomerName    string           `db:"customer_name"`
	CustomerContact string           `db:"customer_contact"`
	SaleInvoiceNo   string           `db:"sale_invoice_no"`
	SaleAmount      *decimal.Decimal `db:"sale_amount"`
}
