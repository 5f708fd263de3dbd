package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier is the DB row shape for the suppliers table.
type Supplier struct {
	SupplierID string          `db:"supplier_id"`
	Name       string          `db:"name"`
	Contact    string          `db:"contact"`
	Address    string          `db:"address"`
	Balance    decimal.Decimal `db:"balance"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}
