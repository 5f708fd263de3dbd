package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is the DB row shape for the customers table.
type Customer struct {
	CustomerID string          `db:"customer_id"`
	Name       string          `db:"name"`
	Contact    string          `db:"contact"`
	Address    string          `db:"address"`
	Balance    decimal.Decimal `db:"balance"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}
