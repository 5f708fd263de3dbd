package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopbooks/shopbooks_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// adjustSupplierBalance locks the supplier row and shifts its running
// balance by delta within the caller's transaction. The lock doubles as an
// existence check, so a missing supplier surfaces as ErrNotFound before
// any dependent row is written.
func adjustSupplierBalance(ctx context.Context, tx pgx.Tx, supplierID string, delta decimal.Decimal, now time.Time) error {
	var balance decimal.Decimal
	err := tx.QueryRow(ctx, `SELECT balance FROM suppliers WHERE supplier_id = $1 FOR UPDATE;`, supplierID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, supplierID)
		}
		return fmt.Errorf("failed to lock supplier %s: %w", supplierID, err)
	}

	_, err = tx.Exec(ctx, `UPDATE suppliers SET balance = balance + $2, updated_at = $3 WHERE supplier_id = $1;`, supplierID, delta, now)
	if err != nil {
		return fmt.Errorf("failed to adjust balance of supplier %s: %w", supplierID, err)
	}
	return nil
}

// adjustCustomerBalance is the customer-side twin of adjustSupplierBalance.
func adjustCustomerBalance(ctx context.Context, tx pgx.Tx, customerID string, delta decimal.Decimal, now time.Time) error {
	var balance decimal.Decimal
	err := tx.QueryRow(ctx, `SELECT balance FROM customers WHERE customer_id = $1 FOR UPDATE;`, customerID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
		}
		return fmt.Errorf("failed to lock customer %s: %w", customerID, err)
	}

	_, err = tx.Exec(ctx, `UPDATE customers SET balance = balance + $2, updated_at = $3 WHERE customer_id = $1;`, customerID, delta, now)
	if err != nil {
		return fmt.Errorf("failed to adjust balance of customer %s: %w", customerID, err)
	}
	return nil
}
