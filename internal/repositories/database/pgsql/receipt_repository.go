package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopbooks/shopbooks_app/internal/apperrors"
	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	portsrepo "github.com/shopbooks/shopbooks_app/internal/core/ports/repositories"
	"github.com/shopbooks/shopbooks_app/internal/models"
	"github.com/shopspring/decimal"
)

type PgxReceiptRepository struct {
	BaseRepository
}

// newPgxReceiptRepository creates a new repository for receipt data.
func newPgxReceiptRepository(pool *pgxpool.Pool) portsrepo.ReceiptRepositoryFacade {
	return &PgxReceiptRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxReceiptRepository implements portsrepo.ReceiptRepositoryFacade
var _ portsrepo.ReceiptRepositoryFacade = (*PgxReceiptRepository)(nil)

func toModelReceipt(d domain.Receipt) models.Receipt {
	return models.Receipt{
		ReceiptID:   d.ReceiptID,
		Date:        d.Date,
		CustomerID:  d.CustomerID,
		SaleID:      d.SaleID,
		Amount:      d.Amount,
		PaymentMode: string(d.PaymentMode),
		ReferenceNo: d.ReferenceNo,
		Notes:       d.Notes,
		CreatedAt:   d.CreatedAt,
	}
}

func toDomainReceiptWithCustomer(m models.Receipt) domain.ReceiptWithCustomer {
	return domain.ReceiptWithCustomer{
		Receipt: domain.Receipt{
			ReceiptID:   m.ReceiptID,
			Date:        m.Date,
			CustomerID:  m.CustomerID,
			SaleID:      m.SaleID,
			Amount:      m.Amount,
			PaymentMode: domain.PaymentMode(m.PaymentMode),
			ReferenceNo: m.ReferenceNo,
			Notes:       m.Notes,
			CreatedAt:   m.CreatedAt,
		},
		CustomerName:    m.CustomerName,
		CustomerContact: m.CustomerContact,
		SaleInvoiceNo:   m.SaleInvoiceNo,
		SaleAmount:      m.SaleAmount,
	}
}

// receiptSelect is the shared projection for receipt reads, joined with the
// customer and, when linked, the collected sale.
const receiptSelect = `
	SELECT re.receipt_id, re.date, re.customer_id, re.sale_id, re.amount, re.payment_mode, re.reference_no, re.notes, re.created_at,
	       c.name AS customer_name, c.contact AS customer_contact,
	       COALESCE(sa.invoice_no, '') AS sale_invoice_no, sa.amount AS sale_amount
	FROM receipts re
	JOIN customers c ON c.customer_id = re.customer_id
	LEFT JOIN sales sa ON sa.sale_id = re.sale_id`

func scanReceiptRow(row pgx.Row) (*domain.ReceiptWithCustomer, error) {
	var m models.Receipt
	err := row.Scan(
		&m.ReceiptID,
		&m.Date,
		&m.CustomerID,
		&m.SaleID,
		&m.Amount,
		&m.PaymentMode,
		&m.ReferenceNo,
		&m.Notes,
		&m.CreatedAt,
		&m.CustomerName,
		&m.CustomerContact,
		&m.SaleInvoiceNo,
		&m.SaleAmount,
	)
	if err != nil {
		return nil, err
	}
	d := toDomainReceiptWithCustomer(m)
	return &d, nil
}

func collectReceipts(rows pgx.Rows) ([]domain.ReceiptWithCustomer, error) {
	defer rows.Close()
	receipts := []domain.ReceiptWithCustomer{}
	for rows.Next() {
		r, err := scanReceiptRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receipt row: %w", err)
		}
		receipts = append(receipts, *r)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating receipt rows: %w", rows.Err())
	}
	return receipts, nil
}

// collectSale locks the linked sale and shifts its received_amount by
// delta, re-checking the bounds under the row lock.
func collectSale(ctx context.Context, tx pgx.Tx, saleID string, customerID string, delta decimal.Decimal, now time.Time) error {
	var rowCustomerID string
	var amount, received decimal.Decimal
	err := tx.QueryRow(ctx, `SELECT customer_id, amount, received_amount FROM sales WHERE sale_id = $1 FOR UPDATE;`, saleID).Scan(&rowCustomerID, &amount, &received)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
		}
		return fmt.Errorf("failed to lock sale %s: %w", saleID, err)
	}
	if rowCustomerID != customerID {
		return fmt.Errorf("%w: sale %s belongs to a different customer", apperrors.ErrValidation, saleID)
	}

	newReceived := received.Add(delta)
	if newReceived.GreaterThan(amount) {
		return fmt.Errorf("%w: receipt exceeds outstanding balance %s of sale %s", apperrors.ErrValidation, amount.Sub(received), saleID)
	}
	if newReceived.IsNegative() {
		return fmt.Errorf("%w: settlement reversal would drive received amount of sale %s below zero", apperrors.ErrValidation, saleID)
	}

	_, err = tx.Exec(ctx, `UPDATE sales SET received_amount = received_amount + $2, updated_at = $3 WHERE sale_id = $1;`, saleID, delta, now)
	if err != nil {
		return fmt.Errorf("failed to collect sale %s: %w", saleID, err)
	}
	return nil
}

// SaveReceipt inserts a receipt, collects against the linked sale (if any)
// and adjusts the customer balance, all in one transaction.
func (r *PgxReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt, balanceDelta decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := receipt.CreatedAt
	if receipt.SaleID != nil {
		if err := collectSale(ctx, tx, *receipt.SaleID, receipt.CustomerID, receipt.Amount, now); err != nil {
			return err
		}
	}

	m := toModelReceipt(receipt)
	query := `
		INSERT INTO receipts (receipt_id, date, customer_id, sale_id, amount, payment_mode, reference_no, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, query,
		m.ReceiptID,
		m.Date,
		m.CustomerID,
		m.SaleID,
		m.Amount,
		m.PaymentMode,
		m.ReferenceNo,
		m.Notes,
		m.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return fmt.Errorf("%w: receipt %s already exists", apperrors.ErrConflict, m.ReceiptID)
			case "23503":
				return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, m.CustomerID)
			}
		}
		return fmt.Errorf("failed to save receipt %s: %w", m.ReceiptID, err)
	}

	if err := adjustCustomerBalance(ctx, tx, m.CustomerID, balanceDelta, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateReceipt rewrites a receipt row, shifts the linked sale's
// received_amount by settledDelta and adjusts the customer balance, all in
// one transaction.
func (r *PgxReceiptRepository) UpdateReceipt(ctx context.Context, receipt domain.Receipt, settledDelta, balanceDelta decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()
	if receipt.SaleID != nil && !settledDelta.IsZero() {
		if err := collectSale(ctx, tx, *receipt.SaleID, receipt.CustomerID, settledDelta, now); err != nil {
			return err
		}
	}

	m := toModelReceipt(receipt)
	query := `
		UPDATE receipts
		SET date = $2, amount = $3, payment_mode = $4, reference_no = $5, notes = $6
		WHERE receipt_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.ReceiptID,
		m.Date,
		m.Amount,
		m.PaymentMode,
		m.ReferenceNo,
		m.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update receipt %s: %w", m.ReceiptID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := adjustCustomerBalance(ctx, tx, m.CustomerID, balanceDelta, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteReceipt removes a receipt, reverses the linked sale's
// received_amount by settledDelta and restores the customer balance, all in
// one transaction.
func (r *PgxReceiptRepository) DeleteReceipt(ctx context.Context, receipt domain.Receipt, settledDelta, balanceDelta decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()
	if receipt.SaleID != nil && !settledDelta.IsZero() {
		if err := collectSale(ctx, tx, *receipt.SaleID, receipt.CustomerID, settledDelta, now); err != nil {
			return err
		}
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM receipts WHERE receipt_id = $1;`, receipt.ReceiptID)
	if err != nil {
		return fmt.Errorf("failed to delete receipt %s: %w", receipt.ReceiptID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := adjustCustomerBalance(ctx, tx, receipt.CustomerID, balanceDelta, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindReceiptByID retrieves a receipt with customer and linked sale details.
func (r *PgxReceiptRepository) FindReceiptByID(ctx context.Context, receiptID string) (*domain.ReceiptWithCustomer, error) {
	query := receiptSelect + ` WHERE re.receipt_id = $1;`

	rec, err := scanReceiptRow(r.Pool.QueryRow(ctx, query, receiptID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find receipt by ID %s: %w", receiptID, err)
	}
	return rec, nil
}

// ListReceipts retrieves a paginated list of receipts, newest first.
func (r *PgxReceiptRepository) ListReceipts(ctx context.Context, limit int, offset int) ([]domain.ReceiptWithCustomer, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := receiptSelect + ` ORDER BY re.date DESC, re.created_at DESC LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts: %w", err)
	}
	return collectReceipts(rows)
}

// ListReceiptsByCustomer retrieves receipts for one customer, newest first.
func (r *PgxReceiptRepository) ListReceiptsByCustomer(ctx context.Context, customerID string, limit int) ([]domain.ReceiptWithCustomer, error) {
	query := receiptSelect + ` WHERE re.customer_id = $1 ORDER BY re.date DESC, re.created_at DESC`
	if limit > 0 {
		query += ` LIMIT ` + strconv.Itoa(limit)
	}
	query += `;`

	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts of customer %s: %w", customerID, err)
	}
	return collectReceipts(rows)
}

// ListReceiptsByDateRange retrieves receipts dated within [from, to].
func (r *PgxReceiptRepository) ListReceiptsByDateRange(ctx context.Context, from, to time.Time) ([]domain.ReceiptWithCustomer, error) {
	query := receiptSelect + ` WHERE re.date >= $1 AND re.date <= $2 ORDER BY re.date DESC, re.created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts between %s and %s: %w", from.Format(time.DateOnly), to.Format(time.DateOnly), err)
	}
	return collectReceipts(rows)
}

// ListReceiptsByMode retrieves receipts settled with one instrument.
func (r *PgxReceiptRepository) ListReceiptsByMode(ctx context.Context, mode domain.PaymentMode) ([]domain.ReceiptWithCustomer, error) {
	query := receiptSelect + ` WHERE re.payment_mode = $1 ORDER BY re.date DESC, re.created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, string(mode))
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts by mode %q: %w", mode, err)
	}
	return collectReceipts(rows)
}

// GetReceiptSummary aggregates receipts into linked/advance buckets.
func (r *PgxReceiptRepository) GetReceiptSummary(ctx context.Context, from, to *time.Time) (*domain.ReceiptSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(amount), 0),
		       COUNT(*) FILTER (WHERE sale_id IS NOT NULL),
		       COUNT(*) FILTER (WHERE sale_id IS NULL),
		       COALESCE(SUM(amount) FILTER (WHERE sale_id IS NOT NULL), 0),
		       COALESCE(SUM(amount) FILTER (WHERE sale_id IS NULL), 0)
		FROM receipts`
	where, args := dateRangeClause("date", from, to)
	query += where + `;`

	var s domain.ReceiptSummary
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&s.TotalReceipts,
		&s.TotalAmount,
		&s.LinkedCount,
		&s.AdvanceCount,
		&s.LinkedAmount,
		&s.AdvanceAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate receipt summary: %w", err)
	}
	return &s, nil
}

// GetReceiptModeSummary groups receipt totals by instrument.
func (r *PgxReceiptRepository) GetReceiptModeSummary(ctx context.Context, from, to *time.Time) ([]domain.ModeSummary, error) {
	query := `SELECT payment_mode, COUNT(*), COALESCE(SUM(amount), 0) FROM receipts`
	where, args := dateRangeClause("date", from, to)
	query += where + ` GROUP BY payment_mode ORDER BY payment_mode;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate receipts by mode: %w", err)
	}
	return collectModeSummaries(rows)
}
