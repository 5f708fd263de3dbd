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

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func toModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:   d.PaymentID,
		Date:        d.Date,
		SupplierID:  d.SupplierID,
		PurchaseID:  d.PurchaseID,
		Amount:      d.Amount,
		PaymentMode: string(d.PaymentMode),
		ReferenceNo: d.ReferenceNo,
		Notes:       d.Notes,
		CreatedAt:   d.CreatedAt,
	}
}

func toDomainPaymentWithSupplier(m models.Payment) domain.PaymentWithSupplier {
	return domain.PaymentWithSupplier{
		Payment: domain.Payment{
			PaymentID:   m.PaymentID,
			Date:        m.Date,
			SupplierID:  m.SupplierID,
			PurchaseID:  m.PurchaseID,
			Amount:      m.Amount,
			PaymentMode: domain.PaymentMode(m.PaymentMode),
			ReferenceNo: m.ReferenceNo,
			Notes:       m.Notes,
			CreatedAt:   m.CreatedAt,
		},
		SupplierName:    m.SupplierName,
		SupplierContact: m.SupplierContact,
		PurchaseBillNo:  m.PurchaseBillNo,
		PurchaseAmount:  m.PurchaseAmount,
	}
}

// paymentSelect is the shared projection for payment reads, joined with the
// supplier and, when linked, the settled purchase.
const paymentSelect = `
	SELECT pay.payment_id, pay.date, pay.supplier_id, pay.purchase_id, pay.amount, pay.payment_mode, pay.reference_no, pay.notes, pay.created_at,
	       s.name AS supplier_name, s.contact AS supplier_contact,
	       COALESCE(p.bill_no, '') AS purchase_bill_no, p.amount AS purchase_amount
	FROM payments pay
	JOIN suppliers s ON s.supplier_id = pay.supplier_id
	LEFT JOIN purchases p ON p.purchase_id = pay.purchase_id`

func scanPaymentRow(row pgx.Row) (*domain.PaymentWithSupplier, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.Date,
		&m.SupplierID,
		&m.PurchaseID,
		&m.Amount,
		&m.PaymentMode,
		&m.ReferenceNo,
		&m.Notes,
		&m.CreatedAt,
		&m.SupplierName,
		&m.SupplierContact,
		&m.PurchaseBillNo,
		&m.PurchaseAmount,
	)
	if err != nil {
		return nil, err
	}
	d := toDomainPaymentWithSupplier(m)
	return &d, nil
}

func collectPayments(rows pgx.Rows) ([]domain.PaymentWithSupplier, error) {
	defer rows.Close()
	payments := []domain.PaymentWithSupplier{}
	for rows.Next() {
		p, err := scanPaymentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, *p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", rows.Err())
	}
	return payments, nil
}

// settlePurchase locks the linked purchase and shifts its paid_amount by
// delta. The bounds are re-checked under the row lock, so two payments
// racing for the same outstanding balance cannot both win.
func settlePurchase(ctx context.Context, tx pgx.Tx, purchaseID string, supplierID string, delta decimal.Decimal, now time.Time) error {
	var rowSupplierID string
	var amount, paid decimal.Decimal
	err := tx.QueryRow(ctx, `SELECT supplier_id, amount, paid_amount FROM purchases WHERE purchase_id = $1 FOR UPDATE;`, purchaseID).Scan(&rowSupplierID, &amount, &paid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: purchase %s", apperrors.ErrNotFound, purchaseID)
		}
		return fmt.Errorf("failed to lock purchase %s: %w", purchaseID, err)
	}
	if rowSupplierID != supplierID {
		return fmt.Errorf("%w: purchase %s belongs to a different supplier", apperrors.ErrValidation, purchaseID)
	}

	newPaid := paid.Add(delta)
	if newPaid.GreaterThan(amount) {
		return fmt.Errorf("%w: payment exceeds outstanding balance %s of purchase %s", apperrors.ErrValidation, amount.Sub(paid), purchaseID)
	}
	if newPaid.IsNegative() {
		return fmt.Errorf("%w: settlement reversal would drive paid amount of purchase %s below zero", apperrors.ErrValidation, purchaseID)
	}

	_, err = tx.Exec(ctx, `UPDATE purchases SET paid_amount = paid_amount + $2, updated_at = $3 WHERE purchase_id = $1;`, purchaseID, delta, now)
	if err != nil {
		return fmt.Errorf("failed to settle purchase %s: %w", purchaseID, err)
	}
	return nil
}

// SavePayment inserts a payment, settles the linked purchase (if any) and
// adjusts the supplier balance, all in one transaction.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, balanceDelta decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := payment.CreatedAt
	if payment.PurchaseID != nil {
		if err := settlePurchase(ctx, tx, *payment.PurchaseID, payment.SupplierID, payment.Amount, now); err != nil {
			return err
		}
	}

	m := toModelPayment(payment)
	query := `
		INSERT INTO payments (payment_id, date, supplier_id, purchase_id, amount, payment_mode, reference_no, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, query,
		m.PaymentID,
		m.Date,
		m.SupplierID,
		m.PurchaseID,
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
				return fmt.Errorf("%w: payment %s already exists", apperrors.ErrConflict, m.PaymentID)
			case "23503":
				return fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, m.SupplierID)
			}
		}
		return fmt.Errorf("failed to save payment %s: %w", m.PaymentID, err)
	}

	if err := adjustSupplierBalance(ctx, tx, m.SupplierID, balanceDelta, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdatePayment rewrites a payment row, shifts the linked purchase's
// paid_amount by settledDelta and adjusts the supplier balance, all in one
// transaction.
func (r *PgxPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment, settledDelta, balanceDelta decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()
	if payment.PurchaseID != nil && !settledDelta.IsZero() {
		if err := settlePurchase(ctx, tx, *payment.PurchaseID, payment.SupplierID, settledDelta, now); err != nil {
			return err
		}
	}

	m := toModelPayment(payment)
	query := `
		UPDATE payments
		SET date = $2, amount = $3, payment_mode = $4, reference_no = $5, notes = $6
		WHERE payment_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.PaymentID,
		m.Date,
		m.Amount,
		m.PaymentMode,
		m.ReferenceNo,
		m.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %w", m.PaymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := adjustSupplierBalance(ctx, tx, m.SupplierID, balanceDelta, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeletePayment removes a payment, reverses the linked purchase's
// paid_amount by settledDelta and restores the supplier balance, all in one
// transaction.
func (r *PgxPaymentRepository) DeletePayment(ctx context.Context, payment domain.Payment, settledDelta, balanceDelta decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()
	if payment.PurchaseID != nil && !settledDelta.IsZero() {
		if err := settlePurchase(ctx, tx, *payment.PurchaseID, payment.SupplierID, settledDelta, now); err != nil {
			return err
		}
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM payments WHERE payment_id = $1;`, payment.PaymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment %s: %w", payment.PaymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := adjustSupplierBalance(ctx, tx, payment.SupplierID, balanceDelta, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindPaymentByID retrieves a payment with supplier and linked purchase
// details.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentWithSupplier, error) {
	query := paymentSelect + ` WHERE pay.payment_id = $1;`

	p, err := scanPaymentRow(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}
	return p, nil
}

// ListPayments retrieves a paginated list of payments, newest first.
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, limit int, offset int) ([]domain.PaymentWithSupplier, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := paymentSelect + ` ORDER BY pay.date DESC, pay.created_at DESC LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	return collectPayments(rows)
}

// ListPaymentsBySupplier retrieves payments for one supplier, newest first.
func (r *PgxPaymentRepository) ListPaymentsBySupplier(ctx context.Context, supplierID string, limit int) ([]domain.PaymentWithSupplier, error) {
	query := paymentSelect + ` WHERE pay.supplier_id = $1 ORDER BY pay.date DESC, pay.created_at DESC`
	if limit > 0 {
		query += ` LIMIT ` + strconv.Itoa(limit)
	}
	query += `;`

	rows, err := r.Pool.Query(ctx, query, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments of supplier %s: %w", supplierID, err)
	}
	return collectPayments(rows)
}

// ListPaymentsByDateRange retrieves payments dated within [from, to].
func (r *PgxPaymentRepository) ListPaymentsByDateRange(ctx context.Context, from, to time.Time) ([]domain.PaymentWithSupplier, error) {
	query := paymentSelect + ` WHERE pay.date >= $1 AND pay.date <= $2 ORDER BY pay.date DESC, pay.created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments between %s and %s: %w", from.Format(time.DateOnly), to.Format(time.DateOnly), err)
	}
	return collectPayments(rows)
}

// ListPaymentsByMode retrieves payments settled with one instrument.
func (r *PgxPaymentRepository) ListPaymentsByMode(ctx context.Context, mode domain.PaymentMode) ([]domain.PaymentWithSupplier, error) {
	query := paymentSelect + ` WHERE pay.payment_mode = $1 ORDER BY pay.date DESC, pay.created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, string(mode))
	if err != nil {
		return nil, fmt.Errorf("failed to query payments by mode %q: %w", mode, err)
	}
	return collectPayments(rows)
}

// GetPaymentSummary aggregates payments into linked/advance buckets.
func (r *PgxPaymentRepository) GetPaymentSummary(ctx context.Context, from, to *time.Time) (*domain.PaymentSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(amount), 0),
		       COUNT(*) FILTER (WHERE purchase_id IS NOT NULL),
		       COUNT(*) FILTER (WHERE purchase_id IS NULL),
		       COALESCE(SUM(amount) FILTER (WHERE purchase_id IS NOT NULL), 0),
		       COALESCE(SUM(amount) FILTER (WHERE purchase_id IS NULL), 0)
		FROM payments`
	where, args := dateRangeClause("date", from, to)
	query += where + `;`

	var s domain.PaymentSummary
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&s.TotalPayments,
		&s.TotalAmount,
		&s.LinkedCount,
		&s.AdvanceCount,
		&s.LinkedAmount,
		&s.AdvanceAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate payment summary: %w", err)
	}
	return &s, nil
}

// GetPaymentModeSummary groups payment totals by instrument.
func (r *PgxPaymentRepository) GetPaymentModeSummary(ctx context.Context, from, to *time.Time) ([]domain.ModeSummary, error) {
	query := `SELECT payment_mode, COUNT(*), COALESCE(SUM(amount), 0) FROM payments`
	where, args := dateRangeClause("date", from, to)
	query += where + ` GROUP BY payment_mode ORDER BY payment_mode;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate payments by mode: %w", err)
	}
	return collectModeSummaries(rows)
}

func collectModeSummaries(rows pgx.Rows) ([]domain.ModeSummary, error) {
	defer rows.Close()
	summaries := []domain.ModeSummary{}
	for rows.Next() {
		var s domain.ModeSummary
		if err := rows.Scan(&s.PaymentMode, &s.Count, &s.TotalAmount); err != nil {
			return nil, fmt.Errorf("failed to scan mode summary row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating mode summary rows: %w", rows.Err())
	}
	return summaries, nil
}
