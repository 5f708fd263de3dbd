package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
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

type PgxPurchaseRepository struct {
	BaseRepository
}

// newPgxPurchaseRepository creates a new repository for purchase data.
func newPgxPurchaseRepository(pool *pgxpool.Pool) portsrepo.PurchaseRepositoryFacade {
	return &PgxPurchaseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPurchaseRepository implements portsrepo.PurchaseRepositoryFacade
var _ portsrepo.PurchaseRepositoryFacade = (*PgxPurchaseRepository)(nil)

func toModelPurchase(d domain.Purchase) models.Purchase {
	return models.Purchase{
		PurchaseID: d.PurchaseID,
		Date:       d.Date,
		SupplierID: d.SupplierID,
		BillNo:     d.BillNo,
		Amount:     d.Amount,
		PaidAmount: d.PaidAmount,
		Items:      d.Items,
		Notes:      d.Notes,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func toDomainPurchaseWithSupplier(m models.Purchase) domain.PurchaseWithSupplier {
	return domain.PurchaseWithSupplier{
		Purchase: domain.Purchase{
			PurchaseID: m.PurchaseID,
			Date:       m.Date,
			SupplierID: m.SupplierID,
			BillNo:     m.BillNo,
			Amount:     m.Amount,
			PaidAmount: m.PaidAmount,
			Items:      m.Items,
			Notes:      m.Notes,
			Timestamps: domain.Timestamps{
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
		},
		SupplierName:    m.SupplierName,
		SupplierContact: m.SupplierContact,
	}
}

// purchaseSelect is the shared projection for purchase reads, joined with
// the owning supplier.
const purchaseSelect = `
	SELECT p.purchase_id, p.date, p.supplier_id, p.bill_no, p.amount, p.paid_amount, p.items, p.notes, p.created_at, p.updated_at,
	       s.name AS supplier_name, s.contact AS supplier_contact
	FROM purchases p
	JOIN suppliers s ON s.supplier_id = p.supplier_id`

func scanPurchaseRow(row pgx.Row) (*domain.PurchaseWithSupplier, error) {
	var m models.Purchase
	err := row.Scan(
		&m.PurchaseID,
		&m.Date,
		&m.SupplierID,
		&m.BillNo,
		&m.Amount,
		&m.PaidAmount,
		&m.Items,
		&m.Notes,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.SupplierName,
		&m.SupplierContact,
	)
	if err != nil {
		return nil, err
	}
	d := toDomainPurchaseWithSupplier(m)
	return &d, nil
}

func collectPurchases(rows pgx.Rows) ([]domain.PurchaseWithSupplier, error) {
	defer rows.Close()
	purchases := []domain.PurchaseWithSupplier{}
	for rows.Next() {
		p, err := scanPurchaseRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase row: %w", err)
		}
		purchases = append(purchases, *p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating purchase rows: %w", rows.Err())
	}
	return purchases, nil
}

// SavePurchase inserts a purchase and applies the supplier balance delta in
// one transaction, so a failed insert can never move the balance.
func (r *PgxPurchaseRepository) SavePurchase(ctx context.Context, purchase domain.Purchase, balanceDelta decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := toModelPurchase(purchase)
	query := `
		INSERT INTO purchases (purchase_id, date, supplier_id, bill_no, amount, paid_amount, items, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, query,
		m.PurchaseID,
		m.Date,
		m.SupplierID,
		m.BillNo,
		m.Amount,
		m.PaidAmount,
		m.Items,
		m.Notes,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique violation
				return fmt.Errorf("%w: purchase %s already exists", apperrors.ErrConflict, m.PurchaseID)
			case "23503": // FK violation on supplier_id
				return fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, m.SupplierID)
			}
		}
		return fmt.Errorf("failed to save purchase %s: %w", m.PurchaseID, err)
	}

	if err := adjustSupplierBalance(ctx, tx, m.SupplierID, balanceDelta, m.UpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdatePurchase rewrites a purchase row and applies one balance delta per
// affected supplier. Suppliers are locked in a deterministic order to keep
// concurrent updates deadlock-free.
func (r *PgxPurchaseRepository) UpdatePurchase(ctx context.Context, purchase domain.Purchase, balanceDeltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := toModelPurchase(purchase)
	query := `
		UPDATE purchases
		SET date = $2, supplier_id = $3, bill_no = $4, amount = $5, paid_amount = $6, items = $7, notes = $8, updated_at = $9
		WHERE purchase_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.PurchaseID,
		m.Date,
		m.SupplierID,
		m.BillNo,
		m.Amount,
		m.PaidAmount,
		m.Items,
		m.Notes,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, m.SupplierID)
		}
		return fmt.Errorf("failed to update purchase %s: %w", m.PurchaseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	supplierIDs := make([]string, 0, len(balanceDeltas))
	for id := range balanceDeltas {
		supplierIDs = append(supplierIDs, id)
	}
	sort.Strings(supplierIDs)
	for _, id := range supplierIDs {
		if err := adjustSupplierBalance(ctx, tx, id, balanceDeltas[id], m.UpdatedAt); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// DeletePurchase removes a purchase without linked payments and reverses
// its effect on the supplier balance.
func (r *PgxPurchaseRepository) DeletePurchase(ctx context.Context, purchaseID string, supplierID string, balanceDelta decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var hasPayments bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM payments WHERE purchase_id = $1);`, purchaseID).Scan(&hasPayments)
	if err != nil {
		return fmt.Errorf("failed to check payments of purchase %s: %w", purchaseID, err)
	}
	if hasPayments {
		return fmt.Errorf("%w: purchase %s has linked payments", apperrors.ErrConflict, purchaseID)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM purchases WHERE purchase_id = $1;`, purchaseID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: purchase %s has linked payments", apperrors.ErrConflict, purchaseID)
		}
		return fmt.Errorf("failed to delete purchase %s: %w", purchaseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := adjustSupplierBalance(ctx, tx, supplierID, balanceDelta, time.Now().UTC()); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindPurchaseByID retrieves a purchase with supplier details.
func (r *PgxPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.PurchaseWithSupplier, error) {
	query := purchaseSelect + ` WHERE p.purchase_id = $1;`

	p, err := scanPurchaseRow(r.Pool.QueryRow(ctx, query, purchaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase by ID %s: %w", purchaseID, err)
	}
	return p, nil
}

// ListPurchases retrieves a paginated list of purchases, newest first.
func (r *PgxPurchaseRepository) ListPurchases(ctx context.Context, limit int, offset int) ([]domain.PurchaseWithSupplier, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := purchaseSelect + ` ORDER BY p.date DESC, p.created_at DESC LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	return collectPurchases(rows)
}

// ListPurchasesBySupplier retrieves purchases for one supplier, newest first.
func (r *PgxPurchaseRepository) ListPurchasesBySupplier(ctx context.Context, supplierID string, limit int) ([]domain.PurchaseWithSupplier, error) {
	query := purchaseSelect + ` WHERE p.supplier_id = $1 ORDER BY p.date DESC, p.created_at DESC`
	if limit > 0 {
		query += ` LIMIT ` + strconv.Itoa(limit)
	}
	query += `;`

	rows, err := r.Pool.Query(ctx, query, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases of supplier %s: %w", supplierID, err)
	}
	return collectPurchases(rows)
}

// ListPurchasesByDateRange retrieves purchases dated within [from, to].
func (r *PgxPurchaseRepository) ListPurchasesByDateRange(ctx context.Context, from, to time.Time) ([]domain.PurchaseWithSupplier, error) {
	query := purchaseSelect + ` WHERE p.date >= $1 AND p.date <= $2 ORDER BY p.date DESC, p.created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases between %s and %s: %w", from.Format(time.DateOnly), to.Format(time.DateOnly), err)
	}
	return collectPurchases(rows)
}

// ListOutstandingPurchases retrieves purchases with an unsettled portion,
// oldest first so settlements target the oldest debt.
func (r *PgxPurchaseRepository) ListOutstandingPurchases(ctx context.Context, supplierID string) ([]domain.PurchaseWithSupplier, error) {
	query := purchaseSelect + ` WHERE p.amount > p.paid_amount`
	args := []any{}
	if supplierID != "" {
		query += ` AND p.supplier_id = $1`
		args = append(args, supplierID)
	}
	query += ` ORDER BY p.date ASC, p.created_at ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query outstanding purchases: %w", err)
	}
	return collectPurchases(rows)
}

// ListPurchasePayments retrieves the payments linked to one purchase,
// oldest first.
func (r *PgxPurchaseRepository) ListPurchasePayments(ctx context.Context, purchaseID string) ([]domain.PaymentWithSupplier, error) {
	query := paymentSelect + ` WHERE pay.purchase_id = $1 ORDER BY pay.date ASC, pay.created_at ASC;`

	rows, err := r.Pool.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments of purchase %s: %w", purchaseID, err)
	}
	return collectPayments(rows)
}

// GetPurchaseSummary aggregates purchases into paid/partial/unpaid buckets.
func (r *PgxPurchaseRepository) GetPurchaseSummary(ctx context.Context, from, to *time.Time) (*domain.PurchaseSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(amount), 0),
		       COALESCE(SUM(paid_amount), 0),
		       COALESCE(SUM(amount - paid_amount), 0),
		       COUNT(*) FILTER (WHERE paid_amount >= amount),
		       COUNT(*) FILTER (WHERE paid_amount > 0 AND paid_amount < amount),
		       COUNT(*) FILTER (WHERE paid_amount = 0)
		FROM purchases`
	where, args := dateRangeClause("date", from, to)
	query += where + `;`

	var s domain.PurchaseSummary
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&s.TotalPurchases,
		&s.TotalAmount,
		&s.TotalPaid,
		&s.TotalOutstanding,
		&s.PaidCount,
		&s.PartialCount,
		&s.UnpaidCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate purchase summary: %w", err)
	}
	return &s, nil
}

// dateRangeClause builds an optional WHERE clause for the open-ended date
// bounds the summary queries accept.
func dateRangeClause(column string, from, to *time.Time) (string, []any) {
	conds := ""
	args := []any{}
	add := func(op string, t time.Time) {
		if conds == "" {
			conds = ` WHERE `
		} else {
			conds += ` AND `
		}
		args = append(args, t)
		conds += column + ` ` + op + ` $` + strconv.Itoa(len(args))
	}
	if from != nil {
		add(">=", *from)
	}
	if to != nil {
		add("<=", *to)
	}
	return conds, args
}
