package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopbooks/shopbooks_app/internal/apperrors"
	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	portsrepo "github.com/shopbooks/shopbooks_app/internal/core/ports/repositories"
	"github.com/shopbooks/shopbooks_app/internal/models"
	"github.com/shopbooks/shopbooks_app/internal/utils/accounting"
)

type PgxSupplierRepository struct {
	BaseRepository
}

// newPgxSupplierRepository creates a new repository for supplier data.
func newPgxSupplierRepository(pool *pgxpool.Pool) portsrepo.SupplierRepositoryFacade {
	return &PgxSupplierRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSupplierRepository implements portsrepo.SupplierRepositoryFacade
var _ portsrepo.SupplierRepositoryFacade = (*PgxSupplierRepository)(nil)

// Helper to convert domain.Supplier to models.Supplier for DB storage
func toModelSupplier(d domain.Supplier) models.Supplier {
	return models.Supplier{
		SupplierID: d.SupplierID,
		Name:       d.Name,
		Contact:    d.Contact,
		Address:    d.Address,
		Balance:    d.Balance,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// Helper to convert models.Supplier from DB to domain.Supplier
func toDomainSupplier(m models.Supplier) domain.Supplier {
	return domain.Supplier{
		SupplierID: m.SupplierID,
		Name:       m.Name,
		Contact:    m.Contact,
		Address:    m.Address,
		Balance:    m.Balance,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

const supplierColumns = `supplier_id, name, contact, address, balance, created_at, updated_at`

// supplierTotalsSelect joins each supplier with its lifetime purchase and
// payment aggregates via correlated subqueries.
const supplierTotalsSelect = `
	SELECT s.supplier_id, s.name, s.contact, s.address, s.balance, s.created_at, s.updated_at,
	       (SELECT COUNT(*) FROM purchases p WHERE p.supplier_id = s.supplier_id) AS total_purchases,
	       (SELECT COALESCE(SUM(p.amount), 0) FROM purchases p WHERE p.supplier_id = s.supplier_id) AS total_purchase_amount,
	       (SELECT COALESCE(SUM(p.paid_amount), 0) FROM purchases p WHERE p.supplier_id = s.supplier_id) AS total_paid_amount,
	       (SELECT COUNT(*) FROM payments pay WHERE pay.supplier_id = s.supplier_id) AS total_payments
	FROM suppliers s`

func scanSupplierWithTotals(row pgx.Row) (*domain.SupplierWithTotals, error) {
	var m models.Supplier
	var s domain.SupplierWithTotals
	err := row.Scan(
		&m.SupplierID,
		&m.Name,
		&m.Contact,
		&m.Address,
		&m.Balance,
		&m.CreatedAt,
		&m.UpdatedAt,
		&s.TotalPurchases,
		&s.TotalPurchaseAmount,
		&s.TotalPaidAmount,
		&s.TotalPayments,
	)
	if err != nil {
		return nil, err
	}
	s.Supplier = toDomainSupplier(m)
	return &s, nil
}

func collectSuppliersWithTotals(rows pgx.Rows) ([]domain.SupplierWithTotals, error) {
	defer rows.Close()
	suppliers := []domain.SupplierWithTotals{}
	for rows.Next() {
		s, err := scanSupplierWithTotals(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier row: %w", err)
		}
		suppliers = append(suppliers, *s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating supplier rows: %w", rows.Err())
	}
	return suppliers, nil
}

// SaveSupplier inserts a new supplier.
func (r *PgxSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	m := toModelSupplier(supplier)

	query := `
		INSERT INTO suppliers (supplier_id, name, contact, address, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SupplierID,
		m.Name,
		m.Contact,
		m.Address,
		m.Balance,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: supplier named %q already exists", apperrors.ErrConflict, m.Name)
		}
		return fmt.Errorf("failed to save supplier %s: %w", m.SupplierID, err)
	}
	return nil
}

// FindSupplierByID retrieves a supplier by its ID.
func (r *PgxSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE supplier_id = $1;`

	var m models.Supplier
	err := r.Pool.QueryRow(ctx, query, supplierID).Scan(
		&m.SupplierID,
		&m.Name,
		&m.Contact,
		&m.Address,
		&m.Balance,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find supplier by ID %s: %w", supplierID, err)
	}

	d := toDomainSupplier(m)
	return &d, nil
}

// FindSupplierByName retrieves a supplier by exact name match.
func (r *PgxSupplierRepository) FindSupplierByName(ctx context.Context, name string) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE name = $1;`

	var m models.Supplier
	err := r.Pool.QueryRow(ctx, query, name).Scan(
		&m.SupplierID,
		&m.Name,
		&m.Contact,
		&m.Address,
		&m.Balance,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find supplier by name %q: %w", name, err)
	}

	d := toDomainSupplier(m)
	return &d, nil
}

// FindSupplierWithTotals retrieves a supplier joined with purchase and
// payment aggregates.
func (r *PgxSupplierRepository) FindSupplierWithTotals(ctx context.Context, supplierID string) (*domain.SupplierWithTotals, error) {
	query := supplierTotalsSelect + ` WHERE s.supplier_id = $1;`

	s, err := scanSupplierWithTotals(r.Pool.QueryRow(ctx, query, supplierID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find supplier %s with totals: %w", supplierID, err)
	}
	return s, nil
}

// ListSuppliers retrieves a paginated list of suppliers with totals.
func (r *PgxSupplierRepository) ListSuppliers(ctx context.Context, limit int, offset int) ([]domain.SupplierWithTotals, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := supplierTotalsSelect + ` ORDER BY s.name LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	return collectSuppliersWithTotals(rows)
}

// SearchSuppliers performs a case-insensitive substring match on name or contact.
func (r *PgxSupplierRepository) SearchSuppliers(ctx context.Context, query string, limit int) ([]domain.SupplierWithTotals, error) {
	if limit <= 0 {
		limit = 100
	}

	sqlQuery := supplierTotalsSelect + `
	WHERE s.name ILIKE '%' || $1 || '%' OR s.contact ILIKE '%' || $1 || '%'
	ORDER BY s.name LIMIT $2;`

	rows, err := r.Pool.Query(ctx, sqlQuery, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search suppliers for %q: %w", query, err)
	}
	return collectSuppliersWithTotals(rows)
}

// ListSuppliersByBalance retrieves suppliers filtered by balance sign.
func (r *PgxSupplierRepository) ListSuppliersByBalance(ctx context.Context, filter domain.BalanceFilter) ([]domain.SupplierWithTotals, error) {
	query := supplierTotalsSelect
	switch filter {
	case domain.BalancePayable:
		query += ` WHERE s.balance > 0`
	case domain.BalanceAdvance:
		query += ` WHERE s.balance < 0`
	case domain.BalanceZero:
		query += ` WHERE s.balance = 0`
	case domain.BalanceAll:
		// no filter
	default:
		return nil, fmt.Errorf("%w: unknown balance filter %q", apperrors.ErrValidation, filter)
	}
	query += ` ORDER BY s.name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers by balance %q: %w", filter, err)
	}
	return collectSuppliersWithTotals(rows)
}

// GetSupplierTransactions retrieves the merged, date-sorted feed of purchases
// and payments for a supplier.
func (r *PgxSupplierRepository) GetSupplierTransactions(ctx context.Context, supplierID string, limit int) ([]domain.TransactionEntry, error) {
	query := `
		SELECT 'purchase' AS entry_type, p.purchase_id AS entry_id, p.date, p.bill_no AS reference,
		       p.items, p.amount, p.paid_amount AS settled_amount, p.notes, p.created_at
		FROM purchases p
		WHERE p.supplier_id = $1
		UNION ALL
		SELECT 'payment', pay.payment_id, pay.date, pay.reference_no,
		       '', pay.amount, pay.amount, pay.notes, pay.created_at
		FROM payments pay
		WHERE pay.supplier_id = $1
		ORDER BY date DESC, created_at DESC`
	if limit > 0 {
		query += ` LIMIT ` + strconv.Itoa(limit)
	}
	query += `;`

	rows, err := r.Pool.Query(ctx, query, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions of supplier %s: %w", supplierID, err)
	}
	return collectTransactionEntries(rows)
}

// collectTransactionEntries scans a merged purchase/payment (or
// sale/receipt) feed. Settlement rows carry their own amount as the settled
// portion and therefore always read as fully paid.
func collectTransactionEntries(rows pgx.Rows) ([]domain.TransactionEntry, error) {
	defer rows.Close()
	entries := []domain.TransactionEntry{}
	for rows.Next() {
		var e domain.TransactionEntry
		err := rows.Scan(
			&e.EntryType,
			&e.EntryID,
			&e.Date,
			&e.Reference,
			&e.Items,
			&e.Amount,
			&e.SettledAmount,
			&e.Notes,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction entry: %w", err)
		}
		e.Outstanding = accounting.Outstanding(e.Amount, e.SettledAmount)
		e.PaymentStatus = accounting.StatusFor(e.Amount, e.SettledAmount)
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction entries: %w", rows.Err())
	}
	return entries, nil
}

// GetSupplierSummary aggregates suppliers by balance sign.
func (r *PgxSupplierRepository) GetSupplierSummary(ctx context.Context) (*domain.SupplierSummary, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE balance > 0),
		       COUNT(*) FILTER (WHERE balance < 0),
		       COUNT(*) FILTER (WHERE balance = 0),
		       COALESCE(SUM(balance) FILTER (WHERE balance > 0), 0),
		       COALESCE(SUM(-balance) FILTER (WHERE balance < 0), 0),
		       COALESCE(SUM(balance), 0)
		FROM suppliers;
	`
	var s domain.SupplierSummary
	err := r.Pool.QueryRow(ctx, query).Scan(
		&s.TotalSuppliers,
		&s.PayableCount,
		&s.AdvanceCount,
		&s.ZeroCount,
		&s.TotalPayable,
		&s.TotalAdvance,
		&s.NetPayable,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate supplier summary: %w", err)
	}
	return &s, nil
}

// UpdateSupplier updates an existing supplier's details. The balance column
// is deliberately left alone; only the balance maintenance code paths touch it.
func (r *PgxSupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $2, contact = $3, address = $4, updated_at = $5
		WHERE supplier_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		supplier.SupplierID,
		supplier.Name,
		supplier.Contact,
		supplier.Address,
		supplier.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: supplier named %q already exists", apperrors.ErrConflict, supplier.Name)
		}
		return fmt.Errorf("failed to update supplier %s: %w", supplier.SupplierID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteSupplier removes a supplier that has no recorded purchases or
// payments. The FK constraints back this check, so a race still fails the
// delete instead of orphaning rows.
func (r *PgxSupplierRepository) DeleteSupplier(ctx context.Context, supplierID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var hasRecords bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM purchases WHERE supplier_id = $1)
		    OR EXISTS (SELECT 1 FROM payments WHERE supplier_id = $1);
	`, supplierID).Scan(&hasRecords)
	if err != nil {
		return fmt.Errorf("failed to check records of supplier %s: %w", supplierID, err)
	}
	if hasRecords {
		return fmt.Errorf("%w: supplier %s has recorded purchases or payments", apperrors.ErrConflict, supplierID)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM suppliers WHERE supplier_id = $1;`, supplierID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // FK violation
			return fmt.Errorf("%w: supplier %s has recorded purchases or payments", apperrors.ErrConflict, supplierID)
		}
		return fmt.Errorf("failed to delete supplier %s: %w", supplierID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
