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

type PgxSaleRepository struct {
	BaseRepository
}

// newPgxSaleRepository creates a new repository for sale data.
func newPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSaleRepository implements portsrepo.SaleRepositoryFacade
var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

func toModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:         d.SaleID,
		Date:           d.Date,
		CustomerID:     d.CustomerID,
		InvoiceNo:      d.InvoiceNo,
		Amount:         d.Amount,
		ReceivedAmount: d.ReceivedAmount,
		Items:          d.Items,
		Notes:          d.Notes,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func toDomainSaleWithCustomer(m models.Sale) domain.SaleWithCustomer {
	return domain.SaleWithCustomer{
		Sale: domain.Sale{
			SaleID:         m.SaleID,
			Date:           m.Date,
			CustomerID:     m.CustomerID,
			InvoiceNo:      m.InvoiceNo,
			Amount:         m.Amount,
			ReceivedAmount: m.ReceivedAmount,
			Items:          m.Items,
			Notes:          m.Notes,
			Timestamps: domain.Timestamps{
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
		},
		CustomerName:    m.CustomerName,
		CustomerContact: m.CustomerContact,
	}
}

// saleSelect is the shared projection for sale reads, joined with the
// owning customer.
const saleSelect = `
	SELECT sa.sale_id, sa.date, sa.customer_id, sa.invoice_no, sa.amount, sa.received_amount, sa.items, sa.notes, sa.created_at, sa.updated_at,
	       c.name AS customer_name, c.contact AS customer_contact
	FROM sales sa
	JOIN customers c ON c.customer_id = sa.customer_id`

func scanSaleRow(row pgx.Row) (*domain.SaleWithCustomer, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.Date,
		&m.CustomerID,
		&m.InvoiceNo,
		&m.Amount,
		&m.ReceivedAmount,
		&m.Items,
		&m.Notes,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.CustomerName,
		&m.CustomerContact,
	)
	if err != nil {
		return nil, err
	}
	d := toDomainSaleWithCustomer(m)
	return &d, nil
}

func collectSales(rows pgx.Rows) ([]domain.SaleWithCustomer, error) {
	defer rows.Close()
	sales := []domain.SaleWithCustomer{}
	for rows.Next() {
		s, err := scanSaleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale row: %w", err)
		}
		sales = append(sales, *s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating sale rows: %w", rows.Err())
	}
	return sales, nil
}

// SaveSale inserts a sale and applies the customer balance delta in one
// transaction.
func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.Sale, balanceDelta decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := toModelSale(sale)
	query := `
		INSERT INTO sales (sale_id, date, customer_id, invoice_no, amount, received_amount, items, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, query,
		m.SaleID,
		m.Date,
		m.CustomerID,
		m.InvoiceNo,
		m.Amount,
		m.ReceivedAmount,
		m.Items,
		m.Notes,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return fmt.Errorf("%w: sale %s already exists", apperrors.ErrConflict, m.SaleID)
			case "23503": // FK violation on customer_id
				return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, m.CustomerID)
			}
		}
		return fmt.Errorf("failed to save sale %s: %w", m.SaleID, err)
	}

	if err := adjustCustomerBalance(ctx, tx, m.CustomerID, balanceDelta, m.UpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateSale rewrites a sale row and applies one balance delta per affected
// customer, locking customers in a deterministic order.
func (r *PgxSaleRepository) UpdateSale(ctx context.Context, sale domain.Sale, balanceDeltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := toModelSale(sale)
	query := `
		UPDATE sales
		SET date = $2, customer_id = $3, invoice_no = $4, amount = $5, received_amount = $6, items = $7, notes = $8, updated_at = $9
		WHERE sale_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.SaleID,
		m.Date,
		m.CustomerID,
		m.InvoiceNo,
		m.Amount,
		m.ReceivedAmount,
		m.Items,
		m.Notes,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, m.CustomerID)
		}
		return fmt.Errorf("failed to update sale %s: %w", m.SaleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	customerIDs := make([]string, 0, len(balanceDeltas))
	for id := range balanceDeltas {
		customerIDs = append(customerIDs, id)
	}
	sort.Strings(customerIDs)
	for _, id := range customerIDs {
		if err := adjustCustomerBalance(ctx, tx, id, balanceDeltas[id], m.UpdatedAt); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// DeleteSale removes a sale without linked receipts and reverses its effect
// on the customer balance.
func (r *PgxSaleRepository) DeleteSale(ctx context.Context, saleID string, customerID string, balanceDelta decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var hasReceipts bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM receipts WHERE sale_id = $1);`, saleID).Scan(&hasReceipts)
	if err != nil {
		return fmt.Errorf("failed to check receipts of sale %s: %w", saleID, err)
	}
	if hasReceipts {
		return fmt.Errorf("%w: sale %s has linked receipts", apperrors.ErrConflict, saleID)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM sales WHERE sale_id = $1;`, saleID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: sale %s has linked receipts", apperrors.ErrConflict, saleID)
		}
		return fmt.Errorf("failed to delete sale %s: %w", saleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := adjustCustomerBalance(ctx, tx, customerID, balanceDelta, time.Now().UTC()); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindSaleByID retrieves a sale with customer details.
func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.SaleWithCustomer, error) {
	query := saleSelect + ` WHERE sa.sale_id = $1;`

	s, err := scanSaleRow(r.Pool.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale by ID %s: %w", saleID, err)
	}
	return s, nil
}

// ListSales retrieves a paginated list of sales, newest first.
func (r *PgxSaleRepository) ListSales(ctx context.Context, limit int, offset int) ([]domain.SaleWithCustomer, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := saleSelect + ` ORDER BY sa.date DESC, sa.created_at DESC LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	return collectSales(rows)
}

// ListSalesByCustomer retrieves sales for one customer, newest first.
func (r *PgxSaleRepository) ListSalesByCustomer(ctx context.Context, customerID string, limit int) ([]domain.SaleWithCustomer, error) {
	query := saleSelect + ` WHERE sa.customer_id = $1 ORDER BY sa.date DESC, sa.created_at DESC`
	if limit > 0 {
		query += ` LIMIT ` + strconv.Itoa(limit)
	}
	query += `;`

	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales of customer %s: %w", customerID, err)
	}
	return collectSales(rows)
}

// ListSalesByDateRange retrieves sales dated within [from, to].
func (r *PgxSaleRepository) ListSalesByDateRange(ctx context.Context, from, to time.Time) ([]domain.SaleWithCustomer, error) {
	query := saleSelect + ` WHERE sa.date >= $1 AND sa.date <= $2 ORDER BY sa.date DESC, sa.created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales between %s and %s: %w", from.Format(time.DateOnly), to.Format(time.DateOnly), err)
	}
	return collectSales(rows)
}

// ListOutstandingSales retrieves sales with an uncollected portion, oldest
// first.
func (r *PgxSaleRepository) ListOutstandingSales(ctx context.Context, customerID string) ([]domain.SaleWithCustomer, error) {
	query := saleSelect + ` WHERE sa.amount > sa.received_amount`
	args := []any{}
	if customerID != "" {
		query += ` AND sa.customer_id = $1`
		args = append(args, customerID)
	}
	query += ` ORDER BY sa.date ASC, sa.created_at ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query outstanding sales: %w", err)
	}
	return collectSales(rows)
}

// ListSaleReceipts retrieves the receipts linked to one sale, oldest first.
func (r *PgxSaleRepository) ListSaleReceipts(ctx context.Context, saleID string) ([]domain.ReceiptWithCustomer, error) {
	query := receiptSelect + ` WHERE re.sale_id = $1 ORDER BY re.date ASC, re.created_at ASC;`

	rows, err := r.Pool.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts of sale %s: %w", saleID, err)
	}
	return collectReceipts(rows)
}

// GetSaleSummary aggregates sales into paid/partial/unpaid buckets.
func (r *PgxSaleRepository) GetSaleSummary(ctx context.Context, from, to *time.Time) (*domain.SaleSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(amount), 0),
		       COALESCE(SUM(received_amount), 0),
		       COALESCE(SUM(amount - received_amount), 0),
		       COUNT(*) FILTER (WHERE received_amount >= amount),
		       COUNT(*) FILTER (WHERE received_amount > 0 AND received_amount < amount),
		       COUNT(*) FILTER (WHERE received_amount = 0)
		FROM sales`
	where, args := dateRangeClause("date", from, to)
	query += where + `;`

	var s domain.SaleSummary
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&s.TotalSales,
		&s.TotalAmount,
		&s.TotalReceived,
		&s.TotalOutstanding,
		&s.PaidCount,
		&s.PartialCount,
		&s.UnpaidCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sale summary: %w", err)
	}
	return &s, nil
}
