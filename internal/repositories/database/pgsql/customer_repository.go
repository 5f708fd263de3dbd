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
)

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCustomerRepository implements portsrepo.CustomerRepositoryFacade
var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func toModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID: d.CustomerID,
		Name:       d.Name,
		Contact:    d.Contact,
		Address:    d.Address,
		Balance:    d.Balance,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func toDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID: m.CustomerID,
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

const customerColumns = `customer_id, name, contact, address, balance, created_at, updated_at`

// customerTotalsSelect joins each customer with its lifetime sale and
// receipt aggregates via correlated subqueries.
const customerTotalsSelect = `
	SELECT c.customer_id, c.name, c.contact, c.address, c.balance, c.created_at, c.updated_at,
	       (SELECT COUNT(*) FROM sales sa WHERE sa.customer_id = c.customer_id) AS total_sales,
	       (SELECT COALESCE(SUM(sa.amount), 0) FROM sales sa WHERE sa.customer_id = c.customer_id) AS total_sale_amount,
	       (SELECT COALESCE(SUM(sa.received_amount), 0) FROM sales sa WHERE sa.customer_id = c.customer_id) AS total_received_amount,
	       (SELECT COUNT(*) FROM receipts re WHERE re.customer_id = c.customer_id) AS total_receipts
	FROM customers c`

func scanCustomerWithTotals(row pgx.Row) (*domain.CustomerWithTotals, error) {
	var m models.Customer
	var c domain.CustomerWithTotals
	err := row.Scan(
		&m.CustomerID,
		&m.Name,
		&m.Contact,
		&m.Address,
		&m.Balance,
		&m.CreatedAt,
		&m.UpdatedAt,
		&c.TotalSales,
		&c.TotalSaleAmount,
		&c.TotalReceivedAmount,
		&c.TotalReceipts,
	)
	if err != nil {
		return nil, err
	}
	c.Customer = toDomainCustomer(m)
	return &c, nil
}

func collectCustomersWithTotals(rows pgx.Rows) ([]domain.CustomerWithTotals, error) {
	defer rows.Close()
	customers := []domain.CustomerWithTotals{}
	for rows.Next() {
		c, err := scanCustomerWithTotals(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, *c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", rows.Err())
	}
	return customers, nil
}

// SaveCustomer inserts a new customer.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := toModelCustomer(customer)

	query := `
		INSERT INTO customers (customer_id, name, contact, address, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
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
			return fmt.Errorf("%w: customer named %q already exists", apperrors.ErrConflict, m.Name)
		}
		return fmt.Errorf("failed to save customer %s: %w", m.CustomerID, err)
	}
	return nil
}

// FindCustomerByID retrieves a customer by its ID.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`

	var m models.Customer
	err := r.Pool.QueryRow(ctx, query, customerID).Scan(
		&m.CustomerID,
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
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", customerID, err)
	}

	d := toDomainCustomer(m)
	return &d, nil
}

// FindCustomerByName retrieves a customer by exact name match.
func (r *PgxCustomerRepository) FindCustomerByName(ctx context.Context, name string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE name = $1;`

	var m models.Customer
	err := r.Pool.QueryRow(ctx, query, name).Scan(
		&m.CustomerID,
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
		return nil, fmt.Errorf("failed to find customer by name %q: %w", name, err)
	}

	d := toDomainCustomer(m)
	return &d, nil
}

// FindCustomerWithTotals retrieves a customer joined with sale and receipt
// aggregates.
func (r *PgxCustomerRepository) FindCustomerWithTotals(ctx context.Context, customerID string) (*domain.CustomerWithTotals, error) {
	query := customerTotalsSelect + ` WHERE c.customer_id = $1;`

	c, err := scanCustomerWithTotals(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer %s with totals: %w", customerID, err)
	}
	return c, nil
}

// ListCustomers retrieves a paginated list of customers with totals.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.CustomerWithTotals, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := customerTotalsSelect + ` ORDER BY c.name LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	return collectCustomersWithTotals(rows)
}

// SearchCustomers performs a case-insensitive substring match on name or contact.
func (r *PgxCustomerRepository) SearchCustomers(ctx context.Context, query string, limit int) ([]domain.CustomerWithTotals, error) {
	if limit <= 0 {
		limit = 100
	}

	sqlQuery := customerTotalsSelect + `
	WHERE c.name ILIKE '%' || $1 || '%' OR c.contact ILIKE '%' || $1 || '%'
	ORDER BY c.name LIMIT $2;`

	rows, err := r.Pool.Query(ctx, sqlQuery, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search customers for %q: %w", query, err)
	}
	return collectCustomersWithTotals(rows)
}

// ListCustomersByBalance retrieves customers filtered by balance sign.
func (r *PgxCustomerRepository) ListCustomersByBalance(ctx context.Context, filter domain.BalanceFilter) ([]domain.CustomerWithTotals, error) {
	query := customerTotalsSelect
	switch filter {
	case domain.BalanceReceivable:
		query += ` WHERE c.balance > 0`
	case domain.BalanceAdvance:
		query += ` WHERE c.balance < 0`
	case domain.BalanceZero:
		query += ` WHERE c.balance = 0`
	case domain.BalanceAll:
		// no filter
	default:
		return nil, fmt.Errorf("%w: unknown balance filter %q", apperrors.ErrValidation, filter)
	}
	query += ` ORDER BY c.name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers by balance %q: %w", filter, err)
	}
	return collectCustomersWithTotals(rows)
}

// GetCustomerTransactions retrieves the merged, date-sorted feed of sales
// and receipts for a customer.
func (r *PgxCustomerRepository) GetCustomerTransactions(ctx context.Context, customerID string, limit int) ([]domain.TransactionEntry, error) {
	query := `
		SELECT 'sale' AS entry_type, sa.sale_id AS entry_id, sa.date, sa.invoice_no AS reference,
		       sa.items, sa.amount, sa.received_amount AS settled_amount, sa.notes, sa.created_at
		FROM sales sa
		WHERE sa.customer_id = $1
		UNION ALL
		SELECT 'receipt', re.receipt_id, re.date, re.reference_no,
		       '', re.amount, re.amount, re.notes, re.created_at
		FROM receipts re
		WHERE re.customer_id = $1
		ORDER BY date DESC, created_at DESC`
	if limit > 0 {
		query += ` LIMIT ` + strconv.Itoa(limit)
	}
	query += `;`

	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions of customer %s: %w", customerID, err)
	}
	return collectTransactionEntries(rows)
}

// GetCustomerSummary aggregates customers by balance sign.
func (r *PgxCustomerRepository) GetCustomerSummary(ctx context.Context) (*domain.CustomerSummary, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE balance > 0),
		       COUNT(*) FILTER (WHERE balance < 0),
		       COUNT(*) FILTER (WHERE balance = 0),
		       COALESCE(SUM(balance) FILTER (WHERE balance > 0), 0),
		       COALESCE(SUM(-balance) FILTER (WHERE balance < 0), 0),
		       COALESCE(SUM(balance), 0)
		FROM customers;
	`
	var c domain.CustomerSummary
	err := r.Pool.QueryRow(ctx, query).Scan(
		&c.TotalCustomers,
		&c.ReceivableCount,
		&c.AdvanceCount,
		&c.ZeroCount,
		&c.TotalReceivable,
		&c.TotalAdvance,
		&c.NetReceivable,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate customer summary: %w", err)
	}
	return &c, nil
}

// UpdateCustomer updates an existing customer's details. The balance column
// is deliberately left alone; only the balance maintenance code paths touch it.
func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, contact = $3, address = $4, updated_at = $5
		WHERE customer_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		customer.CustomerID,
		customer.Name,
		customer.Contact,
		customer.Address,
		customer.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: customer named %q already exists", apperrors.ErrConflict, customer.Name)
		}
		return fmt.Errorf("failed to update customer %s: %w", customer.CustomerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCustomer removes a customer that has no recorded sales or receipts.
func (r *PgxCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var hasRecords bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM sales WHERE customer_id = $1)
		    OR EXISTS (SELECT 1 FROM receipts WHERE customer_id = $1);
	`, customerID).Scan(&hasRecords)
	if err != nil {
		return fmt.Errorf("failed to check records of customer %s: %w", customerID, err)
	}
	if hasRecords {
		return fmt.Errorf("%w: customer %s has recorded sales or receipts", apperrors.ErrConflict, customerID)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1;`, customerID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // FK violation
			return fmt.Errorf("%w: customer %s has recorded sales or receipts", apperrors.ErrConflict, customerID)
		}
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
