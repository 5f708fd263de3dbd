package repositories

import (
	"context"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
)

// CustomerReader defines read operations for customer data.
type CustomerReader interface {
	// FindCustomerByID retrieves a customer by its unique identifier.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// FindCustomerByName retrieves a customer by exact name match.
	FindCustomerByName(ctx context.Context, name string) (*domain.Customer, error)

	// FindCustomerWithTotals retrieves a customer joined with sale and
	// receipt aggregates.
	FindCustomerWithTotals(ctx context.Context, customerID string) (*domain.CustomerWithTotals, error)

	// ListCustomers retrieves a paginated list of customers with sale and
	// receipt aggregates, ordered by name.
	ListCustomers(ctx context.Context, limit int, offset int) ([]domain.CustomerWithTotals, error)

	// SearchCustomers performs a case-insensitive substring match on name
	// or contact.
	SearchCustomers(ctx context.Context, query string, limit int) ([]domain.CustomerWithTotals, error)

	// ListCustomersByBalance retrieves customers filtered by balance sign.
	ListCustomersByBalance(ctx context.Context, filter domain.BalanceFilter) ([]domain.CustomerWithTotals, error)

	// GetCustomerTransactions retrieves the merged, date-sorted feed of
	// sales and receipts for a customer. A non-positive limit returns the
	// full history.
	GetCustomerTransactions(ctx context.Context, customerID string, limit int) ([]domain.TransactionEntry, error)

	// GetCustomerSummary aggregates customers by balance sign.
	GetCustomerSummary(ctx context.Context) (*domain.CustomerSummary, error)
}

// CustomerWriter defines write operations for customer data.
type CustomerWriter interface {
	// SaveCustomer persists a new customer. Returns ErrConflict when the
	// name is already taken.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// UpdateCustomer updates an existing customer's details.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error

	// DeleteCustomer removes a customer. Returns ErrConflict when any sale
	// or receipt still references it.
	DeleteCustomer(ctx context.Context, customerID string) error
}

// CustomerRepositoryFacade combines all customer repository interfaces.
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
