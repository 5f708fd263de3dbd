package repositories

import (
	"context"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
)

// SupplierReader defines read operations for supplier data.
type SupplierReader interface {
	// FindSupplierByID retrieves a supplier by its unique identifier.
	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)

	// FindSupplierByName retrieves a supplier by exact name match.
	FindSupplierByName(ctx context.Context, name string) (*domain.Supplier, error)

	// FindSupplierWithTotals retrieves a supplier joined with purchase and
	// payment aggregates.
	FindSupplierWithTotals(ctx context.Context, supplierID string) (*domain.SupplierWithTotals, error)

	// ListSuppliers retrieves a paginated list of suppliers with purchase
	// and payment aggregates, ordered by name.
	ListSuppliers(ctx context.Context, limit int, offset int) ([]domain.SupplierWithTotals, error)

	// SearchSuppliers performs a case-insensitive substring match on name
	// or contact.
	SearchSuppliers(ctx context.Context, query string, limit int) ([]domain.SupplierWithTotals, error)

	// ListSuppliersByBalance retrieves suppliers filtered by balance sign.
	ListSuppliersByBalance(ctx context.Context, filter domain.BalanceFilter) ([]domain.SupplierWithTotals, error)

	// GetSupplierTransactions retrieves the merged, date-sorted feed of
	// purchases and payments for a supplier. A non-positive limit returns
	// the full history.
	GetSupplierTransactions(ctx context.Context, supplierID string, limit int) ([]domain.TransactionEntry, error)

	// GetSupplierSummary aggregates suppliers by balance sign.
	GetSupplierSummary(ctx context.Context) (*domain.SupplierSummary, error)
}

// SupplierWriter defines write operations for supplier data.
type SupplierWriter interface {
	// SaveSupplier persists a new supplier. Returns ErrConflict when the
	// name is already taken.
	SaveSupplier(ctx context.Context, supplier domain.Supplier) error

	// UpdateSupplier updates an existing supplier's details.
	UpdateSupplier(ctx context.Context, supplier domain.Supplier) error

	// DeleteSupplier removes a supplier. Returns ErrConflict when any
	// purchase or payment still references it.
	DeleteSupplier(ctx context.Context, supplierID string) error
}

// SupplierRepositoryFacade combines all supplier repository interfaces.
type SupplierRepositoryFacade interface {
	SupplierReader
	SupplierWriter
}
