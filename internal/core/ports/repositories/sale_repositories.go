package repositories

import (
	"context"
	"time"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleReader defines read operations for sale data.
type SaleReader interface {
	// FindSaleByID retrieves a sale with customer details.
	FindSaleByID(ctx context.Context, saleID string) (*domain.SaleWithCustomer, error)

	// ListSales retrieves a paginated list of sales, newest first.
	ListSales(ctx context.Context, limit int, offset int) ([]domain.SaleWithCustomer, error)

	// ListSalesByCustomer retrieves sales for one customer, newest first.
	// A non-positive limit returns all of them.
	ListSalesByCustomer(ctx context.Context, customerID string, limit int) ([]domain.SaleWithCustomer, error)

	// ListSalesByDateRange retrieves sales dated within [from, to].
	ListSalesByDateRange(ctx context.Context, from, to time.Time) ([]domain.SaleWithCustomer, error)

	// ListOutstandingSales retrieves sales where amount exceeds
	// received_amount, oldest first. An empty customerID covers all
	// customers.
	ListOutstandingSales(ctx context.Context, customerID string) ([]domain.SaleWithCustomer, error)

	// ListSaleReceipts retrieves the receipts linked to one sale.
	ListSaleReceipts(ctx context.Context, saleID string) ([]domain.ReceiptWithCustomer, error)

	// GetSaleSummary aggregates sales into paid/partial/unpaid buckets,
	// optionally date-bounded (nil bound = unbounded).
	GetSaleSummary(ctx context.Context, from, to *time.Time) (*domain.SaleSummary, error)
}

// SaleWriter defines write operations for sale data, mirroring
// PurchaseWriter's transactional balance-delta contract against
// customer.balance.
type SaleWriter interface {
	// SaveSale inserts a sale and adjusts the customer's balance by
	// balanceDelta within the same transaction.
	SaveSale(ctx context.Context, sale domain.Sale, balanceDelta decimal.Decimal) error

	// UpdateSale rewrites a sale row and applies one balance delta per
	// affected customer.
	UpdateSale(ctx context.Context, sale domain.Sale, balanceDeltas map[string]decimal.Decimal) error

	// DeleteSale removes a sale and adjusts the customer's balance by
	// balanceDelta. Returns ErrConflict when receipts still reference the
	// sale.
	DeleteSale(ctx context.Context, saleID string, customerID string, balanceDelta decimal.Decimal) error
}

// SaleRepositoryFacade combines all sale repository interfaces.
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}
