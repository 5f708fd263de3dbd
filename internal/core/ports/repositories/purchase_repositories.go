package repositories

import (
	"context"
	"time"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PurchaseReader defines read operations for purchase data.
type PurchaseReader interface {
	// FindPurchaseByID retrieves a purchase with supplier details.
	FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.PurchaseWithSupplier, error)

	// ListPurchases retrieves a paginated list of purchases, newest first.
	ListPurchases(ctx context.Context, limit int, offset int) ([]domain.PurchaseWithSupplier, error)

	// ListPurchasesBySupplier retrieves purchases for one supplier, newest
	// first. A non-positive limit returns all of them.
	ListPurchasesBySupplier(ctx context.Context, supplierID string, limit int) ([]domain.PurchaseWithSupplier, error)

	// ListPurchasesByDateRange retrieves purchases dated within [from, to].
	ListPurchasesByDateRange(ctx context.Context, from, to time.Time) ([]domain.PurchaseWithSupplier, error)

	// ListOutstandingPurchases retrieves purchases where amount exceeds
	// paid_amount, oldest first. An empty supplierID covers all suppliers.
	ListOutstandingPurchases(ctx context.Context, supplierID string) ([]domain.PurchaseWithSupplier, error)

	// ListPurchasePayments retrieves the payments linked to one purchase.
	ListPurchasePayments(ctx context.Context, purchaseID string) ([]domain.PaymentWithSupplier, error)

	// GetPurchaseSummary aggregates purchases into paid/partial/unpaid
	// buckets, optionally date-bounded (nil bound = unbounded).
	GetPurchaseSummary(ctx context.Context, from, to *time.Time) (*domain.PurchaseSummary, error)
}

// PurchaseWriter defines write operations for purchase data. Each method
// runs as one atomic transaction that also applies the supplier balance
// delta computed by the service, so the balance maintenance rule can never
// be skipped or double-applied.
type PurchaseWriter interface {
	// SavePurchase inserts a purchase and adjusts the supplier's balance
	// by balanceDelta within the same transaction.
	SavePurchase(ctx context.Context, purchase domain.Purchase, balanceDelta decimal.Decimal) error

	// UpdatePurchase rewrites a purchase row and applies one balance delta
	// per affected supplier (two entries when the purchase moved between
	// suppliers).
	UpdatePurchase(ctx context.Context, purchase domain.Purchase, balanceDeltas map[string]decimal.Decimal) error

	// DeletePurchase removes a purchase and adjusts the supplier's balance
	// by balanceDelta. Returns ErrConflict when payments still reference
	// the purchase.
	DeletePurchase(ctx context.Context, purchaseID string, supplierID string, balanceDelta decimal.Decimal) error
}

// PurchaseRepositoryFacade combines all purchase repository interfaces.
type PurchaseRepositoryFacade interface {
	PurchaseReader
	PurchaseWriter
}
