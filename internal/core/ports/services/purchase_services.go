package services

import (
	"context"
	"time"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	"github.com/shopbooks/shopbooks_app/internal/dto"
)

// PurchaseReaderSvc defines read operations for purchase data
type PurchaseReaderSvc interface {
	// GetPurchaseByID retrieves a purchase with supplier details and its
	// settlement history.
	GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.PurchaseWithSupplier, []domain.PaymentWithSupplier, error)

	// ListPurchases retrieves a paginated list of purchases, newest first.
	ListPurchases(ctx context.Context, limit int, offset int) ([]domain.PurchaseWithSupplier, error)

	// ListPurchasesBySupplier retrieves purchases for one supplier.
	ListPurchasesBySupplier(ctx context.Context, supplierID string, limit int) ([]domain.PurchaseWithSupplier, error)

	// ListPurchasesByDateRange retrieves purchases dated within [from, to].
	ListPurchasesByDateRange(ctx context.Context, from, to time.Time) ([]domain.PurchaseWithSupplier, error)

	// ListOutstandingPurchases retrieves purchases with an unsettled
	// portion, optionally scoped to one supplier ("" = all).
	ListOutstandingPurchases(ctx context.Context, supplierID string) ([]domain.PurchaseWithSupplier, error)

	// GetPurchaseSummary aggregates purchase totals and status counts,
	// optionally date-bounded.
	GetPurchaseSummary(ctx context.Context, from, to *time.Time) (*domain.PurchaseSummary, error)
}

// PurchaseWriterSvc defines write operations for purchase data
type PurchaseWriterSvc interface {
	// CreatePurchase records a purchase and grows the supplier's payable
	// balance by the unsettled portion.
	CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest) (*domain.Purchase, error)

	// UpdatePurchase rewrites a purchase and shifts the supplier balance
	// by the change in its unsettled portion.
	UpdatePurchase(ctx context.Context, purchaseID string, req dto.UpdatePurchaseRequest) (*domain.Purchase, error)

	// DeletePurchase removes a purchase without linked payments and
	// reverses its unsettled portion from the supplier balance.
	DeletePurchase(ctx context.Context, purchaseID string) error
}

// PurchaseSvcFacade combines all purchase-related service interfaces
type PurchaseSvcFacade interface {
	PurchaseReaderSvc
	PurchaseWriterSvc
}
