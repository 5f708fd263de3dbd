package services

import (
	"context"
	"time"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	"github.com/shopbooks/shopbooks_app/internal/dto"
)

// SaleReaderSvc defines read operations for sale data
type SaleReaderSvc interface {
	// GetSaleByID retrieves a sale with customer details and its
	// collection history.
	GetSaleByID(ctx context.Context, saleID string) (*domain.SaleWithCustomer, []domain.ReceiptWithCustomer, error)

	// ListSales retrieves a paginated list of sales, newest first.
	ListSales(ctx context.Context, limit int, offset int) ([]domain.SaleWithCustomer, error)

	// ListSalesByCustomer retrieves sales for one customer.
	ListSalesByCustomer(ctx context.Context, customerID string, limit int) ([]domain.SaleWithCustomer, error)

	// ListSalesByDateRange retrieves sales dated within [from, to].
	ListSalesByDateRange(ctx context.Context, from, to time.Time) ([]domain.SaleWithCustomer, error)

	// ListOutstandingSales retrieves sales with an uncollected portion,
	// optionally scoped to one customer ("" = all).
	ListOutstandingSales(ctx context.Context, customerID string) ([]domain.SaleWithCustomer, error)

	// GetSaleSummary aggregates sale totals and status counts, optionally
	// date-bounded.
	GetSaleSummary(ctx context.Context, from, to *time.Time) (*domain.SaleSummary, error)
}

// SaleWriterSvc defines write operations for sale data
type SaleWriterSvc interface {
	// CreateSale records a sale and grows the customer's receivable
	// balance by the uncollected portion.
	CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*domain.Sale, error)

	// UpdateSale rewrites a sale and shifts the customer balance by the
	// change in its uncollected portion.
	UpdateSale(ctx context.Context, saleID string, req dto.UpdateSaleRequest) (*domain.Sale, error)

	// DeleteSale removes a sale without linked receipts and reverses its
	// uncollected portion from the customer balance.
	DeleteSale(ctx context.Context, saleID string) error
}

// SaleSvcFacade combines all sale-related service interfaces
type SaleSvcFacade interface {
	SaleReaderSvc
	SaleWriterSvc
}
