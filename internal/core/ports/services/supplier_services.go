package services

import (
	"context"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	"github.com/shopbooks/shopbooks_app/internal/dto"
)

// SupplierReaderSvc defines read operations for supplier data
type SupplierReaderSvc interface {
	// GetSupplierByID retrieves a specific supplier by its unique identifier.
	GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)

	// GetSupplierDetails retrieves a supplier together with purchase and
	// payment totals and its recent transaction feed.
	GetSupplierDetails(ctx context.Context, supplierID string, txnLimit int) (*domain.SupplierWithTotals, []domain.TransactionEntry, error)

	// ListSuppliers retrieves a paginated list of suppliers with totals.
	ListSuppliers(ctx context.Context, limit int, offset int) ([]domain.SupplierWithTotals, error)

	// SearchSuppliers retrieves suppliers whose name or contact matches the query.
	SearchSuppliers(ctx context.Context, query string, limit int) ([]domain.SupplierWithTotals, error)

	// ListSuppliersByBalance retrieves suppliers filtered by balance sign.
	ListSuppliersByBalance(ctx context.Context, filter domain.BalanceFilter) ([]domain.SupplierWithTotals, error)

	// GetSupplierSummary aggregates supplier counts and payable totals.
	GetSupplierSummary(ctx context.Context) (*domain.SupplierSummary, error)
}

// SupplierWriterSvc defines write operations for supplier data
type SupplierWriterSvc interface {
	// CreateSupplier persists a new supplier with a zero opening balance.
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest) (*domain.Supplier, error)

	// UpdateSupplier updates an existing supplier's details.
	UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest) (*domain.Supplier, error)

	// DeleteSupplier removes a supplier without recorded purchases or payments.
	DeleteSupplier(ctx context.Context, supplierID string) error
}

// SupplierSvcFacade combines all supplier-related service interfaces
type SupplierSvcFacade interface {
	SupplierReaderSvc
	SupplierWriterSvc
}
