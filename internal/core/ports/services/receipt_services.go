package services

import (
	"context"
	"time"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	"github.com/shopbooks/shopbooks_app/internal/dto"
)

// ReceiptReaderSvc defines read operations for receipt data
type ReceiptReaderSvc interface {
	// GetReceiptByID retrieves a receipt with customer and linked sale
	// details.
	GetReceiptByID(ctx context.Context, receiptID string) (*domain.ReceiptWithCustomer, error)

	// ListReceipts retrieves a paginated list of receipts, newest first.
	ListReceipts(ctx context.Context, limit int, offset int) ([]domain.ReceiptWithCustomer, error)

	// ListReceiptsByCustomer retrieves receipts collected from one customer.
	ListReceiptsByCustomer(ctx context.Context, customerID string, limit int) ([]domain.ReceiptWithCustomer, error)

	// ListReceiptsByDateRange retrieves receipts dated within [from, to].
	ListReceiptsByDateRange(ctx context.Context, from, to time.Time) ([]domain.ReceiptWithCustomer, error)

	// ListReceiptsByMode retrieves receipts settled with one instrument.
	ListReceiptsByMode(ctx context.Context, mode domain.PaymentMode) ([]domain.ReceiptWithCustomer, error)

	// GetReceiptSummary aggregates receipts into linked/advance buckets,
	// optionally date-bounded.
	GetReceiptSummary(ctx context.Context, from, to *time.Time) (*domain.ReceiptSummary, error)

	// GetReceiptModeSummary groups receipt totals by instrument,
	// optionally date-bounded.
	GetReceiptModeSummary(ctx context.Context, from, to *time.Time) ([]domain.ModeSummary, error)
}

// ReceiptWriterSvc defines write operations for receipt data
type ReceiptWriterSvc interface {
	// CreateReceipt records a receipt, settles it against its linked sale
	// (if any) and shrinks the customer's receivable balance.
	CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest) (*domain.Receipt, error)

	// UpdateReceipt rewrites a receipt, shifting both the linked sale's
	// collected portion and the customer balance by the amount change.
	UpdateReceipt(ctx context.Context, receiptID string, req dto.UpdateReceiptRequest) (*domain.Receipt, error)

	// DeleteReceipt removes a receipt, reversing its settlement and
	// restoring the customer balance.
	DeleteReceipt(ctx context.Context, receiptID string) error
}

// ReceiptSvcFacade combines all receipt-related service interfaces
type ReceiptSvcFacade interface {
	ReceiptReaderSvc
	ReceiptWriterSvc
}
