package repositories

import (
	"context"
	"time"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReceiptReader defines read operations for receipt data.
type ReceiptReader interface {
	// FindReceiptByID retrieves a receipt with customer and linked sale
	// details.
	FindReceiptByID(ctx context.Context, receiptID string) (*domain.ReceiptWithCustomer, error)

	// ListReceipts retrieves a paginated list of receipts, newest first.
	ListReceipts(ctx context.Context, limit int, offset int) ([]domain.ReceiptWithCustomer, error)

	// ListReceiptsByCustomer retrieves receipts for one customer, newest
	// first. A non-positive limit returns all of them.
	ListReceiptsByCustomer(ctx context.Context, customerID string, limit int) ([]domain.ReceiptWithCustomer, error)

	// ListReceiptsByDateRange retrieves receipts dated within [from, to].
	ListReceiptsByDateRange(ctx context.Context, from, to time.Time) ([]domain.ReceiptWithCustomer, error)

	// ListReceiptsByMode retrieves receipts settled with one instrument.
	ListReceiptsByMode(ctx context.Context, mode domain.PaymentMode) ([]domain.ReceiptWithCustomer, error)

	// GetReceiptSummary aggregates receipts into linked/advance buckets,
	// optionally date-bounded (nil bound = unbounded).
	GetReceiptSummary(ctx context.Context, from, to *time.Time) (*domain.ReceiptSummary, error)

	// GetReceiptModeSummary groups receipt totals by instrument,
	// optionally date-bounded.
	GetReceiptModeSummary(ctx context.Context, from, to *time.Time) ([]domain.ModeSummary, error)
}

// ReceiptWriter defines write operations for receipt data, mirroring
// PaymentWriter's transactional contract against sale.received_amount and
// customer.balance.
type ReceiptWriter interface {
	// SaveReceipt inserts a receipt, increments the linked sale's
	// received_amount by the receipt amount (re-checking the outstanding
	// balance under a row lock; overcollection returns ErrValidation) and
	// adjusts the customer's balance by balanceDelta.
	SaveReceipt(ctx context.Context, receipt domain.Receipt, balanceDelta decimal.Decimal) error

	// UpdateReceipt rewrites a receipt row, shifts the linked sale's
	// received_amount by settledDelta (re-checked under the row lock) and
	// adjusts the customer's balance by balanceDelta.
	UpdateReceipt(ctx context.Context, receipt domain.Receipt, settledDelta, balanceDelta decimal.Decimal) error

	// DeleteReceipt removes a receipt, reverses the linked sale's
	// received_amount by settledDelta and adjusts the customer's balance
	// by balanceDelta.
	DeleteReceipt(ctx context.Context, receipt domain.Receipt, settledDelta, balanceDelta decimal.Decimal) error
}

// ReceiptRepositoryFacade combines all receipt repository interfaces.
type ReceiptRepositoryFacade interface {
	ReceiptReader
	ReceiptWriter
}
