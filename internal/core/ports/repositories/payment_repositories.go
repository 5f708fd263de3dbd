package repositories

import (
	"context"
	"time"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentReader defines read operations for payment data.
type PaymentReader interface {
	// FindPaymentByID retrieves a payment with supplier and linked
	// purchase details.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentWithSupplier, error)

	// ListPayments retrieves a paginated list of payments, newest first.
	ListPayments(ctx context.Context, limit int, offset int) ([]domain.PaymentWithSupplier, error)

	// ListPaymentsBySupplier retrieves payments for one supplier, newest
	// first. A non-positive limit returns all of them.
	ListPaymentsBySupplier(ctx context.Context, supplierID string, limit int) ([]domain.PaymentWithSupplier, error)

	// ListPaymentsByDateRange retrieves payments dated within [from, to].
	ListPaymentsByDateRange(ctx context.Context, from, to time.Time) ([]domain.PaymentWithSupplier, error)

	// ListPaymentsByMode retrieves payments settled with one instrument.
	ListPaymentsByMode(ctx context.Context, mode domain.PaymentMode) ([]domain.PaymentWithSupplier, error)

	// GetPaymentSummary aggregates payments into linked/advance buckets,
	// optionally date-bounded (nil bound = unbounded).
	GetPaymentSummary(ctx context.Context, from, to *time.Time) (*domain.PaymentSummary, error)

	// GetPaymentModeSummary groups payment totals by instrument,
	// optionally date-bounded.
	GetPaymentModeSummary(ctx context.Context, from, to *time.Time) ([]domain.ModeSummary, error)
}

// PaymentWriter defines write operations for payment data. Each method is
// one atomic transaction covering the payment row, the linked purchase's
// paid_amount and the supplier's balance; a failure at any step rolls back
// all of it.
type PaymentWriter interface {
	// SavePayment inserts a payment, increments the linked purchase's
	// paid_amount by the payment amount (re-checking the outstanding
	// balance under a row lock; overpayment returns ErrValidation) and
	// adjusts the supplier's balance by balanceDelta.
	SavePayment(ctx context.Context, payment domain.Payment, balanceDelta decimal.Decimal) error

	// UpdatePayment rewrites a payment row, shifts the linked purchase's
	// paid_amount by settledDelta (re-checked under the row lock) and
	// adjusts the supplier's balance by balanceDelta.
	UpdatePayment(ctx context.Context, payment domain.Payment, settledDelta, balanceDelta decimal.Decimal) error

	// DeletePayment removes a payment, reverses the linked purchase's
	// paid_amount by settledDelta and adjusts the supplier's balance by
	// balanceDelta.
	DeletePayment(ctx context.Context, payment domain.Payment, settledDelta, balanceDelta decimal.Decimal) error
}

// PaymentRepositoryFacade combines all payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
