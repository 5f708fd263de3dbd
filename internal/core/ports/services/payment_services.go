package services

import (
	"context"
	"time"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	"github.com/shopbooks/shopbooks_app/internal/dto"
)

// PaymentReaderSvc defines read operations for payment data
type PaymentReaderSvc interface {
	// GetPaymentByID retrieves a payment with supplier and linked
	// purchase details.
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentWithSupplier, error)

	// ListPayments retrieves a paginated list of payments, newest first.
	ListPayments(ctx context.Context, limit int, offset int) ([]domain.PaymentWithSupplier, error)

	// ListPaymentsBySupplier retrieves payments made to one supplier.
	ListPaymentsBySupplier(ctx context.Context, supplierID string, limit int) ([]domain.PaymentWithSupplier, error)

	// ListPaymentsByDateRange retrieves payments dated within [from, to].
	ListPaymentsByDateRange(ctx context.Context, from, to time.Time) ([]domain.PaymentWithSupplier, error)

	// ListPaymentsByMode retrieves payments settled with one instrument.
	ListPaymentsByMode(ctx context.Context, mode domain.PaymentMode) ([]domain.PaymentWithSupplier, error)

	// GetPaymentSummary aggregates payments into linked/advance buckets,
	// optionally date-bounded.
	GetPaymentSummary(ctx context.Context, from, to *time.Time) (*domain.PaymentSummary, error)

	// GetPaymentModeSummary groups payment totals by instrument,
	// optionally date-bounded.
	GetPaymentModeSummary(ctx context.Context, from, to *time.Time) ([]domain.ModeSummary, error)
}

// PaymentWriterSvc defines write operations for payment data
type PaymentWriterSvc interface {
	// CreatePayment records a payment, settles it against its linked
	// purchase (if any) and shrinks the supplier's payable balance.
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest) (*domain.Payment, error)

	// UpdatePayment rewrites a payment, shifting both the linked
	// purchase's settled portion and the supplier balance by the amount
	// change.
	UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest) (*domain.Payment, error)

	// DeletePayment removes a payment, reversing its settlement and
	// restoring the supplier balance.
	DeletePayment(ctx context.Context, paymentID string) error
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
