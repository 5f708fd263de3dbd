package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopbooks/shopbooks_app/internal/apperrors"
	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	portsrepo "github.com/shopbooks/shopbooks_app/internal/core/ports/repositories"
	portssvc "github.com/shopbooks/shopbooks_app/internal/core/ports/services"
	"github.com/shopbooks/shopbooks_app/internal/dto"
	"github.com/shopbooks/shopbooks_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type PaymentService struct {
	BaseService
	paymentRepo  portsrepo.PaymentRepositoryFacade
	purchaseRepo portsrepo.PurchaseReader
}

// NewPaymentService creates the payment service. The purchase reader is
// used for pre-checks on linked purchases; the decisive overpayment check
// happens again inside the repository transaction under a row lock.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, purchaseRepo portsrepo.PurchaseReader) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		purchaseRepo: purchaseRepo,
	}
}

var _ portssvc.PaymentSvcFacade = (*PaymentService)(nil)

func validatePaymentAmountAndMode(amount decimal.Decimal, mode domain.PaymentMode) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if !mode.IsValid() {
		return fmt.Errorf("%w: unknown payment mode %q", apperrors.ErrValidation, mode)
	}
	return nil
}

// CreatePayment records a payment, settles it against its linked purchase
// (if any) and shrinks the supplier's payable balance.
func (s *PaymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest) (*domain.Payment, error) {
	date, err := parseLedgerDate(req.Date)
	if err != nil {
		return nil, err
	}
	mode := domain.PaymentMode(req.PaymentMode)
	if err := validatePaymentAmountAndMode(req.Amount, mode); err != nil {
		return nil, err
	}

	if req.PurchaseID != nil {
		purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, *req.PurchaseID)
		if err != nil {
			return nil, err
		}
		if purchase.SupplierID != req.SupplierID {
			return nil, fmt.Errorf("%w: purchase %s belongs to a different supplier", apperrors.ErrValidation, *req.PurchaseID)
		}
		if err := accounting.ValidateSettlement(purchase.Amount, purchase.PaidAmount, decimal.Zero, req.Amount); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
	}

	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		Date:        date,
		SupplierID:  req.SupplierID,
		PurchaseID:  req.PurchaseID,
		Amount:      req.Amount,
		PaymentMode: mode,
		ReferenceNo: req.ReferenceNo,
		Notes:       req.Notes,
		CreatedAt:   time.Now().UTC(),
	}

	balanceDelta := accounting.SettlementDelta(decimal.Zero, payment.Amount)
	if err := s.paymentRepo.SavePayment(ctx, payment, balanceDelta); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to save payment", slog.String("payment_id", payment.PaymentID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("supplier_id", payment.SupplierID),
		slog.String("amount", payment.Amount.String()),
		slog.String("payment_type", payment.Type()),
	)
	return &payment, nil
}

// UpdatePayment rewrites a payment. The linked purchase's settled portion
// and the supplier balance both shift by the amount change, so editing a
// payment keeps every derived figure consistent.
func (s *PaymentService) UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest) (*domain.Payment, error) {
	existing, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	updated := existing.Payment
	if req.Date != nil {
		date, err := parseLedgerDate(*req.Date)
		if err != nil {
			return nil, err
		}
		updated.Date = date
	}
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if req.PaymentMode != nil {
		updated.PaymentMode = domain.PaymentMode(*req.PaymentMode)
	}
	if req.ReferenceNo != nil {
		updated.ReferenceNo = *req.ReferenceNo
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	if err := validatePaymentAmountAndMode(updated.Amount, updated.PaymentMode); err != nil {
		return nil, err
	}

	settledDelta := updated.Amount.Sub(existing.Amount)
	balanceDelta := accounting.SettlementDelta(existing.Amount, updated.Amount)
	if err := s.paymentRepo.UpdatePayment(ctx, updated, settledDelta, balanceDelta); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to update payment", slog.String("payment_id", paymentID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Payment updated", slog.String("payment_id", paymentID))
	return &updated, nil
}

// DeletePayment removes a payment, reversing its settlement and restoring
// the supplier balance.
func (s *PaymentService) DeletePayment(ctx context.Context, paymentID string) error {
	existing, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return err
	}

	settledDelta := existing.Amount.Neg()
	balanceDelta := accounting.SettlementDelta(existing.Amount, decimal.Zero)
	if err := s.paymentRepo.DeletePayment(ctx, existing.Payment, settledDelta, balanceDelta); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to delete payment", slog.String("payment_id", paymentID))
		}
		return err
	}

	s.LogInfo(ctx, "Payment deleted", slog.String("payment_id", paymentID))
	return nil
}

// GetPaymentByID retrieves a payment with supplier and linked purchase
// details.
func (s *PaymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentWithSupplier, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find payment", slog.String("payment_id", paymentID))
		}
		return nil, err
	}
	return payment, nil
}

// ListPayments retrieves a paginated list of payments, newest first.
func (s *PaymentService) ListPayments(ctx context.Context, limit int, offset int) ([]domain.PaymentWithSupplier, error) {
	payments, err := s.paymentRepo.ListPayments(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments")
		return nil, err
	}
	return payments, nil
}

// ListPaymentsBySupplier retrieves payments made to one supplier.
func (s *PaymentService) ListPaymentsBySupplier(ctx context.Context, supplierID string, limit int) ([]domain.PaymentWithSupplier, error) {
	payments, err := s.paymentRepo.ListPaymentsBySupplier(ctx, supplierID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments by supplier", slog.String("supplier_id", supplierID))
		return nil, err
	}
	return payments, nil
}

// ListPaymentsByDateRange retrieves payments dated within [from, to].
func (s *PaymentService) ListPaymentsByDateRange(ctx context.Context, from, to time.Time) ([]domain.PaymentWithSupplier, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: date range end precedes start", apperrors.ErrValidation)
	}
	payments, err := s.paymentRepo.ListPaymentsByDateRange(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments by date range")
		return nil, err
	}
	return payments, nil
}

// ListPaymentsByMode retrieves payments settled with one instrument.
func (s *PaymentService) ListPaymentsByMode(ctx context.Context, mode domain.PaymentMode) ([]domain.PaymentWithSupplier, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment mode %q", apperrors.ErrValidation, mode)
	}
	payments, err := s.paymentRepo.ListPaymentsByMode(ctx, mode)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments by mode", slog.String("mode", string(mode)))
		return nil, err
	}
	return payments, nil
}

// GetPaymentSummary aggregates payments into linked/advance buckets.
func (s *PaymentService) GetPaymentSummary(ctx context.Context, from, to *time.Time) (*domain.PaymentSummary, error) {
	summary, err := s.paymentRepo.GetPaymentSummary(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate payment summary")
		return nil, err
	}
	return summary, nil
}

// GetPaymentModeSummary groups payment totals by instrument.
func (s *PaymentService) GetPaymentModeSummary(ctx context.Context, from, to *time.Time) ([]domain.ModeSummary, error) {
	summary, err := s.paymentRepo.GetPaymentModeSummary(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate payments by mode")
		return nil, err
	}
	return summary, nil
}
