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

type ReceiptService struct {
	BaseService
	receiptRepo portsrepo.ReceiptRepositoryFacade
	saleRepo    portsrepo.SaleReader
}

// NewReceiptService creates the receipt service. The sale reader is used
// for pre-checks on linked sales; the decisive overcollection check happens
// again inside the repository transaction under a row lock.
func NewReceiptService(receiptRepo portsrepo.ReceiptRepositoryFacade, saleRepo portsrepo.SaleReader) *ReceiptService {
	return &ReceiptService{
		receiptRepo: receiptRepo,
		saleRepo:    saleRepo,
	}
}

var _ portssvc.ReceiptSvcFacade = (*ReceiptService)(nil)

// CreateReceipt records a receipt, settles it against its linked sale (if
// any) and shrinks the customer's receivable balance.
func (s *ReceiptService) CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest) (*domain.Receipt, error) {
	date, err := parseLedgerDate(req.Date)
	if err != nil {
		return nil, err
	}
	mode := domain.PaymentMode(req.PaymentMode)
	if err := validatePaymentAmountAndMode(req.Amount, mode); err != nil {
		return nil, err
	}

	if req.SaleID != nil {
		sale, err := s.saleRepo.FindSaleByID(ctx, *req.SaleID)
		if err != nil {
			return nil, err
		}
		if sale.CustomerID != req.CustomerID {
			return nil, fmt.Errorf("%w: sale %s belongs to a different customer", apperrors.ErrValidation, *req.SaleID)
		}
		if err := accounting.ValidateSettlement(sale.Amount, sale.ReceivedAmount, decimal.Zero, req.Amount); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
	}

	receipt := domain.Receipt{
		ReceiptID:   uuid.NewString(),
		Date:        date,
		CustomerID:  req.CustomerID,
		SaleID:      req.SaleID,
		Amount:      req.Amount,
		PaymentMode: mode,
		ReferenceNo: req.ReferenceNo,
		Notes:       req.Notes,
		CreatedAt:   time.Now().UTC(),
	}

	balanceDelta := accounting.SettlementDelta(decimal.Zero, receipt.Amount)
	if err := s.receiptRepo.SaveReceipt(ctx, receipt, balanceDelta); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to save receipt", slog.String("receipt_id", receipt.ReceiptID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Receipt recorded",
		slog.String("receipt_id", receipt.ReceiptID),
		slog.String("customer_id", receipt.CustomerID),
		slog.String("amount", receipt.Amount.String()),
		slog.String("receipt_type", receipt.Type()),
	)
	return &receipt, nil
}

// UpdateReceipt rewrites a receipt. The linked sale's collected portion and
// the customer balance both shift by the amount change.
func (s *ReceiptService) UpdateReceipt(ctx context.Context, receiptID string, req dto.UpdateReceiptRequest) (*domain.Receipt, error) {
	existing, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	updated := existing.Receipt
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
	if err := s.receiptRepo.UpdateReceipt(ctx, updated, settledDelta, balanceDelta); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to update receipt", slog.String("receipt_id", receiptID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Receipt updated", slog.String("receipt_id", receiptID))
	return &updated, nil
}

// DeleteReceipt removes a receipt, reversing its settlement and restoring
// the customer balance.
func (s *ReceiptService) DeleteReceipt(ctx context.Context, receiptID string) error {
	existing, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		return err
	}

	settledDelta := existing.Amount.Neg()
	balanceDelta := accounting.SettlementDelta(existing.Amount, decimal.Zero)
	if err := s.receiptRepo.DeleteReceipt(ctx, existing.Receipt, settledDelta, balanceDelta); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to delete receipt", slog.String("receipt_id", receiptID))
		}
		return err
	}

	s.LogInfo(ctx, "Receipt deleted", slog.String("receipt_id", receiptID))
	return nil
}

// GetReceiptByID retrieves a receipt with customer and linked sale details.
func (s *ReceiptService) GetReceiptByID(ctx context.Context, receiptID string) (*domain.ReceiptWithCustomer, error) {
	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find receipt", slog.String("receipt_id", receiptID))
		}
		return nil, err
	}
	return receipt, nil
}

// ListReceipts retrieves a paginated list of receipts, newest first.
func (s *ReceiptService) ListReceipts(ctx context.Context, limit int, offset int) ([]domain.ReceiptWithCustomer, error) {
	receipts, err := s.receiptRepo.ListReceipts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list receipts")
		return nil, err
	}
	return receipts, nil
}

// ListReceiptsByCustomer retrieves receipts collected from one customer.
func (s *ReceiptService) ListReceiptsByCustomer(ctx context.Context, customerID string, limit int) ([]domain.ReceiptWithCustomer, error) {
	receipts, err := s.receiptRepo.ListReceiptsByCustomer(ctx, customerID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list receipts by customer", slog.String("customer_id", customerID))
		return nil, err
	}
	return receipts, nil
}

// ListReceiptsByDateRange retrieves receipts dated within [from, to].
func (s *ReceiptService) ListReceiptsByDateRange(ctx context.Context, from, to time.Time) ([]domain.ReceiptWithCustomer, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: date range end precedes start", apperrors.ErrValidation)
	}
	receipts, err := s.receiptRepo.ListReceiptsByDateRange(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list receipts by date range")
		return nil, err
	}
	return receipts, nil
}

// ListReceiptsByMode retrieves receipts settled with one instrument.
func (s *ReceiptService) ListReceiptsByMode(ctx context.Context, mode domain.PaymentMode) ([]domain.ReceiptWithCustomer, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment mode %q", apperrors.ErrValidation, mode)
	}
	receipts, err := s.receiptRepo.ListReceiptsByMode(ctx, mode)
	if err != nil {
		s.LogError(ctx, err, "Failed to list receipts by mode", slog.String("mode", string(mode)))
		return nil, err
	}
	return receipts, nil
}

// GetReceiptSummary aggregates receipts into linked/advance buckets.
func (s *ReceiptService) GetReceiptSummary(ctx context.Context, from, to *time.Time) (*domain.ReceiptSummary, error) {
	summary, err := s.receiptRepo.GetReceiptSummary(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate receipt summary")
		return nil, err
	}
	return summary, nil
}

// GetReceiptModeSummary groups receipt totals by instrument.
func (s *ReceiptService) GetReceiptModeSummary(ctx context.Context, from, to *time.Time) ([]domain.ModeSummary, error) {
	summary, err := s.receiptRepo.GetReceiptModeSummary(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate receipts by mode")
		return nil, err
	}
	return summary, nil
}
