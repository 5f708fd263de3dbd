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

type PurchaseService struct {
	BaseService
	purchaseRepo portsrepo.PurchaseRepositoryFacade
}

// NewPurchaseService creates the purchase service backed by the given repository.
func NewPurchaseService(repo portsrepo.PurchaseRepositoryFacade) *PurchaseService {
	return &PurchaseService{purchaseRepo: repo}
}

var _ portssvc.PurchaseSvcFacade = (*PurchaseService)(nil)

func validatePurchaseAmounts(amount, paid decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: purchase amount must be positive", apperrors.ErrValidation)
	}
	if paid.IsNegative() {
		return fmt.Errorf("%w: paid amount cannot be negative", apperrors.ErrValidation)
	}
	if paid.GreaterThan(amount) {
		return fmt.Errorf("%w: paid amount cannot exceed the purchase amount", apperrors.ErrValidation)
	}
	return nil
}

// CreatePurchase records a purchase. The supplier's payable balance grows
// by the unsettled portion; both writes land in one repository transaction.
func (s *PurchaseService) CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest) (*domain.Purchase, error) {
	date, err := parseLedgerDate(req.Date)
	if err != nil {
		return nil, err
	}
	if err := validatePurchaseAmounts(req.Amount, req.PaidAmount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	purchase := domain.Purchase{
		PurchaseID: uuid.NewString(),
		Date:       date,
		SupplierID: req.SupplierID,
		BillNo:     req.BillNo,
		Amount:     req.Amount,
		PaidAmount: req.PaidAmount,
		Items:      req.Items,
		Notes:      req.Notes,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	balanceDelta := accounting.OutstandingDelta(decimal.Zero, decimal.Zero, purchase.Amount, purchase.PaidAmount)
	if err := s.purchaseRepo.SavePurchase(ctx, purchase, balanceDelta); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to save purchase", slog.String("purchase_id", purchase.PurchaseID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Purchase recorded",
		slog.String("purchase_id", purchase.PurchaseID),
		slog.String("supplier_id", purchase.SupplierID),
		slog.String("amount", purchase.Amount.String()),
	)
	return &purchase, nil
}

// UpdatePurchase rewrites a purchase and shifts the supplier balance by the
// change in its unsettled portion. The supplier link is fixed at creation.
func (s *PurchaseService) UpdatePurchase(ctx context.Context, purchaseID string, req dto.UpdatePurchaseRequest) (*domain.Purchase, error) {
	existing, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	updated := existing.Purchase
	if req.Date != nil {
		date, err := parseLedgerDate(*req.Date)
		if err != nil {
			return nil, err
		}
		updated.Date = date
	}
	if req.BillNo != nil {
		updated.BillNo = *req.BillNo
	}
	if req.Items != nil {
		updated.Items = *req.Items
	}
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if req.PaidAmount != nil {
		updated.PaidAmount = *req.PaidAmount
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	if err := validatePurchaseAmounts(updated.Amount, updated.PaidAmount); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()

	balanceDeltas := map[string]decimal.Decimal{
		updated.SupplierID: accounting.OutstandingDelta(existing.Amount, existing.PaidAmount, updated.Amount, updated.PaidAmount),
	}
	if err := s.purchaseRepo.UpdatePurchase(ctx, updated, balanceDeltas); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update purchase", slog.String("purchase_id", purchaseID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Purchase updated", slog.String("purchase_id", purchaseID))
	return &updated, nil
}

// DeletePurchase removes a purchase without linked payments and reverses
// its unsettled portion from the supplier balance.
func (s *PurchaseService) DeletePurchase(ctx context.Context, purchaseID string) error {
	existing, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return err
	}

	balanceDelta := accounting.OutstandingDelta(existing.Amount, existing.PaidAmount, decimal.Zero, decimal.Zero)
	if err := s.purchaseRepo.DeletePurchase(ctx, purchaseID, existing.SupplierID, balanceDelta); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to delete purchase", slog.String("purchase_id", purchaseID))
		}
		return err
	}

	s.LogInfo(ctx, "Purchase deleted", slog.String("purchase_id", purchaseID))
	return nil
}

// GetPurchaseByID retrieves a purchase with supplier details and its
// settlement history.
func (s *PurchaseService) GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.PurchaseWithSupplier, []domain.PaymentWithSupplier, error) {
	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find purchase", slog.String("purchase_id", purchaseID))
		}
		return nil, nil, err
	}

	payments, err := s.purchaseRepo.ListPurchasePayments(ctx, purchaseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load purchase payments", slog.String("purchase_id", purchaseID))
		return nil, nil, err
	}
	return purchase, payments, nil
}

// ListPurchases retrieves a paginated list of purchases, newest first.
func (s *PurchaseService) ListPurchases(ctx context.Context, limit int, offset int) ([]domain.PurchaseWithSupplier, error) {
	purchases, err := s.purchaseRepo.ListPurchases(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list purchases")
		return nil, err
	}
	return purchases, nil
}

// ListPurchasesBySupplier retrieves purchases for one supplier.
func (s *PurchaseService) ListPurchasesBySupplier(ctx context.Context, supplierID string, limit int) ([]domain.PurchaseWithSupplier, error) {
	purchases, err := s.purchaseRepo.ListPurchasesBySupplier(ctx, supplierID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list purchases by supplier", slog.String("supplier_id", supplierID))
		return nil, err
	}
	return purchases, nil
}

// ListPurchasesByDateRange retrieves purchases dated within [from, to].
func (s *PurchaseService) ListPurchasesByDateRange(ctx context.Context, from, to time.Time) ([]domain.PurchaseWithSupplier, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: date range end precedes start", apperrors.ErrValidation)
	}
	purchases, err := s.purchaseRepo.ListPurchasesByDateRange(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list purchases by date range")
		return nil, err
	}
	return purchases, nil
}

// ListOutstandingPurchases retrieves purchases with an unsettled portion.
func (s *PurchaseService) ListOutstandingPurchases(ctx context.Context, supplierID string) ([]domain.PurchaseWithSupplier, error) {
	purchases, err := s.purchaseRepo.ListOutstandingPurchases(ctx, supplierID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list outstanding purchases")
		return nil, err
	}
	return purchases, nil
}

// GetPurchaseSummary aggregates purchase totals and status counts.
func (s *PurchaseService) GetPurchaseSummary(ctx context.Context, from, to *time.Time) (*domain.PurchaseSummary, error) {
	summary, err := s.purchaseRepo.GetPurchaseSummary(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate purchase summary")
		return nil, err
	}
	return summary, nil
}
