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

type SaleService struct {
	BaseService
	saleRepo portsrepo.SaleRepositoryFacade
}

// NewSaleService creates the sale service backed by the given repository.
func NewSaleService(repo portsrepo.SaleRepositoryFacade) *SaleService {
	return &SaleService{saleRepo: repo}
}

var _ portssvc.SaleSvcFacade = (*SaleService)(nil)

func validateSaleAmounts(amount, received decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: sale amount must be positive", apperrors.ErrValidation)
	}
	if received.IsNegative() {
		return fmt.Errorf("%w: received amount cannot be negative", apperrors.ErrValidation)
	}
	if received.GreaterThan(amount) {
		return fmt.Errorf("%w: received amount cannot exceed the sale amount", apperrors.ErrValidation)
	}
	return nil
}

// CreateSale records a sale. The customer's receivable balance grows by
// the uncollected portion; both writes land in one repository transaction.
func (s *SaleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*domain.Sale, error) {
	date, err := parseLedgerDate(req.Date)
	if err != nil {
		return nil, err
	}
	if err := validateSaleAmounts(req.Amount, req.ReceivedAmount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sale := domain.Sale{
		SaleID:         uuid.NewString(),
		Date:           date,
		CustomerID:     req.CustomerID,
		InvoiceNo:      req.InvoiceNo,
		Amount:         req.Amount,
		ReceivedAmount: req.ReceivedAmount,
		Items:          req.Items,
		Notes:          req.Notes,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	balanceDelta := accounting.OutstandingDelta(decimal.Zero, decimal.Zero, sale.Amount, sale.ReceivedAmount)
	if err := s.saleRepo.SaveSale(ctx, sale, balanceDelta); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to save sale", slog.String("sale_id", sale.SaleID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Sale recorded",
		slog.String("sale_id", sale.SaleID),
		slog.String("customer_id", sale.CustomerID),
		slog.String("amount", sale.Amount.String()),
	)
	return &sale, nil
}

// UpdateSale rewrites a sale and shifts the customer balance by the change
// in its uncollected portion. The customer link is fixed at creation.
func (s *SaleService) UpdateSale(ctx context.Context, saleID string, req dto.UpdateSaleRequest) (*domain.Sale, error) {
	existing, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	updated := existing.Sale
	if req.Date != nil {
		date, err := parseLedgerDate(*req.Date)
		if err != nil {
			return nil, err
		}
		updated.Date = date
	}
	if req.InvoiceNo != nil {
		updated.InvoiceNo = *req.InvoiceNo
	}
	if req.Items != nil {
		updated.Items = *req.Items
	}
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if req.ReceivedAmount != nil {
		updated.ReceivedAmount = *req.ReceivedAmount
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	if err := validateSaleAmounts(updated.Amount, updated.ReceivedAmount); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()

	balanceDeltas := map[string]decimal.Decimal{
		updated.CustomerID: accounting.OutstandingDelta(existing.Amount, existing.ReceivedAmount, updated.Amount, updated.ReceivedAmount),
	}
	if err := s.saleRepo.UpdateSale(ctx, updated, balanceDeltas); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update sale", slog.String("sale_id", saleID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Sale updated", slog.String("sale_id", saleID))
	return &updated, nil
}

// DeleteSale removes a sale without linked receipts and reverses its
// uncollected portion from the customer balance.
func (s *SaleService) DeleteSale(ctx context.Context, saleID string) error {
	existing, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return err
	}

	balanceDelta := accounting.OutstandingDelta(existing.Amount, existing.ReceivedAmount, decimal.Zero, decimal.Zero)
	if err := s.saleRepo.DeleteSale(ctx, saleID, existing.CustomerID, balanceDelta); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to delete sale", slog.String("sale_id", saleID))
		}
		return err
	}

	s.LogInfo(ctx, "Sale deleted", slog.String("sale_id", saleID))
	return nil
}

// GetSaleByID retrieves a sale with customer details and its collection
// history.
func (s *SaleService) GetSaleByID(ctx context.Context, saleID string) (*domain.SaleWithCustomer, []domain.ReceiptWithCustomer, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find sale", slog.String("sale_id", saleID))
		}
		return nil, nil, err
	}

	receipts, err := s.saleRepo.ListSaleReceipts(ctx, saleID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load sale receipts", slog.String("sale_id", saleID))
		return nil, nil, err
	}
	return sale, receipts, nil
}

// ListSales retrieves a paginated list of sales, newest first.
func (s *SaleService) ListSales(ctx context.Context, limit int, offset int) ([]domain.SaleWithCustomer, error) {
	sales, err := s.saleRepo.ListSales(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sales")
		return nil, err
	}
	return sales, nil
}

// ListSalesByCustomer retrieves sales for one customer.
func (s *SaleService) ListSalesByCustomer(ctx context.Context, customerID string, limit int) ([]domain.SaleWithCustomer, error) {
	sales, err := s.saleRepo.ListSalesByCustomer(ctx, customerID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sales by customer", slog.String("customer_id", customerID))
		return nil, err
	}
	return sales, nil
}

// ListSalesByDateRange retrieves sales dated within [from, to].
func (s *SaleService) ListSalesByDateRange(ctx context.Context, from, to time.Time) ([]domain.SaleWithCustomer, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: date range end precedes start", apperrors.ErrValidation)
	}
	sales, err := s.saleRepo.ListSalesByDateRange(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sales by date range")
		return nil, err
	}
	return sales, nil
}

// ListOutstandingSales retrieves sales with an uncollected portion.
func (s *SaleService) ListOutstandingSales(ctx context.Context, customerID string) ([]domain.SaleWithCustomer, error) {
	sales, err := s.saleRepo.ListOutstandingSales(ctx, customerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list outstanding sales")
		return nil, err
	}
	return sales, nil
}

// GetSaleSummary aggregates sale totals and status counts.
func (s *SaleService) GetSaleSummary(ctx context.Context, from, to *time.Time) (*domain.SaleSummary, error) {
	summary, err := s.saleRepo.GetSaleSummary(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate sale summary")
		return nil, err
	}
	return summary, nil
}
