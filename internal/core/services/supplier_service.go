package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopbooks/shopbooks_app/internal/apperrors"
	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	portsrepo "github.com/shopbooks/shopbooks_app/internal/core/ports/repositories"
	portssvc "github.com/shopbooks/shopbooks_app/internal/core/ports/services"
	"github.com/shopbooks/shopbooks_app/internal/dto"
	"github.com/shopspring/decimal"
)

type SupplierService struct {
	BaseService
	supplierRepo portsrepo.SupplierRepositoryFacade
}

// NewSupplierService creates the supplier service backed by the given repository.
func NewSupplierService(repo portsrepo.SupplierRepositoryFacade) *SupplierService {
	return &SupplierService{supplierRepo: repo}
}

var _ portssvc.SupplierSvcFacade = (*SupplierService)(nil)

// CreateSupplier persists a new supplier with a zero opening balance.
func (s *SupplierService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest) (*domain.Supplier, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: supplier name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	supplier := domain.Supplier{
		SupplierID: uuid.NewString(),
		Name:       name,
		Contact:    strings.TrimSpace(req.Contact),
		Address:    strings.TrimSpace(req.Address),
		Balance:    decimal.Zero,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.supplierRepo.SaveSupplier(ctx, supplier); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to save supplier", slog.String("supplier_id", supplier.SupplierID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Supplier created", slog.String("supplier_id", supplier.SupplierID))
	return &supplier, nil
}

// GetSupplierByID retrieves a specific supplier.
func (s *SupplierService) GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find supplier", slog.String("supplier_id", supplierID))
		}
		return nil, err
	}
	return supplier, nil
}

// GetSupplierDetails retrieves a supplier with totals and its recent
// transaction feed.
func (s *SupplierService) GetSupplierDetails(ctx context.Context, supplierID string, txnLimit int) (*domain.SupplierWithTotals, []domain.TransactionEntry, error) {
	supplier, err := s.supplierRepo.FindSupplierWithTotals(ctx, supplierID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find supplier with totals", slog.String("supplier_id", supplierID))
		}
		return nil, nil, err
	}

	transactions, err := s.supplierRepo.GetSupplierTransactions(ctx, supplierID, txnLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to load supplier transactions", slog.String("supplier_id", supplierID))
		return nil, nil, err
	}
	return supplier, transactions, nil
}

// ListSuppliers retrieves a paginated list of suppliers with totals.
func (s *SupplierService) ListSuppliers(ctx context.Context, limit int, offset int) ([]domain.SupplierWithTotals, error) {
	suppliers, err := s.supplierRepo.ListSuppliers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list suppliers")
		return nil, err
	}
	return suppliers, nil
}

// SearchSuppliers retrieves suppliers whose name or contact matches the query.
func (s *SupplierService) SearchSuppliers(ctx context.Context, query string, limit int) ([]domain.SupplierWithTotals, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListSuppliers(ctx, limit, 0)
	}

	suppliers, err := s.supplierRepo.SearchSuppliers(ctx, query, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to search suppliers", slog.String("query", query))
		return nil, err
	}
	return suppliers, nil
}

// ListSuppliersByBalance retrieves suppliers filtered by balance sign.
func (s *SupplierService) ListSuppliersByBalance(ctx context.Context, filter domain.BalanceFilter) ([]domain.SupplierWithTotals, error) {
	suppliers, err := s.supplierRepo.ListSuppliersByBalance(ctx, filter)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list suppliers by balance", slog.String("filter", string(filter)))
		}
		return nil, err
	}
	return suppliers, nil
}

// GetSupplierSummary aggregates supplier counts and payable totals.
func (s *SupplierService) GetSupplierSummary(ctx context.Context) (*domain.SupplierSummary, error) {
	summary, err := s.supplierRepo.GetSupplierSummary(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate supplier summary")
		return nil, err
	}
	return summary, nil
}

// UpdateSupplier updates an existing supplier's details.
func (s *SupplierService) UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: supplier name cannot be blank", apperrors.ErrValidation)
		}
		supplier.Name = name
	}
	if req.Contact != nil {
		supplier.Contact = strings.TrimSpace(*req.Contact)
	}
	if req.Address != nil {
		supplier.Address = strings.TrimSpace(*req.Address)
	}
	supplier.UpdatedAt = time.Now().UTC()

	if err := s.supplierRepo.UpdateSupplier(ctx, *supplier); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update supplier", slog.String("supplier_id", supplierID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Supplier updated", slog.String("supplier_id", supplierID))
	return supplier, nil
}

// DeleteSupplier removes a supplier without recorded purchases or payments.
func (s *SupplierService) DeleteSupplier(ctx context.Context, supplierID string) error {
	if err := s.supplierRepo.DeleteSupplier(ctx, supplierID); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete supplier", slog.String("supplier_id", supplierID))
		}
		return err
	}

	s.LogInfo(ctx, "Supplier deleted", slog.String("supplier_id", supplierID))
	return nil
}
