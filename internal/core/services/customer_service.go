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

type CustomerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates the customer service backed by the given repository.
func NewCustomerService(repo portsrepo.CustomerRepositoryFacade) *CustomerService {
	return &CustomerService{customerRepo: repo}
}

var _ portssvc.CustomerSvcFacade = (*CustomerService)(nil)

// CreateCustomer persists a new customer with a zero opening balance.
func (s *CustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: customer name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       name,
		Contact:    strings.TrimSpace(req.Contact),
		Address:    strings.TrimSpace(req.Address),
		Balance:    decimal.Zero,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to save customer", slog.String("customer_id", customer.CustomerID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

// GetCustomerByID retrieves a specific customer.
func (s *CustomerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find customer", slog.String("customer_id", customerID))
		}
		return nil, err
	}
	return customer, nil
}

// GetCustomerDetails retrieves a customer with totals and its recent
// transaction feed.
func (s *CustomerService) GetCustomerDetails(ctx context.Context, customerID string, txnLimit int) (*domain.CustomerWithTotals, []domain.TransactionEntry, error) {
	customer, err := s.customerRepo.FindCustomerWithTotals(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find customer with totals", slog.String("customer_id", customerID))
		}
		return nil, nil, err
	}

	transactions, err := s.customerRepo.GetCustomerTransactions(ctx, customerID, txnLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to load customer transactions", slog.String("customer_id", customerID))
		return nil, nil, err
	}
	return customer, transactions, nil
}

// ListCustomers retrieves a paginated list of customers with totals.
func (s *CustomerService) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.CustomerWithTotals, error) {
	customers, err := s.customerRepo.ListCustomers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers")
		return nil, err
	}
	return customers, nil
}

// SearchCustomers retrieves customers whose name or contact matches the query.
func (s *CustomerService) SearchCustomers(ctx context.Context, query string, limit int) ([]domain.CustomerWithTotals, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListCustomers(ctx, limit, 0)
	}

	customers, err := s.customerRepo.SearchCustomers(ctx, query, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to search customers", slog.String("query", query))
		return nil, err
	}
	return customers, nil
}

// ListCustomersByBalance retrieves customers filtered by balance sign.
func (s *CustomerService) ListCustomersByBalance(ctx context.Context, filter domain.BalanceFilter) ([]domain.CustomerWithTotals, error) {
	customers, err := s.customerRepo.ListCustomersByBalance(ctx, filter)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list customers by balance", slog.String("filter", string(filter)))
		}
		return nil, err
	}
	return customers, nil
}

// GetCustomerSummary aggregates customer counts and receivable totals.
func (s *CustomerService) GetCustomerSummary(ctx context.Context) (*domain.CustomerSummary, error) {
	summary, err := s.customerRepo.GetCustomerSummary(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate customer summary")
		return nil, err
	}
	return summary, nil
}

// UpdateCustomer updates an existing customer's details.
func (s *CustomerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: customer name cannot be blank", apperrors.ErrValidation)
		}
		customer.Name = name
	}
	if req.Contact != nil {
		customer.Contact = strings.TrimSpace(*req.Contact)
	}
	if req.Address != nil {
		customer.Address = strings.TrimSpace(*req.Address)
	}
	customer.UpdatedAt = time.Now().UTC()

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update customer", slog.String("customer_id", customerID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Customer updated", slog.String("customer_id", customerID))
	return customer, nil
}

// DeleteCustomer removes a customer without recorded sales or receipts.
func (s *CustomerService) DeleteCustomer(ctx context.Context, customerID string) error {
	if err := s.customerRepo.DeleteCustomer(ctx, customerID); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete customer", slog.String("customer_id", customerID))
		}
		return err
	}

	s.LogInfo(ctx, "Customer deleted", slog.String("customer_id", customerID))
	return nil
}
