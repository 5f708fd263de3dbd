package services

import (
	"context"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	"github.com/shopbooks/shopbooks_app/internal/dto"
)

// CustomerReaderSvc defines read operations for customer data
type CustomerReaderSvc interface {
	// GetCustomerByID retrieves a specific customer by its unique identifier.
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// GetCustomerDetails retrieves a customer together with sale and
	// receipt totals and its recent transaction feed.
	GetCustomerDetails(ctx context.Context, customerID string, txnLimit int) (*domain.CustomerWithTotals, []domain.TransactionEntry, error)

	// ListCustomers retrieves a paginated list of customers with totals.
	ListCustomers(ctx context.Context, limit int, offset int) ([]domain.CustomerWithTotals, error)

	// SearchCustomers retrieves customers whose name or contact matches the query.
	SearchCustomers(ctx context.Context, query string, limit int) ([]domain.CustomerWithTotals, error)

	// ListCustomersByBalance retrieves customers filtered by balance sign.
	ListCustomersByBalance(ctx context.Context, filter domain.BalanceFilter) ([]domain.CustomerWithTotals, error)

	// GetCustomerSummary aggregates customer counts and receivable totals.
	GetCustomerSummary(ctx context.Context) (*domain.CustomerSummary, error)
}

// CustomerWriterSvc defines write operations for customer data
type CustomerWriterSvc interface {
	// CreateCustomer persists a new customer with a zero opening balance.
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error)

	// UpdateCustomer updates an existing customer's details.
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error)

	// DeleteCustomer removes a customer without recorded sales or receipts.
	DeleteCustomer(ctx context.Context, customerID string) error
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
}
