package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopbooks/shopbooks_app/internal/apperrors"
	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	portssvc "github.com/shopbooks/shopbooks_app/internal/core/ports/services"
	"github.com/shopbooks/shopbooks_app/internal/core/services"
	"github.com/shopbooks/shopbooks_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SupplierRepository ---
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindSupplierByName(ctx context.Context, name string) (*domain.Supplier, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindSupplierWithTotals(ctx context.Context, supplierID string) (*domain.SupplierWithTotals, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupplierWithTotals), args.Error(1)
}

func (m *MockSupplierRepository) ListSuppliers(ctx context.Context, limit int, offset int) ([]domain.SupplierWithTotals, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupplierWithTotals), args.Error(1)
}

func (m *MockSupplierRepository) SearchSuppliers(ctx context.Context, query string, limit int) ([]domain.SupplierWithTotals, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupplierWithTotals), args.Error(1)
}

func (m *MockSupplierRepository) ListSuppliersByBalance(ctx context.Context, filter domain.BalanceFilter) ([]domain.SupplierWithTotals, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupplierWithTotals), args.Error(1)
}

func (m *MockSupplierRepository) GetSupplierTransactions(ctx context.Context, supplierID string, limit int) ([]domain.TransactionEntry, error) {
	args := m.Called(ctx, supplierID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionEntry), args.Error(1)
}

func (m *MockSupplierRepository) GetSupplierSummary(ctx context.Context) (*domain.SupplierSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupplierSummary), args.Error(1)
}

func (m *MockSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) DeleteSupplier(ctx context.Context, supplierID string) error {
	args := m.Called(ctx, supplierID)
	return args.Error(0)
}

// --- Test Suite ---
type SupplierServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSupplierRepository
	service  portssvc.SupplierSvcFacade
}

func (suite *SupplierServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSupplierRepository)
	suite.service = services.NewSupplierService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *SupplierServiceTestSuite) TestCreateSupplier_Success() {
	ctx := context.Background()
	req := dto.CreateSupplierRequest{
		Name:    "  Sharma Traders ",
		Contact: "9876543210",
		Address: "12 Market Road",
	}

	suite.mockRepo.On("SaveSupplier", ctx, mock.MatchedBy(func(s domain.Supplier) bool {
		return s.Name == "Sharma Traders" && s.Contact == req.Contact && s.Balance.IsZero() && s.SupplierID != ""
	})).Return(nil).Once()

	supplier, err := suite.service.CreateSupplier(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(supplier)
	suite.Equal("Sharma Traders", supplier.Name)
	suite.True(supplier.Balance.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SupplierServiceTestSuite) TestCreateSupplier_BlankName() {
	ctx := context.Background()
	req := dto.CreateSupplierRequest{Name: "   "}

	supplier, err := suite.service.CreateSupplier(ctx, req)

	suite.Require().Error(err)
	suite.Nil(supplier)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSupplier")
}

func (suite *SupplierServiceTestSuite) TestCreateSupplier_DuplicateName() {
	ctx := context.Background()
	req := dto.CreateSupplierRequest{Name: "Sharma Traders"}

	suite.mockRepo.On("SaveSupplier", ctx, mock.AnythingOfType("domain.Supplier")).Return(apperrors.ErrConflict).Once()

	supplier, err := suite.service.CreateSupplier(ctx, req)

	suite.Require().Error(err)
	suite.Nil(supplier)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SupplierServiceTestSuite) TestGetSupplierByID_NotFound() {
	ctx := context.Background()
	supplierID := uuid.NewString()

	suite.mockRepo.On("FindSupplierByID", ctx, supplierID).Return(nil, apperrors.ErrNotFound).Once()

	supplier, err := suite.service.GetSupplierByID(ctx, supplierID)

	suite.Require().Error(err)
	suite.Nil(supplier)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SupplierServiceTestSuite) TestGetSupplierDetails_Success() {
	ctx := context.Background()
	supplierID := uuid.NewString()
	expected := &domain.SupplierWithTotals{
		Supplier:       domain.Supplier{SupplierID: supplierID, Name: "Sharma Traders"},
		TotalPurchases: 2,
	}
	feed := []domain.TransactionEntry{
		{EntryType: domain.EntryPurchase, Amount: decimal.NewFromInt(500)},
		{EntryType: domain.EntryPayment, Amount: decimal.NewFromInt(200)},
	}

	suite.mockRepo.On("FindSupplierWithTotals", ctx, supplierID).Return(expected, nil).Once()
	suite.mockRepo.On("GetSupplierTransactions", ctx, supplierID, 20).Return(feed, nil).Once()

	supplier, transactions, err := suite.service.GetSupplierDetails(ctx, supplierID, 20)

	suite.Require().NoError(err)
	suite.Equal(expected, supplier)
	suite.Len(transactions, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SupplierServiceTestSuite) TestSearchSuppliers_BlankQueryListsAll() {
	ctx := context.Background()
	expected := []domain.SupplierWithTotals{{Supplier: domain.Supplier{Name: "Sharma Traders"}}}

	suite.mockRepo.On("ListSuppliers", ctx, 50, 0).Return(expected, nil).Once()

	suppliers, err := suite.service.SearchSuppliers(ctx, "   ", 50)

	suite.Require().NoError(err)
	suite.Equal(expected, suppliers)
	suite.mockRepo.AssertNotCalled(suite.T(), "SearchSuppliers")
}

func (suite *SupplierServiceTestSuite) TestUpdateSupplier_Success() {
	ctx := context.Background()
	supplierID := uuid.NewString()
	existing := &domain.Supplier{
		SupplierID: supplierID,
		Name:       "Sharma Traders",
		Contact:    "9876543210",
		Balance:    decimal.NewFromInt(1200),
	}
	newName := "Sharma & Sons"

	suite.mockRepo.On("FindSupplierByID", ctx, supplierID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateSupplier", ctx, mock.MatchedBy(func(s domain.Supplier) bool {
		return s.SupplierID == supplierID && s.Name == newName && s.Contact == "9876543210"
	})).Return(nil).Once()

	supplier, err := suite.service.UpdateSupplier(ctx, supplierID, dto.UpdateSupplierRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal(newName, supplier.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SupplierServiceTestSuite) TestUpdateSupplier_BlankName() {
	ctx := context.Background()
	supplierID := uuid.NewString()
	existing := &domain.Supplier{SupplierID: supplierID, Name: "Sharma Traders"}
	blank := "  "

	suite.mockRepo.On("FindSupplierByID", ctx, supplierID).Return(existing, nil).Once()

	supplier, err := suite.service.UpdateSupplier(ctx, supplierID, dto.UpdateSupplierRequest{Name: &blank})

	suite.Require().Error(err)
	suite.Nil(supplier)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateSupplier")
}

func (suite *SupplierServiceTestSuite) TestDeleteSupplier_Protected() {
	ctx := context.Background()
	supplierID := uuid.NewString()

	suite.mockRepo.On("DeleteSupplier", ctx, supplierID).Return(apperrors.ErrConflict).Once()

	err := suite.service.DeleteSupplier(ctx, supplierID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SupplierServiceTestSuite) TestListSuppliersByBalance_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("ListSuppliersByBalance", ctx, domain.BalancePayable).Return(nil, expectedErr).Once()

	suppliers, err := suite.service.ListSuppliersByBalance(ctx, domain.BalancePayable)

	suite.Require().Error(err)
	suite.Nil(suppliers)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestSupplierService(t *testing.T) {
	suite.Run(t, new(SupplierServiceTestSuite))
}
