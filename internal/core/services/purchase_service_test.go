package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopbooks/shopbooks_app/internal/apperrors"
	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	portssvc "github.com/shopbooks/shopbooks_app/internal/core/ports/services"
	"github.com/shopbooks/shopbooks_app/internal/core/services"
	"github.com/shopbooks/shopbooks_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PurchaseRepository ---
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.PurchaseWithSupplier, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseWithSupplier), args.Error(1)
}

func (m *MockPurchaseRepository) ListPurchases(ctx context.Context, limit int, offset int) ([]domain.PurchaseWithSupplier, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseWithSupplier), args.Error(1)
}

func (m *MockPurchaseRepository) ListPurchasesBySupplier(ctx context.Context, supplierID string, limit int) ([]domain.PurchaseWithSupplier, error) {
	args := m.Called(ctx, supplierID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseWithSupplier), args.Error(1)
}

func (m *MockPurchaseRepository) ListPurchasesByDateRange(ctx context.Context, from, to time.Time) ([]domain.PurchaseWithSupplier, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseWithSupplier), args.Error(1)
}

func (m *MockPurchaseRepository) ListOutstandingPurchases(ctx context.Context, supplierID string) ([]domain.PurchaseWithSupplier, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseWithSupplier), args.Error(1)
}

func (m *MockPurchaseRepository) ListPurchasePayments(ctx context.Context, purchaseID string) ([]domain.PaymentWithSupplier, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentWithSupplier), args.Error(1)
}

func (m *MockPurchaseRepository) GetPurchaseSummary(ctx context.Context, from, to *time.Time) (*domain.PurchaseSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseSummary), args.Error(1)
}

func (m *MockPurchaseRepository) SavePurchase(ctx context.Context, purchase domain.Purchase, balanceDelta decimal.Decimal) error {
	args := m.Called(ctx, purchase, balanceDelta)
	return args.Error(0)
}

func (m *MockPurchaseRepository) UpdatePurchase(ctx context.Context, purchase domain.Purchase, balanceDeltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, purchase, balanceDeltas)
	return args.Error(0)
}

func (m *MockPurchaseRepository) DeletePurchase(ctx context.Context, purchaseID string, supplierID string, balanceDelta decimal.Decimal) error {
	args := m.Called(ctx, purchaseID, supplierID, balanceDelta)
	return args.Error(0)
}

// --- Test Suite ---
type PurchaseServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPurchaseRepository
	service  portssvc.PurchaseSvcFacade
}

func (suite *PurchaseServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPurchaseRepository)
	suite.service = services.NewPurchaseService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_BalanceGrowsByOutstanding() {
	ctx := context.Background()
	supplierID := uuid.NewString()
	req := dto.CreatePurchaseRequest{
		Date:       "2026-04-12",
		SupplierID: supplierID,
		BillNo:     "INV-041",
		Amount:     decimal.NewFromInt(1000),
		PaidAmount: decimal.NewFromInt(300),
	}

	suite.mockRepo.On("SavePurchase", ctx,
		mock.MatchedBy(func(p domain.Purchase) bool {
			return p.SupplierID == supplierID && p.Amount.Equal(req.Amount) && p.PaidAmount.Equal(req.PaidAmount)
		}),
		mock.MatchedBy(func(delta decimal.Decimal) bool {
			// Only the unsettled portion becomes payable.
			return delta.Equal(decimal.NewFromInt(700))
		}),
	).Return(nil).Once()

	purchase, err := suite.service.CreatePurchase(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(purchase)
	suite.Equal(domain.StatusPartial, purchase.Status())
	suite.True(purchase.Outstanding().Equal(decimal.NewFromInt(700)))
	suite.Equal(time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC), purchase.Date)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_BadDate() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequest{
		Date:       "12-04-2026",
		SupplierID: uuid.NewString(),
		Amount:     decimal.NewFromInt(1000),
	}

	purchase, err := suite.service.CreatePurchase(ctx, req)

	suite.Require().Error(err)
	suite.Nil(purchase)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePurchase")
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_PaidExceedsAmount() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequest{
		Date:       "2026-04-12",
		SupplierID: uuid.NewString(),
		Amount:     decimal.NewFromInt(500),
		PaidAmount: decimal.NewFromInt(600),
	}

	purchase, err := suite.service.CreatePurchase(ctx, req)

	suite.Require().Error(err)
	suite.Nil(purchase)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePurchase")
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequest{
		Date:       "2026-04-12",
		SupplierID: uuid.NewString(),
		Amount:     decimal.Zero,
	}

	purchase, err := suite.service.CreatePurchase(ctx, req)

	suite.Require().Error(err)
	suite.Nil(purchase)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePurchase")
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_UnknownSupplier() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequest{
		Date:       "2026-04-12",
		SupplierID: uuid.NewString(),
		Amount:     decimal.NewFromInt(1000),
	}

	suite.mockRepo.On("SavePurchase", ctx, mock.AnythingOfType("domain.Purchase"), mock.AnythingOfType("decimal.Decimal")).
		Return(apperrors.ErrNotFound).Once()

	purchase, err := suite.service.CreatePurchase(ctx, req)

	suite.Require().Error(err)
	suite.Nil(purchase)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestUpdatePurchase_BalanceShiftsByChange() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	supplierID := uuid.NewString()
	existing := &domain.PurchaseWithSupplier{
		Purchase: domain.Purchase{
			PurchaseID: purchaseID,
			SupplierID: supplierID,
			Amount:     decimal.NewFromInt(1000),
			PaidAmount: decimal.NewFromInt(300),
		},
	}
	newAmount := decimal.NewFromInt(1500)

	suite.mockRepo.On("FindPurchaseByID", ctx, purchaseID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdatePurchase", ctx,
		mock.MatchedBy(func(p domain.Purchase) bool {
			return p.PurchaseID == purchaseID && p.Amount.Equal(newAmount)
		}),
		mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
			// Outstanding went from 700 to 1200.
			return len(deltas) == 1 && deltas[supplierID].Equal(decimal.NewFromInt(500))
		}),
	).Return(nil).Once()

	purchase, err := suite.service.UpdatePurchase(ctx, purchaseID, dto.UpdatePurchaseRequest{Amount: &newAmount})

	suite.Require().NoError(err)
	suite.True(purchase.Amount.Equal(newAmount))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestDeletePurchase_ReversesOutstanding() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	supplierID := uuid.NewString()
	existing := &domain.PurchaseWithSupplier{
		Purchase: domain.Purchase{
			PurchaseID: purchaseID,
			SupplierID: supplierID,
			Amount:     decimal.NewFromInt(1000),
			PaidAmount: decimal.NewFromInt(300),
		},
	}

	suite.mockRepo.On("FindPurchaseByID", ctx, purchaseID).Return(existing, nil).Once()
	suite.mockRepo.On("DeletePurchase", ctx, purchaseID, supplierID,
		mock.MatchedBy(func(delta decimal.Decimal) bool {
			return delta.Equal(decimal.NewFromInt(-700))
		}),
	).Return(nil).Once()

	err := suite.service.DeletePurchase(ctx, purchaseID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestDeletePurchase_ProtectedByPayments() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	existing := &domain.PurchaseWithSupplier{
		Purchase: domain.Purchase{
			PurchaseID: purchaseID,
			SupplierID: uuid.NewString(),
			Amount:     decimal.NewFromInt(1000),
		},
	}

	suite.mockRepo.On("FindPurchaseByID", ctx, purchaseID).Return(existing, nil).Once()
	suite.mockRepo.On("DeletePurchase", ctx, purchaseID, existing.SupplierID, mock.AnythingOfType("decimal.Decimal")).
		Return(apperrors.ErrConflict).Once()

	err := suite.service.DeletePurchase(ctx, purchaseID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestGetPurchaseByID_IncludesPayments() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	expected := &domain.PurchaseWithSupplier{
		Purchase:     domain.Purchase{PurchaseID: purchaseID, Amount: decimal.NewFromInt(1000)},
		SupplierName: "Sharma Traders",
	}
	payments := []domain.PaymentWithSupplier{
		{Payment: domain.Payment{PurchaseID: &purchaseID, Amount: decimal.NewFromInt(400)}},
	}

	suite.mockRepo.On("FindPurchaseByID", ctx, purchaseID).Return(expected, nil).Once()
	suite.mockRepo.On("ListPurchasePayments", ctx, purchaseID).Return(payments, nil).Once()

	purchase, history, err := suite.service.GetPurchaseByID(ctx, purchaseID)

	suite.Require().NoError(err)
	suite.Equal(expected, purchase)
	suite.Len(history, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestListPurchasesByDateRange_InvertedRange() {
	ctx := context.Background()
	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -7)

	purchases, err := suite.service.ListPurchasesByDateRange(ctx, from, to)

	suite.Require().Error(err)
	suite.Nil(purchases)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListPurchasesByDateRange")
}

// --- Run Suite ---
func TestPurchaseService(t *testing.T) {
	suite.Run(t, new(PurchaseServiceTestSuite))
}
