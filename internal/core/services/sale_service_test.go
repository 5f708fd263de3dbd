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

// --- Mock SaleRepository ---
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.SaleWithCustomer, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaleWithCustomer), args.Error(1)
}

func (m *MockSaleRepository) ListSales(ctx context.Context, limit int, offset int) ([]domain.SaleWithCustomer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SaleWithCustomer), args.Error(1)
}

func (m *MockSaleRepository) ListSalesByCustomer(ctx context.Context, customerID string, limit int) ([]domain.SaleWithCustomer, error) {
	args := m.Called(ctx, customerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SaleWithCustomer), args.Error(1)
}

func (m *MockSaleRepository) ListSalesByDateRange(ctx context.Context, from, to time.Time) ([]domain.SaleWithCustomer, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SaleWithCustomer), args.Error(1)
}

func (m *MockSaleRepository) ListOutstandingSales(ctx context.Context, customerID string) ([]domain.SaleWithCustomer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SaleWithCustomer), args.Error(1)
}

func (m *MockSaleRepository) ListSaleReceipts(ctx context.Context, saleID string) ([]domain.ReceiptWithCustomer, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReceiptWithCustomer), args.Error(1)
}

func (m *MockSaleRepository) GetSaleSummary(ctx context.Context, from, to *time.Time) (*domain.SaleSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaleSummary), args.Error(1)
}

func (m *MockSaleRepository) SaveSale(ctx context.Context, sale domain.Sale, balanceDelta decimal.Decimal) error {
	args := m.Called(ctx, sale, balanceDelta)
	return args.Error(0)
}

func (m *MockSaleRepository) UpdateSale(ctx context.Context, sale domain.Sale, balanceDeltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, sale, balanceDeltas)
	return args.Error(0)
}

func (m *MockSaleRepository) DeleteSale(ctx context.Context, saleID string, customerID string, balanceDelta decimal.Decimal) error {
	args := m.Called(ctx, saleID, customerID, balanceDelta)
	return args.Error(0)
}

// --- Test Suite ---
type SaleServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSaleRepository
	service  portssvc.SaleSvcFacade
}

func (suite *SaleServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSaleRepository)
	suite.service = services.NewSaleService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *SaleServiceTestSuite) TestCreateSale_BalanceGrowsByOutstanding() {
	ctx := context.Background()
	customerID := uuid.NewString()
	req := dto.CreateSaleRequest{
		Date:           "2026-05-02",
		CustomerID:     customerID,
		InvoiceNo:      "INV-107",
		Amount:         decimal.NewFromInt(2400),
		ReceivedAmount: decimal.NewFromInt(400),
	}

	suite.mockRepo.On("SaveSale", ctx,
		mock.MatchedBy(func(s domain.Sale) bool {
			return s.CustomerID == customerID && s.Amount.Equal(req.Amount) && s.ReceivedAmount.Equal(req.ReceivedAmount)
		}),
		mock.MatchedBy(func(delta decimal.Decimal) bool {
			return delta.Equal(decimal.NewFromInt(2000))
		}),
	).Return(nil).Once()

	sale, err := suite.service.CreateSale(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(sale)
	suite.Equal(domain.StatusPartial, sale.Status())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_ReceivedExceedsAmount() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		Date:           "2026-05-02",
		CustomerID:     uuid.NewString(),
		Amount:         decimal.NewFromInt(500),
		ReceivedAmount: decimal.NewFromInt(900),
	}

	sale, err := suite.service.CreateSale(ctx, req)

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSale")
}

func (suite *SaleServiceTestSuite) TestDeleteSale_ReversesOutstanding() {
	ctx := context.Background()
	saleID := uuid.NewString()
	customerID := uuid.NewString()
	existing := &domain.SaleWithCustomer{
		Sale: domain.Sale{
			SaleID:         saleID,
			CustomerID:     customerID,
			Amount:         decimal.NewFromInt(2400),
			ReceivedAmount: decimal.NewFromInt(400),
		},
	}

	suite.mockRepo.On("FindSaleByID", ctx, saleID).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteSale", ctx, saleID, customerID,
		mock.MatchedBy(func(delta decimal.Decimal) bool {
			return delta.Equal(decimal.NewFromInt(-2000))
		}),
	).Return(nil).Once()

	err := suite.service.DeleteSale(ctx, saleID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestGetSaleByID_IncludesReceipts() {
	ctx := context.Background()
	saleID := uuid.NewString()
	expected := &domain.SaleWithCustomer{
		Sale:         domain.Sale{SaleID: saleID, Amount: decimal.NewFromInt(2400)},
		CustomerName: "Verma Stores",
	}
	receipts := []domain.ReceiptWithCustomer{
		{Receipt: domain.Receipt{SaleID: &saleID, Amount: decimal.NewFromInt(400)}},
	}

	suite.mockRepo.On("FindSaleByID", ctx, saleID).Return(expected, nil).Once()
	suite.mockRepo.On("ListSaleReceipts", ctx, saleID).Return(receipts, nil).Once()

	sale, history, err := suite.service.GetSaleByID(ctx, saleID)

	suite.Require().NoError(err)
	suite.Equal(expected, sale)
	suite.Len(history, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestSaleService(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
