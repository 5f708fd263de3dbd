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

// --- Mock ReceiptRepository ---
type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) FindReceiptByID(ctx context.Context, receiptID string) (*domain.ReceiptWithCustomer, error) {
	args := m.Called(ctx, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReceiptWithCustomer), args.Error(1)
}

func (m *MockReceiptRepository) ListReceipts(ctx context.Context, limit int, offset int) ([]domain.ReceiptWithCustomer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReceiptWithCustomer), args.Error(1)
}

func (m *MockReceiptRepository) ListReceiptsByCustomer(ctx context.Context, customerID string, limit int) ([]domain.ReceiptWithCustomer, error) {
	args := m.Called(ctx, customerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReceiptWithCustomer), args.Error(1)
}

func (m *MockReceiptRepository) ListReceiptsByDateRange(ctx context.Context, from, to time.Time) ([]domain.ReceiptWithCustomer, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReceiptWithCustomer), args.Error(1)
}

func (m *MockReceiptRepository) ListReceiptsByMode(ctx context.Context, mode domain.PaymentMode) ([]domain.ReceiptWithCustomer, error) {
	args := m.Called(ctx, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReceiptWithCustomer), args.Error(1)
}

func (m *MockReceiptRepository) GetReceiptSummary(ctx context.Context, from, to *time.Time) (*domain.ReceiptSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReceiptSummary), args.Error(1)
}

func (m *MockReceiptRepository) GetReceiptModeSummary(ctx context.Context, from, to *time.Time) ([]domain.ModeSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ModeSummary), args.Error(1)
}

func (m *MockReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt, balanceDelta decimal.Decimal) error {
	args := m.Called(ctx, receipt, balanceDelta)
	return args.Error(0)
}

func (m *MockReceiptRepository) UpdateReceipt(ctx context.Context, receipt domain.Receipt, settledDelta, balanceDelta decimal.Decimal) error {
	args := m.Called(ctx, receipt, settledDelta, balanceDelta)
	return args.Error(0)
}

func (m *MockReceiptRepository) DeleteReceipt(ctx context.Context, receipt domain.Receipt, settledDelta, balanceDelta decimal.Decimal) error {
	args := m.Called(ctx, receipt, settledDelta, balanceDelta)
	return args.Error(0)
}

// --- Test Suite ---
type ReceiptServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockReceiptRepository
	mockSaleRepo *MockSaleRepository
	service      portssvc.ReceiptSvcFacade
}

func (suite *ReceiptServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReceiptRepository)
	suite.mockSaleRepo = new(MockSaleRepository)
	suite.service = services.NewReceiptService(suite.mockRepo, suite.mockSaleRepo)
}

// --- Test Cases ---

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_LinkedToSale() {
	ctx := context.Background()
	customerID := uuid.NewString()
	saleID := uuid.NewString()
	sale := &domain.SaleWithCustomer{
		Sale: domain.Sale{
			SaleID:         saleID,
			CustomerID:     customerID,
			Amount:         decimal.NewFromInt(2400),
			ReceivedAmount: decimal.NewFromInt(400),
		},
	}
	req := dto.CreateReceiptRequest{
		Date:        "2026-05-10",
		CustomerID:  customerID,
		SaleID:      &saleID,
		Amount:      decimal.NewFromInt(1000),
		PaymentMode: "bank",
	}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()
	suite.mockRepo.On("SaveReceipt", ctx,
		mock.MatchedBy(func(r domain.Receipt) bool {
			return r.CustomerID == customerID && r.SaleID != nil && *r.SaleID == saleID && r.Amount.Equal(req.Amount)
		}),
		mock.MatchedBy(func(delta decimal.Decimal) bool {
			// Collecting shrinks the receivable balance.
			return delta.Equal(decimal.NewFromInt(-1000))
		}),
	).Return(nil).Once()

	receipt, err := suite.service.CreateReceipt(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("Sale Receipt", receipt.Type())
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_Overcollection() {
	ctx := context.Background()
	customerID := uuid.NewString()
	saleID := uuid.NewString()
	sale := &domain.SaleWithCustomer{
		Sale: domain.Sale{
			SaleID:         saleID,
			CustomerID:     customerID,
			Amount:         decimal.NewFromInt(2400),
			ReceivedAmount: decimal.NewFromInt(2200),
		},
	}
	req := dto.CreateReceiptRequest{
		Date:        "2026-05-10",
		CustomerID:  customerID,
		SaleID:      &saleID,
		Amount:      decimal.NewFromInt(500),
		PaymentMode: "cash",
	}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()

	receipt, err := suite.service.CreateReceipt(ctx, req)

	suite.Require().Error(err)
	suite.Nil(receipt)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveReceipt")
}

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_CustomerMismatch() {
	ctx := context.Background()
	saleID := uuid.NewString()
	sale := &domain.SaleWithCustomer{
		Sale: domain.Sale{
			SaleID:     saleID,
			CustomerID: uuid.NewString(),
			Amount:     decimal.NewFromInt(2400),
		},
	}
	req := dto.CreateReceiptRequest{
		Date:        "2026-05-10",
		CustomerID:  uuid.NewString(),
		SaleID:      &saleID,
		Amount:      decimal.NewFromInt(500),
		PaymentMode: "cash",
	}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()

	receipt, err := suite.service.CreateReceipt(ctx, req)

	suite.Require().Error(err)
	suite.Nil(receipt)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveReceipt")
}

func (suite *ReceiptServiceTestSuite) TestDeleteReceipt_RestoresBalance() {
	ctx := context.Background()
	receiptID := uuid.NewString()
	saleID := uuid.NewString()
	existing := &domain.ReceiptWithCustomer{
		Receipt: domain.Receipt{
			ReceiptID:  receiptID,
			CustomerID: uuid.NewString(),
			SaleID:     &saleID,
			Amount:     decimal.NewFromInt(1000),
		},
	}

	suite.mockRepo.On("FindReceiptByID", ctx, receiptID).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteReceipt", ctx, existing.Receipt,
		mock.MatchedBy(func(settledDelta decimal.Decimal) bool {
			return settledDelta.Equal(decimal.NewFromInt(-1000))
		}),
		mock.MatchedBy(func(balanceDelta decimal.Decimal) bool {
			return balanceDelta.Equal(decimal.NewFromInt(1000))
		}),
	).Return(nil).Once()

	err := suite.service.DeleteReceipt(ctx, receiptID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestReceiptService(t *testing.T) {
	suite.Run(t, new(ReceiptServiceTestSuite))
}
