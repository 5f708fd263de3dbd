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

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentWithSupplier, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentWithSupplier), args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, limit int, offset int) ([]domain.PaymentWithSupplier, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentWithSupplier), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsBySupplier(ctx context.Context, supplierID string, limit int) ([]domain.PaymentWithSupplier, error) {
	args := m.Called(ctx, supplierID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentWithSupplier), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByDateRange(ctx context.Context, from, to time.Time) ([]domain.PaymentWithSupplier, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentWithSupplier), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByMode(ctx context.Context, mode domain.PaymentMode) ([]domain.PaymentWithSupplier, error) {
	args := m.Called(ctx, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentWithSupplier), args.Error(1)
}

func (m *MockPaymentRepository) GetPaymentSummary(ctx context.Context, from, to *time.Time) (*domain.PaymentSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentSummary), args.Error(1)
}

func (m *MockPaymentRepository) GetPaymentModeSummary(ctx context.Context, from, to *time.Time) ([]domain.ModeSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ModeSummary), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, balanceDelta decimal.Decimal) error {
	args := m.Called(ctx, payment, balanceDelta)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment, settledDelta, balanceDelta decimal.Decimal) error {
	args := m.Called(ctx, payment, settledDelta, balanceDelta)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeletePayment(ctx context.Context, payment domain.Payment, settledDelta, balanceDelta decimal.Decimal) error {
	args := m.Called(ctx, payment, settledDelta, balanceDelta)
	return args.Error(0)
}

// --- Test Suite ---
type PaymentServiceTestSuite struct {
	suite.Suite
	mockRepo         *MockPaymentRepository
	mockPurchaseRepo *MockPurchaseRepository
	service          portssvc.PaymentSvcFacade
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPaymentRepository)
	suite.mockPurchaseRepo = new(MockPurchaseRepository)
	suite.service = services.NewPaymentService(suite.mockRepo, suite.mockPurchaseRepo)
}

// --- Test Cases ---

func (suite *PaymentServiceTestSuite) TestCreatePayment_LinkedToPurchase() {
	ctx := context.Background()
	supplierID := uuid.NewString()
	purchaseID := uuid.NewString()
	purchase := &domain.PurchaseWithSupplier{
		Purchase: domain.Purchase{
			PurchaseID: purchaseID,
			SupplierID: supplierID,
			Amount:     decimal.NewFromInt(1000),
			PaidAmount: decimal.NewFromInt(300),
		},
	}
	req := dto.CreatePaymentRequest{
		Date:        "2026-04-15",
		SupplierID:  supplierID,
		PurchaseID:  &purchaseID,
		Amount:      decimal.NewFromInt(400),
		PaymentMode: "upi",
	}

	suite.mockPurchaseRepo.On("FindPurchaseByID", ctx, purchaseID).Return(purchase, nil).Once()
	suite.mockRepo.On("SavePayment", ctx,
		mock.MatchedBy(func(p domain.Payment) bool {
			return p.SupplierID == supplierID && p.PurchaseID != nil && *p.PurchaseID == purchaseID &&
				p.Amount.Equal(req.Amount) && p.PaymentMode == domain.ModeUPI
		}),
		mock.MatchedBy(func(delta decimal.Decimal) bool {
			// Paying down debt shrinks the payable balance.
			return delta.Equal(decimal.NewFromInt(-400))
		}),
	).Return(nil).Once()

	payment, err := suite.service.CreatePayment(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Equal("Purchase Payment", payment.Type())
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_Advance() {
	ctx := context.Background()
	supplierID := uuid.NewString()
	req := dto.CreatePaymentRequest{
		Date:        "2026-04-15",
		SupplierID:  supplierID,
		Amount:      decimal.NewFromInt(250),
		PaymentMode: "cash",
	}

	suite.mockRepo.On("SavePayment", ctx,
		mock.MatchedBy(func(p domain.Payment) bool {
			return p.PurchaseID == nil && p.Amount.Equal(req.Amount)
		}),
		mock.MatchedBy(func(delta decimal.Decimal) bool {
			return delta.Equal(decimal.NewFromInt(-250))
		}),
	).Return(nil).Once()

	payment, err := suite.service.CreatePayment(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("Advance Payment", payment.Type())
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "FindPurchaseByID")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_Overpayment() {
	ctx := context.Background()
	supplierID := uuid.NewString()
	purchaseID := uuid.NewString()
	purchase := &domain.PurchaseWithSupplier{
		Purchase: domain.Purchase{
			PurchaseID: purchaseID,
			SupplierID: supplierID,
			Amount:     decimal.NewFromInt(1000),
			PaidAmount: decimal.NewFromInt(800),
		},
	}
	req := dto.CreatePaymentRequest{
		Date:        "2026-04-15",
		SupplierID:  supplierID,
		PurchaseID:  &purchaseID,
		Amount:      decimal.NewFromInt(300),
		PaymentMode: "bank",
	}

	suite.mockPurchaseRepo.On("FindPurchaseByID", ctx, purchaseID).Return(purchase, nil).Once()

	payment, err := suite.service.CreatePayment(ctx, req)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePayment")
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_SupplierMismatch() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	purchase := &domain.PurchaseWithSupplier{
		Purchase: domain.Purchase{
			PurchaseID: purchaseID,
			SupplierID: uuid.NewString(),
			Amount:     decimal.NewFromInt(1000),
		},
	}
	req := dto.CreatePaymentRequest{
		Date:        "2026-04-15",
		SupplierID:  uuid.NewString(),
		PurchaseID:  &purchaseID,
		Amount:      decimal.NewFromInt(100),
		PaymentMode: "cash",
	}

	suite.mockPurchaseRepo.On("FindPurchaseByID", ctx, purchaseID).Return(purchase, nil).Once()

	payment, err := suite.service.CreatePayment(ctx, req)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePayment")
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_UnknownMode() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		Date:        "2026-04-15",
		SupplierID:  uuid.NewString(),
		Amount:      decimal.NewFromInt(100),
		PaymentMode: "barter",
	}

	payment, err := suite.service.CreatePayment(ctx, req)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePayment")
}

func (suite *PaymentServiceTestSuite) TestUpdatePayment_ShiftsSettlementAndBalance() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	purchaseID := uuid.NewString()
	existing := &domain.PaymentWithSupplier{
		Payment: domain.Payment{
			PaymentID:   paymentID,
			SupplierID:  uuid.NewString(),
			PurchaseID:  &purchaseID,
			Amount:      decimal.NewFromInt(400),
			PaymentMode: domain.ModeCash,
		},
	}
	newAmount := decimal.NewFromInt(600)

	suite.mockRepo.On("FindPaymentByID", ctx, paymentID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdatePayment", ctx,
		mock.MatchedBy(func(p domain.Payment) bool {
			return p.PaymentID == paymentID && p.Amount.Equal(newAmount)
		}),
		mock.MatchedBy(func(settledDelta decimal.Decimal) bool {
			// Purchase's settled portion grows by the extra 200.
			return settledDelta.Equal(decimal.NewFromInt(200))
		}),
		mock.MatchedBy(func(balanceDelta decimal.Decimal) bool {
			return balanceDelta.Equal(decimal.NewFromInt(-200))
		}),
	).Return(nil).Once()

	payment, err := suite.service.UpdatePayment(ctx, paymentID, dto.UpdatePaymentRequest{Amount: &newAmount})

	suite.Require().NoError(err)
	suite.True(payment.Amount.Equal(newAmount))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_RestoresBalance() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	purchaseID := uuid.NewString()
	existing := &domain.PaymentWithSupplier{
		Payment: domain.Payment{
			PaymentID:  paymentID,
			SupplierID: uuid.NewString(),
			PurchaseID: &purchaseID,
			Amount:     decimal.NewFromInt(400),
		},
	}

	suite.mockRepo.On("FindPaymentByID", ctx, paymentID).Return(existing, nil).Once()
	suite.mockRepo.On("DeletePayment", ctx, existing.Payment,
		mock.MatchedBy(func(settledDelta decimal.Decimal) bool {
			return settledDelta.Equal(decimal.NewFromInt(-400))
		}),
		mock.MatchedBy(func(balanceDelta decimal.Decimal) bool {
			// Removing the payment re-opens the debt.
			return balanceDelta.Equal(decimal.NewFromInt(400))
		}),
	).Return(nil).Once()

	err := suite.service.DeletePayment(ctx, paymentID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestListPaymentsByMode_Invalid() {
	ctx := context.Background()

	payments, err := suite.service.ListPaymentsByMode(ctx, domain.PaymentMode("barter"))

	suite.Require().Error(err)
	suite.Nil(payments)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListPaymentsByMode")
}

// --- Run Suite ---
func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
