package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopbooks/shopbooks_app/internal/apperrors"
	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	portssvc "github.com/shopbooks/shopbooks_app/internal/core/ports/services"
	"github.com/shopbooks/shopbooks_app/internal/dto"
	"github.com/shopbooks/shopbooks_app/internal/handlers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SupplierService ---
type MockSupplierService struct {
	mock.Mock
}

func (m *MockSupplierService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest) (*domain.Supplier, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}
func (m *MockSupplierService) GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}
func (m *MockSupplierService) GetSupplierDetails(ctx context.Context, supplierID string, txnLimit int) (*domain.SupplierWithTotals, []domain.TransactionEntry, error) {
	args := m.Called(ctx, supplierID, txnLimit)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.SupplierWithTotals), args.Get(1).([]domain.TransactionEntry), args.Error(2)
}
func (m *MockSupplierService) ListSuppliers(ctx context.Context, limit int, offset int) ([]domain.SupplierWithTotals, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupplierWithTotals), args.Error(1)
}
func (m *MockSupplierService) SearchSuppliers(ctx context.Context, query string, limit int) ([]domain.SupplierWithTotals, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupplierWithTotals), args.Error(1)
}
func (m *MockSupplierService) ListSuppliersByBalance(ctx context.Context, filter domain.BalanceFilter) ([]domain.SupplierWithTotals, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupplierWithTotals), args.Error(1)
}
func (m *MockSupplierService) GetSupplierSummary(ctx context.Context) (*domain.SupplierSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupplierSummary), args.Error(1)
}
func (m *MockSupplierService) UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest) (*domain.Supplier, error) {
	args := m.Called(ctx, supplierID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}
func (m *MockSupplierService) DeleteSupplier(ctx context.Context, supplierID string) error {
	args := m.Called(ctx, supplierID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.SupplierSvcFacade = (*MockSupplierService)(nil)

// --- Test Suite ---
type SupplierHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockSupplierService
}

func (suite *SupplierHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = new(MockSupplierService)
	suite.router = gin.New()
	// Only the supplier surface is exercised here; the remaining slots can
	// stay empty because registration never invokes the services.
	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		Supplier: suite.mockService,
	})
}

func (suite *SupplierHandlerTestSuite) performRequest(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *SupplierHandlerTestSuite) TestCreateSupplier_Created() {
	req := dto.CreateSupplierRequest{Name: "Sharma Traders", Contact: "9876543210"}
	created := &domain.Supplier{
		SupplierID: uuid.NewString(),
		Name:       req.Name,
		Contact:    req.Contact,
		Balance:    decimal.Zero,
	}

	suite.mockService.On("CreateSupplier", mock.Anything, req).Return(created, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/suppliers", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.SupplierResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.SupplierID, resp.SupplierID)
	suite.Equal("Sharma Traders", resp.Name)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *SupplierHandlerTestSuite) TestCreateSupplier_MissingName() {
	w := suite.performRequest(http.MethodPost, "/api/v1/suppliers", gin.H{"contact": "9876543210"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateSupplier")
}

func (suite *SupplierHandlerTestSuite) TestCreateSupplier_DuplicateMapsTo409() {
	req := dto.CreateSupplierRequest{Name: "Sharma Traders"}

	suite.mockService.On("CreateSupplier", mock.Anything, req).Return(nil, apperrors.ErrConflict).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/suppliers", req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *SupplierHandlerTestSuite) TestGetSupplierDetails_NotFoundMapsTo404() {
	supplierID := uuid.NewString()

	suite.mockService.On("GetSupplierDetails", mock.Anything, supplierID, 20).Return(nil, nil, apperrors.ErrNotFound).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/suppliers/"+supplierID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *SupplierHandlerTestSuite) TestListSuppliers_BalanceFilter() {
	expected := []domain.SupplierWithTotals{
		{Supplier: domain.Supplier{SupplierID: uuid.NewString(), Name: "Sharma Traders", Balance: decimal.NewFromInt(700)}},
	}

	suite.mockService.On("ListSuppliersByBalance", mock.Anything, domain.BalancePayable).Return(expected, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/suppliers?balance=payable", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListSuppliersResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Suppliers, 1)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *SupplierHandlerTestSuite) TestListSuppliers_RejectsUnknownBalanceFilter() {
	w := suite.performRequest(http.MethodGet, "/api/v1/suppliers?balance=overdue", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListSuppliersByBalance")
}

func (suite *SupplierHandlerTestSuite) TestDeleteSupplier_ProtectedMapsTo409() {
	supplierID := uuid.NewString()

	suite.mockService.On("DeleteSupplier", mock.Anything, supplierID).Return(apperrors.ErrConflict).Once()

	w := suite.performRequest(http.MethodDelete, "/api/v1/suppliers/"+supplierID, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *SupplierHandlerTestSuite) TestDeleteSupplier_NoContent() {
	supplierID := uuid.NewString()

	suite.mockService.On("DeleteSupplier", mock.Anything, supplierID).Return(nil).Once()

	w := suite.performRequest(http.MethodDelete, "/api/v1/suppliers/"+supplierID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestSupplierHandler(t *testing.T) {
	suite.Run(t, new(SupplierHandlerTestSuite))
}
