package dto

import (
	"time"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSupplierRequest defines the data needed to create a new supplier.
type CreateSupplierRequest struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact"` // Optional
	Address string `json:"address"` // Optional
}

// UpdateSupplierRequest defines the data allowed for updating a supplier.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateSupplierRequest struct {
	Name    *string `json:"name"`
	Contact *string `json:"contact"`
	Address *string `json:"address"`
}

// SupplierResponse defines the data returned for a supplier.
// Mirrors domain.Supplier.
type SupplierResponse struct {
	SupplierID string          `json:"supplierID"`
	Name       string          `json:"name"`
	Contact    string          `json:"contact"`
	Address    string          `json:"address"`
	Balance    decimal.Decimal `json:"balance"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// SupplierWithTotalsResponse adds lifetime purchase and payment totals.
type SupplierWithTotalsResponse struct {
	SupplierResponse
	TotalPurchases      int64           `json:"totalPurchases"`
	TotalPurchaseAmount decimal.Decimal `json:"totalPurchaseAmount"`
	TotalPaidAmount     decimal.Decimal `json:"totalPaidAmount"`
	TotalPayments       int64           `json:"totalPayments"`
}

// SupplierDetailResponse combines a supplier with its recent transaction feed.
type SupplierDetailResponse struct {
	Supplier     SupplierWithTotalsResponse `json:"supplier"`
	Transactions []TransactionEntryResponse `json:"transactions"`
}

// ListSuppliersParams defines query parameters for listing suppliers.
type ListSuppliersParams struct {
	Limit   int    `form:"limit,default=100"`
	Offset  int    `form:"offset,default=0"`
	Search  string `form:"search"`
	Balance string `form:"balance" binding:"omitempty,oneof=payable advance zero"`
}

// ListSuppliersResponse wraps the list of suppliers.
type ListSuppliersResponse struct {
	Suppliers []SupplierWithTotalsResponse `json:"suppliers"`
}

// ToSupplierResponse converts a domain.Supplier to SupplierResponse DTO
func ToSupplierResponse(s *domain.Supplier) SupplierResponse {
	return SupplierResponse{
		SupplierID: s.SupplierID,
		Name:       s.Name,
		Contact:    s.Contact,
		Address:    s.Address,
		Balance:    s.Balance,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// ToSupplierWithTotalsResponse converts a domain.SupplierWithTotals to its DTO
func ToSupplierWithTotalsResponse(s *domain.SupplierWithTotals) SupplierWithTotalsResponse {
	return SupplierWithTotalsResponse{
		SupplierResponse:    ToSupplierResponse(&s.Supplier),
		TotalPurchases:      s.TotalPurchases,
		TotalPurchaseAmount: s.TotalPurchaseAmount,
		TotalPaidAmount:     s.TotalPaidAmount,
		TotalPayments:       s.TotalPayments,
	}
}

// ToListSuppliersResponse converts a slice of domain.SupplierWithTotals to the list DTO
func ToListSuppliersResponse(suppliers []domain.SupplierWithTotals) ListSuppliersResponse {
	res := make([]SupplierWithTotalsResponse, len(suppliers))
	for i, s := range suppliers {
		res[i] = ToSupplierWithTotalsResponse(&s)
	}
	return ListSuppliersResponse{Suppliers: res}
}
