package dto

import (
	"time"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest defines the data needed to record a purchase.
// Dates travel as plain calendar days.
type CreatePurchaseRequest struct {
	Date       string          `json:"date" binding:"required,datetime=2006-01-02"`
	SupplierID string          `json:"supplierID" binding:"required"`
	BillNo     string          `json:"billNo"` // Optional
	Items      string          `json:"items"`  // Optional
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	PaidAmount decimal.Decimal `json:"paidAmount"` // Optional, settled at entry
	Notes      string          `json:"notes"`      // Optional
}

// UpdatePurchaseRequest defines the data allowed for updating a purchase.
type UpdatePurchaseRequest struct {
	Date       *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	BillNo     *string          `json:"billNo"`
	Items      *string          `json:"items"`
	Amount     *decimal.Decimal `json:"amount"`
	PaidAmount *decimal.Decimal `json:"paidAmount"`
	Notes      *string          `json:"notes"`
}

// PurchaseResponse defines the data returned for a purchase.
// Mirrors domain.Purchase plus its derived settlement fields.
type PurchaseResponse struct {
	PurchaseID  string               `json:"purchaseID"`
	Date        time.Time            `json:"date"`
	SupplierID  string               `json:"supplierID"`
	BillNo      string               `json:"billNo"`
	Items       string               `json:"items"`
	Amount      decimal.Decimal      `json:"amount"`
	PaidAmount  decimal.Decimal      `json:"paidAmount"`
	Outstanding decimal.Decimal      `json:"outstanding"`
	Status      domain.PaymentStatus `json:"status"`
	Notes       string               `json:"notes"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// PurchaseWithSupplierResponse adds the joined supplier columns.
type PurchaseWithSupplierResponse struct {
	PurchaseResponse
	SupplierName    string `json:"supplierName"`
	SupplierContact string `json:"supplierContact,omitempty"`
}

// PurchaseDetailResponse combines a purchase with its settlement history.
type PurchaseDetailResponse struct {
	Purchase PurchaseWithSupplierResponse  `json:"purchase"`
	Payments []PaymentWithSupplierResponse `json:"payments"`
}

// ListPurchasesParams defines query parameters for listing purchases.
type ListPurchasesParams struct {
	Limit       int    `form:"limit,default=100"`
	Offset      int    `form:"offset,default=0"`
	SupplierID  string `form:"supplierID"`
	From        string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To          string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Outstanding bool   `form:"outstanding"`
}

// ListPurchasesResponse wraps the list of purchases.
type ListPurchasesResponse struct {
	Purchases []PurchaseWithSupplierResponse `json:"purchases"`
}

// ToPurchaseResponse converts a domain.Purchase to PurchaseResponse DTO
func ToPurchaseResponse(p *domain.Purchase) PurchaseResponse {
	return PurchaseResponse{
		PurchaseID:  p.PurchaseID,
		Date:        p.Date,
		SupplierID:  p.SupplierID,
		BillNo:      p.BillNo,
		Items:       p.Items,
		Amount:      p.Amount,
		PaidAmount:  p.PaidAmount,
		Outstanding: p.Outstanding(),
		Status:      p.Status(),
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToPurchaseWithSupplierResponse converts a domain.PurchaseWithSupplier to its DTO
func ToPurchaseWithSupplierResponse(p *domain.PurchaseWithSupplier) PurchaseWithSupplierResponse {
	return PurchaseWithSupplierResponse{
		PurchaseResponse: ToPurchaseResponse(&p.Purchase),
		SupplierName:     p.SupplierName,
		SupplierContact:  p.SupplierContact,
	}
}

// ToListPurchasesResponse converts a slice of domain.PurchaseWithSupplier to the list DTO
func ToListPurchasesResponse(purchases []domain.PurchaseWithSupplier) ListPurchasesResponse {
	res := make([]PurchaseWithSupplierResponse, len(purchases))
	for i, p := range purchases {
		res[i] = ToPurchaseWithSupplierResponse(&p)
	}
	return ListPurchasesResponse{Purchases: res}
}
