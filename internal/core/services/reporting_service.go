package services

import (
	"context"
	"time"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	portsrepo "github.com/shopbooks/shopbooks_app/internal/core/ports/repositories"
	portssvc "github.com/shopbooks/shopbooks_app/internal/core/ports/services"
)

const recentEntryLimit = 5

// ReportingService composes the per-entity repositories into cross-ledger
// views. It holds no repository of its own.
type ReportingService struct {
	BaseService
	supplierRepo portsrepo.SupplierReader
	customerRepo portsrepo.CustomerReader
	purchaseRepo portsrepo.PurchaseReader
	saleRepo     portsrepo.SaleReader
	paymentRepo  portsrepo.PaymentReader
	receiptRepo  portsrepo.ReceiptReader
}

func NewReportingService(
	supplierRepo portsrepo.SupplierReader,
	customerRepo portsrepo.CustomerReader,
	purchaseRepo portsrepo.PurchaseReader,
	saleRepo portsrepo.SaleReader,
	paymentRepo portsrepo.PaymentReader,
	receiptRepo portsrepo.ReceiptReader,
) *ReportingService {
	return &ReportingService{
		supplierRepo: supplierRepo,
		customerRepo: customerRepo,
		purchaseRepo: purchaseRepo,
		saleRepo:     saleRepo,
		paymentRepo:  paymentRepo,
		receiptRepo:  receiptRepo,
	}
}

var _ portssvc.ReportingService = (*ReportingService)(nil)

// DashboardSummary assembles the headline counts, all-time purchase/sale
// totals and recent plus outstanding activity for the landing view.
func (s *ReportingService) DashboardSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	supplierSummary, err := s.supplierRepo.GetSupplierSummary(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate supplier summary for dashboard")
		return nil, err
	}
	customerSummary, err := s.customerRepo.GetCustomerSummary(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate customer summary for dashboard")
		return nil, err
	}
	purchaseSummary, err := s.purchaseRepo.GetPurchaseSummary(ctx, nil, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate purchase summary for dashboard")
		return nil, err
	}
	saleSummary, err := s.saleRepo.GetSaleSummary(ctx, nil, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate sale summary for dashboard")
		return nil, err
	}

	recentPurchases, err := s.purchaseRepo.ListPurchases(ctx, recentEntryLimit, 0)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent purchases for dashboard")
		return nil, err
	}
	recentSales, err := s.saleRepo.ListSales(ctx, recentEntryLimit, 0)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent sales for dashboard")
		return nil, err
	}
	outstandingPurchases, err := s.purchaseRepo.ListOutstandingPurchases(ctx, "")
	if err != nil {
		s.LogError(ctx, err, "Failed to list outstanding purchases for dashboard")
		return nil, err
	}
	outstandingSales, err := s.saleRepo.ListOutstandingSales(ctx, "")
	if err != nil {
		s.LogError(ctx, err, "Failed to list outstanding sales for dashboard")
		return nil, err
	}

	return &domain.DashboardSummary{
		SupplierCount:        supplierSummary.TotalSuppliers,
		CustomerCount:        customerSummary.TotalCustomers,
		TotalPayable:         supplierSummary.TotalPayable,
		TotalReceivable:      customerSummary.TotalReceivable,
		Purchases:            *purchaseSummary,
		Sales:                *saleSummary,
		RecentPurchases:      recentPurchases,
		RecentSales:          recentSales,
		OutstandingPurchases: outstandingPurchases,
		OutstandingSales:     outstandingSales,
	}, nil
}

// PeriodReport aggregates purchase, sale, payment and receipt summaries
// plus instrument breakdowns for a reporting period. Nil bounds leave the
// corresponding side of the period open.
func (s *ReportingService) PeriodReport(ctx context.Context, from, to *time.Time) (*domain.PeriodReport, error) {
	purchaseSummary, err := s.purchaseRepo.GetPurchaseSummary(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate purchase summary for period report")
		return nil, err
	}
	saleSummary, err := s.saleRepo.GetSaleSummary(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate sale summary for period report")
		return nil, err
	}
	paymentSummary, err := s.paymentRepo.GetPaymentSummary(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate payment summary for period report")
		return nil, err
	}
	receiptSummary, err := s.receiptRepo.GetReceiptSummary(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate receipt summary for period report")
		return nil, err
	}
	paymentModes, err := s.paymentRepo.GetPaymentModeSummary(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate payment modes for period report")
		return nil, err
	}
	receiptModes, err := s.receiptRepo.GetReceiptModeSummary(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate receipt modes for period report")
		return nil, err
	}

	return &domain.PeriodReport{
		From:         from,
		To:           to,
		Purchases:    *purchaseSummary,
		Sales:        *saleSummary,
		Payments:     *paymentSummary,
		Receipts:     *receiptSummary,
		PaymentModes: paymentModes,
		ReceiptModes: receiptModes,
	}, nil
}
