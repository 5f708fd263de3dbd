package services

import (
	portsrepo "github.com/shopbooks/shopbooks_app/internal/core/ports/repositories"
	portssvc "github.com/shopbooks/shopbooks_app/internal/core/ports/services"
)

// NewServiceContainer wires the service layer on top of a repository
// provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Supplier: NewSupplierService(repos.SupplierRepo),
		Customer: NewCustomerService(repos.CustomerRepo),
		Purchase: NewPurchaseService(repos.PurchaseRepo),
		Sale:     NewSaleService(repos.SaleRepo),
		Payment:  NewPaymentService(repos.PaymentRepo, repos.PurchaseRepo),
		Receipt:  NewReceiptService(repos.ReceiptRepo, repos.SaleRepo),
		Reporting: NewReportingService(
			repos.SupplierRepo,
			repos.CustomerRepo,
			repos.PurchaseRepo,
			repos.SaleRepo,
			repos.PaymentRepo,
			repos.ReceiptRepo,
		),
	}
}
