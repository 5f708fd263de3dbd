package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/shopbooks/shopbooks_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	supplierRepo := newPgxSupplierRepository(dbPool)
	customerRepo := newPgxCustomerRepository(dbPool)
	purchaseRepo := newPgxPurchaseRepository(dbPool)
	saleRepo := newPgxSaleRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	receiptRepo := newPgxReceiptRepository(dbPool)

	return portsrepo.RepositoryProvider{
		SupplierRepo: supplierRepo,
		CustomerRepo: customerRepo,
		PurchaseRepo: purchaseRepo,
		SaleRepo:     saleRepo,
		PaymentRepo:  paymentRepo,
		ReceiptRepo:  receiptRepo,
	}
}
