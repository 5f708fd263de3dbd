package accounting

import (
	"fmt"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Outstanding returns the unsettled portion of a purchase or sale.
func Outstanding(amount, settled decimal.Decimal) decimal.Decimal {
	return amount.Sub(settled)
}

// StatusFor classifies a purchase or sale by how much of it is settled.
func StatusFor(amount, settled decimal.Decimal) domain.PaymentStatus {
	switch {
	case settled.GreaterThanOrEqual(amount):
		return domain.StatusPaid
	case settled.IsPositive():
		return domain.StatusPartial
	default:
		return domain.StatusUnpaid
	}
}

// OutstandingDelta is the single code path for every purchase/sale state
// transition's effect on the owning party's balance:
//
//	insert: OutstandingDelta(0, 0, amount, settled)  == +(amount - settled)
//	update: OutstandingDelta(old, oldSettled, new, newSettled)
//	delete: OutstandingDelta(amount, settled, 0, 0)  == -(amount - settled)
//
// Applying the returned delta incrementally keeps the running balance equal
// to a from-scratch aggregate recomputation.
func OutstandingDelta(oldAmount, oldSettled, newAmount, newSettled decimal.Decimal) decimal.Decimal {
	return newAmount.Sub(newSettled).Sub(oldAmount.Sub(oldSettled))
}

// SettlementDelta is the balance effect of a payment/receipt state
// transition. Settlements reduce the party's balance, so the delta is the
// negated amount change:
//
//	insert: SettlementDelta(0, amount)      == -amount
//	update: SettlementDelta(old, new)       == -(new - old)
//	delete: SettlementDelta(amount, 0)      == +amount
func SettlementDelta(oldAmount, newAmount decimal.Decimal) decimal.Decimal {
	return oldAmount.Sub(newAmount)
}

// ValidateSettlement checks that applying a settlement transition to a
// linked purchase/sale would not push its settled amount past the total
// (no overpayment) or below zero.
func ValidateSettlement(recordAmount, settledAmount, oldPortion, newPortion decimal.Decimal) error {
	newSettled := settledAmount.Sub(oldPortion).Add(newPortion)
	if newSettled.GreaterThan(recordAmount) {
		outstanding := recordAmount.Sub(settledAmount.Sub(oldPortion))
		return fmt.Errorf("settlement amount %s exceeds outstanding balance %s", newPortion, outstanding)
	}
	if newSettled.IsNegative() {
		return fmt.Errorf("settlement reversal would drive settled amount below zero")
	}
	return nil
}
