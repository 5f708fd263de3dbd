package accounting_test

import (
	"testing"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	"github.com/shopbooks/shopbooks_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		settled string
		want    domain.PaymentStatus
	}{
		{"unpaid", "1000.00", "0.00", domain.StatusUnpaid},
		{"partial", "1000.00", "400.00", domain.StatusPartial},
		{"paid exactly", "1000.00", "1000.00", domain.StatusPaid},
		{"paid over", "1000.00", "1000.01", domain.StatusPaid},
		{"zero amount zero settled", "0.00", "0.00", domain.StatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.StatusFor(dec(tt.amount), dec(tt.settled))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutstandingDelta(t *testing.T) {
	tests := []struct {
		name               string
		oldAmount, oldPaid string
		newAmount, newPaid string
		want               string
	}{
		{"insert", "0", "0", "1000.00", "0", "1000.00"},
		{"insert part-settled", "0", "0", "1000.00", "250.00", "750.00"},
		{"amount raised", "1000.00", "0", "1200.00", "0", "200.00"},
		{"paid raised", "1000.00", "0", "1000.00", "400.00", "-400.00"},
		{"both change", "1000.00", "400.00", "900.00", "500.00", "-200.00"},
		{"delete", "1000.00", "400.00", "0", "0", "-600.00"},
		{"no-op", "1000.00", "400.00", "1000.00", "400.00", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.OutstandingDelta(dec(tt.oldAmount), dec(tt.oldPaid), dec(tt.newAmount), dec(tt.newPaid))
			assert.True(t, dec(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestSettlementDelta(t *testing.T) {
	assert.True(t, dec("-400.00").Equal(accounting.SettlementDelta(dec("0"), dec("400.00"))))
	assert.True(t, dec("100.00").Equal(accounting.SettlementDelta(dec("400.00"), dec("300.00"))))
	assert.True(t, dec("400.00").Equal(accounting.SettlementDelta(dec("400.00"), dec("0"))))
}

func TestValidateSettlement(t *testing.T) {
	amount := dec("1000.00")

	// Fresh payment within the outstanding balance.
	require.NoError(t, accounting.ValidateSettlement(amount, dec("0"), dec("0"), dec("400.00")))

	// Paying exactly the outstanding balance is allowed.
	require.NoError(t, accounting.ValidateSettlement(amount, dec("400.00"), dec("0"), dec("600.00")))

	// Overpayment past the outstanding balance is rejected.
	err := accounting.ValidateSettlement(amount, dec("400.00"), dec("0"), dec("700.00"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds outstanding balance")

	// Raising an existing payment may reuse its own prior portion.
	require.NoError(t, accounting.ValidateSettlement(amount, dec("1000.00"), dec("400.00"), dec("400.00")))
	require.Error(t, accounting.ValidateSettlement(amount, dec("1000.00"), dec("400.00"), dec("400.01")))

	// Reversing more than was settled is rejected.
	require.Error(t, accounting.ValidateSettlement(amount, dec("100.00"), dec("400.00"), dec("0")))
}

// TestIncrementalBalanceMatchesRecompute drives a supplier ledger through a
// sequence of purchase/payment transitions, applying the incremental deltas
// as the repositories do, and checks the running balance against a
// from-scratch aggregate after every step.
func TestIncrementalBalanceMatchesRecompute(t *testing.T) {
	type purchase struct{ amount, paid decimal.Decimal }
	type payment struct {
		amount   decimal.Decimal
		purchase int // index into purchases, -1 for advance
	}

	balance := decimal.Zero
	purchases := []purchase{}
	payments := []payment{}

	recompute := func() decimal.Decimal {
		total := decimal.Zero
		for _, p := range purchases {
			total = total.Add(p.amount.Sub(p.paid))
		}
		for _, pay := range payments {
			if pay.purchase < 0 {
				total = total.Sub(pay.amount)
			}
		}
		return total
	}

	check := func(step string) {
		require.True(t, recompute().Equal(balance),
			"%s: incremental balance %s != recomputed %s", step, balance, recompute())
	}

	// Purchase of 1000, nothing paid.
	purchases = append(purchases, purchase{dec("1000.00"), dec("0")})
	balance = balance.Add(accounting.OutstandingDelta(decimal.Zero, decimal.Zero, dec("1000.00"), dec("0")))
	check("purchase insert")
	assert.True(t, dec("1000.00").Equal(balance))

	// Linked payment of 400: purchase paid rises, balance falls.
	payments = append(payments, payment{dec("400.00"), 0})
	purchases[0].paid = purchases[0].paid.Add(dec("400.00"))
	balance = balance.Add(accounting.SettlementDelta(decimal.Zero, dec("400.00")))
	check("linked payment insert")
	assert.True(t, dec("600.00").Equal(balance))

	// Advance payment of 150.
	payments = append(payments, payment{dec("150.00"), -1})
	balance = balance.Add(accounting.SettlementDelta(decimal.Zero, dec("150.00")))
	check("advance payment insert")

	// Linked payment raised 400 -> 500.
	purchases[0].paid = purchases[0].paid.Sub(payments[0].amount).Add(dec("500.00"))
	balance = balance.Add(accounting.SettlementDelta(payments[0].amount, dec("500.00")))
	payments[0].amount = dec("500.00")
	check("payment update")

	// Purchase amount edited 1000 -> 1200.
	balance = balance.Add(accounting.OutstandingDelta(purchases[0].amount, purchases[0].paid, dec("1200.00"), purchases[0].paid))
	purchases[0].amount = dec("1200.00")
	check("purchase update")

	// Linked payment deleted: paid reverts, balance reverts.
	purchases[0].paid = purchases[0].paid.Sub(payments[0].amount)
	balance = balance.Add(accounting.SettlementDelta(payments[0].amount, decimal.Zero))
	payments = payments[1:]
	check("payment delete")

	// Purchase deleted.
	balance = balance.Add(accounting.OutstandingDelta(purchases[0].amount, purchases[0].paid, decimal.Zero, decimal.Zero))
	purchases = purchases[:0]
	check("purchase delete")
	assert.True(t, dec("-150.00").Equal(balance), "only the advance remains: %s", balance)
}
