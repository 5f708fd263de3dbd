package domain

import "time"

// Timestamps holds standard audit timestamps for ledger entities.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PaymentMode enumerates the accepted settlement instruments.
type PaymentMode string

const (
	ModeCash   PaymentMode = "cash"
	ModeBank   PaymentMode = "bank"
	ModeCheque PaymentMode = "cheque"
	ModeUPI    PaymentMode = "upi"
	ModeCard   PaymentMode = "card"
)

// IsValid reports whether the mode is one of the accepted instruments.
func (m PaymentMode) IsValid() bool {
	switch m {
	case ModeCash, ModeBank, ModeCheque, ModeUPI, ModeCard:
		return true
	}
	return false
}

// PaymentStatus classifies how much of a purchase or sale has been settled.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "Paid"
	StatusPartial PaymentStatus = "Partial"
	StatusUnpaid  PaymentStatus = "Unpaid"
)

// BalanceFilter selects parties by the sign of their running balance.
type BalanceFilter string

const (
	BalanceAll        BalanceFilter = "all"
	BalancePayable    BalanceFilter = "payable"
	BalanceReceivable BalanceFilter = "receivable"
	BalanceAdvance    BalanceFilter = "advance"
	BalanceZero       BalanceFilter = "zero"
)
