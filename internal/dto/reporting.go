package dto

import (
	"time"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionEntryResponse is one row of a party's merged transaction feed.
type TransactionEntryResponse struct {
	EntryType     domain.TransactionEntryType `json:"entryType"`
	EntryID       string                      `json:"entryID"`
	Date          time.Time                   `json:"date"`
	Reference     string                      `json:"reference"`
	Items         string                      `json:"items"`
	Amount        decimal.Decimal             `json:"amount"`
	SettledAmount decimal.Decimal             `json:"settledAmount"`
	Outstanding   decimal.Decimal             `json:"outstanding"`
	PaymentStatus domain.PaymentStatus        `json:"paymentStatus"`
	Notes         string                      `json:"notes"`
	CreatedAt     time.Time                   `json:"createdAt"`
}

// SummaryParams defines the optional date bounds shared by summary queries.
type SummaryParams struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// ToTransactionEntryResponse converts a domain.TransactionEntry to its DTO
func ToTransactionEntryResponse(e *domain.TransactionEntry) TransactionEntryResponse {
	return TransactionEntryResponse{
		EntryType:     e.EntryType,
		EntryID:       e.EntryID,
		Date:          e.Date,
		Reference:     e.Reference,
		Items:         e.Items,
		Amount:        e.Amount,
		SettledAmount: e.SettledAmount,
		Outstanding:   e.Outstanding,
		PaymentStatus: e.PaymentStatus,
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt,
	}
}

// ToTransactionEntryResponses converts a slice of domain.TransactionEntry to DTOs
func ToTransactionEntryResponses(entries []domain.TransactionEntry) []TransactionEntryResponse {
	res := make([]TransactionEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToTransactionEntryResponse(&e)
	}
	return res
}
