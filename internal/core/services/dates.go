package services

import (
	"fmt"
	"time"

	"github.com/shopbooks/shopbooks_app/internal/apperrors"
)

// parseLedgerDate parses the plain calendar-day format all ledger entries
// travel with.
func parseLedgerDate(value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", apperrors.ErrValidation, value)
	}
	return t, nil
}
