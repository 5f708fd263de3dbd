package services

import (
	"context"
	"time"

	"github.com/shopbooks/shopbooks_app/internal/core/domain"
)

// ReportingService defines operations for generating ledger reports
type ReportingService interface {
	// DashboardSummary assembles the headline counts, payable/receivable
	// totals and recent/outstanding activity for the dashboard.
	DashboardSummary(ctx context.Context) (*domain.DashboardSummary, error)

	// PeriodReport aggregates purchase, sale, payment and receipt
	// summaries for a reporting period (nil bound = unbounded).
	PeriodReport(ctx context.Context, from, to *time.Time) (*domain.PeriodReport, error)
}
