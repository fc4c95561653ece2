package stats

import "context"

// Service computes dashboard and report summaries from the record store.
type Service interface {
	// MonthlySummary aggregates the authenticated user's records for a
	// calendar month.
	MonthlySummary(ctx context.Context, req MonthlySummaryRequest) (Summary, error)

	// WeeklySummary aggregates the Monday-based week containing today.
	WeeklySummary(ctx context.Context) (Summary, error)
}
