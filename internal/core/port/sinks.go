package port

import (
	"context"

	"adpilot/internal/core/domain"
)

// Spreadsheet is the human-readable reporting sink. One append per tab per
// run; day is the run date formatted YYYY-MM-DD. Implementations are
// best-effort per call and must not be assumed transactional.
type Spreadsheet interface {
	AppendPerformance(ctx context.Context, day string, records []domain.PerformanceRecord) error
	AppendBudgetChanges(ctx context.Context, day string, changes []BudgetChange) error
	AppendAlerts(ctx context.Context, day string, issues []domain.Issue) error
}

// Warehouse is the analytical reporting sink, one row per record and one row
// per actionable change, accepted or not, keyed by run date for trend queries.
type Warehouse interface {
	InsertPerformance(ctx context.Context, day string, records []domain.PerformanceRecord) error
	InsertBudgetChanges(ctx context.Context, day string, changes []BudgetChange) error
}
