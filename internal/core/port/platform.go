package port

import (
	"context"
	"encoding/json"
	"time"

	"adpilot/internal/core/domain"
)

// AdsPlatform is the outbound port to the advertising platform. The adapter
// owns authentication, report generation/polling/download and the budget
// update call; the rest of the system only sees normalised records.
type AdsPlatform interface {
	// CampaignPerformance returns the trailing-30-day snapshot for every
	// campaign in the account. It may block for tens of seconds while the
	// platform prepares the report; the context bounds the wait.
	CampaignPerformance(ctx context.Context) ([]domain.PerformanceRecord, error)

	// UpdateBudget sets a campaign's daily budget and returns the raw
	// platform acknowledgment for the audit trail.
	UpdateBudget(ctx context.Context, campaignID string, newBudget float64) (json.RawMessage, error)
}

// BudgetChange is a BudgetAction the applier attempted against the
// platform. Applied reports whether the platform accepted it; a rejected
// change carries Error, a nil acknowledgment and a zero AppliedAt. The
// change log keeps every decision either way.
type BudgetChange struct {
	domain.BudgetAction
	Applied     bool
	Error       string
	APIResponse json.RawMessage
	AppliedAt   time.Time
}
