package port

import (
	"context"
	"time"

	"adpilot/internal/core/domain"
)

// Automation is the inbound port: one call, one complete run of the
// fetch → optimize → apply → alert → report pipeline. Both trigger surfaces
// (HTTP webhook and cron) call through this interface.
type Automation interface {
	Run(ctx context.Context) (*RunResult, error)
}

// RunResult summarises a completed run for the trigger surface and the logs.
// Changes holds every actionable decision, accepted or rejected by the
// platform.
type RunResult struct {
	RunID     string
	StartedAt time.Time
	Records   []domain.PerformanceRecord
	Actions   []domain.BudgetAction
	Changes   []BudgetChange
	Issues    []domain.Issue
}

// AppliedCount returns how many changes the platform accepted.
func (r *RunResult) AppliedCount() int {
	n := 0
	for _, c := range r.Changes {
		if c.Applied {
			n++
		}
	}
	return n
}
