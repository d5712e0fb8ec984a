// Package postgres implements the analytical warehouse port. Every run
// appends its snapshot to daily_performance and its budget decisions to
// budget_changes, keyed by run date for trend queries.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

// Warehouse implements port.Warehouse using pgxpool.
type Warehouse struct {
	pool *pgxpool.Pool
}

// NewWarehouse returns a new warehouse sink.
func NewWarehouse(pool *pgxpool.Pool) *Warehouse {
	return &Warehouse{pool: pool}
}

// InsertPerformance appends one row per campaign record. The acos_30d column
// is NULL when the ratio is undefined, so queries can tell "no sales" apart
// from "free sales".
func (w *Warehouse) InsertPerformance(ctx context.Context, day string, records []domain.PerformanceRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	const query = `
        INSERT INTO daily_performance
            (day, campaign_id, campaign_name, status, daily_budget,
             spend_30d, sales_30d, units_30d, acos_30d, clicks, impressions, pulled_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for _, r := range records {
		batch.Queue(query,
			day, r.CampaignID, r.CampaignName, string(r.Status), r.CurrentBudget,
			r.Spend30d, r.Sales30d, r.Units30d, r.ACOS30d, r.Clicks, r.Impressions, r.PulledAt)
	}
	if err := w.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("warehouse: insert performance: %w", err)
	}
	return nil
}

// InsertBudgetChanges appends one row per actionable change. Rejected
// changes land too, with applied false, a NULL applied_at and the platform
// error instead of an acknowledgment.
func (w *Warehouse) InsertBudgetChanges(ctx context.Context, day string, changes []port.BudgetChange) error {
	if len(changes) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	const query = `
        INSERT INTO budget_changes
            (day, campaign_id, campaign_name, old_budget, ideal_budget, new_budget,
             delta, direction, reason, month_target, applied, error, api_response, applied_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	for _, c := range changes {
		var appliedAt *time.Time
		if c.Applied {
			appliedAt = &c.AppliedAt
		}
		batch.Queue(query,
			day, c.CampaignID, c.CampaignName, c.OldBudget, c.IdealBudget, c.NewBudget,
			c.Delta, string(c.Direction), c.Reason, c.MonthTarget, c.Applied, c.Error,
			[]byte(c.APIResponse), appliedAt)
	}
	if err := w.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("warehouse: insert budget changes: %w", err)
	}
	return nil
}
