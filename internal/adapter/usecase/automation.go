package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

// Automation sequences one complete run: fetch, optimize, apply, alert,
// report. It implements port.Automation.
//
// Failure policy: fetch and optimize errors abort the run (and trigger the
// error alert) before any platform mutation. From apply onwards failures are
// isolated: one campaign's rejected update, a notifier outage or a dead sink
// never stop the rest of the batch.
type Automation struct {
	platform  port.AdsPlatform
	sheet     port.Spreadsheet
	warehouse port.Warehouse
	notifier  port.Notifier

	optimizer *Optimizer
	evaluator *AlertEvaluator
	logger    *slog.Logger
	now       func() time.Time
}

// NewAutomation wires the pipeline. now defaults to time.Now and exists so
// tests can pin the run's month and date.
func NewAutomation(
	platform port.AdsPlatform,
	sheet port.Spreadsheet,
	warehouse port.Warehouse,
	notifier port.Notifier,
	rules domain.Rules,
	logger *slog.Logger,
	now func() time.Time,
) *Automation {
	if now == nil {
		now = time.Now
	}
	return &Automation{
		platform:  platform,
		sheet:     sheet,
		warehouse: warehouse,
		notifier:  notifier,
		optimizer: NewOptimizer(rules),
		evaluator: NewAlertEvaluator(rules),
		logger:    logger,
		now:       now,
	}
}

// Run executes one batch. On a fatal error it fires the error alert once and
// returns the error; it never returns a partial result alongside an error.
func (a *Automation) Run(ctx context.Context) (*port.RunResult, error) {
	res := &port.RunResult{
		RunID:     uuid.NewString(),
		StartedAt: a.now(),
	}
	log := a.logger.With(slog.String("run_id", res.RunID))
	log.Info("automation run starting")

	if err := a.run(ctx, res, log); err != nil {
		log.Error("automation run failed", slog.Any("error", err))
		if alertErr := a.notifier.SendError(ctx, err); alertErr != nil {
			log.Error("error alert dispatch failed", slog.Any("error", alertErr))
		}
		return nil, err
	}
	log.Info("automation run finished",
		slog.Int("fetched", len(res.Records)),
		slog.Int("applied", res.AppliedCount()),
		slog.Int("issues", len(res.Issues)))
	return res, nil
}

func (a *Automation) run(ctx context.Context, res *port.RunResult, log *slog.Logger) error {
	records, err := a.platform.CampaignPerformance(ctx)
	if err != nil {
		return fmt.Errorf("fetch campaign performance: %w", err)
	}
	res.Records = records
	log.Info("campaign performance fetched", slog.Int("campaigns", len(records)))

	// Malformed rows are excluded from optimization but stay in the report
	// output so the audit trail shows exactly what the platform returned.
	sound := make([]domain.PerformanceRecord, 0, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			log.Warn("skipping malformed record", slog.Any("error", err))
			continue
		}
		sound = append(sound, r)
	}

	actions, err := a.optimizer.Optimize(sound, res.StartedAt.Month())
	if err != nil {
		return fmt.Errorf("optimize budgets: %w", err)
	}
	res.Actions = actions

	res.Changes = a.apply(ctx, actions, log)

	res.Issues = a.evaluator.Evaluate(records)
	if len(res.Issues) > 0 {
		if err := a.notifier.SendIssues(ctx, res.Issues); err != nil {
			log.Error("issue alert dispatch failed", slog.Any("error", err))
		}
	}

	a.report(ctx, res, log)
	return nil
}

// apply pushes every actionable change to the platform. A rejected update is
// logged and the batch continues; the rejection stays in the change set so
// the audit trail records the decision as well as the outcome.
func (a *Automation) apply(ctx context.Context, actions []domain.BudgetAction, log *slog.Logger) []port.BudgetChange {
	changes := make([]port.BudgetChange, 0, len(actions))
	for _, action := range actions {
		if !action.ShouldUpdate {
			continue
		}
		change := port.BudgetChange{BudgetAction: action}
		ack, err := a.platform.UpdateBudget(ctx, action.CampaignID, action.NewBudget)
		if err != nil {
			log.Warn("budget update failed",
				slog.String("campaign", action.CampaignName),
				slog.Any("error", err))
			change.Error = err.Error()
			changes = append(changes, change)
			continue
		}
		log.Info("budget updated",
			slog.String("campaign", action.CampaignName),
			slog.Float64("old", action.OldBudget),
			slog.Float64("new", action.NewBudget))
		change.Applied = true
		change.APIResponse = ack
		change.AppliedAt = a.now()
		changes = append(changes, change)
	}
	return changes
}

// report writes to both sinks. Each write is independent; a broken sheet
// never blocks the warehouse and vice versa.
func (a *Automation) report(ctx context.Context, res *port.RunResult, log *slog.Logger) {
	day := res.StartedAt.Format("2006-01-02")

	if err := a.sheet.AppendPerformance(ctx, day, res.Records); err != nil {
		log.Error("spreadsheet performance append failed", slog.Any("error", err))
	}
	if err := a.sheet.AppendBudgetChanges(ctx, day, res.Changes); err != nil {
		log.Error("spreadsheet change append failed", slog.Any("error", err))
	}
	if len(res.Issues) > 0 {
		if err := a.sheet.AppendAlerts(ctx, day, res.Issues); err != nil {
			log.Error("spreadsheet alerts append failed", slog.Any("error", err))
		}
	}

	if err := a.warehouse.InsertPerformance(ctx, day, res.Records); err != nil {
		log.Error("warehouse performance insert failed", slog.Any("error", err))
	}
	if err := a.warehouse.InsertBudgetChanges(ctx, day, res.Changes); err != nil {
		log.Error("warehouse change insert failed", slog.Any("error", err))
	}
}
