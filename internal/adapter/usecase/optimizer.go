package usecase

import (
	"fmt"
	"math"
	"time"

	"adpilot/internal/core/domain"
)

// platformMinimumBudget is the lowest daily budget the ads platform accepts.
const platformMinimumBudget = 1.00

// updateDeadband is the minimum absolute change worth acting on. Deltas of
// exactly this magnitude are still updates; only strictly smaller deltas hold.
const updateDeadband = 0.50

// modifierBand scales the ideal budget based on a campaign's own ACOS.
// Bands are evaluated in order, first match wins.
type modifierBand struct {
	match      func(acos, target float64) bool
	multiplier float64
}

var acosBands = []modifierBand{
	// badly inefficient: pull back hard
	{func(acos, target float64) bool { return acos > target*1.5 }, 0.90},
	// drifting above target: pull back gently
	{func(acos, target float64) bool { return acos > target*1.2 }, 0.95},
	// very efficient: push more spend its way
	{func(acos, target float64) bool { return acos < target*0.5 }, 1.10},
}

// Optimizer computes bounded daily budget changes from trailing campaign
// performance. It is a pure computation: same records, rules and month always
// produce identical actions, and it never touches the platform itself.
type Optimizer struct {
	rules domain.Rules
}

// NewOptimizer returns an optimizer bound to one run's business rules.
func NewOptimizer(rules domain.Rules) *Optimizer {
	return &Optimizer{rules: rules}
}

// Optimize produces one BudgetAction per ENABLED record, in input order.
// An empty result is a valid outcome, not an error. The month is passed
// explicitly so callers control the clock.
//
// Records are assumed validated (non-negative, finite); see
// domain.PerformanceRecord.Validate for the caller contract.
func (o *Optimizer) Optimize(records []domain.PerformanceRecord, month time.Month) ([]domain.BudgetAction, error) {
	targetDaily, ok := o.rules.SeasonalBudgets[month]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMonthNotConfigured, month)
	}

	var active []domain.PerformanceRecord
	for _, r := range records {
		if r.Status == domain.StatusEnabled {
			active = append(active, r)
		}
	}
	if len(active) == 0 {
		return nil, nil
	}

	// Distribute the month's aggregate daily target across campaigns in
	// proportion to trailing sales. A zero total degrades to a shared
	// denominator of 1, which floors every campaign at the platform minimum.
	var totalSales float64
	for _, r := range active {
		totalSales += r.Sales30d
	}
	if totalSales == 0 {
		totalSales = 1
	}

	actions := make([]domain.BudgetAction, 0, len(active))
	for _, r := range active {
		share := r.Sales30d / totalSales
		ideal := round2(targetDaily * share)
		if ideal < platformMinimumBudget {
			ideal = platformMinimumBudget
		}
		actions = append(actions, o.buildAction(r, ideal, month, targetDaily))
	}
	return actions, nil
}

func (o *Optimizer) buildAction(r domain.PerformanceRecord, ideal float64, month time.Month, targetDaily float64) domain.BudgetAction {
	if r.ACOS30d != nil {
		for _, band := range acosBands {
			if band.match(*r.ACOS30d, o.rules.TargetACOS) {
				ideal *= band.multiplier
				break
			}
		}
	}
	ideal = round2(ideal)

	// Cap the per-run movement. A zero baseline has no meaningful
	// percentage window, so the recommendation applies directly.
	newBudget := ideal
	if r.CurrentBudget > 0 {
		maxUp := round2(r.CurrentBudget * (1 + o.rules.MaxBudgetChangePct))
		maxDown := round2(r.CurrentBudget * (1 - o.rules.MaxBudgetChangePct))
		newBudget = math.Min(maxUp, math.Max(maxDown, ideal))
	}
	newBudget = round2(newBudget)
	delta := round2(newBudget - r.CurrentBudget)

	direction := domain.DirectionHold
	switch {
	case delta > updateDeadband:
		direction = domain.DirectionIncrease
	case delta < -updateDeadband:
		direction = domain.DirectionDecrease
	}

	return domain.BudgetAction{
		CampaignID:   r.CampaignID,
		CampaignName: r.CampaignName,
		OldBudget:    r.CurrentBudget,
		IdealBudget:  ideal,
		NewBudget:    newBudget,
		Delta:        delta,
		Direction:    direction,
		ShouldUpdate: math.Abs(delta) >= updateDeadband,
		Reason:       reason(month, targetDaily, r, delta),
		MonthTarget:  targetDaily,
		CurrentMonth: month,
	}
}

// reason explains a decision in one line for the change log. Presentation
// only; nothing downstream parses it.
func reason(month time.Month, targetDaily float64, r domain.PerformanceRecord, delta float64) string {
	mo := month.String()[:3]
	switch {
	case delta > 0:
		return fmt.Sprintf("%s is a peak month (target $%.2f/day). ACOS %s, increasing budget.", mo, targetDaily, r.ACOSPercent())
	case delta < 0:
		return fmt.Sprintf("%s is a slow month (target $%.2f/day). ACOS %s, reducing budget.", mo, targetDaily, r.ACOSPercent())
	default:
		return fmt.Sprintf("Budget optimal for %s. ACOS %s, holding.", mo, r.ACOSPercent())
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
