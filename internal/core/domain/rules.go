package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrMonthNotConfigured is returned by the optimizer when the seasonal table
// has no entry for the requested month. Rules.Validate makes this unreachable
// in a correctly configured process, but the optimizer still checks.
var ErrMonthNotConfigured = errors.New("seasonal budget not configured for month")

// Rules is the immutable business-rule configuration for a run.
//
// SeasonalBudgets maps calendar month to the target aggregate daily spend in
// currency units; full 12-month coverage is required. TargetACOS drives the
// optimizer's modifier bands, the warn thresholds drive the alert evaluator
// only.
type Rules struct {
	TargetACOS         float64
	MaxBudgetChangePct float64
	ACOSUpperWarn      float64
	ACOSLowerWarn      float64
	SeasonalBudgets    map[time.Month]float64
}

// Validate checks the rules once at process start. Violations are fatal
// misconfiguration; the run must not reach the platform with them.
func (r Rules) Validate() error {
	if r.TargetACOS <= 0 {
		return fmt.Errorf("rules: target ACOS must be positive, got %v", r.TargetACOS)
	}
	if r.MaxBudgetChangePct <= 0 || r.MaxBudgetChangePct >= 1 {
		return fmt.Errorf("rules: max budget change pct must be in (0,1), got %v", r.MaxBudgetChangePct)
	}
	if r.ACOSLowerWarn <= 0 || r.ACOSUpperWarn <= r.ACOSLowerWarn {
		return fmt.Errorf("rules: warn thresholds must satisfy 0 < low < high, got low=%v high=%v", r.ACOSLowerWarn, r.ACOSUpperWarn)
	}
	for m := time.January; m <= time.December; m++ {
		target, ok := r.SeasonalBudgets[m]
		if !ok {
			return fmt.Errorf("rules: %w %s", ErrMonthNotConfigured, m)
		}
		if target <= 0 {
			return fmt.Errorf("rules: seasonal budget for %s must be positive, got %v", m, target)
		}
	}
	return nil
}
