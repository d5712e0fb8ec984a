package domain

import "time"

// ActionDirection classifies a budget change after the deadband is applied.
type ActionDirection string

const (
	DirectionIncrease ActionDirection = "increase"
	DirectionDecrease ActionDirection = "decrease"
	DirectionHold     ActionDirection = "hold"
)

// BudgetAction is one budget decision for one enabled campaign. Produced by
// the optimizer, immutable afterwards; consumed once by the applier and once
// by the reporting sinks.
//
// IdealBudget is the unconstrained recommendation after the ACOS modifier,
// NewBudget is IdealBudget clamped into the per-run change window. MonthTarget
// and CurrentMonth echo the inputs so every decision is auditable on its own.
type BudgetAction struct {
	CampaignID   string
	CampaignName string
	OldBudget    float64
	IdealBudget  float64
	NewBudget    float64
	Delta        float64
	Direction    ActionDirection
	ShouldUpdate bool
	Reason       string
	MonthTarget  float64
	CurrentMonth time.Month
}
