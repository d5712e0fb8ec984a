package configs

import (
	"time"

	"adpilot/internal/core/domain"
)

// Rules carries the business-rule parameters. The seasonal curve is parsed
// from a "month:amount" list, e.g. "1:35,2:18,...,12:19"; defaults are the
// account's 20%-ACOS analysis figures.
type Rules struct {
	TargetACOS         float64 `env:"TARGET_ACOS" envDefault:"0.20"`
	MaxBudgetChangePct float64 `env:"MAX_CHANGE" envDefault:"0.25"`
	ACOSUpperWarn      float64 `env:"ACOS_WARN_HIGH" envDefault:"0.30"`
	ACOSLowerWarn      float64 `env:"ACOS_WARN_LOW" envDefault:"0.10"`

	SeasonalBudgets map[int]float64 `env:"SEASONAL_BUDGETS" envKeyValSeparator:":" envSeparator:"," envDefault:"1:35,2:18,3:65,4:68,5:68,6:87,7:110,8:88,9:70,10:45,11:20,12:19"`
}

// Domain converts the section into the domain rule set.
func (r Rules) Domain() domain.Rules {
	seasonal := make(map[time.Month]float64, len(r.SeasonalBudgets))
	for m, target := range r.SeasonalBudgets {
		if m >= 1 && m <= 12 {
			seasonal[time.Month(m)] = target
		}
	}
	return domain.Rules{
		TargetACOS:         r.TargetACOS,
		MaxBudgetChangePct: r.MaxBudgetChangePct,
		ACOSUpperWarn:      r.ACOSUpperWarn,
		ACOSLowerWarn:      r.ACOSLowerWarn,
		SeasonalBudgets:    seasonal,
	}
}
