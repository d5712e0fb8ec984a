package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRules() Rules {
	seasonal := make(map[time.Month]float64, 12)
	for m := time.January; m <= time.December; m++ {
		seasonal[m] = 40
	}
	return Rules{
		TargetACOS:         0.20,
		MaxBudgetChangePct: 0.25,
		ACOSUpperWarn:      0.30,
		ACOSLowerWarn:      0.10,
		SeasonalBudgets:    seasonal,
	}
}

func TestRulesValidate(t *testing.T) {
	require.NoError(t, validRules().Validate())

	missing := validRules()
	delete(missing.SeasonalBudgets, time.November)
	assert.ErrorIs(t, missing.Validate(), ErrMonthNotConfigured)

	zeroTarget := validRules()
	zeroTarget.SeasonalBudgets[time.June] = 0
	assert.Error(t, zeroTarget.Validate())

	badChange := validRules()
	badChange.MaxBudgetChangePct = 1.5
	assert.Error(t, badChange.Validate())

	badWarn := validRules()
	badWarn.ACOSUpperWarn = 0.05
	assert.Error(t, badWarn.Validate())

	badACOS := validRules()
	badACOS.TargetACOS = 0
	assert.Error(t, badACOS.Validate())
}
