package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adpilot/internal/core/domain"
)

func testRules(seasonal map[time.Month]float64) domain.Rules {
	return domain.Rules{
		TargetACOS:         0.20,
		MaxBudgetChangePct: 0.25,
		ACOSUpperWarn:      0.30,
		ACOSLowerWarn:      0.10,
		SeasonalBudgets:    seasonal,
	}
}

func campaign(id string, acos *float64, budget, sales float64) domain.PerformanceRecord {
	spend := 0.0
	if acos != nil {
		spend = sales * *acos
	}
	return domain.PerformanceRecord{
		CampaignID:    id,
		CampaignName:  "Campaign " + id,
		Status:        domain.StatusEnabled,
		CurrentBudget: budget,
		Spend30d:      spend,
		Sales30d:      sales,
		Units30d:      25,
		PulledAt:      time.Date(2025, 7, 15, 6, 0, 0, 0, time.UTC),
		ACOS30d:       acos,
	}
}

func ratio(v float64) *float64 { return &v }

func TestOptimizePeakMonthIncreasesBudget(t *testing.T) {
	o := NewOptimizer(testRules(map[time.Month]float64{time.July: 110}))

	actions, err := o.Optimize([]domain.PerformanceRecord{
		campaign("C001", ratio(0.20), 65.00, 1000),
	}, time.July)
	require.NoError(t, err)
	require.Len(t, actions, 1)

	a := actions[0]
	// single campaign owns the whole $110 target, capped at 65 * 1.25
	assert.InDelta(t, 110.00, a.IdealBudget, 0.001)
	assert.InDelta(t, 81.25, a.NewBudget, 0.001)
	assert.Greater(t, a.NewBudget, 65.00)
	assert.Equal(t, domain.DirectionIncrease, a.Direction)
	assert.True(t, a.ShouldUpdate)
	assert.Equal(t, time.July, a.CurrentMonth)
	assert.InDelta(t, 110.00, a.MonthTarget, 0.001)
}

func TestOptimizeSlowMonthDecreasesBudget(t *testing.T) {
	o := NewOptimizer(testRules(map[time.Month]float64{time.February: 18}))

	actions, err := o.Optimize([]domain.PerformanceRecord{
		campaign("C001", ratio(0.20), 65.00, 1000),
	}, time.February)
	require.NoError(t, err)
	require.Len(t, actions, 1)

	a := actions[0]
	// ideal shrinks toward 18, floor of the change window is 65 * 0.75
	assert.InDelta(t, 48.75, a.NewBudget, 0.001)
	assert.Less(t, a.NewBudget, 65.00)
	assert.Equal(t, domain.DirectionDecrease, a.Direction)
	assert.True(t, a.ShouldUpdate)
}

func TestOptimizeHighACOSNeverBeatsLowACOS(t *testing.T) {
	o := NewOptimizer(testRules(map[time.Month]float64{time.June: 87}))

	actions, err := o.Optimize([]domain.PerformanceRecord{
		campaign("X", ratio(0.40), 65.00, 1000),
		campaign("Y", ratio(0.20), 65.00, 1000),
	}, time.June)
	require.NoError(t, err)
	require.Len(t, actions, 2)

	assert.LessOrEqual(t, actions[0].NewBudget, actions[1].NewBudget)
	// the 0.90 pull-back hits the ideal before the clamp
	assert.Less(t, actions[0].IdealBudget, actions[1].IdealBudget)
}

func TestOptimizeModifierBandsFirstMatchWins(t *testing.T) {
	// old budget 100 keeps the clamp out of the way (window 75..125)
	o := NewOptimizer(testRules(map[time.Month]float64{time.June: 100}))

	cases := []struct {
		name      string
		acos      *float64
		wantIdeal float64
	}{
		{"very high acos pulls back 10pct", ratio(0.40), 90.00},
		{"mildly high acos pulls back 5pct", ratio(0.25), 95.00},
		{"very low acos pushes 10pct", ratio(0.05), 110.00},
		{"on-target acos untouched", ratio(0.20), 100.00},
		{"undefined acos untouched", nil, 100.00},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := campaign("C001", tc.acos, 100.00, 1000)
			actions, err := o.Optimize([]domain.PerformanceRecord{rec}, time.June)
			require.NoError(t, err)
			require.Len(t, actions, 1)
			assert.InDelta(t, tc.wantIdeal, actions[0].IdealBudget, 0.001)
		})
	}
}

func TestOptimizeChangeCapRespected(t *testing.T) {
	rules := testRules(map[time.Month]float64{time.July: 110})
	o := NewOptimizer(rules)

	records := []domain.PerformanceRecord{
		campaign("C001", ratio(0.20), 65.00, 1000),
		campaign("C002", ratio(0.05), 10.00, 500),
		campaign("C003", ratio(0.45), 200.00, 50),
	}
	actions, err := o.Optimize(records, time.July)
	require.NoError(t, err)
	require.Len(t, actions, len(records))

	for i, a := range actions {
		if a.OldBudget > 0 {
			maxMove := a.OldBudget*rules.MaxBudgetChangePct + 0.01
			assert.LessOrEqualf(t, abs(a.NewBudget-a.OldBudget), maxMove,
				"action %d moved more than the cap allows", i)
		}
		assert.GreaterOrEqual(t, a.NewBudget, 1.00)
	}
}

func TestOptimizeZeroBaselineSkipsCap(t *testing.T) {
	o := NewOptimizer(testRules(map[time.Month]float64{time.July: 110}))

	actions, err := o.Optimize([]domain.PerformanceRecord{
		campaign("C001", ratio(0.20), 0, 1000),
	}, time.July)
	require.NoError(t, err)
	require.Len(t, actions, 1)

	// no percentage window around zero: the recommendation applies directly
	assert.InDelta(t, 110.00, actions[0].NewBudget, 0.001)
	assert.True(t, actions[0].ShouldUpdate)
}

func TestOptimizeDeadbandBoundary(t *testing.T) {
	t.Run("delta of exactly 0.50 updates", func(t *testing.T) {
		// share 1.0, target 2.50, window [1.50, 2.50] -> delta 0.50
		o := NewOptimizer(testRules(map[time.Month]float64{time.March: 2.50}))
		actions, err := o.Optimize([]domain.PerformanceRecord{
			campaign("C001", ratio(0.20), 2.00, 1000),
		}, time.March)
		require.NoError(t, err)
		require.Len(t, actions, 1)
		assert.InDelta(t, 0.50, actions[0].Delta, 0.001)
		assert.True(t, actions[0].ShouldUpdate)
		assert.Equal(t, domain.DirectionHold, actions[0].Direction)
	})

	t.Run("delta of 0.49 holds", func(t *testing.T) {
		o := NewOptimizer(testRules(map[time.Month]float64{time.March: 2.49}))
		actions, err := o.Optimize([]domain.PerformanceRecord{
			campaign("C001", ratio(0.20), 2.00, 1000),
		}, time.March)
		require.NoError(t, err)
		require.Len(t, actions, 1)
		assert.InDelta(t, 0.49, actions[0].Delta, 0.001)
		assert.False(t, actions[0].ShouldUpdate)
		assert.Equal(t, domain.DirectionHold, actions[0].Direction)
	})

	t.Run("delta just past 0.50 gets a direction", func(t *testing.T) {
		// window [2.25, 3.75] keeps the cap away from the 0.51 delta
		o := NewOptimizer(testRules(map[time.Month]float64{time.March: 3.51}))
		actions, err := o.Optimize([]domain.PerformanceRecord{
			campaign("C001", ratio(0.20), 3.00, 1000),
		}, time.March)
		require.NoError(t, err)
		assert.Equal(t, domain.DirectionIncrease, actions[0].Direction)
		assert.True(t, actions[0].ShouldUpdate)
	})
}

func TestOptimizeSkipsNonEnabled(t *testing.T) {
	o := NewOptimizer(testRules(map[time.Month]float64{time.July: 110}))

	paused := campaign("C001", ratio(0.20), 65.00, 1000)
	paused.Status = domain.StatusPaused

	actions, err := o.Optimize([]domain.PerformanceRecord{paused}, time.July)
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestOptimizeEmptyInput(t *testing.T) {
	o := NewOptimizer(testRules(map[time.Month]float64{time.July: 110}))

	actions, err := o.Optimize(nil, time.July)
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestOptimizeZeroTotalSales(t *testing.T) {
	o := NewOptimizer(testRules(map[time.Month]float64{time.July: 110}))

	rec := campaign("C001", nil, 65.00, 0)
	actions, err := o.Optimize([]domain.PerformanceRecord{rec}, time.July)
	require.NoError(t, err)
	require.Len(t, actions, 1)

	// zero share floors the ideal at the platform minimum; the clamp then
	// walks the budget down no faster than the cap allows
	assert.InDelta(t, 1.00, actions[0].IdealBudget, 0.001)
	assert.InDelta(t, 48.75, actions[0].NewBudget, 0.001)
}

func TestOptimizeMissingMonthIsConfigError(t *testing.T) {
	o := NewOptimizer(testRules(map[time.Month]float64{time.July: 110}))

	_, err := o.Optimize([]domain.PerformanceRecord{
		campaign("C001", ratio(0.20), 65.00, 1000),
	}, time.December)
	require.ErrorIs(t, err, domain.ErrMonthNotConfigured)
}

func TestOptimizePreservesInputOrder(t *testing.T) {
	o := NewOptimizer(testRules(map[time.Month]float64{time.July: 110}))

	records := []domain.PerformanceRecord{
		campaign("C003", ratio(0.20), 10.00, 300),
		campaign("C001", ratio(0.20), 20.00, 100),
		campaign("C002", ratio(0.20), 30.00, 600),
	}
	paused := campaign("C004", ratio(0.20), 5.00, 50)
	paused.Status = domain.StatusPaused
	records = append(records[:1], append([]domain.PerformanceRecord{paused}, records[1:]...)...)

	actions, err := o.Optimize(records, time.July)
	require.NoError(t, err)
	require.Len(t, actions, 3)
	assert.Equal(t, "C003", actions[0].CampaignID)
	assert.Equal(t, "C001", actions[1].CampaignID)
	assert.Equal(t, "C002", actions[2].CampaignID)
}

func TestOptimizeIsDeterministic(t *testing.T) {
	o := NewOptimizer(testRules(map[time.Month]float64{time.July: 110}))

	records := []domain.PerformanceRecord{
		campaign("C001", ratio(0.32), 65.00, 1000),
		campaign("C002", ratio(0.07), 12.00, 400),
		campaign("C003", nil, 8.00, 0),
	}
	first, err := o.Optimize(records, time.July)
	require.NoError(t, err)
	second, err := o.Optimize(records, time.July)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestOptimizeReasonReflectsDirection(t *testing.T) {
	o := NewOptimizer(testRules(map[time.Month]float64{time.July: 110}))

	actions, err := o.Optimize([]domain.PerformanceRecord{
		campaign("C001", ratio(0.20), 65.00, 1000),
	}, time.July)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Contains(t, actions[0].Reason, "Jul")
	assert.Contains(t, actions[0].Reason, "increasing")
	assert.Contains(t, actions[0].Reason, "20.0%")
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
