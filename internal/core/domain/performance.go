package domain

import (
	"fmt"
	"math"
	"time"
)

// CampaignStatus is the lifecycle state a campaign reported by the ads
// platform. Only enabled campaigns participate in budget optimization.
type CampaignStatus string

const (
	StatusEnabled CampaignStatus = "ENABLED"
	StatusPaused  CampaignStatus = "PAUSED"
	StatusOther   CampaignStatus = "OTHER"
)

// ParseStatus normalises a platform status string. Anything that is not
// ENABLED or PAUSED maps to StatusOther (archived, pending, etc.).
func ParseStatus(s string) CampaignStatus {
	switch CampaignStatus(s) {
	case StatusEnabled:
		return StatusEnabled
	case StatusPaused:
		return StatusPaused
	default:
		return StatusOther
	}
}

// PerformanceRecord is the normalised trailing-30-day view of one campaign,
// built fresh each run from the platform report.
//
// ACOS30d is nil when Sales30d is zero: an undefined ratio, not a zero one.
// Consumers must keep that distinction (a nil ACOS means "no signal", a zero
// ACOS would mean "spend with no cost", which the platform never reports).
type PerformanceRecord struct {
	CampaignID    string
	CampaignName  string
	Status        CampaignStatus
	CurrentBudget float64
	Spend30d      float64
	Sales30d      float64
	Units30d      int64
	Clicks        int64
	Impressions   int64
	ACOS30d       *float64
	PulledAt      time.Time
}

// Validate checks the non-negativity and finiteness contract the optimizer
// assumes. The platform should never produce a record that fails this; the
// orchestrator skips offending records from optimization and logs them.
func (r PerformanceRecord) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"current_budget", r.CurrentBudget},
		{"spend_30d", r.Spend30d},
		{"sales_30d", r.Sales30d},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("campaign %s: %s is not a finite number", r.CampaignID, c.name)
		}
		if c.value < 0 {
			return fmt.Errorf("campaign %s: %s is negative (%v)", r.CampaignID, c.name, c.value)
		}
	}
	if r.Units30d < 0 || r.Clicks < 0 || r.Impressions < 0 {
		return fmt.Errorf("campaign %s: negative count field", r.CampaignID)
	}
	return nil
}

// ACOSPercent renders the ACOS ratio for reporting rows, e.g. "23.5%".
// Undefined ACOS renders as "N/A".
func (r PerformanceRecord) ACOSPercent() string {
	if r.ACOS30d == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", *r.ACOS30d*100)
}
