package usecase

import (
	"fmt"

	"adpilot/internal/core/domain"
)

// AlertEvaluator scans performance records for ACOS threshold breaches. It
// looks at every record regardless of status: a paused campaign with a bad
// trailing ACOS is still worth a human's attention.
type AlertEvaluator struct {
	rules domain.Rules
}

func NewAlertEvaluator(rules domain.Rules) *AlertEvaluator {
	return &AlertEvaluator{rules: rules}
}

// Evaluate returns issues in input order. Records with undefined ACOS carry
// no signal and are skipped. The high check wins when both could match.
func (e *AlertEvaluator) Evaluate(records []domain.PerformanceRecord) []domain.Issue {
	var issues []domain.Issue
	for _, r := range records {
		if r.ACOS30d == nil {
			continue
		}
		acos := *r.ACOS30d
		switch {
		case acos > e.rules.ACOSUpperWarn:
			issues = append(issues, domain.Issue{
				Level:        domain.IssueHighACOS,
				CampaignName: r.CampaignName,
				Message: fmt.Sprintf("%s: ACOS is %.1f%%, above your %.0f%% threshold",
					r.CampaignName, acos*100, e.rules.ACOSUpperWarn*100),
			})
		case acos < e.rules.ACOSLowerWarn:
			issues = append(issues, domain.Issue{
				Level:        domain.IssueLowACOS,
				CampaignName: r.CampaignName,
				Message: fmt.Sprintf("%s: ACOS is %.1f%%, below %.0f%% (ads may not be spending)",
					r.CampaignName, acos*100, e.rules.ACOSLowerWarn*100),
			})
		}
	}
	return issues
}
