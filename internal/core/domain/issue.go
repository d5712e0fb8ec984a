package domain

// IssueLevel identifies the threshold a campaign breached.
type IssueLevel string

const (
	IssueHighACOS IssueLevel = "HIGH_ACOS"
	IssueLowACOS  IssueLevel = "LOW_ACOS"
)

// Issue is one threshold breach found by the alert evaluator. Issues carry
// no dispatch detail; how they become email or SMS is the notifier's concern.
type Issue struct {
	Level        IssueLevel
	CampaignName string
	Message      string
}
