package port

import (
	"context"

	"adpilot/internal/core/domain"
)

// Notifier is the alerting channel. SendIssues dispatches one digest for the
// run's threshold breaches; SendError is the out-of-band alarm for a failed
// run and must stay usable even when the rest of the pipeline is broken.
type Notifier interface {
	SendIssues(ctx context.Context, issues []domain.Issue) error
	SendError(ctx context.Context, runErr error) error
}
