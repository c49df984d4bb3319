package notification

import "github-pr-watcher/internal/labels"

// DefaultChannel receives notifications when no channel is configured.
const DefaultChannel = "#github-pr-review-notification"

// Merge methods derived from the merge commit of a closed PR.
const (
	MethodMergeCommit = "Merge Commit"
	MethodSquash      = "Squash and Merged"
	MethodRebase      = "Rebase and Merged"
	MethodUnknown     = "Unknown Merge Type"
	// MethodMerged is used when the merge commit could not be inspected.
	MethodMerged = "Merged"
)

// Config holds the delivery settings of the use case.
type Config struct {
	Channel string
	// OperatorEmail is mentioned in unknown-event alerts.
	OperatorEmail string
	Labels        labels.Config
}
