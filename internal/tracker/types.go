package tracker

import "time"

// Status names of the task board workflow.
const (
	StatusReadyForReview   = "Ready For Review"
	StatusChangesRequested = "Changes Requested"
	StatusReadyForQA       = "Ready For QA"
	StatusPRMerge          = "PR Merge"
)

// DefaultStatuses maps status names to the board's custom status ids.
var DefaultStatuses = map[string]string{
	StatusReadyForReview:   "289995000000077054",
	StatusChangesRequested: "289995000000098514",
	StatusReadyForQA:       "289995000000156067",
	StatusPRMerge:          "289995000000164243",
}

const DefaultLookbackDays = 2

// Config holds the board settings.
type Config struct {
	PortalName string
	// Statuses overrides DefaultStatuses entry by entry.
	Statuses map[string]string
	Now      func() time.Time
}

// SyncInput selects the merged branches to promote.
type SyncInput struct {
	Repository   string `json:"repository"`
	TargetBranch string `json:"target_branch"`
	LookbackDays int    `json:"lookback_days"`
	Comment      string `json:"comment"`
}

// TaskUpdate is the outcome for one matched task.
type TaskUpdate struct {
	Key       string `json:"key"`
	Title     string `json:"title"`
	Link      string `json:"link,omitempty"`
	ProjectID string `json:"project_id"`
	TaskID    string `json:"task_id"`
	Updated   bool   `json:"updated"`
	Error     string `json:"error,omitempty"`
}

// SyncOutput reports what a sync did.
type SyncOutput struct {
	Branches []string     `json:"branches"`
	Tasks    []TaskUpdate `json:"tasks"`
}

// UpdateStatusInput names a task and the status to move it to.
type UpdateStatusInput struct {
	TaskKey string `json:"task_key"`
	Status  string `json:"status"`
	Comment string `json:"comment"`
}
