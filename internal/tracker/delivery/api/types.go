package api

import "github-pr-watcher/internal/tracker"

// SyncRequest is the body of POST /tracker/sync. Every field is optional.
type SyncRequest struct {
	Repository   string `json:"repository"`
	TargetBranch string `json:"target_branch"`
	LookbackDays int    `json:"lookback_days"`
	Comment      string `json:"comment"`
}

func (r SyncRequest) toInput(defaults tracker.SyncInput) tracker.SyncInput {
	in := defaults
	if r.Repository != "" {
		in.Repository = r.Repository
	}
	if r.TargetBranch != "" {
		in.TargetBranch = r.TargetBranch
	}
	if r.LookbackDays > 0 {
		in.LookbackDays = r.LookbackDays
	}
	if r.Comment != "" {
		in.Comment = r.Comment
	}
	return in
}

// UpdateStatusRequest is the body of POST /tracker/tasks/:key/status.
type UpdateStatusRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}
