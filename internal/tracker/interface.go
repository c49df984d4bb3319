package tracker

import (
	"context"
	"time"

	"github-pr-watcher/pkg/github"
	"github-pr-watcher/pkg/zoho"
)

type UseCase interface {
	// SyncReadyForQA moves tasks whose key matches a branch merged into the target branch
	// within the lookback window to "Ready For QA".
	SyncReadyForQA(ctx context.Context, input SyncInput) (SyncOutput, error)

	// UpdateStatusByKey moves the task with the given key to a named status.
	UpdateStatusByKey(ctx context.Context, input UpdateStatusInput) (TaskUpdate, error)
}

// MergedPullRequestLister lists PRs merged into a base branch.
type MergedPullRequestLister interface {
	ListMergedPullRequests(ctx context.Context, repo, base string, since time.Time) ([]github.MergedPullRequest, error)
}

// TaskBoard is the project tracker holding the tasks.
type TaskBoard interface {
	PortalIDByName(ctx context.Context, name string) (string, error)
	ListProjects(ctx context.Context, portalID string) ([]zoho.Project, error)
	ListTasks(ctx context.Context, portalID, projectID string) ([]zoho.Task, error)
	UpdateTaskStatus(ctx context.Context, portalID, projectID, taskID, statusID string) error
	AddComment(ctx context.Context, portalID, projectID, taskID, content string) error
}
