package notification

import (
	"context"

	"github-pr-watcher/internal/mergeability"
	"github-pr-watcher/internal/model"
	"github-pr-watcher/pkg/github"
)

type UseCase interface {
	// HandlePullRequestEvent turns one pull_request event into a chat notification.
	// Label events are buffered and delivered once the burst goes quiet.
	HandlePullRequestEvent(ctx context.Context, event model.PullRequestEvent) error

	// Drain blocks until every buffered label burst has been delivered.
	Drain()
}

// Notifier delivers a built notification.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification) error
}

// MergeStatusPoller reports a PR's mergeability.
type MergeStatusPoller interface {
	Poll(ctx context.Context, repo string, number int) mergeability.Status
}

// CommitInspector reads the merge commit of a closed PR.
type CommitInspector interface {
	GetPullRequest(ctx context.Context, repo string, number int) (github.PullRequest, error)
	GetGitCommit(ctx context.Context, repo, sha string) (github.Commit, error)
}
