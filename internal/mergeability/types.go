package mergeability

import (
	"context"
	"time"

	"github-pr-watcher/pkg/github"
)

// Status is the outcome of polling a PR's mergeability.
type Status int

const (
	Unknown Status = iota
	Mergeable
	Conflict
	FetchFailed
)

// String renders the status as it appears in chat messages.
func (s Status) String() string {
	switch s {
	case Mergeable:
		return "✅"
	case Conflict:
		return "❌ `Has conflicts`"
	case FetchFailed:
		return "❓ Merge status fetch failed"
	default:
		return "⏳ Merge status still unknown"
	}
}

// PullRequestGetter fetches PR detail.
type PullRequestGetter interface {
	GetPullRequest(ctx context.Context, repo string, number int) (github.PullRequest, error)
}

const (
	DefaultAttempts = 3
	DefaultDelay    = time.Second
)
