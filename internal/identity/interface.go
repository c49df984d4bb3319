package identity

import (
	"context"

	"github-pr-watcher/pkg/github"
)

// Directory looks up chat user ids by email.
type Directory interface {
	LookupUserByEmail(ctx context.Context, email string) (string, error)
}

// CommitSource lists the commits of a pull request.
type CommitSource interface {
	ListPullRequestCommits(ctx context.Context, repo string, number int) ([]github.CommitAuthor, error)
}

// Resolver renders GitHub logins as chat mentions. It never fails: unresolved logins
// render as literal text.
type Resolver interface {
	Resolve(ctx context.Context, login string) string
	ResolveIn(ctx context.Context, pr PRRef, login string) string
	ResolveMany(ctx context.Context, pr PRRef, logins []string) []string
	ResolveEmail(ctx context.Context, email string) (string, bool)
	TeamLeads(ctx context.Context, repo string) string
}
