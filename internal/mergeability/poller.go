package mergeability

import (
	"context"
	"errors"

	pkgLog "github-pr-watcher/pkg/log"
	"github-pr-watcher/pkg/retry"
)

// Poller resolves GitHub's asynchronously computed mergeable flag.
type Poller struct {
	prs    PullRequestGetter
	policy retry.Policy
	l      pkgLog.Logger
}

// New creates a Poller. A zero policy falls back to 3 attempts one second apart.
func New(prs PullRequestGetter, policy retry.Policy, l pkgLog.Logger) *Poller {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = DefaultAttempts
	}
	if policy.Delay <= 0 {
		policy.Delay = DefaultDelay
	}
	return &Poller{prs: prs, policy: policy, l: l}
}

// Poll returns Mergeable or Conflict once GitHub has computed the flag, Unknown if it is
// still null after every attempt, and FetchFailed on the first API error.
func (p *Poller) Poll(ctx context.Context, repo string, number int) Status {
	status, err := retry.Do(ctx, p.policy, func(ctx context.Context, attempt int) (Status, bool, error) {
		pr, err := p.prs.GetPullRequest(ctx, repo, number)
		if err != nil {
			return FetchFailed, true, err
		}
		if pr.Mergeable == nil {
			p.l.Infof(ctx, "internal.mergeability.Poll: mergeable is null for %s#%d, retrying (%d/%d)",
				repo, number, attempt, p.policy.MaxAttempts)
			return Unknown, false, nil
		}
		if *pr.Mergeable {
			return Mergeable, true, nil
		}
		return Conflict, true, nil
	})

	switch {
	case err == nil:
		return status
	case errors.Is(err, retry.ErrExhausted):
		return Unknown
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		p.l.Warnf(ctx, "internal.mergeability.Poll: %s#%d: %v", repo, number, err)
		return Unknown
	default:
		p.l.Errorf(ctx, "internal.mergeability.Poll: %s#%d: %v", repo, number, err)
		return FetchFailed
	}
}
