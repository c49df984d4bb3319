package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github-pr-watcher/pkg/slack"
)

const maxParallelLookups = 4

// Resolve renders login as a mention using only the static email map.
func (r *resolver) Resolve(ctx context.Context, login string) string {
	return r.ResolveIn(ctx, PRRef{}, login)
}

// ResolveIn renders login as a mention. When the login has no static email and a commit
// source is configured, the PR's commit history is searched for the login's email.
func (r *resolver) ResolveIn(ctx context.Context, pr PRRef, login string) string {
	email, ok := r.mappings.UserEmails[login]
	if !ok {
		email, ok = r.emailFromCommits(ctx, pr, login)
	}
	if ok {
		if id, found := r.ResolveEmail(ctx, email); found {
			return Mention(id)
		}
	}
	return Literal(login)
}

// ResolveMany resolves logins concurrently, keeping their order.
func (r *resolver) ResolveMany(ctx context.Context, pr PRRef, logins []string) []string {
	out := make([]string, len(logins))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLookups)
	for i, login := range logins {
		i, login := i, login
		g.Go(func() error {
			out[i] = r.ResolveIn(gctx, pr, login)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// ResolveEmail looks up the chat user id for email.
func (r *resolver) ResolveEmail(ctx context.Context, email string) (string, bool) {
	if email == "" {
		return "", false
	}
	if r.cache != nil {
		if id, ok := r.cache.Get(email); ok {
			return id, true
		}
	}

	id, err := r.directory.LookupUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, slack.ErrUserNotFound) {
			r.l.Infof(ctx, "internal.identity.ResolveEmail: no chat user for %s", email)
		} else {
			r.l.Warnf(ctx, "internal.identity.ResolveEmail: lookup failed for %s: %v", email, err)
		}
		return "", false
	}
	if id == "" {
		return "", false
	}

	if r.cache != nil {
		r.cache.Add(email, id)
	}
	return id, true
}

// TeamLeads renders the repository's team leads as space separated mentions, or N/A.
func (r *resolver) TeamLeads(ctx context.Context, repo string) string {
	emails := r.mappings.TeamLeads[repo]
	mentions := make([]string, 0, len(emails))
	for _, email := range emails {
		if id, ok := r.ResolveEmail(ctx, email); ok {
			mentions = append(mentions, Mention(id))
		}
	}
	if len(mentions) == 0 {
		return NoTeamLeads
	}
	return strings.Join(mentions, " ")
}

func (r *resolver) emailFromCommits(ctx context.Context, pr PRRef, login string) (string, bool) {
	if r.commits == nil || pr.Repository == "" || pr.Number == 0 || login == "" {
		return "", false
	}

	commits, err := r.commits.ListPullRequestCommits(ctx, pr.Repository, pr.Number)
	if err != nil {
		r.l.Warnf(ctx, "internal.identity.emailFromCommits: %v", err)
		return "", false
	}
	for _, c := range commits {
		if strings.EqualFold(c.Login, login) && c.Email != "" {
			return c.Email, true
		}
	}
	return "", false
}

// Mention formats a chat user id as a mention token.
func Mention(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}

// Literal renders a login as fixed-width text.
func Literal(login string) string {
	return fmt.Sprintf("`%s`", login)
}
