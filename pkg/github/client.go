package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v68/github"
)

// Client wraps the GitHub REST API calls the watcher and tracker sync rely on.
type Client struct {
	client *gh.Client
}

// NewClient creates a GitHub client authenticated with token.
func NewClient(token string) *Client {
	httpClient := &http.Client{Timeout: 15 * time.Second}
	return &Client{client: gh.NewClient(httpClient).WithAuthToken(token)}
}

// SetBaseURL overrides the API base URL (GitHub Enterprise or tests).
func (c *Client) SetBaseURL(baseURL string) error {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid github base url: %w", err)
	}
	c.client.BaseURL = u
	return nil
}

// GetPullRequest fetches PR detail. Mergeable is nil while GitHub is still computing it.
func (c *Client) GetPullRequest(ctx context.Context, repo string, number int) (PullRequest, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return PullRequest{}, err
	}

	pr, _, err := c.client.PullRequests.Get(ctx, owner, name, number)
	if err != nil {
		return PullRequest{}, fmt.Errorf("failed to get pull request %s#%d: %w", repo, number, err)
	}

	return PullRequest{
		Number:         pr.GetNumber(),
		Mergeable:      pr.Mergeable,
		MergeableState: pr.GetMergeableState(),
		MergeCommitSHA: pr.GetMergeCommitSHA(),
		Merged:         pr.GetMerged(),
		HeadRef:        pr.GetHead().GetRef(),
	}, nil
}

// GetGitCommit fetches a git commit object (parents and signature verification).
func (c *Client) GetGitCommit(ctx context.Context, repo, sha string) (Commit, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return Commit{}, err
	}

	commit, _, err := c.client.Git.GetCommit(ctx, owner, name, sha)
	if err != nil {
		return Commit{}, fmt.Errorf("failed to get git commit %s@%s: %w", repo, sha, err)
	}

	return Commit{
		SHA:         commit.GetSHA(),
		ParentCount: len(commit.Parents),
		Signature:   commit.GetVerification().GetSignature(),
		AuthorEmail: commit.GetAuthor().GetEmail(),
	}, nil
}

// ListPullRequestCommits returns the commits of a pull request with their author login and email.
func (c *Client) ListPullRequestCommits(ctx context.Context, repo string, number int) ([]CommitAuthor, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	opt := &gh.ListOptions{PerPage: 100}
	var out []CommitAuthor
	for {
		commits, resp, err := c.client.PullRequests.ListCommits(ctx, owner, name, number, opt)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits of %s#%d: %w", repo, number, err)
		}
		for _, rc := range commits {
			out = append(out, CommitAuthor{
				SHA:   rc.GetSHA(),
				Login: rc.GetAuthor().GetLogin(),
				Email: rc.GetCommit().GetAuthor().GetEmail(),
			})
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return out, nil
}

// ListMergedPullRequests pages through closed PRs into base, most recently updated first,
// and returns those merged at or after since. Paging stops once a page holds no PR updated
// after since, because merge time never exceeds update time.
func (c *Client) ListMergedPullRequests(ctx context.Context, repo, base string, since time.Time) ([]MergedPullRequest, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	opt := &gh.PullRequestListOptions{
		State:       "closed",
		Base:        base,
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var out []MergedPullRequest
	for {
		prs, resp, err := c.client.PullRequests.List(ctx, owner, name, opt)
		if err != nil {
			return nil, fmt.Errorf("failed to list closed pull requests of %s: %w", repo, err)
		}

		recent := false
		for _, pr := range prs {
			if !pr.GetUpdatedAt().Time.Before(since) {
				recent = true
			}
			if pr.MergedAt == nil {
				continue
			}
			mergedAt := pr.GetMergedAt().Time
			if mergedAt.Before(since) {
				continue
			}
			out = append(out, MergedPullRequest{
				Number:   pr.GetNumber(),
				Title:    pr.GetTitle(),
				HeadRef:  pr.GetHead().GetRef(),
				MergedAt: mergedAt,
			})
		}

		if !recent || resp == nil || resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return out, nil
}

func splitRepo(repo string) (string, string, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepository, repo)
	}
	return owner, name, nil
}
