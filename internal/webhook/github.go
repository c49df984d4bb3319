package webhook

import (
	"fmt"
	"time"

	gh "github.com/google/go-github/v68/github"

	"github-pr-watcher/internal/model"
)

const (
	EventPullRequest = "pull_request"

	HeaderEvent    = "X-GitHub-Event"
	HeaderDelivery = "X-GitHub-Delivery"
)

// GitHubWebhookParser parses GitHub webhook payloads
type GitHubWebhookParser struct {
	now func() time.Time
}

func NewGitHubParser() *GitHubWebhookParser {
	return &GitHubWebhookParser{now: time.Now}
}

// ParsePullRequestEvent parses a pull_request payload. Unknown actions are kept with
// model.ActionUnknown; a payload without action, repository, number or pull_request
// fails with ErrMalformedPayload.
func (p *GitHubWebhookParser) ParsePullRequestEvent(deliveryID string, payload []byte) (model.PullRequestEvent, error) {
	parsed, err := gh.ParseWebHook(EventPullRequest, payload)
	if err != nil {
		return model.PullRequestEvent{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	event, ok := parsed.(*gh.PullRequestEvent)
	if !ok {
		return model.PullRequestEvent{}, fmt.Errorf("%w: unexpected type %T", ErrMalformedPayload, parsed)
	}

	pr := event.GetPullRequest()
	switch {
	case event.GetAction() == "":
		return model.PullRequestEvent{}, fmt.Errorf("%w: missing action", ErrMalformedPayload)
	case event.GetRepo().GetFullName() == "":
		return model.PullRequestEvent{}, fmt.Errorf("%w: missing repository.full_name", ErrMalformedPayload)
	case event.PullRequest == nil:
		return model.PullRequestEvent{}, fmt.Errorf("%w: missing pull_request", ErrMalformedPayload)
	}

	number := event.GetNumber()
	if number == 0 {
		number = pr.GetNumber()
	}
	if number == 0 {
		return model.PullRequestEvent{}, fmt.Errorf("%w: missing number", ErrMalformedPayload)
	}

	out := model.PullRequestEvent{
		DeliveryID:        deliveryID,
		Action:            model.ParseAction(event.GetAction()),
		RawAction:         event.GetAction(),
		Repository:        event.GetRepo().GetFullName(),
		Number:            number,
		URL:               pr.GetHTMLURL(),
		Title:             pr.GetTitle(),
		Author:            pr.GetUser().GetLogin(),
		Actor:             event.GetSender().GetLogin(),
		HeadRef:           pr.GetHead().GetRef(),
		BaseRef:           pr.GetBase().GetRef(),
		HeadSHA:           pr.GetHead().GetSHA(),
		Label:             event.GetLabel().GetName(),
		Assignee:          event.GetAssignee().GetLogin(),
		RequestedReviewer: event.GetRequestedReviewer().GetLogin(),
		Merged:            pr.GetMerged(),
		MergeCommitSHA:    pr.GetMergeCommitSHA(),
		ReceivedAt:        p.now(),
	}
	if out.URL == "" {
		out.URL = fmt.Sprintf("https://github.com/%s/pull/%d", out.Repository, number)
	}

	for _, u := range pr.RequestedReviewers {
		if login := u.GetLogin(); login != "" {
			out.RequestedReviewers = append(out.RequestedReviewers, login)
		}
	}

	if m := pr.Milestone; m != nil {
		out.Milestone = &model.Milestone{Title: m.GetTitle()}
		if m.DueOn != nil {
			out.Milestone.DueOn = m.DueOn.UTC().Format(time.RFC3339)
		}
	}

	if c := event.GetChanges(); c != nil {
		out.Changes = model.EditChanges{
			Title: c.Title != nil,
			Body:  c.Body != nil,
			Base:  c.Base != nil,
		}
	}

	return out, nil
}
