package notification

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github-pr-watcher/internal/identity"
	"github-pr-watcher/internal/labels"
	"github-pr-watcher/internal/mergeability"
	"github-pr-watcher/internal/model"
)

// facts are the enrichments a message is rendered from.
type facts struct {
	teamLeads string
	author    string
	actor     string
	status    mergeability.Status
}

// HandlePullRequestEvent classifies the event and delivers its notification.
func (uc *usecase) HandlePullRequestEvent(ctx context.Context, event model.PullRequestEvent) error {
	uc.l.Infof(ctx, "internal.notification.HandlePullRequestEvent: %s on %s#%d by %s",
		event.RawAction, event.Repository, event.Number, event.Actor)

	var n model.Notification
	switch event.Action {
	case model.ActionOpened, model.ActionReopened, model.ActionSynchronize,
		model.ActionEdited, model.ActionConvertedToDraft:
		n = uc.reviewMessage(event, uc.gather(ctx, event, true))
	case model.ActionClosed:
		n = closedMessage(event, uc.gather(ctx, event, false), uc.mergeMethod(ctx, event))
	case model.ActionLocked, model.ActionUnlocked:
		n = lockMessage(event, uc.gather(ctx, event, false))
	case model.ActionLabeled, model.ActionUnlabeled:
		kind, _ := labels.KindFromAction(event.Action)
		key := labels.Key{Repository: event.Repository, Number: event.Number}
		uc.debouncer.OnLabelEvent(ctx, key, kind, event.Label, event)
		return nil
	case model.ActionAutoMergeEnabled, model.ActionAutoMergeDisabled:
		n = autoMergeMessage(event, uc.gather(ctx, event, false))
	case model.ActionAssigned, model.ActionUnassigned:
		assignee := uc.resolveOr(ctx, event, event.Assignee, assigneeNotFound)
		n = assignMessage(event, uc.gather(ctx, event, false), assignee)
	case model.ActionMilestoned, model.ActionDemilestoned:
		n = milestoneMessage(event, uc.gather(ctx, event, false))
	case model.ActionEnqueued, model.ActionDequeued:
		n = queueMessage(event, uc.gather(ctx, event, false))
	case model.ActionReadyForReview:
		n = readyMessage(event, uc.gather(ctx, event, false))
	case model.ActionReviewRequested:
		reviewers := uc.resolver.ResolveMany(ctx, prRef(event), event.RequestedReviewers)
		n = reviewRequestedMessage(event, uc.gather(ctx, event, false), reviewers)
	case model.ActionReviewRequestRemoved:
		reviewer := uc.resolveOr(ctx, event, event.RequestedReviewer, reviewerNotFound)
		n = reviewRequestRemovedMessage(event, uc.gather(ctx, event, false), reviewer)
	default:
		uc.l.Warnf(ctx, "internal.notification.HandlePullRequestEvent: unhandled action %q", event.RawAction)
		n = unknownMessage(event, uc.operatorMention(ctx))
	}

	return uc.deliver(ctx, n)
}

// resolveOr mentions login, or returns placeholder when the payload carried none.
func (uc *usecase) resolveOr(ctx context.Context, event model.PullRequestEvent, login, placeholder string) string {
	if login == "" {
		return placeholder
	}
	return uc.resolver.ResolveIn(ctx, prRef(event), login)
}

// Drain blocks until pending label bursts are flushed.
func (uc *usecase) Drain() {
	uc.debouncer.Wait()
}

func (uc *usecase) flushLabels(ctx context.Context, b labels.Batch) {
	n := labelsMessage(b, uc.gather(ctx, b.Event, false))
	if err := uc.deliver(ctx, n); err != nil {
		uc.l.Errorf(ctx, "internal.notification.flushLabels: %v", err)
	}
}

func (uc *usecase) deliver(ctx context.Context, n model.Notification) error {
	n.Channel = uc.cfg.Channel
	if err := uc.notifier.Notify(ctx, n); err != nil {
		return fmt.Errorf("failed to deliver %q: %w", n.Text, err)
	}
	return nil
}

// gather resolves team leads, author and actor, and polls mergeability when asked,
// all concurrently.
func (uc *usecase) gather(ctx context.Context, event model.PullRequestEvent, withStatus bool) facts {
	var f facts

	var g errgroup.Group
	g.Go(func() error {
		f.teamLeads = uc.resolver.TeamLeads(ctx, event.Repository)
		return nil
	})
	g.Go(func() error {
		people := uc.resolver.ResolveMany(ctx, prRef(event), []string{event.Author, event.Actor})
		f.author, f.actor = people[0], people[1]
		return nil
	})
	if withStatus {
		g.Go(func() error {
			f.status = uc.poller.Poll(ctx, event.Repository, event.Number)
			return nil
		})
	}
	_ = g.Wait()

	return f
}

// mergeMethod inspects the merge commit of a merged PR. Any failure along the way
// degrades to MethodMerged.
func (uc *usecase) mergeMethod(ctx context.Context, event model.PullRequestEvent) string {
	if !event.Merged {
		return ""
	}

	pr, err := uc.commits.GetPullRequest(ctx, event.Repository, event.Number)
	if err != nil {
		uc.l.Warnf(ctx, "internal.notification.mergeMethod: %v", err)
		return MethodMerged
	}
	sha := pr.MergeCommitSHA
	if sha == "" {
		sha = event.MergeCommitSHA
	}
	if sha == "" {
		uc.l.Warnf(ctx, "internal.notification.mergeMethod: %s#%d has no merge commit", event.Repository, event.Number)
		return MethodMerged
	}

	commit, err := uc.commits.GetGitCommit(ctx, event.Repository, sha)
	if err != nil {
		uc.l.Warnf(ctx, "internal.notification.mergeMethod: %v", err)
		return MethodMerged
	}

	return classifyMergeCommit(commit.ParentCount, commit.Signature != "")
}

func classifyMergeCommit(parents int, signed bool) string {
	switch {
	case parents == 2:
		return MethodMergeCommit
	case parents == 1 && signed:
		return MethodSquash
	case parents == 1:
		return MethodRebase
	default:
		return MethodUnknown
	}
}

func (uc *usecase) operatorMention(ctx context.Context) string {
	if uc.cfg.OperatorEmail == "" {
		return identity.Literal("operator")
	}
	if id, ok := uc.resolver.ResolveEmail(ctx, uc.cfg.OperatorEmail); ok {
		return identity.Mention(id)
	}
	return identity.Literal(uc.cfg.OperatorEmail)
}

func prRef(event model.PullRequestEvent) identity.PRRef {
	return identity.PRRef{Repository: event.Repository, Number: event.Number}
}
