package notification

import (
	"fmt"
	"strings"

	"github-pr-watcher/internal/labels"
	"github-pr-watcher/internal/mergeability"
	"github-pr-watcher/internal/model"
)

const (
	reviewerNotFound = "`Reviewer Not Found`"
	assigneeNotFound = "`Assignee Not Found`"
	noMilestone      = "No milestone"
	noDueDate        = "No due date set"
	unknownEdits     = "_Unknown edits_"
)

var reviewEmoji = map[model.Action]string{
	model.ActionOpened:           ":rotating_light:",
	model.ActionReopened:         ":arrows_counterclockwise:",
	model.ActionSynchronize:      ":rotating_light:",
	model.ActionClosed:           ":lock:",
	model.ActionEdited:           ":pencil2:",
	model.ActionConvertedToDraft: ":memo:",
}

var reviewHeader = map[model.Action]string{
	model.ActionOpened:           "*New PR* opened",
	model.ActionReopened:         "PR was *reopened*",
	model.ActionSynchronize:      "*New PR* updated",
	model.ActionClosed:           "PR was *closed*",
	model.ActionEdited:           "PR was *edited*",
	model.ActionConvertedToDraft: "PR was *converted to draft*",
}

var reviewStatus = map[model.Action]string{
	model.ActionOpened:           "`Recently Created`",
	model.ActionReopened:         "`Reopened`",
	model.ActionSynchronize:      "`Opened PR file edited / changed during active PR`",
	model.ActionConvertedToDraft: "`Draft Mode Enabled`",
}

func link(url, text string) string {
	return fmt.Sprintf("<%s|%s>", url, text)
}

func tl(f facts) string {
	return "`[TL]` " + f.teamLeads
}

func branchLine(e model.PullRequestEvent) string {
	return fmt.Sprintf(":twisted_rightwards_arrows: *Branch:* `%s` → `%s`", e.HeadRef, e.BaseRef)
}

// reviewCard is the three block layout shared by opened, reopened, synchronize, edited,
// converted_to_draft and closed.
func reviewCard(e model.PullRequestEvent, f facts, status, mergeField, body string) model.Notification {
	emoji := reviewEmoji[e.Action]
	return model.Notification{
		Text: emoji + " Pull Request Notification",
		Blocks: []model.Block{
			model.Section(fmt.Sprintf("%s %s by %s:\n%s\nCurrent Status: %s",
				emoji, reviewHeader[e.Action], f.author, branchLine(e), status)),
			model.Fields(
				fmt.Sprintf("*Commit:* <%s|`%s`>", e.URL, e.ShortSHA()),
				"*Mergeable:* "+mergeField,
			),
			model.Section(body),
		},
	}
}

func (uc *usecase) reviewMessage(e model.PullRequestEvent, f facts) model.Notification {
	status := reviewStatus[e.Action]
	var body string

	switch e.Action {
	case model.ActionEdited:
		status = fmt.Sprintf("`%s Edited`", editSummary(e.Changes))
		switch f.status {
		case mergeability.Mergeable:
			body = fmt.Sprintf("%s, Please review this %s now after edits by %s.", tl(f), link(e.URL, "PR"), f.actor)
		case mergeability.Conflict:
			body = fmt.Sprintf("%s, Please ask `[Developer]` %s / %s to resolve this %s.", tl(f), f.actor, f.author, link(e.URL, " PR"))
		default:
			body = fmt.Sprintf("%s, PR has been edited by %s. Please review %s.", tl(f), f.actor, link(e.URL, "PR"))
		}
	case model.ActionConvertedToDraft:
		body = fmt.Sprintf("%s, This %s has been converted to *Draft* mode.\n", tl(f), link(e.URL, "PR"))
	default:
		switch f.status {
		case mergeability.Mergeable:
			body = fmt.Sprintf("%s Kindly review this %s", tl(f), link(e.URL, " PR"))
			if e.Action == model.ActionSynchronize {
				body += fmt.Sprintf(" recently edited by the %s.", f.actor)
			}
		case mergeability.Conflict:
			body = fmt.Sprintf("%s Please ask `[Developer]` %s to resolve this %s.", tl(f), f.author, link(e.URL, " PR"))
		default:
			body = fmt.Sprintf("%s Please review this %s.", tl(f), link(e.URL, " PR"))
		}
	}

	return reviewCard(e, f, status, f.status.String(), body)
}

func editSummary(c model.EditChanges) string {
	parts := make([]string, 0, 3)
	if c.Title {
		parts = append(parts, "Title")
	}
	if c.Body {
		parts = append(parts, "Description")
	}
	if c.Base {
		parts = append(parts, "Base branch")
	}
	if len(parts) == 0 {
		return unknownEdits
	}
	return strings.Join(parts, ", ")
}

func closedMessage(e model.PullRequestEvent, f facts, method string) model.Notification {
	status, outcome, field := "`Closed PR without merge`", "closed without merge", "`Not Merged`"
	if e.Merged {
		status, outcome, field = "`Closed Merged PR`", method, fmt.Sprintf("`%s`", method)
	}
	body := fmt.Sprintf("This %s was *%s* by %s.\n%s Kindly review the %s closed.\n",
		link(e.URL, "PR"), outcome, f.actor, tl(f), link(e.URL, "PR"))
	return reviewCard(e, f, status, field, body)
}

func singleSection(text, body string) model.Notification {
	return model.Notification{Text: text, Blocks: []model.Block{model.Section(body)}}
}

func lockMessage(e model.PullRequestEvent, f facts) model.Notification {
	emoji, title, verb := ":lock:", "PR Locked", "locked"
	if e.Action == model.ActionUnlocked {
		emoji, title, verb = ":unlock:", "PR Unlocked", "unlocked"
	}
	body := fmt.Sprintf("%s %s\n%s This %s opened by %s has been `%s` by %s.",
		emoji, title, tl(f), link(e.URL, "PR"), f.author, verb, f.actor)
	return singleSection(emoji+" "+title, body)
}

func autoMergeMessage(e model.PullRequestEvent, f facts) model.Notification {
	title, icon, verb := "✅ Auto-Merge Enabled", ":white_check_mark:", "*enabled*"
	if e.Action == model.ActionAutoMergeDisabled {
		title, icon, verb = "🚫 Auto-Merge Disabled", ":no_entry_sign:", "*disabled*"
	}
	body := fmt.Sprintf("%s Auto-merge was %s by %s on this PR.\n%s\n%s Please have a look at this %s.",
		icon, verb, f.actor, branchLine(e), tl(f), link(e.URL, "PR"))
	return singleSection(title, body)
}

func assignMessage(e model.PullRequestEvent, f facts, assignee string) model.Notification {
	title, emoji, verb, prep := ":heavy_plus_sign: Pull Request Assigned", ":heavy_plus_sign:", "*assigned*", "to"
	if e.Action == model.ActionUnassigned {
		title, emoji, verb, prep = ":heavy_division_sign: Pull Request Unassigned", ":heavy_division_sign:", "*unassigned*", "from"
	}
	body := fmt.Sprintf("%s %s %s %s %s this PR.\n%s\n%s please be informed about this %s.\n",
		emoji, f.actor, verb, assignee, prep, branchLine(e), tl(f), link(e.URL, "PR"))
	return singleSection(title, body)
}

func milestoneMessage(e model.PullRequestEvent, f facts) model.Notification {
	title, due := noMilestone, noDueDate
	if e.Milestone != nil {
		if e.Milestone.Title != "" {
			title = e.Milestone.Title
		}
		if e.Milestone.DueOn != "" {
			due = e.Milestone.DueOn
		}
	}

	var heading, body, detail string
	if e.Action == model.ActionMilestoned {
		heading = "📌 PR Milestoned"
		detail = fmt.Sprintf("assigned to milestone `%s`", title)
		body = fmt.Sprintf("%s\nMilestone: `%s`\nDue Date: `%s`\n", heading, title, due)
	} else {
		heading = "🚫 Milestone Removed"
		detail = "removed from the milestone"
		body = fmt.Sprintf("%s\nRemoved Milestone: `%s`\n", heading, title)
	}
	body += fmt.Sprintf("Actioned by: %s\n%s %s. Kindly check the %s here.\n", f.actor, tl(f), detail, link(e.URL, "PR"))

	return singleSection(heading, body)
}

func queueMessage(e model.PullRequestEvent, f facts) model.Notification {
	if e.Action == model.ActionDequeued {
		body := fmt.Sprintf("This PR was dequeued from a merge queue by %s.\n %s, Kindly have a look at this %s.",
			f.actor, tl(f), link(e.URL, "PR"))
		return singleSection("⏳ PR Dequeued", body)
	}
	body := fmt.Sprintf("📥 PR Enqueued\nThis PR was added to a merge queue By %s.\n %s Kindly check this %s.",
		f.actor, tl(f), link(e.URL, "PR"))
	return singleSection("📥 PR Enqueued", body)
}

func readyMessage(e model.PullRequestEvent, f facts) model.Notification {
	body := fmt.Sprintf("✅ PR Ready for Review\n%s This draft %s is now *ready for review*.\n", tl(f), link(e.URL, "PR"))
	return singleSection("✅ PR Ready for Review", body)
}

func reviewRequestedMessage(e model.PullRequestEvent, f facts, reviewers []string) model.Notification {
	who := reviewerNotFound
	if len(reviewers) > 0 {
		who = strings.Join(reviewers, ", ")
	}
	body := fmt.Sprintf("🧐 Review Requested\n%s Review has been requested for this %s from %s by %s.\n",
		tl(f), link(e.URL, "PR"), who, f.actor)
	return singleSection("🧐 Review Requested", body)
}

func reviewRequestRemovedMessage(e model.PullRequestEvent, f facts, reviewer string) model.Notification {
	body := fmt.Sprintf("🚫 Review Request Removed\n%s Review request was removed for %s. Member Removed:  %s by %s.\n",
		tl(f), link(e.URL, "PR"), reviewer, f.actor)
	return singleSection("🚫 Review Request Removed", body)
}

func labelsMessage(b labels.Batch, f facts) model.Notification {
	body := fmt.Sprintf("🏷️ Labels Updated on PR.\n%s Labels %s on this %s by %s.\n",
		tl(f), labels.Summary(b), link(b.Event.URL, "PR"), f.actor)
	return singleSection("🏷️ Labels Updated on PR", body)
}

func unknownMessage(e model.PullRequestEvent, operator string) model.Notification {
	return model.Notification{
		Text: "👀 New Pull Request Notification",
		Blocks: []model.Block{
			model.Section(fmt.Sprintf(":eyes: PR Unknown Event Found.\nCurrent Status: `Event: %s Devops Check it`\n", e.RawAction)),
			model.Section(fmt.Sprintf("%s Kindly add event for this action %s.", operator, e.RawAction)),
		},
	}
}
