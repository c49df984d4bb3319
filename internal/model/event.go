package model

import "time"

// Action is the pull_request webhook action.
type Action string

const (
	ActionAssigned             Action = "assigned"
	ActionAutoMergeDisabled    Action = "auto_merge_disabled"
	ActionAutoMergeEnabled     Action = "auto_merge_enabled"
	ActionClosed               Action = "closed"
	ActionConvertedToDraft     Action = "converted_to_draft"
	ActionDemilestoned         Action = "demilestoned"
	ActionDequeued             Action = "dequeued"
	ActionEdited               Action = "edited"
	ActionEnqueued             Action = "enqueued"
	ActionLabeled              Action = "labeled"
	ActionLocked               Action = "locked"
	ActionMilestoned           Action = "milestoned"
	ActionOpened               Action = "opened"
	ActionReadyForReview       Action = "ready_for_review"
	ActionReopened             Action = "reopened"
	ActionReviewRequestRemoved Action = "review_request_removed"
	ActionReviewRequested      Action = "review_requested"
	ActionSynchronize          Action = "synchronize"
	ActionUnassigned           Action = "unassigned"
	ActionUnlabeled            Action = "unlabeled"
	ActionUnlocked             Action = "unlocked"

	// ActionUnknown marks an action this service has no handler for.
	// The raw value is kept in PullRequestEvent.RawAction.
	ActionUnknown Action = ""
)

// KnownActions lists every action with a dedicated handler.
var KnownActions = []Action{
	ActionAssigned, ActionAutoMergeDisabled, ActionAutoMergeEnabled, ActionClosed,
	ActionConvertedToDraft, ActionDemilestoned, ActionDequeued, ActionEdited,
	ActionEnqueued, ActionLabeled, ActionLocked, ActionMilestoned, ActionOpened,
	ActionReadyForReview, ActionReopened, ActionReviewRequestRemoved,
	ActionReviewRequested, ActionSynchronize, ActionUnassigned, ActionUnlabeled,
	ActionUnlocked,
}

var knownActions = func() map[string]Action {
	m := make(map[string]Action, len(KnownActions))
	for _, a := range KnownActions {
		m[string(a)] = a
	}
	return m
}()

// ParseAction maps a raw action string to an Action, or ActionUnknown.
func ParseAction(raw string) Action {
	if a, ok := knownActions[raw]; ok {
		return a
	}
	return ActionUnknown
}

// Milestone is the milestone attached to a pull request.
type Milestone struct {
	Title string
	DueOn string
}

// EditChanges records which fields an "edited" action touched.
type EditChanges struct {
	Title bool
	Body  bool
	Base  bool
}

// PullRequestEvent is a parsed GitHub pull_request webhook. It is never mutated after parsing.
type PullRequestEvent struct {
	DeliveryID string
	Action     Action
	RawAction  string

	Repository string // owner/name
	Number     int
	URL        string
	Title      string
	Author     string // login of the PR author
	Actor      string // login of the sender
	HeadRef    string
	BaseRef    string
	HeadSHA    string

	Label              string
	Assignee           string
	RequestedReviewers []string
	RequestedReviewer  string
	Milestone          *Milestone
	Merged             bool
	MergeCommitSHA     string
	Changes            EditChanges

	ReceivedAt time.Time
}

// ShortSHA returns the first 7 characters of the head commit.
func (e PullRequestEvent) ShortSHA() string {
	if len(e.HeadSHA) > 7 {
		return e.HeadSHA[:7]
	}
	return e.HeadSHA
}
