package labels

import (
	"context"
	"fmt"
	"time"

	"github-pr-watcher/internal/model"
)

// Kind says whether a label was added or removed.
type Kind int

const (
	Added Kind = iota
	Removed
)

// KindFromAction maps labeled/unlabeled to a Kind.
func KindFromAction(a model.Action) (Kind, bool) {
	switch a {
	case model.ActionLabeled:
		return Added, true
	case model.ActionUnlabeled:
		return Removed, true
	default:
		return 0, false
	}
}

// Key identifies the pull request a burst of label events belongs to.
type Key struct {
	Repository string
	Number     int
}

func (k Key) String() string {
	return fmt.Sprintf("%s#%d", k.Repository, k.Number)
}

// Batch is the coalesced result of one quiet burst.
type Batch struct {
	Key     Key
	Added   []string // sorted, deduplicated
	Removed []string // sorted, deduplicated
	Event   model.PullRequestEvent
}

// FlushFunc receives each coalesced batch.
type FlushFunc func(ctx context.Context, b Batch)

// Config tunes the debouncer timing.
type Config struct {
	// Delay is how long after each event its flush task wakes.
	Delay time.Duration
	// Quiet is how long the key must have been untouched for a task to flush.
	Quiet time.Duration
	// FlushTimeout bounds the flush callback.
	FlushTimeout time.Duration
	// Now overrides the clock.
	Now func() time.Time
}

const (
	DefaultDelay        = 1200 * time.Millisecond
	DefaultQuiet        = 1100 * time.Millisecond
	DefaultFlushTimeout = time.Minute
)
