package labels

import (
	"context"
	"sort"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github-pr-watcher/internal/model"
	pkgLog "github-pr-watcher/pkg/log"
)

type entry struct {
	added       mapset.Set[string]
	removed     mapset.Set[string]
	lastUpdated time.Time
	latest      model.PullRequestEvent
}

// Debouncer coalesces label events per pull request. Every event schedules its own flush
// task; a task only flushes when the key has been quiet for Config.Quiet, so the last task
// of a burst emits exactly one batch and earlier tasks no-op.
type Debouncer struct {
	cfg   Config
	flush FlushFunc
	l     pkgLog.Logger

	mu      sync.Mutex
	entries map[Key]*entry

	pending sync.WaitGroup
}

// New creates a Debouncer that hands coalesced batches to flush.
func New(cfg Config, flush FlushFunc, l pkgLog.Logger) *Debouncer {
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	if cfg.Quiet <= 0 {
		cfg.Quiet = DefaultQuiet
	}
	if cfg.FlushTimeout <= 0 {
		cfg.FlushTimeout = DefaultFlushTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Debouncer{
		cfg:     cfg,
		flush:   flush,
		l:       l,
		entries: make(map[Key]*entry),
	}
}

// OnLabelEvent records a label change and schedules a flush task for its key.
func (d *Debouncer) OnLabelEvent(ctx context.Context, key Key, kind Kind, label string, event model.PullRequestEvent) {
	d.mu.Lock()
	e, ok := d.entries[key]
	if !ok {
		e = &entry{
			added:   mapset.NewThreadUnsafeSet[string](),
			removed: mapset.NewThreadUnsafeSet[string](),
		}
		d.entries[key] = e
	}
	if label != "" {
		switch kind {
		case Added:
			e.added.Add(label)
		case Removed:
			e.removed.Add(label)
		}
	}
	e.lastUpdated = d.cfg.Now()
	e.latest = event
	d.mu.Unlock()

	d.l.Debugf(ctx, "internal.labels.OnLabelEvent: %s %q on %s, flush scheduled in %v", kindName(kind), label, key, d.cfg.Delay)

	d.pending.Add(1)
	time.AfterFunc(d.cfg.Delay, func() {
		defer d.pending.Done()
		d.tryFlush(key)
	})
}

// Wait blocks until every scheduled flush task has run.
func (d *Debouncer) Wait() {
	d.pending.Wait()
}

// Pending reports how many keys currently hold unflushed labels.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

func (d *Debouncer) tryFlush(key Key) {
	d.mu.Lock()
	e, ok := d.entries[key]
	if !ok {
		d.mu.Unlock()
		return
	}
	if d.cfg.Now().Sub(e.lastUpdated) < d.cfg.Quiet {
		d.mu.Unlock()
		return
	}
	delete(d.entries, key)
	batch := Batch{
		Key:     key,
		Added:   sortedSlice(e.added),
		Removed: sortedSlice(e.removed),
		Event:   e.latest,
	}
	d.mu.Unlock()

	if len(batch.Added) == 0 && len(batch.Removed) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(pkgLog.WithDeliveryID(context.Background(), batch.Event.DeliveryID), d.cfg.FlushTimeout)
	defer cancel()

	d.l.Infof(ctx, "internal.labels.tryFlush: flushing %s (+%d/-%d)", key, len(batch.Added), len(batch.Removed))
	d.flush(ctx, batch)
}

func sortedSlice(s mapset.Set[string]) []string {
	out := s.ToSlice()
	sort.Strings(out)
	return out
}

func kindName(k Kind) string {
	if k == Removed {
		return "removed"
	}
	return "added"
}
