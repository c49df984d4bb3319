package labels_test

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github-pr-watcher/internal/labels"
	"github-pr-watcher/internal/model"
	"github-pr-watcher/pkg/log"
)

type recorder struct {
	mu      sync.Mutex
	batches []labels.Batch
}

func (r *recorder) flush(ctx context.Context, b labels.Batch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, b)
}

func (r *recorder) snapshot() []labels.Batch {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]labels.Batch(nil), r.batches...)
}

func newDebouncer(r *recorder) *labels.Debouncer {
	return labels.New(labels.Config{
		Delay: 200 * time.Millisecond,
		Quiet: 150 * time.Millisecond,
	}, r.flush, log.NewNop())
}

func event(actor string) model.PullRequestEvent {
	return model.PullRequestEvent{Repository: "acme/api", Number: 5, Actor: actor}
}

func TestDebouncer_BurstFlushesOnce(t *testing.T) {
	rec := &recorder{}
	d := newDebouncer(rec)
	ctx := context.Background()
	key := labels.Key{Repository: "acme/api", Number: 5}

	d.OnLabelEvent(ctx, key, labels.Added, "bug", event("alice"))
	d.OnLabelEvent(ctx, key, labels.Added, "urgent", event("alice"))
	d.OnLabelEvent(ctx, key, labels.Removed, "wip", event("alice"))
	d.OnLabelEvent(ctx, key, labels.Added, "bug", event("bob"))
	d.Wait()

	got := rec.snapshot()
	if len(got) != 1 {
		t.Fatalf("expected exactly one flush, got %d", len(got))
	}
	if !reflect.DeepEqual(got[0].Added, []string{"bug", "urgent"}) {
		t.Errorf("unexpected added set: %v", got[0].Added)
	}
	if !reflect.DeepEqual(got[0].Removed, []string{"wip"}) {
		t.Errorf("unexpected removed set: %v", got[0].Removed)
	}
	if got[0].Event.Actor != "bob" {
		t.Errorf("expected latest event to be kept, got actor %s", got[0].Event.Actor)
	}
	if d.Pending() != 0 {
		t.Errorf("expected entry to be destroyed after flush, %d pending", d.Pending())
	}
}

func TestDebouncer_SpacedEventsExtendTheWindow(t *testing.T) {
	rec := &recorder{}
	d := newDebouncer(rec)
	ctx := context.Background()
	key := labels.Key{Repository: "acme/api", Number: 5}

	// Each event lands inside the previous event's quiet window, so only the last task flushes.
	for _, name := range []string{"a", "b", "c", "d"} {
		d.OnLabelEvent(ctx, key, labels.Added, name, event("alice"))
		time.Sleep(100 * time.Millisecond)
	}
	d.Wait()

	got := rec.snapshot()
	if len(got) != 1 {
		t.Fatalf("expected exactly one flush, got %d", len(got))
	}
	if !reflect.DeepEqual(got[0].Added, []string{"a", "b", "c", "d"}) {
		t.Errorf("unexpected added set: %v", got[0].Added)
	}
}

func TestDebouncer_ConcurrentEventsSameKey(t *testing.T) {
	rec := &recorder{}
	d := newDebouncer(rec)
	ctx := context.Background()
	key := labels.Key{Repository: "acme/api", Number: 5}

	names := []string{"l0", "l1", "l2", "l3", "l4", "l5", "l6", "l7", "l8", "l9"}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d.OnLabelEvent(ctx, key, labels.Added, names[i%len(names)], event("alice"))
		}(i)
	}
	wg.Wait()
	d.Wait()

	got := rec.snapshot()
	if len(got) != 1 {
		t.Fatalf("expected exactly one flush, got %d", len(got))
	}
	if !reflect.DeepEqual(got[0].Added, names) {
		t.Errorf("expected every label exactly once, got %v", got[0].Added)
	}
}

func TestDebouncer_KeysAreIndependent(t *testing.T) {
	rec := &recorder{}
	d := newDebouncer(rec)
	ctx := context.Background()

	d.OnLabelEvent(ctx, labels.Key{Repository: "acme/api", Number: 1}, labels.Added, "x", event("alice"))
	d.OnLabelEvent(ctx, labels.Key{Repository: "acme/api", Number: 2}, labels.Removed, "y", event("alice"))
	d.OnLabelEvent(ctx, labels.Key{Repository: "acme/web", Number: 1}, labels.Added, "z", event("alice"))
	d.Wait()

	if got := rec.snapshot(); len(got) != 3 {
		t.Fatalf("expected one flush per key, got %d", len(got))
	}
}

func TestDebouncer_SeparateBurstsFlushSeparately(t *testing.T) {
	rec := &recorder{}
	d := newDebouncer(rec)
	ctx := context.Background()
	key := labels.Key{Repository: "acme/api", Number: 5}

	d.OnLabelEvent(ctx, key, labels.Added, "first", event("alice"))
	d.Wait()
	d.OnLabelEvent(ctx, key, labels.Added, "second", event("alice"))
	d.Wait()

	got := rec.snapshot()
	if len(got) != 2 {
		t.Fatalf("expected two flushes, got %d", len(got))
	}
	if !reflect.DeepEqual(got[1].Added, []string{"second"}) {
		t.Errorf("second burst must not carry the first burst's labels: %v", got[1].Added)
	}
}

func TestSummary(t *testing.T) {
	cases := []struct {
		name  string
		batch labels.Batch
		want  string
	}{
		{"added only", labels.Batch{Added: []string{"bug", "p1"}}, "*added* `bug`, `p1`"},
		{"removed only", labels.Batch{Removed: []string{"wip"}}, "*removed* `wip`"},
		{"both", labels.Batch{Added: []string{"bug"}, Removed: []string{"wip"}}, "*added* `bug` and *removed* `wip`"},
		{"empty", labels.Batch{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := labels.Summary(tc.batch); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestKindFromAction(t *testing.T) {
	if k, ok := labels.KindFromAction(model.ActionLabeled); !ok || k != labels.Added {
		t.Error("labeled must map to Added")
	}
	if k, ok := labels.KindFromAction(model.ActionUnlabeled); !ok || k != labels.Removed {
		t.Error("unlabeled must map to Removed")
	}
	if _, ok := labels.KindFromAction(model.ActionOpened); ok {
		t.Error("opened is not a label action")
	}
}
