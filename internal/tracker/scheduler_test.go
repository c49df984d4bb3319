package tracker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github-pr-watcher/internal/tracker"
	"github-pr-watcher/pkg/log"
)

type countingUseCase struct {
	runs  int32
	input tracker.SyncInput
}

func (c *countingUseCase) SyncReadyForQA(ctx context.Context, input tracker.SyncInput) (tracker.SyncOutput, error) {
	atomic.AddInt32(&c.runs, 1)
	c.input = input
	return tracker.SyncOutput{}, nil
}

func (c *countingUseCase) UpdateStatusByKey(ctx context.Context, input tracker.UpdateStatusInput) (tracker.TaskUpdate, error) {
	return tracker.TaskUpdate{}, nil
}

func TestScheduler(t *testing.T) {
	uc := &countingUseCase{}
	s := tracker.NewScheduler(uc, tracker.SyncInput{Repository: "acme/api", TargetBranch: "develop"}, 20*time.Millisecond, log.NewNop())

	s.Start()
	s.Start()
	time.Sleep(110 * time.Millisecond)
	s.Stop()
	s.Stop()

	runs := atomic.LoadInt32(&uc.runs)
	if runs < 2 {
		t.Fatalf("expected several runs, got %d", runs)
	}
	time.Sleep(50 * time.Millisecond)
	if after := atomic.LoadInt32(&uc.runs); after != runs {
		t.Errorf("scheduler kept running after Stop: %d -> %d", runs, after)
	}
	if uc.input.TargetBranch != "develop" {
		t.Errorf("unexpected input %+v", uc.input)
	}
}

func TestScheduler_DisabledInterval(t *testing.T) {
	uc := &countingUseCase{}
	s := tracker.NewScheduler(uc, tracker.SyncInput{}, 0, log.NewNop())
	s.Start()
	s.Stop()
	if atomic.LoadInt32(&uc.runs) != 0 {
		t.Error("a disabled scheduler must not run")
	}
}
