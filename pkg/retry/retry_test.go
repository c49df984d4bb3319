package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github-pr-watcher/pkg/retry"
)

func TestDo_TerminalOnThirdAttempt(t *testing.T) {
	calls := 0
	start := time.Now()
	got, err := retry.Do(context.Background(), retry.Policy{MaxAttempts: 3, Delay: 20 * time.Millisecond},
		func(ctx context.Context, attempt int) (string, bool, error) {
			calls++
			if attempt < 3 {
				return "pending", false, nil
			}
			return "done", true, nil
		})
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "done" {
		t.Errorf("expected done, got %q", got)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if elapsed < 40*time.Millisecond {
		t.Errorf("expected two delays (>=40ms), got %v", elapsed)
	}
}

func TestDo_Exhausted(t *testing.T) {
	calls := 0
	got, err := retry.Do(context.Background(), retry.Policy{MaxAttempts: 3, Delay: time.Millisecond},
		func(ctx context.Context, attempt int) (int, bool, error) {
			calls++
			return attempt, false, nil
		})

	if !errors.Is(err, retry.ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if got != 3 {
		t.Errorf("expected last result 3, got %d", got)
	}
}

func TestDo_ErrorStopsImmediately(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	_, err := retry.Do(context.Background(), retry.Policy{MaxAttempts: 5, Delay: time.Millisecond},
		func(ctx context.Context, attempt int) (int, bool, error) {
			calls++
			return 0, false, boom
		})

	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_ContextCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := retry.Do(ctx, retry.Policy{MaxAttempts: 3, Delay: time.Second},
		func(ctx context.Context, attempt int) (int, bool, error) {
			calls++
			cancel()
			return 0, false, nil
		})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_, _ = retry.Do(context.Background(), retry.Policy{}, func(ctx context.Context, attempt int) (int, bool, error) {
		calls++
		return 0, false, nil
	})
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_NoDelayAfterLastAttempt(t *testing.T) {
	start := time.Now()
	_, err := retry.Do(context.Background(), retry.Policy{MaxAttempts: 2, Delay: 100 * time.Millisecond},
		func(ctx context.Context, attempt int) (int, bool, error) {
			return attempt, false, nil
		})
	elapsed := time.Since(start)

	if !errors.Is(err, retry.ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
	if elapsed < 100*time.Millisecond {
		t.Errorf("expected one delay between the two attempts, got %v", elapsed)
	}
	if elapsed >= 200*time.Millisecond {
		t.Errorf("the final attempt must not be followed by a delay, took %v", elapsed)
	}
}

func TestDo_ErrorIsNotWrapped(t *testing.T) {
	boom := errors.New("fetch failed")
	_, err := retry.Do(context.Background(), retry.Policy{MaxAttempts: 3, Delay: time.Millisecond},
		func(ctx context.Context, attempt int) (int, bool, error) {
			return 0, false, boom
		})
	if err != boom {
		t.Errorf("expected the attempt error itself, got %#v", err)
	}
}
