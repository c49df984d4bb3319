package tracker

import (
	"context"
	"sync"
	"time"

	pkgLog "github-pr-watcher/pkg/log"
)

// DefaultRunTimeout bounds one scheduled sync.
const DefaultRunTimeout = 5 * time.Minute

// Scheduler runs SyncReadyForQA on a fixed interval.
type Scheduler struct {
	uc       UseCase
	input    SyncInput
	interval time.Duration
	l        pkgLog.Logger

	stopChan chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

func NewScheduler(uc UseCase, input SyncInput, interval time.Duration, l pkgLog.Logger) *Scheduler {
	return &Scheduler{
		uc:       uc,
		input:    input,
		interval: interval,
		l:        l,
		stopChan: make(chan struct{}),
	}
}

// Start launches the loop and returns immediately. A non-positive interval disables it.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running || s.interval <= 0 {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.l.Infof(context.Background(), "internal.tracker.Scheduler: starting with %v interval", s.interval)

	s.wg.Add(1)
	go s.loop()
}

// Stop ends the loop and waits for a running sync to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopChan)
	s.wg.Wait()
	s.l.Infof(context.Background(), "internal.tracker.Scheduler: stopped")
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.run()
		case <-s.stopChan:
			return
		}
	}
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultRunTimeout)
	defer cancel()

	out, err := s.uc.SyncReadyForQA(ctx, s.input)
	if err != nil {
		s.l.Errorf(ctx, "internal.tracker.Scheduler: sync failed: %v", err)
		return
	}
	s.l.Infof(ctx, "internal.tracker.Scheduler: %d branches, %d tasks", len(out.Branches), len(out.Tasks))
}
