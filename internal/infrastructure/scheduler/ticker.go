package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/ports"
)

// TickerScheduler runs the collection job immediately and then on a
// fixed interval until stopped.
type TickerScheduler struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
}

var _ ports.Scheduler = (*TickerScheduler)(nil)

// NewTickerScheduler builds a scheduler firing every interval. Intervals
// below one minute are clamped to one minute to keep courtesy toward the
// public sources the cycles hit.
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval < time.Minute {
		interval = time.Minute
	}
	return &TickerScheduler{interval: interval}
}

// Start begins firing the job. Calling Start on a running scheduler is a
// no-op.
func (s *TickerScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return nil
	}

	stop := make(chan struct{})
	s.stop = stop
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		job(time.Now())
		for {
			select {
			case t := <-ticker.C:
				job(t)
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the ticker goroutine. Safe to call concurrently with Start
// and safe to call more than once.
func (s *TickerScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop == nil {
		return nil
	}
	close(s.stop)
	s.stop = nil
	return nil
}
