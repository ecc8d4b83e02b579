// Package scheduler runs the periodic installment status sweep that keeps
// UPCOMING/PENDING/LATE classifications current as calendar time passes.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/shopledger/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Sweeper is the operation the scheduler drives on each tick
type Sweeper interface {
	UpdateAllOverdueStatus(ctx context.Context) error
}

// SweepScheduler periodically re-derives installment statuses. The sweep is
// idempotent, so overlapping runs (startup sweep plus a tick) are harmless.
type SweepScheduler struct {
	sweeper  Sweeper
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewSweepScheduler creates a new SweepScheduler
func NewSweepScheduler(sweeper Sweeper, cfg config.SchedulerConfig, logger *zap.Logger) *SweepScheduler {
	return &SweepScheduler{
		sweeper:  sweeper,
		interval: cfg.SweepInterval,
		logger:   logger.Named("sweep"),
	}
}

// Start launches the sweep loop. Calling Start on a running scheduler is a
// no-op.
func (s *SweepScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.run(ctx)
	s.logger.Info("installment sweep scheduler started",
		zap.Duration("interval", s.interval))
}

// Stop terminates the sweep loop and waits for an in-flight sweep to finish
func (s *SweepScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done
	s.logger.Info("installment sweep scheduler stopped")
}

func (s *SweepScheduler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *SweepScheduler) sweepOnce(ctx context.Context) {
	if err := s.sweeper.UpdateAllOverdueStatus(ctx); err != nil {
		s.logger.Error("installment sweep failed", zap.Error(err))
	}
}
