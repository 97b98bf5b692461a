package service

import (
	"context"
	"sync"
	"time"

	"github.com/ansolutions0125/nexmailer/pkg/logger"
)

// SweepFunc is one batch run of a periodic job.
type SweepFunc func(ctx context.Context, batchSize int) error

// SweepRunner drives a batch job on an in-process ticker, for
// deployments without an external cron hitting the trigger endpoints.
type SweepRunner struct {
	name        string
	sweep       SweepFunc
	logger      logger.Logger
	interval    time.Duration
	batchSize   int
	stopChan    chan struct{}
	stoppedChan chan struct{}
	mu          sync.Mutex
	running     bool
}

// NewSweepRunner creates a new sweep runner
func NewSweepRunner(name string, sweep SweepFunc, log logger.Logger, interval time.Duration, batchSize int) *SweepRunner {
	return &SweepRunner{
		name:        name,
		sweep:       sweep,
		logger:      log,
		interval:    interval,
		batchSize:   batchSize,
		stopChan:    make(chan struct{}),
		stoppedChan: make(chan struct{}),
	}
}

// Start begins the periodic sweeps
func (s *SweepRunner) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.WithField("runner", s.name).Warn("Sweep runner already running")
		return
	}
	s.running = true
	s.mu.Unlock()

	s.logger.WithField("runner", s.name).
		WithField("interval", s.interval).
		WithField("batch_size", s.batchSize).
		Info("Starting sweep runner")

	go s.run(ctx)
}

// Stop gracefully stops the runner
func (s *SweepRunner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopChan)

	select {
	case <-s.stoppedChan:
		s.logger.WithField("runner", s.name).Info("Sweep runner stopped")
	case <-time.After(5 * time.Second):
		s.logger.WithField("runner", s.name).Warn("Sweep runner stop timeout exceeded")
	}
}

func (s *SweepRunner) run(ctx context.Context) {
	defer close(s.stoppedChan)
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run once immediately on start
	s.runOnce(ctx)

	for {
		select {
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *SweepRunner) runOnce(ctx context.Context) {
	if err := s.sweep(ctx, s.batchSize); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"runner": s.name,
			"error":  err.Error(),
		}).Error("Sweep failed")
	}
}
