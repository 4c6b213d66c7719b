// Package scheduler runs periodic background jobs, currently only the
// metrics snapshot warm-up.
package scheduler

import (
	"github.com/robfig/cron/v3"

	"dreinfinity/internal/logger"
	"dreinfinity/internal/services"
)

// Scheduler wraps a cron runner around the metrics refresh job.
type Scheduler struct {
	cron           *cron.Cron
	metricsService services.MetricsServicer
}

// New creates a Scheduler that refreshes metrics snapshots on the given
// cron expression.
func New(metricsService services.MetricsServicer, spec string) (*Scheduler, error) {
	s := &Scheduler{
		cron:           cron.New(),
		metricsService: metricsService,
	}

	if _, err := s.cron.AddFunc(spec, s.refreshMetrics); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins running scheduled jobs in their own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Get().Infow("scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Get().Infow("scheduler stopped")
}

func (s *Scheduler) refreshMetrics() {
	logger.Get().Infow("refreshing metrics snapshots")
	if err := s.metricsService.RefreshAll(); err != nil {
		logger.Get().Errorw("metrics snapshot refresh failed", "error", err)
	}
}
