package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/sobri3195/CyberHawk-Threat-Intelligence/internal/ports"
)

// Scheduler drives recurring collection cycles through a scheduler
// driver.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	request  CycleRequest
	logger   *slog.Logger
}

// NewScheduler binds a cycle request to the scheduler driver.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, request CycleRequest, logger *slog.Logger) *Scheduler {
	return &Scheduler{driver: driver, pipeline: pipeline, request: request, logger: logger}
}

// Start registers the recurring cycle job.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}

	job := func(trigger time.Time) {
		result, err := s.pipeline.Run(ctx, s.request)
		if err != nil {
			if s.logger != nil {
				s.logger.Error("scheduled cycle failed", "trigger", trigger, "error", err)
			}
			return
		}
		if s.logger != nil {
			s.logger.Info("scheduled cycle finished",
				"trigger", trigger,
				"collected", result.Collected,
				"processed", result.Processed)
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop tears down the underlying driver.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}
	return s.driver.Stop(ctx)
}
