package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/gotoresto/gotoresto-backend/pkg/logger"
	"github.com/gotoresto/gotoresto-backend/pkg/metrics"
	"go.uber.org/multierr"
)

// Service drives the registered jobs on a fixed interval.
type Service struct {
	registry *Registry
	lock     Lock
	metrics  *metrics.CronJobMetrics
	logg     *logger.Logger
	interval time.Duration
}

// ServiceParams bundles the dependencies for the cron service.
type ServiceParams struct {
	Registry *Registry
	Lock     Lock
	Metrics  *metrics.CronJobMetrics
	Logger   *logger.Logger
	Interval time.Duration
}

// NewService constructs the cron runner.
func NewService(params ServiceParams) (*Service, error) {
	if params.Registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if params.Lock == nil {
		return nil, fmt.Errorf("lock is required")
	}
	if params.Interval <= 0 {
		return nil, fmt.Errorf("interval must be positive")
	}
	return &Service{
		registry: params.Registry,
		lock:     params.Lock,
		metrics:  params.Metrics,
		logg:     params.Logger,
		interval: params.Interval,
	}, nil
}

// Start runs all jobs once, then on every interval tick until the context
// is canceled.
func (s *Service) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	if err := s.RunAll(ctx); err != nil && s.logg != nil {
		s.logg.Error(ctx, "cron run failed", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.RunAll(ctx); err != nil && s.logg != nil {
				s.logg.Error(ctx, "cron run failed", err)
			}
		}
	}
}

// RunAll executes every registered job under its lock. One failing job
// does not stop the others; failures are accumulated.
func (s *Service) RunAll(ctx context.Context) error {
	var errs error
	for _, job := range s.registry.Jobs() {
		if err := s.runOne(ctx, job); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", job.Name(), err))
		}
	}
	return errs
}

func (s *Service) runOne(ctx context.Context, job Job) error {
	acquired, err := s.lock.Acquire(ctx, job.Name())
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !acquired {
		if s.logg != nil {
			s.logg.Info(ctx, fmt.Sprintf("job %s skipped, lock held elsewhere", job.Name()))
		}
		return nil
	}
	defer func() {
		if releaseErr := s.lock.Release(ctx, job.Name()); releaseErr != nil && s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("job %s lock release failed", job.Name()))
		}
	}()

	start := time.Now()
	runErr := job.Run(ctx)
	s.metrics.ObserveDuration(job.Name(), time.Since(start))
	if runErr != nil {
		s.metrics.IncFailure(job.Name())
		return runErr
	}
	s.metrics.IncSuccess(job.Name())
	return nil
}
