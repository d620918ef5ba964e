// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/calcsum/internal/domain/calculator"
	"github.com/okian/calcsum/internal/domain/model"
	"github.com/okian/calcsum/pkg/logger"
	"github.com/okian/calcsum/pkg/metrics"
)

// Service runs calculations and keeps process-wide counters for /stats.
// Calculations themselves share no state.
type Service struct {
	mu sync.RWMutex

	calculate calculator.Func
	logger    logger.Logger

	started   bool
	startedAt time.Time

	calculations atomic.Int64
	invalid      atomic.Int64
	faults       atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCalculator replaces the calculation function.
func WithCalculator(fn calculator.Func) Option {
	return func(s *Service) {
		if fn != nil {
			s.calculate = fn
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		calculate: calculator.Calculate,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start marks the service ready. It is safe to call more than once.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "calculation service started")

	return nil
}

// Stop marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "calculation service stopped",
		logger.Any("calculations", s.calculations.Load()),
	)
}

// Calculate sums two raw operands. Invalid operands yield an error wrapping
// calculator.ErrInvalidInput; any other error is an internal fault. Failures
// are counted here; a success is counted by RecordSuccess once the caller
// has delivered the result.
func (s *Service) Calculate(ctx context.Context, raw1, raw2 string) (model.CalculationResult, error) {
	res, err := s.calculate(raw1, raw2)
	switch {
	case err == nil:
	case errors.Is(err, calculator.ErrInvalidInput):
		s.invalid.Add(1)
		metrics.RecordCalculation(metrics.OutcomeInvalidInput)
	default:
		s.RecordFault(ctx, err)
	}
	return res, err
}

// RecordSuccess counts a calculation whose result reached the caller.
func (s *Service) RecordSuccess(_ context.Context) {
	s.calculations.Add(1)
	metrics.RecordCalculation(metrics.OutcomeSuccess)
}

// RecordFault counts a failure that is not caused by the caller's input.
func (s *Service) RecordFault(ctx context.Context, err error) {
	s.faults.Add(1)
	metrics.RecordCalculation(metrics.OutcomeFault)
	if l := s.log(); l != nil {
		l.Error(ctx, "calculation fault", logger.Error(err))
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"calculations": s.calculations.Load(),
		"invalidInput": s.invalid.Load(),
		"faults":       s.faults.Load(),
	}
	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
	}
	return stats
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logger
}
