package loadcheck

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/calcsum/pkg/logger"
)

const percentageMultiplier = 100

// ErrMismatch is returned when at least one answer did not match its case.
var ErrMismatch = errors.New("unexpected responses")

// Run checks service health, sends the generated cases concurrently and
// verifies each answer.
func Run(ctx context.Context, cfg Config) (*Stats, error) {
	cfg = cfg.withDefaults()
	log := logger.Named("loadcheck")
	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "starting calculate check",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("requests", cfg.Requests),
		logger.Int("workers", cfg.Workers),
		logger.Float64("invalidRatio", cfg.InvalidRatio),
	)

	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)
	if err := client.Healthy(ctx); err != nil {
		return stats, err
	}

	cases := GenerateCases(cfg.Requests, cfg.InvalidRatio, cfg.Seed)

	jobs := make(chan Case, cfg.Workers*2)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tc := range jobs {
				check(ctx, client, cfg, tc, stats, log)
			}
		}()
	}

feed:
	for _, tc := range cases {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- tc:
		}
	}
	close(jobs)
	wg.Wait()

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	if stats.Mismatched > 0 || stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d mismatched, %d failed", ErrMismatch, stats.Mismatched, stats.Failed)
	}
	return stats, nil
}

func check(ctx context.Context, client *HTTPClient, cfg Config, tc Case, stats *Stats, log logger.Logger) {
	atomic.AddInt64(&stats.Sent, 1)

	got, err := client.Calculate(ctx, tc)
	if err != nil {
		atomic.AddInt64(&stats.Failed, 1)
		log.Warn(ctx, "request failed", logger.String("request_id", tc.RequestID), logger.Error(err))
		return
	}

	if err := verify(cfg, tc, got); err != nil {
		atomic.AddInt64(&stats.Mismatched, 1)
		if cfg.Verbose {
			log.Warn(ctx, "unexpected response",
				logger.String("request_id", tc.RequestID),
				logger.String("num1", tc.Num1),
				logger.String("num2", tc.Num2),
				logger.Error(err),
			)
		}
		return
	}
	atomic.AddInt64(&stats.Passed, 1)
}

// verify compares an answer with the expectation of its case.
func verify(cfg Config, tc Case, got response) error {
	if !tc.Valid {
		if got.Status != cfg.InvalidStatus {
			return fmt.Errorf("status %d, want %d", got.Status, cfg.InvalidStatus)
		}
		if got.Message == "" {
			return errors.New("missing error message")
		}
		return nil
	}
	if got.Status != http.StatusOK {
		return fmt.Errorf("status %d, want 200", got.Status)
	}
	if got.Result != tc.Want {
		return fmt.Errorf("result %v, want %v", got.Result, tc.Want)
	}
	if got.Result != got.Num1+got.Num2 {
		return fmt.Errorf("result %v is not num1+num2 (%v+%v)", got.Result, got.Num1, got.Num2)
	}
	return nil
}

func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var passRate, requestsPerSecond float64
	if stats.Sent > 0 {
		passRate = float64(stats.Passed) / float64(stats.Sent) * percentageMultiplier
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.Sent) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Any("sent", stats.Sent),
		logger.Any("passed", stats.Passed),
		logger.Any("mismatched", stats.Mismatched),
		logger.Any("failed", stats.Failed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("passRate", passRate),
		logger.Float64("requestsPerSecond", requestsPerSecond),
	)
}
