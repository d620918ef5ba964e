package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/calcsum/internal/loadcheck"
	"github.com/okian/calcsum/pkg/logger"
)

// Default configuration constants.
const (
	defaultRequests     = 10000
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 10 * time.Second
	defaultInvalidRatio = 0.1
	defaultRunTimeout   = 10 * time.Minute
)

func main() {
	var (
		baseURL       = flag.String("url", "http://localhost:3002", "Base URL of the service")
		requests      = flag.Int("requests", defaultRequests, "Number of /calculate requests to send")
		workers       = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout       = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		invalidRatio  = flag.Float64("invalid-ratio", defaultInvalidRatio, "Share of requests with a non-numeric operand (0..1)")
		invalidStatus = flag.Int("invalid-status", http.StatusInternalServerError, "Status expected for invalid operands (400 when report_invalid_input is on)")
		seed          = flag.Int64("seed", time.Now().UnixNano(), "Seed for operand generation")
		verbose       = flag.Bool("verbose", false, "Log every unexpected response")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	_, err := loadcheck.Run(ctx, loadcheck.Config{
		BaseURL:       *baseURL,
		Requests:      *requests,
		Workers:       *workers,
		Timeout:       *timeout,
		InvalidRatio:  *invalidRatio,
		InvalidStatus: *invalidStatus,
		Seed:          *seed,
		Verbose:       *verbose,
	})
	if err != nil {
		os.Stderr.WriteString("check failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
