// Package loadcheck drives concurrent GET /calculate requests against a
// running service and verifies every answer.
package loadcheck

import (
	"net/http"
	"time"
)

// Config holds configuration for a check run.
type Config struct {
	BaseURL       string        // Base URL of the service
	Requests      int           // Number of requests to send
	Workers       int           // Number of concurrent workers
	Timeout       time.Duration // HTTP request timeout
	InvalidRatio  float64       // Share of requests with a non-numeric operand, 0..1
	InvalidStatus int           // Status expected for invalid operands
	Seed          int64         // Seed for operand generation
	Verbose       bool          // Log every mismatch
}

// withDefaults fills zero values.
func (c Config) withDefaults() Config {
	if c.Requests <= 0 {
		c.Requests = 1
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.InvalidStatus == 0 {
		c.InvalidStatus = http.StatusInternalServerError
	}
	if c.InvalidRatio < 0 {
		c.InvalidRatio = 0
	}
	if c.InvalidRatio > 1 {
		c.InvalidRatio = 1
	}
	return c
}

// Case is one generated request and its expected outcome.
type Case struct {
	RequestID string
	Num1      string
	Num2      string
	Valid     bool
	Want      float64
}

// Stats holds run statistics.
type Stats struct {
	Sent       int64
	Passed     int64
	Mismatched int64
	Failed     int64 // transport errors
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}

const defaultTimeout = 10 * time.Second
