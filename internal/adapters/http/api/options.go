package api

import "github.com/okian/calcsum/pkg/logger"

// Operand defaults used when a query parameter is absent.
const (
	defaultNum1 = "4"
	defaultNum2 = "6"
)

type options struct {
	defaultNum1        string
	defaultNum2        string
	reportInvalidInput bool
	logger             logger.Logger
}

// Option configures the API server.
type Option func(*options)

// WithDefaults sets the operands used when num1 or num2 is absent.
// Empty values keep the built-in defaults.
func WithDefaults(num1, num2 string) Option {
	return func(o *options) {
		if num1 != "" {
			o.defaultNum1 = num1
		}
		if num2 != "" {
			o.defaultNum2 = num2
		}
	}
}

// WithReportInvalidInput answers invalid operands with 400 and the reason
// instead of the generic 500.
func WithReportInvalidInput(enabled bool) Option {
	return func(o *options) {
		o.reportInvalidInput = enabled
	}
}

// WithLogger sets the logger used by handlers and middleware.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
