// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/calcsum/internal/domain/model"
	"github.com/okian/calcsum/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Calculate sums two raw operands.
	Calculate(ctx context.Context, raw1, raw2 string) (model.CalculationResult, error)

	// RecordSuccess reports a calculation whose result was written.
	RecordSuccess(ctx context.Context)

	// RecordFault reports a failure that happened after a successful calculation.
	RecordFault(ctx context.Context, err error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	logger logger.Logger

	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	calculateHandler *CalculateHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := options{
		defaultNum1: defaultNum1,
		defaultNum2: defaultNum2,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Get()
	}

	return &Server{
		logger:           o.logger,
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		calculateHandler: newCalculateHandler(deps, o),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.Handle("/calculate", s.wrap(s.calculateHandler.HandleCalculate, "calculate"))
	mux.Handle("/healthz", s.wrap(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/stats", s.wrap(s.statsHandler.HandleStats, "stats"))
	mux.Handle("/metrics", s.healthHandler.MetricsHandler())
}

// wrap applies the common middleware chain. Recovery runs inside the metrics
// middleware so recovered panics are recorded as 500s.
func (s *Server) wrap(next http.HandlerFunc, endpoint string) http.Handler {
	return RequestIDMiddleware(
		MetricsMiddleware(RecoverMiddleware(next, s.logger), endpoint),
	)
}

// Response bodies.
const (
	// serverErrorMessage is the only detail a caller sees for a 500.
	serverErrorMessage = "Server error occurred"
)

type errorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// serverErrorBody is pre-encoded so a 500 can be written even when encoding fails.
var serverErrorBody = []byte(`{"message":"` + serverErrorMessage + `"}`)

// writeJSON encodes v before touching w so an encoding failure can still be
// answered with a 500.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		writeBody(w, http.StatusInternalServerError, serverErrorBody)
		return err
	}
	writeBody(w, status, body)
	return nil
}

func writeBody(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// Usually the client went away; nothing else can be sent.
		logger.Get().Debug(context.Background(), "response write failed",
			logger.Int("status", status),
			logger.Error(err),
		)
	}
}

func writeServerError(w http.ResponseWriter) {
	writeBody(w, http.StatusInternalServerError, serverErrorBody)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	_ = writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
