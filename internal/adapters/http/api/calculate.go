package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/okian/calcsum/internal/domain/calculator"
	"github.com/okian/calcsum/pkg/logger"
)

// CalculateHandler handles GET /calculate.
type CalculateHandler struct {
	deps               Dependencies
	logger             logger.Logger
	defaultNum1        string
	defaultNum2        string
	reportInvalidInput bool
}

// newCalculateHandler creates a calculate handler from server options.
func newCalculateHandler(deps Dependencies, o options) *CalculateHandler {
	return &CalculateHandler{
		deps:               deps,
		logger:             o.logger,
		defaultNum1:        o.defaultNum1,
		defaultNum2:        o.defaultNum2,
		reportInvalidInput: o.reportInvalidInput,
	}
}

// HandleCalculate handles GET /calculate?num1=&num2= requests.
func (h *CalculateHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}

	ctx := r.Context()
	query := r.URL.Query()
	num1 := operand(query, calculator.ParamNum1, h.defaultNum1)
	num2 := operand(query, calculator.ParamNum2, h.defaultNum2)

	res, err := h.deps.Calculate(ctx, num1, num2)
	if err != nil {
		h.fail(ctx, w, err, num1, num2)
		return
	}

	if err := writeJSON(w, http.StatusOK, res); err != nil {
		h.deps.RecordFault(ctx, errors.Join(ErrEncode, err))
		return
	}
	h.deps.RecordSuccess(ctx)

	h.logger.Info(ctx, "calculated",
		logger.String("num1", num1),
		logger.String("num2", num2),
		logger.Float64("result", res.Result),
		logger.String("request_id", RequestIDFromContext(ctx)),
	)
}

func (h *CalculateHandler) fail(ctx context.Context, w http.ResponseWriter, err error, num1, num2 string) {
	h.logger.Warn(ctx, "calculation failed",
		logger.String("num1", num1),
		logger.String("num2", num2),
		logger.Error(err),
		logger.String("request_id", RequestIDFromContext(ctx)),
	)

	var invalid *calculator.InvalidInputError
	if h.reportInvalidInput && errors.As(err, &invalid) {
		writeError(w, http.StatusBadRequest, "invalid_input", invalid)
		return
	}
	writeServerError(w)
}

// operand returns the first value of key, or fallback when key is absent.
// A present but empty value is returned as is.
func operand(query url.Values, key, fallback string) string {
	vals, ok := query[key]
	if !ok || len(vals) == 0 {
		return fallback
	}
	return vals[0]
}
