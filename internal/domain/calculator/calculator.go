// Package calculator validates and sums two textual operands.
//
// Calculate is pure: it performs no I/O, keeps no state and returns the same
// result for the same inputs.
package calculator

import (
	"math"

	"github.com/okian/calcsum/internal/domain/model"
)

// Operand names used in error reports.
const (
	ParamNum1 = "num1"
	ParamNum2 = "num2"
)

// Func is the signature of Calculate. Callers depend on it so tests can
// substitute faulty implementations.
type Func func(raw1, raw2 string) (model.CalculationResult, error)

// Calculate parses both operands with ParseNumber and returns their sum.
// It fails with *InvalidInputError when either operand is not a finite number.
func Calculate(raw1, raw2 string) (model.CalculationResult, error) {
	num1 := ParseNumber(raw1)
	num2 := ParseNumber(raw2)

	var rejected []string
	if !isFinite(num1) {
		rejected = append(rejected, ParamNum1)
	}
	if !isFinite(num2) {
		rejected = append(rejected, ParamNum2)
	}
	if len(rejected) > 0 {
		return model.CalculationResult{}, &InvalidInputError{Params: rejected}
	}

	return model.CalculationResult{
		Num1:   num1,
		Num2:   num2,
		Result: num1 + num2,
	}, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
