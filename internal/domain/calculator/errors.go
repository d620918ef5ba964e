package calculator

import (
	"errors"
	"strings"
)

// ErrInvalidInput is the sentinel kind for operands that are not finite numbers.
var ErrInvalidInput = errors.New("invalid numbers")

// InvalidInputError reports which operands could not be parsed.
type InvalidInputError struct {
	// Params lists the rejected operand names, e.g. "num1".
	Params []string
}

func (e *InvalidInputError) Error() string {
	if len(e.Params) == 0 {
		return "Invalid numbers"
	}
	return "Invalid numbers: " + strings.Join(e.Params, ", ")
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }
