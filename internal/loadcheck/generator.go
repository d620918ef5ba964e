package loadcheck

import (
	"math/rand"
	"strconv"

	"github.com/google/uuid"
)

const (
	operandRange     = 1e6
	decimalPlacesMax = 4
)

// invalidOperands have no numeric prefix.
var invalidOperands = []string{"abc", "", "x12", "NaN", "-", ".", "e5", "Infinity"}

// GenerateCases builds n cases. A share of InvalidRatio carries one
// non-numeric operand. The same seed yields the same operands.
func GenerateCases(n int, invalidRatio float64, seed int64) []Case {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible operands, not security sensitive

	cases := make([]Case, n)
	for i := range cases {
		a := randomOperand(rng)
		b := randomOperand(rng)
		c := Case{
			RequestID: uuid.New().String(),
			Num1:      strconv.FormatFloat(a, 'g', -1, 64),
			Num2:      strconv.FormatFloat(b, 'g', -1, 64),
			Valid:     true,
			Want:      a + b,
		}
		if rng.Float64() < invalidRatio {
			bad := invalidOperands[rng.Intn(len(invalidOperands))]
			if rng.Intn(2) == 0 {
				c.Num1 = bad
			} else {
				c.Num2 = bad
			}
			c.Valid = false
			c.Want = 0
		}
		cases[i] = c
	}
	return cases
}

// randomOperand returns a signed value with up to four decimal places.
func randomOperand(rng *rand.Rand) float64 {
	v := (rng.Float64()*2 - 1) * operandRange
	places := rng.Intn(decimalPlacesMax + 1)
	f, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	return f
}
