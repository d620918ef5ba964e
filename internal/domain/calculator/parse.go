package calculator

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

const infinityLiteral = "Infinity"

// ParseNumber converts the longest numeric prefix of s to a float64.
// Leading whitespace is skipped and trailing characters are ignored, so
// "  12.5kg" yields 12.5. Input without a numeric prefix yields NaN.
// Only decimal notation is recognised: "0x10" yields 0.
func ParseNumber(s string) float64 {
	s = strings.TrimLeftFunc(s, isLeadingSpace)
	end := scanNumber(s)
	if end == 0 {
		return math.NaN()
	}

	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		// Out of range values still carry ±Inf or ±0.
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f
		}
		return math.NaN()
	}
	return f
}

// scanNumber returns the length of the numeric literal at the start of s,
// or 0 when there is none.
func scanNumber(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], infinityLiteral) {
		return i + len(infinityLiteral)
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		// A lone "." is not a number, but "5." and ".5" are.
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}

	// Exponent only counts when at least one digit follows.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLeadingSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u00a0', '\ufeff', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}
