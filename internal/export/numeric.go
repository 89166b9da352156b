// internal/export/numeric.go
package export

import (
	"math"
	"strconv"
	"strings"
)

// toNumber coerces a decoded JSON value the way the backend's numeric fields
// are read: numbers pass through, numeric strings parse, booleans are 1/0,
// null and blank strings are 0. Anything else is NaN.
func toNumber(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	}
	return math.NaN()
}

func isNumeric(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// finite maps NaN and infinities to 0.
func finite(f float64) float64 {
	if isNumeric(f) {
		return f
	}
	return 0
}

// Sum adds two field values where either may be missing (NaN) or otherwise
// non-numeric. A single valid operand is kept as is; two invalid operands
// give 0.
func Sum(a, b float64) float64 {
	switch {
	case !isNumeric(a) && !isNumeric(b):
		return 0
	case !isNumeric(a):
		return b
	case !isNumeric(b):
		return a
	}
	return a + b
}

// SumValues is Sum over raw values. A nil operand counts as absent.
func SumValues(a, b any) float64 {
	return Sum(operand(a), operand(b))
}

func operand(v any) float64 {
	if v == nil {
		return math.NaN()
	}
	return toNumber(v)
}
