package pkg

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

func Filter[T any](items []T, predicate func(T) bool) []T {
	filtered := []T{}
	for _, item := range items {
		if predicate(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Converts a value suspected to be a number to an int.
// json decoding yields float64, gqlparser yields int64.
func NumToInt(num any) int {
	switch num := num.(type) {
	case int:
		return num
	case int64:
		return int(num)
	case float64:
		return int(num)
	case json.Number:
		n, _ := num.Float64()
		return int(n)
	}
	return 0
}

// ToFloat converts numbers, bools and numeric strings to a float64.
// ok is false for nil and for values that are not numeric.
func ToFloat(v any) (f float64, ok bool) {
	switch v := v.(type) {
	case nil:
		return 0, false
	case float64:
		return v, !math.IsNaN(v)
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}

// IsIntegral reports whether v is a number without a fractional part that
// fits in an int.
func IsIntegral(v any) bool {
	switch v := v.(type) {
	case int, int64, int32:
		return true
	case float64:
		// -math.MinInt is 2^(IntSize-1), exact as a float64
		return v == math.Trunc(v) && v >= math.MinInt && v < -math.MinInt
	case json.Number:
		_, err := strconv.ParseInt(string(v), 10, strconv.IntSize)
		return err == nil
	}
	return false
}
