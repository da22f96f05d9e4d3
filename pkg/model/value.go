package model

import (
	"bytes"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// toFloat64 converts any numeric value to float64 for range math.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// valuesEqual compares two characteristic values. Numeric values compare by
// magnitude so that an int 50 equals a float64 50 written by a controller.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	if fa, ok := toFloat64(a); ok {
		if fb, ok := toFloat64(b); ok {
			return fa == fb
		}
		return false
	}
	switch va := a.(type) {
	case bool:
		vb, ok := b.(bool)
		return ok && va == vb
	case string:
		vb, ok := b.(string)
		return ok && va == vb
	case []byte:
		vb, ok := b.([]byte)
		return ok && bytes.Equal(va, vb)
	default:
		return reflect.DeepEqual(a, b)
	}
}

// defaultValue returns the format-appropriate default used to replace nil
// values before they are cached: false, empty string, empty list, or the
// lower range bound (zero when unbounded).
func defaultValue(format Format, minValue *float64) any {
	switch {
	case format == FormatBool:
		return false
	case format == FormatString:
		return ""
	case format == FormatData || format == FormatTLV8:
		return []byte{}
	case format == FormatArray:
		return []any{}
	case format == FormatFloat:
		if minValue != nil {
			return *minValue
		}
		return float64(0)
	case format.IsInteger():
		if minValue != nil {
			return int64(*minValue)
		}
		return int64(0)
	default:
		return nil
	}
}

// clampFloat bounds f to the [min, max] range; nil bounds are open.
func clampFloat(f float64, min, max *float64) float64 {
	if min != nil && f < *min {
		f = *min
	}
	if max != nil && f > *max {
		f = *max
	}
	return f
}

// roundToStep rounds f to the decimal precision implied by step, e.g.
// step 0.1 rounds to one decimal place. A non-positive step is ignored.
func roundToStep(f, step float64) float64 {
	if step <= 0 {
		return f
	}
	decimals := stepDecimals(step)
	factor := math.Pow10(decimals)
	return math.Round(f*factor) / factor
}

// stepDecimals returns the number of decimal places of step.
func stepDecimals(step float64) int {
	s := strconv.FormatFloat(step, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
