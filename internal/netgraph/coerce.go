package netgraph

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Coerce converts a cell value to a finite number. The boolean is false when
// the value is absent: nil, blank, non-numeric, non-finite, or of a type
// that does not carry a number.
//
// Strings are trimmed and the first comma is read as a decimal point, so
// "3,5" is 3.5.
func Coerce(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		return parseDecimal(string(x))
	case string:
		return parseDecimal(x)
	}
	return 0, false
}

func parseDecimal(s string) (float64, bool) {
	s = strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	if s == "" {
		return 0, false
	}
	// ParseFloat also understands hex and underscore forms; only plain
	// base-10 notation counts here.
	body := strings.TrimLeft(s, "+-")
	if len(body) > 1 && body[0] == '0' && strings.ContainsAny(body[1:2], "xXbBoO") {
		return 0, false
	}
	if strings.Contains(s, "_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
