package provider

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ExtractValue normalizes a numeric field from an irregular match document.
//
// Feeds disagree on types: the same counter may arrive as a JSON number, a
// numeric string ("42") or, when the document was decoded with UseNumber, a
// json.Number. Returns the scalar float64 value, and ok=false if not
// extractable.
func ExtractValue(val interface{}) (float64, bool) {
	if val == nil {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f, true
		}
		return 0, false
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// ExtractInt returns the integer value at key, or 0 when absent, not numeric
// or outside the int range. Fractions are truncated.
func ExtractInt(m map[string]interface{}, key string) int {
	f, ok := ExtractValue(m[key])
	if !ok || math.IsNaN(f) || f >= float64(math.MaxInt) || f < float64(math.MinInt) {
		return 0
	}
	return int(f)
}

// ExtractString returns the text form of the value at key, or "" when absent.
// Numbers are rendered without a trailing ".0" so numeric ids stay stable.
func ExtractString(m map[string]interface{}, key string) string {
	return stringOf(m[key])
}

func stringOf(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
