// Package sanitize coerces untyped label data, as decoded from JSON, into
// well-typed values. Every function is total: malformed input degrades to nil
// rather than returning an error, and missing data is always represented as
// nil, never as an empty string, slice, or map.
package sanitize

import (
	"sort"
	"strconv"
	"strings"
)

// Scalar trims a string value, stringifies a number, and maps everything else
// (objects, arrays, booleans, nil) to nil. A whitespace-only string is nil.
func Scalar(v any) *string {
	switch val := v.(type) {
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return nil
		}
		return &trimmed
	case float64:
		s := strconv.FormatFloat(val, 'f', -1, 64)
		return &s
	case int:
		s := strconv.Itoa(val)
		return &s
	case int64:
		s := strconv.FormatInt(val, 10)
		return &s
	default:
		return nil
	}
}

// StringList maps a sequence through Scalar, dropping entries that come back
// nil. A lone non-empty string is promoted to a one-element list. An empty
// result, or any other input shape, is nil — callers must treat "no data" as
// absence, not as a distinguishable empty list.
func StringList(v any) []string {
	switch val := v.(type) {
	case []any:
		var out []string
		for _, item := range val {
			if s := Scalar(item); s != nil {
				out = append(out, *s)
			}
		}
		return out
	case []string:
		var out []string
		for _, item := range val {
			if s := Scalar(item); s != nil {
				out = append(out, *s)
			}
		}
		return out
	case string:
		if s := Scalar(val); s != nil {
			return []string{*s}
		}
		return nil
	default:
		return nil
	}
}

// Object sanitizes a mapping bottom-up: strings through Scalar, sequences
// through StringList, nested mappings recursively, anything else kept as-is.
// Keys whose sanitized value is absent are dropped, and a mapping left with
// zero keys collapses to nil itself. Arrays are not mappings and yield nil.
func Object(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]any, len(m))
	for key, val := range m {
		switch typed := val.(type) {
		case string:
			if s := Scalar(typed); s != nil {
				out[key] = *s
			}
		case []any:
			if list := StringList(typed); list != nil {
				out[key] = list
			}
		case map[string]any:
			if nested := Object(typed); nested != nil {
				out[key] = nested
			}
		case nil:
			// dropped
		default:
			out[key] = val
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// FirstText returns the first non-empty string value of the mapping in sorted
// key order, sanitized. Used as a last-resort fallback when no structured
// extraction rule applies.
func FirstText(m map[string]any) *string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if raw, ok := m[key].(string); ok {
			if s := Scalar(raw); s != nil {
				return s
			}
		}
	}
	return nil
}
