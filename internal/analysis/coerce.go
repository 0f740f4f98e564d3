package analysis

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// stringOr keeps strings as-is, stringifies other scalars, and JSON-encodes
// objects and arrays. nil yields def.
func stringOr(v any, def string) string {
	switch x := v.(type) {
	case nil:
		return def
	case string:
		return x
	case map[string]any, []any:
		return compactJSON(x)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return def
	}
	return s
}

func nullableString(v any) *string {
	if v == nil {
		return nil
	}
	s := stringOr(v, "")
	return &s
}

// stringList normalizes a list field. A lone scalar becomes a one-element
// list; null elements are dropped.
func stringList(v any) []string {
	switch x := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if item == nil {
				continue
			}
			out = append(out, stringOr(item, ""))
		}
		return out
	case map[string]any:
		return []string{compactJSON(x)}
	default:
		return []string{stringOr(x, "")}
	}
}

// recordList keeps a JSON array verbatim; anything else becomes empty.
func recordList(v any) []any {
	if list, ok := v.([]any); ok && list != nil {
		return list
	}
	return []any{}
}

// score coerces v to an integer in [0,100]. Floats truncate toward zero,
// numeric strings are parsed, bools count as 0/1, anything else is 0.
func score(v any) int {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	if v == nil {
		return 0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	switch {
	case f <= 0:
		return 0
	case f >= 100:
		return 100
	default:
		return int(f)
	}
}

func compactJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
