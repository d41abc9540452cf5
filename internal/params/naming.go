package params

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Savename builds a descriptive output name from a parameter field map.
//
// Fields are rendered sorted alphabetically by name as "key=value" segments
// joined with underscores after the prefix. Float values that are exact
// integers render as integers, other floats in scientific notation truncated
// to digits decimal places, and float slices as "first-last" ranges. Ignored
// and nil fields are omitted. The suffix, if non-empty, is appended verbatim.
func Savename(prefix string, fields map[string]any, digits int, suffix string, ignored ...string) string {
	skip := make(map[string]bool, len(ignored))
	for _, name := range ignored {
		skip[name] = true
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	segments := []string{prefix}
	for _, key := range keys {
		if skip[key] {
			continue
		}
		segment, ok := formatField(key, fields[key], digits)
		if ok {
			segments = append(segments, segment)
		}
	}

	name := strings.Join(segments, "_")
	return name + suffix
}

func formatField(key string, value any, digits int) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case []float64:
		if len(v) == 0 {
			return "", false
		}
		first, _ := formatField(key, v[0], digits)
		last, _ := formatField(key, v[len(v)-1], digits)
		return fmt.Sprintf("%s-%s", first, strings.TrimPrefix(last, key+"=")), true
	case int:
		return fmt.Sprintf("%s=%d", key, v), true
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return fmt.Sprintf("%s=%d", key, int64(v)), true
		}
		return fmt.Sprintf("%s=%.*e", key, digits, v), true
	default:
		return fmt.Sprintf("%s=%v", key, v), true
	}
}
