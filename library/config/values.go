package config

import (
	"fmt"
	"strings"

	gconfig "github.com/Laisky/go-config/v2"
)

// Getter retrieves a raw configuration value by dotted key path.
type Getter func(key string) any

// Shared reads values from the process-wide go-config instance.
func Shared(key string) any {
	return gconfig.S.Get(key)
}

// Bool reads a boolean configuration value with a default fallback.
func Bool(get Getter, key string, def bool) bool {
	switch v := get(key).(type) {
	case nil:
		return def
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		default:
			return def
		}
	default:
		return def
	}
}

// Int64 reads an int64 configuration value with a default fallback.
func Int64(get Getter, key string, def int64) int64 {
	switch v := get(key).(type) {
	case nil:
		return def
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return def
		}
		var parsed int64
		if _, err := fmt.Sscanf(trimmed, "%d", &parsed); err != nil {
			return def
		}
		return parsed
	default:
		return def
	}
}

// Int reads an int configuration value with a default fallback.
func Int(get Getter, key string, def int) int {
	return int(Int64(get, key, int64(def)))
}

// String reads a trimmed string configuration value, returning def when empty.
func String(get Getter, key string, def string) string {
	v, ok := get(key).(string)
	if !ok {
		return def
	}
	if v = strings.TrimSpace(v); v == "" {
		return def
	}

	return v
}

// StringSlice reads a list of strings, returning def when the key is absent or empty.
func StringSlice(get Getter, key string, def []string) []string {
	var out []string
	switch v := get(key).(type) {
	case []string:
		out = append(out, v...)
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	case string:
		for _, item := range strings.Split(v, ",") {
			out = append(out, item)
		}
	}

	cleaned := out[:0]
	for _, item := range out {
		if item = strings.TrimSpace(item); item != "" {
			cleaned = append(cleaned, item)
		}
	}
	if len(cleaned) == 0 {
		return def
	}

	return cleaned
}

// Map reads a nested object as map[string]any. It returns nil when absent.
func Map(get Getter, key string) map[string]any {
	switch v := get(key).(type) {
	case map[string]any:
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[fmt.Sprint(k)] = item
		}
		return out
	default:
		return nil
	}
}
