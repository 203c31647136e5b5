package mcp

import (
	"encoding/json"
)

// sensitiveArguments lists tool arguments that never reach the logs verbatim.
var sensitiveArguments = map[string]struct{}{
	"password":    {},
	"htmlContent": {},
	"token":       {},
}

// redactValue recursively masks sensitive keys.
func redactValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		output := make(map[string]any, len(v))
		for key, item := range v {
			if _, ok := sensitiveArguments[key]; ok {
				output[key] = redactedMarker(item)
				continue
			}
			output[key] = redactValue(item)
		}
		return output
	case []any:
		result := make([]any, 0, len(v))
		for _, item := range v {
			result = append(result, redactValue(item))
		}
		return result
	default:
		return value
	}
}

func redactedMarker(value any) map[string]any {
	marker := map[string]any{"redacted": true}
	if s, ok := value.(string); ok {
		marker["length"] = len(s)
	}
	return marker
}

// redactHookPayload renders a redacted JSON string for hook logging.
func redactHookPayload(payload any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return string(data)
	}
	out, err := json.Marshal(redactValue(decoded))
	if err != nil {
		return ""
	}
	return string(out)
}
